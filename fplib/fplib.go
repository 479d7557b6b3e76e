// Copyright 2025 The gem5-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fplib provides the software floating-point primitives the vector
// ALU delegates to: correctly rounded half-precision add, multiply, fused
// multiply-add, min and max, plus width conversion, each parameterized by an
// explicit rounding mode. Operands and results are raw binary16 bit patterns;
// exception flags accumulate on a per-call Context.
package fplib

import "math"

// RoundingMode selects how an inexact result is rounded to the destination
// format.
type RoundingMode int

const (
	RoundTieEven RoundingMode = iota // round to nearest, ties to even
	RoundPosInf                      // round toward positive infinity
	RoundNegInf                      // round toward negative infinity
	RoundZero                        // round toward zero
)

// Status is a set of IEEE 754 exception flags raised by an operation.
type Status uint8

const (
	StatusInvalid Status = 1 << iota
	StatusOverflow
	StatusUnderflow
	StatusInexact
)

// Context carries the rounding mode and the cumulative exception status for
// one element-level operation. Callers create a fresh Context per call; no
// status persists across calls.
type Context struct {
	Rounding RoundingMode
	Status   Status
}

// NewContext returns a context with round-to-nearest-even and a clear status.
func NewContext() *Context {
	return &Context{Rounding: RoundTieEven}
}

// Binary16 encoding constants.
const (
	f16SignMask uint16 = 0x8000
	f16ExpMask  uint16 = 0x7C00
	f16MantMask uint16 = 0x03FF
	f16QuietBit uint16 = 0x0200

	F16Inf uint16 = 0x7C00 // positive infinity
	F16NaN uint16 = 0x7E00 // canonical quiet NaN
	F16Max uint16 = 0x7BFF // largest finite value (65504)
)

func isNaN16(v uint16) bool {
	return v&f16ExpMask == f16ExpMask && v&f16MantMask != 0
}

// propagateNaN16 implements the shared NaN handling: any NaN operand yields
// the canonical quiet NaN, and a signaling NaN additionally raises the
// invalid-operation flag.
func propagateNaN16(ctx *Context, vals ...uint16) (uint16, bool) {
	nan := false
	for _, v := range vals {
		if isNaN16(v) {
			nan = true
			if v&f16QuietBit == 0 {
				ctx.Status |= StatusInvalid
			}
		}
	}
	if nan {
		return F16NaN, true
	}
	return 0, false
}

// Add16 returns the correctly rounded binary16 sum a + b.
//
// Every finite binary16 value, and the sum of any two of them, is exactly
// representable in float64, so widening, adding and rounding once preserves
// correct rounding in all modes.
func Add16(a, b uint16, ctx *Context) uint16 {
	if nan, ok := propagateNaN16(ctx, a, b); ok {
		return nan
	}
	r := toFloat64(a) + toFloat64(b)
	if math.IsNaN(r) {
		// Infinities of opposite sign.
		ctx.Status |= StatusInvalid
		return F16NaN
	}
	if math.IsInf(r, 0) {
		return inf16(math.Signbit(r))
	}
	if r == 0 {
		return zeroSign16(a&f16SignMask, b&f16SignMask, ctx.Rounding)
	}
	return fromFloat64(r, ctx.Rounding, ctx)
}

// Mul16 returns the correctly rounded binary16 product a * b.
func Mul16(a, b uint16, ctx *Context) uint16 {
	if nan, ok := propagateNaN16(ctx, a, b); ok {
		return nan
	}
	r := toFloat64(a) * toFloat64(b)
	if math.IsNaN(r) {
		// Zero times infinity.
		ctx.Status |= StatusInvalid
		return F16NaN
	}
	if math.IsInf(r, 0) {
		return inf16(math.Signbit(r))
	}
	if r == 0 {
		// An exact zero product carries the XOR of the operand signs in
		// every rounding mode.
		return (a ^ b) & f16SignMask
	}
	return fromFloat64(r, ctx.Rounding, ctx)
}

// MulAdd16 returns a*b + addend fused: the product is not rounded before the
// addition, and the final result is rounded once.
func MulAdd16(addend, a, b uint16, ctx *Context) uint16 {
	if nan, ok := propagateNaN16(ctx, addend, a, b); ok {
		return nan
	}
	r := math.FMA(toFloat64(a), toFloat64(b), toFloat64(addend))
	if math.IsNaN(r) {
		ctx.Status |= StatusInvalid
		return F16NaN
	}
	if math.IsInf(r, 0) {
		return inf16(math.Signbit(r))
	}
	if r == 0 {
		productSign := (a ^ b) & f16SignMask
		return zeroSign16(productSign, addend&f16SignMask, ctx.Rounding)
	}
	return fromFloat64(r, ctx.Rounding, ctx)
}

// Min16 returns the smaller of a and b, ordering -0 below +0.
func Min16(a, b uint16, ctx *Context) uint16 {
	if nan, ok := propagateNaN16(ctx, a, b); ok {
		return nan
	}
	fa, fb := toFloat64(a), toFloat64(b)
	switch {
	case fa < fb:
		return a
	case fb < fa:
		return b
	case a&f16SignMask != 0:
		return a
	default:
		return b
	}
}

// Max16 returns the larger of a and b, ordering +0 above -0.
func Max16(a, b uint16, ctx *Context) uint16 {
	if nan, ok := propagateNaN16(ctx, a, b); ok {
		return nan
	}
	fa, fb := toFloat64(a), toFloat64(b)
	switch {
	case fa > fb:
		return a
	case fb > fa:
		return b
	case a&f16SignMask == 0:
		return a
	default:
		return b
	}
}

// inf16 returns the binary16 infinity of the given sign. An exact infinite
// result is not an overflow: it bypasses rounding and raises no flags, so it
// must never reach fromFloat64, which would saturate it to the largest
// finite value under the directed modes.
func inf16(negative bool) uint16 {
	if negative {
		return f16SignMask | F16Inf
	}
	return F16Inf
}

// zeroSign16 resolves the sign of an exactly zero sum. Two negative terms
// keep the negative sign; terms of opposite sign cancel to +0 in every mode
// except round-toward-negative-infinity.
func zeroSign16(signA, signB uint16, rm RoundingMode) uint16 {
	if signA != 0 && signB != 0 {
		return f16SignMask
	}
	if signA != signB && rm == RoundNegInf {
		return f16SignMask
	}
	return 0
}
