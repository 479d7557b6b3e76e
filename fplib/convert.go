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

package fplib

import "math"

// Convert16To32 widens a binary16 bit pattern to binary32. Widening is exact,
// so the rounding mode has no effect on finite values; it is part of the
// signature because the conversion contract is mode-parameterized. NaNs are
// quieted with their payload preserved, and a signaling NaN raises the
// invalid-operation flag.
func Convert16To32(v uint16, _ RoundingMode, ctx *Context) uint32 {
	if isNaN16(v) && v&f16QuietBit == 0 {
		ctx.Status |= StatusInvalid
	}
	return widen16To32(v)
}

// Convert32To16 narrows a binary32 bit pattern to binary16, rounding per the
// given mode.
func Convert32To16(v uint32, rm RoundingMode, ctx *Context) uint16 {
	f := math.Float32frombits(v)
	sign := uint16(v>>16) & f16SignMask
	if math.IsNaN(float64(f)) {
		if v&0x00400000 == 0 {
			ctx.Status |= StatusInvalid
		}
		return F16NaN
	}
	if math.IsInf(float64(f), 0) {
		return sign | F16Inf
	}
	if f == 0 {
		return sign
	}
	return fromFloat64(float64(f), rm, ctx)
}

// toFloat64 widens a binary16 bit pattern to float64. Exact for all finite
// values.
func toFloat64(v uint16) float64 {
	return float64(math.Float32frombits(widen16To32(v)))
}

func widen16To32(v uint16) uint32 {
	sign := uint32(v>>15) & 1
	exp := int32(v>>10) & 0x1F
	mant := uint32(v) & 0x3FF

	switch {
	case exp == 0:
		if mant == 0 {
			return sign << 31
		}
		// Subnormal: renormalize into the binary32 format.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3FF
		return sign<<31 | uint32(exp+127-15)<<23 | mant<<13
	case exp == 0x1F:
		if mant == 0 {
			return sign<<31 | 0x7F800000
		}
		// Quiet the NaN, keep the payload.
		return sign<<31 | 0x7FC00000 | mant<<13
	default:
		return sign<<31 | uint32(exp+127-15)<<23 | mant<<13
	}
}

// fromFloat64 rounds a finite non-zero float64 to binary16 under the given
// mode, raising overflow/underflow/inexact as appropriate. The callers in
// this package only ever pass values that are exact results of binary16
// arithmetic or exact widenings of binary32, so a single rounding step here
// yields the correctly rounded binary16 result.
func fromFloat64(v float64, rm RoundingMode, ctx *Context) uint16 {
	b := math.Float64bits(v)
	sign := uint16(b>>48) & f16SignMask
	exp := int(b>>52&0x7FF) - 1023
	mant := b & (1<<52 - 1)

	if exp >= -14 {
		frac := mant >> 42
		rem := mant & (1<<42 - 1)
		frac = roundFrac(frac, rem, 1<<41, sign != 0, rm, ctx)
		if frac == 1<<10 {
			frac = 0
			exp++
		}
		if exp > 15 {
			ctx.Status |= StatusOverflow | StatusInexact
			return overflow16(sign, rm)
		}
		return sign | uint16(exp+15)<<10 | uint16(frac)
	}

	// Subnormal destination range.
	shift := uint(42 + (-14 - exp))
	if shift > 63 {
		// Far below the smallest subnormal.
		ctx.Status |= StatusUnderflow | StatusInexact
		if (rm == RoundPosInf && sign == 0) || (rm == RoundNegInf && sign != 0) {
			return sign | 1
		}
		return sign
	}
	full := uint64(1)<<52 | mant
	frac := full >> shift
	rem := full & (1<<shift - 1)
	if rem != 0 {
		ctx.Status |= StatusUnderflow
	}
	frac = roundFrac(frac, rem, uint64(1)<<(shift-1), sign != 0, rm, ctx)
	if frac == 1<<10 {
		// Rounded up into the smallest normal.
		return sign | 0x0400
	}
	return sign | uint16(frac)
}

func roundFrac(frac, rem, half uint64, negative bool, rm RoundingMode, ctx *Context) uint64 {
	if rem == 0 {
		return frac
	}
	ctx.Status |= StatusInexact
	switch rm {
	case RoundTieEven:
		if rem > half || (rem == half && frac&1 == 1) {
			frac++
		}
	case RoundPosInf:
		if !negative {
			frac++
		}
	case RoundNegInf:
		if negative {
			frac++
		}
	case RoundZero:
	}
	return frac
}

// overflow16 returns the architecturally defined overflow result for the
// rounding mode: infinity when rounding toward the overflow direction,
// otherwise the largest finite value.
func overflow16(sign uint16, rm RoundingMode) uint16 {
	switch rm {
	case RoundZero:
		return sign | F16Max
	case RoundPosInf:
		if sign == 0 {
			return F16Inf
		}
		return sign | F16Max
	case RoundNegInf:
		if sign != 0 {
			return sign | F16Inf
		}
		return F16Max
	default:
		return sign | F16Inf
	}
}
