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

package vega

import (
	"math"

	"github.com/vsoriap/gem5/fplib"
)

// ClampSigned clamps v to the signed width-bit range [-2^(w-1), 2^(w-1)-1]
// when clamp is set. When clamp is clear it truncates v to width bits and
// sign-extends, i.e. ordinary two's-complement wraparound. width must be
// less than 32.
func ClampSigned(v int32, width uint, clamp bool) int32 {
	if !clamp {
		return SignExtend(uint32(v)&Mask(width), width)
	}
	lo := -(int32(1) << (width - 1))
	hi := int32(1)<<(width-1) - 1
	return min(max(v, lo), hi)
}

// ClampUnsigned clamps v to [0, 2^w-1] when clamp is set and truncates to
// width bits otherwise. width must be less than 32.
func ClampUnsigned(v uint32, width uint, clamp bool) uint32 {
	if !clamp {
		return v & Mask(width)
	}
	return min(v, Mask(width))
}

// ClampI16 narrows a 32-bit intermediate to int16, saturating when clamp is
// set and wrapping otherwise.
func ClampI16(v int32, clamp bool) int16 {
	if !clamp {
		return int16(v)
	}
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

// ClampU16 narrows a wide intermediate to uint16, saturating to [0, 65535]
// when clamp is set and wrapping otherwise. The intermediate is signed so
// that an underflowing subtraction saturates to zero rather than to the
// maximum.
func ClampU16(v int64, clamp bool) uint16 {
	if !clamp {
		return uint16(v)
	}
	return uint16(min(max(v, 0), math.MaxUint16))
}

// Binary16 encodings of the clamp bounds.
const (
	f16Zero uint16 = 0x0000
	f16One  uint16 = 0x3C00
)

// ClampF16 clamps a binary16 value to [0.0, 1.0] when clamp is set, going
// through the adapter's min/max so rounding and NaN behavior match the
// hardware. The value passes through unchanged when clamp is clear.
func ClampF16(v uint16, clamp bool) uint16 {
	if !clamp {
		return v
	}
	lowered := fplib.Min16(v, f16One, fplib.NewContext())
	return fplib.Max16(lowered, f16Zero, fplib.NewContext())
}

// ClampF32 clamps a single-precision value to [0.0, 1.0] when clamp is set.
func ClampF32(v float32, clamp bool) float32 {
	if !clamp {
		return v
	}
	return min(max(v, 0.0), 1.0)
}
