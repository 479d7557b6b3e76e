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

// dotHelper is the reduction engine: the same acquire/iterate/write-back
// shell as the lane dispatch engine, but operands stay full 32-bit words.
// Partitioning into sub-elements happens inside op.
func dotHelper(inst *DynInst, op func(s0, s1, s2 uint32, clamp bool) uint32) error {
	src0 := NewSrcOperand32(inst.Regs, inst.Src0)
	src1 := NewSrcOperand32(inst.Regs, inst.Src1)
	src2 := NewSrcOperand32(inst.Regs, inst.Src2)
	vdst := NewDstOperand32(inst.Regs, inst.VDst)

	src0.Read()
	src1.Read()
	src2.Read()

	for lane := range NumLanes {
		if !inst.Wavefront.LaneActive(lane) {
			continue
		}
		vdst.SetLane(lane, op(src0.Lane(lane), src1.Lane(lane), src2.Lane(lane), inst.Clamp))
	}

	vdst.Write()
	return nil
}

// dotSigned reduces the 32/width signed sub-elements of s0 and s1. Each
// product is computed on sign-extended elements and clamped (or truncated)
// to the element width before accumulation; summing first and clamping once
// would saturate differently. The scalar s2 is added unclamped at the end.
func dotSigned(s0r, s1r, s2r uint32, width uint, clamp bool) uint32 {
	sum := int32(0)
	for i := range 32 / width {
		a := SignExtend(ExtractField(s0r, width, i), width)
		b := SignExtend(ExtractField(s1r, width, i), width)
		sum += ClampSigned(a*b, width, clamp)
	}
	sum += int32(s2r)
	return uint32(sum)
}

// dotUnsigned is the unsigned counterpart of dotSigned.
func dotUnsigned(s0r, s1r, s2r uint32, width uint, clamp bool) uint32 {
	sum := uint32(0)
	for i := range 32 / width {
		a := ExtractField(s0r, width, i)
		b := ExtractField(s1r, width, i)
		sum += ClampUnsigned(a*b, width, clamp)
	}
	return sum + s2r
}

// VDot2F32F16 computes S0.h[0]*S1.h[0] + S0.h[1]*S1.h[1] + S2.f. Each
// half-precision product is widened to single precision and clamped before
// accumulation, matching the integer variants' per-product contract; the
// final addition of S2 never clamps.
func VDot2F32F16(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		sum := float32(0)
		for i := range uint(2) {
			a := uint16(ExtractField(s0r, 16, i))
			b := uint16(ExtractField(s1r, 16, i))

			ctx := fplib.NewContext()
			product := fplib.Mul16(a, b, ctx)
			widened := fplib.Convert16To32(product, fplib.RoundTieEven, ctx)
			sum += ClampF32(math.Float32frombits(widened), clamp)
		}
		sum += math.Float32frombits(s2r)
		return math.Float32bits(sum)
	})
}

// VDot2I32I16 computes the signed dot product of two 16-bit element pairs
// plus S2.
func VDot2I32I16(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotSigned(s0r, s1r, s2r, 16, clamp)
	})
}

// VDot2U32U16 computes the unsigned dot product of two 16-bit element pairs
// plus S2.
func VDot2U32U16(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotUnsigned(s0r, s1r, s2r, 16, clamp)
	})
}

// VDot4I32I8 computes the signed dot product of four 8-bit elements plus S2.
func VDot4I32I8(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotSigned(s0r, s1r, s2r, 8, clamp)
	})
}

// VDot4U32U8 computes the unsigned dot product of four 8-bit elements plus
// S2.
func VDot4U32U8(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotUnsigned(s0r, s1r, s2r, 8, clamp)
	})
}

// VDot8I32I4 computes the signed dot product of eight 4-bit elements plus S2.
func VDot8I32I4(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotSigned(s0r, s1r, s2r, 4, clamp)
	})
}

// VDot8U32U4 computes the unsigned dot product of eight 4-bit elements plus
// S2.
func VDot8U32U4(inst *DynInst) error {
	return dotHelper(inst, func(s0r, s1r, s2r uint32, clamp bool) uint32 {
		return dotUnsigned(s0r, s1r, s2r, 4, clamp)
	})
}
