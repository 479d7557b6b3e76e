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

import "github.com/vsoriap/gem5/fplib"

// packedElem is the element type of a 16-bit packed instruction. Half
// precision values travel as their uint16 bit pattern.
type packedElem interface {
	~int16 | ~uint16
}

const f16SignBit uint16 = 0x8000

// packedHalves extracts the two 16-bit sub-words of one source that feed the
// low and high result halves: OPSEL bit src selects the low half's input,
// OPSEL_HI bit src the high half's. For floating-point operands the NEG and
// NEG_HI bits flip the selected value's sign.
func (d *DynInst) packedHalves(val uint32, src uint, float bool) (lo, hi uint16) {
	lo = lowHalf(val)
	if d.OpSel>>src&1 != 0 {
		lo = highHalf(val)
	}
	hi = lowHalf(val)
	if d.opSelHi()>>src&1 != 0 {
		hi = highHalf(val)
	}
	if float {
		if d.Neg>>src&1 != 0 {
			lo ^= f16SignBit
		}
		if d.NegHi>>src&1 != 0 {
			hi ^= f16SignBit
		}
	}
	return lo, hi
}

// warnIntegerNeg surfaces the advisory diagnostic for negate modifiers on an
// integer instruction, where they have no architecturally defined effect.
func (d *DynInst) warnIntegerNeg() {
	if d.Neg != 0 || d.NegHi != 0 {
		d.warnf("negate modifier has no defined effect on integer operands")
	}
}

// vop3pHelper2 is the lane dispatch engine for two-source 16-bit packed
// instructions. It acquires the source vectors, walks the lanes under the
// wavefront's predicate, invokes op once per 16-bit result half, packs the
// halves, and commits the destination once after the loop. Overflow policy
// is entirely the op's concern, via the clamp flag.
func vop3pHelper2[T packedElem](inst *DynInst, float bool, op func(s0, s1 T, clamp bool) T) error {
	if !float {
		inst.warnIntegerNeg()
	}

	src0 := NewSrcOperand32(inst.Regs, inst.Src0)
	src1 := NewSrcOperand32(inst.Regs, inst.Src1)
	vdst := NewDstOperand32(inst.Regs, inst.VDst)

	src0.Read()
	src1.Read()

	for lane := range NumLanes {
		if !inst.Wavefront.LaneActive(lane) {
			continue
		}
		s0l, s0h := inst.packedHalves(src0.Lane(lane), 0, float)
		s1l, s1h := inst.packedHalves(src1.Lane(lane), 1, float)

		lo := uint16(op(T(s0l), T(s1l), inst.Clamp))
		hi := uint16(op(T(s0h), T(s1h), inst.Clamp))
		vdst.SetLane(lane, packHalves(hi, lo))
	}

	vdst.Write()
	return nil
}

// vop3pHelper3 is the three-source form of the dispatch engine.
func vop3pHelper3[T packedElem](inst *DynInst, float bool, op func(s0, s1, s2 T, clamp bool) T) error {
	if !float {
		inst.warnIntegerNeg()
	}

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
		s0l, s0h := inst.packedHalves(src0.Lane(lane), 0, float)
		s1l, s1h := inst.packedHalves(src1.Lane(lane), 1, float)
		s2l, s2h := inst.packedHalves(src2.Lane(lane), 2, float)

		lo := uint16(op(T(s0l), T(s1l), T(s2l), inst.Clamp))
		hi := uint16(op(T(s0h), T(s1h), T(s2h), inst.Clamp))
		vdst.SetLane(lane, packHalves(hi, lo))
	}

	vdst.Write()
	return nil
}

// VPkMadI16 computes S0 * S1 + S2 per signed 16-bit element.
func VPkMadI16(inst *DynInst) error {
	return vop3pHelper3(inst, false, func(s0, s1, s2 int16, clamp bool) int16 {
		return ClampI16(int32(s0)*int32(s1)+int32(s2), clamp)
	})
}

// VPkMulLoU16 keeps the low 16 bits of the unsigned product. This operation
// cannot clamp.
func VPkMulLoU16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, _ bool) uint16 {
		return uint16(uint32(s0) * uint32(s1))
	})
}

// VPkAddI16 computes S0 + S1 per signed 16-bit element.
func VPkAddI16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 int16, clamp bool) int16 {
		return ClampI16(int32(s0)+int32(s1), clamp)
	})
}

// VPkSubI16 computes S0 - S1 per signed 16-bit element.
func VPkSubI16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 int16, clamp bool) int16 {
		return ClampI16(int32(s0)-int32(s1), clamp)
	})
}

// VPkLshlrevB16 shifts S1 left by the low 4 bits of S0. Shifts do not clamp.
func VPkLshlrevB16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, _ bool) uint16 {
		return s1 << (s0 & 0xF)
	})
}

// VPkLshrrevB16 shifts S1 right (logical) by the low 4 bits of S0.
func VPkLshrrevB16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, _ bool) uint16 {
		return s1 >> (s0 & 0xF)
	})
}

// VPkAshrrevB16 shifts S1 right (arithmetic) by the low 4 bits of S0.
func VPkAshrrevB16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 int16, _ bool) int16 {
		return s1 >> (uint16(s0) & 0xF)
	})
}

// VPkMaxI16 selects the larger signed 16-bit element.
func VPkMaxI16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 int16, clamp bool) int16 {
		return ClampI16(int32(max(s0, s1)), clamp)
	})
}

// VPkMinI16 selects the smaller signed 16-bit element.
func VPkMinI16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 int16, clamp bool) int16 {
		return ClampI16(int32(min(s0, s1)), clamp)
	})
}

// VPkMadU16 computes S0 * S1 + S2 per unsigned 16-bit element.
func VPkMadU16(inst *DynInst) error {
	return vop3pHelper3(inst, false, func(s0, s1, s2 uint16, clamp bool) uint16 {
		return ClampU16(int64(s0)*int64(s1)+int64(s2), clamp)
	})
}

// VPkAddU16 computes S0 + S1 per unsigned 16-bit element.
func VPkAddU16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampU16(int64(s0)+int64(s1), clamp)
	})
}

// VPkSubU16 computes S0 - S1 per unsigned 16-bit element.
func VPkSubU16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampU16(int64(s0)-int64(s1), clamp)
	})
}

// VPkMaxU16 selects the larger unsigned 16-bit element.
func VPkMaxU16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampU16(int64(max(s0, s1)), clamp)
	})
}

// VPkMinU16 selects the smaller unsigned 16-bit element.
func VPkMinU16(inst *DynInst) error {
	return vop3pHelper2(inst, false, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampU16(int64(min(s0, s1)), clamp)
	})
}

// VPkFmaF16 computes the fused S0 * S1 + S2 per half-precision element.
func VPkFmaF16(inst *DynInst) error {
	return vop3pHelper3(inst, true, func(s0, s1, s2 uint16, clamp bool) uint16 {
		return ClampF16(fplib.MulAdd16(s2, s0, s1, fplib.NewContext()), clamp)
	})
}

// VPkAddF16 computes S0 + S1 per half-precision element.
func VPkAddF16(inst *DynInst) error {
	return vop3pHelper2(inst, true, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampF16(fplib.Add16(s0, s1, fplib.NewContext()), clamp)
	})
}

// VPkMulF16 computes S0 * S1 per half-precision element.
func VPkMulF16(inst *DynInst) error {
	return vop3pHelper2(inst, true, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampF16(fplib.Mul16(s0, s1, fplib.NewContext()), clamp)
	})
}

// VPkMinF16 selects the smaller half-precision element.
func VPkMinF16(inst *DynInst) error {
	return vop3pHelper2(inst, true, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampF16(fplib.Min16(s0, s1, fplib.NewContext()), clamp)
	})
}

// VPkMaxF16 selects the larger half-precision element.
func VPkMaxF16(inst *DynInst) error {
	return vop3pHelper2(inst, true, func(s0, s1 uint16, clamp bool) uint16 {
		return ClampF16(fplib.Max16(s0, s1, fplib.NewContext()), clamp)
	})
}
