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
	"fmt"
	"math"
)

// The packed single-precision family operates on 64-bit inputs and outputs
// rather than 32-bit ones. The uint64 lane values are untyped data; each
// logically holds two independently selectable single-precision dwords.

// pk32Helper is the shared lane loop for the 64-bit half-select family: it
// acquires nsrc 64-bit source vectors and the 64-bit destination, and invokes
// op once per active lane with the lane's raw source values. op performs the
// half selection, negation and arithmetic and returns the packed
// high<<32|low result.
func pk32Helper(inst *DynInst, nsrc int, op func(src []uint64) uint64) error {
	regs := []int{inst.Src0, inst.Src1, inst.Src2}[:nsrc]
	srcs := make([]*SrcOperand64, nsrc)
	for i, reg := range regs {
		srcs[i] = NewSrcOperand64(inst.Regs, reg)
		srcs[i].Read()
	}
	vdst := NewDstOperand64(inst.Regs, inst.VDst)

	vals := make([]uint64, nsrc)
	for lane := range NumLanes {
		if !inst.Wavefront.LaneActive(lane) {
			continue
		}
		for i := range srcs {
			vals[i] = srcs[i].Lane(lane)
		}
		vdst.SetLane(lane, op(vals))
	}

	vdst.Write()
	return nil
}

// selDword picks the upper or lower dword of a 64-bit lane value.
func selDword(v uint64, upper bool) uint32 {
	if upper {
		return HighDword(v)
	}
	return LowDword(v)
}

func dwordF32(v uint64, upper bool) float32 {
	return math.Float32frombits(selDword(v, upper))
}

// VPkFmaF32 computes, per result half, the fused product-sum of the selected
// source dwords: D.f[31:0] = S0.f*S1.f + S2.f with the low-half selectors,
// D.f[63:32] likewise with the high-half selectors. There is no intermediate
// rounding between the multiply and the add.
func VPkFmaF32(inst *DynInst) error {
	opselHi := inst.opSelHi()
	return pk32Helper(inst, 3, func(src []uint64) uint64 {
		s0l := dwordF32(src[0], inst.OpSel&1 != 0)
		s1l := dwordF32(src[1], inst.OpSel&2 != 0)
		s2l := dwordF32(src[2], inst.OpSel&4 != 0)
		// TODO: NEG bit 0 negates all three low-half operands here (and
		// NEG_HI bit 0 all three high-half operands); per-operand bits 0-2
		// may be the intended behavior. Pinned by a test until resolved.
		if inst.Neg&1 != 0 {
			s0l, s1l, s2l = -s0l, -s1l, -s2l
		}
		low := float32(math.FMA(float64(s0l), float64(s1l), float64(s2l)))

		s0h := dwordF32(src[0], opselHi&1 != 0)
		s1h := dwordF32(src[1], opselHi&2 != 0)
		s2h := dwordF32(src[2], opselHi&4 != 0)
		if inst.NegHi&1 != 0 {
			s0h, s1h, s2h = -s0h, -s1h, -s2h
		}
		high := float32(math.FMA(float64(s0h), float64(s1h), float64(s2h)))

		return PackDwords(math.Float32bits(high), math.Float32bits(low))
	})
}

// VPkMulF32 computes D.f[31:0] = S0.f * S1.f and D.f[63:32] = S0.f * S1.f on
// the dwords selected for each half.
func VPkMulF32(inst *DynInst) error {
	return pk32Helper(inst, 2, func(src []uint64) uint64 {
		s0l := dwordF32(src[0], inst.OpSel&1 != 0)
		s1l := dwordF32(src[1], inst.OpSel&2 != 0)
		if inst.Neg&1 != 0 {
			s0l = -s0l
		}
		if inst.Neg&2 != 0 {
			s1l = -s1l
		}
		low := s0l * s1l

		s0h := dwordF32(src[0], inst.OpSelHi&1 != 0)
		s1h := dwordF32(src[1], inst.OpSelHi&2 != 0)
		if inst.NegHi&1 != 0 {
			s0h = -s0h
		}
		if inst.NegHi&2 != 0 {
			s1h = -s1h
		}
		high := s0h * s1h

		return PackDwords(math.Float32bits(high), math.Float32bits(low))
	})
}

// VPkAddF32 computes D.f[31:0] = S0.f + S1.f and D.f[63:32] = S0.f + S1.f on
// the dwords selected for each half. The architecture does not define this
// instruction under the SDWA or DPP addressing extensions; unlike the rest
// of the family, it rejects them before writing any lane.
func VPkAddF32(inst *DynInst) error {
	if inst.SDWA {
		return fmt.Errorf("%w: sdwa not supported for %s", ErrIllegalEncoding, OpVPkAddF32)
	}
	if inst.DPP {
		return fmt.Errorf("%w: dpp not supported for %s", ErrIllegalEncoding, OpVPkAddF32)
	}

	return pk32Helper(inst, 2, func(src []uint64) uint64 {
		s0l := dwordF32(src[0], inst.OpSel&1 != 0)
		s1l := dwordF32(src[1], inst.OpSel&2 != 0)
		if inst.Neg&1 != 0 {
			s0l = -s0l
		}
		if inst.Neg&2 != 0 {
			s1l = -s1l
		}
		low := s0l + s1l

		s0h := dwordF32(src[0], inst.OpSelHi&1 != 0)
		s1h := dwordF32(src[1], inst.OpSelHi&2 != 0)
		if inst.NegHi&1 != 0 {
			s0h = -s0h
		}
		if inst.NegHi&2 != 0 {
			s1h = -s1h
		}
		high := s0h + s1h

		return PackDwords(math.Float32bits(high), math.Float32bits(low))
	})
}

// VPkMovB32 moves one dword of each source into the destination with no
// arithmetic: OPSEL bit 0 picks the dword of S0 that becomes D[31:0], bit 1
// the dword of S1 that becomes D[63:32]. Negation modifiers have no defined
// effect and are surfaced as an advisory warning.
func VPkMovB32(inst *DynInst) error {
	if inst.Neg != 0 || inst.NegHi != 0 {
		inst.warnf("negate modifier undefined for %s", OpVPkMovB32)
	}

	return pk32Helper(inst, 2, func(src []uint64) uint64 {
		lower := selDword(src[0], inst.OpSel&1 != 0)
		upper := selDword(src[1], inst.OpSel&2 != 0)
		return PackDwords(upper, lower)
	})
}
