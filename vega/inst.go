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
	"errors"
	"fmt"
)

// ErrIllegalEncoding reports an instruction invoked with an addressing-mode
// combination the architecture does not define. Execution aborts without
// writing any destination lane.
var ErrIllegalEncoding = errors.New("illegal instruction encoding")

// Fields holds the static fields decoded upstream from a VOP3P encoding.
// This core only reads them.
type Fields struct {
	// Source and destination vector register indices. 64-bit operands use
	// the pair (reg, reg+1).
	Src0, Src1, Src2 int
	VDst             int

	// OpSel selects, per low-half operand, which 16-bit half (or which
	// dword, for the 64-bit family) of the source feeds the result's low
	// half. Bit i governs source i.
	OpSel int

	// OpSelHi is the two-bit high-half selector; OpSelHi2 extends it to
	// cover the third source of three-operand instructions.
	OpSelHi  int
	OpSelHi2 bool

	// Neg and NegHi flip operand signs for the low and high result halves.
	// Only defined for floating-point operands.
	Neg, NegHi int

	// Clamp enables saturation of the result.
	Clamp bool

	// SDWA and DPP mark the sub-dword addressing and lane-shuffle
	// extensions. The architecture does not define them for this
	// instruction class; only V_PK_ADD_F32 checks.
	SDWA, DPP bool
}

// opSelHi returns the combined three-bit high-half selector.
func (f *Fields) opSelHi() int {
	sel := f.OpSelHi
	if f.OpSelHi2 {
		sel |= 4
	}
	return sel
}

// DynInst is the context for one dynamic instruction: the decoded static
// fields, the wavefront whose predicate gates write-back, and the register
// file capability used to borrow operand vectors.
type DynInst struct {
	Fields

	Wavefront *Wavefront
	Regs      RegisterFile

	// WarnFunc receives advisory diagnostics, e.g. a modifier that is
	// present but has no architecturally defined effect. Nil discards them.
	WarnFunc func(format string, args ...any)
}

func (d *DynInst) warnf(format string, args ...any) {
	if d.WarnFunc != nil {
		d.WarnFunc(format, args...)
	}
}

// Opcode identifies a VOP3P instruction by its architectural opcode number.
type Opcode uint8

const (
	OpVPkMadI16     Opcode = 0
	OpVPkMulLoU16   Opcode = 1
	OpVPkAddI16     Opcode = 2
	OpVPkSubI16     Opcode = 3
	OpVPkLshlrevB16 Opcode = 4
	OpVPkLshrrevB16 Opcode = 5
	OpVPkAshrrevB16 Opcode = 6
	OpVPkMaxI16     Opcode = 7
	OpVPkMinI16     Opcode = 8
	OpVPkMadU16     Opcode = 9
	OpVPkAddU16     Opcode = 10
	OpVPkSubU16     Opcode = 11
	OpVPkMaxU16     Opcode = 12
	OpVPkMinU16     Opcode = 13
	OpVPkFmaF16     Opcode = 14
	OpVPkAddF16     Opcode = 15
	OpVPkMulF16     Opcode = 16
	OpVPkMinF16     Opcode = 17
	OpVPkMaxF16     Opcode = 18
	OpVDot2F32F16   Opcode = 35
	OpVDot2I32I16   Opcode = 36
	OpVDot2U32U16   Opcode = 37
	OpVDot4I32I8    Opcode = 38
	OpVDot4U32U8    Opcode = 39
	OpVDot8I32I4    Opcode = 40
	OpVDot8U32U4    Opcode = 41
	OpVPkFmaF32     Opcode = 48
	OpVPkMulF32     Opcode = 49
	OpVPkAddF32     Opcode = 50
	OpVPkMovB32     Opcode = 51
	OpVAccVGPRRead  Opcode = 88
	OpVAccVGPRWrite Opcode = 89
)

var opNames = map[Opcode]string{
	OpVPkMadI16:     "v_pk_mad_i16",
	OpVPkMulLoU16:   "v_pk_mul_lo_u16",
	OpVPkAddI16:     "v_pk_add_i16",
	OpVPkSubI16:     "v_pk_sub_i16",
	OpVPkLshlrevB16: "v_pk_lshlrev_b16",
	OpVPkLshrrevB16: "v_pk_lshrrev_b16",
	OpVPkAshrrevB16: "v_pk_ashrrev_b16",
	OpVPkMaxI16:     "v_pk_max_i16",
	OpVPkMinI16:     "v_pk_min_i16",
	OpVPkMadU16:     "v_pk_mad_u16",
	OpVPkAddU16:     "v_pk_add_u16",
	OpVPkSubU16:     "v_pk_sub_u16",
	OpVPkMaxU16:     "v_pk_max_u16",
	OpVPkMinU16:     "v_pk_min_u16",
	OpVPkFmaF16:     "v_pk_fma_f16",
	OpVPkAddF16:     "v_pk_add_f16",
	OpVPkMulF16:     "v_pk_mul_f16",
	OpVPkMinF16:     "v_pk_min_f16",
	OpVPkMaxF16:     "v_pk_max_f16",
	OpVDot2F32F16:   "v_dot2_f32_f16",
	OpVDot2I32I16:   "v_dot2_i32_i16",
	OpVDot2U32U16:   "v_dot2_u32_u16",
	OpVDot4I32I8:    "v_dot4_i32_i8",
	OpVDot4U32U8:    "v_dot4_u32_u8",
	OpVDot8I32I4:    "v_dot8_i32_i4",
	OpVDot8U32U4:    "v_dot8_u32_u4",
	OpVPkFmaF32:     "v_pk_fma_f32",
	OpVPkMulF32:     "v_pk_mul_f32",
	OpVPkAddF32:     "v_pk_add_f32",
	OpVPkMovB32:     "v_pk_mov_b32",
	OpVAccVGPRRead:  "v_accvgpr_read",
	OpVAccVGPRWrite: "v_accvgpr_write",
}

func (op Opcode) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("vop3p_op_%d", uint8(op))
}

// ExecuteFunc runs one instruction over the wavefront described by inst.
type ExecuteFunc func(inst *DynInst) error

var executeFuncs = map[Opcode]ExecuteFunc{
	OpVPkMadI16:     VPkMadI16,
	OpVPkMulLoU16:   VPkMulLoU16,
	OpVPkAddI16:     VPkAddI16,
	OpVPkSubI16:     VPkSubI16,
	OpVPkLshlrevB16: VPkLshlrevB16,
	OpVPkLshrrevB16: VPkLshrrevB16,
	OpVPkAshrrevB16: VPkAshrrevB16,
	OpVPkMaxI16:     VPkMaxI16,
	OpVPkMinI16:     VPkMinI16,
	OpVPkMadU16:     VPkMadU16,
	OpVPkAddU16:     VPkAddU16,
	OpVPkSubU16:     VPkSubU16,
	OpVPkMaxU16:     VPkMaxU16,
	OpVPkMinU16:     VPkMinU16,
	OpVPkFmaF16:     VPkFmaF16,
	OpVPkAddF16:     VPkAddF16,
	OpVPkMulF16:     VPkMulF16,
	OpVPkMinF16:     VPkMinF16,
	OpVPkMaxF16:     VPkMaxF16,
	OpVDot2F32F16:   VDot2F32F16,
	OpVDot2I32I16:   VDot2I32I16,
	OpVDot2U32U16:   VDot2U32U16,
	OpVDot4I32I8:    VDot4I32I8,
	OpVDot4U32U8:    VDot4U32U8,
	OpVDot8I32I4:    VDot8I32I4,
	OpVDot8U32U4:    VDot8U32U4,
	OpVPkFmaF32:     VPkFmaF32,
	OpVPkMulF32:     VPkMulF32,
	OpVPkAddF32:     VPkAddF32,
	OpVPkMovB32:     VPkMovB32,
	OpVAccVGPRRead:  VAccVGPRRead,
	OpVAccVGPRWrite: VAccVGPRWrite,
}

// Execute runs the instruction identified by op once for the wavefront and
// operands carried by inst.
func Execute(op Opcode, inst *DynInst) error {
	fn, ok := executeFuncs[op]
	if !ok {
		return fmt.Errorf("unknown opcode %d", uint8(op))
	}
	return fn(inst)
}
