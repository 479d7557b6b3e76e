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

// RegisterFile is the capability an instruction uses to read source operands
// and write its destination. Registers are 32 bits wide per lane; 64-bit
// operands occupy consecutive register pairs with the low dword in the lower
// register.
type RegisterFile interface {
	ReadReg(reg, lane int) uint32
	WriteReg(reg, lane int, val uint32)
}

// VRegFile is an in-memory vector register file.
type VRegFile struct {
	regs [][NumLanes]uint32
}

// NewVRegFile creates a register file with numRegs 32-bit vector registers.
func NewVRegFile(numRegs int) *VRegFile {
	return &VRegFile{regs: make([][NumLanes]uint32, numRegs)}
}

func (rf *VRegFile) ReadReg(reg, lane int) uint32 {
	return rf.regs[reg][lane]
}

func (rf *VRegFile) WriteReg(reg, lane int, val uint32) {
	rf.regs[reg][lane] = val
}

// SrcOperand32 is a read-only 32-bit source operand vector, borrowed from the
// register file for the duration of one instruction's execution.
type SrcOperand32 struct {
	rf   RegisterFile
	reg  int
	vals [NumLanes]uint32
}

// NewSrcOperand32 binds a source operand to a register index.
func NewSrcOperand32(rf RegisterFile, reg int) *SrcOperand32 {
	return &SrcOperand32{rf: rf, reg: reg}
}

// Read pulls the operand's value for every lane.
func (o *SrcOperand32) Read() {
	for lane := range NumLanes {
		o.vals[lane] = o.rf.ReadReg(o.reg, lane)
	}
}

// Lane returns the operand value previously read for the given lane.
func (o *SrcOperand32) Lane(lane int) uint32 {
	return o.vals[lane]
}

// DstOperand32 is a write-only 32-bit destination operand vector. Lanes are
// staged with SetLane and committed once by Write; lanes never staged are
// left untouched in the register file, which is what keeps inactive lanes
// byte-for-byte unchanged.
type DstOperand32 struct {
	rf    RegisterFile
	reg   int
	vals  [NumLanes]uint32
	dirty uint64
}

// NewDstOperand32 binds a destination operand to a register index.
func NewDstOperand32(rf RegisterFile, reg int) *DstOperand32 {
	return &DstOperand32{rf: rf, reg: reg}
}

// SetLane stages a result for one lane.
func (o *DstOperand32) SetLane(lane int, val uint32) {
	o.vals[lane] = val
	o.dirty |= 1 << lane
}

// Write commits every staged lane to the register file.
func (o *DstOperand32) Write() {
	for lane := range NumLanes {
		if o.dirty>>lane&1 != 0 {
			o.rf.WriteReg(o.reg, lane, o.vals[lane])
		}
	}
}

// SrcOperand64 is a read-only 64-bit source operand vector spanning the
// register pair (reg, reg+1). The 64 bits are untyped data; float values are
// transported as bit patterns.
type SrcOperand64 struct {
	rf   RegisterFile
	reg  int
	vals [NumLanes]uint64
}

// NewSrcOperand64 binds a 64-bit source operand to a register pair.
func NewSrcOperand64(rf RegisterFile, reg int) *SrcOperand64 {
	return &SrcOperand64{rf: rf, reg: reg}
}

func (o *SrcOperand64) Read() {
	for lane := range NumLanes {
		o.vals[lane] = PackDwords(o.rf.ReadReg(o.reg+1, lane), o.rf.ReadReg(o.reg, lane))
	}
}

func (o *SrcOperand64) Lane(lane int) uint64 {
	return o.vals[lane]
}

// DstOperand64 is a write-only 64-bit destination operand vector with the
// same staged write-back protocol as DstOperand32.
type DstOperand64 struct {
	rf    RegisterFile
	reg   int
	vals  [NumLanes]uint64
	dirty uint64
}

// NewDstOperand64 binds a 64-bit destination operand to a register pair.
func NewDstOperand64(rf RegisterFile, reg int) *DstOperand64 {
	return &DstOperand64{rf: rf, reg: reg}
}

func (o *DstOperand64) SetLane(lane int, val uint64) {
	o.vals[lane] = val
	o.dirty |= 1 << lane
}

func (o *DstOperand64) Write() {
	for lane := range NumLanes {
		if o.dirty>>lane&1 != 0 {
			o.rf.WriteReg(o.reg, lane, LowDword(o.vals[lane]))
			o.rf.WriteReg(o.reg+1, lane, HighDword(o.vals[lane]))
		}
	}
}
