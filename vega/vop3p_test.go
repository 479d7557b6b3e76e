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

package vega_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vsoriap/gem5/vega"
)

func pack16(high, low uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}

// bits16 returns the bit pattern of a signed 16-bit value.
func bits16(v int16) uint16 {
	return uint16(v)
}

// bits32 returns the bit pattern of a signed 32-bit value.
func bits32(v int32) uint32 {
	return uint32(v)
}

var _ = Describe("packed 16-bit instructions", func() {
	var (
		rf       *vega.VRegFile
		wf       *vega.Wavefront
		inst     *vega.DynInst
		warnings []string
	)

	BeforeEach(func() {
		rf = vega.NewVRegFile(16)
		wf = &vega.Wavefront{Exec: ^uint64(0)}
		warnings = nil
		inst = &vega.DynInst{
			Fields: vega.Fields{
				Src0: 0, Src1: 1, Src2: 2, VDst: 3,
				// Natural packing: low half from low sub-words, high half
				// from high sub-words.
				OpSelHi: 3, OpSelHi2: true,
			},
			Wavefront: wf,
			Regs:      rf,
			WarnFunc: func(format string, args ...any) {
				warnings = append(warnings, fmt.Sprintf(format, args...))
			},
		}
	})

	Describe("V_PK_ADD_I16", func() {
		It("should saturate when clamp is set", func() {
			rf.WriteReg(0, 0, pack16(100, 32000))
			rf.WriteReg(1, 0, pack16(bits16(-200), 1000))
			inst.Clamp = true

			Expect(vega.Execute(vega.OpVPkAddI16, inst)).To(Succeed())

			// 32000 + 1000 saturates to 32767; 100 - 200 = -100.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(bits16(-100), 32767)))
		})

		It("should wrap when clamp is clear", func() {
			rf.WriteReg(0, 0, pack16(0, 32000))
			rf.WriteReg(1, 0, pack16(0, 1000))

			Expect(vega.Execute(vega.OpVPkAddI16, inst)).To(Succeed())

			// 33000 wraps to -32536 as int16.
			Expect(int16(rf.ReadReg(3, 0) & 0xFFFF)).To(Equal(int16(-32536)))
		})

		It("should compute every lane independently", func() {
			for lane := range vega.NumLanes {
				rf.WriteReg(0, lane, pack16(uint16(lane), uint16(2*lane)))
				rf.WriteReg(1, lane, pack16(1, 1))
			}

			Expect(vega.Execute(vega.OpVPkAddI16, inst)).To(Succeed())

			for lane := range vega.NumLanes {
				Expect(rf.ReadReg(3, lane)).To(Equal(pack16(uint16(lane+1), uint16(2*lane+1))))
			}
		})

		It("should warn when a negate modifier is set", func() {
			inst.Neg = 1

			Expect(vega.Execute(vega.OpVPkAddI16, inst)).To(Succeed())

			Expect(warnings).To(HaveLen(1))
			Expect(warnings[0]).To(ContainSubstring("negate"))
		})
	})

	Describe("V_PK_ADD_U16", func() {
		It("should honor operand-select bits", func() {
			rf.WriteReg(0, 0, pack16(0x0002, 0x0001))
			rf.WriteReg(1, 0, pack16(0x0020, 0x0010))
			inst.OpSel = 1 // low result half reads S0's high sub-word

			Expect(vega.Execute(vega.OpVPkAddU16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0x0022, 0x0012)))
		})

		It("should saturate unsigned", func() {
			rf.WriteReg(0, 0, pack16(0, 65000))
			rf.WriteReg(1, 0, pack16(0, 1000))
			inst.Clamp = true

			Expect(vega.Execute(vega.OpVPkAddU16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0) & 0xFFFF).To(Equal(uint32(65535)))
		})
	})

	Describe("V_PK_SUB_U16", func() {
		It("should clamp a negative difference to zero", func() {
			rf.WriteReg(0, 0, pack16(50, 10))
			rf.WriteReg(1, 0, pack16(20, 20))
			inst.Clamp = true

			Expect(vega.Execute(vega.OpVPkSubU16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(30, 0)))
		})
	})

	Describe("V_PK_MAD_I16", func() {
		It("should multiply-add with saturation per element", func() {
			rf.WriteReg(0, 0, pack16(3, 200))
			rf.WriteReg(1, 0, pack16(4, 200))
			rf.WriteReg(2, 0, pack16(5, 100))
			inst.Clamp = true

			Expect(vega.Execute(vega.OpVPkMadI16, inst)).To(Succeed())

			// 200*200+100 = 40100 saturates to 32767; 3*4+5 = 17.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(17, 32767)))
		})
	})

	Describe("V_PK_MUL_LO_U16", func() {
		It("should keep only the low 16 bits of the product", func() {
			rf.WriteReg(0, 0, pack16(2, 0x1000))
			rf.WriteReg(1, 0, pack16(3, 0x0011))
			inst.Clamp = true // must have no effect

			Expect(vega.Execute(vega.OpVPkMulLoU16, inst)).To(Succeed())

			// 0x1000 * 0x11 = 0x11000, low word 0x1000.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(6, 0x1000)))
		})
	})

	Describe("packed shifts", func() {
		It("V_PK_LSHLREV_B16 shifts S1 left by the low 4 bits of S0", func() {
			rf.WriteReg(0, 0, pack16(8, 4))
			rf.WriteReg(1, 0, pack16(0x0001, 0x0001))

			Expect(vega.Execute(vega.OpVPkLshlrevB16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0x0100, 0x0010)))
		})

		It("V_PK_LSHRREV_B16 shifts logically right", func() {
			rf.WriteReg(0, 0, pack16(4, 4))
			rf.WriteReg(1, 0, pack16(0x8000, 0x00F0))

			Expect(vega.Execute(vega.OpVPkLshrrevB16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0x0800, 0x000F)))
		})

		It("V_PK_ASHRREV_B16 keeps the sign bit", func() {
			rf.WriteReg(0, 0, pack16(2, 2))
			rf.WriteReg(1, 0, pack16(0xF000, 0x4000))

			Expect(vega.Execute(vega.OpVPkAshrrevB16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0xFC00, 0x1000)))
		})
	})

	Describe("packed 16-bit min/max", func() {
		It("should select per element", func() {
			rf.WriteReg(0, 0, pack16(bits16(-5), 7))
			rf.WriteReg(1, 0, pack16(3, bits16(-7)))

			Expect(vega.Execute(vega.OpVPkMaxI16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(3, 7)))

			Expect(vega.Execute(vega.OpVPkMinI16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(bits16(-5), bits16(-7))))
		})

		It("should compare unsigned as unsigned", func() {
			rf.WriteReg(0, 0, pack16(0xFFFF, 0x8000))
			rf.WriteReg(1, 0, pack16(0x0001, 0x7FFF))

			Expect(vega.Execute(vega.OpVPkMaxU16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0xFFFF, 0x8000)))

			Expect(vega.Execute(vega.OpVPkMinU16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(0x0001, 0x7FFF)))
		})
	})

	Describe("packed half-precision instructions", func() {
		const (
			h16Half   uint16 = 0x3800
			h16One    uint16 = 0x3C00
			h16OnePt5 uint16 = 0x3E00
			h16Two    uint16 = 0x4000
			h16Three  uint16 = 0x4200
			h16Four   uint16 = 0x4400
		)

		It("V_PK_ADD_F16 adds per half", func() {
			rf.WriteReg(0, 0, pack16(h16One, h16One))
			rf.WriteReg(1, 0, pack16(h16Two, h16Two))

			Expect(vega.Execute(vega.OpVPkAddF16, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Three, h16Three)))
		})

		It("applies the low-half negate modifier only to the low half", func() {
			rf.WriteReg(0, 0, pack16(h16One, h16One))
			rf.WriteReg(1, 0, pack16(h16Two, h16Two))
			inst.Neg = 1 // -S0 on the low half

			Expect(vega.Execute(vega.OpVPkAddF16, inst)).To(Succeed())

			// Low: -1.0 + 2.0 = 1.0, high untouched: 3.0.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Three, h16One)))
			Expect(warnings).To(BeEmpty())
		})

		It("V_PK_MUL_F16 clamps to [0, 1] when requested", func() {
			rf.WriteReg(0, 0, pack16(h16Half, h16Two))
			rf.WriteReg(1, 0, pack16(h16One, h16Two))
			inst.Clamp = true

			Expect(vega.Execute(vega.OpVPkMulF16, inst)).To(Succeed())

			// 2*2 = 4 clamps to 1.0; 0.5*1 stays 0.5.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Half, h16One)))
		})

		It("V_PK_FMA_F16 computes a fused multiply-add", func() {
			rf.WriteReg(0, 0, pack16(h16One, h16OnePt5))
			rf.WriteReg(1, 0, pack16(h16One, h16Two))
			rf.WriteReg(2, 0, pack16(h16One, h16Half))

			Expect(vega.Execute(vega.OpVPkFmaF16, inst)).To(Succeed())

			// 1.5*2 + 0.5 = 3.5 (0x4300); 1*1 + 1 = 2.
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Two, 0x4300)))
		})

		It("V_PK_MIN_F16 and V_PK_MAX_F16 select per half", func() {
			rf.WriteReg(0, 0, pack16(h16Four, h16One))
			rf.WriteReg(1, 0, pack16(h16Three, h16Two))

			Expect(vega.Execute(vega.OpVPkMinF16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Three, h16One)))

			Expect(vega.Execute(vega.OpVPkMaxF16, inst)).To(Succeed())
			Expect(rf.ReadReg(3, 0)).To(Equal(pack16(h16Four, h16Two)))
		})
	})

	Describe("inactive lanes", func() {
		It("should leave inactive lanes' destination untouched", func() {
			wf.Exec = 0x5 // lanes 0 and 2 only
			for lane := range vega.NumLanes {
				rf.WriteReg(0, lane, pack16(1, 1))
				rf.WriteReg(1, lane, pack16(2, 2))
				rf.WriteReg(3, lane, 0xDEADBEEF)
			}

			Expect(vega.Execute(vega.OpVPkAddU16, inst)).To(Succeed())

			for lane := range vega.NumLanes {
				if lane == 0 || lane == 2 {
					Expect(rf.ReadReg(3, lane)).To(Equal(pack16(3, 3)))
				} else {
					Expect(rf.ReadReg(3, lane)).To(Equal(uint32(0xDEADBEEF)), "lane %d", lane)
				}
			}
		})
	})

	Describe("dispatch", func() {
		It("should reject an unknown opcode", func() {
			Expect(vega.Execute(vega.Opcode(250), inst)).To(MatchError(ContainSubstring("unknown opcode")))
		})
	})
})
