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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vsoriap/gem5/vega"
)

var _ = Describe("accumulator VGPR copies", func() {
	var (
		rf   *vega.VRegFile
		wf   *vega.Wavefront
		inst *vega.DynInst
	)

	BeforeEach(func() {
		rf = vega.NewVRegFile(16)
		wf = &vega.Wavefront{Exec: ^uint64(0), AccumOffset: 4}
		inst = &vega.DynInst{
			Fields:    vega.Fields{Src0: 0, VDst: 3},
			Wavefront: wf,
			Regs:      rf,
		}
	})

	Describe("V_ACCVGPR_READ", func() {
		It("should copy the offset accumulator register into the destination", func() {
			for lane := range vega.NumLanes {
				rf.WriteReg(4, lane, uint32(0x1000+lane))
			}

			Expect(vega.Execute(vega.OpVAccVGPRRead, inst)).To(Succeed())

			for lane := range vega.NumLanes {
				Expect(rf.ReadReg(3, lane)).To(Equal(uint32(0x1000 + lane)))
			}
		})

		It("should skip inactive lanes", func() {
			wf.Exec = 0x3 // lanes 0 and 1
			for lane := range vega.NumLanes {
				rf.WriteReg(4, lane, uint32(lane))
				rf.WriteReg(3, lane, 0xDEADBEEF)
			}

			Expect(vega.Execute(vega.OpVAccVGPRRead, inst)).To(Succeed())

			Expect(rf.ReadReg(3, 0)).To(Equal(uint32(0)))
			Expect(rf.ReadReg(3, 1)).To(Equal(uint32(1)))
			for lane := 2; lane < vega.NumLanes; lane++ {
				Expect(rf.ReadReg(3, lane)).To(Equal(uint32(0xDEADBEEF)), "lane %d", lane)
			}
		})
	})

	Describe("V_ACCVGPR_WRITE", func() {
		It("should copy the source into the offset accumulator register", func() {
			inst.VDst = 2
			for lane := range vega.NumLanes {
				rf.WriteReg(0, lane, uint32(0x2000+lane))
			}

			Expect(vega.Execute(vega.OpVAccVGPRWrite, inst)).To(Succeed())

			for lane := range vega.NumLanes {
				Expect(rf.ReadReg(6, lane)).To(Equal(uint32(0x2000 + lane)))
			}
		})

		It("should address the architectural registers directly at offset zero", func() {
			wf.AccumOffset = 0
			inst.VDst = 5
			rf.WriteReg(0, 0, 42)

			Expect(vega.Execute(vega.OpVAccVGPRWrite, inst)).To(Succeed())

			Expect(rf.ReadReg(5, 0)).To(Equal(uint32(42)))
		})
	})
})
