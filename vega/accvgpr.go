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

// The accumulator-VGPR copies are identity operations under the active-lane
// predicate; the accumulator register aliases the architectural register at
// index + the wavefront's accumulator offset.

// VAccVGPRRead copies an accumulator register into a vector register.
func VAccVGPRRead(inst *DynInst) error {
	src := NewSrcOperand32(inst.Regs, inst.Src0+inst.Wavefront.AccumOffset)
	vdst := NewDstOperand32(inst.Regs, inst.VDst)

	src.Read()

	for lane := range NumLanes {
		if !inst.Wavefront.LaneActive(lane) {
			continue
		}
		vdst.SetLane(lane, src.Lane(lane))
	}

	vdst.Write()
	return nil
}

// VAccVGPRWrite copies a vector register into an accumulator register.
func VAccVGPRWrite(inst *DynInst) error {
	src := NewSrcOperand32(inst.Regs, inst.Src0)
	vdst := NewDstOperand32(inst.Regs, inst.VDst+inst.Wavefront.AccumOffset)

	src.Read()

	for lane := range NumLanes {
		if !inst.Wavefront.LaneActive(lane) {
			continue
		}
		vdst.SetLane(lane, src.Lane(lane))
	}

	vdst.Write()
	return nil
}
