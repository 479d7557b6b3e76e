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

// NumLanes is the number of SIMD lanes per wavefront.
const NumLanes = 64

// Wavefront holds the per-wavefront state this core consumes: the active-lane
// predicate for the currently executing instruction and the accumulator-VGPR
// offset. Both are owned and updated by the external scheduler.
type Wavefront struct {
	// Exec is the active-lane predicate, one bit per lane. An instruction
	// commits a lane's result only when the lane's bit is set.
	Exec uint64

	// AccumOffset is added to the register index by the accumulator-VGPR
	// copy instructions.
	AccumOffset int
}

// LaneActive reports whether the predicate bit for the given lane is set.
func (w *Wavefront) LaneActive(lane int) bool {
	return w.Exec>>lane&1 != 0
}
