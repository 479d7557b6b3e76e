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

// Package vega emulates the VOP3P packed-SIMD vector ALU instruction class
// of the Vega ISA: packed 16-bit integer and half-precision arithmetic,
// mixed-width dot-product reductions, the packed single-precision family
// operating on 64-bit lane values, and the accumulator-VGPR copies.
package vega

// Mask returns a mask of the low width bits. width must be at most 32.
func Mask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return 1<<width - 1
}

// ExtractField returns sub-element index of word, where word is partitioned
// into equal fields of the given width. The result is zero-extended; index
// is caller-guaranteed in range.
func ExtractField(word uint32, width, index uint) uint32 {
	return word >> (index * width) & Mask(width)
}

// SignExtend reinterprets the low width bits of v as a two's-complement
// value and sign-extends it to 32 bits.
func SignExtend(v uint32, width uint) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}

// LowDword and HighDword split a 64-bit lane value into its two independently
// addressable 32-bit halves.
func LowDword(v uint64) uint32 {
	return uint32(v)
}

func HighDword(v uint64) uint32 {
	return uint32(v >> 32)
}

// PackDwords assembles a 64-bit lane value from its two halves.
func PackDwords(high, low uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}

// packHalves assembles a 32-bit destination word from two 16-bit results.
func packHalves(high, low uint16) uint32 {
	return uint32(high)<<16 | uint32(low)
}

func lowHalf(v uint32) uint16 {
	return uint16(v)
}

func highHalf(v uint32) uint16 {
	return uint16(v >> 16)
}
