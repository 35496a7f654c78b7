// Copyright (C) 2024 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package kernel

import "github.com/Ellipse0934/awkward-1.0/internal/memops"

// ZeroMask8 implements the zero_mask8 kernel family: it fills a
// freshly allocated byte mask of the given length with zeros
// (meaning "nothing masked" under the convention the caller chose).
// Grounded on internal/memops.ZeroMemory, which this function simply
// specializes to the byte-mask use case.
func ZeroMask8(length int) []byte {
	buf := make([]byte, length)
	memops.ZeroMemory(buf)
	return buf
}

// CarryArange32 returns [0,1,...,n-1] as int32, the 32-bit member of
// the carry_arange_{32,U32,64} kernel family.
func CarryArange32(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

// CarryArangeU32 returns [0,1,...,n-1] as uint32.
func CarryArangeU32(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// CarryArange64 returns [0,1,...,n-1] as int64.
func CarryArange64(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

// IndexCarry64 gathers src[idx[k]] for each k into a fresh slice,
// the index_carry_64 kernel. It bounds-checks every entry.
func IndexCarry64(src []int64, idx []int64) ([]int64, Error) {
	out := make([]int64, len(idx))
	for i, k := range idx {
		if k < 0 || int(k) >= len(src) {
			return nil, boundsError("index_carry_64: index %d out of range [0,%d)", k, len(src))
		}
		out[i] = src[k]
	}
	return out, Error{}
}

// IndexCarryNoCheck64 is the unchecked counterpart of IndexCarry64,
// used once a caller has already proven every idx[k] is in range
// (e.g. it was produced by Arange or a prior validated carry).
func IndexCarryNoCheck64(src []int64, idx []int64) []int64 {
	out := make([]int64, len(idx))
	for i, k := range idx {
		out[i] = src[k]
	}
	return out
}

// RegularizeRangeslice normalizes a (start,stop,step) range against
// a length, the regularize_rangeslice kernel: it fills in defaulted
// (negative/absent) members per Python/numpy slice semantics and
// clamps to [0,length] for a positive step and to [-1,length-1] for a
// negative one; a zero or absent step becomes 1.
func RegularizeRangeslice(start, stop, step *int64, length int64) (int64, int64, int64) {
	st := int64(1)
	if step != nil {
		st = *step
	}
	if st == 0 {
		st = 1
	}
	var lo, hi int64
	if st > 0 {
		lo, hi = 0, length
	} else {
		lo, hi = -1, length-1
	}
	norm := func(v int64) int64 {
		if v < 0 {
			v += length
		}
		if st > 0 {
			if v < 0 {
				v = 0
			}
			if v > length {
				v = length
			}
		} else {
			if v < -1 {
				v = -1
			}
			if v > length-1 {
				v = length - 1
			}
		}
		return v
	}
	a, b := lo, hi
	if start != nil {
		a = norm(*start)
	}
	if stop != nil {
		b = norm(*stop)
	}
	return a, b, st
}
