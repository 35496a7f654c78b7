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

// Package index implements the leaf-most buffer primitives of the node
// algebra: a shared, width-generic integer buffer (Index[W]) and a
// dense typed leaf buffer (Numeric).
package index

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Width is the set of integer widths an Index buffer may hold.
// This mirrors spec Index<W>, W ∈ {i8,u8,i32,u32,i64}.
type Width interface {
	~int8 | ~uint8 | ~int32 | ~uint32 | ~int64
}

// block is the shared backing store for one or more Index windows. A
// block is never mutated in place once any Index has been constructed
// over it; Go's garbage collector reclaims it once every Index
// sharing it is gone, so no explicit lifecycle tracking is kept here.
type block[W Width] struct {
	data []W
}

func newBlock[W Width](data []W) *block[W] {
	return &block[W]{data: data}
}

// Index is a logical sequence [i in 0..length) -> block[offset+i].
// It is shallow-sliceable in O(1): Slice never reallocates or copies.
type Index[W Width] struct {
	blk    *block[W]
	offset int
	length int
}

// New wraps data as an Index with no copy; data must not be mutated
// by the caller afterward (ownership transfers to the Index).
func New[W Width](data []W) Index[W] {
	return Index[W]{blk: newBlock(data), offset: 0, length: len(data)}
}

// Empty returns a zero-length Index of width W.
func Empty[W Width]() Index[W] {
	return Index[W]{}
}

// Len returns the logical length of the index.
func (x Index[W]) Len() int { return x.length }

// Get returns the i-th logical element.
func (x Index[W]) Get(i int) W {
	if i < 0 || i >= x.length {
		panic(fmt.Sprintf("index: Get(%d) out of range [0,%d)", i, x.length))
	}
	return x.blk.data[x.offset+i]
}

// Values returns a read-only view of the logical window.
// Callers must not mutate the returned slice.
func (x Index[W]) Values() []W {
	if x.blk == nil {
		return nil
	}
	return x.blk.data[x.offset : x.offset+x.length]
}

// Slice returns the O(1) window [start,stop) of x. It shares the
// backing block with x.
func (x Index[W]) Slice(start, stop int) Index[W] {
	if start < 0 || stop < start || stop > x.length {
		panic(fmt.Sprintf("index: Slice(%d,%d) out of range [0,%d)", start, stop, x.length))
	}
	out := x
	out.offset = x.offset + start
	out.length = stop - start
	return out
}

// Clone returns a deep copy of x's logical window, detached from
// the backing block of x.
func (x Index[W]) Clone() Index[W] {
	return New(slices.Clone(x.Values()))
}

// Carry gathers x[idx[k]] for each k, producing a new dense Index.
// Negative entries in idx are not meaningful for Index.Carry; the
// node algebra only calls this with a validated, non-negative index.
func (x Index[W]) Carry(idx Index[int64]) Index[W] {
	out := make([]W, idx.Len())
	src := x.Values()
	for i, k := range idx.Values() {
		out[i] = src[k]
	}
	return New(out)
}

// Append returns a new Index containing x's elements followed by y's.
func Append[W Width](x, y Index[W]) Index[W] {
	out := make([]W, x.Len()+y.Len())
	copy(out, x.Values())
	copy(out[x.Len():], y.Values())
	return New(out)
}

// Arange returns [0,1,2,...,n-1] as an Index[int64], mirroring the
// kernel ABI's carry_arange_{32,U32,64} family collapsed to one width.
func Arange(n int) Index[int64] {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return New(out)
}

// ToInt64 widens x to an Index[int64], the canonical width used
// internally by simplification and merge.
func ToInt64[W Width](x Index[W]) Index[int64] {
	out := make([]int64, x.Len())
	for i, v := range x.Values() {
		out[i] = int64(v)
	}
	return New(out)
}
