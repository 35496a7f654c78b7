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

package index

import (
	"fmt"
	"unsafe"
)

// Dtype names the primitive element type of a Numeric leaf buffer.
// The node algebra treats Numeric as an opaque dense payload; kernels
// that execute over its bytes are out of scope (spec §1 non-goals).
type Dtype uint8

const (
	Float64 Dtype = iota
	Float32
	Int64
	Int32
	Int8
	Uint8
	Bool
)

// ItemSize returns the byte width of one scalar of this dtype
// (ignoring any inner-dimension repetition folded into a row).
func (d Dtype) ItemSize() int { return d.itemsize() }

func (d Dtype) itemsize() int {
	switch d {
	case Float64, Int64:
		return 8
	case Float32, Int32:
		return 4
	case Int8, Uint8, Bool:
		return 1
	default:
		panic("index: unknown dtype")
	}
}

func (d Dtype) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int64:
		return "int64"
	case Int32:
		return "int32"
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Numeric is a dense, multi-dimensional, strided leaf buffer (spec
// §3.1). Only the outermost dimension participates in node-algebra
// length bookkeeping; inner dimensions are opaque "item" shape.
type Numeric struct {
	Type    Dtype
	Shape   []int // Shape[0] is the outer (node) length
	raw     []byte
	offset  int // byte offset of the outer-dim window
	itemLen int // byte length of one outer-dim row (product of Shape[1:] * itemsize)
}

// NewNumeric constructs a Numeric buffer from raw bytes with the
// given dtype and shape. raw must contain exactly
// shape[0]*itemLen bytes (not copied).
func NewNumeric(dt Dtype, shape []int, raw []byte) Numeric {
	itemLen := dt.itemsize()
	for _, d := range shape[1:] {
		itemLen *= d
	}
	return Numeric{Type: dt, Shape: shape, raw: raw, itemLen: itemLen}
}

// Int64Buffer wraps vals as a rank-1 Int64 Numeric, reinterpreting
// the slice's backing array as bytes rather than copying it. Used by
// structural.go's axis-0 helpers (num, local_index) to materialize a
// small computed result as a leaf.
func Int64Buffer(vals []int64) Numeric {
	if len(vals) == 0 {
		return NewNumeric(Int64, []int{0}, nil)
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*8)
	return NewNumeric(Int64, []int{len(vals)}, raw)
}

// Float64Buffer wraps vals as a rank-1 Float64 Numeric, the
// floating-point analogue of Int64Buffer.
func Float64Buffer(vals []float64) Numeric {
	if len(vals) == 0 {
		return NewNumeric(Float64, []int{0}, nil)
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&vals[0])), len(vals)*8)
	return NewNumeric(Float64, []int{len(vals)}, raw)
}

// BoolBuffer wraps vals as a rank-1 Bool Numeric, one byte per value.
func BoolBuffer(vals []bool) Numeric {
	raw := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			raw[i] = 1
		}
	}
	return NewNumeric(Bool, []int{len(vals)}, raw)
}

// Len returns the outer dimension's length.
func (n Numeric) Len() int {
	if len(n.Shape) == 0 {
		return 0
	}
	return n.Shape[0]
}

// Bytes returns the raw window's bytes.
func (n Numeric) Bytes() []byte {
	return n.raw[n.offset : n.offset+n.Len()*n.itemLen]
}

// Slice returns the O(1) window [start,stop) along the outer dim.
func (n Numeric) Slice(start, stop int) Numeric {
	if start < 0 || stop < start || stop > n.Len() {
		panic(fmt.Sprintf("index: Numeric.Slice(%d,%d) out of range [0,%d)", start, stop, n.Len()))
	}
	out := n
	out.offset = n.offset + start*n.itemLen
	shape := append([]int(nil), n.Shape...)
	shape[0] = stop - start
	out.Shape = shape
	return out
}

// Carry gathers rows idx[k] into a freshly allocated Numeric buffer.
func (n Numeric) Carry(idx Index[int64]) Numeric {
	out := make([]byte, idx.Len()*n.itemLen)
	src := n.Bytes()
	for i, k := range idx.Values() {
		copy(out[i*n.itemLen:(i+1)*n.itemLen], src[int(k)*n.itemLen:(int(k)+1)*n.itemLen])
	}
	shape := append([]int(nil), n.Shape...)
	shape[0] = idx.Len()
	return NewNumeric(n.Type, shape, out)
}

// Concat concatenates two Numeric buffers of identical dtype and
// inner shape along the outer dimension.
func Concat(a, b Numeric) (Numeric, error) {
	if a.Type != b.Type {
		return Numeric{}, fmt.Errorf("index: cannot concat Numeric of dtype %s and %s", a.Type, b.Type)
	}
	if len(a.Shape) != len(b.Shape) {
		return Numeric{}, fmt.Errorf("index: cannot concat Numeric of rank %d and %d", len(a.Shape), len(b.Shape))
	}
	for i := 1; i < len(a.Shape); i++ {
		if a.Shape[i] != b.Shape[i] {
			return Numeric{}, fmt.Errorf("index: cannot concat Numeric with mismatched inner shape at axis %d", i)
		}
	}
	out := make([]byte, len(a.Bytes())+len(b.Bytes()))
	copy(out, a.Bytes())
	copy(out[len(a.Bytes()):], b.Bytes())
	shape := append([]int(nil), a.Shape...)
	shape[0] = a.Len() + b.Len()
	return NewNumeric(a.Type, shape, out), nil
}
