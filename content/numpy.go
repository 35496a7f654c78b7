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

package content

import (
	"github.com/Ellipse0934/awkward-1.0/index"
	"github.com/Ellipse0934/awkward-1.0/internal/kernel"
)

// Numpy is a dense primitive leaf (spec §3.2): the terminal node of
// every node tree, wrapping an index.Numeric buffer.
type Numpy struct {
	buf    index.Numeric
	ids    *Identities
	params Parameters

	// spill/spillLen hold a compressed cold-storage snapshot left by
	// DeepCopy for a buffer large enough to be worth spilling; nil
	// when no snapshot was taken.
	spill    []byte
	spillLen int
}

var _ Content = (*Numpy)(nil)

// NewNumpy wraps buf as a Numpy leaf.
func NewNumpy(buf index.Numeric) *Numpy {
	return &Numpy{buf: buf}
}

func (n *Numpy) Length() int             { return n.buf.Len() }
func (n *Numpy) Identities() *Identities { return n.ids }
func (n *Numpy) Params() Parameters      { return n.params }
func (n *Numpy) kind() string            { return "NumpyArray" }
func (n *Numpy) Buffer() index.Numeric   { return n.buf }

func (n *Numpy) WithIdentities(ids *Identities) Content {
	cp := *n
	cp.ids = ids
	return &cp
}

func (n *Numpy) WithParams(p Parameters) Content {
	cp := *n
	cp.params = p
	return &cp
}

// DeepCopy materializes an owned copy of the underlying buffer. When
// the buffer is large, a zstd-compressed snapshot of the old bytes is
// kept (recoverable via Spilled/Unspill) and the original backing
// bytes are handed to the kernel package's spill advisory, mirroring
// how sneller's vm package returns large scratch allocations to the
// OS instead of pooling them forever.
func (n *Numpy) DeepCopy() *Numpy {
	old := n.buf.Bytes()
	carried := n.buf.Carry(index.Arange(n.buf.Len()))
	cp := &Numpy{buf: carried, ids: n.ids, params: n.params}
	if len(old) > deepCopySpillThreshold {
		cp.spill = kernel.CompressSpill(old)
		cp.spillLen = len(old)
		kernel.AdviseSpill(old)
	}
	return cp
}

// Spilled reports whether DeepCopy retained a compressed snapshot of
// the buffer this Numpy replaced, and if so its compressed size.
func (n *Numpy) Spilled() (compressedBytes int, ok bool) {
	return len(n.spill), n.spill != nil
}

// Unspill decompresses the snapshot kept by DeepCopy, if any. It does
// not mutate n; it is a cold-storage readback, not an undo.
func (n *Numpy) Unspill() ([]byte, error) {
	if n.spill == nil {
		return nil, invalidArgumentf(n.kind(), "unspill: no spilled snapshot present")
	}
	return kernel.DecompressSpill(n.spill, n.spillLen)
}

// deepCopySpillThreshold is the buffer size (in bytes) above which
// DeepCopy advises the kernel that the original backing bytes are
// no longer needed.
const deepCopySpillThreshold = 1 << 20

func (n *Numpy) Carry(idx index.Index[int64]) (Content, error) {
	return &Numpy{buf: n.buf.Carry(idx), ids: n.ids.Carry(idx), params: n.params}, nil
}

func (n *Numpy) Merge(other Content) (Content, error) {
	if !n.Params().Equal(other.Params()) {
		return mergeAsUnion(n, other)
	}
	if _, ok := other.(*Empty); ok {
		return n, nil
	}
	switch o := other.(type) {
	case *Numpy:
		buf, err := index.Concat(n.buf, o.buf)
		if err != nil {
			return nil, invalidArgumentf(n.kind(), "%s", err)
		}
		ids := mergeIdentities(n.ids, n.Length(), o.ids, o.Length())
		return &Numpy{buf: buf, ids: ids, params: n.params}, nil
	default:
		return other.reverseMerge(n)
	}
}

func (n *Numpy) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, n)
}

func (n *Numpy) mergeable(other Content, mergebool bool) bool {
	o, ok := other.(*Numpy)
	if !ok {
		return false
	}
	if !n.Params().Equal(other.Params()) {
		return false
	}
	return n.buf.Type == o.buf.Type
}

func (n *Numpy) ValidityError(path string) error { return nil }

func (n *Numpy) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(n.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	if len(n.buf.Shape) < 2 {
		return index.Index[int64]{}, nil, invalidArgumentf(n.kind(), "axis %d exceeds the depth of a 1-dimensional NumpyArray", axis)
	}
	// A multidimensional Numpy buffer is itself the "list layer" at
	// its one remaining inner axis: its regular inner dimension
	// becomes uniform offsets.
	inner := n.buf.Shape[1]
	offsets := make([]int64, n.Length()+1)
	for i := range offsets {
		offsets[i] = int64(i * inner)
	}
	flatShape := append([]int{n.Length() * inner}, n.buf.Shape[2:]...)
	flat := index.NewNumeric(n.buf.Type, flatShape, n.buf.Bytes())
	return index.New(offsets), &Numpy{buf: flat, params: n.params}, nil
}

func (n *Numpy) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, n.Length())
		if i < 0 || i >= n.Length() {
			return nil, invalidArgumentf(n.kind(), "index %d out of range for length %d", h.I, n.Length())
		}
		return continueGetitem(&Numpy{buf: n.buf.Slice(i, i+1), ids: n.ids.Slice(i, i+1)}, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, n.Length())
		if step != 1 {
			out, err := n.Carry(rangeIndices(start, stop, step))
			if err != nil {
				return nil, err
			}
			return continueGetitem(out, tail, advanced)
		}
		out := &Numpy{buf: n.buf.Slice(start, stop), ids: n.ids.Slice(start, stop), params: n.params}
		return continueGetitem(out, tail, advanced)
	case EllipsisItem:
		return continueGetitem(n, tail, advanced)
	case NewAxisItem:
		return n, nil
	case ArrayItem:
		// A terminal NumpyArray is the leaf of the recursion: once
		// advanced, each outer row has already picked exactly one
		// position out of h.Index (broadcastArrayIndex's job, done by
		// the enclosing list layer), so h.Index itself is consumed
		// with no further fan-out here; not-yet-advanced is the plain
		// flat carry a bare Array head applies to a 1-D array.
		var out Content
		var err error
		if advanced == nil {
			out, err = n.Carry(h.Index)
		} else {
			flathead := h.Index.Values()
			gather := make([]int64, advanced.Len())
			for i := 0; i < advanced.Len(); i++ {
				pos := advanced.Get(i)
				if pos < 0 || int(pos) >= len(flathead) {
					return nil, invalidArgumentf(n.kind(), "advanced position %d out of range for a %d-element index", pos, len(flathead))
				}
				gather[i] = flathead[pos]
			}
			out, err = n.Carry(index.New(gather))
		}
		if err != nil {
			return nil, err
		}
		return continueGetitem(out, tail, advanced)
	default:
		return nil, unsupportedf(n.kind(), "getitem_next(%T) is not supported on a terminal NumpyArray", head)
	}
}
