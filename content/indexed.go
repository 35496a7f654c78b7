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

import "github.com/Ellipse0934/awkward-1.0/index"

// Indexed is a non-nullable gather layer (spec §3.2): row i is
// child[index[i]], with 0 <= index[i] < len(child) always. The
// width parameter O of the original index buffer is not preserved
// past construction; internally (like simplify_uniontype's canonical
// arms) everything widens to int64.
type Indexed struct {
	idx    index.Index[int64]
	child  Content
	ids    *Identities
	params Parameters
}

var _ Content = (*Indexed)(nil)
var _ indexedLayer = (*Indexed)(nil)

// NewIndexedW constructs an Indexed from an index buffer of any of
// the spec's permitted widths (i32, u32, i64), widening it to int64.
func NewIndexedW[W index.Width](idx index.Index[W], child Content) (*Indexed, error) {
	return NewIndexed(index.ToInt64(idx), child)
}

// NewIndexed constructs an Indexed from an already-int64 index.
func NewIndexed(idx index.Index[int64], child Content) (*Indexed, error) {
	for _, k := range idx.Values() {
		if k < 0 || int(k) >= child.Length() {
			return nil, validityErrorf("IndexedArray64", "", "index value %d out of range [0,%d)", k, child.Length())
		}
	}
	return &Indexed{idx: idx, child: child}, nil
}

func (x *Indexed) Length() int             { return x.idx.Len() }
func (x *Indexed) Identities() *Identities { return x.ids }
func (x *Indexed) Params() Parameters      { return x.params }
func (x *Indexed) kind() string            { return "IndexedArray64" }
func (x *Indexed) indexValues() index.Index[int64] { return x.idx }
func (x *Indexed) indexedChild() Content           { return x.child }

func (x *Indexed) WithIdentities(ids *Identities) Content {
	cp := *x
	cp.ids = ids
	return &cp
}

func (x *Indexed) WithParams(p Parameters) Content {
	cp := *x
	cp.params = p
	return &cp
}

// project eliminates the indirection, producing the dense content
// this Indexed logically denotes (spec §4.5).
func (x *Indexed) project() (Content, error) {
	return x.child.Carry(x.idx)
}

func (x *Indexed) Carry(idx index.Index[int64]) (Content, error) {
	selfVals := x.idx.Values()
	composed := make([]int64, idx.Len())
	for i, k := range idx.Values() {
		if k < 0 || int(k) >= x.Length() {
			return nil, validityErrorf(x.kind(), "", "carry index %d out of range [0,%d)", k, x.Length())
		}
		composed[i] = selfVals[k]
	}
	return &Indexed{idx: index.New(composed), child: x.child, ids: x.ids.Carry(idx), params: x.params}, nil
}

func (x *Indexed) Merge(other Content) (Content, error) {
	if !x.Params().Equal(other.Params()) {
		return mergeAsUnion(x, other)
	}
	if _, ok := other.(*Empty); ok {
		return x, nil
	}
	return mergeAsUnion(x, other)
}

func (x *Indexed) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, x)
}

// mergeable always reports false: two Indexed layers are never
// physically concatenated at the union-arm level, only coexist as
// distinct canonical arms (spec §4.4's fold loop relies on this to
// avoid re-entering Merge).
func (x *Indexed) mergeable(other Content, mergebool bool) bool { return false }

func (x *Indexed) ValidityError(path string) error {
	for _, k := range x.idx.Values() {
		if k < 0 || int(k) >= x.child.Length() {
			return validityErrorf(x.kind(), path, "index value %d out of range [0,%d)", k, x.child.Length())
		}
	}
	return x.child.ValidityError(path + ".content")
}

func (x *Indexed) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(x.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	dense, err := x.project()
	if err != nil {
		return index.Index[int64]{}, nil, err
	}
	return dense.offsetsAndFlattened(axis, depth)
}

func (x *Indexed) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, x.Length())
		if i < 0 || i >= x.Length() {
			return nil, invalidArgumentf(x.kind(), "index %d out of range for length %d", h.I, x.Length())
		}
		out := &Indexed{idx: x.idx.Slice(i, i+1), child: x.child, ids: x.ids.Slice(i, i+1)}
		return continueGetitem(out, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, x.Length())
		if step != 1 {
			out, err := x.Carry(rangeIndices(start, stop, step))
			if err != nil {
				return nil, err
			}
			return continueGetitem(out, tail, advanced)
		}
		out := &Indexed{idx: x.idx.Slice(start, stop), child: x.child, ids: x.ids.Slice(start, stop), params: x.params}
		return continueGetitem(out, tail, advanced)
	case ArrayItem:
		// Indexed is a flat indirection layer, not a jagged axis: each
		// element addresses exactly one child row, so an Array head
		// here is a plain gather rather than broadcastArrayIndex's
		// per-row fan-out.
		out, err := x.Carry(h.Index)
		if err != nil {
			return nil, err
		}
		return continueGetitem(out, tail, advanced)
	default:
		dense, err := x.project()
		if err != nil {
			return nil, err
		}
		return dense.getitemNext(head, tail, advanced)
	}
}
