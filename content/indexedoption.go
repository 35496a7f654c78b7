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

// IndexedOption is the canonical option layer (spec §3.2, §4.3):
// row i is child[index[i]] when index[i]>=0, else missing. ByteMasked
// and BitMasked convert to it via ToIndexedOptionArray64; under
// simplify_optiontype a mask-based layer collapses into an
// IndexedOption only when it wraps another option layer, and Unmasked
// collapses to its child only when that child is option-typed or
// indexed.
type IndexedOption struct {
	idx    index.Index[int64]
	child  Content
	ids    *Identities
	params Parameters
}

var _ Content = (*IndexedOption)(nil)
var _ optionLayer = (*IndexedOption)(nil)
var _ indexedLayer = (*IndexedOption)(nil)

// NewIndexedOptionW constructs from an i32 or i64 index buffer,
// widening it to int64.
func NewIndexedOptionW[W interface{ ~int32 | ~int64 }](idx index.Index[W], child Content) (*IndexedOption, error) {
	return NewIndexedOption(index.ToInt64(idx), child)
}

// NewIndexedOption constructs an IndexedOption from an already-int64
// index, where a negative entry denotes a missing row.
func NewIndexedOption(idx index.Index[int64], child Content) (*IndexedOption, error) {
	for _, k := range idx.Values() {
		if k >= 0 && int(k) >= child.Length() {
			return nil, validityErrorf("IndexedOptionArray64", "", "index value %d out of range [0,%d)", k, child.Length())
		}
	}
	return &IndexedOption{idx: idx, child: child}, nil
}

func (x *IndexedOption) Length() int             { return x.idx.Len() }
func (x *IndexedOption) Identities() *Identities { return x.ids }
func (x *IndexedOption) Params() Parameters      { return x.params }
func (x *IndexedOption) kind() string            { return "IndexedOptionArray64" }
func (x *IndexedOption) indexValues() index.Index[int64] { return x.idx }
func (x *IndexedOption) indexedChild() Content           { return x.child }
func (x *IndexedOption) optionIndex64() index.Index[int64] { return x.idx }
func (x *IndexedOption) optionContent() Content            { return x.child }

func (x *IndexedOption) WithIdentities(ids *Identities) Content {
	cp := *x
	cp.ids = ids
	return &cp
}

func (x *IndexedOption) WithParams(p Parameters) Content {
	cp := *x
	cp.params = p
	return &cp
}

// simplifyOptionType composes with a nested option-typed child
// (IndexedOption, ByteMasked, BitMasked or Unmasked) into one
// IndexedOption over that child's content; any other child shape is
// returned as-is.
func (x *IndexedOption) simplifyOptionType() Content {
	inner, ok := asOptionLayer(x.child)
	if !ok {
		return x
	}
	composed := composeOptionIndex(x.idx, inner.optionIndex64())
	return &IndexedOption{idx: composed, child: inner.optionContent(), ids: x.ids, params: x.params}
}

func (x *IndexedOption) Carry(idx index.Index[int64]) (Content, error) {
	selfVals := x.idx.Values()
	composed := make([]int64, idx.Len())
	for i, k := range idx.Values() {
		if k < 0 || int(k) >= x.Length() {
			return nil, validityErrorf(x.kind(), "", "carry index %d out of range [0,%d)", k, x.Length())
		}
		composed[i] = selfVals[k]
	}
	return &IndexedOption{idx: index.New(composed), child: x.child, ids: x.ids.Carry(idx), params: x.params}, nil
}

func (x *IndexedOption) Merge(other Content) (Content, error) {
	if !x.Params().Equal(other.Params()) {
		return mergeAsUnion(x, other)
	}
	if _, ok := other.(*Empty); ok {
		return x, nil
	}
	return mergeAsUnion(x, other)
}

func (x *IndexedOption) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, x)
}

func (x *IndexedOption) mergeable(other Content, mergebool bool) bool { return false }

func (x *IndexedOption) ValidityError(path string) error {
	for _, k := range x.idx.Values() {
		if k >= 0 && int(k) >= x.child.Length() {
			return validityErrorf(x.kind(), path, "index value %d out of range [0,%d)", k, x.child.Length())
		}
	}
	return x.child.ValidityError(path + ".content")
}

func (x *IndexedOption) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(x.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	// Present rows only; the offsets/flattened result for an option
	// layer propagates from the child over the present positions
	// (spec §4.7: "option layers... propagate").
	present := make([]int64, 0, x.Length())
	for _, k := range x.idx.Values() {
		if k >= 0 {
			present = append(present, k)
		}
	}
	dense, err := x.child.Carry(index.New(present))
	if err != nil {
		return index.Index[int64]{}, nil, err
	}
	return dense.offsetsAndFlattened(axis, depth)
}

func (x *IndexedOption) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, x.Length())
		if i < 0 || i >= x.Length() {
			return nil, invalidArgumentf(x.kind(), "index %d out of range for length %d", h.I, x.Length())
		}
		out := &IndexedOption{idx: x.idx.Slice(i, i+1), child: x.child, ids: x.ids.Slice(i, i+1), params: x.params}
		return simplifyThenGetitem(out, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, x.Length())
		if step != 1 {
			out, err := x.Carry(rangeIndices(start, stop, step))
			if err != nil {
				return nil, err
			}
			return simplifyThenGetitem(out, tail, advanced)
		}
		out := &IndexedOption{idx: x.idx.Slice(start, stop), child: x.child, ids: x.ids.Slice(start, stop), params: x.params}
		return simplifyThenGetitem(out, tail, advanced)
	case ArrayItem:
		// IndexedOption is a flat indirection layer like Indexed; an
		// Array head here is a plain gather, not a jagged-axis
		// broadcast.
		out, err := x.Carry(h.Index)
		if err != nil {
			return nil, err
		}
		return simplifyThenGetitem(out, tail, advanced)
	case MissingItem:
		return applyMissing(x, h, tail, advanced)
	default:
		// Field/Fields/Ellipsis/NewAxis/Jagged: push into the child
		// with an empty tail, then rewrap with the same option index
		// (spec §4.2: "mark option semantics and delegate to content;
		// re-wrap result in an option node; then simplify").
		newChild, err := pushHeadInEmptyTail(x.child, head, advanced)
		if err != nil {
			return nil, err
		}
		out := &IndexedOption{idx: x.idx, child: newChild, ids: x.ids}
		if headPreservesType(head) {
			out.params = x.params
		}
		return simplifyThenGetitem(out, tail, advanced)
	}
}

// simplifyThenGetitem applies simplify_optiontype to an option-typed
// node before continuing the tail, the way every boundary-axis option
// rule in spec §4.2/§4.3 ends.
func simplifyThenGetitem(c Content, tail Slice, advanced *index.Index[int64]) (Content, error) {
	if ol, ok := asOptionLayer(c); ok {
		c = ol.simplifyOptionType()
	}
	return continueGetitem(c, tail, advanced)
}
