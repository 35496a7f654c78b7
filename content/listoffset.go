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

// ListOffset is the canonical, contiguous jagged-array layer (spec
// §3.2): row i is child[offsets[i]:offsets[i+1]).
type ListOffset struct {
	offsets index.Index[int64]
	child   Content
	ids     *Identities
	params  Parameters
}

var _ Content = (*ListOffset)(nil)
var _ listLike = (*ListOffset)(nil)

// listLike lets List and Regular be normalized against ListOffset's
// logic (merge, flatten) without a type switch over all three list
// shapes.
type listLike interface {
	Content
	listOffsets() index.Index[int64]
	listChild() Content
}

// NewListOffsetW constructs from an i32, u32, or i64 offsets buffer.
func NewListOffsetW[O index.Width](offsets index.Index[O], child Content) (*ListOffset, error) {
	return NewListOffset(index.ToInt64(offsets), child)
}

// NewListOffset constructs a ListOffset from an already-int64 offsets
// buffer.
func NewListOffset(offsets index.Index[int64], child Content) (*ListOffset, error) {
	if err := kernel.OffsetsMonotonic(offsets.Values()); !err.IsOK() {
		return nil, validityErrorf("ListOffsetArray64", "", "%s", err.Message)
	}
	if offsets.Len() > 0 {
		last := offsets.Get(offsets.Len() - 1)
		if int(last) > child.Length() {
			return nil, validityErrorf("ListOffsetArray64", "", "offsets[-1]=%d exceeds content length %d", last, child.Length())
		}
	}
	return &ListOffset{offsets: offsets, child: child}, nil
}

func (l *ListOffset) Length() int {
	if l.offsets.Len() == 0 {
		return 0
	}
	return l.offsets.Len() - 1
}
func (l *ListOffset) Identities() *Identities { return l.ids }
func (l *ListOffset) Params() Parameters      { return l.params }
func (l *ListOffset) kind() string            { return "ListOffsetArray64" }

func (l *ListOffset) WithIdentities(ids *Identities) Content {
	cp := *l
	cp.ids = ids
	return &cp
}

func (l *ListOffset) WithParams(p Parameters) Content {
	cp := *l
	cp.params = p
	return &cp
}

func (l *ListOffset) listOffsets() index.Index[int64] { return l.offsets }
func (l *ListOffset) listChild() Content              { return l.child }

func (l *ListOffset) row(i int) (int64, int64) {
	return l.offsets.Get(i), l.offsets.Get(i + 1)
}

func (l *ListOffset) rowCarry(start, stop int64) (Content, error) {
	return l.child.Carry(rangeIndices(int(start), int(stop), 1))
}

func (l *ListOffset) Carry(idx index.Index[int64]) (Content, error) {
	n := idx.Len()
	lens := make([]int64, n)
	rows := make([]Content, n)
	for k, r := range idx.Values() {
		if r < 0 || int(r) >= l.Length() {
			return nil, validityErrorf(l.kind(), "", "carry index %d out of range [0,%d)", r, l.Length())
		}
		start, stop := l.row(int(r))
		rc, err := l.rowCarry(start, stop)
		if err != nil {
			return nil, err
		}
		rows[k] = rc
		lens[k] = stop - start
	}
	newOffsets := make([]int64, n+1)
	for i, ln := range lens {
		newOffsets[i+1] = newOffsets[i] + ln
	}
	flat, err := mergeRows(rows)
	if err != nil {
		return nil, err
	}
	return &ListOffset{offsets: index.New(newOffsets), child: flat, ids: l.ids.Carry(idx), params: l.params}, nil
}

// mergeRows concatenates a sequence of same-shaped row contents into
// one flat Content, in order.
func mergeRows(rows []Content) (Content, error) {
	if len(rows) == 0 {
		return NewEmpty(), nil
	}
	acc := rows[0]
	for _, r := range rows[1:] {
		m, err := acc.Merge(r)
		if err != nil {
			return nil, err
		}
		acc = m
	}
	return acc, nil
}

func (l *ListOffset) Merge(other Content) (Content, error) {
	if !l.Params().Equal(other.Params()) {
		return mergeAsUnion(l, other)
	}
	if _, ok := other.(*Empty); ok {
		return l, nil
	}
	if ol, ok := other.(listLike); ok {
		oOffsets := ol.listOffsets().Values()
		shift := int64(l.child.Length())
		newOffsets := make([]int64, 0, l.offsets.Len()+len(oOffsets)-1)
		newOffsets = append(newOffsets, l.offsets.Values()...)
		for _, v := range oOffsets[1:] {
			newOffsets = append(newOffsets, v+shift)
		}
		newChild, err := l.child.Merge(ol.listChild())
		if err != nil {
			return nil, err
		}
		ids := mergeIdentities(l.ids, l.Length(), other.Identities(), other.Length())
		return &ListOffset{offsets: index.New(newOffsets), child: newChild, ids: ids, params: l.params}, nil
	}
	return other.reverseMerge(l)
}

func (l *ListOffset) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, l)
}

func (l *ListOffset) mergeable(other Content, mergebool bool) bool {
	_, ok := other.(listLike)
	return ok && l.Params().Equal(other.Params())
}

func (l *ListOffset) ValidityError(path string) error {
	if err := kernel.OffsetsMonotonic(l.offsets.Values()); !err.IsOK() {
		return validityErrorf(l.kind(), path, "%s", err.Message)
	}
	if l.offsets.Len() > 0 {
		last := l.offsets.Get(l.offsets.Len() - 1)
		if int(last) > l.child.Length() {
			return validityErrorf(l.kind(), path, "offsets[-1]=%d exceeds content length %d", last, l.child.Length())
		}
	}
	return l.child.ValidityError(path + ".content")
}

func (l *ListOffset) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(l.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	if axis == depth+1 {
		offs := l.offsets.Values()
		if len(offs) == 0 {
			return index.New([]int64{0}), l.child, nil
		}
		base := offs[0]
		last := offs[len(offs)-1]
		normalized := make([]int64, len(offs))
		for i, v := range offs {
			normalized[i] = v - base
		}
		flat, err := l.child.Carry(rangeIndices(int(base), int(last), 1))
		if err != nil {
			return index.Index[int64]{}, nil, err
		}
		return index.New(normalized), flat, nil
	}
	return index.Index[int64]{}, nil, unsupportedf(l.kind(), "offsets_and_flattened: flattening more than one list axis below a ListOffsetArray64 is not implemented")
}

func (l *ListOffset) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, l.Length())
		if i < 0 || i >= l.Length() {
			return nil, invalidArgumentf(l.kind(), "index %d out of range for length %d", h.I, l.Length())
		}
		start, stop := l.row(i)
		row, err := l.rowCarry(start, stop)
		if err != nil {
			return nil, err
		}
		return continueGetitem(row, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, l.Length())
		if step == 1 {
			out := &ListOffset{offsets: l.offsets.Slice(start, stop+1), child: l.child, ids: l.ids.Slice(start, stop), params: l.params}
			return continueGetitem(out, tail, advanced)
		}
		out, err := l.Carry(rangeIndices(start, stop, step))
		if err != nil {
			return nil, err
		}
		return continueGetitem(out, tail, advanced)
	case ArrayItem:
		return getitemNextArray(l.row, l.Length(), l.child, l.ids, h, tail, advanced)
	case JaggedItem:
		return l.getitemJagged(h, tail, advanced)
	case MissingItem:
		return applyMissing(l, h, tail, advanced)
	default:
		newChild, err := l.child.getitemNext(head, emptyTail, advanced)
		if err != nil {
			return nil, err
		}
		out := &ListOffset{offsets: l.offsets, child: newChild, ids: l.ids}
		if headPreservesType(head) {
			out.params = l.params
		}
		return continueGetitem(out, tail, advanced)
	}
}

func (l *ListOffset) getitemJagged(h JaggedItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	n := l.Length()
	rows := make([]Content, n)
	lens := make([]int64, n)
	for i := 0; i < n; i++ {
		start, stop := l.row(i)
		row, err := l.rowCarry(start, stop)
		if err != nil {
			return nil, err
		}
		a, b := h.Offsets.Get(i), h.Offsets.Get(i+1)
		sub := h.Content[a:b]
		out, err := Getitem(row, sub)
		if err != nil {
			return nil, err
		}
		rows[i] = out
		lens[i] = int64(out.Length())
	}
	newOffsets := make([]int64, n+1)
	for i, ln := range lens {
		newOffsets[i+1] = newOffsets[i] + ln
	}
	flat, err := mergeRows(rows)
	if err != nil {
		return nil, err
	}
	out := &ListOffset{offsets: index.New(newOffsets), child: flat, ids: l.ids}
	return continueGetitem(out, tail, advanced)
}
