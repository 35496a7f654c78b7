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

// List is the independent-starts-and-stops jagged-array layer (spec
// §3.2): row i is child[starts[i]:stops[i]), with starts/stops
// allowed to be non-contiguous or out of order (unlike ListOffset).
type List struct {
	starts index.Index[int64]
	stops  index.Index[int64]
	child  Content
	ids    *Identities
	params Parameters
}

var _ Content = (*List)(nil)
var _ listLike = (*List)(nil)

// NewListW constructs from i32, u32, or i64 starts/stops buffers.
func NewListW[O index.Width](starts, stops index.Index[O], child Content) (*List, error) {
	return NewList(index.ToInt64(starts), index.ToInt64(stops), child)
}

// NewList constructs a List from already-int64 starts/stops.
func NewList(starts, stops index.Index[int64], child Content) (*List, error) {
	if starts.Len() != stops.Len() {
		return nil, invalidArgumentf("ListArray64", "len(starts)=%d != len(stops)=%d", starts.Len(), stops.Len())
	}
	for i := 0; i < starts.Len(); i++ {
		s, e := starts.Get(i), stops.Get(i)
		if e < s {
			return nil, validityErrorf("ListArray64", "", "stops[%d]=%d < starts[%d]=%d", i, e, i, s)
		}
		if int(e) > child.Length() {
			return nil, validityErrorf("ListArray64", "", "stops[%d]=%d exceeds content length %d", i, e, child.Length())
		}
	}
	return &List{starts: starts, stops: stops, child: child}, nil
}

func (l *List) Length() int             { return l.starts.Len() }
func (l *List) Identities() *Identities { return l.ids }
func (l *List) Params() Parameters      { return l.params }
func (l *List) kind() string            { return "ListArray64" }

func (l *List) WithIdentities(ids *Identities) Content {
	cp := *l
	cp.ids = ids
	return &cp
}

func (l *List) WithParams(p Parameters) Content {
	cp := *l
	cp.params = p
	return &cp
}

// compact materializes l as a canonical ListOffset by gathering every
// row's elements into a single contiguous flat child, the way
// ListArray64::toListOffsetArray64 does (spec_full grounding).
func (l *List) compact() (*ListOffset, error) {
	n := l.Length()
	rows := make([]Content, n)
	offsets := make([]int64, n+1)
	for i := 0; i < n; i++ {
		s, e := l.starts.Get(i), l.stops.Get(i)
		row, err := l.child.Carry(rangeIndices(int(s), int(e), 1))
		if err != nil {
			return nil, err
		}
		rows[i] = row
		offsets[i+1] = offsets[i] + (e - s)
	}
	flat, err := mergeRows(rows)
	if err != nil {
		return nil, err
	}
	return &ListOffset{offsets: index.New(offsets), child: flat, ids: l.ids, params: l.params}, nil
}

// listOffsets/listChild satisfy listLike for merge/flatten callers;
// both recompact on each call since List carries no cached canonical
// form. compact only fails if a row's starts/stops are already
// out of bounds, which construction and ValidityError rule out for a
// well-formed array, so panicking here mirrors how Index.Get treats
// an out-of-range access as programmer error rather than a Content
// error.
func (l *List) listOffsets() index.Index[int64] {
	lo, err := l.compact()
	if err != nil {
		panic(err)
	}
	return lo.offsets
}

func (l *List) listChild() Content {
	lo, err := l.compact()
	if err != nil {
		panic(err)
	}
	return lo.child
}

func (l *List) Carry(idx index.Index[int64]) (Content, error) {
	newStarts := l.starts.Carry(idx)
	newStops := l.stops.Carry(idx)
	return &List{starts: newStarts, stops: newStops, child: l.child, ids: l.ids.Carry(idx), params: l.params}, nil
}

func (l *List) Merge(other Content) (Content, error) {
	if !l.Params().Equal(other.Params()) {
		return mergeAsUnion(l, other)
	}
	if _, ok := other.(*Empty); ok {
		return l, nil
	}
	lo, err := l.compact()
	if err != nil {
		return nil, err
	}
	return lo.Merge(other)
}

func (l *List) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, l)
}

func (l *List) mergeable(other Content, mergebool bool) bool {
	_, ok := other.(listLike)
	return ok && l.Params().Equal(other.Params())
}

func (l *List) ValidityError(path string) error {
	for i := 0; i < l.Length(); i++ {
		s, e := l.starts.Get(i), l.stops.Get(i)
		if e < s {
			return validityErrorf(l.kind(), path, "stops[%d]=%d < starts[%d]=%d", i, e, i, s)
		}
		if int(e) > l.child.Length() {
			return validityErrorf(l.kind(), path, "stops[%d]=%d exceeds content length %d", i, e, l.child.Length())
		}
	}
	return l.child.ValidityError(path + ".content")
}

func (l *List) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(l.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	lo, err := l.compact()
	if err != nil {
		return index.Index[int64]{}, nil, err
	}
	return lo.offsetsAndFlattened(axis, depth)
}

func (l *List) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, l.Length())
		if i < 0 || i >= l.Length() {
			return nil, invalidArgumentf(l.kind(), "index %d out of range for length %d", h.I, l.Length())
		}
		s, e := l.starts.Get(i), l.stops.Get(i)
		row, err := l.child.Carry(rangeIndices(int(s), int(e), 1))
		if err != nil {
			return nil, err
		}
		return continueGetitem(row, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, l.Length())
		if step == 1 {
			out := &List{starts: l.starts.Slice(start, stop), stops: l.stops.Slice(start, stop), child: l.child, ids: l.ids.Slice(start, stop), params: l.params}
			return continueGetitem(out, tail, advanced)
		}
		out, err := l.Carry(rangeIndices(start, stop, step))
		if err != nil {
			return nil, err
		}
		return continueGetitem(out, tail, advanced)
	case ArrayItem:
		return getitemNextArray(func(i int) (int64, int64) { return l.starts.Get(i), l.stops.Get(i) }, l.Length(), l.child, l.ids, h, tail, advanced)
	case JaggedItem:
		lo, err := l.compact()
		if err != nil {
			return nil, err
		}
		return lo.getitemJagged(h, tail, advanced)
	case MissingItem:
		return applyMissing(l, h, tail, advanced)
	default:
		newChild, err := l.child.getitemNext(head, emptyTail, advanced)
		if err != nil {
			return nil, err
		}
		out := &List{starts: l.starts, stops: l.stops, child: newChild, ids: l.ids}
		if headPreservesType(head) {
			out.params = l.params
		}
		return continueGetitem(out, tail, advanced)
	}
}
