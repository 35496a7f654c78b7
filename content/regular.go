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

// Regular is the fixed-size jagged-array layer (spec §3.2): row i is
// child[i*size:(i+1)*size), with size identical for every row.
type Regular struct {
	child  Content
	size   int
	length int
	ids    *Identities
	params Parameters
}

var _ Content = (*Regular)(nil)
var _ listLike = (*Regular)(nil)

// NewRegular constructs a Regular layer; size*length must not exceed
// len(child).
func NewRegular(child Content, size, length int) (*Regular, error) {
	if size < 0 {
		return nil, invalidArgumentf("RegularArray", "size %d must be non-negative", size)
	}
	if length < 0 {
		return nil, invalidArgumentf("RegularArray", "length %d must be non-negative", length)
	}
	if size*length > child.Length() {
		return nil, validityErrorf("RegularArray", "", "size*length=%d exceeds content length %d", size*length, child.Length())
	}
	return &Regular{child: child, size: size, length: length}, nil
}

func (r *Regular) Length() int             { return r.length }
func (r *Regular) Identities() *Identities { return r.ids }
func (r *Regular) Params() Parameters      { return r.params }
func (r *Regular) kind() string            { return "RegularArray" }
func (r *Regular) Size() int               { return r.size }

func (r *Regular) WithIdentities(ids *Identities) Content {
	cp := *r
	cp.ids = ids
	return &cp
}

func (r *Regular) WithParams(p Parameters) Content {
	cp := *r
	cp.params = p
	return &cp
}

func (r *Regular) row(i int) (int64, int64) {
	start := int64(i * r.size)
	return start, start + int64(r.size)
}

func (r *Regular) listOffsets() index.Index[int64] {
	out := make([]int64, r.length+1)
	for i := range out {
		out[i] = int64(i * r.size)
	}
	return index.New(out)
}

func (r *Regular) listChild() Content {
	c, err := r.child.Carry(rangeIndices(0, r.size*r.length, 1))
	if err != nil {
		panic(err)
	}
	return c
}

func (r *Regular) Carry(idx index.Index[int64]) (Content, error) {
	n := idx.Len()
	starts := make([]int64, n)
	stops := make([]int64, n)
	for k, v := range idx.Values() {
		if v < 0 || int(v) >= r.length {
			return nil, validityErrorf(r.kind(), "", "carry index %d out of range [0,%d)", v, r.length)
		}
		s, e := r.row(int(v))
		starts[k] = s
		stops[k] = e
	}
	return &List{starts: index.New(starts), stops: index.New(stops), child: r.child, ids: r.ids.Carry(idx), params: r.params}, nil
}

func (r *Regular) Merge(other Content) (Content, error) {
	if !r.Params().Equal(other.Params()) {
		return mergeAsUnion(r, other)
	}
	if _, ok := other.(*Empty); ok {
		return r, nil
	}
	lo := &ListOffset{offsets: r.listOffsets(), child: r.child, params: r.params}
	return lo.Merge(other)
}

func (r *Regular) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, r)
}

func (r *Regular) mergeable(other Content, mergebool bool) bool {
	o, ok := other.(*Regular)
	if ok {
		return r.size == o.size && r.Params().Equal(other.Params())
	}
	_, ok = other.(listLike)
	return ok && r.Params().Equal(other.Params())
}

func (r *Regular) ValidityError(path string) error {
	if r.size*r.length > r.child.Length() {
		return validityErrorf(r.kind(), path, "size*length=%d exceeds content length %d", r.size*r.length, r.child.Length())
	}
	return r.child.ValidityError(path + ".content")
}

func (r *Regular) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(r.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	if axis == depth+1 {
		c, err := r.child.Carry(rangeIndices(0, r.size*r.length, 1))
		if err != nil {
			return index.Index[int64]{}, nil, err
		}
		return r.listOffsets(), c, nil
	}
	return index.Index[int64]{}, nil, unsupportedf(r.kind(), "offsets_and_flattened: flattening more than one list axis below a RegularArray is not implemented")
}

func (r *Regular) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case At:
		i := normalizeIndex(h.I, r.length)
		if i < 0 || i >= r.length {
			return nil, invalidArgumentf(r.kind(), "index %d out of range for length %d", h.I, r.length)
		}
		s, e := r.row(i)
		row, err := r.child.Carry(rangeIndices(int(s), int(e), 1))
		if err != nil {
			return nil, err
		}
		return continueGetitem(row, tail, advanced)
	case RangeStep:
		start, stop, step := normalizeRange(h, r.length)
		if step == 1 {
			s, _ := r.row(start)
			_, e := r.row(stop - 1)
			if stop <= start {
				e = s
			}
			child, err := r.child.Carry(rangeIndices(int(s), int(e), 1))
			if err != nil {
				return nil, err
			}
			out := &Regular{child: child, size: r.size, length: stop - start, ids: r.ids.Slice(start, stop), params: r.params}
			return continueGetitem(out, tail, advanced)
		}
		out, err := r.Carry(rangeIndices(start, stop, step))
		if err != nil {
			return nil, err
		}
		return continueGetitem(out, tail, advanced)
	case ArrayItem:
		return getitemNextArray(r.row, r.length, r.child, r.ids, h, tail, advanced)
	case JaggedItem:
		lo := &ListOffset{offsets: r.listOffsets(), child: r.child, ids: r.ids, params: r.params}
		return lo.getitemJagged(h, tail, advanced)
	case MissingItem:
		return applyMissing(r, h, tail, advanced)
	default:
		newChild, err := r.child.getitemNext(head, emptyTail, advanced)
		if err != nil {
			return nil, err
		}
		out := &Regular{child: newChild, size: r.size, length: r.length, ids: r.ids}
		if headPreservesType(head) {
			out.params = r.params
		}
		return continueGetitem(out, tail, advanced)
	}
}
