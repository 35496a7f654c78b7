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

// Empty is a typeless, length-zero array (spec §3.2). It merges
// trivially with anything (spec §4.6 rule 2 / testable property 4).
type Empty struct {
	ids    *Identities
	params Parameters
}

var _ Content = (*Empty)(nil)

// NewEmpty returns a fresh Empty node.
func NewEmpty() *Empty { return &Empty{} }

func (e *Empty) Length() int               { return 0 }
func (e *Empty) Identities() *Identities   { return e.ids }
func (e *Empty) Params() Parameters        { return e.params }
func (e *Empty) kind() string              { return "Empty" }

func (e *Empty) WithIdentities(ids *Identities) Content {
	cp := *e
	cp.ids = ids
	return &cp
}

func (e *Empty) WithParams(p Parameters) Content {
	cp := *e
	cp.params = p
	return &cp
}

func (e *Empty) Carry(idx index.Index[int64]) (Content, error) {
	if idx.Len() == 0 {
		return e, nil
	}
	return nil, validityErrorf(e.kind(), "", "carry(%d) on an Empty array", idx.Len())
}

func (e *Empty) Merge(other Content) (Content, error) {
	if !e.Params().Equal(other.Params()) {
		return mergeAsUnion(e, other)
	}
	return other, nil
}

func (e *Empty) reverseMerge(left Content) (Content, error) {
	return left, nil
}

func (e *Empty) mergeable(other Content, mergebool bool) bool {
	_, ok := other.(*Empty)
	return ok && e.Params().Equal(other.Params())
}

func (e *Empty) ValidityError(path string) error { return nil }

func (e *Empty) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(e.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	return index.Index[int64]{}, e, nil
}

func (e *Empty) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch head.(type) {
	case EllipsisItem:
		return continueGetitem(e, tail, advanced)
	case NewAxisItem:
		return e, nil
	default:
		// An Empty array has nothing to index into; any
		// element-addressing head on it yields another Empty.
		return e, nil
	}
}
