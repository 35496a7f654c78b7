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

// ByteMasked is a one-byte-per-row option layer (spec §3.2): row i is
// missing iff (mask[i]!=0) != validWhen. len(child) must be >=
// len(mask).
type ByteMasked struct {
	mask      index.Index[int8]
	child     Content
	validWhen bool
	ids       *Identities
	params    Parameters
}

var _ Content = (*ByteMasked)(nil)
var _ optionLayer = (*ByteMasked)(nil)

// NewByteMasked constructs a ByteMasked layer.
func NewByteMasked(mask index.Index[int8], child Content, validWhen bool) (*ByteMasked, error) {
	if child.Length() < mask.Len() {
		return nil, validityErrorf("ByteMaskedArray", "", "content length %d is less than mask length %d", child.Length(), mask.Len())
	}
	return &ByteMasked{mask: mask, child: child, validWhen: validWhen}, nil
}

func (b *ByteMasked) Length() int             { return b.mask.Len() }
func (b *ByteMasked) Identities() *Identities { return b.ids }
func (b *ByteMasked) Params() Parameters      { return b.params }
func (b *ByteMasked) kind() string            { return "ByteMaskedArray" }

func (b *ByteMasked) WithIdentities(ids *Identities) Content {
	cp := *b
	cp.ids = ids
	return &cp
}

func (b *ByteMasked) WithParams(p Parameters) Content {
	cp := *b
	cp.params = p
	return &cp
}

func (b *ByteMasked) isValid(i int) bool {
	return (b.mask.Get(i) != 0) == b.validWhen
}

// optionIndex64 materializes -1 for missing and i otherwise, per
// spec §4.3's ByteMasked-to-IndexedOption64 conversion rule.
func (b *ByteMasked) optionIndex64() index.Index[int64] {
	out := make([]int64, b.Length())
	for i := range out {
		if b.isValid(i) {
			out[i] = int64(i)
		} else {
			out[i] = -1
		}
	}
	return index.New(out)
}

func (b *ByteMasked) optionContent() Content { return b.child }

// ToIndexedOptionArray64 converts b to the canonical option
// representation (spec_full grounding: UnmaskedArray.cpp's sibling
// ByteMaskedArray::toIndexedOptionArray64).
func (b *ByteMasked) ToIndexedOptionArray64() *IndexedOption {
	return &IndexedOption{idx: b.optionIndex64(), child: b.child, ids: b.ids, params: b.params}
}

func (b *ByteMasked) simplifyOptionType() Content {
	inner, ok := asOptionLayer(b.child)
	if !ok {
		return b
	}
	composed := composeOptionIndex(b.optionIndex64(), inner.optionIndex64())
	return &IndexedOption{idx: composed, child: inner.optionContent(), ids: b.ids, params: b.params}
}

func (b *ByteMasked) Carry(idx index.Index[int64]) (Content, error) {
	return b.ToIndexedOptionArray64().Carry(idx)
}

func (b *ByteMasked) Merge(other Content) (Content, error) {
	if !b.Params().Equal(other.Params()) {
		return mergeAsUnion(b, other)
	}
	if _, ok := other.(*Empty); ok {
		return b, nil
	}
	return mergeAsUnion(b, other)
}

func (b *ByteMasked) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, b)
}

func (b *ByteMasked) mergeable(other Content, mergebool bool) bool { return false }

func (b *ByteMasked) ValidityError(path string) error {
	return b.child.ValidityError(path + ".content")
}

func (b *ByteMasked) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(b.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	return b.ToIndexedOptionArray64().offsetsAndFlattened(axis, depth)
}

func (b *ByteMasked) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	return b.ToIndexedOptionArray64().getitemNext(head, tail, advanced)
}
