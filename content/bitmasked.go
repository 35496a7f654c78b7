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

// BitMasked is a packed-bitmask option layer (spec §3.2): length is
// declared independently of 8*len(mask) since the last byte may be
// partially used.
type BitMasked struct {
	mask      index.Index[uint8]
	child     Content
	validWhen bool
	lsbOrder  bool
	length    int
	ids       *Identities
	params    Parameters
}

var _ Content = (*BitMasked)(nil)
var _ optionLayer = (*BitMasked)(nil)

// NewBitMasked constructs a BitMasked layer.
func NewBitMasked(mask index.Index[uint8], child Content, validWhen, lsbOrder bool, length int) (*BitMasked, error) {
	if length < 0 || (length+7)/8 > mask.Len() {
		return nil, invalidArgumentf("BitMaskedArray", "length %d needs %d mask bytes, mask has %d", length, (length+7)/8, mask.Len())
	}
	if child.Length() < length {
		return nil, validityErrorf("BitMaskedArray", "", "content length %d is less than declared length %d", child.Length(), length)
	}
	return &BitMasked{mask: mask, child: child, validWhen: validWhen, lsbOrder: lsbOrder, length: length}, nil
}

func (b *BitMasked) Length() int             { return b.length }
func (b *BitMasked) Identities() *Identities { return b.ids }
func (b *BitMasked) Params() Parameters      { return b.params }
func (b *BitMasked) kind() string            { return "BitMaskedArray" }

func (b *BitMasked) WithIdentities(ids *Identities) Content {
	cp := *b
	cp.ids = ids
	return &cp
}

func (b *BitMasked) WithParams(p Parameters) Content {
	cp := *b
	cp.params = p
	return &cp
}

func (b *BitMasked) bit(i int) bool {
	byt := b.mask.Get(i / 8)
	off := uint(i % 8)
	if b.lsbOrder {
		return (byt>>off)&1 != 0
	}
	return (byt>>(7-off))&1 != 0
}

func (b *BitMasked) isValid(i int) bool { return b.bit(i) == b.validWhen }

// optionIndex64 materializes -1 for missing and i otherwise.
func (b *BitMasked) optionIndex64() index.Index[int64] {
	out := make([]int64, b.length)
	for i := range out {
		if b.isValid(i) {
			out[i] = int64(i)
		} else {
			out[i] = -1
		}
	}
	return index.New(out)
}

func (b *BitMasked) optionContent() Content { return b.child }

// ToIndexedOptionArray64 converts b to the canonical option
// representation (spec_full grounding: UnmaskedArray.cpp's sibling
// BitMaskedArray::toIndexedOptionArray64).
func (b *BitMasked) ToIndexedOptionArray64() *IndexedOption {
	return &IndexedOption{idx: b.optionIndex64(), child: b.child, ids: b.ids, params: b.params}
}

func (b *BitMasked) simplifyOptionType() Content {
	inner, ok := asOptionLayer(b.child)
	if !ok {
		return b
	}
	composed := composeOptionIndex(b.optionIndex64(), inner.optionIndex64())
	return &IndexedOption{idx: composed, child: inner.optionContent(), ids: b.ids, params: b.params}
}

func (b *BitMasked) Carry(idx index.Index[int64]) (Content, error) {
	return b.ToIndexedOptionArray64().Carry(idx)
}

func (b *BitMasked) Merge(other Content) (Content, error) {
	if !b.Params().Equal(other.Params()) {
		return mergeAsUnion(b, other)
	}
	if _, ok := other.(*Empty); ok {
		return b, nil
	}
	return mergeAsUnion(b, other)
}

func (b *BitMasked) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, b)
}

func (b *BitMasked) mergeable(other Content, mergebool bool) bool { return false }

func (b *BitMasked) ValidityError(path string) error {
	return b.child.ValidityError(path + ".content")
}

func (b *BitMasked) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(b.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	return b.ToIndexedOptionArray64().offsetsAndFlattened(axis, depth)
}

func (b *BitMasked) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	return b.ToIndexedOptionArray64().getitemNext(head, tail, advanced)
}
