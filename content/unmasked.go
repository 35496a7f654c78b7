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

// Unmasked is a no-op option layer (spec §3.2): logically
// option-typed, but every row is present. It exists so that code
// reasoning generically about "option of X" can wrap a definitely-
// present child without fabricating a mask.
type Unmasked struct {
	child  Content
	ids    *Identities
	params Parameters
}

var _ Content = (*Unmasked)(nil)
var _ optionLayer = (*Unmasked)(nil)

// NewUnmasked wraps child as always-present.
func NewUnmasked(child Content) *Unmasked {
	return &Unmasked{child: child}
}

func (u *Unmasked) Length() int             { return u.child.Length() }
func (u *Unmasked) Identities() *Identities { return u.ids }
func (u *Unmasked) Params() Parameters      { return u.params }
func (u *Unmasked) kind() string            { return "UnmaskedArray" }

func (u *Unmasked) WithIdentities(ids *Identities) Content {
	cp := *u
	cp.ids = ids
	return &cp
}

func (u *Unmasked) WithParams(p Parameters) Content {
	cp := *u
	cp.params = p
	return &cp
}

func (u *Unmasked) optionIndex64() index.Index[int64] { return index.Arange(u.child.Length()) }
func (u *Unmasked) optionContent() Content            { return u.child }

// ToByteMasked converts u to an all-valid ByteMasked, grounded in
// UnmaskedArray::toByteMaskedArray.
func (u *Unmasked) ToByteMasked(validWhen bool) *ByteMasked {
	mask := make([]int8, u.Length())
	for i := range mask {
		if validWhen {
			mask[i] = 1
		}
	}
	return &ByteMasked{mask: index.New(mask), child: u.child, validWhen: validWhen, ids: u.ids, params: u.params}
}

// ToBitMasked converts u to an all-valid BitMasked, grounded in
// UnmaskedArray::toBitMaskedArray.
func (u *Unmasked) ToBitMasked(validWhen, lsbOrder bool) *BitMasked {
	n := u.Length()
	nbytes := (n + 7) / 8
	mask := make([]uint8, nbytes)
	fill := uint8(0)
	if validWhen {
		fill = 0xFF
	}
	for i := range mask {
		mask[i] = fill
	}
	return &BitMasked{mask: index.New(mask), child: u.child, validWhen: validWhen, lsbOrder: lsbOrder, length: n, ids: u.ids, params: u.params}
}

// ToIndexedOptionArray64 converts u to the canonical option
// representation, grounded in UnmaskedArray::toIndexedOptionArray64.
func (u *Unmasked) ToIndexedOptionArray64() *IndexedOption {
	return &IndexedOption{idx: u.optionIndex64(), child: u.child, ids: u.ids, params: u.params}
}

// simplifyOptionType collapses to the child whenever it is itself
// option-typed or a gather layer (spec §4.3's first rule); otherwise
// Unmasked is already in its simplest form.
func (u *Unmasked) simplifyOptionType() Content {
	if _, ok := asOptionLayer(u.child); ok {
		return u.child
	}
	if _, ok := u.child.(indexedLayer); ok {
		return u.child
	}
	return u
}

func (u *Unmasked) Carry(idx index.Index[int64]) (Content, error) {
	child, err := u.child.Carry(idx)
	if err != nil {
		return nil, err
	}
	return &Unmasked{child: child, ids: u.ids.Carry(idx), params: u.params}, nil
}

func (u *Unmasked) Merge(other Content) (Content, error) {
	if !u.Params().Equal(other.Params()) {
		return mergeAsUnion(u, other)
	}
	if _, ok := other.(*Empty); ok {
		return u, nil
	}
	return mergeAsUnion(u, other)
}

func (u *Unmasked) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, u)
}

func (u *Unmasked) mergeable(other Content, mergebool bool) bool { return false }

func (u *Unmasked) ValidityError(path string) error {
	return u.child.ValidityError(path + ".content")
}

func (u *Unmasked) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(u.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	return u.child.offsetsAndFlattened(axis, depth)
}

func (u *Unmasked) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch head.(type) {
	case MissingItem:
		return applyMissing(u, head.(MissingItem), tail, advanced)
	default:
		newChild, err := u.child.getitemNext(head, emptyTail, advanced)
		if err != nil {
			return nil, err
		}
		out := &Unmasked{child: newChild, ids: u.ids}
		if headPreservesType(head) {
			out.params = u.params
		}
		return simplifyThenGetitem(out, tail, advanced)
	}
}
