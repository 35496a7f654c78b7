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

// MaxUnionArms is the hard cap on union arms, since tags are i8
// (spec §3.3, §9's "enforce the 127 limit at construction and at
// every operation that can grow contents").
const MaxUnionArms = 127

// Union is a per-element tagged choice among several content arrays
// (spec §3.2): row i is contents[tags[i]][index[i]].
type Union struct {
	tags     index.Index[int8]
	idx      index.Index[int64]
	contents []Content
	ids      *Identities
	params   Parameters
}

var _ Content = (*Union)(nil)
var _ unionLike = (*Union)(nil)

// NewUnion constructs a Union, checking the bounds in spec §3.3.
func NewUnion(tags index.Index[int8], idx index.Index[int64], contents []Content) (*Union, error) {
	if len(contents) == 0 {
		return nil, invalidArgumentf("UnionArray", "contents must be non-empty")
	}
	if len(contents) > MaxUnionArms {
		return nil, capacityExceededf("UnionArray", "union has %d arms, exceeding the %d-arm cap", len(contents), MaxUnionArms)
	}
	if idx.Len() < tags.Len() {
		return nil, invalidArgumentf("UnionArray", "len(index)=%d < len(tags)=%d", idx.Len(), tags.Len())
	}
	armlen := make([]int, len(contents))
	for i, c := range contents {
		armlen[i] = c.Length()
	}
	if err := kernel.UnionValidity(tags.Values(), idx.Values()[:tags.Len()], armlen); !err.IsOK() {
		return nil, validityErrorf("UnionArray", "", "%s", err.Message)
	}
	return &Union{tags: tags, idx: idx, contents: contents}, nil
}

func (u *Union) Length() int             { return u.tags.Len() }
func (u *Union) Identities() *Identities { return u.ids }
func (u *Union) Params() Parameters      { return u.params }
func (u *Union) kind() string            { return "UnionArray" }

func (u *Union) WithIdentities(ids *Identities) Content {
	cp := *u
	cp.ids = ids
	return &cp
}

func (u *Union) WithParams(p Parameters) Content {
	cp := *u
	cp.params = p
	return &cp
}

func (u *Union) numArms() int                      { return len(u.contents) }
func (u *Union) arm(i int) Content                 { return u.contents[i] }
func (u *Union) tagsValues() []int8                { return u.tags.Values() }
func (u *Union) indexValues() index.Index[int64]   { return u.idx }
func (u *Union) Tags() index.Index[int8]           { return u.tags }
func (u *Union) Contents() []Content               { return u.contents }

// Content returns arm i directly without projecting (spec §4.8
// supplement: UnionArray::content(index) direct-arm access).
func (u *Union) Content(i int) Content { return u.contents[i] }

// Project produces a dense Content containing only the rows tagged
// arm, by carrying contents[arm] with the positions where tags==arm
// (spec §4.5).
func (u *Union) Project(arm int8) (Content, error) {
	positions := kernel.UnionProject64(u.tags.Values(), arm)
	gathered := make([]int64, len(positions))
	idxVals := u.idx.Values()
	for i, p := range positions {
		gathered[i] = idxVals[p]
	}
	out, err := u.contents[arm].Carry(index.New(gathered))
	if err != nil {
		return nil, err
	}
	if u.ids != nil {
		armIDs := kernel.IdentitiesFromUnionarray64(u.tags.Values(), u.ids.values.Values(), arm)
		out = out.WithIdentities(&Identities{ref: u.ids.ref, values: index.New(armIDs)})
	}
	return out, nil
}

func (u *Union) Carry(idx index.Index[int64]) (Content, error) {
	newTags := make([]int8, idx.Len())
	newIdx := make([]int64, idx.Len())
	tagVals := u.tags.Values()
	idxVals := u.idx.Values()
	for i, k := range idx.Values() {
		if k < 0 || int(k) >= u.Length() {
			return nil, validityErrorf(u.kind(), "", "carry index %d out of range [0,%d)", k, u.Length())
		}
		newTags[i] = tagVals[k]
		newIdx[i] = idxVals[k]
	}
	return &Union{
		tags:     index.New(newTags),
		idx:      index.New(newIdx),
		contents: u.contents,
		ids:      u.ids.Carry(idx),
		params:   u.params,
	}, nil
}

// Merge implements spec §4.6 rule 5 when both sides are unions
// (concatenate tag/index buffers, rebasing the right side's tags by
// self.numcontents()) and rule 6 otherwise (other becomes a new arm
// appended after self's own arms). Either way the result is
// resimplified so any now-compatible arms fold together.
func (u *Union) Merge(other Content) (Content, error) {
	if !u.Params().Equal(other.Params()) {
		return mergeAsUnion(u, other)
	}
	if _, ok := other.(*Empty); ok {
		return u, nil
	}
	if o, ok := other.(*Union); ok {
		newTags := make([]int8, u.Length()+o.Length())
		copy(newTags, u.tags.Values())
		remap := make([]int8, len(o.contents))
		for i := range remap {
			remap[i] = int8(i + len(u.contents))
		}
		kernel.UnionFillTagsToI8FromI8(newTags, u.Length(), o.tags.Values(), remap)
		newIdx := make([]int64, u.idx.Len()+o.idx.Len())
		copy(newIdx, u.idx.Values())
		kernel.UnionFillIndexToI64FromI64(newIdx, u.idx.Len(), o.idx.Values(), 0)
		contents := make([]Content, 0, len(u.contents)+len(o.contents))
		contents = append(contents, u.contents...)
		contents = append(contents, o.contents...)
		nu, err := NewUnion(index.New(newTags), index.New(newIdx), contents)
		if err != nil {
			return nil, err
		}
		return simplifyUniontype(nu, true)
	}
	newArm := int8(len(u.contents))
	newTags := make([]int8, u.Length()+other.Length())
	copy(newTags, u.tags.Values())
	kernel.UnionFillTagsToI8Const(newTags, u.Length(), other.Length(), newArm)
	newIdx := make([]int64, u.idx.Len()+other.Length())
	copy(newIdx, u.idx.Values())
	kernel.UnionFillIndexToI64Count(newIdx, u.idx.Len(), other.Length(), 0)
	contents := append(append([]Content{}, u.contents...), other)
	nu, err := NewUnion(index.New(newTags), index.New(newIdx), contents)
	if err != nil {
		return nil, err
	}
	return simplifyUniontype(nu, true)
}

// reverseMerge treats self as the right operand (spec §4.6 rule 6):
// other becomes arm 0, self's own arms are rebased after it.
func (u *Union) reverseMerge(left Content) (Content, error) {
	if _, ok := left.(*Empty); ok {
		return u, nil
	}
	newTags := make([]int8, left.Length()+u.Length())
	kernel.UnionFillTagsToI8Const(newTags, 0, left.Length(), 0)
	remap := make([]int8, len(u.contents))
	for i := range remap {
		remap[i] = int8(i + 1)
	}
	kernel.UnionFillTagsToI8FromI8(newTags, left.Length(), u.tags.Values(), remap)
	newIdx := make([]int64, left.Length()+u.idx.Len())
	kernel.UnionFillIndexToI64Count(newIdx, 0, left.Length(), 0)
	kernel.UnionFillIndexToI64FromI64(newIdx, left.Length(), u.idx.Values(), 0)
	contents := append([]Content{left}, u.contents...)
	nu, err := NewUnion(index.New(newTags), index.New(newIdx), contents)
	if err != nil {
		return nil, err
	}
	return simplifyUniontype(nu, true)
}

func (u *Union) mergeable(other Content, mergebool bool) bool {
	if !u.Params().Equal(other.Params()) {
		return false
	}
	// A union is mergeable with anything; simplify_uniontype will
	// fold the other side's arms (or the other side itself) into the
	// canonical arm set.
	return true
}

func (u *Union) ValidityError(path string) error {
	armlen := make([]int, len(u.contents))
	for i, c := range u.contents {
		armlen[i] = c.Length()
		if err := c.ValidityError(path + ".content(" + itoa(i) + ")"); err != nil {
			return err
		}
	}
	if err := kernel.UnionValidity(u.tags.Values(), u.idx.Values()[:u.Length()], armlen); !err.IsOK() {
		return validityErrorf(u.kind(), path, "%s", err.Message)
	}
	return nil
}

func (u *Union) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(u.kind(), "axis==depth: cannot flatten the outermost axis")
	}
	armOffsets := make([][]int64, len(u.contents))
	armFlats := make([]Content, len(u.contents))
	for i, c := range u.contents {
		off, flat, err := c.offsetsAndFlattened(axis, depth)
		if err != nil {
			return index.Index[int64]{}, nil, err
		}
		if off.Len() == 0 {
			armOffsets[i] = []int64{0}
		} else {
			armOffsets[i] = off.Values()
		}
		armFlats[i] = flat
	}
	// per-row lengths, keyed by each arm's own running position
	armLens := make([][]int64, len(u.contents))
	for i := range u.contents {
		offs := armOffsets[i]
		lens := make([]int64, len(offs)-1)
		for j := range lens {
			lens[j] = offs[j+1] - offs[j]
		}
		armLens[i] = lens
	}
	rowLens := kernel.UnionFlattenLength64(u.tags.Values(), armLens)
	offsets := kernel.UnionFlattenCombine64(rowLens)

	// Concatenate every arm's flattened content, arm by arm, into one
	// pool, then gather from that pool in row order: row i's elements
	// live at [armOffsets[tag][j], armOffsets[tag][j+1]) within arm
	// tag's own flattened content, based at armBase[tag] in the pool.
	armBase := make([]int64, len(armFlats))
	var pool Content = armFlats[0]
	for i := 1; i < len(armFlats); i++ {
		armBase[i] = armBase[i-1] + int64(armFlats[i-1].Length())
		m, err := pool.Merge(armFlats[i])
		if err != nil {
			return index.Index[int64]{}, nil, internalf(u.kind(), "offsets_and_flattened: arms produced incompatible flattened contents: %s", err)
		}
		pool = m
	}
	tagVals := u.tags.Values()
	idxVals := u.idx.Values()
	gather := make([]int64, 0, len(offsets)-1)
	for i, tag := range tagVals {
		j := idxVals[i]
		s, e := armOffsets[tag][j], armOffsets[tag][j+1]
		for p := s; p < e; p++ {
			gather = append(gather, armBase[tag]+p)
		}
	}
	flat, err := pool.Carry(index.New(gather))
	if err != nil {
		return index.Index[int64]{}, nil, err
	}
	return index.New(offsets), flat, nil
}

func (u *Union) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch head.(type) {
	case FieldItem, FieldsItem, MissingItem, EllipsisItem, NewAxisItem:
		return u.fanAcrossArms(head, tail, advanced)
	default:
		return u.projectAddressAndRebuild(head, tail, advanced)
	}
}

// fanAcrossArms implements the shared handler spec §4.2 describes for
// Field/Fields/Missing/Ellipsis/NewAxis on a Union: the operation is
// applied to each arm without projecting, and the result is a new
// Union with the same tags/index over the transformed arms.
func (u *Union) fanAcrossArms(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	newArms := make([]Content, len(u.contents))
	for i, c := range u.contents {
		out, err := c.getitemNext(head, tail, advanced)
		if err != nil {
			return nil, err
		}
		newArms[i] = out
	}
	nu := &Union{tags: u.tags, idx: u.idx, contents: newArms, ids: u.ids, params: u.params}
	return simplifyUniontype(nu, true)
}

// projectAddressAndRebuild implements spec §4.2's element-addressing
// path: for each arm, project it densely, recurse getitem_next, then
// rebuild a union with a regular per-arm index before simplifying.
func (u *Union) projectAddressAndRebuild(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	newArms := make([]Content, len(u.contents))
	for i := range u.contents {
		dense, err := u.Project(int8(i))
		if err != nil {
			return nil, err
		}
		out, err := dense.getitemNext(head, tail, advanced)
		if err != nil {
			return nil, err
		}
		newArms[i] = out
	}
	regIdx := kernel.UnionRegularIndex(u.tags.Values(), len(u.contents))
	nu := &Union{tags: u.tags, idx: index.New(regIdx), contents: newArms, ids: u.ids, params: u.params}
	return simplifyUniontype(nu, true)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
