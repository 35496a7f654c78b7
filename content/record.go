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
	"golang.org/x/exp/slices"

	"github.com/Ellipse0934/awkward-1.0/index"
)

// Record is a fixed set of named or positional fields, each itself a
// Content of the same length (spec §3.2): a tuple when recordlookup
// is nil, else named fields.
type Record struct {
	contents      []Content
	recordlookup  []string // nil => tuple
	length        int
	ids           *Identities
	params        Parameters
}

var _ Content = (*Record)(nil)
var _ recordLike = (*Record)(nil)

// NewRecord constructs a Record. If length < 0, it defaults to
// min(len(contents[i])) the way the original RecordArray constructor
// overload with no explicit length does (spec_full §4 supplement).
func NewRecord(contents []Content, keys []string, length int) (*Record, error) {
	if keys != nil && len(keys) != len(contents) {
		return nil, invalidArgumentf("RecordArray", "recordlookup has %d keys but %d contents", len(keys), len(contents))
	}
	if keys != nil {
		seen := make(map[string]bool, len(keys))
		for _, k := range keys {
			if seen[k] {
				return nil, invalidArgumentf("RecordArray", "duplicate field key %q", k)
			}
			seen[k] = true
		}
	}
	if length < 0 {
		if len(contents) == 0 {
			length = 0
		} else {
			length = contents[0].Length()
			for _, c := range contents[1:] {
				if c.Length() < length {
					length = c.Length()
				}
			}
		}
	}
	for i, c := range contents {
		if c.Length() < length {
			return nil, validityErrorf("RecordArray", ".content("+itoa(i)+")", "length %d is less than record length %d", c.Length(), length)
		}
	}
	return &Record{contents: contents, recordlookup: keys, length: length}, nil
}

func (r *Record) Length() int             { return r.length }
func (r *Record) Identities() *Identities { return r.ids }
func (r *Record) Params() Parameters      { return r.params }
func (r *Record) kind() string            { return "RecordArray" }

func (r *Record) WithIdentities(ids *Identities) Content {
	cp := *r
	cp.ids = ids
	return &cp
}

func (r *Record) WithParams(p Parameters) Content {
	cp := *r
	cp.params = p
	return &cp
}

// IsTuple reports whether the record has no named fields (spec_full
// §4 supplement: RecordArray::istuple()).
func (r *Record) IsTuple() bool { return r.recordlookup == nil }

func (r *Record) numFields() int { return len(r.contents) }
func (r *Record) fieldAt(i int) Content { return r.contents[i] }
func (r *Record) fieldNames() []string  { return r.recordlookup }

// FieldName returns the key of field i: the explicit recordlookup
// entry, or a fabricated positional key "0","1",... for a tuple
// (spec §6.2, spec_full §4 supplement).
func (r *Record) FieldName(i int) string {
	if r.recordlookup != nil {
		return r.recordlookup[i]
	}
	return itoa(i)
}

func (r *Record) fieldIndex(key string) (int, bool) {
	if r.recordlookup != nil {
		for i, k := range r.recordlookup {
			if k == key {
				return i, true
			}
		}
		return 0, false
	}
	// tuple: key must be a decimal positional index
	n := 0
	if key == "" {
		return 0, false
	}
	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if n < 0 || n >= len(r.contents) {
		return 0, false
	}
	return n, true
}

// GetField returns the (length-trimmed) content of the named field.
func (r *Record) GetField(key string) (Content, error) {
	i, ok := r.fieldIndex(key)
	if !ok {
		return nil, invalidArgumentf(r.kind(), "no field named %q", key)
	}
	return r.trimmedField(i), nil
}

func (r *Record) trimmedField(i int) Content {
	c := r.contents[i]
	if c.Length() == r.length {
		return c
	}
	out, _ := c.Carry(index.Arange(r.length))
	return out
}

// SetField returns a new Record with key set to value (appended if
// absent), requiring len(value) == len(r) (spec_full §4 supplement,
// spec §8 property 11).
func (r *Record) SetField(key string, value Content) (*Record, error) {
	if value.Length() != r.length {
		return nil, invalidArgumentf(r.kind(), "setitem_field: value has length %d, record has length %d", value.Length(), r.length)
	}
	if i, ok := r.fieldIndex(key); ok {
		contents := slices.Clone(r.contents)
		contents[i] = value
		return &Record{contents: contents, recordlookup: r.recordlookup, length: r.length, ids: r.ids, params: r.params}, nil
	}
	if r.IsTuple() {
		return nil, invalidArgumentf(r.kind(), "setitem_field: cannot add named field %q to a tuple", key)
	}
	contents := append(slices.Clone(r.contents), value)
	keys := append(slices.Clone(r.recordlookup), key)
	return &Record{contents: contents, recordlookup: keys, length: r.length, ids: r.ids, params: r.params}, nil
}

// SetSlot returns a new Record with the value at positional slot i
// replaced (spec_full §4 supplement: setitem_slot), requiring
// len(value) == len(r).
func (r *Record) SetSlot(i int, value Content) (*Record, error) {
	if i < 0 || i >= len(r.contents) {
		return nil, invalidArgumentf(r.kind(), "setitem_slot: slot %d out of range [0,%d)", i, len(r.contents))
	}
	if value.Length() != r.length {
		return nil, invalidArgumentf(r.kind(), "setitem_slot: value has length %d, record has length %d", value.Length(), r.length)
	}
	contents := slices.Clone(r.contents)
	contents[i] = value
	return &Record{contents: contents, recordlookup: r.recordlookup, length: r.length, ids: r.ids, params: r.params}, nil
}

func (r *Record) Carry(idx index.Index[int64]) (Content, error) {
	contents := make([]Content, len(r.contents))
	for i, c := range r.contents {
		out, err := r.trimmedField(i).Carry(idx)
		if err != nil {
			return nil, err
		}
		_ = c
		contents[i] = out
	}
	return &Record{contents: contents, recordlookup: r.recordlookup, length: idx.Len(), ids: r.ids.Carry(idx), params: r.params}, nil
}

func (r *Record) Merge(other Content) (Content, error) {
	if !r.Params().Equal(other.Params()) {
		return mergeAsUnion(r, other)
	}
	if _, ok := other.(*Empty); ok {
		return r, nil
	}
	if o, ok := other.(*Record); ok {
		if r.IsTuple() != o.IsTuple() {
			return nil, invalidArgumentf(r.kind(), "cannot merge a tuple with a named record")
		}
		if r.IsTuple() {
			if len(r.contents) != len(o.contents) {
				return nil, invalidArgumentf(r.kind(), "cannot merge tuples of arity %d and %d", len(r.contents), len(o.contents))
			}
			contents := make([]Content, len(r.contents))
			for i := range r.contents {
				m, err := r.trimmedField(i).Merge(o.trimmedField(i))
				if err != nil {
					return nil, err
				}
				contents[i] = m
			}
			ids := mergeIdentities(r.ids, r.length, o.ids, o.length)
			return &Record{contents: contents, length: r.length + o.length, ids: ids, params: r.params}, nil
		}
		if len(r.recordlookup) != len(o.recordlookup) {
			return nil, invalidArgumentf(r.kind(), "cannot merge records with different field counts")
		}
		contents := make([]Content, len(r.contents))
		for i, key := range r.recordlookup {
			j, ok := o.fieldIndex(key)
			if !ok {
				return nil, invalidArgumentf(r.kind(), "cannot merge records: right side is missing field %q", key)
			}
			m, err := r.trimmedField(i).Merge(o.trimmedField(j))
			if err != nil {
				return nil, err
			}
			contents[i] = m
		}
		ids := mergeIdentities(r.ids, r.length, o.ids, o.length)
		return &Record{contents: contents, recordlookup: r.recordlookup, length: r.length + o.length, ids: ids, params: r.params}, nil
	}
	return other.reverseMerge(r)
}

func (r *Record) reverseMerge(left Content) (Content, error) {
	return mergeAsUnion(left, r)
}

func (r *Record) mergeable(other Content, mergebool bool) bool {
	o, ok := other.(*Record)
	if !ok {
		return false
	}
	if !r.Params().Equal(other.Params()) {
		return false
	}
	if r.IsTuple() != o.IsTuple() {
		return false
	}
	if r.IsTuple() {
		return len(r.contents) == len(o.contents)
	}
	if len(r.recordlookup) != len(o.recordlookup) {
		return false
	}
	for _, k := range r.recordlookup {
		if _, ok := o.fieldIndex(k); !ok {
			return false
		}
	}
	return true
}

func (r *Record) ValidityError(path string) error {
	if r.recordlookup != nil && len(r.recordlookup) != len(r.contents) {
		return validityErrorf(r.kind(), path, "recordlookup has %d keys but %d contents", len(r.recordlookup), len(r.contents))
	}
	for i, c := range r.contents {
		if c.Length() < r.length {
			return validityErrorf(r.kind(), path, "field %q has length %d, less than record length %d", r.FieldName(i), c.Length(), r.length)
		}
		if err := c.ValidityError(path + ".field(" + itoa(i) + ")"); err != nil {
			return err
		}
	}
	return nil
}

func (r *Record) offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error) {
	if axis == depth {
		return index.Index[int64]{}, nil, invalidArgumentf(r.kind(), "axis==depth: cannot flatten a RecordArray's own axis")
	}
	contents := make([]Content, len(r.contents))
	for i, c := range r.contents {
		off, flat, err := r.trimmedField(i).offsetsAndFlattened(axis, depth)
		_ = c
		if err != nil {
			return index.Index[int64]{}, nil, err
		}
		if off.Len() != 0 {
			return index.Index[int64]{}, nil, internalf(r.kind(), "offsets_and_flattened: field %q unexpectedly produced non-empty offsets; records are transparent to flatten", r.FieldName(i))
		}
		contents[i] = flat
	}
	length := r.length
	if len(contents) > 0 {
		length = contents[0].Length()
	}
	out := &Record{contents: contents, recordlookup: r.recordlookup, length: length, params: r.params}
	return index.Index[int64]{}, out, nil
}

func (r *Record) getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	switch h := head.(type) {
	case FieldItem:
		c, err := r.GetField(h.Key)
		if err != nil {
			return nil, err
		}
		return continueGetitem(c, tail, advanced)
	case FieldsItem:
		contents := make([]Content, len(h.Keys))
		for i, k := range h.Keys {
			c, err := r.GetField(k)
			if err != nil {
				return nil, err
			}
			contents[i] = c
		}
		var keys []string
		if !r.IsTuple() {
			keys = slices.Clone(h.Keys)
		}
		sub, err := NewRecord(contents, keys, r.length)
		if err != nil {
			return nil, err
		}
		return continueGetitem(sub, tail, advanced)
	case MissingItem:
		return applyMissing(r, h, tail, advanced)
	case At, RangeStep, ArrayItem, JaggedItem:
		return nil, unsupportedf(r.kind(), "getitem_next(%T) is unreachable on a RecordArray in a well-formed slice pipeline; project a field first", head)
	default:
		// Ellipsis/NewAxis: push into each field with an empty
		// tail, then continue the real tail on the rebuilt record.
		contents := make([]Content, len(r.contents))
		for i, c := range r.contents {
			out, err := pushHeadInEmptyTail(r.trimmedField(i), head, advanced)
			if err != nil {
				return nil, err
			}
			_ = c
			contents[i] = out
		}
		length := r.length
		if len(contents) > 0 {
			length = contents[0].Length()
		}
		next := &Record{contents: contents, recordlookup: r.recordlookup, length: length}
		if headPreservesType(head) {
			next.params = r.params
		}
		return continueGetitem(next, tail, advanced)
	}
}
