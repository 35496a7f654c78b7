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

// SliceItem is one element of a Slice (spec §4.1). It is a closed
// sum type; dispatch on its kind is a type switch rather than a
// method set, since (unlike Content) nothing ever wraps or extends
// a SliceItem in a way that would benefit from polymorphism.
type SliceItem interface {
	isSliceItem()
}

// At is an integer index slice item.
type At struct{ I int64 }

func (At) isSliceItem() {}

// RangeStep is a start:stop:step range. Absent members are
// represented with HasStart/HasStop false; Step defaults to 1 when
// HasStep is false, per spec §4.1's "None members default".
type RangeStep struct {
	Start, Stop, Step          int64
	HasStart, HasStop, HasStep bool
}

func (RangeStep) isSliceItem() {}

// EllipsisItem expands to enough full-axis ranges to align the
// remaining slice items with the node's remaining depth.
type EllipsisItem struct{}

func (EllipsisItem) isSliceItem() {}

// NewAxisItem introduces a length-1 axis.
type NewAxisItem struct{}

func (NewAxisItem) isSliceItem() {}

// ArrayItem is advanced integer indexing.
type ArrayItem struct{ Index index.Index[int64] }

func (ArrayItem) isSliceItem() {}

// JaggedItem is one jagged slice per outer row: row i is sliced by
// Content[Offsets[i]:Offsets[i+1]], itself a Slice of RangeStep/At
// items to apply per row (commonly a single RangeStep).
type JaggedItem struct {
	Offsets index.Index[int64]
	Content Slice
}

func (JaggedItem) isSliceItem() {}

// MissingItem is an option-typed slice: Mask[i]==false rows are
// absent from the result; Content is the slice to apply to the
// present rows (or nil to just pass through their current values).
type MissingItem struct {
	Mask    []bool
	Content Slice
}

func (MissingItem) isSliceItem() {}

// FieldItem projects a single named field from a Record.
type FieldItem struct{ Key string }

func (FieldItem) isSliceItem() {}

// FieldsItem projects a subset of named fields from a Record,
// preserving order.
type FieldsItem struct{ Keys []string }

func (FieldsItem) isSliceItem() {}

// Slice is an ordered sequence of SliceItem values (spec §4.1),
// consumed head-first by the recursive getitem.
type Slice []SliceItem

// head returns the first SliceItem and the remaining tail. An empty
// slice's head is nil; callers must check len(s) first.
func (s Slice) head() (SliceItem, Slice) {
	if len(s) == 0 {
		return nil, nil
	}
	return s[0], s[1:]
}

// emptyTail is the sealed empty slice used when only the current
// level's head applies and nothing should be pushed further down.
var emptyTail = Slice{}

// Getitem threads slice s through c head-first (spec §4.1/§4.2). It
// is the public entry point; internally it drives the
// Content.getitemNext recursion with a nil (not-yet-started)
// advanced index.
func Getitem(c Content, s Slice) (Content, error) {
	return continueGetitem(c, s, nil)
}

// continueGetitem pops the next head off s and recurses into
// c.getitemNext, carrying advanced forward unchanged. Every variant's
// getitemNext uses this (rather than re-entering Getitem, which
// always starts a fresh, nil advanced index) once it has produced the
// content the remaining tail should be applied to, so that a
// numpy-style Array head consumed at an outer axis stays visible to
// Array/Jagged heads consumed at inner axes (spec §4.1's advanced-index
// threading).
func continueGetitem(c Content, tail Slice, advanced *index.Index[int64]) (Content, error) {
	if len(tail) == 0 {
		return c, nil
	}
	head, rest := tail.head()
	return c.getitemNext(head, rest, advanced)
}
