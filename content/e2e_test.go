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
	"testing"

	"github.com/Ellipse0934/awkward-1.0/index"
)

// E1: ListOffset64(offsets=[0,2,2,5], Record{x,y}) has length 3, row
// 0 is a two-element group starting with x=1,y=10, row 1 is an empty
// group, and getitem_at(-1) equals getitem_at(2).
func TestE1ListOfRecords(t *testing.T) {
	xs := i64(1, 2, 3, 4, 5)
	ys := i64(10, 20, 30, 40, 50)
	rec := recordOf(t, []string{"x", "y"}, xs, ys)
	lo := listOffsetOf(t, []int64{0, 2, 2, 5}, rec)

	if lo.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", lo.Length())
	}
	row0, err := Getitem(lo, Slice{At{0}})
	if err != nil {
		t.Fatalf("Getitem(0): %v", err)
	}
	if row0.Length() != 2 {
		t.Fatalf("row 0 length = %d, want 2", row0.Length())
	}
	row0x, err := row0.(*Record).GetField("x")
	if err != nil {
		t.Fatalf("GetField(x): %v", err)
	}
	if got := int64ValueAt(t, row0x, 0); got != 1 {
		t.Fatalf("row 0's x[0] = %d, want 1", got)
	}
	row0y, err := row0.(*Record).GetField("y")
	if err != nil {
		t.Fatalf("GetField(y): %v", err)
	}
	if got := int64ValueAt(t, row0y, 0); got != 10 {
		t.Fatalf("row 0's y[0] = %d, want 10", got)
	}

	row1, err := Getitem(lo, Slice{At{1}})
	if err != nil {
		t.Fatalf("Getitem(1): %v", err)
	}
	if row1.Length() != 0 {
		t.Fatalf("row 1 length = %d, want 0 (empty group)", row1.Length())
	}

	rowLast, err := Getitem(lo, Slice{At{-1}})
	if err != nil {
		t.Fatalf("Getitem(-1): %v", err)
	}
	row2, err := Getitem(lo, Slice{At{2}})
	if err != nil {
		t.Fatalf("Getitem(2): %v", err)
	}
	if rowLast.Length() != row2.Length() {
		t.Fatalf("getitem_at(-1) length %d != getitem_at(2) length %d", rowLast.Length(), row2.Length())
	}
}

// E2: an IndexedOption wrapping an Unmasked collapses via
// simplify_optiontype into a single IndexedOption64 layer.
func TestE2OptionCollapseOverUnmasked(t *testing.T) {
	child := NewUnmasked(i64(10, 20, 30))
	opt, err := NewIndexedOption(index.New([]int64{0, -1, 2}), child)
	if err != nil {
		t.Fatalf("NewIndexedOption: %v", err)
	}
	simplified := opt.simplifyOptionType()
	io, ok := simplified.(*IndexedOption)
	if !ok {
		t.Fatalf("simplifyOptionType() = %T, want *IndexedOption", simplified)
	}
	if _, ok := io.optionContent().(*Unmasked); ok {
		t.Fatalf("simplifyOptionType left an Unmasked wrapper nested inside the result")
	}
	idx := io.optionIndex64()
	if idx.Get(0) != 0 || idx.Get(1) != -1 || idx.Get(2) != 2 {
		t.Fatalf("optionIndex64() = %v, want [0 -1 2]", idx.Values())
	}
}

// E3: a ByteMasked wrapping an IndexedOption collapses the nested
// option layers into one, composing the two -1-for-missing indices.
func TestE3NestedOptionCollapse(t *testing.T) {
	inner, err := NewIndexedOption(index.New([]int64{-1, 0, 1}), i64(100, 200))
	if err != nil {
		t.Fatalf("NewIndexedOption: %v", err)
	}
	outer, err := NewByteMasked(index.New([]int8{1, 0, 1}), inner, true)
	if err != nil {
		t.Fatalf("NewByteMasked: %v", err)
	}
	simplified := outer.simplifyOptionType()
	io, ok := simplified.(*IndexedOption)
	if !ok {
		t.Fatalf("simplifyOptionType() = %T, want *IndexedOption", simplified)
	}
	if _, ok := io.optionContent().(*IndexedOption); ok {
		t.Fatalf("simplifyOptionType left a nested IndexedOption")
	}
	// row 0: outer valid but inner missing -> missing. row 1: outer
	// mask false -> missing regardless of inner. row 2: outer valid
	// and inner present at slot 1 -> present.
	idx := io.optionIndex64()
	if idx.Get(0) != -1 {
		t.Fatalf("row 0 = %d, want -1 (inner missing)", idx.Get(0))
	}
	if idx.Get(1) != -1 {
		t.Fatalf("row 1 = %d, want -1 (outer mask false)", idx.Get(1))
	}
	if idx.Get(2) != 1 {
		t.Fatalf("row 2 = %d, want 1", idx.Get(2))
	}
}

// E4: merging Union<f64,bool>(tags=[0,1], index=[0,0]) with a plain
// Numpy[f64] arm produces a canonical union; with mergebool=false the
// bool arm cannot fold into the float arms so at least two arms
// survive.
func TestE4UnionMerge(t *testing.T) {
	u, err := NewUnion(
		index.New([]int8{0, 1}),
		index.New([]int64{0, 0}),
		[]Content{f64(1.5), boolLeaf(true)},
	)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}
	merged, err := u.Merge(f64(2.5))
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", merged.Length())
	}
	mu, ok := merged.(*Union)
	if !ok {
		t.Fatalf("Merge() = %T, want *Union (bool cannot fold into float)", merged)
	}
	if mu.numArms() < 2 {
		t.Fatalf("numArms() = %d, want at least 2 (bool must stay distinct from float)", mu.numArms())
	}
}

// E5: Union(tags=[0,1,0], index=[0,0,1], contents=[ListOffset64(offsets=[0,2,3],
// Numpy[1,2,3]), ListOffset64(offsets=[0,1],Numpy[99])]) flattened at
// axis=1 yields a concatenated flat content of length 4 (row lengths
// 2,1,1 from offsets [0,2,3,4]).
func TestE5FlattenThroughUnion(t *testing.T) {
	arm0 := listOffsetOf(t, []int64{0, 2, 3}, i64(1, 2, 3))
	arm1 := listOffsetOf(t, []int64{0, 1}, i64(99))
	u, err := NewUnion(
		index.New([]int8{0, 1, 0}),
		index.New([]int64{0, 0, 1}),
		[]Content{arm0, arm1},
	)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}
	flat, err := Flatten(u, 1)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if flat.Length() != 4 {
		t.Fatalf("Length() = %d, want 4", flat.Length())
	}
	want := []int64{1, 2, 99, 3}
	for i, w := range want {
		if got := int64ValueAt(t, flat, i); got != w {
			t.Fatalf("flat[%d] = %d, want %d", i, got, w)
		}
	}
}

// E6: projecting a positional field out of a tuple record by its
// fabricated "0","1",... key.
func TestE6TupleFieldProjection(t *testing.T) {
	tup := recordOf(t, nil, i64(1, 2, 3), f64(1.5, 2.5, 3.5))
	if !tup.IsTuple() {
		t.Fatalf("IsTuple() = false, want true")
	}
	got, err := tup.GetField("1")
	if err != nil {
		t.Fatalf("GetField(\"1\"): %v", err)
	}
	if got.Length() != 3 {
		t.Fatalf("Length() = %d, want 3", got.Length())
	}
	if int64ValueAt(t, tup.contents[0], 0) != int64ValueAt(t, i64(1), 0) {
		t.Fatalf("field 0 mismatch")
	}
}
