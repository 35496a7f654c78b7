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

import "testing"

func TestNumAtDepth(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 2, 2, 5}, i64(1, 2, 3, 4, 5))
	out, err := Num(lo, 0, 0)
	if err != nil {
		t.Fatalf("Num(axis=0): %v", err)
	}
	if got := int64ValueAt(t, out, 0); got != 3 {
		t.Fatalf("Num(axis=0) = %d, want 3 (outer length)", got)
	}
}

func TestNumPerRow(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 2, 2, 5}, i64(1, 2, 3, 4, 5))
	out, err := Num(lo, 1, 0)
	if err != nil {
		t.Fatalf("Num(axis=1): %v", err)
	}
	if out.Length() != 3 {
		t.Fatalf("Length() = %d, want 3 (one count per row)", out.Length())
	}
	want := []int64{2, 0, 3}
	for i, w := range want {
		if got := int64ValueAt(t, out, i); got != w {
			t.Fatalf("row %d count = %d, want %d", i, got, w)
		}
	}
}

func TestLocalIndexPerRow(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 2, 3}, i64(10, 20, 30))
	out, err := LocalIndex(lo, 1, 0)
	if err != nil {
		t.Fatalf("LocalIndex(axis=1): %v", err)
	}
	flatLO, ok := out.(*ListOffset)
	if !ok {
		t.Fatalf("LocalIndex(axis=1) = %T, want *ListOffset", out)
	}
	if flatLO.Length() != 2 {
		t.Fatalf("Length() = %d, want 2", flatLO.Length())
	}
	row0, err := Getitem(flatLO, Slice{At{0}})
	if err != nil {
		t.Fatalf("Getitem(0): %v", err)
	}
	want0 := []int64{0, 1}
	for i, w := range want0 {
		if got := int64ValueAt(t, row0, i); got != w {
			t.Fatalf("row 0 local index[%d] = %d, want %d", i, got, w)
		}
	}
}

func TestPadGrowsShortRows(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 2, 3}, i64(10, 20, 30))
	out, err := Pad(lo, 2, false, 1, 0)
	if err != nil {
		t.Fatalf("Pad: %v", err)
	}
	flatLO, ok := out.(*ListOffset)
	if !ok {
		t.Fatalf("Pad = %T, want *ListOffset", out)
	}
	row1, err := Getitem(flatLO, Slice{At{1}})
	if err != nil {
		t.Fatalf("Getitem(1): %v", err)
	}
	if row1.Length() != 2 {
		t.Fatalf("padded row length = %d, want 2", row1.Length())
	}
}

func TestPadClipTruncatesLongRows(t *testing.T) {
	lo := listOffsetOf(t, []int64{0, 3}, i64(1, 2, 3))
	out, err := Pad(lo, 2, true, 1, 0)
	if err != nil {
		t.Fatalf("Pad(clip): %v", err)
	}
	flatLO, ok := out.(*ListOffset)
	if !ok {
		t.Fatalf("Pad = %T, want *ListOffset", out)
	}
	row0, err := Getitem(flatLO, Slice{At{0}})
	if err != nil {
		t.Fatalf("Getitem(0): %v", err)
	}
	if row0.Length() != 2 {
		t.Fatalf("clipped row length = %d, want 2", row0.Length())
	}
}

func TestCombinationsAtDepth(t *testing.T) {
	leaf := i64(1, 2, 3)
	out, err := Combinations(leaf, 2, false, []string{"a", "b"}, 0, 0)
	if err != nil {
		t.Fatalf("Combinations: %v", err)
	}
	rec, ok := out.(*Record)
	if !ok {
		t.Fatalf("Combinations = %T, want *Record", out)
	}
	if rec.Length() != 3 {
		t.Fatalf("Length() = %d, want 3 (C(3,2))", rec.Length())
	}
	a, err := rec.GetField("a")
	if err != nil {
		t.Fatalf("GetField(a): %v", err)
	}
	b, err := rec.GetField("b")
	if err != nil {
		t.Fatalf("GetField(b): %v", err)
	}
	for i := 0; i < rec.Length(); i++ {
		if int64ValueAt(t, a, i) >= int64ValueAt(t, b, i) {
			t.Fatalf("pair %d: a=%d is not < b=%d (replacement=false)", i, int64ValueAt(t, a, i), int64ValueAt(t, b, i))
		}
	}
}

func TestCombinationsWithReplacement(t *testing.T) {
	leaf := i64(1, 2)
	out, err := Combinations(leaf, 2, true, nil, 0, 0)
	if err != nil {
		t.Fatalf("Combinations: %v", err)
	}
	if out.Length() != 3 {
		t.Fatalf("Length() = %d, want 3 (C(2+2-1,2) with replacement)", out.Length())
	}
}
