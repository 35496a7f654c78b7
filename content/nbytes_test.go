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

func TestNbytesEmptyIsZero(t *testing.T) {
	if got := Nbytes(NewEmpty()); got != 0 {
		t.Fatalf("Nbytes(Empty) = %d, want 0", got)
	}
}

func TestNbytesLeafIsPositive(t *testing.T) {
	if got := Nbytes(i64(1, 2, 3, 4)); got <= 0 {
		t.Fatalf("Nbytes(leaf) = %d, want > 0", got)
	}
}

func TestNbytesSharedChildCountedOnce(t *testing.T) {
	leaf := i64(1, 2, 3)
	leafOnly := Nbytes(leaf)

	// Two ListOffset layers sharing the same leaf child must not
	// double-count the leaf's buffer once they're both reachable from
	// a common parent.
	lo1 := listOffsetOf(t, []int64{0, 1, 3}, leaf)
	lo2 := listOffsetOf(t, []int64{0, 2, 3}, leaf)
	rec := recordOf(t, []string{"a", "b"}, lo1, lo2)

	separateSum := Nbytes(lo1) + Nbytes(lo2)
	combined := Nbytes(rec)
	if combined != separateSum-leafOnly {
		t.Fatalf("Nbytes(shared-child record) = %d, want %d (leaf counted once, not twice)", combined, separateSum-leafOnly)
	}
}
