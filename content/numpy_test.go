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

func TestDeepCopySmallBufferNoSpill(t *testing.T) {
	small := i64(1, 2, 3)
	cp := small.DeepCopy()
	if _, spilled := cp.Spilled(); spilled {
		t.Fatalf("Spilled() = true for a buffer well under the spill threshold")
	}
	if cp.Length() != small.Length() {
		t.Fatalf("Length() = %d, want %d", cp.Length(), small.Length())
	}
}

func TestDeepCopyLargeBufferSpillsAndUnspills(t *testing.T) {
	vals := make([]int64, deepCopySpillThreshold/8+1024)
	for i := range vals {
		vals[i] = int64(i)
	}
	big := i64(vals...)
	cp := big.DeepCopy()
	n, spilled := cp.Spilled()
	if !spilled {
		t.Fatalf("Spilled() = false for a buffer past the spill threshold")
	}
	if n <= 0 {
		t.Fatalf("Spilled() compressed size = %d, want > 0", n)
	}
	back, err := cp.Unspill()
	if err != nil {
		t.Fatalf("Unspill: %v", err)
	}
	if len(back) != len(vals)*8 {
		t.Fatalf("Unspill returned %d bytes, want %d", len(back), len(vals)*8)
	}
}
