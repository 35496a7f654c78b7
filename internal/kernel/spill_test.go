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

package kernel

import (
	"bytes"
	"testing"
)

func TestCompressSpillRoundTrip(t *testing.T) {
	buf := bytes.Repeat([]byte("abcdefgh"), 4096)
	compressed := CompressSpill(buf)
	if len(compressed) >= len(buf) {
		t.Fatalf("compressed size %d did not shrink a highly repetitive buffer of size %d", len(compressed), len(buf))
	}
	back, err := DecompressSpill(compressed, len(buf))
	if err != nil {
		t.Fatalf("DecompressSpill: %v", err)
	}
	if !bytes.Equal(back, buf) {
		t.Fatalf("round-tripped bytes do not match the original")
	}
}

func TestCompressSpillEmpty(t *testing.T) {
	compressed := CompressSpill(nil)
	back, err := DecompressSpill(compressed, 0)
	if err != nil {
		t.Fatalf("DecompressSpill: %v", err)
	}
	if len(back) != 0 {
		t.Fatalf("len(back) = %d, want 0", len(back))
	}
}
