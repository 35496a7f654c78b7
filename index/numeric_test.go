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

package index

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestInt64Buffer(t *testing.T) {
	buf := Int64Buffer([]int64{1, -2, 3})
	if buf.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", buf.Len())
	}
	b := buf.Bytes()
	if got := int64(binary.LittleEndian.Uint64(b[8:16])); got != -2 {
		t.Fatalf("element 1 = %d, want -2", got)
	}
}

func TestFloat64Buffer(t *testing.T) {
	buf := Float64Buffer([]float64{1.5, 2.5})
	b := buf.Bytes()
	got := math.Float64frombits(binary.LittleEndian.Uint64(b[8:16]))
	if got != 2.5 {
		t.Fatalf("element 1 = %v, want 2.5", got)
	}
}

func TestBoolBuffer(t *testing.T) {
	buf := BoolBuffer([]bool{true, false, true})
	b := buf.Bytes()
	if b[0] != 1 || b[1] != 0 || b[2] != 1 {
		t.Fatalf("Bytes() = %v, want [1 0 1]", b)
	}
}

func TestEmptyBuffers(t *testing.T) {
	if Int64Buffer(nil).Len() != 0 {
		t.Fatalf("Int64Buffer(nil).Len() != 0")
	}
	if Float64Buffer(nil).Len() != 0 {
		t.Fatalf("Float64Buffer(nil).Len() != 0")
	}
	if BoolBuffer(nil).Len() != 0 {
		t.Fatalf("BoolBuffer(nil).Len() != 0")
	}
}

func TestItemSize(t *testing.T) {
	cases := map[Dtype]int{Float64: 8, Int64: 8, Float32: 4, Int32: 4, Int8: 1, Uint8: 1, Bool: 1}
	for dt, want := range cases {
		if got := dt.ItemSize(); got != want {
			t.Fatalf("%s.ItemSize() = %d, want %d", dt, got, want)
		}
	}
}
