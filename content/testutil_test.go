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
	"encoding/binary"
	"testing"

	"github.com/Ellipse0934/awkward-1.0/index"
)

// i64 builds a Numpy leaf of int64 values, the fixture shape used
// throughout the E1-E6 scenarios in spec.md.
func i64(vals ...int64) *Numpy {
	return NewNumpy(index.Int64Buffer(vals))
}

func f64(vals ...float64) *Numpy {
	return NewNumpy(index.Float64Buffer(vals))
}

func boolLeaf(vals ...bool) *Numpy {
	return NewNumpy(index.BoolBuffer(vals))
}

func listOffsetOf(t *testing.T, offsets []int64, child Content) *ListOffset {
	t.Helper()
	lo, err := NewListOffset(index.New(offsets), child)
	if err != nil {
		t.Fatalf("NewListOffset: %v", err)
	}
	return lo
}

func recordOf(t *testing.T, keys []string, contents ...Content) *Record {
	t.Helper()
	r, err := NewRecord(contents, keys, -1)
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	return r
}

// int64ValueAt reads element i of a Numpy holding int64 scalars,
// failing the test if c is not such a leaf.
func int64ValueAt(t *testing.T, c Content, i int) int64 {
	t.Helper()
	n, ok := c.(*Numpy)
	if !ok {
		t.Fatalf("int64ValueAt: %s is not a Numpy", c.kind())
	}
	b := n.Buffer().Bytes()
	off := i * 8
	return int64(binary.LittleEndian.Uint64(b[off : off+8]))
}
