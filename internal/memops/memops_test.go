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

package memops

import "testing"

func TestZeroMemory(t *testing.T) {
	t.Run("int32", func(t *testing.T) {
		buf := []int32{1, 2, 3, 4}
		ZeroMemory(buf)
		for i, v := range buf {
			if v != 0 {
				t.Fatalf("buf[%d] = %d, want 0", i, v)
			}
		}
	})

	t.Run("float32", func(t *testing.T) {
		buf := []float32{1.5, 2.5}
		ZeroMemory(buf)
		for i, v := range buf {
			if v != 0 {
				t.Fatalf("buf[%d] = %v, want 0", i, v)
			}
		}
	})

	t.Run("empty", func(t *testing.T) {
		var buf []uint8
		ZeroMemory(buf) // must not panic on an empty/nil slice
	})
}

func BenchmarkZeroMemory(b *testing.B) {
	buf := make([]uint64, 1024*1024)
	for n := 0; n < b.N; n++ {
		ZeroMemory(buf)
	}
}
