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

// broadcastArrayIndex implements one list axis of numpy-style
// advanced-index broadcasting (spec §4.1/§4.2's threaded `advanced`
// index), grounded on ListArray::getitem_next_array's two-kernel pair
// (awkward_ListArray_getitem_next_array_64 for the not-yet-advanced
// case, awkward_ListArray_getitem_next_array_advanced_64 once a prior
// axis has established a correlated position). rowAt(i) returns the
// [start,stop) bounds of row i in the child being carried; flathead is
// the (already-flattened) Array head's index values.
//
// When advanced is nil, this is the first Array head consumed along
// this recursion: every outer row is broadcast against every element
// of flathead (an outer product), producing nextoffsets for a new list
// axis of regular width len(flathead) and establishing nextadvanced,
// the position within flathead each nextcarry slot came from, for any
// Array/Jagged head consumed further down.
//
// When advanced is non-nil, an outer axis has already gone through the
// first branch: this axis must instead pick exactly the element
// flathead[advanced[i]] out of row i, one selection per outer row, with
// no further widening (nextoffsets is nil in this branch — the caller
// does not wrap the result in a new list layer).
func broadcastArrayIndex(n int, rowAt func(i int) (int64, int64), flathead []int64, advanced *index.Index[int64]) (nextcarry []int64, nextoffsets []int64, nextadvanced *index.Index[int64], err error) {
	if advanced == nil {
		width := len(flathead)
		nextoffsets = make([]int64, n+1)
		nextcarry = make([]int64, 0, n*width)
		adv := make([]int64, 0, n*width)
		for i := 0; i < n; i++ {
			start, stop := rowAt(i)
			rowLen := stop - start
			for j, h := range flathead {
				idx := h
				if idx < 0 {
					idx += rowLen
				}
				if idx < 0 || idx >= rowLen {
					return nil, nil, nil, invalidArgumentf("getitem_next_array", "index %d out of range for a row of length %d", h, rowLen)
				}
				nextcarry = append(nextcarry, start+idx)
				adv = append(adv, int64(j))
			}
			nextoffsets[i+1] = nextoffsets[i] + int64(width)
		}
		na := index.New(adv)
		return nextcarry, nextoffsets, &na, nil
	}
	if advanced.Len() != n {
		return nil, nil, nil, invalidArgumentf("getitem_next_array", "cannot broadcast advanced index of length %d against %d rows", advanced.Len(), n)
	}
	width := len(flathead)
	nextcarry = make([]int64, n)
	for i := 0; i < n; i++ {
		start, stop := rowAt(i)
		rowLen := stop - start
		pos := advanced.Get(i)
		if pos < 0 || int(pos) >= width {
			return nil, nil, nil, invalidArgumentf("getitem_next_array", "advanced position %d out of range for a %d-element index", pos, width)
		}
		idx := flathead[pos]
		if idx < 0 {
			idx += rowLen
		}
		if idx < 0 || idx >= rowLen {
			return nil, nil, nil, invalidArgumentf("getitem_next_array", "index %d out of range for a row of length %d", flathead[pos], rowLen)
		}
		nextcarry[i] = start + idx
	}
	return nextcarry, nil, advanced, nil
}

// getitemNextArray is the shared ArrayItem handler for the list-like
// variants (List, ListOffset, Regular): carry the child through
// broadcastArrayIndex's result, recurse the remaining tail with the
// resulting advanced state, and re-wrap in a fresh ListOffset64 only
// when this axis was the one that started the broadcast.
func getitemNextArray(rowAt func(i int) (int64, int64), n int, child Content, ids *Identities, h ArrayItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	flathead := h.Index.Values()
	nextcarry, nextoffsets, nextadvanced, err := broadcastArrayIndex(n, rowAt, flathead, advanced)
	if err != nil {
		return nil, err
	}
	nextChild, err := child.Carry(index.New(nextcarry))
	if err != nil {
		return nil, err
	}
	out, err := continueGetitem(nextChild, tail, nextadvanced)
	if err != nil {
		return nil, err
	}
	if nextoffsets == nil {
		return out, nil
	}
	return &ListOffset{offsets: index.New(nextoffsets), child: out, ids: ids}, nil
}
