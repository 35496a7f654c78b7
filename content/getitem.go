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
	"github.com/Ellipse0934/awkward-1.0/index"
	"github.com/Ellipse0934/awkward-1.0/internal/kernel"
)

// normalizeIndex resolves a possibly-negative At index against
// length, the way Python/numpy negative indexing does.
func normalizeIndex(i int64, length int) int {
	if i < 0 {
		i += int64(length)
	}
	return int(i)
}

// normalizeRange regularizes a RangeStep against length via the
// regularize_rangeslice kernel (spec §6.1) and returns the
// regularized start, stop and step.
func normalizeRange(r RangeStep, length int) (start, stop, step int) {
	var sp, tp, stp *int64
	if r.HasStart {
		v := r.Start
		sp = &v
	}
	if r.HasStop {
		v := r.Stop
		tp = &v
	}
	if r.HasStep {
		v := r.Step
		stp = &v
	}
	a, b, s := kernel.RegularizeRangeslice(sp, tp, stp, int64(length))
	return int(a), int(b), int(s)
}

// rangeLength returns the number of elements a regularized
// [start,stop) range with the given step selects.
func rangeLength(start, stop, step int) int {
	if step > 0 {
		if stop <= start {
			return 0
		}
		return (stop-start+step-1)/step
	}
	if stop >= start {
		return 0
	}
	return (start-stop-step-1) / (-step)
}

// rangeIndices materializes a regularized range as an explicit
// Index[int64], used whenever step != 1 forces an actual gather
// rather than an O(1) window slice.
func rangeIndices(start, stop, step int) index.Index[int64] {
	n := rangeLength(start, stop, step)
	out := make([]int64, n)
	v := start
	for i := 0; i < n; i++ {
		out[i] = int64(v)
		v += step
	}
	return index.New(out)
}

// pushHeadInEmptyTail applies a single head item to c with no
// further tail, the "project the head with empty tail" pattern used
// by Record's and Union's shared, non-element-addressing handlers
// (spec §4.2). advanced is threaded through unchanged since this is a
// transparent pass-through layer, not a new axis.
func pushHeadInEmptyTail(c Content, head SliceItem, advanced *index.Index[int64]) (Content, error) {
	return c.getitemNext(head, emptyTail, advanced)
}

// applyMissing implements the shared handler for a MissingItem head
// on a variant with no more specific handling of its own (spec §4.2):
// present rows are gathered out of c (and sliced further by
// h.Content, if given), absent rows become -1, and the whole thing is
// wrapped as an IndexedOption64 before the tail continues.
func applyMissing(c Content, h MissingItem, tail Slice, advanced *index.Index[int64]) (Content, error) {
	n := len(h.Mask)
	idx := make([]int64, n)
	present := make([]int64, 0, n)
	pos := int64(0)
	for i, ok := range h.Mask {
		if ok {
			idx[i] = pos
			present = append(present, int64(i))
			pos++
		} else {
			idx[i] = -1
		}
	}
	presentContent, err := c.Carry(index.New(present))
	if err != nil {
		return nil, err
	}
	if h.Content != nil {
		presentContent, err = Getitem(presentContent, h.Content)
		if err != nil {
			return nil, err
		}
	}
	opt, err := NewIndexedOption(index.New(idx), presentContent)
	if err != nil {
		return nil, err
	}
	return continueGetitem(opt, tail, advanced)
}

// headPreservesType reports whether a SliceItem head preserves the
// node's "type" for purposes of carrying parameters forward through
// Record's generic "push into each field" handler (spec §4.2).
func headPreservesType(head SliceItem) bool {
	switch head.(type) {
	case At, ArrayItem:
		return false
	default:
		return true
	}
}
