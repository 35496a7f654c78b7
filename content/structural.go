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

// threadAxis implements the single shape spec §4.8 describes for
// padding, local_index, combinations and (for non-list nodes) num: at axis==depth, apply
// axis0 to the node as a whole; at a list layer's own rows
// (axis==depth+1, the same convention offsets_and_flattened uses),
// apply axis0 per row and reassemble a ListOffset; deeper than that,
// recurse into the list's child with depth+1 and keep the list shape;
// and for passthrough variants (Record, Union, option layers) push
// into every field/arm/child at the same axis,depth and reassemble,
// resimplifying unions and options.
func threadAxis(c Content, axis, depth int, axis0 func(Content) (Content, error)) (Content, error) {
	if axis < depth {
		return nil, invalidArgumentf(c.kind(), "axis %d is less than the current depth %d", axis, depth)
	}
	if axis == depth {
		return axis0(c)
	}
	if ll, ok := c.(listLike); ok {
		if axis == depth+1 {
			return threadAxisRows(c, ll, axis0)
		}
		newChild, err := threadAxis(ll.listChild(), axis, depth+1, axis0)
		if err != nil {
			return nil, err
		}
		return NewListOffset(ll.listOffsets(), newChild)
	}
	if rl, ok := c.(recordLike); ok {
		fields := make([]Content, rl.numFields())
		for i := range fields {
			f, err := threadAxis(rl.fieldAt(i), axis, depth, axis0)
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return NewRecord(fields, rl.fieldNames(), c.Length())
	}
	if ul, ok := c.(unionLike); ok {
		arms := make([]Content, ul.numArms())
		for i := range arms {
			a, err := threadAxis(ul.arm(i), axis, depth, axis0)
			if err != nil {
				return nil, err
			}
			arms[i] = a
		}
		nu, err := NewUnion(index.New(ul.tagsValues()), ul.indexValues(), arms)
		if err != nil {
			return nil, err
		}
		return simplifyUniontype(nu, true)
	}
	if ol, ok := asOptionLayer(c); ok {
		newInner, err := threadAxis(ol.optionContent(), axis, depth, axis0)
		if err != nil {
			return nil, err
		}
		opt, err := NewIndexedOption(ol.optionIndex64(), newInner)
		if err != nil {
			return nil, err
		}
		return simplifyThenGetitem(opt, emptyTail, nil)
	}
	return nil, invalidArgumentf(c.kind(), "axis %d exceeds the depth of this array", axis)
}

// threadAxisRows applies axis0 to each row of a list layer separately
// and reassembles the per-row results into a fresh ListOffset,
// mirroring getitemJagged's per-row Getitem-then-reassemble shape.
func threadAxisRows(c Content, ll listLike, axis0 func(Content) (Content, error)) (Content, error) {
	n := c.Length()
	offsets := ll.listOffsets()
	child := ll.listChild()
	rows := make([]Content, n)
	lens := make([]int64, n)
	for i := 0; i < n; i++ {
		s, e := offsets.Get(i), offsets.Get(i+1)
		row, err := child.Carry(rangeIndices(int(s), int(e), 1))
		if err != nil {
			return nil, err
		}
		out, err := axis0(row)
		if err != nil {
			return nil, err
		}
		rows[i] = out
		lens[i] = int64(out.Length())
	}
	newOffsets := make([]int64, n+1)
	for i, ln := range lens {
		newOffsets[i+1] = newOffsets[i] + ln
	}
	flat, err := mergeRows(rows)
	if err != nil {
		return nil, err
	}
	return NewListOffset(index.New(newOffsets), flat)
}

// Num counts the elements of c along axis (spec §4.8): at axis==depth
// it returns a length-1 int64 Numpy holding c.Length() (the awkward
// convention for "the length of this collection, as a value"). On a
// list layer, axis==depth+1 yields a flat int64 Numpy of the per-row
// lengths, and deeper axes keep the list's offsets around the inner
// result; every other variant goes through the shared threadAxis shape.
func Num(c Content, axis, depth int) (Content, error) {
	if ll, ok := c.(listLike); ok && axis > depth {
		offsets := ll.listOffsets()
		if axis == depth+1 {
			counts := make([]int64, c.Length())
			for i := range counts {
				counts[i] = offsets.Get(i+1) - offsets.Get(i)
			}
			return NewNumpy(index.Int64Buffer(counts)), nil
		}
		inner, err := Num(ll.listChild(), axis, depth+1)
		if err != nil {
			return nil, err
		}
		return NewListOffset(offsets, inner)
	}
	return threadAxis(c, axis, depth, func(node Content) (Content, error) {
		return NewNumpy(index.Int64Buffer([]int64{int64(node.Length())})), nil
	})
}

// LocalIndex replaces every element of the collection at axis with
// its own position within that collection (spec §4.8), grounded in
// awkward's local_index: at axis==depth the axis0 helper is
// arange(len), and the shared shape applies it per row once axis
// reaches a list layer's own rows.
func LocalIndex(c Content, axis, depth int) (Content, error) {
	return threadAxis(c, axis, depth, func(node Content) (Content, error) {
		return NewNumpy(index.Int64Buffer(index.Arange(node.Length()).Values())), nil
	})
}

// Pad ensures every collection at axis has at least target elements,
// filling missing ones with None (spec §4.8); with clip set,
// collections longer than target are truncated to exactly target.
func Pad(c Content, target int, clip bool, axis, depth int) (Content, error) {
	if target < 0 {
		return nil, invalidArgumentf(c.kind(), "pad target %d must be non-negative", target)
	}
	return threadAxis(c, axis, depth, func(node Content) (Content, error) {
		return axis0Pad(node, target, clip)
	})
}

func axis0Pad(node Content, target int, clip bool) (Content, error) {
	n := node.Length()
	if n >= target {
		if !clip {
			return node, nil
		}
		return node.Carry(rangeIndices(0, target, 1))
	}
	idx := make([]int64, target)
	for i := 0; i < n; i++ {
		idx[i] = int64(i)
	}
	for i := n; i < target; i++ {
		idx[i] = -1
	}
	return NewIndexedOption(index.New(idx), node)
}

// Combinations produces every n-length tuple of elements drawn from
// the collection at axis, one tuple per output element, following
// awkward's combinations (spec §4.8): axis==depth treats the whole
// node as the pool to draw from, and the shared shape lifts this to
// per-row pools once axis reaches a list layer's own rows.
func Combinations(c Content, n int, replacement bool, fields []string, axis, depth int) (Content, error) {
	if n < 1 {
		return nil, invalidArgumentf(c.kind(), "combinations n=%d must be >= 1", n)
	}
	if fields != nil && len(fields) != n {
		return nil, invalidArgumentf(c.kind(), "combinations: len(fields)=%d != n=%d", len(fields), n)
	}
	return threadAxis(c, axis, depth, func(node Content) (Content, error) {
		return axis0Combinations(node, n, replacement, fields)
	})
}

func axis0Combinations(node Content, n int, replacement bool, fields []string) (Content, error) {
	length := node.Length()
	combos := combinationIndices(length, n, replacement)
	slots := make([]Content, n)
	for k := 0; k < n; k++ {
		idx := make([]int64, len(combos))
		for i, combo := range combos {
			idx[i] = int64(combo[k])
		}
		fc, err := node.Carry(index.New(idx))
		if err != nil {
			return nil, err
		}
		slots[k] = fc
	}
	return NewRecord(slots, fields, len(combos))
}

// combinationIndices enumerates every strictly (or, with replacement,
// weakly) increasing n-tuple of indices in [0,length), in
// lexicographic order.
func combinationIndices(length, n int, replacement bool) [][]int {
	if n <= 0 || length == 0 {
		return nil
	}
	combo := make([]int, n)
	var out [][]int
	var rec func(pos, start int)
	rec = func(pos, start int) {
		if pos == n {
			cp := append([]int(nil), combo...)
			out = append(out, cp)
			return
		}
		lo := start
		if replacement {
			for v := lo; v < length; v++ {
				combo[pos] = v
				rec(pos+1, v)
			}
		} else {
			for v := lo; v <= length-(n-pos); v++ {
				combo[pos] = v
				rec(pos+1, v+1)
			}
		}
	}
	rec(0, 0)
	return out
}
