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

// UnionRegularIndex builds a dense per-arm index [0,1,2,...] restarting
// at zero at each tag boundary, the unionarray_regular_index kernel.
// This is the index a union needs after each arm has been densely
// projected in tag order (spec §4.2 Union element-addressing heads).
func UnionRegularIndex(tags []int8, numarms int) []int64 {
	next := make([]int64, numarms)
	out := make([]int64, len(tags))
	for i, t := range tags {
		out[i] = next[t]
		next[t]++
	}
	return out
}

// UnionProject64 extracts, in order, the positions of tags equal to
// arm, the unionarray_project_64 kernel (paired with index[pos] to
// perform the actual Content.Carry).
func UnionProject64(tags []int8, arm int8) []int64 {
	var out []int64
	for i, t := range tags {
		if t == arm {
			out = append(out, int64(i))
		}
	}
	return out
}

// UnionFillTagsToI8Const fills dst[lo:lo+n] with a constant tag
// value, the unionarray_filltags_to8_const kernel (used when
// widening a non-union arm into the canonical union during
// simplify_uniontype).
func UnionFillTagsToI8Const(dst []int8, lo, n int, tag int8) {
	for i := lo; i < lo+n; i++ {
		dst[i] = tag
	}
}

// UnionFillTagsToI8FromI8 copies and remaps an inner union's tags
// into the canonical tag space, the unionarray_filltags_to8_from8
// kernel: dst[lo+i] = remap[src[i]].
func UnionFillTagsToI8FromI8(dst []int8, lo int, src []int8, remap []int8) {
	for i, t := range src {
		dst[lo+i] = remap[t]
	}
}

// UnionFillIndexToI64Count fills dst[lo:lo+n] with [base,base+1,...],
// the unionarray_fillindex_to64_count kernel (used when a plain,
// non-union arm becomes one union arm verbatim).
func UnionFillIndexToI64Count(dst []int64, lo, n int, base int64) {
	for i := 0; i < n; i++ {
		dst[lo+i] = base + int64(i)
	}
}

// UnionFillIndexToI64FromI64 copies src into dst starting at lo,
// adding offset to every element, the unionarray_fillindex_to64_from64
// kernel (rebasing an absorbed arm's index by the canonical arm's
// prior length).
func UnionFillIndexToI64FromI64(dst []int64, lo int, src []int64, offset int64) {
	for i, v := range src {
		dst[lo+i] = v + offset
	}
}

// UnionFlattenLength64 sums the per-row flattened lengths that each
// arm contributed at the positions belonging to that arm, the
// unionarray_flatten_length_64 kernel.
func UnionFlattenLength64(tags []int8, armLengths [][]int64) []int64 {
	out := make([]int64, len(tags))
	next := make([]int, len(armLengths))
	for i, t := range tags {
		out[i] = armLengths[t][next[t]]
		next[t]++
	}
	return out
}

// UnionFlattenCombine64 turns per-row lengths into monotonic
// offsets, the unionarray_flatten_combine_64 kernel.
func UnionFlattenCombine64(lengths []int64) []int64 {
	out := make([]int64, len(lengths)+1)
	for i, l := range lengths {
		out[i+1] = out[i] + l
	}
	return out
}

// UnionValidity checks the structural bounds required of a union,
// the unionarray_validity kernel: every tag must select an existing
// arm, and every index must be in range for the arm it selects.
func UnionValidity(tags []int8, index []int64, armlen []int) Error {
	if len(index) < len(tags) {
		return boundsError("unionarray_validity: len(index)=%d < len(tags)=%d", len(index), len(tags))
	}
	for i, t := range tags {
		if int(t) < 0 || int(t) >= len(armlen) {
			return boundsError("unionarray_validity: tags[%d]=%d out of range [0,%d)", i, t, len(armlen))
		}
		if index[i] < 0 || int(index[i]) >= armlen[t] {
			return boundsError("unionarray_validity: index[%d]=%d out of range [0,%d) for arm %d", i, index[i], armlen[t], t)
		}
	}
	return Error{}
}
