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

// IndexedValidity checks that every entry of an Indexed/IndexedOption
// index is in bounds (negative entries are only legal when
// allowMissing is set, per spec §3.2 Indexed vs IndexedOption).
func IndexedValidity(idx []int64, childLen int, allowMissing bool) Error {
	for i, v := range idx {
		if v < 0 {
			if allowMissing {
				continue
			}
			return boundsError("indexedarray_validity: index[%d]=%d is negative but variant never masks", i, v)
		}
		if int(v) >= childLen {
			return boundsError("indexedarray_validity: index[%d]=%d out of range [0,%d)", i, v, childLen)
		}
	}
	return Error{}
}

// OffsetsMonotonic checks that a ListOffset offsets buffer is
// non-decreasing and non-negative at the first entry, per spec §3.3.
func OffsetsMonotonic(offsets []int64) Error {
	if len(offsets) == 0 {
		return Error{}
	}
	if offsets[0] < 0 {
		return boundsError("listoffsetarray_validity: offsets[0]=%d is negative", offsets[0])
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return internalError("listoffsetarray_validity: offsets[%d]=%d < offsets[%d]=%d", i, offsets[i], i-1, offsets[i-1])
		}
	}
	return Error{}
}

// ComposeOptionIndex64 composes two IndexedOption index buffers per
// spec §4.3: outer -1 stays -1; otherwise result[i] = inner[outer[i]].
func ComposeOptionIndex64(outer, inner []int64) []int64 {
	out := make([]int64, len(outer))
	for i, o := range outer {
		if o < 0 {
			out[i] = -1
			continue
		}
		out[i] = inner[o]
	}
	return out
}
