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

// IdentitiesNew64 allocates a fresh, densely-numbered identities
// buffer [width, width+1, ..., width+length-1], the
// identities64_new kernel.
func IdentitiesNew64(width int64, length int) []int64 {
	out := make([]int64, length)
	for i := range out {
		out[i] = width + int64(i)
	}
	return out
}

// IdentitiesExtend64 appends newsize-len(cur) freshly numbered
// identities to cur, numbered next, next+1, ...; the
// identities64_extend kernel.
func IdentitiesExtend64(cur []int64, newsize int64, next int64) []int64 {
	out := make([]int64, newsize)
	copy(out, cur)
	for i := len(cur); i < len(out); i++ {
		out[i] = next
		next++
	}
	return out
}

// IdentitiesFromUnionarray64 selects the identities belonging to one
// arm of a union, the identities64_from_unionarray kernel: for each
// position where tags[i]==arm, emit the union's own identity ids[i]
// (the caller reorders by index separately, as project() does for
// the data itself).
func IdentitiesFromUnionarray64(tags []int8, ids []int64, arm int8) []int64 {
	var out []int64
	for i, t := range tags {
		if t == arm {
			out = append(out, ids[i])
		}
	}
	return out
}
