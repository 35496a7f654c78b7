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

// mergeAsUnion is the merge fallback of spec §4.6 rule 1: when a and
// b cannot be merged in place (incompatible variants, or matching
// variants with differing parameters), wrap both in a two-arm
// Union<i8,i64> with an identity index, then let simplify_uniontype
// fold any nested unions on either side into the canonical arm set.
func mergeAsUnion(a, b Content) (Content, error) {
	na, nb := a.Length(), b.Length()
	tags := make([]int8, na+nb)
	idx := make([]int64, na+nb)
	for i := 0; i < na; i++ {
		idx[i] = int64(i)
	}
	for i := 0; i < nb; i++ {
		tags[na+i] = 1
		idx[na+i] = int64(i)
	}
	u, err := NewUnion(index.New(tags), index.New(idx), []Content{a, b})
	if err != nil {
		return nil, err
	}
	return simplifyUniontype(u, true)
}
