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

// resolveUnionRow walks a (possibly nested) union tag/index pair down
// to the first non-union leaf arm, the way nested unions logically
// address a leaf element (spec §4.4).
func resolveUnionRow(contents []Content, tag int8, idx int64) (Content, int64) {
	arm := contents[tag]
	ul, ok := arm.(unionLike)
	if !ok {
		return arm, idx
	}
	subTags := ul.tagsValues()
	subIdx := ul.indexValues().Values()
	subContents := make([]Content, ul.numArms())
	for i := range subContents {
		subContents[i] = ul.arm(i)
	}
	return resolveUnionRow(subContents, subTags[idx], subIdx[idx])
}

// composeOptionIndex composes two option indices the way spec §4.3
// does for ByteMasked/BitMasked-over-option-typed-child: outer -1
// stays -1, otherwise result[i] = inner[outer[i]].
func composeOptionIndex(outer, inner index.Index[int64]) index.Index[int64] {
	return index.New(kernel.ComposeOptionIndex64(outer.Values(), inner.Values()))
}

// simplifyUniontype canonicalizes a Union (spec §4.4): nested unions
// are flattened, compatible arms are physically concatenated into one
// canonical arm when merge is true (when merge is false no arms are
// folded and each distinct leaf arm stays its own canonical arm), the
// 127-arm cap is enforced, and a union left
// with a single canonical arm collapses to that arm carried by the
// row index.
func simplifyUniontype(u *Union, merge bool) (Content, error) {
	n := u.Length()
	tagVals := u.tags.Values()
	idxVals := u.idx.Values()

	leafArm := make([]Content, n)
	leafPos := make([]int64, n)
	uniqueArms := make([]Content, 0, len(u.contents))
	uniqueIndexOf := make(map[Content]int, len(u.contents))
	rowUnique := make([]int, n)
	for r := 0; r < n; r++ {
		arm, pos := resolveUnionRow(u.contents, tagVals[r], idxVals[r])
		leafArm[r] = arm
		leafPos[r] = pos
		ui, ok := uniqueIndexOf[arm]
		if !ok {
			ui = len(uniqueArms)
			uniqueIndexOf[arm] = ui
			uniqueArms = append(uniqueArms, arm)
		}
		rowUnique[r] = ui
	}

	canonicalArms := make([]Content, 0, len(uniqueArms))
	canonicalOf := make([]int, len(uniqueArms))
	memberOffset := make([]int64, len(uniqueArms))
	for i, arm := range uniqueArms {
		placed := false
		if merge {
			for c := range canonicalArms {
				if !arm.mergeable(canonicalArms[c], merge) {
					continue
				}
				offset := int64(canonicalArms[c].Length())
				merged, err := canonicalArms[c].Merge(arm)
				if err != nil {
					continue
				}
				canonicalArms[c] = merged
				canonicalOf[i] = c
				memberOffset[i] = offset
				placed = true
				break
			}
		}
		if !placed {
			canonicalOf[i] = len(canonicalArms)
			memberOffset[i] = 0
			canonicalArms = append(canonicalArms, arm)
		}
	}

	if len(canonicalArms) > MaxUnionArms {
		return nil, capacityExceededf(u.kind(), "simplify_uniontype: folding produced %d arms, exceeding the %d-arm cap", len(canonicalArms), MaxUnionArms)
	}

	if len(canonicalArms) == 1 {
		newIdx := make([]int64, n)
		for r := 0; r < n; r++ {
			ui := rowUnique[r]
			newIdx[r] = memberOffset[ui] + leafPos[r]
		}
		out, err := canonicalArms[0].Carry(index.New(newIdx))
		if err != nil {
			return nil, err
		}
		return out.WithIdentities(u.ids).WithParams(u.params), nil
	}

	newTags := make([]int8, n)
	newIdx := make([]int64, n)
	for r := 0; r < n; r++ {
		ui := rowUnique[r]
		newTags[r] = int8(canonicalOf[ui])
		newIdx[r] = memberOffset[ui] + leafPos[r]
	}
	out, err := NewUnion(index.New(newTags), index.New(newIdx), canonicalArms)
	if err != nil {
		return nil, err
	}
	out.ids = u.ids
	out.params = u.params
	return out, nil
}
