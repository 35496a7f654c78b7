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

// Flatten removes one list axis from c (spec §4.7): axis==0 is
// forbidden (the outermost axis can't be flattened), and each variant
// implements its own offsetsAndFlattened that either is the list
// layer being removed or pushes the call into its children/arms and
// reassembles. The public entry point just validates axis and
// delegates; the offsets half of the pair exists for callers (like a
// Union parent) that need to reassemble several flattened children
// consistently, so it stays on the Content interface rather than
// being folded away here.
func Flatten(c Content, axis int) (Content, error) {
	if axis == 0 {
		return nil, invalidArgumentf(c.kind(), "axis==0: cannot flatten the outermost axis")
	}
	_, flat, err := c.offsetsAndFlattened(axis, 0)
	if err != nil {
		return nil, err
	}
	return flat, nil
}
