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

import "golang.org/x/exp/maps"

// Parameters is the free-form string-keyed annotation map every node
// carries (spec §3.2). Equality is set-wise; insertion order is
// irrelevant (spec §9).
type Parameters map[string]string

// Equal reports whether p and q hold the same set of key/value pairs.
func (p Parameters) Equal(q Parameters) bool {
	return maps.Equal(p, q)
}

// Clone returns an independent copy of p.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Get returns the value for key and whether it was present.
func (p Parameters) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// With returns a new Parameters equal to p with key set to value.
func (p Parameters) With(key, value string) Parameters {
	out := p.Clone()
	if out == nil {
		out = Parameters{}
	}
	out[key] = value
	return out
}
