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
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/google/uuid"

	"github.com/Ellipse0934/awkward-1.0/index"
	"github.com/Ellipse0934/awkward-1.0/internal/kernel"
)

// Identities is the optional per-row provenance label every node may
// carry in parallel with its data (spec §3.2, §9). It is opaque to
// every structural rule except length parity: identities.length ==
// node.length whenever identities is propagated.
type Identities struct {
	ref    uuid.UUID       // tags the originating allocation
	values index.Index[int64]
}

// NewIdentities allocates a fresh, densely-numbered identities block
// starting at zero, the identities64_new kernel realized at the
// content layer (spec §6.1).
func NewIdentities(length int) *Identities {
	vals := kernel.IdentitiesNew64(0, length)
	return &Identities{ref: uuid.New(), values: index.New(vals)}
}

// Len returns the number of rows this Identities block labels.
func (ids *Identities) Len() int {
	if ids == nil {
		return 0
	}
	return ids.values.Len()
}

// Slice returns the O(1) window [start,stop) of ids, sharing ref.
func (ids *Identities) Slice(start, stop int) *Identities {
	if ids == nil {
		return nil
	}
	return &Identities{ref: ids.ref, values: ids.values.Slice(start, stop)}
}

// Carry gathers ids[idx[k]] for each k, used whenever a node's Carry
// implementation gathers its data.
func (ids *Identities) Carry(idx index.Index[int64]) *Identities {
	if ids == nil {
		return nil
	}
	return &Identities{ref: ids.ref, values: ids.values.Carry(idx)}
}

// SameAllocation reports whether a and b were derived from the same
// originating NewIdentities call, letting callers short-circuit a
// full buffer comparison the way ion.Symtab.contains lets Struct.Encode
// skip a resymbolization pass.
func (a *Identities) SameAllocation(b *Identities) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ref == b.ref
}

// Hash returns a stable, collision-resistant fingerprint of row i's
// identity, keyed by the identities block's ref.
func (ids *Identities) Hash(i int) uint64 {
	if ids == nil {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ids.values.Get(i)))
	k0 := binary.LittleEndian.Uint64(ids.ref[0:8])
	k1 := binary.LittleEndian.Uint64(ids.ref[8:16])
	return siphash.Hash(k0, k1, buf[:])
}

// mergeIdentities concatenates a (length aLen) and b (length bLen)'s
// identities. Whichever side lacks identities of its own is extended
// with freshly numbered ones first via the identities64_extend kernel,
// so concatenation always has two real buffers to splice (spec §5's
// identities propagation, realized at the merge boundary). It returns
// nil only when neither side ever carried identities.
func mergeIdentities(a *Identities, aLen int, b *Identities, bLen int) *Identities {
	if a == nil && b == nil {
		return nil
	}
	ref := uuid.New()
	var left []int64
	if a != nil {
		ref = a.ref
		left = a.values.Values()
	} else {
		left = kernel.IdentitiesExtend64(nil, int64(aLen), 0)
	}
	var right []int64
	if b != nil {
		right = b.values.Values()
	} else {
		right = kernel.IdentitiesExtend64(nil, int64(bLen), int64(aLen))
	}
	out := make([]int64, 0, len(left)+len(right))
	out = append(out, left...)
	out = append(out, right...)
	return &Identities{ref: ref, values: index.New(out)}
}

// setidentities is the sole mutating operation in the core (spec §5):
// it is only safe to call on a node not yet shared across threads.
// It is exposed narrowly via WithIdentities on each variant rather
// than as a public mutator, so every call site produces a new value.
