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

// Package content implements the node algebra of a columnar engine
// for jagged, heterogeneous, nullable, record-structured arrays: the
// ten Content variants (spec §3.2) and the recursive operations that
// rewrite one node tree into another (getitem, carry, project,
// simplify, merge, flatten, and the axis-threading helpers for pad,
// localindex, combinations, and num).
//
// Content is a closed sum type. Rather than a tag switch, dispatch
// is expressed as a vtable: every variant implements the Content
// interface, and the handful of places that need to reason about
// "what kind of node is this" (simplify, merge's left/right
// reversal, Record/Union's shared slice-item handlers) do so through
// small capability interfaces instead of an exhaustive type switch
// (spec §9, "Deep inheritance -> tagged variants").
package content

import "github.com/Ellipse0934/awkward-1.0/index"

// Content is the abstract node of the tree (spec §3.2). Every
// variant is immutable after construction; transformations return a
// new Content rather than mutating in place (spec §3.4).
type Content interface {
	// Length returns len() per spec §3.2's per-variant table.
	Length() int

	// Identities returns the per-row provenance labels, or nil.
	Identities() *Identities

	// WithIdentities returns a copy of this node with its identities
	// replaced; this is the narrow surface for the single mutating
	// operation the spec allows (setidentities, spec §5), expressed
	// as a value return rather than an in-place mutation.
	WithIdentities(ids *Identities) Content

	// Params returns the free-form parameters map (spec §3.2).
	Params() Parameters

	// WithParams returns a copy of this node with params replaced.
	WithParams(p Parameters) Content

	// Carry gathers c[idx[k]] for each k (spec §4.5).
	Carry(idx index.Index[int64]) (Content, error)

	// Merge returns the concatenation of self then other (spec §4.6).
	Merge(other Content) (Content, error)

	// ValidityError checks the invariants in spec §3.3 for this node
	// and its children, returning "" via a nil error on success. path
	// is the location of this node within its parent, e.g. ".content".
	ValidityError(path string) error

	// kind names the variant for error messages and dumps.
	kind() string

	// getitemNext consumes head against this node given the
	// remaining tail and the threaded advanced-index state (spec
	// §4.1, §4.2), returning the transformed Content.
	getitemNext(head SliceItem, tail Slice, advanced *index.Index[int64]) (Content, error)

	// reverseMerge treats self as the right operand of a merge whose
	// left operand is other (spec §4.6): variants that "own" the
	// concatenation rule when they appear on the right implement
	// this to produce the final merged Content.
	reverseMerge(left Content) (Content, error)

	// mergeable reports whether self and other may be merged without
	// widening to a union (spec §4.4's mergeable predicate, used by
	// both merge and simplify_uniontype).
	mergeable(other Content, mergebool bool) bool

	// offsetsAndFlattened removes one list axis at axis==depth+1
	// (spec §4.7).
	offsetsAndFlattened(axis, depth int) (index.Index[int64], Content, error)
}

// optionLayer is implemented by the four option-typed variants
// (Unmasked, ByteMasked, BitMasked, IndexedOption) so simplify and
// getitem's Missing/option handling can recognize "this node is
// itself option-typed" without an exhaustive type switch.
type optionLayer interface {
	Content
	// simplifyOptionType canonicalizes nested option wrappers into a
	// single IndexedOption64 (spec §4.3).
	simplifyOptionType() Content
	// optionIndex64 returns the -1-for-missing index this option
	// layer is logically equivalent to, materializing one if the
	// variant is mask-based.
	optionIndex64() index.Index[int64]
	// optionContent returns the wrapped child.
	optionContent() Content
}

// asOptionLayer reports whether c is one of the four option variants.
func asOptionLayer(c Content) (optionLayer, bool) {
	o, ok := c.(optionLayer)
	return o, ok
}

// indexedLayer is implemented by Indexed and IndexedOption so merge
// and carry can share the "I am a gather over a child" logic.
type indexedLayer interface {
	Content
	indexValues() index.Index[int64]
	indexedChild() Content
}

// recordLike lets getitem's record-projection handlers and merge's
// field-wise logic recognize Record without a type switch chain.
type recordLike interface {
	Content
	fieldNames() []string // nil => tuple
	fieldAt(i int) Content
	numFields() int
}

// unionLike marks Union so simplify_uniontype, merge's union
// absorption, and getitem's per-arm fan-out can be written against a
// narrow interface.
type unionLike interface {
	Content
	numArms() int
	arm(i int) Content
	tagsValues() []int8
	indexValues() index.Index[int64]
}
