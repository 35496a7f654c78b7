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

import "fmt"

// Kind classifies an Error the way spec §7 does: ValidityError,
// InvalidArgument, Unsupported, CapacityExceeded, Internal.
type Kind uint8

const (
	// KindValidity: a node fails an invariant in spec §3.3.
	KindValidity Kind = iota
	// KindInvalidArgument: user-supplied input is ill-formed.
	KindInvalidArgument
	// KindUnsupported: an operation does not apply to a variant.
	KindUnsupported
	// KindCapacityExceeded: more than 127 union arms.
	KindCapacityExceeded
	// KindInternal: an invariant the core expected to hold was
	// violated by a kernel.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidity:
		return "ValidityError"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindUnsupported:
		return "Unsupported"
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the uniform error type returned by every node-algebra
// operation (spec §7). Path records where in the tree the failure
// occurred, built from ".field(i)", ".content", ".content(k)" segments
// as ValidityError descends into children, mirroring spec §4.9.
type Error struct {
	Kind    Kind
	Class   string // the kind() class name of the node that raised the error, e.g. "ListOffsetArray64"
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Class, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s (in %s%s)", e.Kind, e.Class, e.Message, e.Class, e.Path)
}

// WithPath returns a copy of e with segment prepended to its path.
func (e *Error) WithPath(segment string) *Error {
	e2 := *e
	e2.Path = segment + e2.Path
	return &e2
}

func newError(kind Kind, class, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Class: class, Path: path, Message: fmt.Sprintf(format, args...)}
}

func validityErrorf(class, path, format string, args ...any) error {
	return newError(KindValidity, class, path, format, args...)
}

func invalidArgumentf(class, format string, args ...any) error {
	return newError(KindInvalidArgument, class, "", format, args...)
}

func unsupportedf(class, format string, args ...any) error {
	return newError(KindUnsupported, class, "", format, args...)
}

func capacityExceededf(class, format string, args ...any) error {
	return newError(KindCapacityExceeded, class, "", format, args...)
}

func internalf(class, format string, args ...any) error {
	return newError(KindInternal, class, "", format, args...)
}
