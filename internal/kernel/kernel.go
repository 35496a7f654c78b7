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

// Package kernel implements the stateless, pointer-and-length buffer
// loops named in the node algebra's kernel ABI (spec §6.1): carry,
// zero-fill, identities bookkeeping, and the union-array helper
// family. The node algebra package calls these through a narrow
// surface so that an accelerated (e.g. SIMD or cgo) kernel package
// can be substituted without touching the recursive tree logic.
package kernel

import "fmt"

// Code identifies the class of a kernel-level failure, mirroring
// the "Error{code|message,identity}" contract of spec §6.1.
type Code uint8

const (
	OK Code = iota
	CodeBounds
	CodeCapacity
	CodeInternal
)

// Error is returned by value from kernel calls, per spec §6.1.
// It carries no identities context itself; the caller (content
// package) attaches classname/identities context uniformly when
// it surfaces a non-OK Error as a Go error.
type Error struct {
	Code    Code
	Message string
}

func (e Error) IsOK() bool { return e.Code == OK }

func (e Error) Error() string {
	return fmt.Sprintf("kernel: %s", e.Message)
}

func boundsError(format string, args ...any) Error {
	return Error{Code: CodeBounds, Message: fmt.Sprintf(format, args...)}
}

func capacityError(format string, args ...any) Error {
	return Error{Code: CodeCapacity, Message: fmt.Sprintf(format, args...)}
}

func internalError(format string, args ...any) Error {
	return Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches classname/identities context to a kernel Error and
// returns a plain Go error, the "uniform handler" spec §6.1 requires.
// identity is an opaque per-call diagnostic tag (e.g. a row index or
// symbol); it may be empty.
func Wrap(classname string, identity string, err Error) error {
	if err.IsOK() {
		return nil
	}
	if identity == "" {
		return fmt.Errorf("%s: %s", classname, err.Message)
	}
	return fmt.Errorf("%s: %s (at %s)", classname, err.Message, identity)
}
