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

//go:build unix

package kernel

import "golang.org/x/sys/unix"

// AdviseSpill hints to the kernel that a large original buffer is
// done for good once its compressed replacement has been built, the
// way sneller's vm/malloc_linux.go manages its own large
// allocations. Callers must never read buf again after calling this:
// on Linux the pages may be dropped immediately. Failure is silently
// ignored, since this is advisory only.
func AdviseSpill(buf []byte) {
	if len(buf) == 0 {
		return
	}
	_ = unix.Madvise(buf, unix.MADV_DONTNEED)
}
