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

import "unsafe"

// Nbytes walks c and sums the capacity of every owned buffer it
// reaches, the way UnionArray.cpp's nbytes_part accumulates a
// {"kind": bytes} map across a node tree. Buffers shared by more than
// one node (an Indexed/ByteMasked/etc layer's child, a Union arm
// referenced from two tags) are counted once, keyed by the address of
// their first byte.
func Nbytes(c Content) int {
	seen := make(map[uintptr]bool)
	return nbytesPart(c, seen)
}

func blockKey(buf []byte) (uintptr, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	return uintptr(unsafe.Pointer(&buf[0])), true
}

func addOnce(seen map[uintptr]bool, buf []byte) int {
	key, ok := blockKey(buf)
	if !ok {
		return 0
	}
	if seen[key] {
		return 0
	}
	seen[key] = true
	return cap(buf)
}

func nbytesPart(c Content, seen map[uintptr]bool) int {
	switch n := c.(type) {
	case *Empty:
		return 0
	case *Numpy:
		total := addOnce(seen, n.buf.Bytes())
		if n.spill != nil {
			total += addOnce(seen, n.spill)
		}
		return total
	case *ListOffset:
		return addOnce(seen, int64BytesOf(n.offsets)) + nbytesPart(n.child, seen)
	case *List:
		return addOnce(seen, int64BytesOf(n.starts)) + addOnce(seen, int64BytesOf(n.stops)) + nbytesPart(n.child, seen)
	case *Regular:
		return nbytesPart(n.child, seen)
	case *Indexed:
		return addOnce(seen, int64BytesOf(n.idx)) + nbytesPart(n.child, seen)
	case *IndexedOption:
		return addOnce(seen, int64BytesOf(n.idx)) + nbytesPart(n.child, seen)
	case *ByteMasked:
		return addOnce(seen, int8BytesOf(n.mask)) + nbytesPart(n.child, seen)
	case *BitMasked:
		return addOnce(seen, uint8BytesOf(n.mask)) + nbytesPart(n.child, seen)
	case *Unmasked:
		return nbytesPart(n.child, seen)
	case *Record:
		total := 0
		for _, f := range n.contents {
			total += nbytesPart(f, seen)
		}
		return total
	case *Union:
		total := addOnce(seen, int8BytesOf(n.tags)) + addOnce(seen, int64BytesOf(n.idx))
		for _, a := range n.contents {
			total += nbytesPart(a, seen)
		}
		return total
	default:
		return 0
	}
}

// int64BytesOf/int8BytesOf/uint8BytesOf expose an index.Index[W]'s
// backing slice as raw bytes for dedup-by-address purposes only; the
// numeric content is irrelevant to Nbytes, just the block identity.
func int64BytesOf(idx indexValuesInt64) []byte {
	v := idx.Values()
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*8)
}

func int8BytesOf(idx indexValuesInt8) []byte {
	v := idx.Values()
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v))
}

func uint8BytesOf(idx indexValuesUint8) []byte {
	v := idx.Values()
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v))
}

type indexValuesInt64 interface{ Values() []int64 }
type indexValuesInt8 interface{ Values() []int8 }
type indexValuesUint8 interface{ Values() []uint8 }
