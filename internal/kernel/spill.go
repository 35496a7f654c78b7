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

package kernel

import (
	"runtime"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	spillEncoder     *zstd.Encoder
	spillDecoder     *zstd.Decoder
	spillEncoderOnce sync.Once
)

func spillCodec() (*zstd.Encoder, *zstd.Decoder) {
	spillEncoderOnce.Do(func() {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1))
		if err != nil {
			panic(err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(runtime.GOMAXPROCS(0)))
		if err != nil {
			panic(err)
		}
		spillEncoder, spillDecoder = enc, dec
	})
	return spillEncoder, spillDecoder
}

// CompressSpill compresses buf for cold storage, the way compr.zstdCompressor
// feeds row blocks to the table writer. Used by a Numpy leaf's deep_copy
// path once a buffer is large enough that a spare decompressible copy is
// cheaper to hold onto than the raw bytes.
func CompressSpill(buf []byte) []byte {
	enc, _ := spillCodec()
	return enc.EncodeAll(buf, make([]byte, 0, len(buf)/4))
}

// DecompressSpill reverses CompressSpill. size is the original
// uncompressed length, used to size the destination buffer.
func DecompressSpill(compressed []byte, size int) ([]byte, error) {
	_, dec := spillCodec()
	return dec.DecodeAll(compressed, make([]byte, 0, size))
}
