// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// Prepend-size helpers (component D): a thin convenience layer over the
// block codec that carries the original length as a 4-byte little-endian
// prefix, so a lone compressed block can be decompressed without the
// caller tracking the size out of band.

// maxPrependSize bounds the length a prefixed block may declare, guarding
// against a corrupt or hostile prefix requesting an unreasonable
// allocation. It is implementation-defined, not part of the wire format.
const maxPrependSize = 1 << 30

// CompressPrependSize compresses src and returns a buffer that starts with
// src's length as a 4-byte little-endian prefix, followed by the
// compressed block.
func CompressPrependSize(src []byte) []byte {
	bound := CompressBlockBound(len(src))
	out := make([]byte, 4+bound)
	binary.LittleEndian.PutUint32(out, uint32(len(src)))
	n, err := CompressBlock(src, out[4:], nil)
	if err != nil {
		panic(err)
	}
	return out[:4+n]
}

// DecompressSizePrepended reads the 4-byte little-endian size prefix
// written by CompressPrependSize and decompresses the remainder into a
// buffer of exactly that size.
func DecompressSizePrepended(src []byte) ([]byte, error) {
	if len(src) < 4 {
		return nil, ErrCorrupt
	}
	size := binary.LittleEndian.Uint32(src)
	if size > maxPrependSize {
		return nil, ErrCorrupt
	}
	return Uncompress(src[4:], int(size))
}
