// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

/*
Package lz4 implements LZ4 block and frame compression, wire-compatible with
the reference LZ4 Block Format and LZ4 Frame Format.

The block format is a single self-contained compressed payload: a sequence of
(literal run, match) pairs. The frame format wraps a stream of blocks with a
magic number, a descriptor, optional per-block and whole-content checksums,
and an end mark, so a long input can be compressed and decompressed without
holding all of it in memory at once.

# Block

	out := make([]byte, lz4.CompressBlockBound(len(src)))
	n, err := lz4.CompressBlock(src, out, nil)
	if err != nil {
		// handle error
	}

	dst := make([]byte, expectedLen)
	n, err = lz4.UncompressBlock(out[:n], dst, expectedLen, nil)

# Frame

	w := lz4.NewFrameWriter(dst, lz4.DefaultFrameInfo())
	if _, err := w.Write(src); err != nil {
		// handle error
	}
	if err := w.Close(); err != nil {
		// handle error
	}

	r := lz4.NewFrameReader(src)
	out, err := io.ReadAll(r)

High-compression ("HC") search, random access into frames, and
multi-threaded block processing are out of scope: this package uses a
single fast match-finding strategy, one call or one stream at a time.
*/
package lz4
