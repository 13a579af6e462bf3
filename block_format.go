// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

// LZ4 block format constants: token layout, LSIC, and the end-of-block
// restrictions that keep the last bytes of a block literal-only.

const (
	minMatch = 4 // MINMATCH: minimum match length in bytes.

	// lastLiterals (LAST_LITERALS / END_OFFSET) is the number of bytes at
	// the end of a block that are guaranteed to be emitted as literals.
	lastLiterals = 5

	// wildCopyLength is the fixed stride used by the opportunistic
	// fast-copy path; kept here even though this implementation's copy
	// primitives choose safe strides, so the end-of-block safeguard below
	// stays meaningful if a faster path is ever added.
	wildCopyLength = 8

	// mfLimit (MFLIMIT) is how far from the end of input the match finder
	// must stop looking for new matches.
	mfLimit = wildCopyLength + minMatch // 12

	// minInputSize is the smallest input the match finder will even try to
	// search; anything shorter is emitted as one literal run.
	minInputSize = mfLimit + 1 // 13

	maxOffset = 1<<16 - 1 // largest representable 16-bit little-endian offset

	// lsicMax is the sentinel nibble value (15) that triggers LSIC
	// (Linear Small Integer Code) length extension.
	lsicMax = 0xF

	skipTrigger = 6 // shift applied to literal-run misses before widening the skip stride
)

// CompressBlockBound returns the maximum size of a compressed block for an
// input of length n, when the input is not compressible at all.
func CompressBlockBound(n int) int {
	return n + n/255 + 16
}
