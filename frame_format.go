// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

// Frame format constants: magic numbers and FLG/BD descriptor bit layout.
// Field names and the overall state-machine shape follow the reader/writer
// split shown in the pack's GoZ4X frame reference (frameHeader,
// readFrameHeader/writeFrameHeader), generalized to the full descriptor
// (content size, dict id, both checksums) and to legacy frames.

const (
	frameMagic       uint32 = 0x184D2204 // modern frame
	legacyFrameMagic uint32 = 0x184C2102 // fixed 8 MiB blocks, no checksums, no end mark

	legacyBlockSize = 8 << 20

	frameVersion = 1 // the only FLG version bits this package understands

	// blockSizeEnd marks the end of a frame's block stream: a 4-byte
	// little-endian zero in place of a block size header.
	blockSizeEnd uint32 = 0

	// blockUncompressedFlag is set in a block's size header's high bit
	// when the block that follows is stored raw rather than compressed.
	blockUncompressedFlag uint32 = 1 << 31
	blockSizeMask         uint32 = blockUncompressedFlag - 1
)

// FLG byte bit layout (high to low): version(2) blockIndep(1) blockChecksum(1)
// contentSize(1) contentChecksum(1) reserved(1) dictID(1)
const (
	flgVersionShift  = 6
	flgBlockIndep    = 1 << 5
	flgBlockChecksum = 1 << 4
	flgContentSize   = 1 << 3
	flgContentCheck  = 1 << 2
	flgReserved      = 1 << 1
	flgDictID        = 1 << 0
)

// BD byte bit layout: reserved(1) blockMaxSize(3 bits, shift 4) reserved(4)
const (
	bdBlockMaxSizeShift = 4
	bdReservedMask      = 1<<7 | 0xF // top bit and low nibble are reserved, must be zero
)

// BlockMaxSize enumerates the frame format's four legal block-size classes.
// The numeric values are the BD field codes, not byte counts; use
// BlockMaxSize.Bytes to get the byte count.
type BlockMaxSize byte

const (
	BlockMax64KB BlockMaxSize = 4 + iota
	BlockMax256KB
	BlockMax1MB
	BlockMax4MB
)

// Bytes returns the maximum uncompressed size of a block encoded with bm.
func (bm BlockMaxSize) Bytes() int {
	switch bm {
	case BlockMax64KB:
		return 64 << 10
	case BlockMax256KB:
		return 256 << 10
	case BlockMax1MB:
		return 1 << 20
	case BlockMax4MB:
		return 4 << 20
	default:
		return 64 << 10
	}
}
