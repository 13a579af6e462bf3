// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

// FrameInfo configures frame encoding: block size class, block
// independence, and which checksums to emit. The block codec has no
// options type; it takes its settings as function parameters.
type FrameInfo struct {
	// BlockMaxSize is the largest uncompressed size any one block may
	// reach before the writer starts a new one.
	BlockMaxSize BlockMaxSize
	// BlockIndependence, when true, forbids matches from crossing a
	// block boundary (each block decodes on its own); when false,
	// consecutive blocks form a 64 KiB sliding dictionary window.
	BlockIndependence bool
	// BlockChecksum, when true, appends an xxHash32 of each block's
	// compressed payload after the block.
	BlockChecksum bool
	// ContentChecksum, when true, appends an xxHash32 of the entire
	// uncompressed content after the end mark.
	ContentChecksum bool
	// ContentSize, when non-zero, is written into the frame descriptor
	// as the total uncompressed size to follow.
	ContentSize uint64
	// DictID, when non-zero, is written into the frame descriptor so a
	// decoder can tell which external dictionary the encoder primed the
	// first block with.
	DictID uint32
	// Dict, when non-empty, seeds the first block's ext_dict the same
	// way a prior block would in linked mode. It is used only when
	// BlockIndependence is false; dictionaries shorter than 4 bytes are
	// ignored.
	Dict []byte
	// Legacy selects the legacy frame format: magic 0x184C2102, fixed
	// 8 MiB blocks, no checksums, no end mark, no descriptor at all.
	Legacy bool
}

// DefaultFrameInfo returns the common case: 4 MiB blocks, block-independent,
// content checksum on, no block checksum, no declared content size.
func DefaultFrameInfo() *FrameInfo {
	return &FrameInfo{
		BlockMaxSize:      BlockMax4MB,
		BlockIndependence: true,
		ContentChecksum:   true,
	}
}
