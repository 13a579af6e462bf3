// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"errors"
	"fmt"
)

// Sentinel errors for block-level compression and decompression.
var (
	// ErrOutputTooSmall is returned when a bounded sink's remaining capacity
	// cannot hold the data a call is about to write.
	ErrOutputTooSmall = errors.New("lz4: output buffer too small")
	// ErrCorrupt is returned when compressed input cannot be a valid LZ4
	// block or frame: a truncated token, an out-of-range offset, an LSIC
	// overflow, or a size mismatch against the caller's expectation.
	ErrCorrupt = errors.New("lz4: corrupt input")
	// ErrInvalidSourceShortBuffer is returned by UncompressBlock when the
	// destination buffer is too small for the decoded block. It wraps
	// ErrOutputTooSmall (per spec.md §7, "OutputTooSmall ... Returned by
	// encoder and by _into decoder variants"), so callers checking
	// errors.Is(err, ErrOutputTooSmall) can detect this case the same way
	// they detect it from CompressBlock.
	ErrInvalidSourceShortBuffer = fmt.Errorf("%w: destination buffer too small", ErrOutputTooSmall)

	// ErrUnknownMagic is returned when a frame (or legacy frame) does not
	// start with a recognized magic number.
	ErrUnknownMagic = errors.New("lz4: unknown frame magic number")
	// ErrUnsupportedFrameVersion is returned when the frame descriptor's
	// version bits are not the supported value (01).
	ErrUnsupportedFrameVersion = errors.New("lz4: unsupported frame version")
	// ErrHeaderChecksumMismatch is returned when the frame descriptor's
	// header checksum byte does not match xxHash32 of the descriptor bytes.
	ErrHeaderChecksumMismatch = errors.New("lz4: frame header checksum mismatch")
	// ErrBlockChecksumMismatch is returned when a block's xxHash32 checksum
	// does not match its compressed payload.
	ErrBlockChecksumMismatch = errors.New("lz4: block checksum mismatch")
	// ErrContentChecksumMismatch is returned when the frame's final xxHash32
	// does not match the accumulated uncompressed content.
	ErrContentChecksumMismatch = errors.New("lz4: content checksum mismatch")
	// ErrBlockSizeExceedsMax is returned when a decoded or raw block would
	// exceed the frame's configured maximum block size.
	ErrBlockSizeExceedsMax = errors.New("lz4: block size exceeds configured maximum")
	// ErrClosed is returned by FrameWriter.Write and FrameWriter.Flush after
	// Close.
	ErrClosed = errors.New("lz4: write to closed frame")
)

// frameError wraps one of the frame-level sentinel errors with the byte
// offset (within the frame) where it was detected, attaching positional
// context to an otherwise plain sentinel.
type frameError struct {
	err error
	pos int64
}

func (e *frameError) Error() string {
	return fmt.Sprintf("%s (at offset %d)", e.err, e.pos)
}

func (e *frameError) Unwrap() error { return e.err }

func wrapFrameErr(err error, pos int64) error {
	if err == nil {
		return nil
	}
	return &frameError{err: err, pos: pos}
}
