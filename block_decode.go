// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// Block decoder (component C): a straight-line token state machine. Unlike
// the encoder it never consults a hash table; it only ever reads what the
// token stream tells it to read. The decode loop follows the classic
// opcode-dispatch shape (read a tag byte, branch on it, copy literals, copy
// a back-reference), found across LZ77-family decoders.

// UncompressBlock decodes src (one LZ4 block) into dst and returns the
// number of bytes written. expectedSize, if non-negative, is checked
// against the final decoded length; pass -1 when the size is unknown ahead
// of time (the whole of dst is then available to grow into, as in the
// frame decoder's case). dict is an optional extended dictionary window
// that back-references may reach into. Returns ErrInvalidSourceShortBuffer
// (which wraps ErrOutputTooSmall) if dst cannot hold the decoded block.
func UncompressBlock(src, dst []byte, expectedSize int, dict []byte) (int, error) {
	s := newBoundedSink(dst)
	n, err := decompressBlockInto(s, src, dict)
	if err != nil {
		if err == ErrOutputTooSmall {
			return 0, ErrInvalidSourceShortBuffer
		}
		return 0, err
	}
	if expectedSize >= 0 && n != expectedSize {
		return 0, ErrCorrupt
	}
	return n, nil
}

// Uncompress decodes src into a freshly allocated buffer of exactly
// expectedSize bytes.
func Uncompress(src []byte, expectedSize int) ([]byte, error) {
	return UncompressWithDict(src, expectedSize, nil)
}

// UncompressWithDict is Uncompress with a dictionary window (see
// UncompressBlock).
func UncompressWithDict(src []byte, expectedSize int, dict []byte) ([]byte, error) {
	dst := make([]byte, expectedSize)
	n, err := UncompressBlock(src, dst, expectedSize, dict)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// readLSIC reads zero or more continuation bytes (each 255 adds 255, a
// final byte < 255 terminates the run) and returns the extension amount
// plus the number of bytes consumed.
func readLSIC(src []byte, pos int) (extra, consumed int, err error) {
	for {
		if pos+consumed >= len(src) {
			return 0, 0, ErrCorrupt
		}
		b := src[pos+consumed]
		consumed++
		extra += int(b)
		if b != 255 {
			return extra, consumed, nil
		}
	}
}

// decompressBlockInto runs the token loop, writing decoded bytes to s.
// It is shared by UncompressBlock (bounded sink, dst supplied by caller)
// and the frame decoder (bounded sink sized to the frame's block size).
func decompressBlockInto(s *sink, src []byte, dict []byte) (int, error) {
	pos := 0
	for pos < len(src) {
		token := src[pos]
		pos++

		litLen := int(token >> 4)
		if litLen == lsicMax {
			extra, consumed, err := readLSIC(src, pos)
			if err != nil {
				return 0, err
			}
			litLen += extra
			pos += consumed
		}

		if pos+litLen > len(src) {
			return 0, ErrCorrupt
		}
		if err := s.Copy(src[pos : pos+litLen]); err != nil {
			return 0, err
		}
		pos += litLen

		// A token's match part is absent only at the very end of the
		// block (the final, offset-less literal run).
		if pos == len(src) {
			break
		}

		if pos+2 > len(src) {
			return 0, ErrCorrupt
		}
		offset := int(binary.LittleEndian.Uint16(src[pos:]))
		pos += 2
		if offset == 0 {
			return 0, ErrCorrupt
		}

		matchLen := int(token&0xF) + minMatch
		if token&0xF == lsicMax {
			extra, consumed, err := readLSIC(src, pos)
			if err != nil {
				return 0, err
			}
			matchLen += extra
			pos += consumed
		}

		if offset > s.Len() {
			if err := s.CopyWithinFromDict(dict, offset, matchLen); err != nil {
				return 0, err
			}
			continue
		}
		if err := s.CopyWithin(offset, matchLen); err != nil {
			return 0, err
		}
	}
	return s.Len(), nil
}
