// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

// Sink abstraction (component H): a uniform write target for both the block
// encoder and the block decoder. One mode wraps a caller-supplied, fixed
// capacity buffer (writes beyond capacity fail with ErrOutputTooSmall); the
// other owns a growable buffer that doubles on demand. Both expose the same
// primitives so encoder/decoder code does not need two copies for the two
// modes.
type sink struct {
	buf      []byte
	pos      int
	growable bool
}

// newBoundedSink wraps a caller-owned buffer. Writes beyond len(buf) fail.
func newBoundedSink(buf []byte) *sink {
	return &sink{buf: buf}
}

// newGrowableSink starts an owned buffer with the given capacity hint and
// grows it (by doubling) as needed.
func newGrowableSink(capacityHint int) *sink {
	if capacityHint < 64 {
		capacityHint = 64
	}
	return &sink{buf: make([]byte, capacityHint), growable: true}
}

// Len returns the number of bytes written so far.
func (s *sink) Len() int { return s.pos }

// Bytes returns the written prefix of the sink's buffer.
func (s *sink) Bytes() []byte { return s.buf[:s.pos] }

// Remaining returns how much more can be written before growth (or
// ErrOutputTooSmall for a bounded sink) is needed.
func (s *sink) Remaining() int { return len(s.buf) - s.pos }

// reserve ensures at least n more bytes can be written, growing an owned
// buffer by doubling or failing ErrOutputTooSmall for a bounded one.
func (s *sink) reserve(n int) error {
	need := s.pos + n
	if need <= len(s.buf) {
		return nil
	}
	if !s.growable {
		return ErrOutputTooSmall
	}
	newCap := len(s.buf) * 2
	if newCap < need {
		newCap = need
	}
	grown := make([]byte, newCap)
	copy(grown, s.buf[:s.pos])
	s.buf = grown
	return nil
}

// PutByte appends a single byte.
func (s *sink) PutByte(b byte) error {
	if err := s.reserve(1); err != nil {
		return err
	}
	s.buf[s.pos] = b
	s.pos++
	return nil
}

// Copy appends src verbatim (the "copy from slice" primitive).
func (s *sink) Copy(src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if err := s.reserve(len(src)); err != nil {
		return err
	}
	copy(s.buf[s.pos:], src)
	s.pos += len(src)
	return nil
}

// CopyWithin copies length bytes from offset bytes behind the current
// position into the current position and advances past them (the
// "copy-from-within with offset" primitive). When offset < length the
// source range overlaps the destination range; this is intentionally a
// run-length fill, not a memcpy: bytes already written during this call
// become valid source for the remainder of the copy.
func (s *sink) CopyWithin(offset, length int) error {
	if offset <= 0 || offset > s.pos {
		return ErrCorrupt
	}
	if err := s.reserve(length); err != nil {
		return err
	}

	src := s.pos - offset
	dst := s.pos

	if offset >= length {
		// Non-overlapping: a single plain copy suffices.
		copy(s.buf[dst:dst+length], s.buf[src:src+length])
		s.pos += length
		return nil
	}

	// Overlapping run fill: seed one full `offset`-sized chunk from the
	// original source, then double the copied region from itself.
	copy(s.buf[dst:dst+offset], s.buf[src:src+offset])
	copied := offset
	for copied < length {
		n := copy(s.buf[dst+copied:dst+length], s.buf[dst:dst+copied])
		copied += n
	}
	s.pos += length
	return nil
}

// CopyWithinFromDict is like CopyWithin but the back-reference straddles
// the boundary between an external dictionary window and the bytes
// written to this sink so far: offset bytes back from the current
// position reaches offset-s.pos bytes into dict (counted from its end).
// It copies the dictionary-side prefix first, then continues from the
// start of this sink's own output.
func (s *sink) CopyWithinFromDict(dict []byte, offset, length int) error {
	if offset <= s.pos || offset > s.pos+len(dict) {
		return ErrCorrupt
	}

	fromDict := offset - s.pos
	if fromDict > len(dict) {
		return ErrCorrupt
	}
	dictStart := len(dict) - fromDict
	n := fromDict
	if n > length {
		n = length
	}

	if err := s.Copy(dict[dictStart : dictStart+n]); err != nil {
		return err
	}
	length -= n
	if length == 0 {
		return nil
	}
	// Remainder, if any, continues from the (now non-empty) in-block output.
	return s.CopyWithin(s.pos, length)
}
