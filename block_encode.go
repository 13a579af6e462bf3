// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"encoding/binary"
	"math/bits"
)

// Block encoder (component B). The parse strategy (a single hash table,
// greedy forward matching, 8-byte batched extension, and skip-trigger
// acceleration over incompressible runs) is the same fast-parse shape used
// by the reference LZ4 encoder for its non-dictionary case, generalized
// here to carry an optional extended dictionary window.

// window lets the encoder address an optional dictionary
// (negative virtual positions) and the current buffer (non-negative
// positions) as one logical byte sequence, without copying them together.
type window struct {
	dict []byte
	src  []byte
}

func (w window) byteAt(i int) byte {
	if i < 0 {
		return w.dict[len(w.dict)+i]
	}
	return w.src[i]
}

// u32At reads the 4-byte little-endian value starting at virtual position i.
// It takes the fast slice path when i is fully inside src, and falls back to
// a byte-wise read when the read straddles the dictionary boundary.
func (w window) u32At(i int) uint32 {
	if i >= 0 && i+4 <= len(w.src) {
		return binary.LittleEndian.Uint32(w.src[i:])
	}
	var b [4]byte
	for k := range b {
		b[k] = w.byteAt(i + k)
	}
	return binary.LittleEndian.Uint32(b[:])
}

func (w window) equal4(a, b int) bool {
	return w.u32At(a) == w.u32At(b)
}

// matchLenAt extends a confirmed 4-byte match forward from (a, b) (a is the
// earlier position, b the later one) until a mismatch or limit (an absolute
// index into src) is reached. b and b+returned value never exceed limit.
func (w window) matchLenAt(a, b, limit int) int {
	if a >= 0 {
		// Common case: both sides live in src, so we can batch-compare
		// 8 bytes at a time the way the reference encoder does.
		k := 0
		for b+k+8 <= limit {
			x := binary.LittleEndian.Uint64(w.src[a+k:]) ^ binary.LittleEndian.Uint64(w.src[b+k:])
			if x != 0 {
				return k + bits.TrailingZeros64(x)>>3
			}
			k += 8
		}
		for b+k < limit && w.src[a+k] == w.src[b+k] {
			k++
		}
		return k
	}

	// a starts inside the dictionary: compare byte-wise until we cross
	// into src, then continue with the fast path for the remainder.
	k := 0
	for a+k < 0 && b+k < limit {
		if w.byteAt(a+k) != w.byteAt(b+k) {
			return k
		}
		k++
	}
	if b+k < limit {
		k += w.matchLenAt(a+k, b+k, limit)
	}
	return k
}

// writeLSICLength writes the LSIC continuation bytes for a length already
// known to be >= lsicMax (the token nibble itself is written by the caller).
func writeLSICLength(s *sink, n int) error {
	for n >= 255 {
		if err := s.PutByte(255); err != nil {
			return err
		}
		n -= 255
	}
	return s.PutByte(byte(n))
}

// emitSequence writes one token, optional literal-length LSIC bytes, the
// literal bytes themselves, the 2-byte offset, and optional match-length
// LSIC bytes.
func emitSequence(s *sink, literal []byte, offset, matchLen int) error {
	litLen := len(literal)
	mLenField := matchLen - minMatch

	tokLit := litLen
	if tokLit > lsicMax {
		tokLit = lsicMax
	}
	tokMatch := mLenField
	if tokMatch > lsicMax {
		tokMatch = lsicMax
	}
	if err := s.PutByte(byte(tokLit<<4 | tokMatch)); err != nil {
		return err
	}
	if litLen >= lsicMax {
		if err := writeLSICLength(s, litLen-lsicMax); err != nil {
			return err
		}
	}
	if err := s.Copy(literal); err != nil {
		return err
	}

	var off [2]byte
	binary.LittleEndian.PutUint16(off[:], uint16(offset))
	if err := s.Copy(off[:]); err != nil {
		return err
	}

	if mLenField >= lsicMax {
		if err := writeLSICLength(s, mLenField-lsicMax); err != nil {
			return err
		}
	}
	return nil
}

// emitLastLiterals writes the final, offset-less literal-only token that
// terminates every block.
func emitLastLiterals(s *sink, tail []byte) error {
	n := len(tail)
	tok := n
	if tok > lsicMax {
		tok = lsicMax
	}
	if err := s.PutByte(byte(tok << 4)); err != nil {
		return err
	}
	if n >= lsicMax {
		if err := writeLSICLength(s, n-lsicMax); err != nil {
			return err
		}
	}
	return s.Copy(tail)
}

// seedDict inserts every 4-byte window of dict into table at the
// corresponding negative virtual position, so the main loop can find
// cross-block matches the same way it finds in-block ones. Dictionaries
// shorter than minMatch are silently ignored for match finding (not an
// error).
func seedDict(table *matchTable, w window) {
	d := w.dict
	if len(d) < minMatch {
		return
	}
	for i := 0; i <= len(d)-minMatch; i++ {
		h := table.hash(d, i)
		table.put(h, int32(i-len(d)))
	}
}

// CompressBlock compresses src into dst and returns the number of bytes
// written. dict, if non-nil and at least 4 bytes long, is an extended
// dictionary window whose bytes may be referenced by matches as if they
// immediately preceded src; shorter dictionaries are ignored. Returns
// ErrOutputTooSmall if dst cannot hold the compressed block; callers can
// precompute a safe size with CompressBlockBound.
func CompressBlock(src, dst []byte, dict []byte) (int, error) {
	s := newBoundedSink(dst)
	return compressBlockInto(s, src, dict)
}

// Compress returns src compressed into a freshly allocated, exactly-sized
// buffer.
func Compress(src []byte) []byte {
	out := make([]byte, CompressBlockBound(len(src)))
	n, err := CompressBlock(src, out, nil)
	if err != nil {
		// CompressBlockBound always provides enough room.
		panic(err)
	}
	return out[:n]
}

// CompressWithDict is Compress with a dictionary window (see CompressBlock).
func CompressWithDict(src, dict []byte) []byte {
	out := make([]byte, CompressBlockBound(len(src)))
	n, err := CompressBlock(src, out, dict)
	if err != nil {
		panic(err)
	}
	return out[:n]
}

func compressBlockInto(s *sink, src []byte, dict []byte) (int, error) {
	if len(src) < minInputSize {
		if err := emitLastLiterals(s, src); err != nil {
			return 0, err
		}
		return s.Len(), nil
	}

	if len(dict) < minMatch {
		dict = nil
	}
	w := window{dict: dict, src: src}
	tableBits := hashTableBits(len(src))
	table := newMatchTable(tableBits)
	seedDict(table, w)

	searchLimit := len(src) - mfLimit
	extendLimit := len(src) - lastLiterals

	anchor := 0
	cursor := 1
	step := 1
	misses := 0

	for cursor < searchLimit {
		h := table.hash(src, cursor)
		ref := table.put(h, int32(cursor))

		if ref == -1 || cursor-int(ref) > maxOffset || !w.equal4(int(ref), cursor) {
			misses++
			step = misses >> skipTrigger
			if step < 1 {
				step = 1
			}
			cursor += step
			continue
		}

		misses = 0
		matchStart := cursor
		refStart := int(ref)

		forward := w.matchLenAt(refStart+minMatch, matchStart+minMatch, extendLimit)
		matchEnd := matchStart + minMatch + forward

		// Extend backward into the pending literal run while it helps.
		for matchStart > anchor && refStart > -len(dict) &&
			w.byteAt(refStart-1) == w.byteAt(matchStart-1) {
			matchStart--
			refStart--
		}

		literal := src[anchor:matchStart]
		offset := matchStart - refStart
		matchLen := matchEnd - matchStart

		if err := emitSequence(s, literal, offset, matchLen); err != nil {
			return 0, err
		}

		anchor = matchEnd
		cursor = matchEnd
	}

	if err := emitLastLiterals(s, src[anchor:]); err != nil {
		return 0, err
	}
	return s.Len(), nil
}
