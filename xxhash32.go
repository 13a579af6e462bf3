// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// xxHash32 (component G). The frame format's header, block, and content
// checksums are all this one algorithm; it is reimplemented here directly
// from the published constants rather than imported, since checksum
// computation is part of the codec's own surface, not a delegated
// concern (see DESIGN.md).

const (
	xxPrime1 uint32 = 2654435761
	xxPrime2 uint32 = 2246822519
	xxPrime3 uint32 = 3266489917
	xxPrime4 uint32 = 668265263
	xxPrime5 uint32 = 374761393
)

func xxRound(acc, input uint32) uint32 {
	acc += input * xxPrime2
	acc = (acc << 13) | (acc >> 19)
	acc *= xxPrime1
	return acc
}

// xxhash32 computes the one-shot xxHash32 digest of data with the given
// seed (the frame format always uses seed 0).
func xxhash32(data []byte, seed uint32) uint32 {
	var h uint32
	n := len(data)
	i := 0

	if n >= 16 {
		v1 := seed + xxPrime1 + xxPrime2
		v2 := seed + xxPrime2
		v3 := seed
		v4 := seed - xxPrime1

		for ; i+16 <= n; i += 16 {
			v1 = xxRound(v1, binary.LittleEndian.Uint32(data[i:]))
			v2 = xxRound(v2, binary.LittleEndian.Uint32(data[i+4:]))
			v3 = xxRound(v3, binary.LittleEndian.Uint32(data[i+8:]))
			v4 = xxRound(v4, binary.LittleEndian.Uint32(data[i+12:]))
		}

		h = rotl32(v1, 1) + rotl32(v2, 7) + rotl32(v3, 12) + rotl32(v4, 18)
	} else {
		h = seed + xxPrime5
	}

	h += uint32(n)

	for ; i+4 <= n; i += 4 {
		h += binary.LittleEndian.Uint32(data[i:]) * xxPrime3
		h = rotl32(h, 17) * xxPrime4
	}

	for ; i < n; i++ {
		h += uint32(data[i]) * xxPrime5
		h = rotl32(h, 11) * xxPrime1
	}

	h ^= h >> 15
	h *= xxPrime2
	h ^= h >> 13
	h *= xxPrime3
	h ^= h >> 16

	return h
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}

// xxhash32State is a streaming xxHash32 accumulator, used by the frame
// encoder/decoder to fold a whole (possibly multi-block) frame's content
// through the same algorithm without buffering the entire payload.
type xxhash32State struct {
	seed           uint32
	v1, v2, v3, v4 uint32
	total          uint64
	buf            [16]byte
	bufLen         int
}

func newXXHash32State(seed uint32) *xxhash32State {
	s := &xxhash32State{seed: seed}
	s.reset()
	return s
}

func (s *xxhash32State) reset() {
	s.v1 = s.seed + xxPrime1 + xxPrime2
	s.v2 = s.seed + xxPrime2
	s.v3 = s.seed
	s.v4 = s.seed - xxPrime1
	s.total = 0
	s.bufLen = 0
}

func (s *xxhash32State) Write(p []byte) {
	s.total += uint64(len(p))

	if s.bufLen > 0 {
		n := copy(s.buf[s.bufLen:], p)
		s.bufLen += n
		p = p[n:]
		if s.bufLen < 16 {
			return
		}
		s.consumeLane(s.buf[:16])
		s.bufLen = 0
	}

	for len(p) >= 16 {
		s.consumeLane(p[:16])
		p = p[16:]
	}

	if len(p) > 0 {
		s.bufLen = copy(s.buf[:], p)
	}
}

func (s *xxhash32State) consumeLane(b []byte) {
	s.v1 = xxRound(s.v1, binary.LittleEndian.Uint32(b[0:]))
	s.v2 = xxRound(s.v2, binary.LittleEndian.Uint32(b[4:]))
	s.v3 = xxRound(s.v3, binary.LittleEndian.Uint32(b[8:]))
	s.v4 = xxRound(s.v4, binary.LittleEndian.Uint32(b[12:]))
}

// Sum finalizes and returns the digest of everything written so far. It
// does not mutate the accumulator, so Write may continue afterward (only
// used by tests; the frame encoder/decoder call it once at EOF).
func (s *xxhash32State) Sum() uint32 {
	var h uint32
	if s.total >= 16 {
		h = rotl32(s.v1, 1) + rotl32(s.v2, 7) + rotl32(s.v3, 12) + rotl32(s.v4, 18)
	} else {
		h = s.seed + xxPrime5
	}
	h += uint32(s.total)

	i := 0
	tail := s.buf[:s.bufLen]
	for ; i+4 <= len(tail); i += 4 {
		h += binary.LittleEndian.Uint32(tail[i:]) * xxPrime3
		h = rotl32(h, 17) * xxPrime4
	}
	for ; i < len(tail); i++ {
		h += uint32(tail[i]) * xxPrime5
		h = rotl32(h, 11) * xxPrime1
	}

	h ^= h >> 15
	h *= xxPrime2
	h ^= h >> 13
	h *= xxPrime3
	h ^= h >> 16
	return h
}
