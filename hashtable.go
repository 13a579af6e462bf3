// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// Hash table / match finder (component A). Three fixed shapes are used
// depending on how much input there is to index: a small table for short
// inputs, a medium table for ordinary ones, and a larger table for long
// inputs (such as full frame blocks). All three are plain power-of-two slices indexed by a multiplicative
// hash and a constant shift.

const (
	hashBitsSmall  = 12 // 4096 entries, short inputs
	hashBitsMedium = 14 // 16384 entries, ordinary inputs
	hashBitsLarge  = 16 // 65536 entries, long inputs

	hashMultiplier uint32 = 2654435761 // Knuth multiplicative hash, same constant as the reference encoder
)

// blockHash hashes the 4-byte little-endian prefix at x into an index with
// the given bit width. Encoder and decoder never need to agree on this
// function; the decoder does not consult the table at all.
func blockHash(x uint32, bits uint) uint32 {
	return (x * hashMultiplier) >> (32 - bits)
}

// hashTableBits picks one of the three fixed shapes for a one-shot block
// encode, based on the length of the input.
func hashTableBits(searchableLen int) uint {
	switch {
	case searchableLen <= 1<<hashBitsSmall:
		return hashBitsSmall
	case searchableLen <= 1<<hashBitsMedium:
		return hashBitsMedium
	default:
		return hashBitsLarge
	}
}

// matchTable is a single-shot hash table: a flat slice of positions
// relative to the current encode's base, -1 meaning "never written".
// get/put are the only operations the encoder needs; the decoder never
// consults the table at all.
type matchTable struct {
	entries []int32
	bits    uint
}

// newMatchTable allocates a table sized for bits, with every slot marked
// empty. A new table is allocated for every block encode, including each
// block of a frame.
func newMatchTable(bits uint) *matchTable {
	t := &matchTable{entries: make([]int32, 1<<bits), bits: bits}
	t.reset()
	return t
}

func (t *matchTable) reset() {
	for i := range t.entries {
		t.entries[i] = -1
	}
}

func (t *matchTable) hash(src []byte, pos int) uint32 {
	return blockHash(binary.LittleEndian.Uint32(src[pos:]), t.bits)
}

// get returns the previous position stored for hash h, or -1 if none.
func (t *matchTable) get(h uint32) int32 {
	return t.entries[h]
}

// put stores pos for hash h and returns the position it replaced.
func (t *matchTable) put(h uint32, pos int32) int32 {
	prev := t.entries[h]
	t.entries[h] = pos
	return prev
}
