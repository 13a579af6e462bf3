// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSink_BoundedOutputTooSmall(t *testing.T) {
	s := newBoundedSink(make([]byte, 2))
	require.NoError(t, s.PutByte('a'))
	require.NoError(t, s.PutByte('b'))
	require.ErrorIs(t, s.PutByte('c'), ErrOutputTooSmall)
}

func TestSink_GrowableGrows(t *testing.T) {
	s := newGrowableSink(1)
	data := bytes.Repeat([]byte("grow"), 100)
	require.NoError(t, s.Copy(data))
	require.Equal(t, data, s.Bytes())
}

func TestSink_CopyWithinOverlapRunFill(t *testing.T) {
	// offset=1 duplicates a single byte 10 times: the classic RLE case
	// where the source range overlaps the destination range entirely.
	s := newGrowableSink(16)
	require.NoError(t, s.PutByte('z'))
	require.NoError(t, s.CopyWithin(1, 10))
	require.Equal(t, bytes.Repeat([]byte{'z'}, 11), s.Bytes())
}

func TestSink_CopyWithinPartialOverlap(t *testing.T) {
	s := newGrowableSink(16)
	require.NoError(t, s.Copy([]byte("ab")))
	// offset=2, length=5: source and destination overlap by 3 bytes.
	require.NoError(t, s.CopyWithin(2, 5))
	require.Equal(t, []byte("ababab"+"a"), s.Bytes())
}

func TestSink_CopyWithinNonOverlapping(t *testing.T) {
	s := newGrowableSink(16)
	require.NoError(t, s.Copy([]byte("abcdef")))
	require.NoError(t, s.CopyWithin(6, 3))
	require.Equal(t, []byte("abcdefabc"), s.Bytes())
}

func TestSink_CopyWithinBadOffset(t *testing.T) {
	s := newGrowableSink(16)
	require.NoError(t, s.Copy([]byte("ab")))
	require.ErrorIs(t, s.CopyWithin(0, 1), ErrCorrupt)
	require.ErrorIs(t, s.CopyWithin(3, 1), ErrCorrupt)
}

func TestSink_CopyWithinFromDict(t *testing.T) {
	dict := []byte("0123456789")
	s := newGrowableSink(16)
	require.NoError(t, s.Copy([]byte("AB")))

	// offset=5 reaches 3 bytes into dict (len(s)=2, so 5-2=3 bytes from
	// dict's tail) then continues 2 bytes into the freshly written output.
	require.NoError(t, s.CopyWithinFromDict(dict, 5, 5))
	require.Equal(t, []byte("AB789AB"), s.Bytes())
}

func TestSink_CopyWithinFromDict_OffsetBeyondDict(t *testing.T) {
	dict := []byte("0123")
	s := newGrowableSink(16)
	require.NoError(t, s.Copy([]byte("AB")))
	require.ErrorIs(t, s.CopyWithinFromDict(dict, 100, 4), ErrCorrupt)
}
