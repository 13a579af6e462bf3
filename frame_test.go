// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func frameConfigs() []struct {
	name string
	info *FrameInfo
} {
	return []struct {
		name string
		info *FrameInfo
	}{
		{"default", DefaultFrameInfo()},
		{"linked-64k", &FrameInfo{BlockMaxSize: BlockMax64KB, BlockIndependence: false}},
		{"independent-64k", &FrameInfo{BlockMaxSize: BlockMax64KB, BlockIndependence: true}},
		{"block-and-content-checksum", &FrameInfo{
			BlockMaxSize:      BlockMax64KB,
			BlockIndependence: true,
			BlockChecksum:     true,
			ContentChecksum:   true,
		}},
		{"with-content-size", &FrameInfo{
			BlockMaxSize:      BlockMax256KB,
			BlockIndependence: true,
			ContentSize:       200000,
		}},
		{"legacy", &FrameInfo{Legacy: true}},
	}
}

func frameTestInputs() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"small", []byte("small payload")},
		{"one-block", bytes.Repeat([]byte("x"), 1000)},
		{"multi-block-json", bytes.Repeat([]byte(`{"id":1,"name":"widget","tags":["a","b","c"]}`), 5000)},
		{"random", randomBytes(65536, 99)},
	}
}

func TestFrame_RoundTrip(t *testing.T) {
	for _, cfg := range frameConfigs() {
		for _, in := range frameTestInputs() {
			t.Run(cfg.name+"/"+in.name, func(t *testing.T) {
				var buf bytes.Buffer
				fw := NewFrameWriter(&buf, cfg.info)
				_, err := fw.Write(in.data)
				require.NoError(t, err)
				require.NoError(t, fw.Close())

				out, err := io.ReadAll(NewFrameReader(&buf))
				require.NoError(t, err)
				requireBytesEqual(t, in.data, out)
			})
		}
	}
}

func TestFrame_EmptyInputProducesValidFrame(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:    BlockMax64KB,
		ContentChecksum: true,
	})
	require.NoError(t, fw.Close())
	require.Greater(t, buf.Len(), 0)

	out, err := io.ReadAll(NewFrameReader(bytes.NewReader(buf.Bytes())))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFrame_BlockChecksumDetectsCorruption(t *testing.T) {
	src := bytes.Repeat([]byte(`{"k":"v","n":12345}`), 4000)

	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:      BlockMax64KB,
		BlockIndependence: true,
		BlockChecksum:     true,
		ContentChecksum:   true,
	})
	_, err := fw.Write(src)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	corrupted := append([]byte(nil), buf.Bytes()...)
	// Flip a bit inside the first block's compressed payload, which starts
	// at byte 11 (past magic+descriptor+header-checksum+block-size header).
	flipAt := 12
	corrupted[flipAt] ^= 0x01

	_, err = io.ReadAll(NewFrameReader(bytes.NewReader(corrupted)))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrBlockChecksumMismatch)
}

func TestFrame_ContentChecksumMismatch(t *testing.T) {
	src := []byte("content checksum should catch this tampering")

	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:    BlockMax64KB,
		ContentChecksum: true,
	})
	_, err := fw.Write(src)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	tampered := append([]byte(nil), buf.Bytes()...)
	// Flip the last byte of the content checksum, which sits right
	// before EOF.
	tampered[len(tampered)-1] ^= 0xFF

	_, err = io.ReadAll(NewFrameReader(bytes.NewReader(tampered)))
	require.ErrorIs(t, err, ErrContentChecksumMismatch)
}

func TestFrame_HeaderChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, DefaultFrameInfo())
	_, err := fw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	tampered := append([]byte(nil), buf.Bytes()...)
	tampered[6] ^= 0xFF // the header checksum byte (magic[4] + FLG + BD)

	_, err = io.ReadAll(NewFrameReader(bytes.NewReader(tampered)))
	require.ErrorIs(t, err, ErrHeaderChecksumMismatch)
}

func TestFrame_UnknownMagic(t *testing.T) {
	_, err := DecompressFrame([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, ErrUnknownMagic)
}

func TestFrame_TruncatedStream(t *testing.T) {
	src := bytes.Repeat([]byte("truncation target data"), 1000)
	out, err := CompressFrame(src, DefaultFrameInfo())
	require.NoError(t, err)

	_, err = DecompressFrame(out[:len(out)-3])
	require.Error(t, err)
}

func TestFrame_ReaderFailsPermanently(t *testing.T) {
	fr := NewFrameReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	_, err1 := fr.Read(make([]byte, 16))
	require.Error(t, err1)

	_, err2 := fr.Read(make([]byte, 16))
	require.Equal(t, err1, err2)
}

func TestFrame_DictChaining(t *testing.T) {
	dict := bytes.Repeat([]byte("dictionary-seed-content "), 1000)
	src := bytes.Repeat([]byte("dictionary-seed-content and more"), 500)

	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:      BlockMax64KB,
		BlockIndependence: false,
		Dict:              dict,
	})
	_, err := fw.Write(src)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	out, err := io.ReadAll(NewFrameReaderWithDict(bytes.NewReader(buf.Bytes()), dict))
	require.NoError(t, err)
	requireBytesEqual(t, src, out)
}

func TestFrame_DictIDRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize: BlockMax64KB,
		DictID:       0xDEADBEEF,
	})
	_, err := fw.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	fr := NewFrameReader(bytes.NewReader(buf.Bytes()))
	out, err := io.ReadAll(fr)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), out)
	require.Equal(t, uint32(0xDEADBEEF), fr.DictID)
}

func TestFrame_BlockIndependenceAndLinkedAgree(t *testing.T) {
	x1 := bytes.Repeat([]byte("segment-one-"), 3000)
	x2 := bytes.Repeat([]byte("segment-two-"), 3000)
	src := append(append([]byte{}, x1...), x2...)

	for _, indep := range []bool{true, false} {
		out, err := CompressFrame(src, &FrameInfo{
			BlockMaxSize:      BlockMax64KB,
			BlockIndependence: indep,
		})
		require.NoError(t, err)

		back, err := DecompressFrame(out)
		require.NoError(t, err)
		requireBytesEqual(t, src, back)
	}
}

func TestFrame_Flush(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{BlockMaxSize: BlockMax64KB})
	_, err := fw.Write([]byte("first chunk"))
	require.NoError(t, err)
	require.NoError(t, fw.Flush())
	_, err = fw.Write([]byte(" second chunk"))
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	out, err := io.ReadAll(NewFrameReader(bytes.NewReader(buf.Bytes())))
	require.NoError(t, err)
	require.Equal(t, "first chunk second chunk", string(out))
}

func TestFrame_WriteAfterCloseFails(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, DefaultFrameInfo())
	require.NoError(t, fw.Close())
	_, err := fw.Write([]byte("too late"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestFrame_RawBlockEscapeHatch(t *testing.T) {
	src := randomBytes(70000, 123)
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:      BlockMax64KB,
		BlockIndependence: true,
	})
	_, err := fw.Write(src)
	require.NoError(t, err)
	require.NoError(t, fw.Close())

	back, err := DecompressFrame(buf.Bytes())
	require.NoError(t, err)
	requireBytesEqual(t, src, back)
}

func TestFrame_MultipleSmallWrites(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{BlockMaxSize: BlockMax64KB, ContentChecksum: true})
	var want bytes.Buffer
	for i := 0; i < 200; i++ {
		chunk := []byte{byte(i), byte(i * 2), byte(i * 3)}
		_, err := fw.Write(chunk)
		require.NoError(t, err)
		want.Write(chunk)
	}
	require.NoError(t, fw.Close())

	out, err := io.ReadAll(NewFrameReader(bytes.NewReader(buf.Bytes())))
	require.NoError(t, err)
	requireBytesEqual(t, want.Bytes(), out)
}

func TestFrame_HeaderDescriptorBytesMatchWire(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, &FrameInfo{
		BlockMaxSize:      BlockMax1MB,
		BlockIndependence: true,
		ContentChecksum:   true,
	})
	require.NoError(t, fw.Close())

	b := buf.Bytes()
	require.Equal(t, frameMagic, binary.LittleEndian.Uint32(b[0:4]))
	flg := b[4]
	require.Equal(t, byte(frameVersion), flg>>flgVersionShift)
	require.NotZero(t, flg&flgBlockIndep)
	require.NotZero(t, flg&flgContentCheck)
	bd := b[5]
	require.Equal(t, byte(BlockMax1MB), bd>>bdBlockMaxSizeShift)
}
