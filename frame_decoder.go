// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// Frame decoder (component F). FrameReader mirrors FrameWriter: it parses
// the descriptor once, then reads one block envelope at a time, handing
// each compressed payload to the same block decoder UncompressBlock uses.
// Read loop shape (buffer one block, serve it out, read the next) follows
// the pack's GoZ4X Reader; the permanent-failure-after-first-error rule
// and real checksum verification are this package's own addition.
type FrameReader struct {
	r io.Reader

	headerRead bool
	legacy     bool
	blockMax   int
	blockDep   bool
	blockCksum bool
	contentSum bool

	// DictID is the dictionary id read from the frame descriptor, or 0 if
	// the frame did not declare one. Valid only after the first Read call.
	DictID uint32

	dict        []byte
	contentHash *xxhash32State

	pending  []byte
	pos      int
	eof      bool
	err      error
	consumed int64 // bytes read from r so far, for error positioning
}

// readFull is io.ReadFull against fr.r, tracking how many bytes of the
// frame have been consumed so a failure can report where it happened.
func (fr *FrameReader) readFull(buf []byte) (int, error) {
	n, err := io.ReadFull(fr.r, buf)
	fr.consumed += int64(n)
	return n, err
}

// NewFrameReader returns a FrameReader reading a frame from r.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// NewFrameReaderWithDict is NewFrameReader, additionally seeding the first
// block's ext_dict with dict. The dictionary is used only when the frame is
// block-dependent and dict is at least 4 bytes long. The caller must supply the same bytes the
// encoder primed its FrameInfo.Dict with; the wire format only carries a
// DictID, never the dictionary content itself.
func NewFrameReaderWithDict(r io.Reader, dict []byte) *FrameReader {
	fr := &FrameReader{r: r}
	if len(dict) >= minMatch {
		fr.dict = appendDictWindow(nil, dict)
	}
	return fr
}

// Read implements io.Reader. Once a FrameReader returns a non-EOF error it
// returns that same error on every subsequent call.
func (fr *FrameReader) Read(p []byte) (int, error) {
	if fr.err != nil {
		return 0, fr.err
	}

	if !fr.headerRead {
		if err := fr.readHeader(); err != nil {
			return 0, fr.fail(err)
		}
		fr.headerRead = true
	}

	for fr.pos >= len(fr.pending) {
		if fr.eof {
			return 0, io.EOF
		}
		if err := fr.readBlock(); err != nil {
			if err == io.EOF {
				fr.eof = true
				return 0, io.EOF
			}
			return 0, fr.fail(err)
		}
	}

	n := copy(p, fr.pending[fr.pos:])
	fr.pos += n
	return n, nil
}

func (fr *FrameReader) fail(err error) error {
	wrapped := wrapFrameErr(err, fr.consumed)
	fr.err = wrapped
	return wrapped
}

func (fr *FrameReader) readHeader() error {
	var magic [4]byte
	if _, err := fr.readFull(magic[:]); err != nil {
		return translateReadErr(err)
	}
	m := binary.LittleEndian.Uint32(magic[:])

	switch m {
	case legacyFrameMagic:
		fr.legacy = true
		fr.blockMax = legacyBlockSize
		return nil
	case frameMagic:
		// fall through to modern descriptor parsing below
	default:
		return ErrUnknownMagic
	}

	var fb [2]byte
	if _, err := fr.readFull(fb[:]); err != nil {
		return translateReadErr(err)
	}
	flg, bd := fb[0], fb[1]

	version := flg >> flgVersionShift
	if version != frameVersion {
		return ErrUnsupportedFrameVersion
	}
	if flg&flgReserved != 0 || bd&bdReservedMask != 0 {
		return ErrCorrupt
	}
	bmCode := bd >> bdBlockMaxSizeShift
	if bmCode < byte(BlockMax64KB) || bmCode > byte(BlockMax4MB) {
		return ErrCorrupt
	}

	fr.blockDep = flg&flgBlockIndep == 0
	fr.blockCksum = flg&flgBlockChecksum != 0
	hasContentSize := flg&flgContentSize != 0
	fr.contentSum = flg&flgContentCheck != 0
	hasDictID := flg&flgDictID != 0

	desc := append([]byte(nil), fb[:]...)

	if hasContentSize {
		var cs [8]byte
		if _, err := fr.readFull(cs[:]); err != nil {
			return translateReadErr(err)
		}
		desc = append(desc, cs[:]...)
	}
	if hasDictID {
		var did [4]byte
		if _, err := fr.readFull(did[:]); err != nil {
			return translateReadErr(err)
		}
		desc = append(desc, did[:]...)
		fr.DictID = binary.LittleEndian.Uint32(did[:])
	}

	var hcByte [1]byte
	if _, err := fr.readFull(hcByte[:]); err != nil {
		return translateReadErr(err)
	}
	wantHC := byte(xxhash32(desc, 0) >> 8)
	if hcByte[0] != wantHC {
		return ErrHeaderChecksumMismatch
	}

	fr.blockMax = BlockMaxSize(bmCode).Bytes()
	if fr.contentSum {
		fr.contentHash = newXXHash32State(0)
	}
	return nil
}

// translateReadErr maps a mid-field io.ErrUnexpectedEOF/EOF (the stream
// ended while a required header field was still being read) onto
// ErrCorrupt, since from the caller's view the frame itself is malformed.
func translateReadErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrCorrupt
	}
	return err
}

// readBlock reads and decodes the next block into fr.pending, or returns
// io.EOF when the end mark (or, for legacy frames, the underlying stream)
// is reached.
func (fr *FrameReader) readBlock() error {
	var sizeHdr [4]byte
	n, err := fr.readFull(sizeHdr[:])
	if err != nil {
		if fr.legacy && (errors.Is(err, io.EOF) || (n == 0 && errors.Is(err, io.ErrUnexpectedEOF))) {
			return io.EOF
		}
		return translateReadErr(err)
	}
	size := binary.LittleEndian.Uint32(sizeHdr[:])

	if !fr.legacy && size == blockSizeEnd {
		if fr.contentSum {
			var sum [4]byte
			if _, err := fr.readFull(sum[:]); err != nil {
				return translateReadErr(err)
			}
			if binary.LittleEndian.Uint32(sum[:]) != fr.contentHash.Sum() {
				return ErrContentChecksumMismatch
			}
		}
		return io.EOF
	}

	uncompressed := size&blockUncompressedFlag != 0
	payloadLen := size & blockSizeMask
	if int(payloadLen) > fr.blockMax {
		return ErrBlockSizeExceedsMax
	}

	payload := make([]byte, payloadLen)
	if _, err := fr.readFull(payload); err != nil {
		return translateReadErr(err)
	}

	if !fr.legacy && fr.blockCksum {
		var sum [4]byte
		if _, err := fr.readFull(sum[:]); err != nil {
			return translateReadErr(err)
		}
		if binary.LittleEndian.Uint32(sum[:]) != xxhash32(payload, 0) {
			return ErrBlockChecksumMismatch
		}
	}

	var decoded []byte
	if uncompressed {
		decoded = payload
	} else {
		dst := newBoundedSink(make([]byte, fr.blockMax))
		var dict []byte
		if fr.blockDep {
			dict = fr.dict
		}
		if _, err := decompressBlockInto(dst, payload, dict); err != nil {
			if err == ErrOutputTooSmall {
				return ErrBlockSizeExceedsMax
			}
			return err
		}
		decoded = dst.Bytes()
	}

	if fr.contentHash != nil {
		fr.contentHash.Write(decoded)
	}
	if fr.blockDep {
		fr.dict = appendDictWindow(fr.dict, decoded)
	}

	fr.pending = decoded
	fr.pos = 0
	return nil
}

// DecompressFrame reads and decodes an entire LZ4 frame from src.
func DecompressFrame(src []byte) ([]byte, error) {
	fr := NewFrameReader(bytes.NewReader(src))
	return io.ReadAll(fr)
}
