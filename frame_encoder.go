// SPDX-License-Identifier: GPL-2.0-only
// Source: github.com/woozymasta/lz4

package lz4

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Frame encoder (component E). FrameWriter buffers incoming bytes up to one
// block's worth, compresses each full block through the same block codec
// used by CompressBlock, and writes it out with the size/checksum envelope
// the frame format requires. The buffer-then-flush shape follows the
// pack's GoZ4X Writer (bufUsed/flush), generalized to real checksums, true
// block-dependence via a carried ext_dict window, and the legacy format.

// extDictWindow is the size of the sliding dictionary window carried
// between blocks when a frame is block-dependent.
const extDictWindow = 64 << 10

// FrameWriter compresses a stream of bytes into a single LZ4 frame.
type FrameWriter struct {
	w    io.Writer
	info FrameInfo

	headerWritten bool
	closed        bool

	blockMax int
	buf      []byte
	bufLen   int

	dict []byte // ext_dict carried into the next block, nil when independent

	contentHash *xxhash32State
	scratch     *sink
}

// NewFrameWriter returns a FrameWriter that writes a frame to w. info may
// be nil to use DefaultFrameInfo.
func NewFrameWriter(w io.Writer, info *FrameInfo) *FrameWriter {
	if info == nil {
		info = DefaultFrameInfo()
	}
	normalized := *info
	if !normalized.Legacy && normalized.BlockMaxSize == 0 {
		// Auto-detect: the caller didn't pick a block size class. This
		// implementation always falls back to the smallest class; the
		// wire format treats the exact choice as an encoder heuristic,
		// not a contract the decoder depends on.
		normalized.BlockMaxSize = BlockMax64KB
	}
	blockMax := legacyBlockSize
	if !normalized.Legacy {
		blockMax = normalized.BlockMaxSize.Bytes()
	}

	fw := &FrameWriter{
		w:        w,
		info:     normalized,
		blockMax: blockMax,
		buf:      make([]byte, 0, blockMax),
	}
	if fw.info.Legacy {
		// The legacy format has no descriptor flags at all; blocks are
		// always independent, matching the classic lz4demo streaming tool.
		fw.info.BlockIndependence = true
	}
	if !fw.info.BlockIndependence && len(fw.info.Dict) >= minMatch {
		fw.dict = appendDictWindow(nil, fw.info.Dict)
	}
	if info.ContentChecksum {
		fw.contentHash = newXXHash32State(0)
	}
	return fw
}

// Write buffers p and flushes full blocks as they accumulate.
func (fw *FrameWriter) Write(p []byte) (int, error) {
	if fw.closed {
		return 0, ErrClosed
	}
	if !fw.headerWritten {
		if err := fw.writeHeader(); err != nil {
			return 0, err
		}
	}
	if fw.contentHash != nil {
		fw.contentHash.Write(p)
	}

	total := len(p)
	for len(p) > 0 {
		room := fw.blockMax - fw.bufLen
		n := room
		if n > len(p) {
			n = len(p)
		}
		fw.buf = append(fw.buf, p[:n]...)
		fw.bufLen += n
		p = p[n:]

		if fw.bufLen == fw.blockMax {
			if err := fw.emitBlock(); err != nil {
				return total - len(p), err
			}
		}
	}
	return total, nil
}

func (fw *FrameWriter) writeHeader() error {
	fw.headerWritten = true
	if fw.info.Legacy {
		var magic [4]byte
		binary.LittleEndian.PutUint32(magic[:], legacyFrameMagic)
		_, err := fw.w.Write(magic[:])
		return err
	}

	desc := make([]byte, 2, 15)
	flg := byte(frameVersion << flgVersionShift)
	if fw.info.BlockIndependence {
		flg |= flgBlockIndep
	}
	if fw.info.BlockChecksum {
		flg |= flgBlockChecksum
	}
	if fw.info.ContentSize != 0 {
		flg |= flgContentSize
	}
	if fw.info.ContentChecksum {
		flg |= flgContentCheck
	}
	if fw.info.DictID != 0 {
		flg |= flgDictID
	}
	desc[0] = flg

	bd := byte(fw.info.BlockMaxSize) << bdBlockMaxSizeShift
	desc[1] = bd

	if fw.info.ContentSize != 0 {
		var cs [8]byte
		binary.LittleEndian.PutUint64(cs[:], fw.info.ContentSize)
		desc = append(desc, cs[:]...)
	}
	if fw.info.DictID != 0 {
		var did [4]byte
		binary.LittleEndian.PutUint32(did[:], fw.info.DictID)
		desc = append(desc, did[:]...)
	}

	hc := byte(xxhash32(desc, 0) >> 8)

	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], frameMagic)
	if _, err := fw.w.Write(out[:]); err != nil {
		return err
	}
	if _, err := fw.w.Write(desc); err != nil {
		return err
	}
	_, err := fw.w.Write([]byte{hc})
	return err
}

// emitBlock compresses the pending buffer and writes one block envelope.
func (fw *FrameWriter) emitBlock() error {
	if fw.bufLen == 0 {
		return nil
	}
	raw := fw.buf[:fw.bufLen]

	if fw.scratch == nil {
		fw.scratch = newGrowableSink(CompressBlockBound(fw.blockMax))
	}
	fw.scratch.pos = 0

	var dict []byte
	if !fw.info.BlockIndependence {
		dict = fw.dict
	}

	n, err := compressBlockInto(fw.scratch, raw, dict)
	if err != nil {
		return err
	}
	payload := fw.scratch.Bytes()
	uncompressed := false
	if n >= len(raw) {
		payload = raw
		uncompressed = true
	}

	var sizeHdr [4]byte
	size := uint32(len(payload))
	if uncompressed {
		size |= blockUncompressedFlag
	}
	binary.LittleEndian.PutUint32(sizeHdr[:], size)
	if _, err := fw.w.Write(sizeHdr[:]); err != nil {
		return err
	}
	if _, err := fw.w.Write(payload); err != nil {
		return err
	}

	if !fw.info.Legacy && fw.info.BlockChecksum {
		sum := xxhash32(payload, 0)
		var cksum [4]byte
		binary.LittleEndian.PutUint32(cksum[:], sum)
		if _, err := fw.w.Write(cksum[:]); err != nil {
			return err
		}
	}

	if !fw.info.BlockIndependence {
		fw.dict = appendDictWindow(fw.dict, raw)
	}

	fw.buf = fw.buf[:0]
	fw.bufLen = 0
	return nil
}

// appendDictWindow returns the trailing extDictWindow bytes of dict+next,
// the sliding window carried forward for the next block-dependent block.
func appendDictWindow(dict, next []byte) []byte {
	combined := append(append([]byte(nil), dict...), next...)
	if len(combined) > extDictWindow {
		combined = combined[len(combined)-extDictWindow:]
	}
	return combined
}

// Flush compresses and writes any buffered bytes as a short final block,
// without closing the frame. Subsequent writes start a new block.
func (fw *FrameWriter) Flush() error {
	if fw.closed {
		return ErrClosed
	}
	return fw.emitBlock()
}

// Close flushes any remaining buffered bytes, writes the end mark, and
// (if enabled) the content checksum. It is safe to call once; further
// writes return ErrClosed.
func (fw *FrameWriter) Close() error {
	if fw.closed {
		return nil
	}
	if !fw.headerWritten {
		if err := fw.writeHeader(); err != nil {
			return err
		}
	}
	if err := fw.emitBlock(); err != nil {
		return err
	}
	fw.closed = true

	if fw.info.Legacy {
		return nil
	}

	var end [4]byte // blockSizeEnd is zero
	if _, err := fw.w.Write(end[:]); err != nil {
		return err
	}
	if fw.contentHash != nil {
		var sum [4]byte
		binary.LittleEndian.PutUint32(sum[:], fw.contentHash.Sum())
		if _, err := fw.w.Write(sum[:]); err != nil {
			return err
		}
	}
	return nil
}

// CompressFrame compresses src into a complete in-memory LZ4 frame using
// info (nil for defaults).
func CompressFrame(src []byte, info *FrameInfo) ([]byte, error) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, info)
	if _, err := fw.Write(src); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
