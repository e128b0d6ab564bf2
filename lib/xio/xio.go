//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package xio opens plain or compressed tabulated files.
package xio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
)

// Compression formats
const (
	None  = ""
	LZ4   = "lz4"
	LZ4HC = "lz4hc"
	Gzip  = "gzip"
	BGZF  = "bgzf"
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r readCloser) Close() (err error) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if e := r.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// Format returns the compression format detected from the first bytes of r.
func Format(r *bufio.Reader) string {
	head, _ := r.Peek(18)
	switch {
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	case bytes.HasPrefix(head, magicGzip):
		// BGZF blocks are gzip members with a "BC" extra subfield
		if len(head) >= 14 && head[3]&0x04 != 0 && head[12] == 'B' && head[13] == 'C' {
			return BGZF
		}
		return Gzip
	}
	return None
}

// Open opens path for reading, decompressing gzip, BGZF and LZ4 content transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReader(f)
	rc := readCloser{closers: []io.Closer{f}}
	switch Format(br) {
	case LZ4:
		rc.Reader = lz4.NewReader(br)
	case BGZF:
		bg, err := bgzf.NewReader(br, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rc.Reader = bg
		rc.closers = append(rc.closers, bg)
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rc.Reader = gz
		rc.closers = append(rc.closers, gz)
	default:
		rc.Reader = br
	}
	return rc, nil
}

type writer struct {
	*bufio.Writer
	closers []io.Closer
}

func (w writer) Close() (err error) {
	err = w.Flush()
	for i := len(w.closers) - 1; i >= 0; i-- {
		if e := w.closers[i].Close(); e != nil && err == nil {
			err = e
		}
	}
	return
}

// Create creates or truncates path and returns a writer compressing with format.
func Create(path string, format string) (GenericWriter, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, err
	}
	closers := []io.Closer{f}
	var dst io.Writer
	switch format {
	case LZ4:
		lzWriter := lz4.NewWriter(f)
		dst = lzWriter
		closers = append(closers, lzWriter)
	case LZ4HC:
		lzWriter := lz4.NewWriter(f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		dst = lzWriter
		closers = append(closers, lzWriter)
	case Gzip:
		gzWriter := gzip.NewWriter(f)
		dst = gzWriter
		closers = append(closers, gzWriter)
	case BGZF:
		bgWriter := bgzf.NewWriter(f, 1)
		dst = bgWriter
		closers = append(closers, bgWriter)
	case None:
		dst = f
	default:
		f.Close()
		return nil, fmt.Errorf("Unknown compression format %q", format)
	}
	return writer{Writer: bufio.NewWriter(dst), closers: closers}, nil
}
