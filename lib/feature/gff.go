//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"bufio"
	"bytes"
	"io"
)

// Only sequence name, start, end and strand are read from annotations.
const gffColumns = 8

var (
	blankLine      = []byte{'\n'}
	fastaDirective = []byte("##FASTA")
)

// gffReader presents GTF, GFF2 and GFF3 files as plain GFFv2 feature lines.
// Directives are blanked, the attribute column is removed, the GFF3 unknown
// strand "?" becomes "." and input ends at an embedded FASTA section.
// Line numbers are preserved.
type gffReader struct {
	r    *bufio.Reader
	buf  []byte
	done bool
}

func newGFFReader(r io.Reader) *gffReader {
	return &gffReader{r: bufio.NewReader(r)}
}

func (g *gffReader) Read(p []byte) (n int, err error) {
	for len(g.buf) == 0 {
		if g.done {
			return 0, io.EOF
		}
		var line []byte
		line, err = g.r.ReadBytes('\n')
		if err != nil {
			if err != io.EOF {
				return 0, err
			}
			err = nil
			g.done = true
			if len(line) == 0 {
				continue
			}
		}
		var stop bool
		g.buf, stop = gffLine(line)
		if stop {
			g.buf, g.done = nil, true
		}
	}
	n = copy(p, g.buf)
	g.buf = g.buf[n:]
	return
}

// gffLine rewrites one annotation line. stop is true at a FASTA directive.
func gffLine(line []byte) (out []byte, stop bool) {
	t := bytes.TrimSpace(line)
	if bytes.HasPrefix(t, []byte("##")) {
		return blankLine, bytes.Equal(t, fastaDirective)
	}
	if len(t) == 0 || t[0] == '#' {
		return blankLine, false
	}
	fields := bytes.SplitN(t, []byte{'\t'}, gffColumns+1)
	if len(fields) > gffColumns {
		fields = fields[:gffColumns]
	}
	if len(fields) > 6 && bytes.Equal(fields[6], []byte("?")) {
		fields[6] = []byte(".")
	}
	out = append(bytes.Join(fields, []byte{'\t'}), '\n')
	return
}
