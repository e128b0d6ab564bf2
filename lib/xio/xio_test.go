//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package xio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

const table = "chr1\t1000\t2000\t+\t1\t5\t6\t7\nchr2\t10\t500\t-\t2\t0\t1\t9\n"

func TestCompressedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, format := range []string{None, LZ4, LZ4HC, Gzip, BGZF} {
		t.Run("format="+format, func(t *testing.T) {
			c := qt.New(t)
			path := filepath.Join(dir, "table-"+format)
			w, err := Create(path, format)
			c.Assert(err, qt.IsNil)
			_, err = io.WriteString(w, table)
			c.Assert(err, qt.IsNil)
			c.Assert(w.Close(), qt.IsNil)

			f, err := os.Open(path)
			c.Assert(err, qt.IsNil)
			detected := Format(bufio.NewReader(f))
			f.Close()
			want := format
			if format == LZ4HC {
				want = LZ4
			}
			c.Assert(detected, qt.Equals, want)

			r, err := Open(path)
			c.Assert(err, qt.IsNil)
			b, err := io.ReadAll(r)
			c.Assert(err, qt.IsNil)
			c.Assert(r.Close(), qt.IsNil)
			c.Assert(string(b), qt.Equals, table)
		})
	}
}

func TestCreateUnknownFormat(t *testing.T) {
	c := qt.New(t)
	_, err := Create(filepath.Join(t.TempDir(), "out"), "zip")
	c.Assert(err, qt.ErrorMatches, `Unknown compression format "zip"`)
}

func TestFormatShortInput(t *testing.T) {
	c := qt.New(t)
	c.Assert(Format(bufio.NewReader(strings.NewReader("c"))), qt.Equals, None)
	c.Assert(Format(bufio.NewReader(strings.NewReader(""))), qt.Equals, None)
}

func TestOpenMissing(t *testing.T) {
	c := qt.New(t)
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}
