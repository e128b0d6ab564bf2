//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package workdir

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDir(t *testing.T) {
	c := qt.New(t)
	parent := c.TempDir()
	d, err := New(parent, false)
	c.Assert(err, qt.IsNil)
	c.Assert(filepath.Dir(d.Root()), qt.Equals, parent)
	c.Assert(d.Path("tmp_left"), qt.Equals, filepath.Join(d.Root(), "tmp_left"))
	c.Assert(os.WriteFile(d.Path("tmp_left"), []byte("x"), 0666), qt.IsNil)
	c.Assert(d.Close(), qt.IsNil)
	_, err = os.Stat(d.Root())
	c.Assert(os.IsNotExist(err), qt.IsTrue)
	// Removing twice is not an error
	c.Assert(d.Close(), qt.IsNil)
}

func TestDirKeep(t *testing.T) {
	c := qt.New(t)
	d, err := New(c.TempDir(), true)
	c.Assert(err, qt.IsNil)
	c.Assert(d.Close(), qt.IsNil)
	_, err = os.Stat(d.Root())
	c.Assert(err, qt.IsNil)
}

func TestDirMissingParent(t *testing.T) {
	c := qt.New(t)
	_, err := New(filepath.Join(c.TempDir(), "missing"), false)
	c.Assert(err, qt.IsNotNil)
}
