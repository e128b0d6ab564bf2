//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package workdir manages the temporary files of one run.
package workdir

import (
	"os"
	"path/filepath"
)

// Dir is a private temporary directory. Close removes it with its content.
type Dir struct {
	path string
	keep bool
}

// New creates a new directory in parent (the system temporary directory if empty).
// If keep is true, Close leaves the directory in place.
func New(parent string, keep bool) (*Dir, error) {
	path, err := os.MkdirTemp(parent, "circfilter-tmp-*")
	if err != nil {
		return nil, err
	}
	return &Dir{path: path, keep: keep}, nil
}

// Path returns the path of name within the directory.
func (d *Dir) Path(name string) string {
	return filepath.Join(d.path, name)
}

// Root returns the directory path.
func (d *Dir) Root() string {
	return d.path
}

// Close removes the directory unless it was created to be kept.
func (d *Dir) Close() error {
	if d.keep {
		return nil
	}
	return os.RemoveAll(d.path)
}
