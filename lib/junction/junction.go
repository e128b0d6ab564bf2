//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package junction reads and writes tables of candidate circRNA junctions.
package junction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/seq"

	"git.sr.ht/~vejnar/CircFilter/lib/feature"
)

// ParseMode is the numeric type of all counts of one input file.
type ParseMode int

const (
	Int ParseMode = iota
	Float
)

func (m ParseMode) String() string {
	if m == Float {
		return "float"
	}
	return "int"
}

// Record is a candidate back-splice junction with per-sample counts.
type Record struct {
	Chrom      string
	Start, End int
	Strand     seq.Strand
	// Type is 0 for junctions supported by unique evidence only
	Type       int
	Descriptor string
	Counts     []float64
	// Ints holds the exact counts of Int mode tables when read from a file
	Ints []int64
}

// Key returns the chrom, start, end and strand identifying r.
func (r Record) Key() string {
	return fmt.Sprintf("%s:%d-%d:%s", r.Chrom, r.Start, r.End, feature.StrandString(r.Strand))
}

// Table is a set of records sharing the same samples and count type.
type Table struct {
	Records []Record
	Mode    ParseMode
	NSample int
}

// Subset returns a new table with the records of t for which keep is true.
func (t *Table) Subset(keep []bool) *Table {
	nt := &Table{Mode: t.Mode, NSample: t.NSample}
	for i, k := range keep {
		if k {
			nt.Records = append(nt.Records, t.Records[i])
		}
	}
	return nt
}

// FormatCount formats a count: integers without a fraction, floats always with one.
func FormatCount(v float64, mode ParseMode) string {
	if mode == Int {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".IN") {
		s += ".0"
	}
	return s
}

// FormatCount formats the i-th count of r, using the exact integer value when available.
func (r Record) FormatCount(i int, mode ParseMode) string {
	if mode == Int && r.Ints != nil {
		return strconv.FormatInt(r.Ints[i], 10)
	}
	return FormatCount(r.Counts[i], mode)
}

// IsChrM reports whether chrom is the mitochondrial chromosome, named "chrM" or "MT".
func IsChrM(chrom string) bool {
	return chrom == "chrM" || chrom == "MT"
}
