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
	"fmt"
	"strconv"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"

	"git.sr.ht/~vejnar/CircFilter/lib/xio"
)

// Region is a repeat region with 0-based half-open coordinates.
type Region struct {
	Chrom      string
	Start, End int
	Strand     seq.Strand
}

// Length returns the length of region
func (r Region) Length() int {
	return r.End - r.Start
}

// ParseError reports a malformed line of an input file.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v: %q", e.Path, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseStrand parses "+", "-" and "." strands. Numeric forms "1", "+1" and "-1" are accepted.
func ParseStrand(strandRaw string) (seq.Strand, bool) {
	switch strandRaw {
	case "+", "1", "+1":
		return seq.Plus, true
	case "-", "-1":
		return seq.Minus, true
	case ".":
		return seq.None, true
	}
	return seq.None, false
}

// StrandString formats s as "+", "-" or ".".
func StrandString(s seq.Strand) string {
	switch s {
	case seq.Plus:
		return "+"
	case seq.Minus:
		return "-"
	}
	return "."
}

// OpenGTF reads repeat regions from a GTF, GFF2 or GFF3 file. Start is converted
// to 0-based and the inclusive end becomes the half-open end. Chromosome names
// are renamed using mapping if not empty. Directives and attributes are ignored.
func OpenGTF(gpath string, mapping map[string]string) (regions []Region, err error) {
	gfos, err := xio.Open(gpath)
	if err != nil {
		return
	}
	defer gfos.Close()

	sc := featio.NewScanner(gff.NewReader(newGFFReader(gfos)))
	for sc.Next() {
		gf, ok := sc.Feat().(*gff.Feature)
		if !ok {
			continue
		}
		if gf.FeatStart >= gf.FeatEnd {
			err = &ParseError{Path: gpath, Err: fmt.Errorf("Empty or inverted feature %s:[%d,%d)", gf.SeqName, gf.FeatStart, gf.FeatEnd)}
			return
		}
		regions = append(regions, Region{Chrom: MapName(gf.SeqName, mapping), Start: gf.FeatStart, End: gf.FeatEnd, Strand: gf.FeatStrand})
	}
	if err = sc.Error(); err != nil {
		err = &ParseError{Path: gpath, Err: err}
		return
	}
	return
}

// OpenTAB parses a tabulated file with chrom, start, end and an optional strand
// (0-based half-open, strand defaults to ".") and returns a list of Region.
func OpenTAB(tpath string, mapping map[string]string) (regions []Region, err error) {
	tfos, err := xio.Open(tpath)
	if err != nil {
		return
	}
	defer tfos.Close()

	var n int
	tscanner := bufio.NewScanner(tfos)
	for tscanner.Scan() {
		n++
		line := tscanner.Text()
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			err = &ParseError{Path: tpath, Line: n, Text: line, Err: fmt.Errorf("Expected at least 3 columns, found %d", len(fields))}
			return
		}
		r := Region{Chrom: MapName(fields[0], mapping), Strand: seq.None}
		if r.Start, err = strconv.Atoi(fields[1]); err != nil {
			err = &ParseError{Path: tpath, Line: n, Text: line, Err: err}
			return
		}
		if r.End, err = strconv.Atoi(fields[2]); err != nil {
			err = &ParseError{Path: tpath, Line: n, Text: line, Err: err}
			return
		}
		if len(fields) > 3 {
			var ok bool
			if r.Strand, ok = ParseStrand(fields[3]); !ok {
				err = &ParseError{Path: tpath, Line: n, Text: line, Err: fmt.Errorf("Unknown strand %q", fields[3])}
				return
			}
		}
		if r.Start >= r.End {
			err = &ParseError{Path: tpath, Line: n, Text: line, Err: fmt.Errorf("Empty or inverted region [%d,%d)", r.Start, r.End)}
			return
		}
		regions = append(regions, r)
	}
	if err = tscanner.Err(); err != nil {
		return
	}
	return
}
