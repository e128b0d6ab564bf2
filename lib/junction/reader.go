//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package junction

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"git.sr.ht/~vejnar/CircFilter/lib/feature"
	"git.sr.ht/~vejnar/CircFilter/lib/xio"
)

const maxLineLength = 16 * 1024 * 1024

// Column layout of the single-table input: chr start end strand type count...
const (
	chromField = iota
	startField
	endField
	strandField
	typeField

	firstCountField
)

// Column layout of the DCC coordinates input: chr start end gene type strand ...
const (
	coordDescriptorField = 3
	coordTypeField       = 4
	coordStrandField     = 5

	numberOfCoordFields = 6

	// Counts in DCC count files follow chr start end strand
	pairFirstCountField = 4
)

type row struct {
	line   int
	text   string
	fields []string
}

type ParseError = feature.ParseError

// readRows reads non-empty lines of path split on tabs, with surrounding white space removed from fields.
func readRows(path string) (rows []row, err error) {
	rfos, err := xio.Open(path)
	if err != nil {
		return
	}
	defer rfos.Close()

	var n int
	tscanner := bufio.NewScanner(rfos)
	tscanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for tscanner.Scan() {
		n++
		text := tscanner.Text()
		if len(strings.TrimSpace(text)) == 0 {
			continue
		}
		fields := strings.Split(text, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, row{line: n, text: text, fields: fields})
	}
	if err = tscanner.Err(); err != nil {
		return
	}
	return
}

// detectMode returns Int if every count field parses as an integer, Float otherwise.
func detectMode(rows []row, first int) ParseMode {
	for _, r := range rows {
		for _, f := range r.fields[first:] {
			if _, err := strconv.ParseInt(f, 10, 64); err != nil {
				return Float
			}
		}
	}
	return Int
}

// parseCounts converts count fields of all rows once the mode of the whole file is known.
// All rows must have the same number of counts.
// Int mode counts are also returned as exact integers.
func parseCounts(path string, rows []row, first int) (counts [][]float64, ints [][]int64, mode ParseMode, nSample int, err error) {
	if len(rows) == 0 {
		return
	}
	nSample = len(rows[0].fields) - first
	if nSample < 1 {
		err = &ParseError{Path: path, Line: rows[0].line, Text: rows[0].text, Err: fmt.Errorf("Expected at least %d columns, found %d", first+1, len(rows[0].fields))}
		return
	}
	for _, r := range rows {
		if len(r.fields)-first != nSample {
			err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: fmt.Errorf("Expected %d columns, found %d", first+nSample, len(r.fields))}
			return
		}
	}
	mode = detectMode(rows, first)
	counts = make([][]float64, len(rows))
	if mode == Int {
		ints = make([][]int64, len(rows))
	}
	for i, r := range rows {
		counts[i] = make([]float64, nSample)
		if mode == Int {
			ints[i] = make([]int64, nSample)
		}
		for j, f := range r.fields[first:] {
			switch mode {
			case Int:
				ints[i][j], err = strconv.ParseInt(f, 10, 64)
				counts[i][j] = float64(ints[i][j])
			case Float:
				counts[i][j], err = strconv.ParseFloat(f, 64)
			}
			if err != nil {
				err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: err}
				return
			}
		}
	}
	return
}

// parseCoords parses the chromosome, start, end, strand and type fields of r at the given columns.
func parseCoords(path string, r row, strandCol, typeCol int) (rec Record, err error) {
	rec.Chrom = r.fields[chromField]
	if rec.Start, err = strconv.Atoi(r.fields[startField]); err != nil {
		err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: err}
		return
	}
	if rec.End, err = strconv.Atoi(r.fields[endField]); err != nil {
		err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: err}
		return
	}
	if rec.Start >= rec.End {
		err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: fmt.Errorf("Empty or inverted junction [%d,%d)", rec.Start, rec.End)}
		return
	}
	if rec.Type, err = strconv.Atoi(r.fields[typeCol]); err != nil {
		err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: err}
		return
	}
	var ok bool
	if rec.Strand, ok = feature.ParseStrand(r.fields[strandCol]); !ok {
		err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: fmt.Errorf("Unknown strand %q", r.fields[strandCol])}
		return
	}
	return
}

// ReadTable reads a junction table with columns chr, start, end, strand, type and counts.
func ReadTable(path string) (t *Table, err error) {
	rows, err := readRows(path)
	if err != nil {
		return
	}
	for _, r := range rows {
		if len(r.fields) < firstCountField {
			err = &ParseError{Path: path, Line: r.line, Text: r.text, Err: fmt.Errorf("Expected at least %d columns, found %d", firstCountField+1, len(r.fields))}
			return
		}
	}
	counts, ints, mode, nSample, err := parseCounts(path, rows, firstCountField)
	if err != nil {
		return
	}
	t = &Table{Mode: mode, NSample: nSample, Records: make([]Record, len(rows))}
	for i, r := range rows {
		var rec Record
		rec, err = parseCoords(path, r, strandField, typeField)
		if err != nil {
			return nil, err
		}
		rec.Descriptor = "."
		rec.Counts = counts[i]
		if ints != nil {
			rec.Ints = ints[i]
		}
		t.Records[i] = rec
	}
	return
}

// ReadPair reads a DCC count file (chr, start, end, strand, counts) and its
// row-aligned coordinates file (chr, start, end, gene, type, strand, ...).
func ReadPair(countPath, coordPath string) (t *Table, err error) {
	countRows, err := readRows(countPath)
	if err != nil {
		return
	}
	coordRows, err := readRows(coordPath)
	if err != nil {
		return
	}
	if len(countRows) != len(coordRows) {
		err = &ParseError{Path: coordPath, Err: fmt.Errorf("Found %d rows, expected %d as in %s", len(coordRows), len(countRows), countPath)}
		return
	}
	for _, r := range countRows {
		if len(r.fields) < pairFirstCountField {
			err = &ParseError{Path: countPath, Line: r.line, Text: r.text, Err: fmt.Errorf("Expected at least %d columns, found %d", pairFirstCountField+1, len(r.fields))}
			return
		}
	}
	counts, ints, mode, nSample, err := parseCounts(countPath, countRows, pairFirstCountField)
	if err != nil {
		return
	}
	t = &Table{Mode: mode, NSample: nSample, Records: make([]Record, len(coordRows))}
	for i, r := range coordRows {
		if len(r.fields) < numberOfCoordFields {
			return nil, &ParseError{Path: coordPath, Line: r.line, Text: r.text, Err: fmt.Errorf("Expected at least %d columns, found %d", numberOfCoordFields, len(r.fields))}
		}
		var rec Record
		rec, err = parseCoords(coordPath, r, coordStrandField, coordTypeField)
		if err != nil {
			return nil, err
		}
		cr := countRows[i]
		if cr.fields[chromField] != rec.Chrom || cr.fields[startField] != r.fields[startField] || cr.fields[endField] != r.fields[endField] {
			return nil, &ParseError{Path: coordPath, Line: r.line, Text: r.text, Err: fmt.Errorf("Coordinates differ from %s line %d", countPath, cr.line)}
		}
		rec.Descriptor = r.fields[coordDescriptorField]
		rec.Counts = counts[i]
		if ints != nil {
			rec.Ints = ints[i]
		}
		t.Records[i] = rec
	}
	return
}
