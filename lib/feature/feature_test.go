//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/biogo/biogo/seq"
	qt "github.com/frankban/quicktest"
)

func writeFile(c *qt.C, name, content string) string {
	path := filepath.Join(c.TempDir(), name)
	c.Assert(os.WriteFile(path, []byte(content), 0666), qt.IsNil)
	return path
}

func TestOpenGTF(t *testing.T) {
	c := qt.New(t)
	path := writeFile(c, "repeats.gtf", ""+
		"chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tgene_id \"AluY\"\n"+
		"1\trmsk\trepeat\t5001\t5300\t.\t-\t.\tgene_id \"L1\"\n"+
		"chr2\trmsk\trepeat\t1\t1\t.\t.\t.\tgene_id \"(CA)n\"\n")
	regions, err := OpenGTF(path, map[string]string{"1": "chr1"})
	c.Assert(err, qt.IsNil)
	c.Assert(regions, qt.DeepEquals, []Region{
		{Chrom: "chr1", Start: 990, End: 1010, Strand: seq.Plus},
		{Chrom: "chr1", Start: 5000, End: 5300, Strand: seq.Minus},
		{Chrom: "chr2", Start: 0, End: 1, Strand: seq.None},
	})
	c.Assert(regions[2].Length(), qt.Equals, 1)
}

func TestOpenGTFDirectives(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"sequence-region", "##sequence-region chr1 1 248956422\n" +
			"chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tgene_id \"AluY\"\n"},
		{"gff3", "##gff-version 3\n" +
			"##sequence-region chr1 1 248956422\n" +
			"chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tID=rep1;Name=AluY\n" +
			"###\n"},
		{"gff3 attributes", "chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tID=rep1;Name=AluY\n"},
		{"dna", "chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tgene_id \"AluY\"\n" +
			"##DNA chr1\n##acgtacgt\n##end-DNA\n"},
		{"fasta", "##gff-version 3\n" +
			"chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\tID=rep1\n" +
			"##FASTA\n>chr1\nACGTACGT\n"},
		{"no attributes", "chr1\trmsk\trepeat\t991\t1010\t.\t+\t.\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			regions, err := OpenGTF(writeFile(c, "repeats.gff", test.content), nil)
			c.Assert(err, qt.IsNil)
			c.Assert(regions, qt.DeepEquals, []Region{{Chrom: "chr1", Start: 990, End: 1010, Strand: seq.Plus}})
		})
	}
}

func TestOpenGTFUnknownStrand(t *testing.T) {
	c := qt.New(t)
	regions, err := OpenGTF(writeFile(c, "repeats.gff3", "chr1\trmsk\trepeat\t991\t1010\t.\t?\t.\tID=rep1\n"), nil)
	c.Assert(err, qt.IsNil)
	c.Assert(regions, qt.DeepEquals, []Region{{Chrom: "chr1", Start: 990, End: 1010, Strand: seq.None}})
}

func TestOpenGTFErrors(t *testing.T) {
	c := qt.New(t)
	_, err := OpenGTF(writeFile(c, "bad.gff", "##gff-version 3\nchr1\trmsk\trepeat\tx\t1010\t.\t+\t.\tID=rep1\n"), nil)
	var perr *ParseError
	c.Assert(errors.As(err, &perr), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `.*line 2.*`)

	_, err = OpenGTF(writeFile(c, "inverted.gff", "chr1\trmsk\trepeat\t1010\t991\t.\t+\t.\tID=rep1\n"), nil)
	c.Assert(err, qt.ErrorMatches, `.*Empty or inverted feature chr1:\[1009,991\).*`)
}

func TestOpenTAB(t *testing.T) {
	c := qt.New(t)
	path := writeFile(c, "repeats.tab", "# repeats\nchr1\t990\t1010\t+\n\nchr2\t0\t50\n")
	regions, err := OpenTAB(path, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(regions, qt.DeepEquals, []Region{
		{Chrom: "chr1", Start: 990, End: 1010, Strand: seq.Plus},
		{Chrom: "chr2", Start: 0, End: 50, Strand: seq.None},
	})
}

func TestOpenTABErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
		msg     string
	}{
		{"columns", "chr1\t10\n", 1, `.*Expected at least 3 columns, found 2.*`},
		{"coordinate", "chr1\t10\t20\nchr1\tx\t20\n", 2, `.*invalid syntax.*`},
		{"strand", "chr1\t10\t20\t*\n", 1, `.*Unknown strand "\*".*`},
		{"inverted", "chr1\t20\t20\n", 1, `.*Empty or inverted region \[20,20\).*`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := OpenTAB(writeFile(c, "bad.tab", test.content), nil)
			c.Assert(err, qt.ErrorMatches, test.msg)
			var perr *ParseError
			c.Assert(errors.As(err, &perr), qt.IsTrue)
			c.Assert(perr.Line, qt.Equals, test.line)
		})
	}
}

func TestOpenMapping(t *testing.T) {
	c := qt.New(t)
	m, err := OpenMapping(writeFile(c, "map.tab", "1\tchr1\nMT\tchrM\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(MapName("1", m), qt.Equals, "chr1")
	c.Assert(MapName("MT", m), qt.Equals, "chrM")
	c.Assert(MapName("chrX", m), qt.Equals, "chrX")

	_, err = OpenMapping(writeFile(c, "bad.tab", "1\n"))
	c.Assert(err, qt.ErrorMatches, `.*:1: Expected 2 columns: "1"`)
}

func TestParseStrand(t *testing.T) {
	c := qt.New(t)
	for raw, want := range map[string]seq.Strand{"+": seq.Plus, "+1": seq.Plus, "1": seq.Plus, "-": seq.Minus, "-1": seq.Minus, ".": seq.None} {
		s, ok := ParseStrand(raw)
		c.Assert(ok, qt.IsTrue)
		c.Assert(s, qt.Equals, want)
		if raw == "+" || raw == "-" || raw == "." {
			c.Assert(StrandString(s), qt.Equals, raw)
		}
	}
	_, ok := ParseStrand("?")
	c.Assert(ok, qt.IsFalse)
}

func TestIndexOverlapsAny(t *testing.T) {
	c := qt.New(t)
	idx, err := BuildIndex([]Region{
		{Chrom: "chr1", Start: 990, End: 1010, Strand: seq.Plus},
		{Chrom: "chr1", Start: 3000, End: 3100, Strand: seq.None},
		{Chrom: "chr2", Start: 100, End: 200, Strand: seq.Minus},
	})
	c.Assert(err, qt.IsNil)
	c.Assert(idx.Len(), qt.Equals, 3)
	c.Assert(idx.Chroms(), qt.DeepEquals, []string{"chr1", "chr2"})

	tests := []struct {
		name       string
		chrom      string
		strand     seq.Strand
		start, end int
		want       bool
	}{
		{"same strand", "chr1", seq.Plus, 1000, 1020, true},
		{"other strand", "chr1", seq.Minus, 1000, 1020, false},
		{"touching end", "chr1", seq.Plus, 1010, 1030, false},
		{"wildcard region plus query", "chr1", seq.Plus, 3050, 3060, true},
		{"wildcard region minus query", "chr1", seq.Minus, 3050, 3060, true},
		{"wildcard query", "chr2", seq.None, 150, 160, true},
		{"wildcard query no overlap", "chr2", seq.None, 200, 260, false},
		{"unknown chromosome", "chr3", seq.Plus, 0, 1000000, false},
		{"missing track", "chr2", seq.Plus, 150, 160, false},
	}
	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			c.Assert(idx.OverlapsAny(test.chrom, test.strand, test.start, test.end), qt.Equals, test.want)
		})
	}
}
