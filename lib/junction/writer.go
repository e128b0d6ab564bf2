//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package junction

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~vejnar/CircFilter/lib/feature"
	"git.sr.ht/~vejnar/CircFilter/lib/xio"
)

// Columns of the stacked table before the counts
const numberOfStackedCoordFields = 6

// WriteStacked writes one line per record: chr, start, end, strand, type, descriptor and counts.
func WriteStacked(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for _, r := range t.Records {
		bw.WriteString(r.Chrom)
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.Start))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.End))
		bw.WriteByte('\t')
		bw.WriteString(feature.StrandString(r.Strand))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(r.Type))
		bw.WriteByte('\t')
		bw.WriteString(r.Descriptor)
		for i := range r.Counts {
			bw.WriteByte('\t')
			bw.WriteString(r.FormatCount(i, t.Mode))
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteStackedFile writes the stacked table to path.
func WriteStackedFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = WriteStacked(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RemoveChrM copies the stacked table inPath to outPath without lines on the
// mitochondrial chromosome and returns the number of lines removed.
func RemoveChrM(inPath, outPath string) (removed int, err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return
	}
	defer in.Close()
	out, err := os.Create(outPath)
	if err != nil {
		return
	}
	defer func() {
		if e := out.Close(); e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(out)
	tscanner := bufio.NewScanner(in)
	tscanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for tscanner.Scan() {
		line := tscanner.Text()
		chrom := line
		if i := strings.IndexByte(line, '\t'); i >= 0 {
			chrom = line[:i]
		}
		if IsChrM(chrom) {
			removed++
			continue
		}
		bw.WriteString(line)
		if _, err = bw.WriteString("\n"); err != nil {
			return
		}
	}
	if err = tscanner.Err(); err != nil {
		return
	}
	err = bw.Flush()
	return
}

// Split writes the stacked table inPath to a counts file (chr, start, end and
// counts) and a coordinates file (chr, start, end, strand, type and descriptor).
// If sampleNames is not empty, the counts file starts with a header line.
func Split(inPath, countPath, coordPath string, sampleNames []string, compression string) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return
	}
	defer in.Close()

	count, err := xio.Create(countPath, compression)
	if err != nil {
		return
	}
	defer func() {
		if e := count.Close(); e != nil && err == nil {
			err = e
		}
	}()
	coor, err := xio.Create(coordPath, compression)
	if err != nil {
		return
	}
	defer func() {
		if e := coor.Close(); e != nil && err == nil {
			err = e
		}
	}()

	if len(sampleNames) > 0 {
		if _, err = io.WriteString(count, "Chr\tStart\tEnd\t"+strings.Join(sampleNames, "\t")+"\n"); err != nil {
			return
		}
	}
	tscanner := bufio.NewScanner(in)
	tscanner.Buffer(make([]byte, 64*1024), maxLineLength)
	for tscanner.Scan() {
		fields := strings.Split(tscanner.Text(), "\t")
		if len(fields) < numberOfStackedCoordFields {
			continue
		}
		countFields := append(fields[:3:3], fields[numberOfStackedCoordFields:]...)
		if _, err = io.WriteString(count, strings.Join(countFields, "\t")+"\n"); err != nil {
			return
		}
		if _, err = io.WriteString(coor, strings.Join(fields[:numberOfStackedCoordFields], "\t")+"\n"); err != nil {
			return
		}
	}
	err = tscanner.Err()
	return
}
