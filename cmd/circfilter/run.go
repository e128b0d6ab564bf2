//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"git.sr.ht/~vejnar/CircFilter/lib/feature"
	"git.sr.ht/~vejnar/CircFilter/lib/filter"
	"git.sr.ht/~vejnar/CircFilter/lib/junction"
	"git.sr.ht/~vejnar/CircFilter/lib/workdir"
	"git.sr.ht/~vejnar/CircFilter/lib/xio"
)

// Temporary files
const (
	tmpWithChrM = "tmp_unsortedWithChrM"
	tmpNoChrM   = "tmp_unsortedNoChrM"
)

type Config struct {
	// Input
	PathCounts        string
	PathCoordinatesIn string
	PathRepeats       string
	FormatRepeats     string
	PathChromMapping  string
	// Filtering
	Filter   filter.Filter
	KeepChrM bool
	// Output
	OutCounts         string
	OutCoordinates    string
	OutputCompression string
	SampleNames       []string
	PathReport        string
	// Run
	TmpDir  string
	KeepTmp bool
	Verbose bool
}

type progress struct {
	start   time.Time
	verbose bool
}

func (p progress) Printf(format string, a ...interface{}) {
	if p.verbose {
		fmt.Printf("%.1fmin - %s\n", time.Since(p.start).Minutes(), fmt.Sprintf(format, a...))
	}
}

// Check validates the configuration.
func (cfg Config) Check() error {
	if cfg.PathCounts == "" {
		return fmt.Errorf("No count input")
	}
	if cfg.OutCounts == "" || cfg.OutCoordinates == "" {
		return fmt.Errorf("No count or coordinates output")
	}
	switch cfg.OutputCompression {
	case xio.None, xio.LZ4, xio.LZ4HC, xio.Gzip, xio.BGZF:
	default:
		return fmt.Errorf("Unknown compression format %q", cfg.OutputCompression)
	}
	if cfg.PathRepeats != "" {
		switch strings.ToLower(cfg.FormatRepeats) {
		case "gtf", "gff", "tab":
		default:
			return fmt.Errorf("Unknown repeat format %q", cfg.FormatRepeats)
		}
	}
	return cfg.Filter.Validate()
}

func readRepeats(cfg Config) (*feature.Index, error) {
	var mapping map[string]string
	if cfg.PathChromMapping != "" {
		var err error
		mapping, err = feature.OpenMapping(cfg.PathChromMapping)
		if err != nil {
			return nil, err
		}
	}
	var regions []feature.Region
	var err error
	switch strings.ToLower(cfg.FormatRepeats) {
	case "gtf", "gff":
		regions, err = feature.OpenGTF(cfg.PathRepeats, mapping)
	case "tab":
		regions, err = feature.OpenTAB(cfg.PathRepeats, mapping)
	}
	if err != nil {
		return nil, err
	}
	return feature.BuildIndex(regions)
}

// Run filters the junctions of cfg.PathCounts and writes the counts and
// coordinates outputs. Nothing is written if no junction is expressed.
// Temporary files are removed before returning.
func Run(cfg Config) (report Report, err error) {
	p := progress{start: time.Now(), verbose: cfg.Verbose}
	if err = cfg.Check(); err != nil {
		return
	}

	wd, err := workdir.New(cfg.TmpDir, cfg.KeepTmp)
	if err != nil {
		return
	}
	defer func() {
		if e := wd.Close(); e != nil {
			log.Printf("Warning: failed to remove %s: %v", wd.Root(), e)
		}
	}()
	p.Printf("Working in %s", wd.Root())

	// Junctions
	var table *junction.Table
	if cfg.PathCoordinatesIn == "" {
		p.Printf("Reading %s", cfg.PathCounts)
		table, err = junction.ReadTable(cfg.PathCounts)
	} else {
		p.Printf("Reading %s and %s", cfg.PathCounts, cfg.PathCoordinatesIn)
		table, err = junction.ReadPair(cfg.PathCounts, cfg.PathCoordinatesIn)
	}
	if err != nil {
		return
	}
	p.Printf("%d junctions, %d samples, %s counts", len(table.Records), table.NSample, table.Mode)
	if len(cfg.SampleNames) > 0 && len(cfg.SampleNames) != table.NSample {
		err = fmt.Errorf("Found %d sample names for %d samples", len(cfg.SampleNames), table.NSample)
		return
	}
	report.Input(table)

	// Expression
	p.Printf("Filtering by read counts")
	table, err = cfg.Filter.ByExpression(table)
	if err != nil {
		return
	}
	report.Expressed = len(table.Records)

	// Repeats
	if cfg.PathRepeats != "" {
		p.Printf("Reading repeats from %s", cfg.PathRepeats)
		var idx *feature.Index
		idx, err = readRepeats(cfg)
		if err != nil {
			return
		}
		report.RepeatRegions = idx.Len()
		p.Printf("Filtering by repeats (%d regions)", idx.Len())
		table, err = cfg.Filter.ByRepeat(table, idx)
		if err != nil {
			return
		}
	}
	report.NonRepeat = len(table.Records)

	// Output
	if err = junction.WriteStackedFile(wd.Path(tmpWithChrM), table); err != nil {
		return
	}
	unsorted := wd.Path(tmpWithChrM)
	if !cfg.KeepChrM {
		p.Printf("Remove ChrM")
		report.ChrM, err = junction.RemoveChrM(unsorted, wd.Path(tmpNoChrM))
		if err != nil {
			return
		}
		unsorted = wd.Path(tmpNoChrM)
	}
	p.Printf("Writing %s and %s", cfg.OutCounts, cfg.OutCoordinates)
	if err = junction.Split(unsorted, cfg.OutCounts, cfg.OutCoordinates, cfg.SampleNames, cfg.OutputCompression); err != nil {
		return
	}
	report.Output(table, !cfg.KeepChrM)

	if cfg.PathReport != "" {
		err = WriteReport(cfg.PathReport, report)
	}
	return
}
