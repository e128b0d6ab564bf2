//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// circfilter filters candidate circRNA junctions by expression and removes
// junctions with either end in a repeat region.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"git.sr.ht/~vejnar/CircFilter/lib/filter"
)

var version = "DEV"

func main() {
	// Arguments: General
	var pathReport, tmpDir string
	var nWorker int
	var keepTmp, verbose, printVersion bool
	flag.StringVar(&pathReport, "path_report", "", "Write report to path (stdout with -)")
	flag.StringVar(&tmpDir, "tmp_dir", "", "Directory for temporary files (default system temporary directory)")
	flag.IntVar(&nWorker, "num_worker", 1, "Number of worker(s)")
	flag.BoolVar(&keepTmp, "keep_tmp", false, "Keep temporary files")
	flag.BoolVar(&verbose, "verbose", false, "Verbose")
	flag.BoolVar(&printVersion, "version", false, "Print version and quit")
	// Arguments: Input
	var pathCounts, pathCoordinatesIn, pathRepeats, formatRepeats, pathChromMapping string
	flag.StringVar(&pathCounts, "path_counts", "", "Path to junction counts (chr, start, end, strand, type, counts or DCC count file with -path_coordinates_in)")
	flag.StringVar(&pathCoordinatesIn, "path_coordinates_in", "", "Path to DCC junction coordinates (chr, start, end, gene, type, strand) matching -path_counts")
	flag.StringVar(&pathRepeats, "path_repeats", "", "Path to repeat regions (no repeat filtering if empty)")
	flag.StringVar(&formatRepeats, "format_repeats", "GTF", "Format of repeat regions file: 'GTF' (GTF, GFF2 or GFF3) or 'tab'")
	flag.StringVar(&pathChromMapping, "path_chrom_mapping", "", "Path to chromosome name(s) mapping applied to repeat regions (tabulated file)")
	// Arguments: Filtering
	var minLength, countThreshold, replicateThreshold int
	var keepChrM bool
	flag.IntVar(&minLength, "min_length", 50, "Length of the windows at both junction ends checked for repeats")
	flag.IntVar(&countThreshold, "count_threshold", 2, "Minimum junction count in a sample")
	flag.IntVar(&replicateThreshold, "replicate_threshold", 5, "Minimum number of samples with count_threshold")
	flag.BoolVar(&keepChrM, "keep_chrm", false, "Keep junctions on the mitochondrial chromosome (chrM or MT)")
	// Arguments: Output
	var outCounts, outCoordinates, outputCompression, sampleNamesRaw string
	flag.StringVar(&outCounts, "out_counts", "CircRNACount", "Path to filtered counts output")
	flag.StringVar(&outCoordinates, "out_coordinates", "CircCoordinates", "Path to filtered coordinates output")
	flag.StringVar(&outputCompression, "output_compression", "", "Output compression: 'lz4', 'lz4hc', 'gzip' or 'bgzf' (default none)")
	flag.StringVar(&sampleNamesRaw, "sample_names", "", "Sample name(s) for the counts header (comma separated)")
	// Arguments: Parse
	flag.Parse()

	// Version
	if printVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Max CPU
	runtime.GOMAXPROCS(nWorker * 2)

	// Check arguments
	if len(pathCounts) == 0 {
		log.Fatal("No count input")
	} else if _, err := os.Stat(pathCounts); os.IsNotExist(err) {
		log.Fatalln(pathCounts, "not found")
	}
	if pathCoordinatesIn != "" {
		if _, err := os.Stat(pathCoordinatesIn); os.IsNotExist(err) {
			log.Fatalln(pathCoordinatesIn, "not found")
		}
	}
	if pathRepeats != "" {
		if _, err := os.Stat(pathRepeats); os.IsNotExist(err) {
			log.Fatalln(pathRepeats, "not found")
		}
	}

	// Parse raw arguments
	var sampleNames []string
	if len(sampleNamesRaw) > 0 {
		sampleNames = strings.Split(sampleNamesRaw, ",")
	}

	cfg := Config{
		PathCounts:        pathCounts,
		PathCoordinatesIn: pathCoordinatesIn,
		PathRepeats:       pathRepeats,
		FormatRepeats:     formatRepeats,
		PathChromMapping:  pathChromMapping,
		Filter:            filter.Filter{Length: minLength, CountThreshold: countThreshold, ReplicateThreshold: replicateThreshold, Workers: nWorker},
		KeepChrM:          keepChrM,
		OutCounts:         outCounts,
		OutCoordinates:    outCoordinates,
		OutputCompression: strings.ToLower(outputCompression),
		SampleNames:       sampleNames,
		PathReport:        pathReport,
		TmpDir:            tmpDir,
		KeepTmp:           keepTmp,
		Verbose:           verbose,
	}
	report, err := Run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Verbose
	if verbose {
		fmt.Printf("Done: %d of %d junction(s) kept\n", report.OutputJunctions, report.InputJunctions)
	}
}
