//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/fatih/set.v0"

	"git.sr.ht/~vejnar/CircFilter/lib/junction"
)

// Report counts junctions at each filtering step.
type Report struct {
	InputJunctions  int       `json:"input"`
	UniqueJunctions int       `json:"input_unique"`
	Type0           int       `json:"input_type0"`
	Expressed       int       `json:"expressed"`
	RepeatRegions   int       `json:"repeat_regions"`
	NonRepeat       int       `json:"non_repeat"`
	ChrM            int       `json:"chrm_removed"`
	OutputJunctions int       `json:"output"`
	Chroms          []string  `json:"output_chroms"`
	SampleTotals    []float64 `json:"output_sample_totals"`
}

// Input records the input junctions; duplicated chrom/start/end/strand are counted once as unique.
func (r *Report) Input(t *junction.Table) {
	keys := set.New(set.NonThreadSafe)
	for _, rec := range t.Records {
		keys.Add(rec.Key())
		if rec.Type == 0 {
			r.Type0++
		}
	}
	r.InputJunctions = len(t.Records)
	r.UniqueJunctions = keys.Size()
}

// Output records the written junctions, skipping the mitochondrial ones if removed.
func (r *Report) Output(t *junction.Table, noChrM bool) {
	chroms := set.New(set.NonThreadSafe)
	r.SampleTotals = make([]float64, t.NSample)
	r.OutputJunctions = 0
	for _, rec := range t.Records {
		if noChrM && junction.IsChrM(rec.Chrom) {
			continue
		}
		chroms.Add(rec.Chrom)
		floats.Add(r.SampleTotals, rec.Counts)
		r.OutputJunctions++
	}
	r.Chroms = make([]string, 0, chroms.Size())
	for _, c := range chroms.List() {
		r.Chroms = append(r.Chroms, c.(string))
	}
	sort.Strings(r.Chroms)
}

func WriteReport(pathReport string, report Report) (err error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return
	}
	out = append(out, '\n')
	if pathReport == "-" {
		_, err = os.Stdout.Write(out)
		return
	}
	f, err := os.Create(pathReport)
	if err != nil {
		return
	}
	if _, err = f.Write(out); err != nil {
		f.Close()
		return
	}
	return f.Close()
}
