//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package filter removes lowly expressed junctions and junctions flanked by repeats.
package filter

import (
	"errors"
	"fmt"

	"github.com/biogo/biogo/seq"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~vejnar/CircFilter/lib/junction"
)

// Number of records checked by a worker at once
const chunkLength = 1024

// ErrNoneExpressed is returned when no junction passes the expression filter.
var ErrNoneExpressed = errors.New("No circRNA passed the expression threshold filtering.")

// Overlapper answers whether an interval overlaps any indexed region.
type Overlapper interface {
	OverlapsAny(chrom string, strand seq.Strand, start, end int) bool
}

type Filter struct {
	// Length of the windows checked for repeats at both ends of a junction
	Length int
	// Minimum count in a sample
	CountThreshold int
	// Minimum number of samples reaching CountThreshold
	ReplicateThreshold int
	// Number of goroutines checking repeats
	Workers int
}

// Validate checks the filter parameters.
func (f Filter) Validate() error {
	if f.CountThreshold < 0 {
		return fmt.Errorf("Count threshold must be positive or null (%d)", f.CountThreshold)
	}
	if f.ReplicateThreshold < 0 {
		return fmt.Errorf("Replicate threshold must be positive or null (%d)", f.ReplicateThreshold)
	}
	if f.Length < 1 {
		return fmt.Errorf("Minimum length must be positive (%d)", f.Length)
	}
	return nil
}

// Expressed reports whether r has at least ReplicateThreshold samples with a
// count of CountThreshold or more. Junctions of type 0 are never expressed.
func (f Filter) Expressed(r junction.Record) bool {
	if r.Type == 0 {
		return false
	}
	var n int
	threshold := float64(f.CountThreshold)
	for _, c := range r.Counts {
		if c >= threshold {
			n++
		}
	}
	return n >= f.ReplicateThreshold
}

// ByExpression returns the expressed junctions of t, or ErrNoneExpressed if there are none.
func (f Filter) ByExpression(t *junction.Table) (*junction.Table, error) {
	keep := make([]bool, len(t.Records))
	var n int
	for i, r := range t.Records {
		if f.Expressed(r) {
			keep[i] = true
			n++
		}
	}
	if n == 0 {
		return nil, ErrNoneExpressed
	}
	return t.Subset(keep), nil
}

// Windows returns the windows of Length bases starting at the junction start
// and ending at the junction end.
func (f Filter) Windows(r junction.Record) (left, right [2]int) {
	left = [2]int{r.Start, r.Start + f.Length}
	right = [2]int{r.End - f.Length, r.End}
	return
}

// InRepeat reports whether either window of r overlaps a region of idx.
func (f Filter) InRepeat(r junction.Record, idx Overlapper) bool {
	left, right := f.Windows(r)
	return idx.OverlapsAny(r.Chrom, r.Strand, left[0], left[1]) || idx.OverlapsAny(r.Chrom, r.Strand, right[0], right[1])
}

// ByRepeat returns the junctions of t with both windows free of repeats.
// All junctions are kept if idx is nil.
func (f Filter) ByRepeat(t *junction.Table, idx Overlapper) (*junction.Table, error) {
	if idx == nil {
		return t, nil
	}
	keep := make([]bool, len(t.Records))
	workers := f.Workers
	if workers < 1 {
		workers = 1
	}
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for start := 0; start < len(t.Records); start += chunkLength {
		start, end := start, start+chunkLength
		if end > len(t.Records) {
			end = len(t.Records)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				keep[i] = !f.InRepeat(t.Records[i], idx)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return t.Subset(keep), nil
}
