//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"sort"

	"github.com/biogo/biogo/seq"

	"git.sr.ht/~vejnar/CircFilter/lib/itree"
)

// Index holds one interval tree per chromosome and strand. Regions without
// strand (".") are stored in their own track and match queries on any strand.
type Index struct {
	trees map[string]map[seq.Strand]*itree.Tree
	n     int
}

// BuildIndex builds a tree of repeat regions: each region is added to the tree of its chromosome and strand.
func BuildIndex(regions []Region) (idx *Index, err error) {
	idx = &Index{trees: make(map[string]map[seq.Strand]*itree.Tree)}
	for _, r := range regions {
		// New tree for unseen chromosome or strand
		if _, ok := idx.trees[r.Chrom]; !ok {
			idx.trees[r.Chrom] = make(map[seq.Strand]*itree.Tree)
		}
		tree, ok := idx.trees[r.Chrom][r.Strand]
		if !ok {
			tree = &itree.Tree{}
			idx.trees[r.Chrom][r.Strand] = tree
		}
		// Inserting interval
		err = tree.Insert(itree.Interval{Start: r.Start, End: r.End}, ".")
		if err != nil {
			return
		}
		idx.n++
	}
	return
}

// OverlapsAny reports whether [start,end) on chrom overlaps a region of the
// same strand or a region without strand. A query without strand matches
// regions on every strand. Unknown chromosomes never overlap, nor does a nil Index.
func (idx *Index) OverlapsAny(chrom string, strand seq.Strand, start, end int) bool {
	if idx == nil {
		return false
	}
	tracks, ok := idx.trees[chrom]
	if !ok {
		return false
	}
	q := itree.Interval{Start: start, End: end}
	if strand == seq.None {
		for _, tree := range tracks {
			if tree.Overlaps(q) {
				return true
			}
		}
		return false
	}
	return tracks[strand].Overlaps(q) || tracks[seq.None].Overlaps(q)
}

// Len returns the number of indexed regions.
func (idx *Index) Len() int {
	return idx.n
}

// Chroms returns the sorted chromosome names present in the index.
func (idx *Index) Chroms() []string {
	chroms := make([]string, 0, len(idx.trees))
	for k := range idx.trees {
		chroms = append(chroms, k)
	}
	sort.Strings(chroms)
	return chroms
}
