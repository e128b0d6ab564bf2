//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package itree indexes the intervals of one track (chromosome and strand)
// for overlap queries.
//
// The underlying store is a left-leaning red-black tree where every node keeps
// the range spanned by its subtree, so queries skip any subtree ending at or
// before the query start or beginning at or after the query end.
package itree

import (
	"github.com/biogo/store/interval"
)

// Tree is an interval tree over a single track. The zero value is an empty tree
// ready to use. A Tree is safe for concurrent queries once insertion is done.
type Tree struct {
	tree interval.IntTree
	next uintptr
}

// Insert adds iv to the tree with annotation as payload. Intervals with equal
// start are kept in insertion order. An error is returned only for an inverted
// interval.
func (t *Tree) Insert(iv Interval, annotation string) (err error) {
	iv.UID = t.next
	iv.Annotation = annotation
	// Ranges are updated along the insertion path
	err = t.tree.Insert(iv, false)
	if err != nil {
		return
	}
	t.next++
	return
}

// Intersect calls visit for every stored interval overlapping q until visit
// returns true. Matches are not reported in any guaranteed order.
func (t *Tree) Intersect(q Interval, visit func(Interval) (done bool)) {
	t.tree.DoMatching(func(iv interval.IntInterface) bool {
		return visit(iv.(Interval))
	}, q)
}

// Get returns all stored intervals overlapping q.
func (t *Tree) Get(q Interval) (ivs []Interval) {
	t.Intersect(q, func(iv Interval) bool {
		ivs = append(ivs, iv)
		return false
	})
	return
}

// Overlaps reports whether any stored interval overlaps q.
func (t *Tree) Overlaps(q Interval) bool {
	if t == nil {
		return false
	}
	found := false
	t.Intersect(q, func(Interval) bool {
		found = true
		return true
	})
	return found
}

// Len returns the number of intervals stored.
func (t *Tree) Len() int {
	return t.tree.Len()
}
