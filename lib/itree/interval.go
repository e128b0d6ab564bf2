//
// Copyright (C) 2015-2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package itree

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// Interval is a half-open [Start,End) interval on a single track.
type Interval struct {
	Start, End int
	UID        uintptr
	Annotation string
}

// Overlap reports whether b shares at least one base with i.
// Intervals touching at a boundary do not overlap.
func (i Interval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End > b.Start && i.Start < b.End
}

func (i Interval) ID() uintptr {
	return i.UID
}

func (i Interval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d)#%d-%s", i.Start, i.End, i.UID, i.Annotation)
}

