package revenue

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rpnorth/LichtBlick-Case-Study/internal/domain/entity"
)

// matchedRow is a working segment joined with its base segment, if any.
type matchedRow struct {
	working        workingSegment
	baseCostPeriod float64
	hasBase        bool
}

// revenue is the total € of the row; a missing base side counts as 0.
func (m matchedRow) revenue() float64 {
	return m.baseCostPeriod + m.working.workingCostPeriod
}

// mergeAsOf pairs every working segment with the latest base segment of the same
// contract whose dateFrom is at or before the working segment's dateFrom.
// Both inputs are sorted in place by (contract id, dateFrom, seq) and then walked
// with two pointers; among base segments with equal dateFrom the last one wins.
func mergeAsOf(working []workingSegment, base []baseSegment) []matchedRow {
	sort.SliceStable(working, func(i, j int) bool {
		a, b := working[i], working[j]
		return segmentLess(a.contractID, a.dateFrom, a.seq, b.contractID, b.dateFrom, b.seq)
	})
	sort.SliceStable(base, func(i, j int) bool {
		a, b := base[i], base[j]
		return segmentLess(a.contractID, a.dateFrom, a.seq, b.contractID, b.dateFrom, b.seq)
	})

	rows := make([]matchedRow, 0, len(working))
	j := 0
	var current *baseSegment
	for i := range working {
		w := working[i]
		if current != nil && current.contractID != w.contractID {
			current = nil
		}
		for j < len(base) {
			b := &base[j]
			cmp := compareIDs(b.contractID, w.contractID)
			if cmp < 0 {
				j++
				continue
			}
			if cmp == 0 && !b.dateFrom.After(w.dateFrom) {
				current = b
				j++
				continue
			}
			break
		}

		row := matchedRow{working: w}
		if current != nil {
			row.baseCostPeriod = current.baseCostPeriod
			row.hasBase = true
		}
		rows = append(rows, row)
	}
	return rows
}

// segmentLess orders by contract id, then dateFrom, then seq.
func segmentLess(idA string, fromA entity.Date, seqA int, idB string, fromB entity.Date, seqB int) bool {
	if c := compareIDs(idA, idB); c != 0 {
		return c < 0
	}
	if c := fromA.Compare(fromB); c != 0 {
		return c < 0
	}
	return seqA < seqB
}

// compareIDs orders numeric ids numerically and before any non-numeric id;
// non-numeric ids compare as strings. Only identical strings compare equal,
// so "7" and "007" stay two contracts.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return strings.Compare(a, b)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}
