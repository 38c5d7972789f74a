package scheduling

import (
	"sort"
	"time"
)

// Interval is a half-open time range [Start, End). Two intervals overlap iff
// a.Start < b.End && b.Start < a.End, so touching endpoints do not conflict.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Slot is a candidate free booking window of exactly one treatment's
// duration. Slots are derived per query and never persisted.
type Slot = Interval

// Overlaps reports whether the two half-open intervals share any point.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// mergeIntervals sorts busy intervals by start and collapses overlapping or
// adjacent ones into a disjoint ascending list.
func mergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtractIntervals walks the window from start to end removing each busy
// interval, returning the complementary free sub-intervals in order. busy
// must already be merged and sorted.
func subtractIntervals(window Interval, busy []Interval) []Interval {
	var free []Interval
	cursor := window.Start

	for _, b := range busy {
		if !b.End.After(window.Start) || !b.Start.Before(window.End) {
			continue
		}
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, Interval{Start: cursor, End: window.End})
	}
	return free
}
