package analysis

import (
	"fmt"
	"math"
	"sort"
)

// CycleState classifies a tracked day by the spacing of its hits.
type CycleState string

const (
	StateNew         CycleState = "new"
	StateNeverHit    CycleState = "never_hit"
	StateJustHit     CycleState = "just_hit"
	StateWithinCycle CycleState = "within_cycle"
	StateOverdueHigh CycleState = "overdue_high"
	StateOverdueLow  CycleState = "overdue_low"
)

// Priorities, lower is more urgent.
const (
	PriorityHigh   = 0
	PriorityMedium = 1
	PriorityLow    = 2
)

// CycleRecord is the cycle classification of one tracked day.
type CycleRecord struct {
	Date   string   `json:"date"`
	Combos ComboSet `json:"combos"`
	// Hits and Misses hold lookback offsets, most recent first.
	Hits        []int   `json:"hits"`
	Misses      []int   `json:"misses"`
	TotalChecks int     `json:"total_checks"`
	AvgCycle    float64 `json:"avg_cycle"`
	// LastHit is the offset of the most recent hit, 0 when there is none.
	LastHit   int        `json:"last_hit"`
	DaysSince int        `json:"days_since"`
	State     CycleState `json:"state"`
	Priority  int        `json:"priority"`
	Overdue   float64    `json:"overdue"`
	Remaining int        `json:"remaining,omitempty"`
}

// Classify runs the cycle state machine over the hit and miss offsets of
// one day. Offsets must be ascending.
func Classify(date string, combos ComboSet, hits, misses []int) CycleRecord {
	r := CycleRecord{
		Date:        date,
		Combos:      combos,
		Hits:        hits,
		Misses:      misses,
		TotalChecks: len(hits) + len(misses),
		Priority:    PriorityLow,
	}

	switch {
	case r.TotalChecks == 0:
		r.State = StateNew
		return r
	case len(hits) == 0:
		r.State = StateNeverHit
		r.Priority = PriorityHigh
		r.Overdue = float64(r.TotalChecks)
		return r
	}

	r.AvgCycle = averageCycle(hits)
	r.LastHit = hits[0]
	r.DaysSince = hits[0] - 1
	since := float64(r.DaysSince)

	switch {
	case r.DaysSince == 0:
		r.State = StateJustHit
	case since < r.AvgCycle:
		r.State = StateWithinCycle
		r.Remaining = int(math.RoundToEven(r.AvgCycle - since))
	default:
		r.Priority = PriorityMedium
		r.Overdue = since - r.AvgCycle
		if r.Overdue > r.AvgCycle*0.5 {
			r.State = StateOverdueHigh
		} else {
			r.State = StateOverdueLow
		}
	}
	return r
}

// averageCycle is the mean gap between consecutive hits, one decimal, or
// the single hit's offset.
func averageCycle(hits []int) float64 {
	if len(hits) == 1 {
		return float64(hits[0])
	}
	sum := 0
	for j := 1; j < len(hits); j++ {
		sum += hits[j] - hits[j-1]
	}
	return round1(float64(sum) / float64(len(hits)-1))
}

// Cycles classifies every tracked day and returns the records in priority
// order.
func Cycles(t *Tracking) []CycleRecord {
	records := make([]CycleRecord, 0, len(t.Days))
	for _, d := range t.Days {
		records = append(records, Classify(d.Date, d.Combos, d.HitOffsets(), d.MissOffsets()))
	}
	SortCycles(records)
	return records
}

// SortCycles orders records by priority, then by overdue days and checks,
// both descending. Equal records keep their relative order.
func SortCycles(records []CycleRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if a.Overdue != b.Overdue {
			return a.Overdue > b.Overdue
		}
		return a.TotalChecks > b.TotalChecks
	})
}

// IsHighPriority reports whether the record has never hit or is well past
// its cycle.
func (r CycleRecord) IsHighPriority() bool {
	return r.State == StateNeverHit || r.State == StateOverdueHigh
}

// HighPriority returns the high-priority records, keeping their order.
func HighPriority(records []CycleRecord) []CycleRecord {
	var out []CycleRecord
	for _, r := range records {
		if r.IsHighPriority() {
			out = append(out, r)
		}
	}
	return out
}

// PriorityLevels groups 00-99 by how many high-priority sets contain each
// number.
func PriorityLevels(records []CycleRecord) LevelGroups {
	var sets [][]string
	for _, r := range HighPriority(records) {
		sets = append(sets, r.Combos)
	}
	return Levels(sets)
}

// Summary describes the record in Vietnamese.
func (r CycleRecord) Summary() string {
	switch r.State {
	case StateNew:
		return "Mới tạo - Chưa có dữ liệu"
	case StateNeverHit:
		return fmt.Sprintf("Chưa ra (%d ngày kiểm tra) - Ưu tiên cao", r.TotalChecks)
	case StateJustHit:
		return "Vừa trúng hôm qua"
	case StateWithinCycle:
		return fmt.Sprintf("Trong chu kỳ (còn ~%d ngày)", r.Remaining)
	case StateOverdueHigh:
		return fmt.Sprintf("Quá chu kỳ %d ngày - Ưu tiên cao", int(math.RoundToEven(r.Overdue)))
	case StateOverdueLow:
		return fmt.Sprintf("Quá chu kỳ %d ngày", int(math.RoundToEven(r.Overdue)))
	}
	return string(r.State)
}

// CycleText renders the average cycle for display.
func (r CycleRecord) CycleText() string {
	switch r.State {
	case StateNew:
		return "N/A"
	case StateNeverHit:
		return "Chưa ra"
	}
	return fmt.Sprintf("%g ngày", r.AvgCycle)
}

// LastHitText renders the most recent hit column, e.g. "N3".
func (r CycleRecord) LastHitText() string {
	switch r.State {
	case StateNew:
		return "N/A"
	case StateNeverHit:
		return "Chưa bao giờ"
	}
	return fmt.Sprintf("N%d", r.LastHit)
}
