package analysis

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		hits          []int
		misses        []int
		wantState     CycleState
		wantPriority  int
		wantAvg       float64
		wantOverdue   float64
		wantRemaining int
	}{
		{
			name:         "no checks",
			wantState:    StateNew,
			wantPriority: PriorityLow,
		},
		{
			name:         "never hit",
			misses:       []int{1, 2, 3},
			wantState:    StateNeverHit,
			wantPriority: PriorityHigh,
			wantOverdue:  3,
		},
		{
			name:         "hit yesterday",
			hits:         []int{1},
			misses:       []int{2},
			wantState:    StateJustHit,
			wantPriority: PriorityLow,
			wantAvg:      1,
		},
		{
			name:          "single hit within cycle",
			hits:          []int{3},
			wantState:     StateWithinCycle,
			wantPriority:  PriorityLow,
			wantAvg:       3,
			wantRemaining: 1,
		},
		{
			name:          "two hits within cycle",
			hits:          []int{2, 5},
			misses:        []int{1, 3, 4},
			wantState:     StateWithinCycle,
			wantPriority:  PriorityLow,
			wantAvg:       3,
			wantRemaining: 2,
		},
		{
			name:         "well past cycle",
			hits:         []int{3, 4},
			misses:       []int{1, 2},
			wantState:    StateOverdueHigh,
			wantPriority: PriorityMedium,
			wantAvg:      1,
			wantOverdue:  1,
		},
		{
			name:         "slightly past cycle",
			hits:         []int{6, 10},
			misses:       []int{1, 2, 3, 4, 5, 7, 8, 9},
			wantState:    StateOverdueLow,
			wantPriority: PriorityMedium,
			wantAvg:      4,
			wantOverdue:  1,
		},
		{
			name:         "average rounded to one decimal",
			hits:         []int{2, 3, 5, 6},
			misses:       []int{1, 4},
			wantState:    StateWithinCycle,
			wantPriority: PriorityLow,
			// gaps 1, 2, 1
			wantAvg:       1.3,
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify("15/10/2024", Combos("12"), tt.hits, tt.misses)

			if r.State != tt.wantState {
				t.Errorf("State = %s, want %s", r.State, tt.wantState)
			}
			if r.Priority != tt.wantPriority {
				t.Errorf("Priority = %d, want %d", r.Priority, tt.wantPriority)
			}
			if r.AvgCycle != tt.wantAvg {
				t.Errorf("AvgCycle = %v, want %v", r.AvgCycle, tt.wantAvg)
			}
			if r.Overdue != tt.wantOverdue {
				t.Errorf("Overdue = %v, want %v", r.Overdue, tt.wantOverdue)
			}
			if r.Remaining != tt.wantRemaining {
				t.Errorf("Remaining = %d, want %d", r.Remaining, tt.wantRemaining)
			}
			if r.TotalChecks != len(tt.hits)+len(tt.misses) {
				t.Errorf("TotalChecks = %d", r.TotalChecks)
			}
		})
	}
}

func TestClassify_SingleHitDaysSince(t *testing.T) {
	r := Classify("d", nil, []int{3}, nil)
	if r.DaysSince != 2 {
		t.Errorf("DaysSince = %d, want 2", r.DaysSince)
	}
	if r.LastHit != 3 {
		t.Errorf("LastHit = %d, want 3", r.LastHit)
	}
}

func TestSortCycles(t *testing.T) {
	records := []CycleRecord{
		{Date: "within", State: StateWithinCycle, Priority: PriorityLow, TotalChecks: 4},
		{Date: "never-5", State: StateNeverHit, Priority: PriorityHigh, Overdue: 5, TotalChecks: 5},
		{Date: "overdue", State: StateOverdueHigh, Priority: PriorityMedium, Overdue: 2.5, TotalChecks: 8},
		{Date: "never-9", State: StateNeverHit, Priority: PriorityHigh, Overdue: 9, TotalChecks: 9},
		{Date: "new-a", State: StateNew, Priority: PriorityLow},
		{Date: "just-hit", State: StateJustHit, Priority: PriorityLow, TotalChecks: 4},
		{Date: "new-b", State: StateNew, Priority: PriorityLow},
	}

	SortCycles(records)

	want := []string{"never-9", "never-5", "overdue", "within", "just-hit", "new-a", "new-b"}
	for i, r := range records {
		if r.Date != want[i] {
			t.Errorf("position %d = %s, want %s", i, r.Date, want[i])
		}
	}
}

func TestCycles_FromTracking(t *testing.T) {
	records := Cycles(Track(sampleTable(), TrackOptions{}))

	want := []struct {
		date  string
		state CycleState
	}{
		{"14/10/2024", StateNeverHit},
		{"16/10/2024", StateNeverHit},
		{"15/10/2024", StateJustHit},
		{"17/10/2024", StateNew},
	}

	if len(records) != len(want) {
		t.Fatalf("Cycles() returned %d records, want %d", len(records), len(want))
	}
	for i, w := range want {
		if records[i].Date != w.date || records[i].State != w.state {
			t.Errorf("record %d = %s/%s, want %s/%s", i, records[i].Date, records[i].State, w.date, w.state)
		}
	}

	high := HighPriority(records)
	if len(high) != 2 {
		t.Fatalf("HighPriority() = %d records, want 2", len(high))
	}

	levels := PriorityLevels(records)
	if levels.Total() != 100 {
		t.Errorf("PriorityLevels().Total() = %d, want 100", levels.Total())
	}
	// 5678 and 0000 share no digits, so no number reaches level 2.
	if levels.Max() != 1 {
		t.Errorf("PriorityLevels().Max() = %d, want 1", levels.Max())
	}
}

func TestCycleRecord_Text(t *testing.T) {
	tests := []struct {
		name        string
		record      CycleRecord
		wantSummary string
		wantCycle   string
		wantLast    string
	}{
		{
			name:        "new",
			record:      Classify("d", nil, nil, nil),
			wantSummary: "Mới tạo - Chưa có dữ liệu",
			wantCycle:   "N/A",
			wantLast:    "N/A",
		},
		{
			name:        "never hit",
			record:      Classify("d", nil, nil, []int{1, 2}),
			wantSummary: "Chưa ra (2 ngày kiểm tra) - Ưu tiên cao",
			wantCycle:   "Chưa ra",
			wantLast:    "Chưa bao giờ",
		},
		{
			name:        "within cycle",
			record:      Classify("d", nil, []int{3}, nil),
			wantSummary: "Trong chu kỳ (còn ~1 ngày)",
			wantCycle:   "3 ngày",
			wantLast:    "N3",
		},
		{
			name:        "overdue",
			record:      Classify("d", nil, []int{3, 4}, []int{1, 2}),
			wantSummary: "Quá chu kỳ 1 ngày - Ưu tiên cao",
			wantCycle:   "1 ngày",
			wantLast:    "N3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Summary(); got != tt.wantSummary {
				t.Errorf("Summary() = %q, want %q", got, tt.wantSummary)
			}
			if got := tt.record.CycleText(); got != tt.wantCycle {
				t.Errorf("CycleText() = %q, want %q", got, tt.wantCycle)
			}
			if got := tt.record.LastHitText(); got != tt.wantLast {
				t.Errorf("LastHitText() = %q, want %q", got, tt.wantLast)
			}
		})
	}
}

func TestAverageCycle(t *testing.T) {
	tests := []struct {
		hits []int
		want float64
	}{
		{[]int{4}, 4},
		{[]int{2, 3, 5, 6}, 1.3},
		{[]int{1, 2, 4, 5, 6}, 1.2},
		{[]int{1, 4, 5, 8, 11}, 2.5},
	}

	for _, tt := range tests {
		if got := averageCycle(tt.hits); got != tt.want {
			t.Errorf("averageCycle(%v) = %v, want %v", tt.hits, got, tt.want)
		}
	}
}
