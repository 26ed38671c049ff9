package analysis

import (
	"reflect"
	"testing"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// windowTable returns eight rows: the newest drew 4 4 5, the rest 1 2 3.
func windowTable() *draw.Table {
	rows := []draw.Row{{Date: "20/10/2024", Digits: []string{"4", "4", "5"}, Special: "00045"}}
	for i := 0; i < 7; i++ {
		rows = append(rows, draw.Row{Date: "older", Digits: []string{"1", "2", "3"}})
	}
	return tableOf(rows...)
}

func TestDigitWindows(t *testing.T) {
	windows := DigitWindows(windowTable(), 20, WindowWidth)
	if len(windows) != 2 {
		t.Fatalf("DigitWindows() = %d windows, want 2", len(windows))
	}

	newest := windows[0]
	if newest.Date != "20/10/2024" || newest.Special != "00045" {
		t.Errorf("newest window = %s/%s", newest.Date, newest.Special)
	}
	if newest.Counts["1"] != 6 || newest.Counts["4"] != 2 || newest.Counts["5"] != 1 || newest.Counts["0"] != 0 {
		t.Errorf("counts = %v", newest.Counts)
	}

	wantTop := []CountGroup{
		{Count: 6, Values: []string{"1", "2", "3"}},
		{Count: 2, Values: []string{"4"}},
		{Count: 1, Values: []string{"5"}},
	}
	if !reflect.DeepEqual(newest.Top, wantTop) {
		t.Errorf("Top = %+v, want %+v", newest.Top, wantTop)
	}
	if len(newest.Groups) != 4 {
		t.Errorf("Groups = %d, want 4", len(newest.Groups))
	}

	oldest := windows[1]
	wantOldest := []CountGroup{
		{Count: 7, Values: []string{"1", "2", "3"}},
		{Count: 0, Values: []string{"0", "4", "5", "6", "7", "8", "9"}},
	}
	if !reflect.DeepEqual(oldest.Top, wantOldest) {
		t.Errorf("oldest Top = %+v, want %+v", oldest.Top, wantOldest)
	}
}

func TestPairWindows(t *testing.T) {
	windows := PairWindows(windowTable(), 20, WindowWidth)
	if len(windows) != 2 {
		t.Fatalf("PairWindows() = %d windows, want 2", len(windows))
	}

	// 445 followed by six 123 draws
	wantNewest := []CountGroup{
		{Count: 6, Values: []string{"12", "23"}},
		{Count: 5, Values: []string{"31"}},
	}
	if !reflect.DeepEqual(windows[0].Top, wantNewest) {
		t.Errorf("newest Top = %+v, want %+v", windows[0].Top, wantNewest)
	}
	if windows[0].Counts["44"] != 1 || windows[0].Counts["51"] != 1 {
		t.Errorf("counts 44=%d 51=%d, want 1 each", windows[0].Counts["44"], windows[0].Counts["51"])
	}

	total := 0
	for _, g := range windows[1].Groups {
		total += len(g.Values)
	}
	if total != 100 {
		t.Errorf("groups hold %d pairs, want 100", total)
	}
}

func TestWindows_ShortTable(t *testing.T) {
	table := windowTable()

	if got := DigitWindows(table, 6, WindowWidth); len(got) != 0 {
		t.Errorf("DigitWindows(show=6) = %d windows, want 0", len(got))
	}
	if got := PairWindows(table, 7, WindowWidth); len(got) != 1 {
		t.Errorf("PairWindows(show=7) = %d windows, want 1", len(got))
	}
	if got := DigitWindows(nil, 20, WindowWidth); len(got) != 0 {
		t.Errorf("DigitWindows(nil) = %d windows", len(got))
	}
}
