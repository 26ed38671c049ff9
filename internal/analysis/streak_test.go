package analysis

import (
	"reflect"
	"testing"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

func TestStraightDigits(t *testing.T) {
	tests := []struct {
		today, previous string
		want            []string
	}{
		{"12345", "12399", []string{"1", "2", "3"}},
		{"12399", "55345", []string{"3"}},
		{"11111", "11111", []string{"1"}},
		{"12345", "54321", []string{"3"}},
		{"12345", "67890", nil},
		{"123", "12345", []string{"1", "2", "3"}},
	}

	for _, tt := range tests {
		got := StraightDigits(tt.today, tt.previous)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("StraightDigits(%q, %q) = %v, want %v", tt.today, tt.previous, got, tt.want)
		}
	}
}

func TestStreaks(t *testing.T) {
	table := tableOf(
		draw.Row{Date: "18/10/2024", Special: "12345"},
		draw.Row{Date: "17/10/2024", Special: "12399"},
		draw.Row{Date: "16/10/2024", Special: "55345"},
		draw.Row{Date: "15/10/2024", Special: ""},
		draw.Row{Date: "14/10/2024", Special: "55345"},
		draw.Row{Date: "13/10/2024", Special: "67890"},
	)

	streaks := Streaks(table, 10)

	want := []Streak{
		{Date: "18/10/2024", Today: "12345", Previous: "12399", Digits: []string{"1", "2", "3"}},
		{Date: "17/10/2024", Today: "12399", Previous: "55345", Digits: []string{"3"}},
	}
	if !reflect.DeepEqual(streaks, want) {
		t.Errorf("Streaks() = %+v, want %+v", streaks, want)
	}

	if got := Streaks(table, 2); len(got) != 1 {
		t.Errorf("Streaks(show=2) = %d entries, want 1", len(got))
	}
	if got := Streaks(nil, 10); len(got) != 0 {
		t.Errorf("Streaks(nil) = %v", got)
	}
}
