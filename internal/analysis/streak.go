package analysis

import "github.com/pfrederiksen/xoso-stats/internal/draw"

// Streak is a pair of consecutive special prizes sharing digits in the same
// positions.
type Streak struct {
	Date     string   `json:"date"`
	Today    string   `json:"today"`
	Previous string   `json:"previous"`
	Digits   []string `json:"digits"`
}

// StraightDigits returns the digits that appear at the same position in both
// numbers, in position order without repeats.
func StraightDigits(today, previous string) []string {
	var out []string
	seen := make(map[byte]bool)
	for i := 0; i < min(len(today), len(previous)); i++ {
		c := today[i]
		if c != previous[i] || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, string(c))
	}
	return out
}

// Streaks scans the newest show rows and reports every day whose special
// prize repeats digits of the previous draw in place. Rows missing either
// prize are skipped.
func Streaks(table *draw.Table, show int) []Streak {
	rows := table.Head(show)
	out := []Streak{}
	for i := 0; i+1 < len(rows); i++ {
		curr, prev := rows[i].Special, rows[i+1].Special
		if curr == "" || prev == "" {
			continue
		}
		if digits := StraightDigits(curr, prev); len(digits) > 0 {
			out = append(out, Streak{
				Date:     rows[i].Date,
				Today:    curr,
				Previous: prev,
				Digits:   digits,
			})
		}
	}
	return out
}
