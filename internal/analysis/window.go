package analysis

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// WindowWidth is the number of draws in a frequency window.
const WindowWidth = 7

// CountGroup lists the values that occurred Count times in a window.
type CountGroup struct {
	Count  int      `json:"count"`
	Values []string `json:"values"`
}

// FrequencyWindow counts values over the draws ending at Date.
type FrequencyWindow struct {
	Date    string         `json:"date"`
	Result  []string       `json:"result"`
	Special string         `json:"special,omitempty"`
	Counts  map[string]int `json:"counts"`
	// Groups holds every count, highest first.
	Groups []CountGroup `json:"groups"`
	Top    []CountGroup `json:"top"`
}

// DigitWindows counts the digits 0-9 in the Điện Toán results of each
// width-day window within the newest show rows. Top holds the three highest
// count groups.
func DigitWindows(table *draw.Table, show, width int) []FrequencyWindow {
	keys := make([]string, 10)
	for d := range keys {
		keys[d] = strconv.Itoa(d)
	}
	return windows(table.Head(show), width, keys, 3)
}

// PairWindows counts 00-99 as substrings of the concatenated Điện Toán
// results of each window. Top holds the two highest count groups.
func PairWindows(table *draw.Table, show, width int) []FrequencyWindow {
	return windows(table.Head(show), width, allNumbers(), 2)
}

func windows(rows []draw.Row, width int, keys []string, top int) []FrequencyWindow {
	if width <= 0 {
		width = WindowWidth
	}
	out := []FrequencyWindow{}
	for i := 0; i+width <= len(rows); i++ {
		var merged strings.Builder
		for _, r := range rows[i : i+width] {
			merged.WriteString(r.DigitsJoined())
		}
		text := merged.String()

		counts := make(map[string]int, len(keys))
		for _, k := range keys {
			counts[k] = strings.Count(text, k)
		}

		groups := groupCounts(counts)
		out = append(out, FrequencyWindow{
			Date:    rows[i].Date,
			Result:  rows[i].Digits,
			Special: rows[i].Special,
			Counts:  counts,
			Groups:  groups,
			Top:     groups[:min(top, len(groups))],
		})
	}
	return out
}

func groupCounts(counts map[string]int) []CountGroup {
	byCount := make(map[int][]string)
	for k, c := range counts {
		byCount[c] = append(byCount[c], k)
	}

	groups := make([]CountGroup, 0, len(byCount))
	for c, values := range byCount {
		sort.Strings(values)
		groups = append(groups, CountGroup{Count: c, Values: values})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}
