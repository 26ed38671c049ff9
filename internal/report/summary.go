package report

import (
	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// TrackSummary is a tracking matrix with everything derived from it.
type TrackSummary struct {
	Options        analysis.TrackOptions  `json:"options"`
	Stats          analysis.Stats         `json:"stats"`
	Days           []analysis.DayAnalysis `json:"days"`
	PendingLevels  analysis.LevelGroups   `json:"pending_levels"`
	Cycles         []analysis.CycleRecord `json:"cycles"`
	PriorityLevels analysis.LevelGroups   `json:"priority_levels"`
}

// Track builds the tracking matrix and its cycle analysis.
func Track(table *draw.Table, opts analysis.TrackOptions) TrackSummary {
	t := analysis.Track(table, opts)
	cycles := analysis.Cycles(t)
	return TrackSummary{
		Options:        t.Options,
		Stats:          t.Stats(),
		Days:           t.Days,
		PendingLevels:  t.PendingLevels(),
		Cycles:         cycles,
		PriorityLevels: analysis.PriorityLevels(cycles),
	}
}

// GanSummary holds the gan statistics of one prize.
type GanSummary struct {
	Prize   analysis.Compare     `json:"prize"`
	Date    string               `json:"date"`
	Stats   []analysis.GanStat   `json:"stats"`
	Numbers []analysis.NumberGan `json:"numbers"`
}

// Gan computes the gan statistics over the prize tails of table. top limits
// the per-number list; a negative top keeps every number.
func Gan(table *draw.Table, prize analysis.Compare, top int) GanSummary {
	tails := table.SpecialTails()
	if prize == analysis.CompareFirst {
		tails = table.FirstTails()
	}

	s := GanSummary{
		Prize:   prize,
		Stats:   analysis.Gan(tails),
		Numbers: analysis.GanNumbers(tails, top),
	}
	if rows := table.Head(1); len(rows) > 0 {
		s.Date = rows[0].Date
	}
	return s
}

// Post formats the summary as a shareable text post.
func (s GanSummary) Post() string {
	return GanPost(s.Prize, s.Date, s.Stats)
}

// FreqSummary holds the rolling digit and pair frequency windows.
type FreqSummary struct {
	Width  int                        `json:"width"`
	Digits []analysis.FrequencyWindow `json:"digits"`
	Pairs  []analysis.FrequencyWindow `json:"pairs"`
}

// Freq counts digits and pairs over WindowWidth-day windows within the
// newest show rows.
func Freq(table *draw.Table, show int) FreqSummary {
	return FreqSummary{
		Width:  analysis.WindowWidth,
		Digits: analysis.DigitWindows(table, show, analysis.WindowWidth),
		Pairs:  analysis.PairWindows(table, show, analysis.WindowWidth),
	}
}
