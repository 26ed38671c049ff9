package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// DefaultWindow is how many source days Track follows when no window is set.
const DefaultWindow = 20

// Source selects the number a tracked day's combinations are built from.
type Source string

const (
	SourceSweepstake Source = "sweepstake"
	SourceDigits     Source = "digits"
)

// Compare selects the prize whose tail is checked against the combinations.
type Compare string

const (
	CompareSpecial Compare = "special"
	CompareFirst   Compare = "first"
)

// ParseSource validates a source selector name.
func ParseSource(name string) (Source, error) {
	switch s := Source(strings.ToLower(strings.TrimSpace(name))); s {
	case SourceSweepstake, SourceDigits:
		return s, nil
	}
	return "", fmt.Errorf("unknown source %q (want sweepstake or digits)", name)
}

// ParseCompare validates a comparison selector name.
func ParseCompare(name string) (Compare, error) {
	switch c := Compare(strings.ToLower(strings.TrimSpace(name))); c {
	case CompareSpecial, CompareFirst:
		return c, nil
	}
	return "", fmt.Errorf("unknown compare field %q (want special or first)", name)
}

func (s Source) value(row draw.Row) string {
	if s == SourceDigits {
		return row.DigitsJoined()
	}
	return row.Sweepstake
}

func (c Compare) value(row draw.Row) string {
	if c == CompareFirst {
		return row.FirstTail()
	}
	return row.SpecialTail()
}

// TrackOptions configures Track.
type TrackOptions struct {
	Source  Source  `json:"source"`
	Compare Compare `json:"compare"`
	// Window is the number of table rows examined, starting at Backtest.
	Window int `json:"window"`
	// Backtest hides the newest rows, replaying the matrix as it looked
	// Backtest days ago.
	Backtest int `json:"backtest"`
}

func (o TrackOptions) normalized() TrackOptions {
	if o.Source == "" {
		o.Source = SourceSweepstake
	}
	if o.Compare == "" {
		o.Compare = CompareSpecial
	}
	if o.Window <= 0 {
		o.Window = DefaultWindow
	}
	if o.Backtest < 0 {
		o.Backtest = 0
	}
	return o
}

// CellState is the outcome of one lookback check.
type CellState int

const (
	CellBlank CellState = iota
	CellHit
	CellMiss
)

func (s CellState) String() string {
	switch s {
	case CellHit:
		return "hit"
	case CellMiss:
		return "miss"
	}
	return ""
}

// MarshalText encodes the state as "hit", "miss" or "".
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes the form written by MarshalText.
func (s *CellState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hit":
		*s = CellHit
	case "miss":
		*s = CellMiss
	case "":
		*s = CellBlank
	default:
		return fmt.Errorf("unknown cell state %q", text)
	}
	return nil
}

// Cell is the check of one day's combinations against the prize tail
// Offset rows newer than it.
type Cell struct {
	Offset int       `json:"offset"`
	State  CellState `json:"state"`
	Value  string    `json:"value,omitempty"`
}

// DayAnalysis is one row of the tracking matrix.
type DayAnalysis struct {
	Date   string   `json:"date"`
	Source string   `json:"source"`
	Combos ComboSet `json:"combos"`
	// Index is the row position in the master table.
	Index int    `json:"index"`
	Cells []Cell `json:"cells"`
}

// HitOffsets returns the offsets of hit cells, most recent first.
func (d DayAnalysis) HitOffsets() []int {
	return d.offsets(CellHit)
}

// MissOffsets returns the offsets of miss cells, most recent first.
func (d DayAnalysis) MissOffsets() []int {
	return d.offsets(CellMiss)
}

func (d DayAnalysis) offsets(state CellState) []int {
	var out []int
	for _, c := range d.Cells {
		if c.State == state {
			out = append(out, c.Offset)
		}
	}
	return out
}

// Checks returns the number of evaluated cells.
func (d DayAnalysis) Checks() int {
	n := 0
	for _, c := range d.Cells {
		if c.State != CellBlank {
			n++
		}
	}
	return n
}

// HasHit reports whether any cell is a hit.
func (d DayAnalysis) HasHit() bool {
	for _, c := range d.Cells {
		if c.State == CellHit {
			return true
		}
	}
	return false
}

// Tracking is a complete tracking matrix.
type Tracking struct {
	Options TrackOptions  `json:"options"`
	Days    []DayAnalysis `json:"days"`
}

// Track builds the tracking matrix over table rows
// [Backtest, min(Backtest+Window, len)). Rows whose source is empty are
// skipped. The k-th kept row gets k+1 columns; column j checks the row j
// positions newer, and only when that row is not newer than Backtest.
func Track(table *draw.Table, opts TrackOptions) *Tracking {
	opts = opts.normalized()
	tr := &Tracking{Options: opts, Days: []DayAnalysis{}}

	rows := table.Head(-1)
	start := opts.Backtest
	end := min(opts.Backtest+opts.Window, len(rows))

	for i := start; i < end; i++ {
		src := opts.Source.value(rows[i])
		if src == "" {
			continue
		}

		rowIdx := len(tr.Days)
		day := DayAnalysis{
			Date:   rows[i].Date,
			Source: src,
			Combos: Combos(src),
			Index:  i,
			Cells:  make([]Cell, 0, rowIdx+1),
		}

		for k := 1; k <= rowIdx+1; k++ {
			cell := Cell{Offset: k}
			idx := i - k
			if idx >= 0 && idx >= opts.Backtest {
				cell.Value = opts.Compare.value(rows[idx])
				if day.Combos.Contains(cell.Value) {
					cell.State = CellHit
				} else {
					cell.State = CellMiss
				}
			}
			day.Cells = append(day.Cells, cell)
		}

		tr.Days = append(tr.Days, day)
	}
	return tr
}

// Stats summarises a tracking matrix.
type Stats struct {
	Days        int     `json:"days"`
	TotalChecks int     `json:"total_checks"`
	TotalHits   int     `json:"total_hits"`
	HitRate     float64 `json:"hit_rate"`
}

// Stats counts evaluated and hit cells. HitRate is a percentage rounded to
// one decimal, 0 when nothing was evaluated.
func (t *Tracking) Stats() Stats {
	s := Stats{Days: len(t.Days)}
	for _, d := range t.Days {
		for _, c := range d.Cells {
			switch c.State {
			case CellHit:
				s.TotalHits++
				s.TotalChecks++
			case CellMiss:
				s.TotalChecks++
			}
		}
	}
	s.HitRate = HitRate(s.TotalHits, s.TotalChecks)
	return s
}

// HitRate returns hits/checks as a percentage rounded to one decimal.
func HitRate(hits, checks int) float64 {
	if checks == 0 {
		return 0
	}
	return round1(float64(hits) / float64(checks) * 100)
}

// Pending returns the days whose combinations have not hit yet.
func (t *Tracking) Pending() []DayAnalysis {
	var out []DayAnalysis
	for _, d := range t.Days {
		if !d.HasHit() {
			out = append(out, d)
		}
	}
	return out
}

// PendingLevels groups 00-99 by how many pending days contain each number.
func (t *Tracking) PendingLevels() LevelGroups {
	pending := t.Pending()
	sets := make([][]string, len(pending))
	for i, d := range pending {
		sets[i] = d.Combos
	}
	return Levels(sets)
}

// round1 rounds to one decimal with halves to even.
func round1(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}
