package draw

import (
	"strings"
	"time"
)

// DigitsResult is one Điện Toán 123 draw: three single-digit cells.
type DigitsResult struct {
	Date    string   `json:"date"`
	Numbers []string `json:"numbers"`
}

// Joined returns the cells concatenated, e.g. "472".
func (d DigitsResult) Joined() string {
	return strings.Join(d.Numbers, "")
}

// SweepstakeResult is one Thần Tài draw: a single 4-digit number.
type SweepstakeResult struct {
	Date   string `json:"date"`
	Number string `json:"number"`
}

// Sources is the joint result of one orchestrated fetch.
// Special and First hold zero-padded 5-digit prize numbers, newest first.
type Sources struct {
	Digits     []DigitsResult     `json:"digits"`
	Sweepstake []SweepstakeResult `json:"sweepstake"`
	Special    []string           `json:"special"`
	First      []string           `json:"first"`
}

// PairedRow is a special/first prize pair dated by position against the
// digits series.
type PairedRow struct {
	Date    string `json:"date"`
	Special string `json:"special"`
	First   string `json:"first"`
}

// Row is one date of the master table. Empty strings mean the source did
// not cover that date.
type Row struct {
	Date       string   `json:"date"`
	Digits     []string `json:"digits,omitempty"`
	Sweepstake string   `json:"sweepstake,omitempty"`
	Special    string   `json:"special,omitempty"`
	First      string   `json:"first,omitempty"`
}

// DigitsJoined returns the Điện Toán cells as one string.
func (r Row) DigitsJoined() string {
	return strings.Join(r.Digits, "")
}

// HasSweepstake reports whether the Thần Tài number is present.
func (r Row) HasSweepstake() bool {
	return r.Sweepstake != ""
}

// HasPrizes reports whether the special and first prizes are present.
func (r Row) HasPrizes() bool {
	return r.Special != "" && r.First != ""
}

// SpecialTail returns the last two digits of the special prize.
func (r Row) SpecialTail() string {
	return Tail(r.Special)
}

// FirstTail returns the last two digits of the first prize.
func (r Row) FirstTail() string {
	return Tail(r.First)
}

// Tail returns the last two characters of number, or "" when it is shorter.
func Tail(number string) string {
	if len(number) < 2 {
		return ""
	}
	return number[len(number)-2:]
}

// Table is the master table, newest first. A Table is never modified after
// Merge returns it; refreshes build a new one.
type Table struct {
	Rows      []Row     `json:"rows"`
	Days      int       `json:"days"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table holds no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Head returns at most n leading rows. The slice shares storage with the
// table and must not be modified.
func (t *Table) Head(n int) []Row {
	if t == nil {
		return nil
	}
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// SpecialTails returns the 2-digit special prize tails of every row that
// has one, newest first.
func (t *Table) SpecialTails() []string {
	return t.tails(Row.SpecialTail)
}

// FirstTails returns the 2-digit first prize tails, newest first.
func (t *Table) FirstTails() []string {
	return t.tails(Row.FirstTail)
}

func (t *Table) tails(get func(Row) string) []string {
	if t == nil {
		return nil
	}
	tails := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if tail := get(row); tail != "" {
			tails = append(tails, tail)
		}
	}
	return tails
}
