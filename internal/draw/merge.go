package draw

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlignmentMismatch is matched by every *AlignmentError.
var ErrAlignmentMismatch = errors.New("alignment mismatch")

// AlignmentError reports series whose lengths cannot be aligned by position.
type AlignmentError struct {
	Digits  int
	Special int
	First   int
	Expect  int
}

func (e *AlignmentError) Error() string {
	if e.Expect > 0 {
		return fmt.Sprintf("alignment mismatch: digits=%d special=%d first=%d, expected %d",
			e.Digits, e.Special, e.First, e.Expect)
	}
	return fmt.Sprintf("alignment mismatch: digits=%d special=%d first=%d",
		e.Digits, e.Special, e.First)
}

// Is lets errors.Is(err, ErrAlignmentMismatch) match.
func (e *AlignmentError) Is(target error) bool {
	return target == ErrAlignmentMismatch
}

// CheckAlignment verifies that the positionally joined series have equal
// length, and that length equals expect when expect > 0.
func CheckAlignment(src Sources, expect int) error {
	d, s, f := len(src.Digits), len(src.Special), len(src.First)
	equal := d == s && s == f
	if equal && (expect <= 0 || d == expect) {
		return nil
	}
	return &AlignmentError{Digits: d, Special: s, First: f, Expect: expect}
}

// PairPositional dates the special/first prize streams with the digits
// series by index, truncated to the shortest of the three.
func PairPositional(digits []DigitsResult, special, first []string) []PairedRow {
	limit := min(len(digits), len(special), len(first))
	rows := make([]PairedRow, 0, limit)
	for i := 0; i < limit; i++ {
		rows = append(rows, PairedRow{
			Date:    digits[i].Date,
			Special: special[i],
			First:   first[i],
		})
	}
	return rows
}

// Merge builds the master table. Each digits date becomes one table row in
// its original order; a repeated date keeps only its first row. The
// sweepstake and paired prize series are left-joined on the date key. The
// table is empty when either the digits series or the paired rows are empty.
func Merge(src Sources) *Table {
	table := &Table{
		Rows:      make([]Row, 0, len(src.Digits)),
		FetchedAt: time.Now().UTC(),
	}

	paired := PairPositional(src.Digits, src.Special, src.First)
	if len(src.Digits) == 0 || len(paired) == 0 {
		return table
	}

	sweepByDate := make(map[string]string, len(src.Sweepstake))
	for _, rec := range src.Sweepstake {
		if _, seen := sweepByDate[rec.Date]; !seen {
			sweepByDate[rec.Date] = rec.Number
		}
	}

	pairedByDate := make(map[string]PairedRow, len(paired))
	for _, p := range paired {
		if _, seen := pairedByDate[p.Date]; !seen {
			pairedByDate[p.Date] = p
		}
	}

	seen := make(map[string]bool, len(src.Digits))
	for _, d := range src.Digits {
		if seen[d.Date] {
			continue
		}
		seen[d.Date] = true
		row := Row{
			Date:       d.Date,
			Digits:     d.Numbers,
			Sweepstake: sweepByDate[d.Date],
		}
		if p, ok := pairedByDate[d.Date]; ok {
			row.Special = p.Special
			row.First = p.First
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// MergeStrict runs CheckAlignment before merging and refuses to build a
// table from misaligned series.
func MergeStrict(src Sources, expect int) (*Table, error) {
	if err := CheckAlignment(src, expect); err != nil {
		return nil, err
	}
	return Merge(src), nil
}
