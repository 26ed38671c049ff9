package analysis

import (
	"errors"
	"strings"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// ErrInvalidPair is returned by Lookup for targets that are not two digits.
var ErrInvalidPair = errors.New("target must be a two-digit number")

// Match is one prize number containing a looked-up pair.
type Match struct {
	Date   string  `json:"date"`
	Source Compare `json:"source"`
	Number string  `json:"number"`
}

// Lookup finds every special and first prize containing pair anywhere in the
// number. Special prize matches come first, each group newest first.
func Lookup(table *draw.Table, pair string) ([]Match, error) {
	pair = strings.TrimSpace(pair)
	if !isPair(pair) {
		return nil, ErrInvalidPair
	}

	rows := table.Head(-1)
	out := []Match{}
	for _, c := range []Compare{CompareSpecial, CompareFirst} {
		for _, r := range rows {
			number := r.Special
			if c == CompareFirst {
				number = r.First
			}
			if number != "" && strings.Contains(number, pair) {
				out = append(out, Match{Date: r.Date, Source: c, Number: number})
			}
		}
	}
	return out, nil
}
