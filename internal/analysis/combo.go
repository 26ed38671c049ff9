package analysis

import (
	"sort"
	"strings"
)

// ComboSet is a sorted set of two-digit strings.
type ComboSet []string

// Combos returns every ordered pair of digits found in s, repetition
// allowed. Non-digit characters are ignored. "472" gives 44 47 42 74 77 72
// 24 27 22, sorted.
func Combos(s string) ComboSet {
	seen := make(map[byte]bool, 10)
	var digits []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' || seen[c] {
			continue
		}
		seen[c] = true
		digits = append(digits, c)
	}

	set := make(ComboSet, 0, len(digits)*len(digits))
	for _, a := range digits {
		for _, b := range digits {
			set = append(set, string([]byte{a, b}))
		}
	}
	sort.Strings(set)
	return set
}

// Contains reports whether v is in the set.
func (c ComboSet) Contains(v string) bool {
	i := sort.SearchStrings(c, v)
	return i < len(c) && c[i] == v
}

// String joins the set with ", ".
func (c ComboSet) String() string {
	return strings.Join(c, ", ")
}

// Preview joins at most n members with spaces and marks the truncation.
func (c ComboSet) Preview(n int) string {
	if len(c) <= n {
		return strings.Join(c, " ")
	}
	return strings.Join(c[:n], " ") + "..."
}

// allNumbers lists 00 through 99.
func allNumbers() []string {
	nums := make([]string, 100)
	for i := range nums {
		nums[i] = twoDigit(i)
	}
	return nums
}

func twoDigit(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func isPair(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
