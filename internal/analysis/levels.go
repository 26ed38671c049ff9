package analysis

import "sort"

// Level is one frequency bucket: the numbers that appeared Count times.
type Level struct {
	Count   int      `json:"count"`
	Numbers []string `json:"numbers"`
}

// LevelGroups buckets 00-99 by occurrence count, highest count first.
// Every number belongs to exactly one level; numbers never seen form
// level 0.
type LevelGroups []Level

// Levels counts how often each two-digit number appears across sets.
// Members that are not two-digit numbers are ignored.
func Levels(sets [][]string) LevelGroups {
	counts := make(map[string]int, 100)
	for _, set := range sets {
		for _, num := range set {
			if isPair(num) {
				counts[num]++
			}
		}
	}

	buckets := make(map[int][]string)
	for _, num := range allNumbers() {
		c := counts[num]
		buckets[c] = append(buckets[c], num)
	}

	groups := make(LevelGroups, 0, len(buckets))
	for count, nums := range buckets {
		groups = append(groups, Level{Count: count, Numbers: nums})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups
}

// Total returns how many numbers the groups hold. Always 100 for groups
// built by Levels.
func (g LevelGroups) Total() int {
	total := 0
	for _, l := range g {
		total += len(l.Numbers)
	}
	return total
}

// Max returns the highest level, or 0 for empty groups.
func (g LevelGroups) Max() int {
	if len(g) == 0 {
		return 0
	}
	return g[0].Count
}

// Numbers returns the members of the given level.
func (g LevelGroups) Numbers(count int) []string {
	for _, l := range g {
		if l.Count == count {
			return l.Numbers
		}
	}
	return nil
}

// Distinct returns how many numbers appear at least once.
func (g LevelGroups) Distinct() int {
	return g.Total() - len(g.Numbers(0))
}
