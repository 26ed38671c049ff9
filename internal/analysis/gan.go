package analysis

import (
	"sort"
	"strconv"
)

// Dimension is a way of grouping two-digit numbers for gan statistics.
type Dimension string

const (
	DimensionSet    Dimension = "set"
	DimensionHead   Dimension = "head"
	DimensionTail   Dimension = "tail"
	DimensionSum    Dimension = "sum"
	DimensionDiff   Dimension = "diff"
	DimensionZodiac Dimension = "zodiac"
	DimensionDouble Dimension = "double"
)

// Dimensions lists every grouping in report order.
var Dimensions = []Dimension{
	DimensionSet,
	DimensionHead,
	DimensionTail,
	DimensionSum,
	DimensionDiff,
	DimensionZodiac,
	DimensionDouble,
}

var dimensionLabels = map[Dimension]string{
	DimensionSet:    "Bộ",
	DimensionHead:   "Đầu",
	DimensionTail:   "Đuôi",
	DimensionSum:    "Tổng",
	DimensionDiff:   "Hiệu",
	DimensionZodiac: "Con Giáp",
	DimensionDouble: "Kép",
}

// Label returns the Vietnamese name of the grouping.
func (d Dimension) Label() string {
	if l, ok := dimensionLabels[d]; ok {
		return l
	}
	return string(d)
}

// Zodiac animals in number order: n % 12 indexes this list.
var zodiacNames = [12]string{
	"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ",
	"Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi",
}

const (
	DoubleEqual  = "Kép bằng"
	DoubleShadow = "Kép lệch"
	DoubleNone   = "Không kép"
)

// Key returns the variant of the two-digit number n under d.
func (d Dimension) Key(n string) string {
	a, b := int(n[0]-'0'), int(n[1]-'0')
	switch d {
	case DimensionSet:
		x, y := a%5, b%5
		if x > y {
			x, y = y, x
		}
		return strconv.Itoa(x) + strconv.Itoa(y)
	case DimensionHead:
		return n[:1]
	case DimensionTail:
		return n[1:]
	case DimensionSum:
		return strconv.Itoa((a + b) % 10)
	case DimensionDiff:
		if a < b {
			a, b = b, a
		}
		return strconv.Itoa(a - b)
	case DimensionZodiac:
		return zodiacNames[(a*10+b)%12]
	case DimensionDouble:
		switch {
		case a == b:
			return DoubleEqual
		case b == (a+5)%10:
			return DoubleShadow
		}
		return DoubleNone
	}
	return n
}

// Feeders returns every 00-99 number whose variant under d is key.
func (d Dimension) Feeders(key string) []string {
	var out []string
	for _, n := range allNumbers() {
		if d.Key(n) == key {
			out = append(out, n)
		}
	}
	return out
}

// GanStat is the stalest variant of one grouping.
type GanStat struct {
	Dimension Dimension `json:"dimension"`
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	// Days is how many draws ago the variant last appeared.
	Days     int      `json:"days"`
	DaysText string   `json:"days_text"`
	Feeders  []string `json:"feeders"`
}

// ValueText spells a numeric value in Vietnamese, otherwise returns it as is.
func (s GanStat) ValueText() string {
	return ValueText(s.Value)
}

// Gan reports, for each dimension, the variant whose most recent
// appearance in tails is oldest. tails must be newest first. Entries that
// are not two-digit numbers are skipped; an empty result is returned when
// none remain.
func Gan(tails []string) []GanStat {
	valid := validTails(tails)
	if len(valid) == 0 {
		return []GanStat{}
	}

	stats := make([]GanStat, 0, len(Dimensions))
	for _, d := range Dimensions {
		value, days := stalest(valid, d.Key)
		stats = append(stats, GanStat{
			Dimension: d,
			Label:     d.Label(),
			Value:     value,
			Days:      days,
			DaysText:  NumberText(days),
			Feeders:   d.Feeders(value),
		})
	}
	return stats
}

// NumberGan is how long one number has been absent.
type NumberGan struct {
	Number string `json:"number"`
	Days   int    `json:"days"`
}

// GanNumbers returns the n numbers absent longest among those that appear in
// tails. A negative n returns them all.
func GanNumbers(tails []string, n int) []NumberGan {
	seen := lastSeen(validTails(tails), func(s string) string { return s })

	out := make([]NumberGan, 0, len(seen))
	for num, days := range seen {
		out = append(out, NumberGan{Number: num, Days: days})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Days != out[j].Days {
			return out[i].Days > out[j].Days
		}
		return out[i].Number < out[j].Number
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// GanLevels groups 00-99 by how many feeder sets contain each number.
func GanLevels(stats []GanStat) LevelGroups {
	sets := make([][]string, 0, len(stats))
	for _, s := range stats {
		sets = append(sets, s.Feeders)
	}
	return Levels(sets)
}

// lastSeen maps each variant to the index of its first (most recent)
// occurrence.
func lastSeen(tails []string, key func(string) string) map[string]int {
	seen := make(map[string]int)
	for i, t := range tails {
		k := key(t)
		if _, ok := seen[k]; !ok {
			seen[k] = i
		}
	}
	return seen
}

func stalest(tails []string, key func(string) string) (string, int) {
	best, bestIdx := "", -1
	for k, idx := range lastSeen(tails, key) {
		if idx > bestIdx {
			best, bestIdx = k, idx
		}
	}
	return best, bestIdx
}

func validTails(tails []string) []string {
	out := make([]string, 0, len(tails))
	for _, t := range tails {
		if isPair(t) {
			out = append(out, t)
		}
	}
	return out
}
