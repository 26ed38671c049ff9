package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

const (
	hashtags   = "#xoso #thongke"
	disclaimer = "⛔ Chỉ mang tính chất tham khảo!"
)

var prizeLabels = map[analysis.Compare]string{
	analysis.CompareSpecial: "GĐB",
	analysis.CompareFirst:   "G1",
}

// PrizeLabel returns the short Vietnamese prize name.
func PrizeLabel(c analysis.Compare) string {
	if l, ok := prizeLabels[c]; ok {
		return l
	}
	return string(c)
}

// GanPost formats the stalest variants of every grouping. date is the newest
// draw date and is shortened to dd/mm.
func GanPost(prize analysis.Compare, date string, stats []analysis.GanStat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "==== TOP GAN %s (%s) ====\n\n", PrizeLabel(prize), draw.ShortDate(date))

	for _, s := range stats {
		fmt.Fprintf(&b, "%s: %s\n", s.Label, s.ValueText())
		fmt.Fprintf(&b, "Dàn: %s\n", strings.Join(s.Feeders, ","))
		fmt.Fprintf(&b, "Lâu ra: %s ngày\n", s.DaysText)
		b.WriteString("---\n")
	}

	b.WriteString(hashtags + "\n")
	b.WriteString(disclaimer)
	return b.String()
}

// PriorityPost lists the high-priority combination sets and the number
// levels across them.
func PriorityPost(records []analysis.CycleRecord) string {
	high := analysis.HighPriority(records)
	if len(high) == 0 {
		return "Tất cả các dàn đang trong chu kỳ bình thường"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Có %d dàn cần ưu tiên theo dõi\n\n", len(high))
	for i, r := range high {
		fmt.Fprintf(&b, "%d. %s: %s - %s\n", i+1, draw.LabelWithWeekday(r.Date), r.Combos.String(), r.Summary())
	}

	b.WriteString("\nMức số trong các dàn ưu tiên:\n")
	for _, l := range analysis.PriorityLevels(records) {
		fmt.Fprintf(&b, "Mức %d (%d số): %s\n", l.Count, len(l.Numbers), strings.Join(l.Numbers, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate shortens post to at most limit characters, ending with "...".
// A limit of zero or less disables truncation.
func Truncate(post string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(post) <= limit {
		return post
	}
	if limit <= 3 {
		return string([]rune(post)[:limit])
	}
	return string([]rune(post)[:limit-3]) + "..."
}

// Printer writes posts to w, numbered, without publishing them anywhere.
type Printer struct {
	w     io.Writer
	limit int
}

// NewPrinter creates a Printer. limit truncates each post; 0 disables it.
func NewPrinter(w io.Writer, limit int) *Printer {
	return &Printer{w: w, limit: limit}
}

// Print writes every post followed by its length in characters.
func (p *Printer) Print(posts ...string) error {
	for i, post := range posts {
		post = Truncate(post, p.limit)
		if len(posts) > 1 {
			if _, err := fmt.Fprintf(p.w, "--- Post %d/%d ---\n", i+1, len(posts)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(p.w, "%s\n\n(Length: %d characters)\n", post, utf8.RuneCountInString(post)); err != nil {
			return err
		}
	}
	return nil
}
