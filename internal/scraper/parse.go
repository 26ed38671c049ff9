package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/xoso-stats/internal/draw"
)

// PrizeWidth is the width prize numbers are zero-padded to.
const PrizeWidth = 5

// ParseDigits extracts Điện Toán 123 results from the first limit result
// blocks. A block is kept only when it has a date and exactly three numeric
// cells. A limit <= 0 parses every block.
func ParseDigits(doc *goquery.Document, limit int) []draw.DigitsResult {
	results := make([]draw.DigitsResult, 0)
	if doc == nil {
		return results
	}

	doc.Find("div.result_div#result_123").EachWithBreak(func(i int, div *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}

		date := draw.NormalizeDate(div.Find("span#result_date").First().Text())
		if date == "" {
			return true
		}

		cells := div.Find("table#result_tab_123 tbody tr").First().Find("td")
		if cells.Length() != 3 {
			return true
		}

		numbers := make([]string, 0, 3)
		cells.Each(func(_ int, cell *goquery.Selection) {
			numbers = append(numbers, strings.TrimSpace(cell.Text()))
		})
		for _, n := range numbers {
			if !isDigits(n) {
				return true
			}
		}

		results = append(results, draw.DigitsResult{Date: date, Numbers: numbers})
		return true
	})

	return results
}

// ParseSweepstake extracts Thần Tài results from the first limit result
// blocks, keeping only exactly-4-digit numbers.
func ParseSweepstake(doc *goquery.Document, limit int) []draw.SweepstakeResult {
	results := make([]draw.SweepstakeResult, 0)
	if doc == nil {
		return results
	}

	doc.Find("div.result_div#result_tt4").EachWithBreak(func(i int, div *goquery.Selection) bool {
		if limit > 0 && i >= limit {
			return false
		}

		date := draw.NormalizeDate(div.Find("span#result_date").First().Text())
		if date == "" {
			return true
		}

		number := strings.TrimSpace(div.Find("table#result_tab_tt4 td#rs_0_0").First().Text())
		if len(number) != 4 || !isDigits(number) {
			return true
		}

		results = append(results, draw.SweepstakeResult{Date: date, Number: number})
		return true
	})

	return results
}

// ParsePaired extracts prize numbers from a weekly grid, newest first. The
// grid is rendered oldest week first, so rows are walked bottom-up and cells
// right-to-left. Placeholders are skipped and numbers are left-padded to
// PrizeWidth digits. At most limit numbers are returned.
func ParsePaired(doc *goquery.Document, limit int) []string {
	numbers := make([]string, 0)
	if doc == nil {
		return numbers
	}

	table := doc.Find("table#MainContent_dgv").First()
	if table.Length() == 0 {
		return numbers
	}

	rows := table.Find("tr")
	// Row 0 is the weekday header
	for i := rows.Length() - 1; i >= 1; i-- {
		cells := rows.Eq(i).Find("td")
		for j := cells.Length() - 1; j >= 0; j-- {
			if n, ok := cleanPrize(cells.Eq(j).Text()); ok {
				numbers = append(numbers, n)
			}
		}
	}

	if limit > 0 && len(numbers) > limit {
		numbers = numbers[:limit]
	}
	return numbers
}

// cleanPrize normalises one grid cell. ok is false for placeholders and
// non-numeric cells.
func cleanPrize(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if isPlaceholder(text) {
		return "", false
	}

	compact := strings.NewReplacer(" ", "", "\u00a0", "").Replace(text)
	if !isDigits(compact) {
		return "", false
	}

	if len(compact) < PrizeWidth {
		compact = strings.Repeat("0", PrizeWidth-len(compact)) + compact
	}
	return compact, true
}

// isPlaceholder matches blank cells, NBSP and dash runs such as "-----".
func isPlaceholder(text string) bool {
	if text == "" || text == "\u00a0" {
		return true
	}
	return strings.Trim(text, "-–—") == ""
}

// isDigits reports whether s is non-empty and only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
