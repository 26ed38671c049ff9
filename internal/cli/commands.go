package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/config"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/report"
)

const (
	defaultGanTop   = 10
	comboPreviewLen = 8
)

// TableResult is the JSON form of the table command.
type TableResult struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Days      int        `json:"days"`
	Rows      []draw.Row `json:"rows"`
}

// LookupResult is the JSON form of the lookup command.
type LookupResult struct {
	Pair    string           `json:"pair"`
	Matches []analysis.Match `json:"matches"`
}

func addShowFlag(cmd *cobra.Command) {
	cmd.Flags().Int("show", config.Default().ShowDays, "Number of days to display")
}

func (a *app) loadTable(cmd *cobra.Command) (*draw.Table, error) {
	t, err := a.svc.Table(cmd.Context(), a.cfg.FetchDays)
	if err != nil {
		return nil, fmt.Errorf("loading table: %w", err)
	}
	return t, nil
}

func (a *app) newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the merged result table",
		Args:  cobra.NoArgs,
		RunE:  a.runTable,
	}
	addShowFlag(cmd)
	return cmd
}

func (a *app) runTable(cmd *cobra.Command, _ []string) error {
	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	rows := t.Head(a.cfg.ShowDays)
	w := cmd.OutOrStdout()
	if a.format == FormatJSON {
		return writeJSON(w, TableResult{FetchedAt: t.FetchedAt, Days: t.Days, Rows: rows})
	}

	body := make([][]string, len(rows))
	for i, r := range rows {
		body[i] = []string{
			draw.LabelWithWeekday(r.Date),
			strings.Join(r.Digits, " "),
			r.Sweepstake,
			r.Special,
			r.First,
		}
	}
	writeTable(w, []string{"Ngày", "Điện Toán", "Thần Tài", "GĐB", "G1"}, body)
	fmt.Fprintf(w, "%d/%d ngày\n", len(rows), t.Len())
	return nil
}

func (a *app) newTrackCmd() *cobra.Command {
	defaults := config.Default().Tracking
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Track combination sets against later prize tails",
		Long: `Builds the 2-digit combinations of each day's source number and checks
them against the prize tails of the following days. Reports the hit
matrix, hit rate, number levels of pending sets and cycle priorities.`,
		Args: cobra.NoArgs,
		RunE: a.runTrack,
	}
	cmd.Flags().String("source", defaults.Source, "Combination source: sweepstake or digits")
	cmd.Flags().String("compare", defaults.Compare, "Prize to compare: special or first")
	cmd.Flags().Int("window", defaults.Window, fmt.Sprintf("Days to track (1-%d)", config.MaxWindow))
	cmd.Flags().Int("backtest", defaults.Backtest, "Replay the matrix as it was this many days ago")
	return cmd
}

func (a *app) runTrack(cmd *cobra.Command, _ []string) error {
	opts, err := a.cfg.Tracking.Options()
	if err != nil {
		return err
	}
	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	s := report.Track(t, opts)
	w := cmd.OutOrStdout()
	if a.format == FormatJSON {
		return writeJSON(w, s)
	}

	writeTitle(w, fmt.Sprintf("Theo dõi %s → %s (%d ngày, lùi %d)",
		s.Options.Source, report.PrizeLabel(s.Options.Compare), s.Options.Window, s.Options.Backtest))

	headers := []string{"Ngày", "Số", "Dàn"}
	for k := 1; k <= len(s.Days); k++ {
		headers = append(headers, "N"+strconv.Itoa(k))
	}
	body := make([][]string, len(s.Days))
	for i, d := range s.Days {
		row := []string{draw.LabelWithWeekday(d.Date), d.Source, d.Combos.Preview(comboPreviewLen)}
		for k := 0; k < len(s.Days); k++ {
			mark := ""
			if k < len(d.Cells) {
				mark = cellMark(d.Cells[k])
			}
			row = append(row, mark)
		}
		body[i] = row
	}
	writeTable(w, headers, body)
	fmt.Fprintf(w, "Tổng: %d lần kiểm tra, %d lần trúng, tỉ lệ %.1f%%\n\n",
		s.Stats.TotalChecks, s.Stats.TotalHits, s.Stats.HitRate)

	writeTitle(w, "Mức số của các dàn chưa trúng")
	writeLevels(w, s.PendingLevels)
	fmt.Fprintln(w)

	writeTitle(w, "Chu kỳ")
	cycles := make([][]string, len(s.Cycles))
	for i, r := range s.Cycles {
		cycles[i] = []string{
			draw.LabelWithWeekday(r.Date),
			r.Combos.Preview(comboPreviewLen),
			r.CycleText(),
			r.LastHitText(),
			r.Summary(),
		}
	}
	writeTable(w, []string{"Ngày", "Dàn", "Chu kỳ TB", "Trúng gần nhất", "Trạng thái"}, cycles)
	fmt.Fprintln(w)

	fmt.Fprintln(w, report.PriorityPost(s.Cycles))
	return nil
}

func (a *app) newGanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gan",
		Short: "Show the longest-absent groups of prize tails",
		Args:  cobra.NoArgs,
		RunE:  a.runGan,
	}
	cmd.Flags().String("prize", string(analysis.CompareSpecial), "Prize: special or first")
	cmd.Flags().Int("top", defaultGanTop, "Number of absent numbers to list")
	cmd.Flags().Bool("post", false, "Print a shareable post instead of tables")
	cmd.Flags().Int("limit", 0, "Truncate the post to this many characters (0 disables)")
	return cmd
}

func (a *app) runGan(cmd *cobra.Command, _ []string) error {
	name, _ := cmd.Flags().GetString("prize")
	prize, err := analysis.ParseCompare(name)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetInt("top")
	post, _ := cmd.Flags().GetBool("post")
	limit, _ := cmd.Flags().GetInt("limit")

	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	s := report.Gan(t, prize, top)
	w := cmd.OutOrStdout()
	switch {
	case a.format == FormatJSON:
		return writeJSON(w, s)
	case post:
		return report.NewPrinter(w, limit).Print(s.Post())
	}

	writeTitle(w, fmt.Sprintf("Gan %s (%s)", report.PrizeLabel(prize), s.Date))
	stats := make([][]string, len(s.Stats))
	for i, g := range s.Stats {
		stats[i] = []string{g.Label, g.Value, fmt.Sprintf("%d ngày", g.Days), strings.Join(g.Feeders, ",")}
	}
	writeTable(w, []string{"Nhóm", "Giá trị", "Lâu ra", "Dàn"}, stats)

	numbers := make([][]string, len(s.Numbers))
	for i, n := range s.Numbers {
		numbers[i] = []string{n.Number, fmt.Sprintf("%d ngày", n.Days)}
	}
	writeTable(w, []string{"Số", "Lâu ra"}, numbers)
	return nil
}

func (a *app) newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show special prize digits repeated in place on consecutive days",
		Args:  cobra.NoArgs,
		RunE:  a.runStreak,
	}
	addShowFlag(cmd)
	return cmd
}

func (a *app) runStreak(cmd *cobra.Command, _ []string) error {
	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	streaks := analysis.Streaks(t, a.cfg.ShowDays)
	w := cmd.OutOrStdout()
	if a.format == FormatJSON {
		return writeJSON(w, streaks)
	}

	if len(streaks) == 0 {
		fmt.Fprintln(w, "Không có số bệt.")
		return nil
	}
	body := make([][]string, len(streaks))
	for i, s := range streaks {
		body[i] = []string{draw.LabelWithWeekday(s.Date), s.Today, s.Previous, strings.Join(s.Digits, ", ")}
	}
	writeTable(w, []string{"Ngày", "GĐB", "Hôm trước", "Bệt"}, body)
	return nil
}

func (a *app) newFreqCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Count digits and pairs over rolling Điện Toán windows",
		Args:  cobra.NoArgs,
		RunE:  a.runFreq,
	}
	addShowFlag(cmd)
	return cmd
}

func (a *app) runFreq(cmd *cobra.Command, _ []string) error {
	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	s := report.Freq(t, a.cfg.ShowDays)
	w := cmd.OutOrStdout()
	if a.format == FormatJSON {
		return writeJSON(w, s)
	}

	headers := []string{"Ngày", "Kết quả", "GĐB", "Nhiều nhất"}
	writeTitle(w, fmt.Sprintf("Chữ số trong %d ngày", s.Width))
	writeTable(w, headers, windowRows(s.Digits))
	writeTitle(w, fmt.Sprintf("Cặp số trong %d ngày", s.Width))
	writeTable(w, headers, windowRows(s.Pairs))
	return nil
}

func windowRows(windows []analysis.FrequencyWindow) [][]string {
	rows := make([][]string, len(windows))
	for i, fw := range windows {
		rows[i] = []string{
			draw.LabelWithWeekday(fw.Date),
			strings.Join(fw.Result, " "),
			fw.Special,
			countGroups(fw.Top),
		}
	}
	return rows
}

func (a *app) newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <pair>",
		Short: "Find special and first prizes containing a 2-digit pair",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runLookup,
	}
}

func (a *app) runLookup(cmd *cobra.Command, args []string) error {
	t, err := a.loadTable(cmd)
	if err != nil {
		return err
	}

	pair := strings.TrimSpace(args[0])
	matches, err := analysis.Lookup(t, pair)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", args[0], err)
	}

	w := cmd.OutOrStdout()
	if a.format == FormatJSON {
		return writeJSON(w, LookupResult{Pair: pair, Matches: matches})
	}

	if len(matches) == 0 {
		fmt.Fprintf(w, "Không tìm thấy %s trong %d ngày.\n", pair, t.Len())
		return nil
	}
	body := make([][]string, len(matches))
	for i, m := range matches {
		body[i] = []string{draw.LabelWithWeekday(m.Date), report.PrizeLabel(m.Source), m.Number}
	}
	writeTable(w, []string{"Ngày", "Giải", "Số"}, body)
	fmt.Fprintf(w, "%d kết quả\n", len(matches))
	return nil
}
