package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/analysis"
	"github.com/pfrederiksen/xoso-stats/internal/config"
	"github.com/pfrederiksen/xoso-stats/internal/dataset"
	"github.com/pfrederiksen/xoso-stats/internal/draw"
	"github.com/pfrederiksen/xoso-stats/internal/logger"
	"github.com/pfrederiksen/xoso-stats/internal/metrics"
	"github.com/pfrederiksen/xoso-stats/internal/report"
)

const defaultGanTop = 10

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /api/table", s.table)
	mux.HandleFunc("GET /api/track", s.track)
	mux.HandleFunc("GET /api/gan", s.gan)
	mux.HandleFunc("GET /api/freq", s.freq)
	mux.HandleFunc("GET /api/streak", s.streak)
	mux.HandleFunc("GET /api/lookup/{pair}", s.lookup)
	mux.HandleFunc("POST /api/refresh", s.refresh)
	mux.Handle("GET /metrics", metrics.Handler(s.metrics))
	return mux
}

// tableResponse is the body of /api/table.
type tableResponse struct {
	FetchedAt time.Time  `json:"fetched_at"`
	Days      int        `json:"days"`
	Total     int        `json:"total"`
	Rows      []draw.Row `json:"rows"`
}

// refreshResponse is the body of /api/refresh.
type refreshResponse struct {
	FetchedAt time.Time `json:"fetched_at"`
	Days      int       `json:"days"`
	Rows      int       `json:"rows"`
}

type lookupResponse struct {
	Pair    string           `json:"pair"`
	Matches []analysis.Match `json:"matches"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	show, err := intParam(r, "show", s.opts.ShowDays, 1, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, tableResponse{
		FetchedAt: t.FetchedAt,
		Days:      t.Days,
		Total:     t.Len(),
		Rows:      t.Head(show),
	})
}

func (s *Server) track(w http.ResponseWriter, r *http.Request) {
	opts, err := s.trackOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Track(t, opts))
}

func (s *Server) trackOptions(r *http.Request) (analysis.TrackOptions, error) {
	opts := s.opts.Tracking
	q := r.URL.Query()

	if v := q.Get("source"); v != "" {
		source, err := analysis.ParseSource(v)
		if err != nil {
			return opts, err
		}
		opts.Source = source
	}
	if v := q.Get("compare"); v != "" {
		compare, err := analysis.ParseCompare(v)
		if err != nil {
			return opts, err
		}
		opts.Compare = compare
	}

	var err error
	if opts.Window, err = intParam(r, "window", opts.Window, 1, config.MaxWindow); err != nil {
		return opts, err
	}
	if opts.Backtest, err = intParam(r, "backtest", opts.Backtest, 0, 0); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) gan(w http.ResponseWriter, r *http.Request) {
	prize := analysis.CompareSpecial
	if v := r.URL.Query().Get("prize"); v != "" {
		var err error
		if prize, err = analysis.ParseCompare(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	top, err := intParam(r, "top", defaultGanTop, 0, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Gan(t, prize, top))
}

func (s *Server) freq(w http.ResponseWriter, r *http.Request) {
	show, err := intParam(r, "show", s.opts.ShowDays, 1, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.Freq(t, show))
}

func (s *Server) streak(w http.ResponseWriter, r *http.Request) {
	show, err := intParam(r, "show", s.opts.ShowDays, 1, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analysis.Streaks(t, show))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) {
	t, ok := s.loadTable(w, r)
	if !ok {
		return
	}
	pair := r.PathValue("pair")
	matches, err := analysis.Lookup(t, pair)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lookupResponse{Pair: pair, Matches: matches})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	days, err := s.days(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.svc.Refresh(r.Context(), days)
	if err != nil {
		s.writeTableError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{FetchedAt: t.FetchedAt, Days: t.Days, Rows: t.Len()})
}

// loadTable fetches the table for the request's depth, writing the error
// response itself when that fails.
func (s *Server) loadTable(w http.ResponseWriter, r *http.Request) (*draw.Table, bool) {
	days, err := s.days(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	t, err := s.svc.Table(r.Context(), days)
	if err != nil {
		s.writeTableError(w, err)
		return nil, false
	}
	return t, true
}

func (s *Server) days(r *http.Request) (int, error) {
	return intParam(r, "days", s.opts.Days, config.MinFetchDays, config.MaxFetchDays)
}

func (s *Server) writeTableError(w http.ResponseWriter, err error) {
	if errors.Is(err, dataset.ErrNoData) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	logger.Error("loading table", nil, err)
	writeError(w, http.StatusInternalServerError, "loading table failed")
}

// intParam reads an integer query parameter. hi <= 0 means unbounded.
func intParam(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	switch {
	case hi > 0 && (v < lo || v > hi):
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	case v < lo:
		return 0, fmt.Errorf("%s must be at least %d", name, lo)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encoding response", nil, err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
