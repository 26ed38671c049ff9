package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/xoso-stats/internal/logger"
)

// loggingMiddleware logs every request and counts it in m.
func loggingMiddleware(m *logger.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		m.IncrCounter("http.requests")
		m.IncrCounter(fmt.Sprintf("http.responses.%dxx", ww.status/100))
		m.RecordTiming("http.request.duration", duration)

		fields := logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"query":       r.URL.RawQuery,
			"status":      ww.status,
			"duration_ms": duration.Milliseconds(),
		}
		if ww.status >= http.StatusInternalServerError {
			logger.Warn("request failed", fields)
			return
		}
		logger.Debug("request complete", fields)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
