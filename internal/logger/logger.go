// Package logger writes structured JSON log lines and keeps in-process
// metrics for xoso-stats.
//
// Each line is one JSON object:
//
//	{"timestamp":"2024-10-17T11:00:00Z","level":"WARN","message":"fetch attempt failed","fields":{"attempt":2,"url":"..."}}
//
// The fetcher, scraper and dataset service log through the package-level
// functions and record counters, gauges and timings on the default Metrics,
// which the HTTP server exports to Prometheus.
//
//	logger.Warn("fetch attempt failed", logger.Fields{"url": url, "attempt": 2})
//	logger.IncrCounter("fetch.failures")
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level is a log severity. Higher levels are more severe.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes the level name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// ParseLevel converts a case-insensitive level name into a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	name = strings.ToUpper(strings.TrimSpace(name))
	for i, n := range levelNames {
		if n == name {
			return Level(i)
		}
	}
	if name == "WARNING" {
		return LevelWarn
	}
	return LevelInfo
}

// Fields holds structured key/value pairs attached to a line.
type Fields map[string]interface{}

// LogEntry is the JSON shape of one line.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes lines at or above its minimum level. Loggers derived with
// With share the parent's writer lock.
type Logger struct {
	minLevel Level
	out      io.Writer
	mu       *sync.Mutex
	base     Fields
	now      func() time.Time
}

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(LevelInfo, os.Stderr))
}

// New creates a Logger writing to out.
func New(level Level, out io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		out:      out,
		mu:       &sync.Mutex{},
		now:      time.Now,
	}
}

// With returns a child logger that adds fields to every line. Per-call
// fields override them.
func (l *Logger) With(fields Fields) *Logger {
	child := *l
	child.base = make(Fields, len(l.base)+len(fields))
	maps.Copy(child.base, l.base)
	maps.Copy(child.base, fields)
	return &child
}

// Enabled reports whether lines at level are written.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.minLevel
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     level.String(),
		Message:   message,
		Fields:    l.merge(fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	line, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		line = fmt.Appendf(nil, `{"timestamp":%q,"level":%q,"message":%q,"error":%q}`,
			entry.Timestamp, entry.Level, entry.Message, "encoding fields: "+marshalErr.Error())
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(line)
}

func (l *Logger) merge(fields Fields) Fields {
	if len(l.base) == 0 {
		return fields
	}
	out := make(Fields, len(l.base)+len(fields))
	maps.Copy(out, l.base)
	maps.Copy(out, fields)
	return out
}

func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn is used for retried attempts and dropped rows.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs at ERROR with err attached. A source that ends up empty is
// always reported here.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// SetDefault replaces the logger behind the package-level functions.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Default returns the logger behind the package-level functions.
func Default() *Logger {
	return defaultLogger.Load()
}

func Debug(message string, fields Fields) { Default().Debug(message, fields) }

func Info(message string, fields Fields) { Default().Info(message, fields) }

func Warn(message string, fields Fields) { Default().Warn(message, fields) }

func Error(message string, fields Fields, err error) { Default().Error(message, fields, err) }
