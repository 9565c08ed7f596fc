// Package notify carries recoverable export problems from the builder to
// whoever reports them to the user.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
)

// Warning codes.
const (
	CodeLocaleToISO = "locale-to-iso639"
	CodeISOToLocale = "iso639-to-locale"
	CodeCountry     = "country"
	CodeAffiliation = "affiliation"
	CodeFullText    = "fulltext"
	CodePages       = "pages"
	CodeGalleyFile  = "galley-file"
	CodeSubmittedAt = "date-submitted"
)

// Warning is a recoverable problem: the export continues with a default.
type Warning struct {
	Code string
	// Subject is the value that could not be resolved (a locale, a country
	// code, a file path).
	Subject   string
	ArticleID int64
	Message   string
}

func (w Warning) String() string {
	if w.ArticleID != 0 {
		return fmt.Sprintf("[%s] article %d: %s", w.Code, w.ArticleID, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// Sink receives warnings.
type Sink interface {
	Warn(w Warning)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Warning)

// Warn calls f(w).
func (f SinkFunc) Warn(w Warning) { f(w) }

// Discard drops every warning.
var Discard Sink = SinkFunc(func(Warning) {})

// Collector keeps warnings in arrival order, dropping exact duplicates.
type Collector struct {
	mu       sync.Mutex
	seen     map[Warning]struct{}
	warnings []Warning
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[Warning]struct{})}
}

// Warn records w unless an identical warning was already recorded.
func (c *Collector) Warn(w Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[w]; ok {
		return
	}
	c.seen[w] = struct{}{}
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of the recorded warnings.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Warning(nil), c.warnings...)
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// LogSink writes warnings to a slog logger.
type LogSink struct {
	Logger *slog.Logger
}

// Warn logs w at warn level.
func (s LogSink) Warn(w Warning) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"code", w.Code}
	if w.Subject != "" {
		attrs = append(attrs, "subject", w.Subject)
	}
	if w.ArticleID != 0 {
		attrs = append(attrs, "article_id", w.ArticleID)
	}
	logger.Warn(w.Message, attrs...)
}

// Multi fans a warning out to every sink.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(w Warning) {
		for _, s := range sinks {
			s.Warn(w)
		}
	})
}
