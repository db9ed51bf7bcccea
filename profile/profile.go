// Package profile implements the scoped-timer profiling hook described in
// spec.md §1/§6: every primitive evaluation emits a single record carrying
// the event name plus whatever (nflops, nbytes, ...) fields the caller
// supplies, with throughput derived when those fields are present.
//
// The original Python source (slo/util.py) carries two divergent `profile`
// implementations across the codebase; this package implements the richer
// one — gflop/membw derivation, sorted key rendering — treated as canonical
// per spec.md §9.
package profile

import (
	"fmt"
	"log"
	"sort"
	"time"
)

// Field is one extra key/value attached to a profiling record.
type Field struct {
	Key   string
	Value interface{}
}

// F is a convenience constructor for a Field.
func F(key string, value interface{}) Field { return Field{Key: key, Value: value} }

// Logger is the subset of *log.Logger that Scope needs. Tests may inject a
// logger that captures output instead of writing to the default logger.
type Logger interface {
	Printf(format string, v ...interface{})
}

// defaultLogger is used when Start is called without WithLogger.
var defaultLogger Logger = log.Default()

// SetLogger overrides the package-level default logger used by Start.
func SetLogger(l Logger) { defaultLogger = l }

// Scope is an open profiling measurement; it records elapsed wall time
// between Start and Stop (or Close, for defer-friendly use).
type Scope struct {
	event  string
	fields []Field
	start  time.Time
	logger Logger
}

// Start begins a profiling scope for event, carrying the supplied fields.
// Call Stop (or defer Close) to emit the record.
func Start(event string, fields ...Field) *Scope {
	return &Scope{event: event, fields: fields, start: time.Now(), logger: defaultLogger}
}

// WithLogger overrides the logger this scope emits to; it returns the
// receiver for chaining with Start.
func (s *Scope) WithLogger(l Logger) *Scope {
	s.logger = l
	return s
}

// Close stops the scope and emits its record; it is safe to use with
// defer immediately after Start.
func (s *Scope) Close() { s.Stop() }

// Stop stops the scope, derives throughput fields when nflops/nbytes were
// supplied, and emits one log line with keys in sorted order (matching the
// original's `sorted(data.items(), key=lambda kv: kv[0])`).
func (s *Scope) Stop() {
	duration := time.Since(s.start).Seconds()

	data := map[string]interface{}{
		"duration": duration,
		"event":    s.event,
	}
	for _, f := range s.fields {
		data[f.Key] = f.Value
	}

	if nflops, ok := numericField(data, "nflops"); ok && duration > 0 {
		data["gflop_rate"] = nflops / duration * 1e-9
	}
	if nbytes, ok := numericField(data, "nbytes"); ok && duration > 0 {
		data["membw_rate"] = nbytes / duration * 1e-9
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msg := "PROFILE("
	for i, k := range keys {
		if i > 0 {
			msg += ", "
		}
		msg += fmt.Sprintf("%s=%v", k, data[k])
	}
	msg += ")"

	s.logger.Printf("%s", msg)
}

func numericField(data map[string]interface{}, key string) (float64, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
