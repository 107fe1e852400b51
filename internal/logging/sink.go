// Package logging defines the diagnostic sink plugins write to when printLog is on.
package logging

import (
	"log/slog"
	"sync"
)

// Sink receives diagnostic messages. Implementations must not return errors;
// a sink that cannot deliver a message drops it.
type Sink interface {
	Log(message string)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(message string)

func (f SinkFunc) Log(message string) { f(message) }

// Discard drops every message.
var Discard Sink = SinkFunc(func(string) {})

// SlogSink forwards messages to a slog.Logger at info level with fixed attributes.
type SlogSink struct {
	Logger *slog.Logger
	Attrs  []any
}

// NewSlogSink returns a sink writing to logger, or to slog.Default when logger is nil.
func NewSlogSink(logger *slog.Logger, attrs ...any) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger, Attrs: attrs}
}

func (s *SlogSink) Log(message string) {
	s.Logger.Info(message, s.Attrs...)
}

// Safe wraps sink so that a panicking sink never reaches the caller.
func Safe(sink Sink) Sink {
	if sink == nil {
		return Discard
	}
	if _, ok := sink.(safeSink); ok {
		return sink
	}
	return safeSink{inner: sink}
}

type safeSink struct {
	inner Sink
}

func (s safeSink) Log(message string) {
	defer func() { _ = recover() }()
	s.inner.Log(message)
}

// Recorder keeps every message in memory. Used by tests and the config command.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Log(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded messages.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}
