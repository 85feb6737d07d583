package sqlengine

import (
	"github.com/AntonStoeckl/sql-query-events-go/queryevents"
)

// Option defines a functional option for configuring an Executor.
type Option func(*Executor) error

// WithDispatcher sets the event dispatcher for the Executor.
// The dispatcher will receive a BeforeQueryEvent before every execution and
// exactly one AfterQueryEvent or QueryErrorEvent afterwards.
// Without this option, events are dispatched to queryevents.EchoDispatcher.
func WithDispatcher(dispatcher queryevents.EventDispatcher) Option {
	return func(e *Executor) error {
		e.dispatcher = dispatcher
		return nil
	}
}

// WithLogger sets the logger for the Executor.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Warn level: non-critical issues
// Error level: execution failures.
func WithLogger(logger queryevents.Logger) Option {
	return func(e *Executor) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Executor.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled. When both a logger and
// a contextual logger are configured, the contextual logger takes precedence.
func WithContextualLogger(logger queryevents.ContextualLogger) Option {
	return func(e *Executor) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Executor.
// The metrics collector will receive query/exec durations and error counters.
func WithMetrics(collector queryevents.MetricsCollector) Option {
	return func(e *Executor) error {
		e.metricsCollector = collector
		return nil
	}
}
