package queryevents

// NullLogger is the discard Logger: every call is a correctly handled no-op
// regardless of input. It is the standard "no logging configured" default.
type NullLogger struct{}

// Debug discards the message and all arguments.
func (NullLogger) Debug(_ string, _ ...any) {}

// Info discards the message and all arguments.
func (NullLogger) Info(_ string, _ ...any) {}

// Warn discards the message and all arguments.
func (NullLogger) Warn(_ string, _ ...any) {}

// Error discards the message and all arguments.
func (NullLogger) Error(_ string, _ ...any) {}

// Ensure NullLogger implements Logger.
var _ Logger = NullLogger{}
