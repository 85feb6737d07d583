package queryevents

import (
	"math"
	"time"
)

// AfterQueryEventType is the event type identifier.
const AfterQueryEventType = "AfterQuery"

// AfterQueryEvent is an immutable snapshot of one successfully executed
// query attempt, carrying the measured execution time.
//
// It should only be constructed with BuildAfterQueryEvent.
type AfterQueryEvent struct {
	query   QueryString
	params  Params
	elapsed time.Duration
}

// BuildAfterQueryEvent creates a new AfterQueryEvent.
//
// It populates the event with the given query text, bound parameters and
// elapsed execution time. No validation is performed, construction never
// fails; a negative elapsed time is accepted as-is.
func BuildAfterQueryEvent(query QueryString, params Params, elapsed time.Duration) AfterQueryEvent {
	return AfterQueryEvent{
		query:   query,
		params:  params,
		elapsed: elapsed,
	}
}

func (e AfterQueryEvent) Query() QueryString {
	return e.query
}

func (e AfterQueryEvent) Params() Params {
	return e.params
}

func (e AfterQueryEvent) Elapsed() time.Duration {
	return e.elapsed
}

// ElapsedMilliseconds returns the elapsed time as float64 milliseconds with 3 decimal places.
func (e AfterQueryEvent) ElapsedMilliseconds() float64 {
	return math.Round(float64(e.elapsed.Nanoseconds())/1e6*1000) / 1000
}

// EventType returns the string identifier for this event type.
func (e AfterQueryEvent) EventType() EventTypeString {
	return AfterQueryEventType
}
