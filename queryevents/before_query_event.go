package queryevents

// BeforeQueryEventType is the event type identifier.
const BeforeQueryEventType = "BeforeQuery"

// BeforeQueryEvent is an immutable snapshot of one query attempt, taken
// immediately before the statement is executed.
//
// It should only be constructed with BuildBeforeQueryEvent.
type BeforeQueryEvent struct {
	query  QueryString
	params Params
}

// BuildBeforeQueryEvent creates a new BeforeQueryEvent.
//
// It populates the event with the given query text and bound parameters.
// No validation is performed, construction never fails.
func BuildBeforeQueryEvent(query QueryString, params Params) BeforeQueryEvent {
	return BeforeQueryEvent{
		query:  query,
		params: params,
	}
}

func (e BeforeQueryEvent) Query() QueryString {
	return e.query
}

func (e BeforeQueryEvent) Params() Params {
	return e.params
}

// EventType returns the string identifier for this event type.
func (e BeforeQueryEvent) EventType() EventTypeString {
	return BeforeQueryEventType
}
