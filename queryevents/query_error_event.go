package queryevents

// QueryErrorEventType is the event type identifier.
const QueryErrorEventType = "QueryError"

// QueryErrorEvent is an immutable snapshot of one failed query attempt,
// carrying the originating error by identity.
//
// The event transports the error to interested observers; it does not
// inspect, interpret or wrap it. Interpretation of the error is the
// responsibility of the query executor and its callers.
//
// It should only be constructed with BuildQueryErrorEvent.
type QueryErrorEvent struct {
	query  QueryString
	params Params
	err    error
}

// BuildQueryErrorEvent creates a new QueryErrorEvent.
//
// It populates the event with the given query text, bound parameters and
// the error that caused the attempt to fail. No validation is performed,
// construction never fails.
func BuildQueryErrorEvent(query QueryString, params Params, err error) QueryErrorEvent {
	return QueryErrorEvent{
		query:  query,
		params: params,
		err:    err,
	}
}

func (e QueryErrorEvent) Query() QueryString {
	return e.query
}

func (e QueryErrorEvent) Params() Params {
	return e.params
}

// Err returns the originating error, the same value that was supplied at construction.
func (e QueryErrorEvent) Err() error {
	return e.err
}

// EventType returns the string identifier for this event type.
func (e QueryErrorEvent) EventType() EventTypeString {
	return QueryErrorEventType
}
