package queryevents

// EventDispatcher hands an event to zero or more observers and returns an
// event for the caller to continue using.
//
// The returned event must be usable wherever the input was usable;
// implementations typically return the same instance. The dispatcher must
// not execute or affect the query itself.
type EventDispatcher interface {
	Dispatch(event Event) Event
}

// EchoDispatcher is the degenerate EventDispatcher: it returns every event
// unchanged and performs no observable action. It is the default when no
// dispatcher is configured, so that code emitting events never has to
// special-case the "no observers" situation.
type EchoDispatcher struct{}

// Dispatch returns the given event unchanged.
func (EchoDispatcher) Dispatch(event Event) Event {
	return event
}

// Ensure EchoDispatcher implements EventDispatcher.
var _ EventDispatcher = EchoDispatcher{}
