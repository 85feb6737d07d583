package queryevents

type EventTypeString = string
type QueryString = string

// Event is the contract implemented by all query lifecycle events.
type Event interface {
	EventType() EventTypeString
}
