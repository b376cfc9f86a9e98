package resource

// Handle is an opaque reference to a value in a Table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event describes a value entering or leaving a table.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives lifecycle notifications. It is called synchronously
// from Insert and Remove and must not call back into the table.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup when they
// are removed from a table or the table is closed.
type Dropper interface {
	Drop()
}
