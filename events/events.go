// Package events decouples the session core from downstream consumers
// (persistence, analytics). Publishing is fire-and-forget: the core
// never waits on, or observes failures of, a consumer.
package events

// Domain event names.
const (
	RoomClosed       = "room:closed"
	AttendanceMarked = "attendance:marked"
)

type Event struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

type Publisher interface {
	Publish(name string, payload any)
}

// ChannelPublisher delivers events to an in-process channel. Publish
// never blocks: if the buffer is full the event is dropped, so a slow
// consumer cannot stall attendance marking.
type ChannelPublisher struct {
	ch chan Event
}

func NewChannelPublisher(buffer int) *ChannelPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelPublisher{ch: make(chan Event, buffer)}
}

func (p *ChannelPublisher) Publish(name string, payload any) {
	select {
	case p.ch <- Event{Name: name, Payload: payload}:
	default:
	}
}

// Events exposes the consumer side of the bus.
func (p *ChannelPublisher) Events() <-chan Event {
	return p.ch
}

// NopPublisher discards everything. Useful when no consumer is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) {}
