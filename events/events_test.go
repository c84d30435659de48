package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelPublisherDelivers(t *testing.T) {
	p := NewChannelPublisher(4)
	p.Publish(RoomClosed, "payload")

	ev := <-p.Events()
	assert.Equal(t, RoomClosed, ev.Name)
	assert.Equal(t, "payload", ev.Payload)
}

func TestChannelPublisherNeverBlocks(t *testing.T) {
	p := NewChannelPublisher(1)
	// more events than capacity; the overflow is dropped, not waited on
	for i := 0; i < 10; i++ {
		p.Publish(AttendanceMarked, i)
	}
	require.Len(t, p.Events(), 1)
}

func TestNopPublisher(t *testing.T) {
	NopPublisher{}.Publish(RoomClosed, nil)
}
