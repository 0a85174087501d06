package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	start := time.Date(2030, 6, 16, 10, 0, 0, 0, time.UTC)
	ev := booking.Event{
		Type:       booking.EventApproved,
		BookingID:  42,
		ItemID:     7,
		OwnerID:    1,
		BookerID:   2,
		Status:     booking.StatusApproved,
		Start:      start,
		End:        start.Add(time.Hour),
		OccurredAt: start.Add(-time.Hour),
	}

	t.Run("Encodes And Keys By Booking", func(t *testing.T) {
		w := &fakeWriter{}
		p := newKafkaPublisher(w, "booking-events", zap.NewNop())

		require.NoError(t, p.Publish(context.Background(), ev))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, "42", string(msg.Key))
		require.Len(t, msg.Headers, 1)
		assert.Equal(t, "booking.approved", string(msg.Headers[0].Value))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "booking.approved", decoded["type"])
		assert.Equal(t, "APPROVED", decoded["status"])
		assert.EqualValues(t, 42, decoded["bookingId"])
		assert.Equal(t, "2030-06-16T10:00:00Z", decoded["start"])
	})

	t.Run("Write Failure", func(t *testing.T) {
		w := &fakeWriter{err: errors.New("leader not available")}
		p := newKafkaPublisher(w, "booking-events", zap.NewNop())

		err := p.Publish(context.Background(), ev)
		assert.ErrorIs(t, err, w.err)
		assert.Contains(t, err.Error(), "booking-events")
	})

	t.Run("Close", func(t *testing.T) {
		w := &fakeWriter{}
		require.NoError(t, newKafkaPublisher(w, "t", zap.NewNop()).Close())
		assert.True(t, w.closed)
	})
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher(nil, "booking-events", zap.NewNop())
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), booking.Event{}))
	assert.NoError(t, p.Close())

	p = NewPublisher([]string{"localhost:9092"}, "booking-events", zap.NewNop())
	assert.IsType(t, &KafkaPublisher{}, p)
	assert.NoError(t, p.Close())
}
