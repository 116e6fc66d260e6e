package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct {
	calls int
}

func (s *failingSink) Publish(context.Context, Event) error {
	s.calls++
	return errors.New("sink down")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherStampsAndDelivers(t *testing.T) {
	sink := NewMemorySink(0)
	publisher := NewPublisher(testLogger(), sink)

	publisher.Emit(context.Background(), Event{Type: TypeReportCreated, ReportID: 1})
	publisher.Emit(context.Background(), Event{Type: TypePotentialMatch, LostID: 1, FoundID: 2, Score: 9100})

	logged := sink.All()
	require.Len(t, logged, 2)
	assert.Equal(t, TypeReportCreated, logged[0].Type)
	assert.Equal(t, TypePotentialMatch, logged[1].Type)
	for _, event := range logged {
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.False(t, event.Timestamp.IsZero())
	}
	assert.NotEqual(t, logged[0].ID, logged[1].ID)
}

func TestPublisherFailOpen(t *testing.T) {
	broken := &failingSink{}
	healthy := NewMemorySink(0)
	publisher := NewPublisher(testLogger(), broken, healthy)

	publisher.Emit(context.Background(), Event{Type: TypeItemReturned, LostID: 1, FoundID: 2})

	// The failing sink does not block delivery to later sinks.
	assert.Equal(t, 1, broken.calls)
	assert.Len(t, healthy.All(), 1)
}

func TestMemorySinkBound(t *testing.T) {
	sink := NewMemorySink(3)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, sink.Publish(context.Background(), Event{Type: TypeReportCreated, ReportID: i}))
	}

	logged := sink.All()
	require.Len(t, logged, 3)
	assert.Equal(t, int64(3), logged[0].ReportID)
	assert.Equal(t, int64(5), logged[2].ReportID)
}

func TestMemorySinkRecent(t *testing.T) {
	sink := NewMemorySink(0)
	for i := int64(1); i <= 4; i++ {
		require.NoError(t, sink.Publish(context.Background(), Event{Type: TypeReportCreated, ReportID: i}))
	}

	recent := sink.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].ReportID)
	assert.Equal(t, int64(4), recent[1].ReportID)

	assert.Len(t, sink.Recent(0), 4)
	assert.Len(t, sink.Recent(100), 4)
}
