package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/testutil"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var sample = domain.Notification{Title: "Deadline in 24h", Body: "Report is due", Tag: "deadline-t1-24", Key: "deadline-t1-24"}

type failing struct{ err error }

func (f failing) Dispatch(context.Context, string, domain.Notification) error { return f.err }

func TestLogDispatcher_WritesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewLogDispatcher(zap.New(core))

	require.NoError(t, d.Dispatch(context.Background(), "u1", sample))

	entries := logs.FilterMessage("notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "u1", fields["user_id"])
	assert.Equal(t, "deadline-t1-24", fields["tag"])
}

func TestNATSDispatcher_PublishesJSON(t *testing.T) {
	nc := testutil.StartNATS(t)
	msgs := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe(NotificationSubject("u1"), msgs)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	d := NewNATSDispatcher(nc)
	d.now = func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }
	require.NoError(t, d.Dispatch(context.Background(), "u1", sample))
	require.NoError(t, nc.Flush())

	select {
	case msg := <-msgs:
		var got Message
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "u1", got.UserID)
		assert.Equal(t, sample.Tag, got.Tag)
		assert.Equal(t, sample.Body, got.Body)
		assert.True(t, got.SentAt.Equal(time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)))
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	first, second := &Recorder{}, &Recorder{}
	boom := errors.New("push endpoint gone")
	f := Fanout{first, failing{boom}, nil, second}

	err := f.Dispatch(context.Background(), "u1", sample)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, first.Sent(), 1)
	assert.Len(t, second.Sent(), 1, "a failing channel must not block the rest")
}

func TestFanout_Empty(t *testing.T) {
	assert.NoError(t, Fanout(nil).Dispatch(context.Background(), "u1", sample))
}
