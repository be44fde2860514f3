package feed

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	loads atomic.Int32
	fail  bool
}

func (c *countingSource) Load(_ context.Context, userID string) (domain.Snapshot, error) {
	n := c.loads.Add(1)
	if c.fail {
		return domain.Snapshot{}, errors.New("store unavailable")
	}
	return domain.Snapshot{UserID: userID, Tasks: make([]domain.Task, n)}, nil
}

func TestPoller_ReplacesSnapshotEachTick(t *testing.T) {
	src := &countingSource{}
	var latest atomic.Pointer[domain.Snapshot]
	p := &Poller{
		Source:   src,
		UserID:   "u1",
		Interval: 5 * time.Millisecond,
		OnLoad:   func(s domain.Snapshot) { latest.Store(&s) },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		s := latest.Load()
		return s != nil && len(s.Tasks) >= 3
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, "u1", latest.Load().UserID)
}

func TestPoller_KeepsRunningAfterLoadError(t *testing.T) {
	src := &countingSource{fail: true}
	called := false
	p := &Poller{
		Source:   src,
		UserID:   "u1",
		Interval: 2 * time.Millisecond,
		OnLoad:   func(domain.Snapshot) { called = true },
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return src.loads.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.False(t, called)
}
