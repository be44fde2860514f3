package feed

import (
	"context"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"go.uber.org/zap"
)

// Poller reloads a user's snapshot on a fixed interval and hands each
// result to OnLoad.
type Poller struct {
	Source   Source
	UserID   string
	Interval time.Duration
	OnLoad   func(domain.Snapshot)
	Logger   *zap.Logger
}

// Run loads on every tick until ctx is cancelled. Load failures are logged
// and the previous snapshot stays in place.
func (p *Poller) Run(ctx context.Context) error {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			snap, err := p.Source.Load(ctx, p.UserID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("snapshot poll failed", zap.String("user_id", p.UserID), zap.Error(err))
				continue
			}
			p.OnLoad(snap)
		}
	}
}
