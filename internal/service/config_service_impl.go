package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/reminder"
	"github.com/alexanderramin/pacer/internal/repository"
	"go.uber.org/zap"
)

type configService struct {
	configs repository.NotificationConfigRepo
	settings
}

func NewConfigService(configs repository.NotificationConfigRepo, opts ...Option) ConfigService {
	return &configService{configs: configs, settings: newSettings(opts)}
}

// Get returns the user's notification settings. A legacy payload is
// migrated and written back so it is converted only once.
func (s *configService) Get(ctx context.Context, userID string) (domain.NotificationConfig, error) {
	payload, err := s.configs.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultNotificationConfig(), nil
	}
	if err != nil {
		return domain.NotificationConfig{}, err
	}

	cfg, migrated, err := reminder.ParseConfig(payload)
	if err != nil {
		return domain.NotificationConfig{}, fmt.Errorf("reading notification config for %s: %w", userID, err)
	}
	if migrated {
		if err := s.put(ctx, userID, cfg); err != nil {
			return domain.NotificationConfig{}, err
		}
		s.logger.Info("migrated notification config",
			zap.String("user_id", userID),
			zap.Int("version", cfg.Version),
		)
	}
	return cfg, nil
}

func (s *configService) SetLeadTimes(ctx context.Context, userID string, leads []int) (domain.NotificationConfig, error) {
	for _, l := range leads {
		if l <= 0 {
			return domain.NotificationConfig{}, invalid(fmt.Errorf("lead time must be a positive number of hours, got %d", l))
		}
	}
	return s.update(ctx, userID, func(cfg *domain.NotificationConfig) {
		cfg.DeadlineLeadTimes = domain.NormalizeLeadTimes(leads)
	})
}

func (s *configService) SetDailySummary(ctx context.Context, userID, clock string) (domain.NotificationConfig, error) {
	h, m, ok := domain.ParseClock(clock)
	if !ok {
		return domain.NotificationConfig{}, invalid(fmt.Errorf("summary time %q must be HH:MM", clock))
	}
	return s.update(ctx, userID, func(cfg *domain.NotificationConfig) {
		cfg.DailySummaryTime = fmt.Sprintf("%02d:%02d", h, m)
	})
}

func (s *configService) SetSlotReminders(ctx context.Context, userID string, enabled bool) (domain.NotificationConfig, error) {
	return s.update(ctx, userID, func(cfg *domain.NotificationConfig) {
		cfg.EnableSlotReminders = enabled
	})
}

func (s *configService) update(ctx context.Context, userID string, change func(*domain.NotificationConfig)) (domain.NotificationConfig, error) {
	cfg, err := s.Get(ctx, userID)
	if err != nil {
		return domain.NotificationConfig{}, err
	}
	change(&cfg)
	cfg.Version = domain.NotificationConfigVersion
	if err := s.put(ctx, userID, cfg); err != nil {
		return domain.NotificationConfig{}, err
	}
	s.changes.Changed(ctx, userID)
	return cfg, nil
}

func (s *configService) put(ctx context.Context, userID string, cfg domain.NotificationConfig) error {
	payload, err := reminder.EncodeConfig(cfg)
	if err != nil {
		return fmt.Errorf("encoding notification config: %w", err)
	}
	return s.configs.Put(ctx, userID, payload)
}
