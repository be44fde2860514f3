package reminder

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/pacer/internal/domain"
)

// storedConfig is the union of every persisted schema version. Version 1
// payloads predate the version field and carry a single leadHours value.
type storedConfig struct {
	Version             int    `json:"version"`
	LeadHours           *int   `json:"leadHours,omitempty"`
	DeadlineLeadTimes   []int  `json:"deadlineLeadTimes"`
	DailySummaryTime    string `json:"dailySummaryTime,omitempty"`
	EnableSlotReminders *bool  `json:"enableSlotReminders,omitempty"`
}

// ParseConfig decodes a stored notification config, migrating older schema
// versions to the current one. migrated reports whether the payload should be
// written back. An empty payload yields the defaults.
func ParseConfig(payload []byte) (cfg domain.NotificationConfig, migrated bool, err error) {
	if len(payload) == 0 {
		return domain.DefaultNotificationConfig(), false, nil
	}
	var raw storedConfig
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.NotificationConfig{}, false, fmt.Errorf("decoding notification config: %w", err)
	}
	switch {
	case raw.Version == 0 || raw.Version == 1:
		return migrateV1(raw), true, nil
	case raw.Version == domain.NotificationConfigVersion:
		return fromStored(raw), false, nil
	default:
		return domain.NotificationConfig{}, false, fmt.Errorf("unsupported notification config version %d", raw.Version)
	}
}

// migrateV1 upgrades a version 1 payload: the single lead hour becomes a
// one-element list.
func migrateV1(raw storedConfig) domain.NotificationConfig {
	def := domain.DefaultNotificationConfig()
	leads := []int{domain.Deref(def.DeadlineLeadTimes[0], raw.LeadHours)}
	return domain.NotificationConfig{
		Version:             domain.NotificationConfigVersion,
		DeadlineLeadTimes:   domain.NormalizeLeadTimes(leads),
		DailySummaryTime:    domain.Coalesce(raw.DailySummaryTime, def.DailySummaryTime),
		EnableSlotReminders: domain.Deref(def.EnableSlotReminders, raw.EnableSlotReminders),
	}
}

func fromStored(raw storedConfig) domain.NotificationConfig {
	def := domain.DefaultNotificationConfig()
	leads := raw.DeadlineLeadTimes
	if leads == nil {
		leads = def.DeadlineLeadTimes
	}
	return domain.NotificationConfig{
		Version:             domain.NotificationConfigVersion,
		DeadlineLeadTimes:   domain.NormalizeLeadTimes(leads),
		DailySummaryTime:    domain.Coalesce(raw.DailySummaryTime, def.DailySummaryTime),
		EnableSlotReminders: domain.Deref(def.EnableSlotReminders, raw.EnableSlotReminders),
	}
}

// EncodeConfig serialises cfg at the current schema version.
func EncodeConfig(cfg domain.NotificationConfig) ([]byte, error) {
	enabled := cfg.EnableSlotReminders
	leads := domain.NormalizeLeadTimes(cfg.DeadlineLeadTimes)
	payload, err := json.Marshal(storedConfig{
		Version:             domain.NotificationConfigVersion,
		DeadlineLeadTimes:   leads,
		DailySummaryTime:    cfg.DailySummaryTime,
		EnableSlotReminders: &enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding notification config: %w", err)
	}
	return payload, nil
}
