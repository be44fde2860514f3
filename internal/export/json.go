package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/forecast"
)

type jsonExport struct {
	ExportedAt     string       `json:"exported_at"`
	UserID         string       `json:"user_id"`
	Count          int          `json:"count"`
	GlobalAbility  float64      `json:"global_ability"`
	TotalRemaining float64      `json:"total_remaining_hours"`
	AchievementPct int          `json:"achievement_pct"`
	Tasks          []TaskRecord `json:"tasks"`
}

func ToJSON(w io.Writer, snap domain.Snapshot, now time.Time) error {
	summary := forecast.Summarize(snap)
	out := jsonExport{
		ExportedAt:     now.UTC().Format(time.RFC3339),
		UserID:         snap.UserID,
		Count:          len(snap.Tasks),
		GlobalAbility:  round2(summary.GlobalAbility),
		TotalRemaining: round2(summary.TotalRemaining),
		AchievementPct: summary.AchievementPct,
		Tasks:          Records(snap),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	return nil
}
