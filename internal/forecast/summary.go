package forecast

import (
	"math"
	"sort"

	"github.com/alexanderramin/pacer/internal/domain"
)

// Summary aggregates the forecast across a snapshot.
type Summary struct {
	GlobalAbility  float64
	TotalRemaining float64 // over incomplete tasks
	AchievementPct int     // mean progress across all tasks
	UnsafeTaskIDs  []string
	Tasks          map[string]TaskForecast
}

func Summarize(snap domain.Snapshot) Summary {
	abilities := EstimateAbility(snap.Tasks)
	forecasts := Forecast(snap)

	s := Summary{GlobalAbility: abilities.Global, Tasks: forecasts}
	var progressSum int
	for _, t := range snap.Tasks {
		progressSum += domain.ClampProgress(t.Progress)
		if t.Completed {
			continue
		}
		f := forecasts[t.ID]
		s.TotalRemaining += f.Remaining
		if !f.Safe {
			s.UnsafeTaskIDs = append(s.UnsafeTaskIDs, t.ID)
		}
	}
	if len(snap.Tasks) > 0 {
		s.AchievementPct = int(math.Round(float64(progressSum) / float64(len(snap.Tasks))))
	}
	sort.Strings(s.UnsafeTaskIDs)
	return s
}
