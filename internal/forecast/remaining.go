package forecast

import (
	"math"

	"github.com/alexanderramin/pacer/internal/domain"
)

// MinAbility floors the divisor so a very slow track record caps the effort
// multiplier at 10x.
const MinAbility = 0.1

// RemainingHours forecasts the calendar hours a task still needs at the given
// ability. The result is always finite and non-negative.
func RemainingHours(estimatedHours float64, progress int, ability float64) float64 {
	raw := domain.SanitizeHours(estimatedHours) * (1 - float64(domain.ClampProgress(progress))/100)
	if math.IsNaN(ability) {
		ability = MinAbility
	}
	rem := raw / math.Max(ability, MinAbility)
	if math.IsNaN(rem) || math.IsInf(rem, 0) || rem < 0 {
		return 0
	}
	return rem
}

// TaskRemaining forecasts remaining hours for t using its ability from a.
func TaskRemaining(t domain.Task, a Abilities) float64 {
	return RemainingHours(t.EstimatedHours, t.Progress, a.For(t.ID))
}
