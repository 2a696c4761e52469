package nutrition

import (
	"math"
	"time"

	"github.com/saadjs/nutripet/internal/model"
)

// Macro weights for the hunger score. Protein counts most toward satiety.
const (
	proteinWeight  = 0.4
	caloriesWeight = 0.3
	carbsWeight    = 0.15
	fatWeight      = 0.15
)

const (
	// DefaultHunger is used when no hunger value was ever persisted.
	DefaultHunger = 100.0

	decayStep     = 5.0
	decayInterval = 30 * time.Minute
)

// HungerLevel maps progress percentages onto a single 0-100 score.
func HungerLevel(p model.Progress) float64 {
	weighted := float64(p.Protein)*proteinWeight +
		float64(p.Calories)*caloriesWeight +
		float64(p.Carbs)*carbsWeight +
		float64(p.Fat)*fatWeight
	return clampHunger(weighted)
}

// DecayHunger lowers a stored hunger value by 5 points for every full 30
// minutes between lastUpdated and now, never going below 0. A lastUpdated in
// the future applies no decay.
func DecayHunger(stored float64, lastUpdated, now time.Time) float64 {
	elapsed := now.Sub(lastUpdated)
	if elapsed <= 0 {
		return clampHunger(stored)
	}
	steps := math.Floor(elapsed.Minutes() / decayInterval.Minutes())
	return clampHunger(stored - decayStep*steps)
}

func clampHunger(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
