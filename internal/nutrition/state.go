package nutrition

import (
	"time"

	"github.com/saadjs/nutripet/internal/model"
)

type State struct {
	Goals    model.NutritionGoals `json:"goals"`
	Progress model.Progress       `json:"progress"`
	Hunger   float64              `json:"hunger"`
	Mood     model.Mood           `json:"mood"`
}

// DeriveState runs goals -> progress -> hunger -> mood in one pass. It is
// called after every change to the meal log or the profile.
func DeriveState(meals []model.Meal, profile model.Profile, now time.Time) State {
	goals := GoalsForProfile(profile)
	return DeriveWithGoals(meals, goals, now)
}

// DeriveWithGoals is DeriveState for callers that already hold goals.
func DeriveWithGoals(meals []model.Meal, goals model.NutritionGoals, now time.Time) State {
	progress := CalculateProgress(meals, goals, now)
	hunger := HungerLevel(progress)
	return State{
		Goals:    goals,
		Progress: progress,
		Hunger:   hunger,
		Mood:     MoodFor(hunger),
	}
}
