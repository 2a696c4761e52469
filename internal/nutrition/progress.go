package nutrition

import (
	"time"

	"github.com/saadjs/nutripet/internal/model"
)

// StartOfDay returns local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MealsSince keeps meals whose timestamp is at or after cutoff, preserving order.
func MealsSince(meals []model.Meal, cutoff time.Time) []model.Meal {
	out := make([]model.Meal, 0, len(meals))
	for _, m := range meals {
		if !m.Timestamp.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

// SumMeals adds up the four macro fields.
func SumMeals(meals []model.Meal) model.Macros {
	var total model.Macros
	for _, m := range meals {
		total.Calories += m.Calories
		total.Protein += m.Protein
		total.Carbs += m.Carbs
		total.Fat += m.Fat
	}
	return total
}

// CalculateProgress compares what was eaten since local midnight of now
// against the daily goals. The meal log may be in any order.
func CalculateProgress(meals []model.Meal, goals model.NutritionGoals, now time.Time) model.Progress {
	consumed := SumMeals(MealsSince(meals, StartOfDay(now)))
	return ProgressFor(consumed, goals)
}

// ProgressFor turns consumed totals into capped percentages and remaining
// amounts. A goal of zero counts as 0% progress for that macro.
func ProgressFor(consumed model.Macros, goals model.NutritionGoals) model.Progress {
	return model.Progress{
		Calories: percentOf(consumed.Calories, goals.Calories),
		Protein:  percentOf(consumed.Protein, goals.Protein),
		Carbs:    percentOf(consumed.Carbs, goals.Carbs),
		Fat:      percentOf(consumed.Fat, goals.Fat),
		Remaining: model.Macros{
			Calories: remaining(goals.Calories, consumed.Calories),
			Protein:  remaining(goals.Protein, consumed.Protein),
			Carbs:    remaining(goals.Carbs, consumed.Carbs),
			Fat:      remaining(goals.Fat, consumed.Fat),
		},
	}
}

func percentOf(consumed, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := int(roundHalfUp(float64(consumed) / float64(goal) * 100))
	return clampPercent(pct)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func remaining(goal, consumed int) int {
	if consumed >= goal {
		return 0
	}
	return goal - consumed
}
