package nutrition

import (
	"time"

	"github.com/saadjs/nutripet/internal/model"
)

type DayStats struct {
	MealCount int          `json:"meal_count"`
	Totals    model.Macros `json:"totals"`
}

// TodayStats counts and sums the meals eaten since local midnight of now.
func TodayStats(meals []model.Meal, now time.Time) DayStats {
	today := MealsSince(meals, StartOfDay(now))
	return DayStats{MealCount: len(today), Totals: SumMeals(today)}
}

// PercentOfGoal reports value as a capped percentage of goal. ok is false when
// there is no goal to compare against.
func PercentOfGoal(value, goal int) (int, bool) {
	if goal <= 0 {
		return 0, false
	}
	return percentOf(value, goal), true
}
