package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/model"
)

var testNow = time.Date(2026, time.March, 14, 15, 30, 0, 0, time.Local)

func meal(name string, at time.Time, kcal, p, c, f int) model.Meal {
	return model.Meal{Name: name, Timestamp: at, Calories: kcal, Protein: p, Carbs: c, Fat: f}
}

func TestCalculateProgressWorkedExample(t *testing.T) {
	t.Parallel()

	meals := []model.Meal{
		meal("breakfast", testNow.Add(-6*time.Hour), 800, 60, 90, 20),
		meal("lunch", testNow.Add(-2*time.Hour), 1200, 90, 110, 40),
	}
	goals := model.NutritionGoals{Calories: 2500, Protein: 170, Carbs: 280, Fat: 70}

	got := CalculateProgress(meals, goals, testNow)
	assert.Equal(t, model.Progress{
		Calories:  80,
		Protein:   88,
		Carbs:     71,
		Fat:       86,
		Remaining: model.Macros{Calories: 500, Protein: 20, Carbs: 80, Fat: 10},
	}, got)
}

func TestCalculateProgressExcludesYesterdayLateMeal(t *testing.T) {
	t.Parallel()

	midnight := StartOfDay(testNow)
	meals := []model.Meal{
		meal("late snack", midnight.Add(-time.Minute), 900, 40, 90, 30),
		meal("midnight toast", midnight, 100, 5, 15, 3),
	}
	goals := model.NutritionGoals{Calories: 1000, Protein: 100, Carbs: 100, Fat: 100}

	got := CalculateProgress(meals, goals, testNow)
	assert.Equal(t, 10, got.Calories)
	assert.Equal(t, 5, got.Protein)
	assert.Equal(t, 900, got.Remaining.Calories)
}

func TestCalculateProgressCapsAndClamps(t *testing.T) {
	t.Parallel()

	meals := []model.Meal{meal("feast", testNow, 5000, 300, 600, 200)}
	goals := model.NutritionGoals{Calories: 2000, Protein: 150, Carbs: 250, Fat: 70}

	got := CalculateProgress(meals, goals, testNow)
	assert.Equal(t, model.Progress{Calories: 100, Protein: 100, Carbs: 100, Fat: 100}, got)
}

func TestCalculateProgressZeroGoalIsZeroPercent(t *testing.T) {
	t.Parallel()

	meals := []model.Meal{meal("snack", testNow, 200, 10, 20, 5)}
	got := CalculateProgress(meals, model.NutritionGoals{Calories: 400}, testNow)

	assert.Equal(t, 50, got.Calories)
	assert.Zero(t, got.Protein)
	assert.Zero(t, got.Carbs)
	assert.Zero(t, got.Fat)
	assert.Equal(t, model.Macros{Calories: 200}, got.Remaining)
}

func TestCalculateProgressEmptyLog(t *testing.T) {
	t.Parallel()

	goals := model.NutritionGoals{Calories: 2500, Protein: 170, Carbs: 280, Fat: 70}
	got := CalculateProgress(nil, goals, testNow)
	assert.Equal(t, model.Progress{Remaining: goals}, got)
}

func TestCalculateProgressIsDeterministic(t *testing.T) {
	t.Parallel()

	meals := []model.Meal{
		meal("a", testNow.Add(-time.Hour), 321, 17, 40, 9),
		meal("b", testNow.Add(-30*time.Hour), 999, 99, 99, 99),
		meal("c", testNow.Add(-3*time.Hour), 654, 41, 70, 22),
	}
	goals := model.NutritionGoals{Calories: 2100, Protein: 150, Carbs: 230, Fat: 65}

	first := CalculateProgress(meals, goals, testNow)
	second := CalculateProgress(meals, goals, testNow)
	require.Equal(t, first, second)
}

func TestProgressRemainingMatchesGoalMinusConsumed(t *testing.T) {
	t.Parallel()

	goals := model.NutritionGoals{Calories: 2000, Protein: 150, Carbs: 250, Fat: 70}
	for consumed := 0; consumed <= 3000; consumed += 137 {
		got := ProgressFor(model.Macros{Calories: consumed, Protein: consumed / 10, Carbs: consumed / 8, Fat: consumed / 30}, goals)
		for _, pct := range []int{got.Calories, got.Protein, got.Carbs, got.Fat} {
			require.GreaterOrEqual(t, pct, 0)
			require.LessOrEqual(t, pct, 100)
		}
		if consumed <= goals.Calories {
			require.Equal(t, goals.Calories-consumed, got.Remaining.Calories)
		} else {
			require.Zero(t, got.Remaining.Calories)
		}
	}
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*60*60)
	at := time.Date(2026, time.January, 2, 0, 30, 0, 0, loc)
	got := StartOfDay(at)
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location())
}
