package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/model"
)

func TestCalculateDailyNutritionMuscleGainDefaults(t *testing.T) {
	t.Parallel()

	got := CalculateDailyNutrition(85, model.GoalMuscleGain, 1.6)
	assert.Equal(t, model.NutritionGoals{Calories: 4760, Protein: 170, Carbs: 536, Fat: 132}, got)
}

func TestCalculateDailyNutritionPerGoal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		goal model.Goal
		want model.NutritionGoals
	}{
		// 70 * 30 * 1.5 * 0.8 = 2520; 2520*0.45/4 = 283.5; 2520*0.25/9 = 70
		{"fat loss", model.GoalFatLoss, model.NutritionGoals{Calories: 2520, Protein: 154, Carbs: 284, Fat: 70}},
		// 70 * 32 * 1.5 = 3360; 3360*0.45/4 = 378; 3360*0.25/9 = 93.33
		{"maintenance", model.GoalMaintenance, model.NutritionGoals{Calories: 3360, Protein: 126, Carbs: 378, Fat: 93}},
		{"unknown falls back to maintenance", model.Goal("bulk"), model.NutritionGoals{Calories: 3360, Protein: 126, Carbs: 378, Fat: 93}},
		{"empty falls back to maintenance", model.Goal(""), model.NutritionGoals{Calories: 3360, Protein: 126, Carbs: 378, Fat: 93}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateDailyNutrition(70, tc.goal, 1.5))
		})
	}
}

func TestCalculateDailyNutritionNonNegativeAcrossRange(t *testing.T) {
	t.Parallel()

	for _, goal := range model.Goals {
		for w := 30.0; w <= 200; w += 7.5 {
			for _, preset := range model.ActivityPresets {
				got := CalculateDailyNutrition(w, goal, preset.Value)
				require.GreaterOrEqual(t, got.Calories, 0)
				require.GreaterOrEqual(t, got.Protein, 0)
				require.GreaterOrEqual(t, got.Carbs, 0)
				require.GreaterOrEqual(t, got.Fat, 0)
				require.Positive(t, got.Calories, "goal=%s weight=%v activity=%v", goal, w, preset.Value)
			}
		}
	}
}

func TestCalculateDailyNutritionDegenerateInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.NutritionGoals{}, CalculateDailyNutrition(0, model.GoalMuscleGain, 1.6))
	assert.Equal(t, model.NutritionGoals{}, CalculateDailyNutrition(-10, model.GoalFatLoss, 1.6))
}

func TestGoalsForProfileUsesAllFields(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CalculateDailyNutrition(85, model.GoalMuscleGain, 1.6), GoalsForProfile(model.DefaultProfile()))
}
