package nutrition

import (
	"math"

	"github.com/saadjs/nutripet/internal/model"
)

const (
	carbsShare = 0.45
	fatShare   = 0.25

	kcalPerGramCarbs = 4
	kcalPerGramFat   = 9

	fatLossDeficit = 0.8
)

// goalFactors holds protein grams per kg and calories per kg for a goal.
type goalFactors struct {
	proteinPerKg  float64
	caloriesPerKg float64
	calorieScale  float64
}

func factorsFor(goal model.Goal) goalFactors {
	switch goal {
	case model.GoalMuscleGain:
		return goalFactors{proteinPerKg: 2.0, caloriesPerKg: 35, calorieScale: 1}
	case model.GoalFatLoss:
		return goalFactors{proteinPerKg: 2.2, caloriesPerKg: 30, calorieScale: fatLossDeficit}
	default:
		// maintenance, and any unrecognized goal value
		return goalFactors{proteinPerKg: 1.8, caloriesPerKg: 32, calorieScale: 1}
	}
}

// CalculateDailyNutrition derives daily targets from body weight, fitness
// goal and activity multiplier. Intermediate values stay unrounded; only the
// four outputs are rounded. Inputs are not validated.
func CalculateDailyNutrition(weightKg float64, goal model.Goal, activityLevel float64) model.NutritionGoals {
	f := factorsFor(goal)
	protein := weightKg * f.proteinPerKg
	calories := weightKg * f.caloriesPerKg * activityLevel
	if f.calorieScale != 1 {
		calories = calories * f.calorieScale
	}
	carbsCalories := calories * carbsShare
	fatCalories := calories * fatShare

	return model.NutritionGoals{
		Calories: roundNonNegative(calories),
		Protein:  roundNonNegative(protein),
		Carbs:    roundNonNegative(carbsCalories / kcalPerGramCarbs),
		Fat:      roundNonNegative(fatCalories / kcalPerGramFat),
	}
}

// GoalsForProfile is CalculateDailyNutrition over a stored profile.
func GoalsForProfile(p model.Profile) model.NutritionGoals {
	return CalculateDailyNutrition(p.WeightKg, p.Goal, p.ActivityLevel)
}

// roundHalfUp rounds .5 toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundNonNegative(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxInt32
	}
	return int(roundHalfUp(v))
}
