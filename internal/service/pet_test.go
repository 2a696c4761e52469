package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/nutrition"
	"github.com/saadjs/nutripet/internal/service"
)

func TestSnapshotFreshStore(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	state, err := service.Snapshot(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, model.NutritionGoals{Calories: 4760, Protein: 170, Carbs: 536, Fat: 132}, state.Goals)
	assert.Equal(t, 100.0, state.Hunger)
	assert.Equal(t, model.MoodHappy, state.Mood)
	assert.False(t, state.MoodOverridden)
	assert.Equal(t, "Very Satisfied", state.SatietyLabel)
	assert.Equal(t, nutrition.MeterGreen, state.MeterColor)
	assert.Empty(t, state.Insight, "no meals, no insight")
	assert.Empty(t, state.Message, "no meals, no avatar message")

	goals, err := service.LoadGoals(db)
	require.NoError(t, err)
	require.NotNil(t, goals, "snapshot persists missing goals")
	assert.Equal(t, state.Goals, *goals)

	reading, err := service.LoadHunger(db, testNow)
	require.NoError(t, err)
	assert.True(t, reading.Present)
	assert.Equal(t, 100.0, reading.Stored)
}

func TestSnapshotDecaysStoredHungerWithEmptyLog(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	require.NoError(t, service.SaveHunger(db, 60, testNow))

	state, err := service.Snapshot(db, testNow.Add(95*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 45.0, state.Hunger)
	assert.Equal(t, model.MoodSleepy, state.Mood)

	reading, err := service.LoadHunger(db, testNow.Add(95*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 45.0, reading.Stored)
}

func TestSnapshotWithinDecayIntervalKeepsTimestamp(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	require.NoError(t, service.SaveHunger(db, 60, testNow))
	_, err := service.Snapshot(db, testNow.Add(20*time.Minute))
	require.NoError(t, err)

	state, err := service.Snapshot(db, testNow.Add(40*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 55.0, state.Hunger)
}

func TestLogMealForcesHappyThenSnapshotRederives(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	state, err := service.LogMeal(db, service.MealInput{Name: "Chicken salad", Calories: 500, Protein: 40, Carbs: 50, Fat: 15}, testNow)
	require.NoError(t, err)
	assert.Equal(t, model.MoodHappy, state.Mood)
	assert.True(t, state.MoodOverridden)
	assert.Equal(t, "😺", state.Face)
	assert.Equal(t, model.Progress{
		Calories:  11,
		Protein:   24,
		Carbs:     9,
		Fat:       11,
		Remaining: model.Macros{Calories: 4260, Protein: 130, Carbs: 486, Fat: 117},
	}, state.Progress)
	assert.InDelta(t, 15.9, state.Hunger, 1e-9)
	assert.Equal(t, 1, state.Today.MealCount)

	again, err := service.Snapshot(db, testNow.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, model.MoodHungry, again.Mood)
	assert.False(t, again.MoodOverridden)
	assert.InDelta(t, 15.9, again.Hunger, 1e-9)
}

func TestLogMealRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	_, err := service.LogMeal(db, service.MealInput{Name: "", Calories: 100}, testNow)
	require.Error(t, err)
}

func TestSnapshotIgnoresYesterdaysMeals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	_, err := service.AppendMeal(db, service.MealInput{Name: "Late dinner", Calories: 4000, Protein: 170, Carbs: 500, Fat: 130, Timestamp: midnight.Add(-time.Minute)}, testNow)
	require.NoError(t, err)

	state, err := service.Snapshot(db, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Progress.Calories)
	assert.Equal(t, 0.0, state.Hunger, "a non-empty log derives hunger from today's meals")
	assert.Equal(t, model.MoodHungry, state.Mood)
	assert.Equal(t, 0, state.Today.MealCount)
}

func TestUpdateProfileRecomputesGoals(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	state, err := service.UpdateProfile(db, model.Profile{WeightKg: 70, Goal: model.GoalFatLoss, ActivityLevel: 1.5}, testNow)
	require.NoError(t, err)
	assert.Equal(t, model.NutritionGoals{Calories: 2520, Protein: 154, Carbs: 284, Fat: 70}, state.Goals)

	goals, err := service.LoadGoals(db)
	require.NoError(t, err)
	require.NotNil(t, goals)
	assert.Equal(t, state.Goals, *goals)

	_, err = service.UpdateProfile(db, model.Profile{WeightKg: 10, Goal: model.GoalFatLoss, ActivityLevel: 1.5}, testNow)
	assert.ErrorIs(t, err, service.ErrInvalidProfile)
	assert.Equal(t, 70.0, service.LoadProfile(db).WeightKg)
}
