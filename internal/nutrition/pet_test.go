package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/saadjs/nutripet/internal/model"
)

func TestSatietyLabelAndColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Very Satisfied", SatietyLabel(82.75))
	assert.Equal(t, "Satisfied", SatietyLabel(61))
	assert.Equal(t, "A Bit Hungry", SatietyLabel(60))
	assert.Equal(t, "Hungry", SatietyLabel(21))
	assert.Equal(t, "Starving", SatietyLabel(20))

	assert.Equal(t, MeterGreen, MeterColorFor(71))
	assert.Equal(t, MeterAmber, MeterColorFor(70))
	assert.Equal(t, MeterRed, MeterColorFor(30))
}

func TestFaceAndAnimation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "😺", Face(model.MoodHappy))
	assert.Equal(t, "wiggle", Animation(model.MoodHungry))
	assert.Equal(t, "🐱", Face(model.Mood("")))
	assert.Empty(t, Animation(model.Mood("")))
}

func TestMeterInsight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		p    model.Progress
		want string
	}{
		{"low calories first", model.Progress{Calories: 10, Protein: 5}, "Your pet is hungry! Time to eat something."},
		{"protein lowest", model.Progress{Calories: 50, Protein: 20, Carbs: 40, Fat: 40}, "Your pet needs more protein to build muscle!"},
		{"carbs lowest", model.Progress{Calories: 50, Protein: 40, Carbs: 20, Fat: 40}, "Your pet needs more energy from carbs!"},
		{"fat lowest", model.Progress{Calories: 50, Protein: 40, Carbs: 40, Fat: 20}, "Your pet needs healthy fats for hormone balance!"},
		{"tie goes to protein", model.Progress{Calories: 50, Protein: 20, Carbs: 20, Fat: 20}, "Your pet needs more protein to build muscle!"},
		{"full", model.Progress{Calories: 95, Protein: 90, Carbs: 90, Fat: 90}, "Your pet is fully satisfied for now!"},
		{"fine", model.Progress{Calories: 60, Protein: 60, Carbs: 60, Fat: 60}, "Your pet is doing well with nutrition!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MeterInsight(tc.p))
		})
	}
}

func TestAvatarMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Your pet is hungry!", AvatarMessage(model.Progress{Calories: 29}))
	assert.Equal(t, "Your pet needs more healthy fats!", AvatarMessage(model.Progress{Calories: 70, Protein: 80, Carbs: 70, Fat: 50}))
	assert.Equal(t, "Your pet is happy and energized!", AvatarMessage(model.Progress{Calories: 96, Protein: 90, Carbs: 90, Fat: 90}))
	assert.Empty(t, AvatarMessage(model.Progress{Calories: 80, Protein: 80, Carbs: 80, Fat: 80}))
}

func TestTodayStatsAndPercentOfGoal(t *testing.T) {
	t.Parallel()

	meals := []model.Meal{
		meal("dinner yesterday", StartOfDay(testNow).Add(-2*time.Hour), 700, 40, 60, 20),
		meal("oats", testNow.Add(-5*time.Hour), 350, 12, 60, 6),
		meal("wrap", testNow.Add(-time.Hour), 550, 35, 45, 18),
	}
	stats := TodayStats(meals, testNow)
	assert.Equal(t, 2, stats.MealCount)
	assert.Equal(t, model.Macros{Calories: 900, Protein: 47, Carbs: 105, Fat: 24}, stats.Totals)

	pct, ok := PercentOfGoal(900, 2000)
	assert.True(t, ok)
	assert.Equal(t, 45, pct)

	_, ok = PercentOfGoal(900, 0)
	assert.False(t, ok)
}
