package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/model"
)

func TestHungerLevelWorkedExample(t *testing.T) {
	t.Parallel()

	p := model.Progress{Protein: 88, Calories: 80, Carbs: 71, Fat: 86}
	hunger := HungerLevel(p)
	assert.InDelta(t, 82.75, hunger, 1e-9)
	assert.Equal(t, model.MoodHappy, MoodFor(hunger))
}

func TestHungerLevelBounds(t *testing.T) {
	t.Parallel()

	for pct := 0; pct <= 100; pct += 5 {
		p := model.Progress{Protein: pct, Calories: 100 - pct, Carbs: pct, Fat: 100 - pct}
		h := HungerLevel(p)
		require.GreaterOrEqual(t, h, 0.0)
		require.LessOrEqual(t, h, 100.0)
	}
	assert.InDelta(t, 100.0, HungerLevel(model.Progress{Protein: 100, Calories: 100, Carbs: 100, Fat: 100}), 1e-9)
	assert.Zero(t, HungerLevel(model.Progress{}))
}

func TestDecayHunger(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		stored  float64
		elapsed time.Duration
		want    float64
	}{
		{"worked example", 60, 95 * time.Minute, 45},
		{"under one interval", 60, 29 * time.Minute, 60},
		{"exactly one interval", 60, 30 * time.Minute, 55},
		{"floors at zero", 20, 10 * time.Hour, 0},
		{"future timestamp", 60, -2 * time.Hour, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecayHunger(tc.stored, now.Add(-tc.elapsed), now)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
