package nutrition

import "github.com/saadjs/nutripet/internal/model"

const (
	happyAbove  = 70.0
	sleepyAbove = 30.0
)

// MoodFor classifies a hunger score. It has no memory of earlier moods.
func MoodFor(hunger float64) model.Mood {
	switch {
	case hunger > happyAbove:
		return model.MoodHappy
	case hunger > sleepyAbove:
		return model.MoodSleepy
	default:
		return model.MoodHungry
	}
}
