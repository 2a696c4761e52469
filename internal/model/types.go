package model

import "time"

type Goal string

const (
	GoalMuscleGain  Goal = "muscle_gain"
	GoalFatLoss     Goal = "fat_loss"
	GoalMaintenance Goal = "maintenance"
)

// Goals lists the recognized fitness goals in display order.
var Goals = []Goal{GoalMuscleGain, GoalFatLoss, GoalMaintenance}

func (g Goal) Valid() bool {
	switch g {
	case GoalMuscleGain, GoalFatLoss, GoalMaintenance:
		return true
	}
	return false
}

const (
	DefaultWeightKg      = 85.0
	DefaultGoal          = GoalMuscleGain
	DefaultActivityLevel = 1.6
)

type Profile struct {
	WeightKg      float64 `json:"weight_kg"`
	Goal          Goal    `json:"goal"`
	ActivityLevel float64 `json:"activity_level"`
}

func DefaultProfile() Profile {
	return Profile{WeightKg: DefaultWeightKg, Goal: DefaultGoal, ActivityLevel: DefaultActivityLevel}
}

type ActivityPreset struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

var ActivityPresets = []ActivityPreset{
	{Value: 1.2, Label: "Sedentary (little or no exercise)"},
	{Value: 1.375, Label: "Light activity (1-3 days/week)"},
	{Value: 1.55, Label: "Moderate activity (3-5 days/week)"},
	{Value: 1.725, Label: "Very active (6-7 days/week)"},
	{Value: 1.9, Label: "Extremely active (physical job or 2x training)"},
}

// Macros is the four-field calorie/protein/carbs/fat tuple used for goals,
// sums and remaining amounts.
type Macros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type NutritionGoals = Macros

type Meal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Calories    int       `json:"calories"`
	Protein     int       `json:"protein"`
	Carbs       int       `json:"carbs"`
	Fat         int       `json:"fat"`
	Timestamp   time.Time `json:"timestamp"`
	ServingSize string    `json:"serving_size,omitempty"`
	Source      string    `json:"source,omitempty"`
}

func (m Meal) Macros() Macros {
	return Macros{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}

type Progress struct {
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Carbs     int    `json:"carbs"`
	Fat       int    `json:"fat"`
	Remaining Macros `json:"remaining"`
}

type Mood string

const (
	MoodHappy  Mood = "happy"
	MoodSleepy Mood = "sleepy"
	MoodHungry Mood = "hungry"
)
