package service

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/nutrition"
)

// PetState is everything the pet views render: the derived nutrition state
// plus its presentation.
type PetState struct {
	Profile  model.Profile        `json:"profile"`
	Goals    model.NutritionGoals `json:"goals"`
	Progress model.Progress       `json:"progress"`
	Hunger   float64              `json:"hunger"`
	Mood     model.Mood           `json:"mood"`
	// MoodOverridden is set right after a meal is logged, when the pet is
	// shown happy regardless of its score.
	MoodOverridden bool                 `json:"mood_overridden"`
	Today          nutrition.DayStats   `json:"today"`
	SatietyLabel   string               `json:"satiety_label"`
	MeterColor     nutrition.MeterColor `json:"meter_color"`
	Face           string               `json:"face"`
	Animation      string               `json:"animation"`
	Insight        string               `json:"insight,omitempty"`
	Message        string               `json:"message,omitempty"`
	Meals          []model.Meal         `json:"-"`
	At             time.Time            `json:"at"`
}

// Snapshot loads everything and works out where the pet stands at now.
// Goals are computed and stored if missing. With an empty meal log the pet's
// hunger is the stored value decayed to now; otherwise it is derived from
// today's meals. The resulting hunger is persisted when it changed.
func Snapshot(db *sql.DB, now time.Time) (*PetState, error) {
	profile := LoadProfile(db)
	goals, err := ensureGoals(db, profile)
	if err != nil {
		return nil, err
	}
	meals, err := LoadMeals(db)
	if err != nil {
		return nil, err
	}
	reading, err := LoadHunger(db, now)
	if err != nil {
		return nil, err
	}

	state := nutrition.DeriveWithGoals(meals, goals, now)
	hunger := state.Hunger
	if len(meals) == 0 {
		hunger = reading.Value
	}
	if !reading.Present || hunger != reading.Stored {
		if err := SaveHunger(db, hunger, now); err != nil {
			return nil, err
		}
	}
	return newPetState(profile, goals, meals, state.Progress, hunger, now), nil
}

// LogMeal appends a meal, re-derives the pet and reports it as happy.
func LogMeal(db *sql.DB, in MealInput, now time.Time) (*PetState, error) {
	meal, err := AppendMeal(db, in, now)
	if err != nil {
		return nil, err
	}
	slog.Debug("meal logged", "id", meal.ID, "name", meal.Name, "calories", meal.Calories, "source", meal.Source)

	profile := LoadProfile(db)
	goals, err := ensureGoals(db, profile)
	if err != nil {
		return nil, err
	}
	meals, err := LoadMeals(db)
	if err != nil {
		return nil, err
	}
	state := nutrition.DeriveWithGoals(meals, goals, now)
	if err := SaveHunger(db, state.Hunger, now); err != nil {
		return nil, err
	}
	pet := newPetState(profile, goals, meals, state.Progress, state.Hunger, now)
	pet.Mood = model.MoodHappy
	pet.MoodOverridden = true
	pet.Face = nutrition.Face(pet.Mood)
	pet.Animation = nutrition.Animation(pet.Mood)
	return pet, nil
}

// UpdateProfile validates and stores p, recomputes the goals from it and
// re-derives the pet.
func UpdateProfile(db *sql.DB, p model.Profile, now time.Time) (*PetState, error) {
	if err := SaveProfile(db, p); err != nil {
		return nil, err
	}
	goals := nutrition.GoalsForProfile(p)
	if err := SaveGoals(db, goals); err != nil {
		return nil, err
	}
	slog.Debug("profile updated", "weight_kg", p.WeightKg, "goal", p.Goal, "activity_level", p.ActivityLevel, "calories", goals.Calories)
	return Snapshot(db, now)
}

func ensureGoals(db *sql.DB, profile model.Profile) (model.NutritionGoals, error) {
	stored, err := LoadGoals(db)
	if err != nil {
		return model.NutritionGoals{}, err
	}
	if stored != nil {
		return *stored, nil
	}
	goals := nutrition.GoalsForProfile(profile)
	if err := SaveGoals(db, goals); err != nil {
		return model.NutritionGoals{}, err
	}
	return goals, nil
}

func newPetState(profile model.Profile, goals model.NutritionGoals, meals []model.Meal, progress model.Progress, hunger float64, now time.Time) *PetState {
	mood := nutrition.MoodFor(hunger)
	pet := &PetState{
		Profile:      profile,
		Goals:        goals,
		Progress:     progress,
		Hunger:       hunger,
		Mood:         mood,
		Today:        nutrition.TodayStats(meals, now),
		SatietyLabel: nutrition.SatietyLabel(hunger),
		MeterColor:   nutrition.MeterColorFor(hunger),
		Face:         nutrition.Face(mood),
		Animation:    nutrition.Animation(mood),
		Meals:        meals,
		At:           now,
	}
	// Nothing has been eaten yet, so there is no progress to comment on.
	if len(meals) > 0 {
		pet.Insight = nutrition.MeterInsight(progress)
		pet.Message = nutrition.AvatarMessage(progress)
	}
	return pet
}
