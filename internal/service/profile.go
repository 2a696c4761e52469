package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/saadjs/nutripet/internal/model"
)

var ErrInvalidProfile = errors.New("invalid profile")

const (
	MinWeightKg      = 30.0
	MaxWeightKg      = 200.0
	MinActivityLevel = 1.2
	MaxActivityLevel = 1.9
)

// ValidateProfile checks the ranges the profile form accepts. Errors wrap
// ErrInvalidProfile.
func ValidateProfile(p model.Profile) error {
	if err := validateRange("weight_kg", p.WeightKg, MinWeightKg, MaxWeightKg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if !p.Goal.Valid() {
		return fmt.Errorf("%w: goal must be one of muscle_gain, fat_loss, maintenance (got %q)", ErrInvalidProfile, p.Goal)
	}
	if err := validateRange("activity_level", p.ActivityLevel, MinActivityLevel, MaxActivityLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

// storedProfile is the raw profile row, each field checked on its own.
type storedProfile struct {
	weight     float64
	weightOK   bool
	goal       model.Goal
	goalOK     bool
	activity   float64
	activityOK bool
	rowMissing bool
}

func readStoredProfile(db *sql.DB) (storedProfile, error) {
	var weight, goal, activity any
	err := db.QueryRow(`SELECT weight_kg, goal, activity_level FROM profile WHERE id = 1`).Scan(&weight, &goal, &activity)
	if err == sql.ErrNoRows {
		return storedProfile{rowMissing: true}, nil
	}
	if err != nil {
		return storedProfile{}, fmt.Errorf("read profile: %w", err)
	}
	var sp storedProfile
	if w, ok := floatFromDB(weight); ok && w > 0 {
		sp.weight, sp.weightOK = w, true
	}
	if g, ok := stringFromDB(goal); ok && model.Goal(strings.TrimSpace(g)).Valid() {
		sp.goal, sp.goalOK = model.Goal(strings.TrimSpace(g)), true
	}
	if a, ok := floatFromDB(activity); ok && a > 0 {
		sp.activity, sp.activityOK = a, true
	}
	return sp, nil
}

func (sp storedProfile) valid() bool {
	return !sp.rowMissing && sp.weightOK && sp.goalOK && sp.activityOK
}

// LoadProfile never fails. Missing or malformed fields are replaced with the
// defaults one by one and a warning is logged.
func LoadProfile(db *sql.DB) model.Profile {
	p := model.DefaultProfile()
	sp, err := readStoredProfile(db)
	if err != nil {
		slog.Warn("profile unreadable, using defaults", "err", err)
		return p
	}
	if sp.rowMissing {
		return p
	}

	var recovered []string
	if sp.weightOK {
		p.WeightKg = sp.weight
	} else {
		recovered = append(recovered, "weight_kg")
	}
	if sp.goalOK {
		p.Goal = sp.goal
	} else {
		recovered = append(recovered, "goal")
	}
	if sp.activityOK {
		p.ActivityLevel = sp.activity
	} else {
		recovered = append(recovered, "activity_level")
	}
	if len(recovered) > 0 {
		slog.Warn("profile has malformed fields, using defaults", "fields", recovered)
	}
	return p
}

func SaveProfile(db *sql.DB, p model.Profile) error {
	if err := ValidateProfile(p); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO profile(id, weight_kg, goal, activity_level, updated_at)
VALUES(1, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  weight_kg=excluded.weight_kg,
  goal=excluded.goal,
  activity_level=excluded.activity_level,
  updated_at=excluded.updated_at
`, p.WeightKg, string(p.Goal), p.ActivityLevel)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
