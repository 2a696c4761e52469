package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/saadjs/nutripet/internal/nutrition"
)

// HungerReading is the persisted hunger value plus what it has decayed to
// by the time it was read.
type HungerReading struct {
	Stored    float64   `json:"stored"`
	UpdatedAt time.Time `json:"updated_at"`
	// Present is false when nothing was ever stored; Stored and Value then
	// hold the default.
	Present bool    `json:"present"`
	Value   float64 `json:"value"`
}

// storedHunger is the raw hunger row.
type storedHunger struct {
	value      float64
	valueOK    bool
	updated    time.Time
	updatedRaw string
	updatedOK  bool
	rowMissing bool
}

func readStoredHunger(db *sql.DB) (storedHunger, error) {
	var value, updated any
	err := db.QueryRow(`SELECT value, updated_at FROM hunger_state WHERE id = 1`).Scan(&value, &updated)
	if err == sql.ErrNoRows {
		return storedHunger{rowMissing: true}, nil
	}
	if err != nil {
		return storedHunger{}, fmt.Errorf("load hunger: %w", err)
	}
	var sh storedHunger
	sh.value, sh.valueOK = floatFromDB(value)
	if raw, ok := stringFromDB(updated); ok {
		sh.updatedRaw = raw
		if ts, err := parseTime(raw); err == nil {
			sh.updated, sh.updatedOK = ts, true
		}
	}
	return sh, nil
}

func (sh storedHunger) valid() bool {
	return sh.valueOK && sh.value >= 0 && sh.value <= 100 && sh.updatedOK
}

// LoadHunger reads the stored hunger and decays it to now. A missing or
// unreadable value yields the default of 100; an unreadable timestamp
// skips decay.
func LoadHunger(db *sql.DB, now time.Time) (HungerReading, error) {
	reading := HungerReading{Stored: nutrition.DefaultHunger, Value: nutrition.DefaultHunger}
	sh, err := readStoredHunger(db)
	if err != nil {
		return reading, err
	}
	if sh.rowMissing {
		return reading, nil
	}
	if !sh.valueOK {
		slog.Warn("stored hunger is malformed, using default", "default", nutrition.DefaultHunger)
		return reading, nil
	}

	reading.Present = true
	reading.Stored = sh.value
	reading.Value = math.Max(0, math.Min(100, sh.value))
	if !sh.updatedOK {
		slog.Warn("stored hunger timestamp is malformed, skipping decay", "updated_at", sh.updatedRaw)
		return reading, nil
	}
	reading.UpdatedAt = sh.updated
	reading.Value = nutrition.DecayHunger(sh.value, sh.updated, now)
	return reading, nil
}

// SaveHunger persists value, clamped to 0..100, stamped with now.
func SaveHunger(db *sql.DB, value float64, now time.Time) error {
	if math.IsNaN(value) {
		return fmt.Errorf("hunger must be a number")
	}
	value = math.Max(0, math.Min(100, value))
	_, err := db.Exec(`
INSERT INTO hunger_state(id, value, updated_at)
VALUES(1, ?, ?)
ON CONFLICT(id) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, value, formatTime(now))
	if err != nil {
		return fmt.Errorf("save hunger: %w", err)
	}
	return nil
}
