package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/nutripet/internal/model"
)

const SourceManual = "manual"

// ErrInvalidMeal is wrapped by every meal validation failure.
var ErrInvalidMeal = errors.New("invalid meal")

type MealInput struct {
	Name        string
	Calories    int
	Protein     int
	Carbs       int
	Fat         int
	Timestamp   time.Time
	ServingSize string
	Source      string
}

func (in MealInput) toMeal(now time.Time) (model.Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Meal{}, fmt.Errorf("%w: meal name is required", ErrInvalidMeal)
	}
	if err := validateMacros(in.Calories, in.Protein, in.Carbs, in.Fat); err != nil {
		return model.Meal{}, fmt.Errorf("%w: %v", ErrInvalidMeal, err)
	}
	ts := in.Timestamp
	if ts.IsZero() {
		ts = now
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = SourceManual
	}
	return model.Meal{
		ID:          uuid.NewString(),
		Name:        name,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		Timestamp:   ts,
		ServingSize: strings.TrimSpace(in.ServingSize),
		Source:      source,
	}, nil
}

// AppendMeal validates in and adds it to the end of the meal log. A zero
// timestamp means now.
func AppendMeal(db *sql.DB, in MealInput, now time.Time) (model.Meal, error) {
	meal, err := in.toMeal(now)
	if err != nil {
		return model.Meal{}, err
	}
	if err := insertMeal(db, meal); err != nil {
		return model.Meal{}, err
	}
	return meal, nil
}

// LoadMeals returns the whole log newest first. Rows whose timestamp cannot be
// parsed are skipped with a warning.
func LoadMeals(db *sql.DB) ([]model.Meal, error) {
	rows, err := db.Query(`
SELECT seq, id, name, calories, protein_g, carbs_g, fat_g, consumed_at, serving_size, source
FROM meals
ORDER BY seq ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	type row struct {
		seq  int64
		meal model.Meal
	}
	loaded := make([]row, 0)
	for rows.Next() {
		var (
			r        row
			consumed string
		)
		if err := rows.Scan(&r.seq, &r.meal.ID, &r.meal.Name, &r.meal.Calories, &r.meal.Protein, &r.meal.Carbs, &r.meal.Fat, &consumed, &r.meal.ServingSize, &r.meal.Source); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		ts, err := parseTime(consumed)
		if err != nil {
			slog.Warn("skipping meal with malformed timestamp", "id", r.meal.ID, "consumed_at", consumed)
			continue
		}
		r.meal.Timestamp = ts
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		if !loaded[i].meal.Timestamp.Equal(loaded[j].meal.Timestamp) {
			return loaded[i].meal.Timestamp.After(loaded[j].meal.Timestamp)
		}
		return loaded[i].seq > loaded[j].seq
	})
	out := make([]model.Meal, len(loaded))
	for i, r := range loaded {
		out[i] = r.meal
	}
	return out, nil
}

// SaveMeals replaces the whole log in one transaction. meals is newest first,
// as LoadMeals returns it. Meals without an ID get one.
func SaveMeals(db *sql.DB, meals []model.Meal) error {
	for i := range meals {
		if err := validateMeal(meals[i]); err != nil {
			return fmt.Errorf("meal %d: %w", i+1, err)
		}
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save meals tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM meals`); err != nil {
		return fmt.Errorf("clear meals: %w", err)
	}
	for i := len(meals) - 1; i >= 0; i-- {
		m := meals[i]
		if strings.TrimSpace(m.ID) == "" {
			m.ID = uuid.NewString()
		}
		if err := insertMeal(tx, m); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save meals: %w", err)
	}
	return nil
}

func validateMeal(m model.Meal) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: meal name is required", ErrInvalidMeal)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("%w: meal timestamp is required", ErrInvalidMeal)
	}
	if err := validateMacros(m.Calories, m.Protein, m.Carbs, m.Fat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMeal, err)
	}
	return nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertMeal(db execer, m model.Meal) error {
	source := m.Source
	if strings.TrimSpace(source) == "" {
		source = SourceManual
	}
	_, err := db.Exec(`
INSERT INTO meals(id, name, calories, protein_g, carbs_g, fat_g, consumed_at, serving_size, source)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, m.ID, strings.TrimSpace(m.Name), m.Calories, m.Protein, m.Carbs, m.Fat, formatTime(m.Timestamp), m.ServingSize, source)
	if err != nil {
		return fmt.Errorf("insert meal %q: %w", m.Name, err)
	}
	return nil
}
