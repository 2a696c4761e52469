package service

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/nutripet/internal/model"
)

// LoadGoals returns nil when no goals have been stored yet.
func LoadGoals(db *sql.DB) (*model.NutritionGoals, error) {
	var g model.NutritionGoals
	err := db.QueryRow(`SELECT calories, protein_g, carbs_g, fat_g FROM nutrition_goals WHERE id = 1`).
		Scan(&g.Calories, &g.Protein, &g.Carbs, &g.Fat)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load nutrition goals: %w", err)
	}
	return &g, nil
}

func SaveGoals(db *sql.DB, g model.NutritionGoals) error {
	if err := validateMacros(g.Calories, g.Protein, g.Carbs, g.Fat); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO nutrition_goals(id, calories, protein_g, carbs_g, fat_g, updated_at)
VALUES(1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  updated_at=excluded.updated_at
`, g.Calories, g.Protein, g.Carbs, g.Fat)
	if err != nil {
		return fmt.Errorf("save nutrition goals: %w", err)
	}
	return nil
}

func validateMacros(calories, protein, carbs, fat int) error {
	if err := validateNonNegativeInt("calories", calories); err != nil {
		return err
	}
	if err := validateNonNegativeInt("protein", protein); err != nil {
		return err
	}
	if err := validateNonNegativeInt("carbs", carbs); err != nil {
		return err
	}
	return validateNonNegativeInt("fat", fat)
}
