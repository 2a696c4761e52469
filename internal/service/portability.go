package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/nutripet/internal/model"
)

const exportVersion = 1

// ExportData is the portable form of the meal log and profile.
type ExportData struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Profile    model.Profile `json:"profile"`
	Meals      []model.Meal  `json:"meals"`
}

type ImportOptions struct {
	// Replace clears the existing log first. Meals whose ID is already in
	// the log are skipped either way.
	Replace bool
	DryRun  bool
}

type ImportReport struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(db *sql.DB, now time.Time) (*ExportData, error) {
	meals, err := LoadMeals(db)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Version:    exportVersion,
		ExportedAt: now,
		Profile:    LoadProfile(db),
		Meals:      meals,
	}, nil
}

func WriteExport(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

func ReadExport(r io.Reader) (*ExportData, error) {
	var data ExportData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}
	if data.Version > exportVersion {
		return nil, fmt.Errorf("export version %d is newer than supported version %d", data.Version, exportVersion)
	}
	return &data, nil
}

// ImportDataSnapshot adds the exported meals to the log in one transaction.
// The profile in data is not applied.
func ImportDataSnapshot(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if opts.Replace && !opts.DryRun {
		if _, err := tx.Exec(`DELETE FROM meals`); err != nil {
			return report, fmt.Errorf("clear meals for replace: %w", err)
		}
	}

	// Oldest first so insertion order matches the log order.
	for i := len(data.Meals) - 1; i >= 0; i-- {
		m := data.Meals[i]
		if err := validateMeal(m); err != nil {
			report.Skipped++
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal %q: %v", m.Name, err))
			continue
		}
		if strings.TrimSpace(m.ID) == "" {
			m.ID = uuid.NewString()
		} else if !(opts.Replace && opts.DryRun) {
			exists, err := mealExists(tx, m.ID)
			if err != nil {
				return report, err
			}
			if exists {
				report.Skipped++
				continue
			}
		}
		if opts.DryRun {
			report.Inserted++
			continue
		}
		if err := insertMeal(tx, m); err != nil {
			return report, err
		}
		report.Inserted++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

func mealExists(tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRow(`SELECT 1 FROM meals WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check existing meal %q: %w", id, err)
	}
	return true, nil
}
