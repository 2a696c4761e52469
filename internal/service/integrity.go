package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/nutrition"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// DoctorReport counts stored data that the loaders would silently recover
// from. Fixed* fields are only set when RunDoctor was asked to repair.
type DoctorReport struct {
	MalformedProfile  bool `json:"malformed_profile"`
	MalformedMeals    int  `json:"malformed_meals"`
	DuplicateMealRows int  `json:"duplicate_meal_rows"`
	MalformedHunger   bool `json:"malformed_hunger"`
	StaleGoals        bool `json:"stale_goals"`
	ExpiredCacheRows  int  `json:"expired_cache_rows"`

	FixedProfile    bool  `json:"fixed_profile,omitempty"`
	FixedMeals      int   `json:"fixed_meals,omitempty"`
	FixedHunger     bool  `json:"fixed_hunger,omitempty"`
	FixedGoals      bool  `json:"fixed_goals,omitempty"`
	PurgedCacheRows int64 `json:"purged_cache_rows,omitempty"`
}

func (r DoctorReport) Healthy() bool {
	return !r.MalformedProfile && r.MalformedMeals == 0 && r.DuplicateMealRows == 0 &&
		!r.MalformedHunger && !r.StaleGoals && r.ExpiredCacheRows == 0
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []BackupInfo{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// RunDoctor inspects the store for rows the loaders would have to recover
// from. With fix set it rewrites them: profile fields reset to defaults,
// unreadable meals and exact duplicates deleted, hunger reset, goals
// recomputed from the profile and expired lookup cache rows purged.
func RunDoctor(db *sql.DB, now time.Time, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	sp, err := readStoredProfile(db)
	if err != nil {
		return report, err
	}
	report.MalformedProfile = !sp.valid()

	badMeals, err := malformedMealIDs(db)
	if err != nil {
		return report, err
	}
	report.MalformedMeals = len(badMeals)

	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM meals
  GROUP BY name, calories, protein_g, carbs_g, fat_g, consumed_at
  HAVING cnt > 1
)
`).Scan(&report.DuplicateMealRows); err != nil {
		return report, fmt.Errorf("doctor duplicate query: %w", err)
	}

	sh, err := readStoredHunger(db)
	if err != nil {
		return report, err
	}
	report.MalformedHunger = !sh.rowMissing && !sh.valid()

	profile := LoadProfile(db)
	goals, err := LoadGoals(db)
	if err != nil {
		return report, err
	}
	want := nutrition.GoalsForProfile(profile)
	report.StaleGoals = goals != nil && *goals != want

	expired, err := expiredSearchCacheKeys(db, now)
	if err != nil {
		return report, err
	}
	report.ExpiredCacheRows = len(expired)

	if !fix {
		return report, nil
	}

	if report.MalformedProfile {
		repaired := repairProfile(profile)
		if err := SaveProfile(db, repaired); err != nil {
			return report, fmt.Errorf("doctor fix profile: %w", err)
		}
		want = nutrition.GoalsForProfile(repaired)
		report.FixedProfile = true
	}
	if report.MalformedMeals > 0 || report.DuplicateMealRows > 0 {
		n, err := deleteBadMeals(db, badMeals)
		if err != nil {
			return report, err
		}
		report.FixedMeals = n
	}
	if report.MalformedHunger {
		if err := SaveHunger(db, nutrition.DefaultHunger, now); err != nil {
			return report, fmt.Errorf("doctor fix hunger: %w", err)
		}
		report.FixedHunger = true
	}
	if report.StaleGoals || report.FixedProfile {
		if err := SaveGoals(db, want); err != nil {
			return report, fmt.Errorf("doctor fix goals: %w", err)
		}
		report.FixedGoals = true
	}
	if report.ExpiredCacheRows > 0 {
		n, err := PurgeExpiredSearchCache(db, now)
		if err != nil {
			return report, err
		}
		report.PurgedCacheRows = n
	}
	return report, nil
}

// repairProfile resets every field that would fail ValidateProfile.
func repairProfile(p model.Profile) model.Profile {
	def := model.DefaultProfile()
	if validateRange("weight_kg", p.WeightKg, MinWeightKg, MaxWeightKg) != nil {
		p.WeightKg = def.WeightKg
	}
	if !p.Goal.Valid() {
		p.Goal = def.Goal
	}
	if validateRange("activity_level", p.ActivityLevel, MinActivityLevel, MaxActivityLevel) != nil {
		p.ActivityLevel = def.ActivityLevel
	}
	return p
}

func malformedMealIDs(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT id, consumed_at FROM meals`)
	if err != nil {
		return nil, fmt.Errorf("doctor meal query: %w", err)
	}
	defer rows.Close()
	out := make([]string, 0)
	for rows.Next() {
		var id, consumed string
		if err := rows.Scan(&id, &consumed); err != nil {
			return nil, fmt.Errorf("doctor meal scan: %w", err)
		}
		if _, err := time.Parse(timeLayout, consumed); err != nil {
			out = append(out, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctor meal iterate: %w", err)
	}
	return out, nil
}

// deleteBadMeals removes the given meals plus every duplicate except the
// first-logged copy.
func deleteBadMeals(db *sql.DB, ids []string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fixed := 0
	for _, id := range ids {
		if _, err := tx.Exec(`DELETE FROM meals WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("doctor fix meal %s: %w", id, err)
		}
		fixed++
	}
	res, err := tx.Exec(`
DELETE FROM meals WHERE seq NOT IN (
  SELECT MIN(seq) FROM meals GROUP BY name, calories, protein_g, carbs_g, fat_g, consumed_at
)
`)
	if err != nil {
		return 0, fmt.Errorf("doctor fix duplicate meals: %w", err)
	}
	dupes, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("doctor fix duplicate rows affected: %w", err)
	}
	fixed += int(dupes)
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("doctor fix commit: %w", err)
	}
	return fixed, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
