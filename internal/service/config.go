package service

import (
	"database/sql"
	"fmt"
	"strings"
)

// ConfigFoodProvider names the food lookup provider used when no --provider
// flag is given.
const ConfigFoodProvider = "food_provider"

var knownConfigKeys = map[string]func(string) error{
	ConfigFoodProvider: func(v string) error {
		if NormalizeProvider(v) == "" {
			return fmt.Errorf("unsupported food provider %q (expected one of %s)", v, strings.Join(Providers, ", "))
		}
		return nil
	},
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	validate, ok := knownConfigKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	value = strings.TrimSpace(value)
	if err := validate(value); err != nil {
		return err
	}
	if key == ConfigFoodProvider {
		value = NormalizeProvider(value)
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ResolveProvider picks the lookup provider: an explicit flag wins, then the
// persisted config value, then fallback (usually from the environment).
func ResolveProvider(db *sql.DB, flag, fallback string) (string, error) {
	if strings.TrimSpace(flag) != "" {
		p := NormalizeProvider(flag)
		if p == "" {
			return "", fmt.Errorf("unsupported food provider %q", flag)
		}
		return p, nil
	}
	stored, ok, err := GetConfig(db, ConfigFoodProvider)
	if err != nil {
		return "", err
	}
	if ok {
		if p := NormalizeProvider(stored); p != "" {
			return p, nil
		}
	}
	if p := NormalizeProvider(fallback); p != "" {
		return p, nil
	}
	return ProviderNutritionix, nil
}
