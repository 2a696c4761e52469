package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/nutripet/internal/provider/nutritionix"
	"github.com/saadjs/nutripet/internal/provider/openfoodfacts"
	"github.com/saadjs/nutripet/internal/provider/usda"
)

const (
	ProviderNutritionix   = "nutritionix"
	ProviderOpenFoodFacts = "openfoodfacts"
	ProviderUSDA          = "usda"

	defaultProviderSearchTTL = 7 * 24 * time.Hour
	defaultSearchTimeout     = 15 * time.Second
	defaultSearchLimit       = 10
	maxSearchLimit           = 50
)

var Providers = []string{ProviderNutritionix, ProviderOpenFoodFacts, ProviderUSDA}

// ErrLookupUnavailable wraps every provider, network and decode failure. Its
// text is shown to the user as is.
var ErrLookupUnavailable = errors.New("Error fetching nutrition data. Please try again.")

// FoodCandidate is one lookup result, macros still unrounded.
type FoodCandidate struct {
	Provider    string  `json:"provider"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand,omitempty"`
	ServingQty  float64 `json:"serving_qty"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

// ServingSize formats the serving as "<qty> <unit>".
func (c FoodCandidate) ServingSize() string {
	qty := ""
	if c.ServingQty > 0 {
		qty = strconv.FormatFloat(c.ServingQty, 'f', -1, 64)
	}
	return strings.TrimSpace(qty + " " + strings.TrimSpace(c.ServingUnit))
}

// ToMealInput rounds the macros and stamps the meal with now.
func (c FoodCandidate) ToMealInput(now time.Time) MealInput {
	return MealInput{
		Name:        c.Name,
		Calories:    roundMacro(c.Calories),
		Protein:     roundMacro(c.Protein),
		Carbs:       roundMacro(c.Carbs),
		Fat:         roundMacro(c.Fat),
		Timestamp:   now,
		ServingSize: c.ServingSize(),
		Source:      c.Provider,
	}
}

func roundMacro(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

// Searcher is implemented by every food lookup provider.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]FoodCandidate, []byte, error)
}

type Credentials struct {
	NutritionixAppID  string
	NutritionixAppKey string
	USDAAPIKey        string
}

type FoodSearchOptions struct {
	Provider    string
	Limit       int
	Timeout     time.Duration
	Credentials Credentials
	// Searcher replaces the provider client built from Credentials.
	Searcher Searcher
	// NoCache skips both reading and writing the search cache.
	NoCache bool
}

func NormalizeProvider(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case ProviderNutritionix, "nix":
		return ProviderNutritionix
	case ProviderOpenFoodFacts, "off":
		return ProviderOpenFoodFacts
	case ProviderUSDA, "fdc":
		return ProviderUSDA
	default:
		return ""
	}
}

// NewSearcher builds the client for provider.
func NewSearcher(provider string, creds Credentials) (Searcher, error) {
	switch NormalizeProvider(provider) {
	case ProviderNutritionix:
		return &nutritionixSearcher{client: &nutritionix.Client{AppID: creds.NutritionixAppID, AppKey: creds.NutritionixAppKey}}, nil
	case ProviderOpenFoodFacts:
		return &openFoodFactsSearcher{client: &openfoodfacts.Client{}}, nil
	case ProviderUSDA:
		return &usdaSearcher{client: &usda.Client{APIKey: creds.USDAAPIKey}}, nil
	default:
		return nil, fmt.Errorf("unsupported food provider %q", provider)
	}
}

// SearchFoods looks query up with the chosen provider. Results are cached
// per provider, query and limit for seven days.
func SearchFoods(ctx context.Context, db *sql.DB, query string, opts FoodSearchOptions) ([]FoodCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	provider := NormalizeProvider(opts.Provider)
	if provider == "" {
		if strings.TrimSpace(opts.Provider) != "" {
			return nil, fmt.Errorf("unsupported food provider %q", opts.Provider)
		}
		provider = ProviderNutritionix
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if !opts.NoCache {
		cached, found, err := lookupSearchCache(db, provider, query, limit, time.Now())
		if err != nil {
			return nil, err
		}
		if found {
			slog.Debug("food search cache hit", "provider", provider, "query", query, "results", len(cached))
			return cached, nil
		}
	}

	searcher := opts.Searcher
	if searcher == nil {
		s, err := NewSearcher(provider, opts.Credentials)
		if err != nil {
			return nil, err
		}
		searcher = s
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, raw, err := searcher.Search(ctx, query, limit)
	if err != nil {
		slog.Warn("food lookup failed", "provider", provider, "query", query, "err", err)
		return nil, fmt.Errorf("%w (%s: %v)", ErrLookupUnavailable, provider, err)
	}
	for i := range items {
		items[i].Provider = provider
	}
	if len(items) > limit {
		items = items[:limit]
	}

	if !opts.NoCache {
		now := time.Now()
		if err := upsertSearchCache(db, provider, query, limit, items, raw, now, now.Add(defaultProviderSearchTTL)); err != nil {
			slog.Warn("food search cache write failed", "provider", provider, "err", err)
		}
	}
	return items, nil
}

func cacheKey(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func lookupSearchCache(db *sql.DB, provider, query string, limit int, now time.Time) ([]FoodCandidate, bool, error) {
	var results, expiresRaw string
	err := db.QueryRow(`
SELECT results_json, expires_at
FROM food_search_cache
WHERE provider = ? AND query = ? AND limit_requested = ?
`, provider, cacheKey(query), limit).Scan(&results, &expiresRaw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup food search cache: %w", err)
	}
	expiresAt, err := time.Parse(timeLayout, expiresRaw)
	if err != nil || now.After(expiresAt) {
		return nil, false, nil
	}
	var items []FoodCandidate
	if err := json.Unmarshal([]byte(results), &items); err != nil {
		slog.Warn("discarding malformed food search cache row", "provider", provider, "query", query)
		return nil, false, nil
	}
	return items, true, nil
}

func upsertSearchCache(db *sql.DB, provider, query string, limit int, items []FoodCandidate, raw []byte, fetchedAt, expiresAt time.Time) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal food search cache payload: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO food_search_cache(provider, query, limit_requested, results_json, raw_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(provider, query, limit_requested) DO UPDATE SET
  results_json=excluded.results_json,
  raw_json=excluded.raw_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, provider, cacheKey(query), limit, string(payload), string(raw), formatTime(fetchedAt), formatTime(expiresAt))
	if err != nil {
		return fmt.Errorf("upsert food search cache: %w", err)
	}
	return nil
}

// PurgeExpiredSearchCache deletes cache rows that expired before now.
func PurgeExpiredSearchCache(db *sql.DB, now time.Time) (int64, error) {
	ids, err := expiredSearchCacheKeys(db, now)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, k := range ids {
		res, err := db.Exec(`DELETE FROM food_search_cache WHERE provider = ? AND query = ? AND limit_requested = ?`, k.provider, k.query, k.limit)
		if err != nil {
			return n, fmt.Errorf("purge food search cache: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return n, fmt.Errorf("food search cache rows affected: %w", err)
		}
		n += affected
	}
	return n, nil
}

type searchCacheKey struct {
	provider string
	query    string
	limit    int
}

// expiredSearchCacheKeys compares expiry in Go: stored timestamps are not
// fixed width, so string comparison in SQL would misorder them.
func expiredSearchCacheKeys(db *sql.DB, now time.Time) ([]searchCacheKey, error) {
	rows, err := db.Query(`SELECT provider, query, limit_requested, expires_at FROM food_search_cache`)
	if err != nil {
		return nil, fmt.Errorf("list food search cache: %w", err)
	}
	defer rows.Close()
	out := make([]searchCacheKey, 0)
	for rows.Next() {
		var (
			k       searchCacheKey
			expires string
		)
		if err := rows.Scan(&k.provider, &k.query, &k.limit, &expires); err != nil {
			return nil, fmt.Errorf("scan food search cache: %w", err)
		}
		t, err := time.Parse(timeLayout, expires)
		if err != nil || now.After(t) {
			out = append(out, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food search cache: %w", err)
	}
	return out, nil
}
