package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/nutripet/internal/db"
	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/provider/providertest"
	"github.com/saadjs/nutripet/internal/service"
)

var testNow = time.Date(2026, 3, 14, 15, 30, 0, 0, time.Local)

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenSearcher struct{}

func (brokenSearcher) Search(context.Context, string, int) ([]service.FoodCandidate, []byte, error) {
	return nil, nil, errors.New("dial tcp: connection refused")
}

func newTestServer(t *testing.T, searcher service.Searcher) *Server {
	t.Helper()
	sqldb, err := db.OpenAndMigrate(filepath.Join(t.TempDir(), "nutripet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	return New(Options{
		DB:       sqldb,
		Provider: service.ProviderNutritionix,
		Searcher: searcher,
		Now:      func() time.Time { return testNow },
	})
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetPetFreshStore(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(s, http.MethodGet, "/api/pet", "")
	require.Equal(t, http.StatusOK, w.Code)
	pet := decode[service.PetState](t, w)
	assert.Equal(t, 100.0, pet.Hunger)
	assert.Equal(t, model.MoodHappy, pet.Mood)
	assert.Equal(t, 4760, pet.Goals.Calories)
	assert.Equal(t, "bounce", pet.Animation)
}

func TestCreateMealThenListAndPet(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(s, http.MethodPost, "/api/meals", `{"name":"Chicken salad","calories":500,"protein":40,"carbs":50,"fat":15}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pet := decode[service.PetState](t, w)
	assert.Equal(t, model.MoodHappy, pet.Mood)
	assert.True(t, pet.MoodOverridden)

	w = do(s, http.MethodGet, "/api/meals?today=true&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	meals := decode[struct {
		Meals []model.Meal `json:"meals"`
	}](t, w)
	require.Len(t, meals.Meals, 1)
	assert.Equal(t, "Chicken salad", meals.Meals[0].Name)
	assert.Equal(t, service.SourceManual, meals.Meals[0].Source)

	w = do(s, http.MethodGet, "/api/pet", "")
	require.Equal(t, http.StatusOK, w.Code)
	pet = decode[service.PetState](t, w)
	assert.Equal(t, model.MoodHungry, pet.Mood)
	assert.False(t, pet.MoodOverridden)
}

func TestCreateMealValidation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	for _, body := range []string{
		`{"calories":100}`,
		`{"name":"Toast","calories":-5}`,
		`not json`,
	} {
		w := do(s, http.MethodPost, "/api/meals", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`, body)
	}
}

func TestCreateMealStoreFailureIs500(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)
	require.NoError(t, s.db.Close())

	w := do(s, http.MethodPost, "/api/meals", `{"name":"Toast","calories":150}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
	assert.JSONEq(t, `{"error":"log meal failed"}`, w.Body.String())
}

func TestListMealsRejectsBadLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(s, http.MethodGet, "/api/meals?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	w := do(s, http.MethodGet, "/api/profile", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[profileResponse](t, w)
	assert.Equal(t, model.DefaultProfile(), got.Profile)
	assert.Len(t, got.Presets, 5)

	w = do(s, http.MethodPut, "/api/profile", `{"weight_kg":70,"goal":"fat_loss","activity_level":1.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pet := decode[service.PetState](t, w)
	assert.Equal(t, model.NutritionGoals{Calories: 2520, Protein: 154, Carbs: 284, Fat: 70}, pet.Goals)

	w = do(s, http.MethodPut, "/api/profile", `{"weight_kg":500,"goal":"fat_loss","activity_level":1.5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid profile")
}

func TestSearchFoods(t *testing.T) {
	t.Parallel()
	srv := providertest.NewServer()
	defer srv.Close()
	s := newTestServer(t, service.NewNutritionixSearcher(srv.Client()))

	w := do(s, http.MethodGet, "/api/foods?q=grilled+chicken", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[struct {
		Provider string                  `json:"provider"`
		Foods    []service.FoodCandidate `json:"foods"`
	}](t, w)
	assert.Equal(t, service.ProviderNutritionix, resp.Provider)
	require.Len(t, resp.Foods, 1)
	assert.Equal(t, "Grilled Chicken Breast", resp.Foods[0].Name)

	w = do(s, http.MethodGet, "/api/foods?q=", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchFoodsUnavailable(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, brokenSearcher{})

	w := do(s, http.MethodGet, "/api/foods?q=apple", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching nutrition data. Please try again."}`, w.Body.String())
}

func TestMetricsExposed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, do(s, http.MethodPost, "/api/meals", `{"name":"Apple","calories":95}`).Code)

	w := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `nutripet_meals_logged_total{source="manual"} 1`)
	assert.Contains(t, body, "nutripet_pet_hunger")
	assert.Contains(t, body, "nutripet_http_request_duration_seconds")
}
