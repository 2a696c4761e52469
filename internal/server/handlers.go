package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/nutrition"
	"github.com/saadjs/nutripet/internal/service"
)

func (s *Server) getPet(c *gin.Context) {
	pet, err := service.Snapshot(s.db, s.now())
	if err != nil {
		slog.Error("snapshot failed", "err", err)
		apiError(c, http.StatusInternalServerError, "failed to load pet")
		return
	}
	s.metrics.hunger.Set(pet.Hunger)
	c.JSON(http.StatusOK, pet)
}

func (s *Server) listMeals(c *gin.Context) {
	meals, err := service.LoadMeals(s.db)
	if err != nil {
		slog.Error("load meals failed", "err", err)
		apiError(c, http.StatusInternalServerError, "failed to load meals")
		return
	}
	if today, _ := strconv.ParseBool(c.Query("today")); today {
		meals = nutrition.MealsSince(meals, nutrition.StartOfDay(s.now()))
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			apiError(c, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		if limit > 0 && len(meals) > limit {
			meals = meals[:limit]
		}
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

type mealRequest struct {
	Name        string     `json:"name" binding:"required"`
	Calories    int        `json:"calories"`
	Protein     int        `json:"protein"`
	Carbs       int        `json:"carbs"`
	Fat         int        `json:"fat"`
	ServingSize string     `json:"serving_size"`
	Source      string     `json:"source"`
	Timestamp   *time.Time `json:"timestamp"`
}

func (s *Server) createMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid meal: "+err.Error())
		return
	}
	in := service.MealInput{
		Name:        req.Name,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		ServingSize: req.ServingSize,
		Source:      req.Source,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}
	pet, err := service.LogMeal(s.db, in, s.now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidMeal) {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("log meal failed", "err", err)
		apiError(c, http.StatusInternalServerError, "log meal failed")
		return
	}
	source := in.Source
	if source == "" {
		source = service.SourceManual
	}
	s.metrics.mealsLogged.WithLabelValues(source).Inc()
	s.metrics.hunger.Set(pet.Hunger)
	c.JSON(http.StatusCreated, pet)
}

type profileResponse struct {
	Profile model.Profile          `json:"profile"`
	Goals   model.NutritionGoals   `json:"goals"`
	Presets []model.ActivityPreset `json:"activity_presets"`
}

func (s *Server) getProfile(c *gin.Context) {
	profile := service.LoadProfile(s.db)
	goals, err := service.LoadGoals(s.db)
	if err != nil {
		slog.Error("load goals failed", "err", err)
		apiError(c, http.StatusInternalServerError, "failed to load goals")
		return
	}
	resp := profileResponse{Profile: profile, Presets: model.ActivityPresets}
	if goals != nil {
		resp.Goals = *goals
	} else {
		resp.Goals = nutrition.GoalsForProfile(profile)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) updateProfile(c *gin.Context) {
	var p model.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		apiError(c, http.StatusBadRequest, "invalid profile: "+err.Error())
		return
	}
	pet, err := service.UpdateProfile(s.db, p, s.now())
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			apiError(c, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("update profile failed", "err", err)
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	s.metrics.hunger.Set(pet.Hunger)
	c.JSON(http.StatusOK, pet)
}

func (s *Server) searchFoods(c *gin.Context) {
	query := c.Query("q")
	provider, err := service.ResolveProvider(s.db, c.Query("provider"), s.provider)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			apiError(c, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	foods, err := service.SearchFoods(c.Request.Context(), s.db, query, service.FoodSearchOptions{
		Provider:    provider,
		Limit:       limit,
		Timeout:     s.timeout,
		Credentials: s.credentials,
		Searcher:    s.searcher,
	})
	if err != nil {
		if errors.Is(err, service.ErrLookupUnavailable) {
			s.metrics.lookups.WithLabelValues(provider, "error").Inc()
			apiError(c, http.StatusBadGateway, service.ErrLookupUnavailable.Error())
			return
		}
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.lookups.WithLabelValues(provider, "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"provider": provider, "foods": foods})
}
