package service

import (
	"context"

	"github.com/saadjs/nutripet/internal/provider/nutritionix"
	"github.com/saadjs/nutripet/internal/provider/openfoodfacts"
	"github.com/saadjs/nutripet/internal/provider/usda"
)

type nutritionixSearcher struct {
	client *nutritionix.Client
}

// NewNutritionixSearcher wraps an already configured client.
func NewNutritionixSearcher(c *nutritionix.Client) Searcher {
	return &nutritionixSearcher{client: c}
}

func (a *nutritionixSearcher) Search(ctx context.Context, query string, limit int) ([]FoodCandidate, []byte, error) {
	foods, raw, err := a.client.SearchFoods(ctx, query, limit)
	if err != nil {
		return nil, raw, err
	}
	out := make([]FoodCandidate, 0, len(foods))
	for _, f := range foods {
		out = append(out, FoodCandidate{
			Provider:    ProviderNutritionix,
			Name:        f.Name,
			Brand:       f.Brand,
			ServingQty:  f.ServingQty,
			ServingUnit: f.ServingUnit,
			Calories:    f.Calories,
			Protein:     f.ProteinG,
			Carbs:       f.CarbsG,
			Fat:         f.FatG,
		})
	}
	return out, raw, nil
}

type openFoodFactsSearcher struct {
	client *openfoodfacts.Client
}

func (a *openFoodFactsSearcher) Search(ctx context.Context, query string, limit int) ([]FoodCandidate, []byte, error) {
	foods, raw, err := a.client.SearchFoods(ctx, query, limit)
	if err != nil {
		return nil, raw, err
	}
	out := make([]FoodCandidate, 0, len(foods))
	for _, f := range foods {
		out = append(out, FoodCandidate{
			Provider:    ProviderOpenFoodFacts,
			Name:        f.Name,
			Brand:       f.Brand,
			ServingQty:  f.ServingAmount,
			ServingUnit: f.ServingUnit,
			Calories:    f.Calories,
			Protein:     f.ProteinG,
			Carbs:       f.CarbsG,
			Fat:         f.FatG,
		})
	}
	return out, raw, nil
}

type usdaSearcher struct {
	client *usda.Client
}

func (a *usdaSearcher) Search(ctx context.Context, query string, limit int) ([]FoodCandidate, []byte, error) {
	foods, raw, err := a.client.SearchFoods(ctx, query, limit)
	if err != nil {
		return nil, raw, err
	}
	out := make([]FoodCandidate, 0, len(foods))
	for _, f := range foods {
		out = append(out, FoodCandidate{
			Provider:    ProviderUSDA,
			Name:        f.Description,
			Brand:       f.Brand,
			ServingQty:  f.ServingAmount,
			ServingUnit: f.ServingUnit,
			Calories:    f.Calories,
			Protein:     f.ProteinG,
			Carbs:       f.CarbsG,
			Fat:         f.FatG,
		})
	}
	return out, raw, nil
}
