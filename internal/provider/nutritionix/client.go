package nutritionix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://trackapi.nutritionix.com"

// Food is one item parsed out of a natural-language query.
type Food struct {
	Name         string  `json:"food_name"`
	Brand        string  `json:"brand_name"`
	ServingQty   float64 `json:"serving_qty"`
	ServingUnit  string  `json:"serving_unit"`
	Calories     float64 `json:"nf_calories"`
	ProteinG     float64 `json:"nf_protein"`
	CarbsG       float64 `json:"nf_total_carbohydrate"`
	FatG         float64 `json:"nf_total_fat"`
	ServingGrams float64 `json:"serving_weight_grams"`
}

type Client struct {
	AppID      string
	AppKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Natural sends a free-text query ("2 eggs and a banana") to the natural
// nutrients endpoint and returns every food it recognized.
func (c *Client) Natural(ctx context.Context, query string) ([]Food, []byte, error) {
	if strings.TrimSpace(c.AppID) == "" || strings.TrimSpace(c.AppKey) == "" {
		return nil, nil, fmt.Errorf("missing Nutritionix app id or app key")
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	payload, err := json.Marshal(naturalRequest{Query: strings.TrimSpace(query), LineDelimited: false})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal nutritionix request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/v2/natural/nutrients", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("create nutritionix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.AppID)
	req.Header.Set("x-app-key", c.AppKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute nutritionix request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read nutritionix response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, body, fmt.Errorf("nutritionix request failed with status %d", resp.StatusCode)
	}

	var parsed naturalResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, body, fmt.Errorf("decode nutritionix response: %w", err)
	}
	out := make([]Food, 0, len(parsed.Foods))
	for _, f := range parsed.Foods {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name == "" {
			continue
		}
		f.ServingUnit = strings.TrimSpace(f.ServingUnit)
		out = append(out, f)
	}
	return out, body, nil
}

// SearchFoods is Natural capped at limit results.
func (c *Client) SearchFoods(ctx context.Context, query string, limit int) ([]Food, []byte, error) {
	foods, raw, err := c.Natural(ctx, query)
	if err != nil {
		return nil, raw, err
	}
	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}
	return foods, raw, nil
}

type naturalRequest struct {
	Query         string `json:"query"`
	LineDelimited bool   `json:"line_delimited"`
}

type naturalResponse struct {
	Foods []Food `json:"foods"`
}
