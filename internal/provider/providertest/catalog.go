// Package providertest serves a fixed offline food catalogue over the
// Nutritionix wire protocol so lookup code can be exercised without network
// access or credentials.
package providertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	"github.com/saadjs/nutripet/internal/provider/nutritionix"
)

var (
	Apple   = nutritionix.Food{Name: "Apple", Calories: 95, ProteinG: 0.5, CarbsG: 25, FatG: 0.3, ServingQty: 1, ServingUnit: "medium"}
	Bread   = nutritionix.Food{Name: "Whole Wheat Bread", Calories: 69, ProteinG: 3.6, CarbsG: 12, FatG: 1.1, ServingQty: 1, ServingUnit: "slice"}
	Chicken = nutritionix.Food{Name: "Grilled Chicken Breast", Calories: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6, ServingQty: 3, ServingUnit: "oz"}
	Banana  = nutritionix.Food{Name: "Banana", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4, ServingQty: 1, ServingUnit: "medium"}
	Egg     = nutritionix.Food{Name: "Egg", Calories: 78, ProteinG: 6.3, CarbsG: 0.6, FatG: 5.3, ServingQty: 1, ServingUnit: "large"}
	Steak   = nutritionix.Food{Name: "Beef Steak", Calories: 250, ProteinG: 26, CarbsG: 0, FatG: 17, ServingQty: 4, ServingUnit: "oz"}
)

// Lookup returns the catalogue entries matching query. Keywords are checked
// in order and the first hit wins, except that a query naming both banana
// and steak returns both. Anything unrecognized gets a generic serving named
// after the query.
func Lookup(query string) []nutritionix.Food {
	q := strings.ToLower(query)
	if strings.Contains(q, "banana") && strings.Contains(q, "steak") {
		return []nutritionix.Food{Banana, Steak}
	}
	keyed := []struct {
		keyword string
		food    nutritionix.Food
	}{
		{"apple", Apple},
		{"bread", Bread},
		{"chicken", Chicken},
		{"banana", Banana},
		{"egg", Egg},
		{"steak", Steak},
	}
	for _, k := range keyed {
		if strings.Contains(q, k.keyword) {
			return []nutritionix.Food{k.food}
		}
	}
	return []nutritionix.Food{{
		Name:        query,
		Calories:    100,
		ProteinG:    5,
		CarbsG:      15,
		FatG:        3,
		ServingQty:  1,
		ServingUnit: "serving",
	}}
}

// Server is an httptest server answering POST /v2/natural/nutrients from
// the catalogue. Requests counts every handled request.
type Server struct {
	*httptest.Server
	Requests atomic.Int64
}

// NewServer starts a catalogue server. The caller closes it.
func NewServer() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Client returns a Nutritionix client pointed at s.
func (s *Server) Client() *nutritionix.Client {
	return &nutritionix.Client{
		AppID:      "test-app",
		AppKey:     "test-key",
		BaseURL:    s.URL,
		HTTPClient: s.Server.Client(),
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.Requests.Add(1)
	if r.Method != http.MethodPost || r.URL.Path != "/v2/natural/nutrients" {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"foods": Lookup(req.Query)})
}
