package nutripet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search nutrition providers and log what you find",
}

var (
	foodProvider string
	foodLimit    int
	foodJSON     bool
	foodPick     int
)

// lookupSearcher, when set, replaces the configured provider client.
var lookupSearcher service.Searcher

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			items, err := searchFoods(cmd.Context(), sqldb, args[0], foodLimit)
			if err != nil {
				return err
			}
			if foodJSON {
				b, err := json.MarshalIndent(items, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal food search json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No foods found for %q\n", args[0])
				return nil
			}
			printCandidates(cmd.OutOrStdout(), items)
			return nil
		})
	},
}

var foodAddCmd = &cobra.Command{
	Use:   "add <query>",
	Short: "Search foods and log the chosen result as a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if foodPick < 1 {
			return fmt.Errorf("--pick must be >= 1")
		}
		return withDB(func(sqldb *sql.DB) error {
			items, err := searchFoods(cmd.Context(), sqldb, args[0], foodPick)
			if err != nil {
				return err
			}
			if len(items) < foodPick {
				return fmt.Errorf("no result #%d for %q (found %d)", foodPick, args[0], len(items))
			}
			choice := items[foodPick-1]
			now := time.Now()
			in := choice.ToMealInput(now)
			pet, err := service.LogMeal(sqldb, in, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s)\n", in.Name, kcal(in.Calories))
			printPetLine(cmd.OutOrStdout(), pet)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodAddCmd)

	foodCmd.PersistentFlags().StringVar(&foodProvider, "provider", "", "Lookup provider: nutritionix, openfoodfacts or usda")
	foodSearchCmd.Flags().IntVar(&foodLimit, "limit", 10, "Maximum results")
	foodSearchCmd.Flags().BoolVar(&foodJSON, "json", false, "Output JSON")
	foodAddCmd.Flags().IntVar(&foodPick, "pick", 1, "Which search result to log (1-based)")
}

func searchFoods(ctx context.Context, sqldb *sql.DB, query string, limit int) ([]service.FoodCandidate, error) {
	provider, err := service.ResolveProvider(sqldb, foodProvider, cfg.FoodProvider)
	if err != nil {
		return nil, err
	}
	return service.SearchFoods(ctx, sqldb, query, service.FoodSearchOptions{
		Provider:    provider,
		Limit:       limit,
		Timeout:     cfg.LookupTimeout,
		Credentials: credentialsFromConfig(),
		Searcher:    lookupSearcher,
	})
}

func credentialsFromConfig() service.Credentials {
	return service.Credentials{
		NutritionixAppID:  cfg.NutritionixAppID,
		NutritionixAppKey: cfg.NutritionixAppKey,
		USDAAPIKey:        cfg.USDAAPIKey,
	}
}

func printCandidates(w io.Writer, items []service.FoodCandidate) {
	for i, it := range items {
		name := it.Name
		if it.Brand != "" {
			name += " (" + it.Brand + ")"
		}
		fmt.Fprintf(w, "%d. %s, %s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", i+1, name, it.ServingSize(), it.Calories, it.Protein, it.Carbs, it.Fat)
	}
}
