package nutripet

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var petCmd = &cobra.Command{
	Use:   "pet",
	Short: "Check on your pet",
}

var petJSON bool

var petStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the pet's hunger, mood and today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			pet, err := service.Snapshot(sqldb, time.Now())
			if err != nil {
				return err
			}
			if petJSON {
				b, err := json.MarshalIndent(pet, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal pet status json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printPetStatus(cmd.OutOrStdout(), pet)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(petCmd)
	petCmd.AddCommand(petStatusCmd)
	petStatusCmd.Flags().BoolVar(&petJSON, "json", false, "Output JSON")
}

func printPetStatus(w io.Writer, pet *service.PetState) {
	fmt.Fprintf(w, "%s  %s\n", pet.Face, pet.Mood)
	fmt.Fprintf(w, "Hunger: %s %.0f (%s)\n", hungerBar(pet.Hunger), pet.Hunger, pet.SatietyLabel)
	fmt.Fprintf(w, "Calories: %d%% | Protein: %d%% | Carbs: %d%% | Fat: %d%%\n",
		pet.Progress.Calories, pet.Progress.Protein, pet.Progress.Carbs, pet.Progress.Fat)
	r := pet.Progress.Remaining
	fmt.Fprintf(w, "Remaining: %s | P %dg | C %dg | F %dg\n", kcal(r.Calories), r.Protein, r.Carbs, r.Fat)
	if pet.Insight != "" {
		fmt.Fprintln(w, pet.Insight)
	}
	if pet.Message != "" {
		fmt.Fprintf(w, "%q\n", pet.Message)
	}
}
