package nutripet

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show daily nutrition goals derived from the profile",
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's calorie and macro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			pet, err := service.Snapshot(sqldb, time.Now())
			if err != nil {
				return err
			}
			printGoals(cmd.OutOrStdout(), pet.Goals)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalShowCmd)
}

func printGoals(w io.Writer, g model.NutritionGoals) {
	fmt.Fprintf(w, "Goal: %s | P %dg | C %dg | F %dg\n", kcal(g.Calories), g.Protein, g.Carbs, g.Fat)
}
