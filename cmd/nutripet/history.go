package nutripet

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/nutripet/internal/nutrition"
	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show today's totals and the meal log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			pet, err := service.Snapshot(sqldb, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			today := pet.Today
			fmt.Fprintf(out, "Today: %d meal(s), %s\n", today.MealCount, kcal(today.Totals.Calories))
			if pct, ok := nutrition.PercentOfGoal(today.Totals.Calories, pet.Goals.Calories); ok {
				fmt.Fprintf(out, "Calories: %d%% of %s goal\n", pct, kcal(pet.Goals.Calories))
			}
			fmt.Fprintf(out, "Macros: P %dg | C %dg | F %dg\n", today.Totals.Protein, today.Totals.Carbs, today.Totals.Fat)
			if len(pet.Meals) == 0 {
				fmt.Fprintln(out, "No meals logged yet")
				return nil
			}
			fmt.Fprintln(out, "WHEN\tNAME\tKCAL\tOF GOAL")
			for _, m := range pet.Meals {
				share := "-"
				if pct, ok := nutrition.PercentOfGoal(m.Calories, pet.Goals.Calories); ok {
					share = fmt.Sprintf("%d%%", pct)
				}
				fmt.Fprintf(out, "%s\t%s\t%d\t%s\n", m.Timestamp.Format("2006-01-02 15:04"), m.Name, m.Calories, share)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
