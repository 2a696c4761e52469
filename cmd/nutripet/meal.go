package nutripet

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/saadjs/nutripet/internal/model"
	"github.com/saadjs/nutripet/internal/nutrition"
	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log, list, export and import meals",
}

var (
	mealName     string
	mealCalories int
	mealProtein  int
	mealCarbs    int
	mealFat      int
	mealServing  string
	mealDate     string
	mealTime     string

	mealListLimit int
	mealListToday bool

	mealExportOut string

	mealImportReplace bool
	mealImportDryRun  bool
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal and feed the pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			pet, err := service.LogMeal(sqldb, service.MealInput{
				Name:        mealName,
				Calories:    mealCalories,
				Protein:     mealProtein,
				Carbs:       mealCarbs,
				Fat:         mealFat,
				Timestamp:   ts,
				ServingSize: mealServing,
				Source:      service.SourceManual,
			}, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s)\n", strings.TrimSpace(mealName), kcal(mealCalories))
			printPetLine(cmd.OutOrStdout(), pet)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mealListLimit < 0 {
			return fmt.Errorf("--limit must be >= 0")
		}
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.LoadMeals(sqldb)
			if err != nil {
				return err
			}
			if mealListToday {
				meals = nutrition.MealsSince(meals, nutrition.StartOfDay(time.Now()))
			}
			if mealListLimit > 0 && len(meals) > mealListLimit {
				meals = meals[:mealListLimit]
			}
			printMeals(cmd.OutOrStdout(), meals)
			return nil
		})
	},
}

var mealExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profile and meals as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb, time.Now())
			if err != nil {
				return err
			}
			if mealExportOut == "" {
				return service.WriteExport(cmd.OutOrStdout(), data)
			}
			f, err := os.Create(mealExportOut)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			if err := service.WriteExport(f, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d meal(s) to %s\n", len(data.Meals), mealExportOut)
			return nil
		})
	},
}

var mealImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import profile and meals from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		data, err := service.ReadExport(f)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(sqldb, data, service.ImportOptions{Replace: mealImportReplace, DryRun: mealImportDryRun})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if mealImportDryRun {
				fmt.Fprintln(out, "Dry run: no changes written")
			}
			fmt.Fprintf(out, "Imported %d meal(s), skipped %d\n", report.Inserted, report.Skipped)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealExportCmd, mealImportCmd)

	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories (kcal)")
	mealAddCmd.Flags().IntVar(&mealProtein, "protein", 0, "Protein grams")
	mealAddCmd.Flags().IntVar(&mealCarbs, "carbs", 0, "Carbs grams")
	mealAddCmd.Flags().IntVar(&mealFat, "fat", 0, "Fat grams")
	mealAddCmd.Flags().StringVar(&mealServing, "serving", "", "Serving size, e.g. \"1 cup\"")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default now)")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time HH:MM (requires --date)")
	_ = mealAddCmd.MarkFlagRequired("name")

	mealListCmd.Flags().IntVar(&mealListLimit, "limit", 0, "Show at most this many meals (0 = all)")
	mealListCmd.Flags().BoolVar(&mealListToday, "today", false, "Only meals eaten today")

	mealExportCmd.Flags().StringVar(&mealExportOut, "out", "", "Write export to this file instead of stdout")

	mealImportCmd.Flags().BoolVar(&mealImportReplace, "replace", false, "Clear the meal log before importing")
	mealImportCmd.Flags().BoolVar(&mealImportDryRun, "dry-run", false, "Report what would be imported without writing")
}

func printMeals(w io.Writer, meals []model.Meal) {
	fmt.Fprintln(w, "WHEN\tNAME\tKCAL\tP\tC\tF\tSERVING")
	for _, m := range meals {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n", m.Timestamp.Format("2006-01-02 15:04"), m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.ServingSize)
	}
}

func printPetLine(w io.Writer, pet *service.PetState) {
	fmt.Fprintf(w, "%s Your pet is %s (%s, hunger %.0f)\n", pet.Face, pet.Mood, pet.SatietyLabel, pet.Hunger)
}
