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

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update weight, fitness goal and activity level",
}

var (
	profileWeight   float64
	profileGoal     string
	profileActivity float64
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p := service.LoadProfile(sqldb)
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the profile and recompute daily goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("weight") && !cmd.Flags().Changed("goal") && !cmd.Flags().Changed("activity") {
			return fmt.Errorf("set at least one of --weight, --goal or --activity")
		}
		return withDB(func(sqldb *sql.DB) error {
			p := service.LoadProfile(sqldb)
			if cmd.Flags().Changed("weight") {
				p.WeightKg = profileWeight
			}
			if cmd.Flags().Changed("goal") {
				p.Goal = model.Goal(profileGoal)
			}
			if cmd.Flags().Changed("activity") {
				p.ActivityLevel = profileActivity
			}
			pet, err := service.UpdateProfile(sqldb, p, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Profile updated")
			printProfile(out, pet.Profile)
			printGoals(out, pet.Goals)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight in kg (30-200)")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "", "Fitness goal: muscle_gain, fat_loss or maintenance")
	profileSetCmd.Flags().Float64Var(&profileActivity, "activity", 0, "Activity multiplier (1.2-1.9)")
}

func printProfile(w io.Writer, p model.Profile) {
	fmt.Fprintf(w, "Weight: %.1f kg\n", p.WeightKg)
	fmt.Fprintf(w, "Goal: %s\n", p.Goal)
	if label := activityLabel(p.ActivityLevel); label != "" {
		fmt.Fprintf(w, "Activity: %g (%s)\n", p.ActivityLevel, label)
	} else {
		fmt.Fprintf(w, "Activity: %g\n", p.ActivityLevel)
	}
}

func activityLabel(level float64) string {
	for _, preset := range model.ActivityPresets {
		if preset.Value == level {
			return preset.Label
		}
	}
	return ""
}
