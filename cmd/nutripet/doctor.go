package nutripet

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/saadjs/nutripet/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			report, err := service.RunDoctor(sqldb, now, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printDoctorReport(out, report)
			if doctorFix {
				fmt.Fprintf(out, "Fixed: profile=%t meals=%d hunger=%t goals=%t cache=%d\n",
					report.FixedProfile, report.FixedMeals, report.FixedHunger, report.FixedGoals, report.PurgedCacheRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, now, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}

func printDoctorReport(w io.Writer, r service.DoctorReport) {
	fmt.Fprintf(w, "Malformed profile: %t\n", r.MalformedProfile)
	fmt.Fprintf(w, "Malformed meals: %d\n", r.MalformedMeals)
	fmt.Fprintf(w, "Duplicate meal rows: %d\n", r.DuplicateMealRows)
	fmt.Fprintf(w, "Malformed hunger: %t\n", r.MalformedHunger)
	fmt.Fprintf(w, "Stale goals: %t\n", r.StaleGoals)
	fmt.Fprintf(w, "Expired cache rows: %d\n", r.ExpiredCacheRows)
}
