package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/pkg/core/roster"
	"github.com/rotaplan/rotaplan/pkg/core/services"
)

// GenerateRosterCmd creates the generateRoster command
func GenerateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateRoster <start_date> <end_date>",
		Short: "Generate a roster for the given date window",
		Long: `Generate a roster for every active person between start_date and
end_date (inclusive, YYYY-MM-DD). The run is a preview: nothing is saved
unless validation passes or --force-commit acknowledges the warnings.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			daysBase, _ := cmd.Flags().GetInt("days-base")
			daysHome, _ := cmd.Flags().GetInt("days-home")
			minStaff, _ := cmd.Flags().GetInt("min-staff")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			forceCommit, _ := cmd.Flags().GetBool("force-commit")

			plan, err := services.GenerateRoster(app.Ctx, app.Database, app.Cfg, app.Logger, services.GenerateParams{
				StartDate: args[0],
				EndDate:   args[1],
				Mode:      mode,
				DaysBase:  daysBase,
				DaysHome:  daysHome,
				MinStaff:  minStaff,
			})
			if err != nil {
				return err
			}

			printPlanSummary(plan)

			report := services.ValidateRoster(plan, app.Logger)
			printReport(report)

			if dryRun {
				fmt.Println("Dry run: nothing saved.")
				return nil
			}
			if report.HasWarnings() && !forceCommit {
				return fmt.Errorf("roster has validation warnings; re-run with --force-commit to save anyway")
			}

			saved, err := services.SaveRoster(app.Ctx, app.Database, app.Logger, app.Cfg.OrganizationID, plan)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster saved: %d records across %d people\n",
				saved.RecordsUpserted, saved.PeopleUpdated)
			return nil
		},
	}

	cmd.Flags().String("mode", "", "Optimization mode (ratio, min_staff, tasks)")
	cmd.Flags().Int("days-base", 0, "Rotation days on base (overrides organization default)")
	cmd.Flags().Int("days-home", 0, "Rotation days at home (overrides organization default)")
	cmd.Flags().Int("min-staff", 0, "Minimum people on base per day (overrides organization default)")
	cmd.Flags().Bool("dry-run", false, "Generate and validate without saving")
	cmd.Flags().Bool("force-commit", false, "Save even when validation reports warnings")

	return cmd
}

func printPlanSummary(plan *services.RosterPlan) {
	result := plan.Result
	fmt.Printf("\n✓ Roster generated: %d entries over %d days for %d people\n",
		len(result.Roster), result.Stats.Days, result.Stats.People)
	fmt.Printf("Constraints met: %d/%d (%.1f%%)\n",
		result.Stats.Constraints.Met,
		result.Stats.Constraints.Total,
		result.Stats.Constraints.Percentage)

	if len(result.Unfulfilled) > 0 {
		fmt.Printf("\nUnfulfilled constraints:\n")
		for _, u := range result.Unfulfilled {
			if u.PersonID != "" {
				fmt.Printf("  ✗ %s %s: %s\n", u.Date, u.PersonID, u.Reason)
			} else {
				fmt.Printf("  ✗ %s: %s\n", u.Date, u.Reason)
			}
		}
	}
}

func printReport(report *roster.ValidationReport) {
	if len(report.Issues) == 0 {
		fmt.Println("\nValidation: no issues.")
		return
	}
	fmt.Printf("\nValidation issues:\n")
	for _, issue := range report.Issues {
		marker := "ℹ"
		if issue.Severity == roster.IssueWarning {
			marker = "⚠"
		}
		fmt.Printf("  %s %s\n", marker, issue.Message)
	}
}
