package commands

import (
	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/pkg/core/services"
)

// ValidateRosterCmd creates the validateRoster command
func ValidateRosterCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validateRoster <start_date> <end_date>",
		Short: "Generate a roster for the window and report validation issues without saving",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, _ := cmd.Flags().GetString("mode")

			plan, err := services.GenerateRoster(app.Ctx, app.Database, app.Cfg, app.Logger, services.GenerateParams{
				StartDate: args[0],
				EndDate:   args[1],
				Mode:      mode,
			})
			if err != nil {
				return err
			}

			printPlanSummary(plan)
			printReport(services.ValidateRoster(plan, app.Logger))
			return nil
		},
	}

	cmd.Flags().String("mode", "", "Optimization mode (ratio, min_staff, tasks)")

	return cmd
}
