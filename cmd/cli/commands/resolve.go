package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/pkg/core/services"
)

// ResolveCmd creates the resolve command
func ResolveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <person_id> <start_date> <end_date>",
		Short: "Show a person's effective availability for each day in the window",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := services.ResolveAvailability(app.Ctx, app.Database, app.Cfg, app.Logger,
				args[0], args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("\nEffective availability for %s:\n\n", args[0])
			for _, day := range days {
				fmt.Printf("  %s  %-28s [%s]", day.Date, day.Label, day.Effective.Source)
				if len(day.Effective.UnavailableBlocks) > 0 {
					fmt.Printf("  (%d hourly blockage(s))", len(day.Effective.UnavailableBlocks))
				}
				fmt.Println()
			}
			fmt.Println()

			return nil
		},
	}
}
