package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rotaplan/rotaplan/pkg/core/services"
)

// CheckShiftCmd creates the checkShift command
func CheckShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "checkShift <person_id> <shift_id>",
		Short: "Check a candidate shift assignment for conflicts",
		Long: `Check whether assigning a person to a shift would violate rest
requirements, overlap their other shifts, pair them with someone they
cannot serve alongside, or clash with their resolved availability.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conflicts, err := services.CheckShiftAssignment(app.Ctx, app.Database, app.Cfg, app.Logger,
				args[0], args[1])
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Println("✓ No conflicts: assignment is safe.")
				return nil
			}

			fmt.Printf("\nFound %d conflict(s):\n\n", len(conflicts))
			for _, c := range conflicts {
				fmt.Printf("  ✗ [%s] %s\n", c.Type, c.Reason)
			}
			fmt.Println()
			return nil
		},
	}
}
