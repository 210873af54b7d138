package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List all people in the organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.Database.GetPeople(app.Ctx, app.Cfg.OrganizationID)
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			app.Logger.Info("People fetched", zap.Int("count", len(people)))

			fmt.Printf("\nFound %d people:\n\n", len(people))
			for _, p := range people {
				state := "active"
				if !p.Active {
					state = "inactive"
				}
				roleInfo := ""
				if len(p.Roles) > 0 {
					roleInfo = fmt.Sprintf(" [%s]", strings.Join(p.Roles, ", "))
				}
				fmt.Printf("- %s %s (%s) - %s%s\n", p.FirstName, p.LastName, p.ID, state, roleInfo)
			}

			return nil
		},
	}
}
