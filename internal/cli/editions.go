package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sisexpo/pkg/models"
)

func newEditionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editions",
		Short: "Exhibition editions",
	}
	cmd.AddCommand(
		newEditionsListCommand(),
		newEditionsCurrentCommand(),
	)
	return cmd
}

func printEdition(e models.Edition) {
	marker := " "
	if e.Active {
		marker = "●"
	}
	fmt.Printf("%s [%s] %d — %s (%s, du %s au %s)\n", marker, e.ID, e.Year, e.Name, e.Venue, e.StartDate, e.EndDate)
}

func newEditionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all editions",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Editions.List(ctx), func(editions *[]models.Edition) {
				for _, e := range *editions {
					printEdition(e)
				}
			})
		},
	}
}

func newEditionsCurrentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the active edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Editions.Current(ctx), func(e *models.Edition) {
				printEdition(*e)
			})
		},
	}
}
