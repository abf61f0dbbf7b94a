package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sisexpo/pkg/models"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics snapshots",
	}
	cmd.AddCommand(
		newStatsGlobalCommand(),
		newStatsRegistrationsCommand(),
		newStatsDashboardCommand(),
	)
	return cmd
}

func newStatsGlobalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "global",
		Short: "Site-wide statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Statistics.Global(ctx), func(g *models.GlobalStatistics) {
				fmt.Printf("Éditions:      %d\n", g.Editions)
				fmt.Printf("Inscriptions:  %d\n", g.Registrations)
				fmt.Printf("Exposants:     %d\n", g.Exhibitors)
				fmt.Printf("Bénévoles:     %d\n", g.Volunteers)
				fmt.Printf("Partenaires:   %d\n", g.Partners)
				fmt.Printf("Visiteurs:     %d\n", g.Visitors)
			})
		},
	}
}

func newStatsRegistrationsCommand() *cobra.Command {
	var edition string

	cmd := &cobra.Command{
		Use:   "registrations",
		Short: "Registration breakdown for one edition",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			var editionID *string
			if edition != "" {
				editionID = &edition
			}

			return printResult(client.Statistics.Registrations(ctx, editionID), func(r *models.RegistrationStatistics) {
				fmt.Printf("Total: %d\n", r.Total)
				for role, count := range r.ByRole {
					fmt.Printf("  %-12s %d\n", role, count)
				}
				if len(r.ByDay) > 0 {
					fmt.Println("Par jour:")
					for _, d := range r.ByDay {
						fmt.Printf("  %s  %d\n", d.Date, d.Count)
					}
				}
			})
		},
	}

	cmd.Flags().StringVar(&edition, "edition", "", "edition id (default: all)")
	return cmd
}

func newStatsDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Admin dashboard aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Statistics.Dashboard(ctx), func(d *models.DashboardStatistics) {
				fmt.Printf("Inscriptions:            %d\n", d.Global.Registrations)
				fmt.Printf("Utilisateurs en attente: %d\n", d.PendingUsers)
				fmt.Printf("Édition %s: %d inscription(s)\n", d.Registrations.EditionID, d.Registrations.Total)
			})
		},
	}
}
