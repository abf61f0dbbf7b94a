package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

func newProgramsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "programs",
		Aliases: []string{"programme"},
		Short:   "Exhibition programme",
	}
	cmd.AddCommand(
		newProgramsListCommand(),
		newProgramsGetCommand(),
		newProgramsCreateCommand(),
		newProgramsUpdateCommand(),
		newProgramsDeleteCommand(),
	)
	return cmd
}

func printProgramme(p models.Programme) {
	fmt.Printf("[%s] %s %s-%s  %s (%s)\n", p.ID, p.Day, p.StartTime, p.EndTime, p.Title, p.Category)
	if p.Speaker != "" {
		fmt.Printf("    Intervenant: %s\n", p.Speaker)
	}
	if p.Location != "" {
		fmt.Printf("    Lieu: %s\n", p.Location)
	}
}

func newProgramsListCommand() *cobra.Command {
	var (
		page, limit  int
		day, edition string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			opts := api.ListProgramsOptions{
				Page: api.Page{Page: &page, Limit: &limit},
			}
			if day != "" {
				opts.Day = &day
			}
			if edition != "" {
				opts.EditionID = &edition
			}

			return printResult(client.Programs.List(ctx, opts), func(list *models.ProgrammeList) {
				if len(list.Items) == 0 {
					fmt.Println("Aucune activité programmée")
					return
				}
				for _, p := range list.Items {
					printProgramme(p)
				}
				fmt.Printf("\npage %d/%d — %d au total\n", list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().StringVar(&day, "day", "", "filter by day (ISO date)")
	cmd.Flags().StringVar(&edition, "edition", "", "filter by edition id")
	return cmd
}

func newProgramsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Programs.Get(ctx, args[0]), func(p *models.Programme) {
				printProgramme(*p)
				if p.Description != "" {
					fmt.Printf("    %s\n", p.Description)
				}
			})
		},
	}
}

func programmeInputFlags(cmd *cobra.Command, input *models.ProgrammeInput) {
	cmd.Flags().StringVar(&input.EditionID, "edition", "", "edition id")
	cmd.Flags().StringVar(&input.Day, "day", "", "day (ISO date)")
	cmd.Flags().StringVar(&input.StartTime, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&input.EndTime, "end", "", "end time (HH:MM)")
	cmd.Flags().StringVar(&input.Title, "title", "", "activity title")
	cmd.Flags().StringVar(&input.Description, "description", "", "description")
	cmd.Flags().StringVar(&input.Speaker, "speaker", "", "speaker")
	cmd.Flags().StringVar(&input.Location, "location", "", "location")
	cmd.Flags().StringVar(&input.Category, "category", "", "CONFERENCE, ATELIER, DEPISTAGE or ANIMATION")
}

func newProgramsCreateCommand() *cobra.Command {
	var input models.ProgrammeInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule an activity (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Programs.Create(ctx, input), func(p *models.Programme) {
				fmt.Printf("Activité créée: %s\n", p.ID)
			})
		},
	}

	programmeInputFlags(cmd, &input)
	cmd.MarkFlagRequired("edition")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newProgramsUpdateCommand() *cobra.Command {
	var input models.ProgrammeInput

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an activity (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Programs.Update(ctx, args[0], input), func(p *models.Programme) {
				fmt.Printf("Activité mise à jour: %s\n", p.ID)
			})
		},
	}

	programmeInputFlags(cmd, &input)
	return cmd
}

func newProgramsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an activity (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Programs.Delete(ctx, args[0]), func(*struct{}) {
				fmt.Println("Activité supprimée")
			})
		},
	}
}
