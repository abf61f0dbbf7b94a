package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

func newMediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Uploaded assets (photos, press kits, documents)",
	}
	cmd.AddCommand(
		newMediaListCommand(),
		newMediaUploadCommand(),
		newMediaDeleteCommand(),
	)
	return cmd
}

func newMediaListCommand() *cobra.Command {
	var (
		page, limit int
		typ         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List media",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			opts := api.ListMediaOptions{
				Page: api.Page{Page: &page, Limit: &limit},
			}
			if typ != "" {
				opts.Type = &typ
			}

			return printResult(client.Media.List(ctx, opts), func(list *models.MediaList) {
				if len(list.Items) == 0 {
					fmt.Println("Aucun média")
					return
				}
				for _, m := range list.Items {
					fmt.Printf("[%s] %-8s %s  %s\n", m.ID, m.Type, m.Title, m.URL)
				}
				fmt.Printf("\npage %d/%d — %d au total\n", list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (IMAGE, VIDEO, DOCUMENT)")
	return cmd
}

func newMediaUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Media.Upload(ctx, filepath.Base(args[0]), f), func(m *models.Media) {
				fmt.Printf("Média créé: %s (%s)\n", m.ID, m.URL)
			})
		},
	}
}

func newMediaDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one media entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Media.Delete(ctx, args[0]), func(*struct{}) {
				fmt.Println("Média supprimé")
			})
		},
	}
}
