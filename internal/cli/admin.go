package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration (requires the ADMIN role)",
	}
	cmd.AddCommand(
		newAdminUsersCommand(),
		newAdminSetRoleCommand(),
		newAdminDeactivateCommand(),
	)
	return cmd
}

func newAdminUsersCommand() *cobra.Command {
	var (
		page, limit  int
		role, search string
	)

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			opts := api.ListUsersOptions{
				Page: api.Page{Page: &page, Limit: &limit},
			}
			if role != "" {
				opts.Role = &role
			}
			if search != "" {
				opts.Search = &search
			}

			return printResult(client.Admin.ListUsers(ctx, opts), func(list *models.UserList) {
				for _, u := range list.Users {
					status := "actif"
					if !u.Active {
						status = "désactivé"
					}
					fmt.Printf("[%s] %-28s %-12s %s\n", u.ID, u.Email, u.Role, status)
				}
				fmt.Printf("\npage %d/%d — %d au total\n", list.Meta.Page, list.Meta.TotalPages, list.Meta.Total)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	cmd.Flags().StringVar(&search, "search", "", "search by name or email")
	return cmd
}

func newAdminSetRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <id> <role>",
		Short: "Change an account's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Admin.UpdateUserRole(ctx, args[0], args[1]), func(u *models.User) {
				fmt.Printf("%s est maintenant %s\n", u.Email, u.Role)
			})
		},
	}
}

func newAdminDeactivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Admin.DeactivateUser(ctx, args[0]), func(u *models.User) {
				fmt.Printf("Compte désactivé: %s\n", u.Email)
			})
		},
	}
}
