package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
	"sisexpo/pkg/utils"
)

func newNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notif"},
		Short:   "Notification feed",
	}
	cmd.AddCommand(
		newNotificationsListCommand(),
		newNotificationsUnreadCommand(),
		newNotificationsMarkReadCommand(),
		newNotificationsMarkAllCommand(),
		newNotificationsDeleteCommand(),
	)
	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var (
		page, limit int
		unreadOnly  bool
		typ         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			opts := api.ListNotificationsOptions{
				Page: api.Page{Page: &page, Limit: &limit},
			}
			if unreadOnly {
				f := false
				opts.Read = &f
			}
			if typ != "" {
				opts.Type = &typ
			}

			return printResult(client.Notifications.List(ctx, opts), func(list *models.NotificationList) {
				if len(list.Items) == 0 {
					fmt.Println("Aucune notification")
					return
				}
				for _, n := range list.Items {
					marker := " "
					if !n.Read {
						marker = "●"
					}
					fmt.Printf("%s [%s] %-12s %s  (%s)\n", marker, n.ID, n.Type, n.Title, utils.TimeAgo(n.CreatedAt))
				}
				fmt.Printf("\npage %d/%d — %d au total, %d non lue(s)\n",
					list.Meta.Page, list.Meta.TotalPages, list.Meta.Total, list.UnreadCount)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread notifications")
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (INSCRIPTION, PROGRAMME, MEDIA, SYSTEME)")
	return cmd
}

func newNotificationsUnreadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unread",
		Short: "Show the unread count",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Notifications.UnreadCount(ctx), func(c *models.UnreadCount) {
				fmt.Printf("%d notification(s) non lue(s)\n", c.Count)
			})
		},
	}
}

func newNotificationsMarkReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Notifications.MarkRead(ctx, args[0]), func(n *models.Notification) {
				fmt.Printf("Lue: %s\n", n.Title)
			})
		},
	}
}

func newNotificationsMarkAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Notifications.MarkAllRead(ctx), func(*models.UnreadCount) {
				fmt.Println("Toutes les notifications sont marquées lues")
			})
		},
	}
}

func newNotificationsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Notifications.Delete(ctx, args[0]), func(*struct{}) {
				fmt.Println("Notification supprimée")
			})
		},
	}
}
