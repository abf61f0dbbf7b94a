package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
	"sisexpo/pkg/utils"
)

func newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session management",
	}
	cmd.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newForgotPasswordCommand(),
		newResetPasswordCommand(),
		newVerifyEmailCommand(),
	)
	return cmd
}

// promptPassword reads a password without echo
func promptPassword(label string) (string, error) {
	fmt.Print(label + ": ")
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func newLoginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				fmt.Print("Email: ")
				fmt.Scanln(&email)
			}
			if err := utils.ValidateEmail(email); err != nil {
				return err
			}
			password, err := promptPassword("Mot de passe")
			if err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Auth.Login(ctx, email, password), func(s *models.Session) {
				fmt.Printf("Connecté: %s (%s)\n", s.User.FullName(), s.User.Role)
			})
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var req api.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (a verification email is sent)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.ValidateEmail(req.Email); err != nil {
				return err
			}
			password, err := promptPassword("Mot de passe")
			if err != nil {
				return err
			}
			if err := utils.ValidatePassword(password); err != nil {
				return err
			}
			req.Password = password
			if req.Role == "" {
				req.Role = models.RoleVisitor
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Auth.Register(ctx, req), func(u *models.User) {
				fmt.Printf("Compte créé: %s — vérifiez votre email\n", u.Email)
			})
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&req.FirstName, "prenom", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "nom", "", "last name")
	cmd.Flags().StringVar(&req.Phone, "telephone", "", "phone number")
	cmd.Flags().StringVar(&req.Organization, "organisation", "", "organization")
	cmd.Flags().StringVar(&req.Role, "role", "", "requested role (default VISITEUR)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("prenom")
	cmd.MarkFlagRequired("nom")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Close the session and wipe stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			res := client.Auth.Logout(ctx)
			// Local tokens are wiped either way; only report transport issues.
			if !res.Success && res.Code != models.ErrCodeUnauthorized {
				fmt.Fprintf(os.Stderr, "warning: %s\n", res.Error)
			}
			fmt.Println("Déconnecté")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Users.Me(ctx), func(u *models.User) {
				fmt.Printf("%s <%s>\n", u.FullName(), u.Email)
				fmt.Printf("Rôle: %s\n", u.Role)
				if u.Organization != "" {
					fmt.Printf("Organisation: %s\n", u.Organization)
				}
			})
		},
	}
}

func newForgotPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forgot-password <email>",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Auth.ForgotPassword(ctx, args[0]), nil)
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <token>",
		Short: "Set a new password using an emailed reset token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Nouveau mot de passe")
			if err != nil {
				return err
			}
			if err := utils.ValidatePassword(password); err != nil {
				return err
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Auth.ResetPassword(ctx, args[0], password), nil)
		},
	}
}

func newVerifyEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-email <token>",
		Short: "Confirm an account with an emailed verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext()
			defer cancel()

			return printResult(client.Auth.VerifyEmail(ctx, args[0]), nil)
		},
	}
}
