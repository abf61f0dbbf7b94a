package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "CLI configuration",
	}
	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigSetCommand(),
	)
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("base URL:  %s\n", baseURL())
			fmt.Printf("language:  %s\n", language)
			if file := viper.ConfigFileUsed(); file != "" {
				fmt.Printf("config:    %s\n", file)
			} else {
				fmt.Println("config:    (defaults)")
			}
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Persist one configuration value",
		Long:  "Known keys: server.base_url",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set(args[0], args[1])

			path := viper.ConfigFileUsed()
			if path == "" {
				dir := filepath.Join(os.Getenv("HOME"), ".config", "sisexpo")
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
				path = filepath.Join(dir, "cli.yaml")
			}

			if err := viper.WriteConfigAs(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Printf("Saved %s=%s to %s\n", args[0], args[1], path)
			return nil
		},
	}
}
