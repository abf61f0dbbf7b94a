// Package cli implements the command-line client for the exhibition
// platform. Commands share one API client backed by a file token store, so
// a login survives across invocations.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sisexpo/internal/api"
	"sisexpo/pkg/logger"
)

var (
	apiURL     string
	language   string
	jsonOutput bool
	verbose    bool
)

// NewRootCommand builds the sisexpo command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "sisexpo",
		Short: "Client for the S.I.S. health-prevention exhibition platform",
		Long: `sisexpo talks to the S.I.S. exhibition backend: accounts,
notifications, programme, media and statistics.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger.Init(logger.Config{Level: level, Format: "text", Output: "stderr"})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "backend base URL (default from config or SIS_API_URL)")
	root.PersistentFlags().StringVar(&language, "lang", "fr", "response language (fr or en)")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON payloads")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	viper.SetDefault("server.base_url", "http://localhost:8080/api/v1")
	viper.SetConfigName("cli")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.config/sisexpo")
	viper.AddConfigPath("$HOME/.sisexpo")
	_ = viper.ReadInConfig()

	root.AddCommand(
		newAuthCommand(),
		newNotificationsCommand(),
		newProgramsCommand(),
		newMediaCommand(),
		newStatsCommand(),
		newAdminCommand(),
		newEditionsCommand(),
		newConfigCommand(),
	)

	return root
}

func baseURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := os.Getenv("SIS_API_URL"); url != "" {
		return url
	}
	return viper.GetString("server.base_url")
}

// newClient builds a client persisting tokens under the user's home
func newClient() (*api.Client, error) {
	tokens, err := api.NewFileTokenStore(api.DefaultTokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return api.NewClient(baseURL(), tokens, api.TransportOptions{
		Language: language,
		OnUnauthorized: func() {
			fmt.Fprintln(os.Stderr, "Session expired, please run 'sisexpo auth login' again")
		},
	}), nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// printResult prints a settled call, honoring --json, and returns an error
// on failure so cobra sets the exit code.
func printResult[T any](res api.Result[T], render func(*T)) error {
	if !res.Success {
		if len(res.Details) > 0 {
			for _, d := range res.Details {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", d.Field, d.Message)
			}
		}
		return fmt.Errorf("%s (%s)", res.Error, res.Code)
	}

	if jsonOutput {
		out, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	if res.Data != nil && render != nil {
		render(res.Data)
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	return nil
}
