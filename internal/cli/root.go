// Package cli implements the polaris command tree.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/polaris-o365-go/internal/config"
	"github.com/custodia-labs/polaris-o365-go/internal/logger"
	"github.com/custodia-labs/polaris-o365-go/internal/polaris"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// Account overrides the stored account URL for one invocation.
	accountURL string

	// Store is the injected config store used by all commands.
	store *config.Store
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "polaris",
	Short: "Manage Office 365 protection in Rubrik Polaris",
	Long: `Polaris is a client for the Rubrik Polaris data-protection platform.

It lists SLA domains, assigns them to protected objects, and enumerates
the Office 365 subscriptions and users known to your Polaris account.

Log in once with 'polaris login'; the session token is cached locally.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println(version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

// SetStore injects the config store used by CLI commands.
func SetStore(s *config.Store) {
	store = s
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&accountURL, "account", "",
		"Polaris account URL (overrides the stored one)")
	rootCmd.AddCommand(versionCmd)

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}

// resolveAccount returns the account URL from the flag or the stored
// config, in that order.
func resolveAccount(cfg *config.Config) (string, error) {
	if accountURL != "" {
		return accountURL, nil
	}
	if cfg != nil && cfg.AccountURL != "" {
		return cfg.AccountURL, nil
	}
	return "", errors.New("no account URL configured; pass --account or run 'polaris login'")
}

// newClient builds a Polaris client from the stored credentials.
func newClient() (*polaris.Client, error) {
	if store == nil {
		return nil, errors.New("config store not configured")
	}

	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	account, err := resolveAccount(cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.HasToken() {
		return nil, fmt.Errorf("not logged in to %s; run 'polaris login'", account)
	}
	if !cfg.Token.Expiry.IsZero() && cfg.Token.Expiry.Before(time.Now()) {
		logger.Warn("stored session token expired at %s; run 'polaris login' if requests fail",
			cfg.Token.Expiry.Format(time.RFC3339))
	}

	return polaris.NewClient(account, cfg.Token.AccessToken), nil
}
