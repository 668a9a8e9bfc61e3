package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/custodia-labs/polaris-o365-go/internal/polaris"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to a Polaris account",
	Long: `Log in to a Polaris account and cache the session token locally.

The password is prompted for unless --password is given. Tokens are not
refreshed automatically; run login again when the session expires.

Examples:
  polaris login --account https://myorg.my.rubrik.com --username admin@myorg.com`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Polaris username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "",
		"Polaris password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if store == nil {
		return errors.New("config store not configured")
	}

	cfg, err := store.Load()
	if err != nil {
		return err
	}

	account, err := resolveAccount(cfg)
	if err != nil {
		return err
	}

	username := loginUsername
	if username == "" {
		username = cfg.Username
	}
	if username == "" {
		return errors.New("no username given; pass --username")
	}

	password := loginPassword
	if password == "" {
		password, err = promptPassword(cmd)
		if err != nil {
			return err
		}
	}

	token, err := polaris.Login(cmd.Context(), account, username, password)
	if err != nil {
		return err
	}

	cfg.AccountURL = account
	cfg.Username = username
	cfg.SetToken(&oauth2.Token{AccessToken: token})
	if err := store.Save(cfg); err != nil {
		return err
	}

	cmd.Printf("Logged in to %s as %s.\n", account, username)
	cmd.Printf("Session token saved to %s.\n", store.Path())
	return nil
}

// promptPassword reads the password from the terminal without echo.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("empty password")
	}
	return string(raw), nil
}
