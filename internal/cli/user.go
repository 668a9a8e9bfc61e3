package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/polaris-o365-go/internal/polaris"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage Office 365 users",
	Long:  `List the Office 365 users under a subscription.`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Office 365 users in a subscription",
	Long: `List the Office 365 users under a subscription, optionally filtered by
a name or email search string (matched server-side).

Examples:
  polaris user list --subscription <org-id>
  polaris user list --subscription <org-id> --search milan`,
	RunE: runUserList,
}

// Flags for user commands.
var (
	userSubscriptionID string
	userSearch         string
)

func init() {
	userListCmd.Flags().StringVar(&userSubscriptionID, "subscription", "",
		"Subscription (organisation) id to list users for")
	userListCmd.Flags().StringVar(&userSearch, "search", "",
		"Filter users by name or email address")
	_ = userListCmd.MarkFlagRequired("subscription")

	userCmd.AddCommand(userListCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	var users []polaris.User
	if userSearch != "" {
		users, err = client.SearchUsers(cmd.Context(), userSubscriptionID, userSearch)
	} else {
		users, err = client.ListUsers(cmd.Context(), userSubscriptionID)
	}
	if err != nil {
		return err
	}

	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}

	cmd.Printf("Users (%d):\n", len(users))
	cmd.Println()
	for _, u := range users {
		cmd.Printf("  %s <%s>\n", u.Name, u.EmailAddress)
		cmd.Printf("    ID: %s\n", u.ID)
		cmd.Printf("    SLA assignment: %s\n", u.SLAAssignment)
		if u.EffectiveSLADomainName != "" {
			cmd.Printf("    Effective SLA: %s\n", u.EffectiveSLADomainName)
		}
		cmd.Println()
	}
	return nil
}
