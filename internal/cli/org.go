package cli

import (
	"github.com/spf13/cobra"
)

var orgCmd = &cobra.Command{
	Use:     "org",
	Aliases: []string{"subscription"},
	Short:   "Manage Office 365 subscriptions",
	Long:    `List the Office 365 subscriptions (organisations) known to Polaris.`,
}

var orgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List Office 365 subscriptions",
	RunE:  runOrgList,
}

func init() {
	orgCmd.AddCommand(orgListCmd)
	rootCmd.AddCommand(orgCmd)
}

func runOrgList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	subscriptions, err := client.ListSubscriptions(cmd.Context())
	if err != nil {
		return err
	}

	if len(subscriptions) == 0 {
		cmd.Println("No Office 365 subscriptions found.")
		return nil
	}

	cmd.Printf("Office 365 subscriptions (%d):\n", len(subscriptions))
	cmd.Println()
	for _, s := range subscriptions {
		cmd.Printf("  %s\n", s.Name)
		cmd.Printf("    ID: %s\n", s.ID)
		cmd.Printf("    Status: %s\n", s.Status)
		cmd.Printf("    Users: %d (%d unprotected)\n", s.UsersCount, s.UnprotectedUsersCount)
		if s.EffectiveSLADomainName != "" {
			cmd.Printf("    Effective SLA: %s\n", s.EffectiveSLADomainName)
		}
		if s.ConfiguredSLADomainName != "" {
			cmd.Printf("    Configured SLA: %s\n", s.ConfiguredSLADomainName)
		}
		cmd.Println()
	}
	return nil
}
