package cli

import (
	"github.com/spf13/cobra"
)

var slaCmd = &cobra.Command{
	Use:   "sla",
	Short: "Manage SLA domains",
	Long:  `List SLA domains and assign them to protected objects.`,
}

var slaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List SLA domains",
	RunE:  runSLAList,
}

var slaAssignCmd = &cobra.Command{
	Use:   "assign [sla-id]",
	Short: "Assign an SLA domain to objects",
	Long: `Assign an SLA domain to one or more protected objects.

Besides an SLA domain id, two sentinel values are accepted:
  UNPROTECTED   remove the direct SLA assignment
  DONOTPROTECT  mark the objects explicitly unprotected, blocking inheritance

Examples:
  polaris sla assign 12345678-... --object <user-id>
  polaris sla assign UNPROTECTED --object <user-id> --object <user-id>`,
	Args: cobra.ExactArgs(1),
	RunE: runSLAAssign,
}

// Flags for sla commands.
var (
	slaNameFilter string
	slaObjectIDs  []string
)

func init() {
	slaListCmd.Flags().StringVar(&slaNameFilter, "name", "", "Filter SLA domains by name")
	slaAssignCmd.Flags().StringArrayVar(&slaObjectIDs, "object", nil,
		"Object id to assign the SLA to (can be repeated)")
	_ = slaAssignCmd.MarkFlagRequired("object")

	slaCmd.AddCommand(slaListCmd)
	slaCmd.AddCommand(slaAssignCmd)
	rootCmd.AddCommand(slaCmd)
}

func runSLAList(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	domains, err := client.ListSLADomains(cmd.Context(), slaNameFilter)
	if err != nil {
		return err
	}

	if len(domains) == 0 {
		cmd.Println("No SLA domains found.")
		return nil
	}

	cmd.Printf("SLA domains (%d):\n", len(domains))
	cmd.Println()
	for _, d := range domains {
		cmd.Printf("  %s\n", d.Name)
		cmd.Printf("    ID: %s\n", d.ID)
		if d.Description != "" {
			cmd.Printf("    Description: %s\n", d.Description)
		}
		cmd.Println()
	}
	return nil
}

func runSLAAssign(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	slaID := args[0]
	if err := client.AssignSLA(cmd.Context(), slaObjectIDs, slaID); err != nil {
		return err
	}

	cmd.Printf("Assigned SLA %s to %d object(s).\n", slaID, len(slaObjectIDs))
	return nil
}
