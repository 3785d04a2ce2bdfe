package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile the server environment against the provisioning plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			c.components.App.SetDryRun(dryRun)
			return c.components.App.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Report what would change without touching the environment")
	return cmd
}
