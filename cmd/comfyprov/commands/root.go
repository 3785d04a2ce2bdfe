// Package commands implements the CLI commands for the comfyprov tool.
package commands

import (
	"context"
	"io"

	"github.com/comfyops/comfyprov/internal/app"
	"github.com/comfyops/comfyprov/internal/build"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for comfyprov.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
}

// New creates a new CLI instance with the given application components.
func New(c *app.Components) *CLI {
	rootCmd := &cobra.Command{
		Use:           "comfyprov",
		Short:         "Provision and repair a ComfyUI GPU server environment",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the provisioning plan file")

	cli := &CLI{
		components: c,
		rootCmd:    rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			c.App.SetConfigPath(path)
		}
	}

	rootCmd.AddCommand(cli.newRunCmd())
	rootCmd.AddCommand(cli.newStatusCmd())
	rootCmd.AddCommand(cli.newVersionCmd())

	return cli
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOut redirects command output. Used for testing.
func (c *CLI) SetOut(w io.Writer) {
	c.rootCmd.SetOut(w)
}
