// Package cli provides the Cobra command tree and output wiring for lookupbot.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/B3RT1337/lookup-bot/internal/config"
	"github.com/B3RT1337/lookup-bot/internal/version"
)

// newRootCmd builds the top-level Cobra command for lookupbot.
// Callers must set stdout/stderr via cmd.SetOut / cmd.SetErr before Execute.
func newRootCmd() *cobra.Command {
	// d is populated by PersistentPreRunE before any subcommand's RunE runs.
	// INVARIANT: Cobra only executes the innermost PersistentPreRunE in the
	// command chain. Only `completion` overrides it, and it never reads d.
	var d deps

	cmd := &cobra.Command{
		Use:   "lookupbot",
		Short: "lookupbot: chat-style DNS, subdomain and IP lookups",
		Long: `lookupbot answers slash commands with network reconnaissance results:

  /help              list the commands
  /lookup <url>      resolve the host, geolocate it and list its A, AAAA and MX records
  /getsub <url>      enumerate subdomains
  /iplookup <ip>     geolocate an IP address

Run "lookupbot serve" to expose them on POST /execute-command, or
"lookupbot exec" to run them from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := buildDeps(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d = *resolved
			return nil
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())
	config.RegisterFlagCompletions(cmd)

	cmd.Version = version.String()
	cmd.SetVersionTemplate("lookupbot version {{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: "bot", Title: "Bot Commands:"},
		&cobra.Group{ID: "utility", Title: "Utility Commands:"},
	)

	cmd.AddCommand(
		newServeCmd(&d),
		newExecCmd(&d),
		newConfigCmd(&d),
		newCompletionCmd(),
		newVersionCmd(&d),
	)

	return cmd
}

// Execute builds the root command and runs it with args.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
