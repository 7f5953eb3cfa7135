package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/B3RT1337/lookup-bot/internal/config"
	"github.com/B3RT1337/lookup-bot/internal/output"
)

func newConfigCmd(d *deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Read and write lookupbot config file values",
		GroupID: "utility",
	}
	cmd.AddCommand(
		newConfigPathCmd(d),
		newConfigShowCmd(d),
		newConfigGetCmd(d),
		newConfigSetCmd(d),
	)
	return cmd
}

func newConfigPathCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), d.cfg.ConfigFile)
			return err
		},
	}
}

// newConfigShowCmd displays effective state (defaults, file, env and flags
// merged), not just what is written to the file.
func newConfigShowCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"cat"},
		Short:   "Display all effective config settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			values := d.cfg.Values()
			if output.Format(d.cfg.Output) == output.FormatJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(values)
			}
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(values); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		},
	}
}

func newConfigGetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print the effective value of a config key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: config.CompleteKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateKey(args[0]); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), d.cfg.Values()[config.NormalizeKey(args[0])])
			return err
		},
	}
}

func newConfigSetCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value and persist it to the config file",
		Long: `Set a config value and persist it to the config file. Only the given key
is written; other keys already in the file are kept.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: config.CompleteKey,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(d.cfg.ConfigFile, args[0], args[1]); err != nil {
				return err
			}
			d.logger.Debug("config updated", "key", config.NormalizeKey(args[0]), "file", d.cfg.ConfigFile)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", config.NormalizeKey(args[0]), args[1])
			return err
		},
	}
}
