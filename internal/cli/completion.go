package cli

import (
	"io"

	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	completion := &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		Short:   "Generate shell completion scripts",
		GroupID: "utility",
		Long: `Generate shell completion scripts for lookupbot.

Bash:
  $ source <(lookupbot completion bash)

Zsh:
  $ lookupbot completion zsh > "${fpath[1]}/_lookupbot"

Fish:
  $ lookupbot completion fish > ~/.config/fish/completions/lookupbot.fish

PowerShell:
  PS> lookupbot completion powershell | Out-String | Invoke-Expression`,
		// Override root's PersistentPreRunE so completion scripts can be
		// generated even when the config file or environment is invalid.
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	shells := []struct {
		name string
		gen  func(root *cobra.Command, w io.Writer) error
	}{
		{"bash", func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) }},
		{"zsh", func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) }},
		{"fish", func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) }},
		{"powershell", func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) }},
	}
	for _, sh := range shells {
		completion.AddCommand(&cobra.Command{
			Use:                   sh.name,
			Short:                 "Generate " + sh.name + " completion script",
			Args:                  cobra.NoArgs,
			DisableFlagsInUseLine: true,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return sh.gen(cmd.Root(), cmd.OutOrStdout())
			},
		})
	}

	return completion
}
