package config

import "github.com/spf13/cobra"

// CompleteOutputFormat provides shell completion candidates for the --output flag.
func CompleteOutputFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return outputFormats, cobra.ShellCompDirectiveNoFileComp
}

// CompleteLogFormat provides shell completion candidates for the --log-format flag.
func CompleteLogFormat(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return logFormats, cobra.ShellCompDirectiveNoFileComp
}

// CompleteSubdomainSource provides shell completion candidates for the --subdomain-source flag.
func CompleteSubdomainSource(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return subdomainSources, cobra.ShellCompDirectiveNoFileComp
}

// CompleteKey provides shell completion candidates for config keys.
func CompleteKey(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return ValidKeys(), cobra.ShellCompDirectiveNoFileComp
}

// RegisterFlagCompletions wires completion functions for the flags added by
// RegisterFlags. Registration errors only occur for unknown flags and are ignored.
func RegisterFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("output", CompleteOutputFormat)
	_ = cmd.RegisterFlagCompletionFunc("log-format", CompleteLogFormat)
	_ = cmd.RegisterFlagCompletionFunc("subdomain-source", CompleteSubdomainSource)
	_ = cmd.RegisterFlagCompletionFunc("geoip-db", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mmdb"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
