package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/version"
)

type versionInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func newVersionCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the lookupbot version",
		Args:    cobra.NoArgs,
		GroupID: "utility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output.Format(d.cfg.Output) == output.FormatJSON {
				info := versionInfo{Version: version.Version, Commit: version.Commit, Date: version.Date}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lookupbot version %s\n", version.String())
			return err
		},
	}
}
