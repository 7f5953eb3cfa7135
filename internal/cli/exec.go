package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/B3RT1337/lookup-bot/internal/metrics"
	"github.com/B3RT1337/lookup-bot/internal/output"
	"github.com/B3RT1337/lookup-bot/internal/worker"
)

func newExecCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run bot commands and print the replies",
		Long: `Run a single command given as arguments, or one command per line read
from stdin. Stdin batches run with up to --concurrency commands in flight and
print in input order. The exit status is non-zero if any command failed.`,
		Example: `  lookupbot exec /lookup https://example.com
  lookupbot exec -o json /iplookup 8.8.8.8
  printf '/getsub https://example.com\n/iplookup 1.1.1.1\n' | lookupbot exec`,
		Args:    cobra.ArbitraryArgs,
		GroupID: "bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(cmd, args)
			if err != nil {
				return err
			}

			disp, closeFn, err := d.newDispatcher(metrics.New())
			if err != nil {
				return err
			}
			defer func() {
				if err := closeFn(); err != nil {
					d.logger.Warn("closing GeoIP database", "error", err)
				}
			}()

			results := worker.Run(cmd.Context(), disp, inputs, d.cfg.Concurrency)

			w := cmd.OutOrStdout()
			if len(args) > 0 {
				err = writeResult(w, d, results[0].Output)
			} else {
				err = writeBatch(w, d, results)
			}
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if !r.Output.Success {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d commands failed", failed, len(results))
			}
			return nil
		},
	}
}

// writeBatch prints stdin results: a JSON array, or each reply under a
// "> command" header.
func writeBatch(w io.Writer, d *deps, results []worker.Result) error {
	if output.Format(d.cfg.Output) == output.FormatJSON {
		return writeResult(w, d, results)
	}
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "> %s\n", r.Input); err != nil {
			return err
		}
		if err := writeResult(w, d, r.Output); err != nil {
			return err
		}
	}
	return nil
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
