package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/spf13/cobra"
)

var (
	activateMode string
	activateOut  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Evaluate the selection and procurement information predicates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDocument(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), d.Summary())
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <file>",
	Short: "Activate a whole criterion set of a document",
	Long: `Activate replaces every criterion of the chosen set with a fresh,
active value and writes the resulting document as JSON.

Modes:
  exclusion     all exclusion grounds
  exclusion-eu  EU exclusion grounds; purely national grounds stay inactive
  selection     all selection criteria

Example:
  espdctl activate request.json --mode exclusion-eu --out request.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sweep, err := espd.ParseSweep(activateMode)
		if err != nil {
			return err
		}
		d, err := readDocument(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		rep, err := d.Apply(sweep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "activated %d criteria (%s)\n", rep.Touched, sweep)
		if err := rep.Err(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}

		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return err
		}
		if activateOut == "" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		}
		return os.WriteFile(activateOut, append(b, '\n'), 0o644)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd, activateCmd)
	activateCmd.Flags().StringVar(&activateMode, "mode", string(espd.SweepExclusion), "activation mode (exclusion, exclusion-eu, selection)")
	activateCmd.Flags().StringVar(&activateOut, "out", "", "write the document to this path instead of stdout")
}
