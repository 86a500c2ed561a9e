package cli

import (
	"fmt"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"github.com/spf13/cobra"
)

var criteriaSet string

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "List the criterion taxonomy",
	Long: `List criteria in declared order, optionally restricted to one set.

Example:
  espdctl criteria --set selection -o yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var set []criteria.Criterion
		switch criteriaSet {
		case "", "all":
			set = criteria.All()
		case "exclusion":
			set = criteria.Exclusion
		case "selection":
			set = criteria.Selection
		case "other":
			set = criteria.Other
		default:
			return fmt.Errorf("unknown criterion set %q", criteriaSet)
		}
		return render(cmd.OutOrStdout(), set)
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
	criteriaCmd.Flags().StringVar(&criteriaSet, "set", "all", "criterion set (all, exclusion, selection, other)")
}
