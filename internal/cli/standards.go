// Package cli — standards.go implements the "cabinetgen standards" command,
// which prints the construction standards in effect. The YAML output is a
// valid --standards file and is the easiest starting point for one.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// NewStandardsCommand creates the "standards" cobra command.
func NewStandardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "Print the construction standards in effect",
		Long: `Print the fixed construction constants (insets, margins, reveals,
hardware offsets) as YAML, after applying any --standards override.

Examples:
  cabinetgen standards > shop.yaml
  cabinetgen standards --standards shop.yaml --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if IsJSONOutput() {
				return writeJSON(w, activeStandards)
			}

			data, err := activeStandards.Marshal()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "failed to serialize standards", err)
			}
			_, err = w.Write(data)
			return err
		},
	}
}
