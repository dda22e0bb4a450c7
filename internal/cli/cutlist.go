// Package cli — cutlist.go implements the "cabinetgen cutlist" command.
//
// The cutlist command generates a cabinet and prints only the shop cut
// list: one row per group of identical panels, dimensions largest first.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cabinetgen/internal/export"
	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// cutListFlags holds the flag values for the cutlist command.
type cutListFlags struct {
	params paramFlags
	format string
}

// NewCutListCommand creates the "cutlist" cobra command.
func NewCutListCommand() *cobra.Command {
	flags := &cutListFlags{}

	cmd := &cobra.Command{
		Use:     "cutlist",
		Aliases: []string{"cut-list"},
		Short:   "Print the shop cut list for one cabinet",
		Long: `Print the cut list for one cabinet: part, quantity, length, width, thickness.

Examples:
  cabinetgen cutlist
  cabinetgen cutlist --width 24 --shelves 3
  cabinetgen cutlist --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCutList(cmd, flags)
		},
	}

	flags.params.bind(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format: text, json, yaml")

	return cmd
}

// runCutList is the main logic function for the cutlist command.
func runCutList(cmd *cobra.Command, flags *cutListFlags) error {
	format, err := resolveFormat(flags.format)
	if err != nil {
		return err
	}

	raw, err := flags.params.resolve(cmd)
	if err != nil {
		return err
	}

	a, err := export.BuildRaw(raw, activeStandards)
	if err != nil {
		return model.WrapDomainError("cannot generate cabinet", err)
	}

	entries := export.CutList(a)
	VerboseLog("Cut list for %s: %d rows", a.Label, len(entries))

	w := cmd.OutOrStdout()
	if format != "" {
		return export.EncodeCutList(w, entries, format)
	}
	return export.WriteCutList(w, entries)
}
