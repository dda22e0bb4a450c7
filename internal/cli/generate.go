// Package cli — generate.go implements the "cabinetgen generate" command.
//
// The generate command runs the whole pipeline for one cabinet: validate
// the five scalars, derive dimensions, build panels, plan shelves, place
// hardware, and realize the resulting Assembly into an in-memory geometry
// document. Optionally, hinge and pull blocks from the block library are
// inserted at the generated reference points.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/cabinetgen/internal/export"
	"github.com/shinji-kodama/cabinetgen/internal/kernel"
	"github.com/shinji-kodama/cabinetgen/internal/library"
	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// generateFlags holds the flag values for the generate command.
type generateFlags struct {
	params paramFlags

	// format is "text", "json" or "yaml". --json overrides it.
	format string

	// hingeBlock and pullBlock name library blocks (by ID or name) to
	// insert at every hinge and pull point.
	hingeBlock string
	pullBlock  string
}

// NewGenerateCommand creates the "generate" cobra command.
func NewGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one cabinet",
		Long: `Generate one two-door base cabinet and realize it into a geometry document.

Every member is named ("Side Left", "Shelf 1", "Hinge Right 2", ...) and
filed under a layer labelled Cabinet_{width}x{depth}x{height}.

Examples:
  cabinetgen generate
  cabinetgen generate --width 36 --height 34.5 --shelves 2
  cabinetgen generate --params kitchen.jsonc --format yaml
  cabinetgen generate --hinge-block hinges_blum_clip_top --pull-block bar_pull_128`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, flags)
		},
	}

	flags.params.bind(cmd)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "Output format: text, json, yaml")
	cmd.Flags().StringVar(&flags.hingeBlock, "hinge-block", "", "Library block to insert at each hinge point")
	cmd.Flags().StringVar(&flags.pullBlock, "pull-block", "", "Library block to insert at each pull point")

	return cmd
}

// generateResult is everything runGenerate produced, for the printers.
type generateResult struct {
	Assembly *model.Assembly
	Report   kernel.Report
	Inserts  []library.InsertResult
}

// runGenerate is the main logic function for the generate command.
func runGenerate(ctx context.Context, cmd *cobra.Command, flags *generateFlags) error {
	// Step 1: Resolve the output format before doing any work.
	format, err := resolveFormat(flags.format)
	if err != nil {
		return err
	}

	// Step 2: Resolve and validate the input scalars.
	raw, err := flags.params.resolve(cmd)
	if err != nil {
		return err
	}
	a, err := export.BuildRaw(raw, activeStandards)
	if err != nil {
		return model.WrapDomainError("cannot generate cabinet", err)
	}
	VerboseLog("Generated %s with %d panels and %d points", a.Label, len(a.Panels), len(a.Points))

	// Step 3: Realize the assembly. A failing item does not stop the rest.
	doc := kernel.NewDocument()
	res := generateResult{Assembly: a, Report: kernel.Realize(doc, a, logger)}

	// Step 4: Place library blocks at the hardware points, if requested.
	if flags.hingeBlock != "" || flags.pullBlock != "" {
		inserts, err := insertHardwareBlocks(ctx, doc, a, flags.hingeBlock, flags.pullBlock)
		if err != nil {
			return model.WrapDomainError("cannot place hardware blocks", err)
		}
		res.Inserts = inserts
	}

	// Step 5: Output, then report construction failures through the exit code.
	if err := printGenerateResult(cmd.OutOrStdout(), res, format); err != nil {
		return err
	}
	if !res.Report.OK() {
		return model.WrapDomainError(
			fmt.Sprintf("%d item(s) could not be realized", len(res.Report.Failures)),
			res.Report.Err(),
		)
	}
	return nil
}

// insertHardwareBlocks loads the library catalog once and inserts the
// requested blocks at every matching reference point.
func insertHardwareBlocks(ctx context.Context, scene library.Scene, a *model.Assembly, hingeKey, pullKey string) ([]library.InsertResult, error) {
	client := library.NewClient(library.ConfigFromEnv(), logger)
	cat, err := client.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	blocks := map[model.PointKind]string{
		model.PointHinge: hingeKey,
		model.PointPull:  pullKey,
	}

	var results []library.InsertResult
	for _, pt := range a.Points {
		key := blocks[pt.Kind]
		if key == "" {
			continue
		}
		block, ok := cat.Find(key)
		if !ok {
			return nil, model.NewCLIError(model.ExitGeneralError,
				fmt.Sprintf("block %q not found in library %q", key, cat.Info.WithDefaults().Name))
		}
		res, err := client.Insert(ctx, scene, block, pt.Point)
		if err != nil {
			return nil, err
		}
		VerboseLog("Inserted %s at %s (downloaded: %t)", res.BlockID, pt.Name, res.Downloaded)
		results = append(results, res)
	}
	return results, nil
}

// resolveFormat maps the --format flag (and the global --json flag) to an
// output format. An empty export.Format means text.
func resolveFormat(flag string) (export.Format, error) {
	if IsJSONOutput() {
		return export.FormatJSON, nil
	}
	if flag == "" || flag == "text" {
		return "", nil
	}
	f, err := export.ParseFormat(flag)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "invalid --format", err)
	}
	return f, nil
}

// printGenerateResult writes the assembly as a document (JSON/YAML) or as
// human-readable tables.
func printGenerateResult(w io.Writer, res generateResult, format export.Format) error {
	if format != "" {
		return export.Encode(w, res.Assembly, format)
	}
	return printGenerateResultText(w, res)
}

// printGenerateResultText prints the panel and point tables followed by a
// one-line realization summary:
//
//	Cabinet_30x24x30.5  (id 6f1c...)
//
//	PANEL            ROLE       ORIGIN                 SIZE
//	Side Left        side       (0, 0, 0)              23.125 x 30.5 x 0.75
//	...
func printGenerateResultText(w io.Writer, res generateResult) error {
	a := res.Assembly
	fmt.Fprintf(w, "%s  (id %s)\n\n", a.Label, a.ID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PANEL\tROLE\tORIGIN\tSIZE")
	for _, p := range a.Panels {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s x %s x %s\n",
			p.Name, p.Role, p.Origin,
			model.FormatLength(p.Extents.X),
			model.FormatLength(p.Extents.Y),
			model.FormatLength(p.Extents.Z),
		)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "POINT\tKIND\tLOCATION\t")
	for _, pt := range a.Points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", pt.Name, pt.Kind, pt.Point)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRealized %d of %d items on layer %s\n", len(res.Report.Realized), a.Len(), res.Report.Layer)
	for _, f := range res.Report.Failures {
		fmt.Fprintf(w, "  failed: %v\n", f)
	}
	for _, ins := range res.Inserts {
		source := "existing definition"
		if ins.Downloaded {
			source = "downloaded"
		}
		fmt.Fprintf(w, "Inserted block %s (%s)\n", ins.BlockID, source)
	}
	return nil
}
