// Package cli — params.go holds the cabinet parameter flags shared by the
// generate and cutlist commands, and the JSONC loaders for parameter and
// batch files.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// paramFlags holds the five cabinet scalars plus an optional parameter
// file. Flags that the user sets explicitly override values from the file.
type paramFlags struct {
	width      float64
	depth      float64
	height     float64
	thickness  float64
	shelfCount float64

	// paramsFile is a JSONC file with any subset of the five fields.
	paramsFile string
}

// bind registers the parameter flags on cmd.
func (f *paramFlags) bind(cmd *cobra.Command) {
	def := model.DefaultRawParameters()
	cmd.Flags().Float64VarP(&f.width, "width", "W", def.Width, "Overall width (X), inches")
	cmd.Flags().Float64VarP(&f.depth, "depth", "D", def.Depth, "Overall depth (Y), inches")
	cmd.Flags().Float64VarP(&f.height, "height", "H", def.Height, "Overall height (Z), inches")
	cmd.Flags().Float64VarP(&f.thickness, "thickness", "t", def.Thickness, "Sheet material thickness, inches")
	cmd.Flags().Float64VarP(&f.shelfCount, "shelves", "s", def.ShelfCount, "Number of adjustable shelves")
	cmd.Flags().StringVar(&f.paramsFile, "params", "", "JSONC file with width, depth, height, thickness, shelfCount")
}

// resolve merges defaults, the parameter file, and explicitly set flags,
// in that order of increasing precedence.
func (f *paramFlags) resolve(cmd *cobra.Command) (model.RawParameters, error) {
	raw := model.DefaultRawParameters()

	if f.paramsFile != "" {
		loaded, err := LoadParamsFile(f.paramsFile)
		if err != nil {
			return raw, err
		}
		raw = loaded
		VerboseLog("Loaded parameters from %s: %+v", f.paramsFile, raw)
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		raw.Width = f.width
	}
	if flags.Changed("depth") {
		raw.Depth = f.depth
	}
	if flags.Changed("height") {
		raw.Height = f.height
	}
	if flags.Changed("thickness") {
		raw.Thickness = f.thickness
	}
	if flags.Changed("shelves") {
		raw.ShelfCount = f.shelfCount
	}
	return raw, nil
}

// LoadParamsFile reads a JSONC parameter file. Fields that are absent keep
// their default values.
//
// Returns a CLIError with ExitGeneralError if the file cannot be read or
// parsed. The values themselves are not validated here.
func LoadParamsFile(path string) (model.RawParameters, error) {
	raw := model.DefaultRawParameters()
	if err := loadJSONC(path, "parameter", &raw); err != nil {
		return raw, err
	}
	return raw, nil
}

// batchFile is the top-level shape of a batch file.
type batchFile struct {
	Cabinets []json.RawMessage `json:"cabinets"`
}

// LoadBatchFile reads a JSONC batch file of the form
//
//	{ "cabinets": [ { "width": 30, ... }, ... ] }
//
// Each entry starts from the defaults, like a parameter file.
func LoadBatchFile(path string) ([]model.RawParameters, error) {
	var bf batchFile
	if err := loadJSONC(path, "batch", &bf); err != nil {
		return nil, err
	}
	if len(bf.Cabinets) == 0 {
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("batch file %s has no cabinets", path))
	}

	requests := make([]model.RawParameters, 0, len(bf.Cabinets))
	for i, entry := range bf.Cabinets {
		raw := model.DefaultRawParameters()
		if err := json.Unmarshal(entry, &raw); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse cabinet %d in %s", i+1, path), err)
		}
		requests = append(requests, raw)
	}
	return requests, nil
}

// loadJSONC strips comments and trailing commas from the file at path and
// unmarshals it into v.
func loadJSONC(path, kind string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("%s file not found: %s", kind, path), err)
		}
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read %s file", kind), err)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse %s file %s", kind, path), err)
	}
	return nil
}
