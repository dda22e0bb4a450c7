// Package standards holds the construction standards table: every fixed
// offset, gap and margin the dimension engine subtracts or adds.
//
// The values are kept verbatim from the shop's joinery practice. Several
// closely spaced margins (BottomDepthMargin 1.0625 versus ShelfDepthMargin
// 1.25, ShelfWidthClearance 0.0625) are not derived from one another and
// must not be "simplified".
//
// Defaults can be overridden from a YAML file; fields absent from the file
// keep their default value.
package standards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Standards is the named table of construction constants, in inches.
type Standards struct {
	// SideFrontInset is subtracted from the overall depth to get the side
	// panel width (7/8" front inset for the door plane).
	SideFrontInset float64 `yaml:"sideFrontInset" json:"sideFrontInset"`

	// BackWidthMargin is subtracted from the overall width for the back panel,
	// which sits in grooves near the rear of the sides.
	BackWidthMargin float64 `yaml:"backWidthMargin" json:"backWidthMargin"`

	// BackThickness is the fixed back panel stock, independent of the main
	// material thickness.
	BackThickness float64 `yaml:"backThickness" json:"backThickness"`

	// BackSetback is the distance from the rear edge of the sides to the
	// rear face of the back panel.
	BackSetback float64 `yaml:"backSetback" json:"backSetback"`

	// BottomWidthMargin is subtracted from the overall width for the bottom
	// panel, let into grooves on both sides.
	BottomWidthMargin float64 `yaml:"bottomWidthMargin" json:"bottomWidthMargin"`

	// BottomDepthMargin is subtracted from the side width for the bottom depth.
	BottomDepthMargin float64 `yaml:"bottomDepthMargin" json:"bottomDepthMargin"`

	// StretcherHeight is the rail height of both top stretchers.
	StretcherHeight float64 `yaml:"stretcherHeight" json:"stretcherHeight"`

	// StretcherFrontSetback is the distance from the carcase front face to
	// the front edge of the front stretcher.
	StretcherFrontSetback float64 `yaml:"stretcherFrontSetback" json:"stretcherFrontSetback"`

	// ShelfWidthClearance is subtracted from the bottom width for shelves.
	ShelfWidthClearance float64 `yaml:"shelfWidthClearance" json:"shelfWidthClearance"`

	// ShelfDepthMargin is subtracted from the side width for shelves.
	ShelfDepthMargin float64 `yaml:"shelfDepthMargin" json:"shelfDepthMargin"`

	// ShelfHeightAllowance is subtracted from the overall height before the
	// shelf thicknesses to get the run shared by the shelf gaps.
	ShelfHeightAllowance float64 `yaml:"shelfHeightAllowance" json:"shelfHeightAllowance"`

	// DoorGap is the reveal between the two doors and at each outer edge.
	DoorGap float64 `yaml:"doorGap" json:"doorGap"`

	// DoorTopGap is the reveal above the doors.
	DoorTopGap float64 `yaml:"doorTopGap" json:"doorTopGap"`

	// DoorBottomGap is the reveal below the doors; 0 means flush to the floor.
	DoorBottomGap float64 `yaml:"doorBottomGap" json:"doorBottomGap"`

	// DoorReveal is how far in front of the carcase front face the door's
	// front face sits.
	DoorReveal float64 `yaml:"doorReveal" json:"doorReveal"`

	// HingeEdgeOffset is the distance of each hinge from the door's top or
	// bottom edge.
	HingeEdgeOffset float64 `yaml:"hingeEdgeOffset" json:"hingeEdgeOffset"`

	// PullEdgeOffset is the horizontal distance of the pull from the door's
	// inner (meeting) edge.
	PullEdgeOffset float64 `yaml:"pullEdgeOffset" json:"pullEdgeOffset"`

	// PullTopOffset is the vertical distance of the pull below the door top.
	PullTopOffset float64 `yaml:"pullTopOffset" json:"pullTopOffset"`
}

// Default returns the shop standards.
func Default() Standards {
	return Standards{
		SideFrontInset:        0.875,
		BackWidthMargin:       1.0,
		BackThickness:         0.5,
		BackSetback:           0.5625,
		BottomWidthMargin:     1.5,
		BottomDepthMargin:     1.0625,
		StretcherHeight:       4.0,
		StretcherFrontSetback: 0,
		ShelfWidthClearance:   0.0625,
		ShelfDepthMargin:      1.25,
		ShelfHeightAllowance:  1.5,
		DoorGap:               0.125,
		DoorTopGap:            0.125,
		DoorBottomGap:         0,
		DoorReveal:            0.875,
		HingeEdgeOffset:       3.0,
		PullEdgeOffset:        4.625,
		PullTopOffset:         0.0625,
	}
}

// Validate checks that margins and offsets are non-negative and fixed
// stock sizes are strictly positive.
func (s Standards) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"sideFrontInset", s.SideFrontInset},
		{"backWidthMargin", s.BackWidthMargin},
		{"backSetback", s.BackSetback},
		{"bottomWidthMargin", s.BottomWidthMargin},
		{"bottomDepthMargin", s.BottomDepthMargin},
		{"stretcherFrontSetback", s.StretcherFrontSetback},
		{"shelfWidthClearance", s.ShelfWidthClearance},
		{"shelfDepthMargin", s.ShelfDepthMargin},
		{"shelfHeightAllowance", s.ShelfHeightAllowance},
		{"doorGap", s.DoorGap},
		{"doorTopGap", s.DoorTopGap},
		{"doorBottomGap", s.DoorBottomGap},
		{"doorReveal", s.DoorReveal},
		{"hingeEdgeOffset", s.HingeEdgeOffset},
		{"pullEdgeOffset", s.PullEdgeOffset},
		{"pullTopOffset", s.PullTopOffset},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("construction standard %s must be >= 0, got %g", f.name, f.value)
		}
	}

	if s.BackThickness <= 0 {
		return fmt.Errorf("construction standard backThickness must be > 0, got %g", s.BackThickness)
	}
	if s.StretcherHeight <= 0 {
		return fmt.Errorf("construction standard stretcherHeight must be > 0, got %g", s.StretcherHeight)
	}
	return nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Standards, error) {
	std := Default()

	// yaml.v3 leaves fields that are absent from the document untouched,
	// so decoding into a pre-filled struct gives "override" semantics.
	if err := yaml.Unmarshal(data, &std); err != nil {
		return Standards{}, fmt.Errorf("failed to parse construction standards: %w", err)
	}
	if err := std.Validate(); err != nil {
		return Standards{}, err
	}
	return std, nil
}

// Load reads a YAML standards file. An empty path returns the defaults.
func Load(path string) (Standards, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Standards{}, fmt.Errorf("failed to read construction standards %s: %w", path, err)
	}

	std, err := Parse(data)
	if err != nil {
		return Standards{}, fmt.Errorf("%s: %w", path, err)
	}
	return std, nil
}

// Marshal renders the table as YAML with a header comment, for the
// "standards" command.
func (s Standards) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize construction standards: %w", err)
	}
	header := "# cabinetgen construction standards (inches)\n# Pass an edited copy with --standards to override.\n"
	return []byte(header + string(body)), nil
}
