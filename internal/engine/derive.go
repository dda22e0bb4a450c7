package engine

import (
	"fmt"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// DeriveDimensions is Derive with the default construction standards.
func DeriveDimensions(p model.CabinetParameters) (model.DerivedDimensions, error) {
	return Derive(p, standards.Default())
}

// Derive computes every derived scalar from the validated parameters.
//
// Construction rules (std defaults in parentheses):
//
//	sideWidth       = depth − SideFrontInset (0.875)
//	sideHeight      = height
//	backWidth       = width − BackWidthMargin (1.0), BackThickness (0.5) thick
//	backHeight      = height − thickness
//	bottomWidth     = width − BottomWidthMargin (1.5)
//	bottomDepth     = sideWidth − BottomDepthMargin (1.0625)
//	stretcherWidth  = bottomWidth, StretcherHeight (4.0) deep
//	shelfWidth      = bottomWidth − ShelfWidthClearance (0.0625)
//	shelfDepth      = sideWidth − ShelfDepthMargin (1.25)
//	availableHeight = height − ShelfHeightAllowance (1.5) − shelfCount·thickness
//	shelfSpacing    = availableHeight / (shelfCount + 1)
//	doorHeight      = height − DoorTopGap − DoorBottomGap
//	doorWidth       = (width − DoorGap)/2 − DoorGap
//
// Derive returns a *model.GeometryError (matching
// model.ErrDegenerateGeometry) for the first quantity that is not
// strictly positive, or when the hinge and pull offsets do not fit on the
// door face.
func Derive(p model.CabinetParameters, std standards.Standards) (model.DerivedDimensions, error) {
	if err := std.Validate(); err != nil {
		return model.DerivedDimensions{}, fmt.Errorf("invalid construction standards: %w", err)
	}

	t := p.Thickness
	d := model.DerivedDimensions{Params: p}

	d.SideWidth = p.Depth - std.SideFrontInset
	d.SideHeight = p.Height

	d.BackWidth = p.Width - std.BackWidthMargin
	d.BackHeight = p.Height - t
	d.BackThickness = std.BackThickness

	d.BottomWidth = p.Width - std.BottomWidthMargin
	d.BottomDepth = d.SideWidth - std.BottomDepthMargin

	d.StretcherWidth = d.BottomWidth
	d.StretcherHeight = std.StretcherHeight

	d.ShelfWidth = d.BottomWidth - std.ShelfWidthClearance
	d.ShelfDepth = d.SideWidth - std.ShelfDepthMargin
	d.AvailableHeight = p.Height - std.ShelfHeightAllowance - float64(p.ShelfCount)*t
	d.ShelfSpacing = d.AvailableHeight / float64(p.ShelfCount+1)

	d.DoorGap = std.DoorGap
	d.TopGap = std.DoorTopGap
	d.BottomGap = std.DoorBottomGap
	d.DoorHeight = p.Height - d.TopGap - d.BottomGap
	d.DoorWidth = (p.Width-d.DoorGap)/2 - d.DoorGap

	if err := checkPositive(d); err != nil {
		return model.DerivedDimensions{}, err
	}
	if err := checkHardwareFits(d, std); err != nil {
		return model.DerivedDimensions{}, err
	}
	return d, nil
}

// checkPositive requires every extent and spacing to be > 0.
// Quantities are checked in derivation order so the reported one is the
// root cause rather than a downstream consequence.
func checkPositive(d model.DerivedDimensions) error {
	quantities := []struct {
		name  string
		value float64
	}{
		{"sideWidth", d.SideWidth},
		{"sideHeight", d.SideHeight},
		{"backWidth", d.BackWidth},
		{"backHeight", d.BackHeight},
		{"bottomWidth", d.BottomWidth},
		{"bottomDepth", d.BottomDepth},
		{"stretcherWidth", d.StretcherWidth},
		{"shelfWidth", d.ShelfWidth},
		{"shelfDepth", d.ShelfDepth},
		{"availableHeight", d.AvailableHeight},
		{"shelfSpacing", d.ShelfSpacing},
		{"doorHeight", d.DoorHeight},
		{"doorWidth", d.DoorWidth},
	}
	for _, q := range quantities {
		if !(q.value > 0) {
			return &model.GeometryError{Quantity: q.name, Value: q.value}
		}
	}
	return nil
}

// checkHardwareFits keeps hinges strictly inside (0, height) and in order
// on the door, and pulls inside the door face.
func checkHardwareFits(d model.DerivedDimensions, std standards.Standards) error {
	if d.DoorHeight <= 2*std.HingeEdgeOffset {
		return &model.GeometryError{
			Quantity: "doorHeight",
			Value:    d.DoorHeight,
			Reason:   fmt.Sprintf("must exceed twice the hinge offset (%g)", 2*std.HingeEdgeOffset),
		}
	}
	if lower := d.BottomGap + std.HingeEdgeOffset; lower <= 0 {
		return &model.GeometryError{Quantity: "hingeZ", Value: lower, Reason: "lower hinge must sit above the floor"}
	}
	if upper := d.BottomGap + d.DoorHeight - std.HingeEdgeOffset; upper >= d.Params.Height {
		return &model.GeometryError{Quantity: "hingeZ", Value: upper, Reason: "upper hinge must sit below the cabinet top"}
	}
	if d.DoorWidth <= std.PullEdgeOffset {
		return &model.GeometryError{
			Quantity: "doorWidth",
			Value:    d.DoorWidth,
			Reason:   fmt.Sprintf("must exceed the pull offset (%g)", std.PullEdgeOffset),
		}
	}
	if d.DoorHeight <= std.PullTopOffset {
		return &model.GeometryError{
			Quantity: "doorHeight",
			Value:    d.DoorHeight,
			Reason:   fmt.Sprintf("must exceed the pull top offset (%g)", std.PullTopOffset),
		}
	}
	return nil
}
