package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

const tolerance = 1e-9

func mustValidate(t *testing.T, raw model.RawParameters) model.CabinetParameters {
	t.Helper()
	p, err := Validate(raw)
	require.NoError(t, err)
	return p
}

func TestValidate_Defaults(t *testing.T) {
	p := mustValidate(t, model.DefaultRawParameters())

	assert.Equal(t, model.CabinetParameters{
		Width: 30, Depth: 24, Height: 30.5, Thickness: 0.75, ShelfCount: 1,
	}, p)
}

// TestValidate_Rejects covers every InvalidParameter rule.
func TestValidate_Rejects(t *testing.T) {
	base := model.DefaultRawParameters()

	tests := []struct {
		name   string
		mutate func(*model.RawParameters)
		field  string
	}{
		{"zero width", func(r *model.RawParameters) { r.Width = 0 }, "width"},
		{"negative depth", func(r *model.RawParameters) { r.Depth = -24 }, "depth"},
		{"zero height", func(r *model.RawParameters) { r.Height = 0 }, "height"},
		{"zero thickness", func(r *model.RawParameters) { r.Thickness = 0 }, "thickness"},
		{"NaN width", func(r *model.RawParameters) { r.Width = math.NaN() }, "width"},
		{"infinite height", func(r *model.RawParameters) { r.Height = math.Inf(1) }, "height"},
		{"thickness equals width", func(r *model.RawParameters) { r.Thickness = r.Width }, "thickness"},
		{"thickness half of width", func(r *model.RawParameters) { r.Width = 2; r.Thickness = 1 }, "thickness"},
		{"thickness half of depth", func(r *model.RawParameters) { r.Depth = 1.5 }, "thickness"},
		{"thickness over half of height", func(r *model.RawParameters) { r.Height = 1.4 }, "thickness"},
		{"negative shelf count", func(r *model.RawParameters) { r.ShelfCount = -1 }, "shelfCount"},
		{"fractional shelf count", func(r *model.RawParameters) { r.ShelfCount = 1.5 }, "shelfCount"},
		{"NaN shelf count", func(r *model.RawParameters) { r.ShelfCount = math.NaN() }, "shelfCount"},
		{"huge shelf count", func(r *model.RawParameters) { r.ShelfCount = 1e12 }, "shelfCount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := base
			tt.mutate(&raw)

			_, err := Validate(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidParameter))

			var perr *model.ParameterError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestValidate_ZeroShelvesAllowed(t *testing.T) {
	raw := model.DefaultRawParameters()
	raw.ShelfCount = 0
	p := mustValidate(t, raw)
	assert.Equal(t, 0, p.ShelfCount)
}

// TestDeriveDimensions_DefaultScenario pins the reference cabinet:
// 30 × 24 × 30.5, one shelf, 3/4" stock.
func TestDeriveDimensions_DefaultScenario(t *testing.T) {
	d, err := DeriveDimensions(mustValidate(t, model.DefaultRawParameters()))
	require.NoError(t, err)

	assert.Equal(t, 23.125, d.SideWidth)
	assert.Equal(t, 30.5, d.SideHeight)
	assert.Equal(t, 29.0, d.BackWidth)
	assert.Equal(t, 29.75, d.BackHeight)
	assert.Equal(t, 0.5, d.BackThickness)
	assert.Equal(t, 28.5, d.BottomWidth)
	assert.InDelta(t, 22.0625, d.BottomDepth, tolerance)
	assert.Equal(t, 28.5, d.StretcherWidth)
	assert.Equal(t, 4.0, d.StretcherHeight)
	assert.Equal(t, 28.4375, d.ShelfWidth)
	assert.Equal(t, 21.875, d.ShelfDepth)
	assert.Equal(t, 28.25, d.AvailableHeight)
	assert.Equal(t, 14.125, d.ShelfSpacing)
	assert.Equal(t, 14.8125, d.DoorWidth)
	assert.Equal(t, 30.375, d.DoorHeight)
	assert.Equal(t, 0.125, d.DoorGap)
	assert.Equal(t, 0.125, d.TopGap)
	assert.Equal(t, 0.0, d.BottomGap)
}

// TestDerive_Invariants checks the arithmetic guarantees over a spread of
// valid inputs, not just the reference cabinet.
func TestDerive_Invariants(t *testing.T) {
	std := standards.Default()

	for _, raw := range []model.RawParameters{
		{Width: 30, Depth: 24, Height: 30.5, Thickness: 0.75, ShelfCount: 1},
		{Width: 18, Depth: 12, Height: 34.5, Thickness: 0.5, ShelfCount: 0},
		{Width: 36, Depth: 24, Height: 84, Thickness: 0.75, ShelfCount: 5},
		{Width: 48.25, Depth: 16.5, Height: 72, Thickness: 1, ShelfCount: 3},
		{Width: 12, Depth: 11, Height: 15, Thickness: 0.625, ShelfCount: 2},
	} {
		p := mustValidate(t, raw)
		t.Run(p.String(), func(t *testing.T) {
			d, err := Derive(p, std)
			require.NoError(t, err)

			// Side panels span the full height.
			assert.Equal(t, p.Height, d.SideHeight)

			// Bottom construction rule.
			assert.InDelta(t, p.Width-std.BottomWidthMargin, d.BottomWidth, tolerance)

			// N+1 gaps plus N shelf thicknesses fill the interior run.
			n := float64(p.ShelfCount)
			assert.InDelta(t, p.Height-std.ShelfHeightAllowance, (n+1)*d.ShelfSpacing+n*p.Thickness, tolerance)

			// Door symmetry: two leaves plus three reveals span the width.
			assert.InDelta(t, p.Width, 2*d.DoorWidth+3*d.DoorGap, tolerance)

			for _, v := range []float64{
				d.SideWidth, d.BackWidth, d.BackHeight, d.BottomWidth, d.BottomDepth,
				d.ShelfWidth, d.ShelfDepth, d.ShelfSpacing, d.DoorWidth, d.DoorHeight,
			} {
				assert.Greater(t, v, 0.0)
			}
		})
	}
}

// TestDerive_Degenerate verifies that infeasible combinations fail with
// DegenerateGeometry and name the offending quantity.
func TestDerive_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		raw      model.RawParameters
		quantity string
	}{
		{
			name:     "too many shelves for the height",
			raw:      model.RawParameters{Width: 30, Depth: 24, Height: 30.5, Thickness: 0.75, ShelfCount: 40},
			quantity: "availableHeight",
		},
		{
			name:     "too shallow for the side inset",
			raw:      model.RawParameters{Width: 30, Depth: 0.8, Height: 30.5, Thickness: 0.25, ShelfCount: 1},
			quantity: "sideWidth",
		},
		{
			name:     "too narrow for the bottom grooves",
			raw:      model.RawParameters{Width: 1.25, Depth: 24, Height: 30.5, Thickness: 0.5, ShelfCount: 1},
			quantity: "bottomWidth",
		},
		{
			name:     "shelves deeper than the sides allow",
			raw:      model.RawParameters{Width: 30, Depth: 2.1, Height: 30.5, Thickness: 0.5, ShelfCount: 1},
			quantity: "shelfDepth",
		},
		{
			name:     "doors too short for two hinges",
			raw:      model.RawParameters{Width: 30, Depth: 24, Height: 6, Thickness: 0.75, ShelfCount: 0},
			quantity: "doorHeight",
		},
		{
			name:     "doors too narrow for the pull offset",
			raw:      model.RawParameters{Width: 9, Depth: 24, Height: 30.5, Thickness: 0.75, ShelfCount: 1},
			quantity: "doorWidth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustValidate(t, tt.raw)

			_, err := DeriveDimensions(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrDegenerateGeometry))
			assert.False(t, errors.Is(err, model.ErrInvalidParameter))

			var gerr *model.GeometryError
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.quantity, gerr.Quantity)
		})
	}
}

func TestDerive_RejectsInvalidStandards(t *testing.T) {
	std := standards.Default()
	std.BackThickness = 0

	_, err := Derive(mustValidate(t, model.DefaultRawParameters()), std)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backThickness")
}

func TestDerive_CustomStandards(t *testing.T) {
	std := standards.Default()
	std.DoorGap = 0.0625
	std.DoorBottomGap = 0.25

	d, err := Derive(mustValidate(t, model.DefaultRawParameters()), std)
	require.NoError(t, err)

	assert.InDelta(t, (30-0.0625)/2-0.0625, d.DoorWidth, tolerance)
	assert.InDelta(t, 30.5-0.125-0.25, d.DoorHeight, tolerance)
}

// TestDerive_Deterministic guards referential transparency: two calls
// with equal inputs must be exactly equal, not merely close.
func TestDerive_Deterministic(t *testing.T) {
	p := mustValidate(t, model.RawParameters{Width: 33.3, Depth: 21.7, Height: 41.9, Thickness: 0.7, ShelfCount: 3})

	a, err := DeriveDimensions(p)
	require.NoError(t, err)
	b, err := DeriveDimensions(p)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
