// Package panel turns derived dimensions into oriented-box descriptions of
// the eight structural members: two sides, back, bottom, two top
// stretchers and two doors.
//
// Every PanelSpec uses the same extent convention: Extents.X runs along
// XAxis, Extents.Y along YAxis (together they span the panel face) and
// Extents.Z is the stock thickness along XAxis × YAxis. The face axes
// follow the panel's plane:
//
//	sides                        XAxis = +Y, YAxis = +Z  (thickness along +X)
//	back, doors                  XAxis = +X, YAxis = +Z  (thickness along −Y)
//	bottom, stretchers, shelves  XAxis = +X, YAxis = +Y  (thickness along +Z)
//
// Back and doors grow toward the front, so their origin sits on the rear
// face of the panel.
package panel

import (
	"math"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// Build returns the structural panels in their fixed order: Side Left,
// Side Right, Back, Bottom, Front Stretcher, Back Stretcher, Door Left,
// Door Right.
//
// The back is let into grooves in the sides, so its nominal box reaches
// into them. The bottom and stretchers are sized from width margins that
// ignore the stock thickness; when thickness exceeds half the margin they
// reach into the sides the same way (dadoed). Overlap is otherwise
// excluded by the derivation constants and not re-checked here.
func Build(d model.DerivedDimensions, std standards.Standards) []model.PanelSpec {
	p := d.Params
	t := p.Thickness

	return []model.PanelSpec{
		side(model.NameSideLeft, 0, d),
		side(model.NameSideRight, p.Width-t, d),
		Back(d, std),
		Bottom(d),
		stretcher(model.NameFrontStretcher, std.StretcherFrontSetback, d),
		stretcher(model.NameBackStretcher, d.SideWidth-d.StretcherHeight, d),
		door(model.NameDoorLeft, d.DoorGap, d, std),
		door(model.NameDoorRight, p.Width-d.DoorGap-d.DoorWidth, d, std),
	}
}

// CenteredX returns the X origin that centers a member of the given width
// between the sides.
func CenteredX(d model.DerivedDimensions, width float64) float64 {
	return (d.Params.Width - width) / 2
}

func side(name string, x float64, d model.DerivedDimensions) model.PanelSpec {
	return model.PanelSpec{
		Name:    name,
		Role:    model.RoleSide,
		Origin:  model.Vec3{X: x},
		XAxis:   model.AxisY,
		YAxis:   model.AxisZ,
		Extents: model.Vec3{X: d.SideWidth, Y: d.SideHeight, Z: d.Params.Thickness},
	}
}

// Back returns the back panel. Its rear face sits BackSetback in front of
// the rear edge of the sides; it stands on the floor and stops under the
// stretchers.
func Back(d model.DerivedDimensions, std standards.Standards) model.PanelSpec {
	return model.PanelSpec{
		Name: model.NameBack,
		Role: model.RoleBack,
		Origin: model.Vec3{
			X: CenteredX(d, d.BackWidth),
			Y: d.SideWidth - std.BackSetback,
		},
		XAxis:   model.AxisX,
		YAxis:   model.AxisZ,
		Extents: model.Vec3{X: d.BackWidth, Y: d.BackHeight, Z: d.BackThickness},
	}
}

// Bottom returns the bottom panel, flush with the carcase front and the
// floor, running back to the front face of the back panel.
func Bottom(d model.DerivedDimensions) model.PanelSpec {
	return model.PanelSpec{
		Name:    model.NameBottom,
		Role:    model.RoleBottom,
		Origin:  model.Vec3{X: CenteredX(d, d.BottomWidth)},
		XAxis:   model.AxisX,
		YAxis:   model.AxisY,
		Extents: model.Vec3{X: d.BottomWidth, Y: d.BottomDepth, Z: d.Params.Thickness},
	}
}

// stretcher lays a top rail flat with its top face flush with the top of
// the sides.
func stretcher(name string, y float64, d model.DerivedDimensions) model.PanelSpec {
	t := d.Params.Thickness
	return model.PanelSpec{
		Name: name,
		Role: model.RoleStretcher,
		Origin: model.Vec3{
			X: CenteredX(d, d.StretcherWidth),
			Y: y,
			Z: d.Params.Height - t,
		},
		XAxis:   model.AxisX,
		YAxis:   model.AxisY,
		Extents: model.Vec3{X: d.StretcherWidth, Y: d.StretcherHeight, Z: t},
	}
}

// door hangs a leaf in front of the carcase. Its front face is DoorReveal
// in front of the carcase front face; a leaf thicker than the reveal is
// hung against the carcase front instead and stands proud of the reveal.
func door(name string, x float64, d model.DerivedDimensions, std standards.Standards) model.PanelSpec {
	return model.PanelSpec{
		Name: name,
		Role: model.RoleDoor,
		Origin: model.Vec3{
			X: x,
			Y: DoorRearY(d.Params.Thickness, std),
			Z: d.BottomGap,
		},
		XAxis:   model.AxisX,
		YAxis:   model.AxisZ,
		Extents: model.Vec3{X: d.DoorWidth, Y: d.DoorHeight, Z: d.Params.Thickness},
	}
}

// DoorRearY returns the Y of a door's rear face for the given stock
// thickness. It is never behind the carcase front face (Y = 0).
func DoorRearY(thickness float64, std standards.Standards) float64 {
	return math.Min(thickness-std.DoorReveal, 0)
}
