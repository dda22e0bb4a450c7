// Package model defines the domain types for the cabinetgen CLI.
//
// Coordinate frame shared by every type in this package:
//
//	X  left → right across the cabinet width (0 .. width)
//	Y  from the carcase front face (0) toward the rear (sideWidth)
//	Z  up from the floor (0 .. height)
//
// Doors hang in front of the carcase, so their Y coordinates are negative.
package model

import (
	"fmt"
	"math"
	"strings"
)

// PanelRole classifies a panel by the structural job it does. The role
// drives cut-list grouping and is independent of the panel's unique name.
type PanelRole string

const (
	// RoleSide is a full-height side panel (left or right).
	RoleSide PanelRole = "side"

	// RoleBack is the thin back panel let into grooves near the rear.
	RoleBack PanelRole = "back"

	// RoleBottom is the bottom panel let into grooves on both sides.
	RoleBottom PanelRole = "bottom"

	// RoleStretcher is a horizontal top rail connecting the sides.
	RoleStretcher PanelRole = "stretcher"

	// RoleDoor is one leaf of the double door pair.
	RoleDoor PanelRole = "door"

	// RoleShelf is an adjustable interior shelf.
	RoleShelf PanelRole = "shelf"
)

// roleOrder fixes the reporting order of roles in cut lists.
var roleOrder = []PanelRole{RoleSide, RoleBottom, RoleBack, RoleStretcher, RoleDoor, RoleShelf}

// String returns the string representation of PanelRole.
func (r PanelRole) String() string {
	return string(r)
}

// IsValid checks whether the PanelRole value is one of the predefined roles.
func (r PanelRole) IsValid() bool {
	switch r {
	case RoleSide, RoleBack, RoleBottom, RoleStretcher, RoleDoor, RoleShelf:
		return true
	default:
		return false
	}
}

// Rank returns the position of the role in cut-list order, or len(roles)
// for unknown roles so they sort last.
func (r PanelRole) Rank() int {
	for i, role := range roleOrder {
		if role == r {
			return i
		}
	}
	return len(roleOrder)
}

// ParsePanelRole converts a string to a PanelRole.
// Returns an error if the string does not match any valid role.
func ParsePanelRole(s string) (PanelRole, error) {
	role := PanelRole(strings.ToLower(s))
	if !role.IsValid() {
		return "", fmt.Errorf("invalid panel role: %q (valid: side, back, bottom, stretcher, door, shelf)", s)
	}
	return role, nil
}

// PointKind distinguishes the two kinds of hardware reference points.
type PointKind string

const (
	// PointHinge marks a hinge mounting location on a door's hinged edge.
	PointHinge PointKind = "hinge"

	// PointPull marks a door pull location on a door's front face.
	PointPull PointKind = "pull"
)

// String returns the string representation of PointKind.
func (k PointKind) String() string {
	return string(k)
}

// RawParameters holds the five unvalidated input scalars as they arrive
// from flags or a parameter file.
//
// ShelfCount is a float64 on purpose: a parameter file may contain 1.5,
// and the validator must reject that rather than truncate it.
type RawParameters struct {
	Width      float64 `json:"width" yaml:"width"`
	Depth      float64 `json:"depth" yaml:"depth"`
	Height     float64 `json:"height" yaml:"height"`
	Thickness  float64 `json:"thickness" yaml:"thickness"`
	ShelfCount float64 `json:"shelfCount" yaml:"shelfCount"`
}

// Default input values, in inches.
const (
	DefaultWidth      = 30.0
	DefaultDepth      = 24.0
	DefaultHeight     = 30.5
	DefaultThickness  = 0.75
	DefaultShelfCount = 1
)

// DefaultRawParameters returns the documented default inputs.
func DefaultRawParameters() RawParameters {
	return RawParameters{
		Width:      DefaultWidth,
		Depth:      DefaultDepth,
		Height:     DefaultHeight,
		Thickness:  DefaultThickness,
		ShelfCount: DefaultShelfCount,
	}
}

// CabinetParameters is the validated form of RawParameters.
//
// Values of this type are only produced by engine.Validate and are always
// passed by value, so a generation request cannot change them after the
// fact.
type CabinetParameters struct {
	Width      float64 `json:"width" yaml:"width"`
	Depth      float64 `json:"depth" yaml:"depth"`
	Height     float64 `json:"height" yaml:"height"`
	Thickness  float64 `json:"thickness" yaml:"thickness"`
	ShelfCount int     `json:"shelfCount" yaml:"shelfCount"`
}

// String returns the compact "WxDxH" form used in logs and labels.
func (p CabinetParameters) String() string {
	return fmt.Sprintf("%sx%sx%s", FormatLength(p.Width), FormatLength(p.Depth), FormatLength(p.Height))
}

// DerivedDimensions holds every scalar the dimension engine computes from
// CabinetParameters. It is recomputed for each request and never mutated.
type DerivedDimensions struct {
	Params CabinetParameters `json:"params" yaml:"params"`

	SideWidth  float64 `json:"sideWidth" yaml:"sideWidth"`
	SideHeight float64 `json:"sideHeight" yaml:"sideHeight"`

	BackWidth     float64 `json:"backWidth" yaml:"backWidth"`
	BackHeight    float64 `json:"backHeight" yaml:"backHeight"`
	BackThickness float64 `json:"backThickness" yaml:"backThickness"`

	BottomWidth float64 `json:"bottomWidth" yaml:"bottomWidth"`
	BottomDepth float64 `json:"bottomDepth" yaml:"bottomDepth"`

	StretcherWidth  float64 `json:"stretcherWidth" yaml:"stretcherWidth"`
	StretcherHeight float64 `json:"stretcherHeight" yaml:"stretcherHeight"`

	DoorWidth  float64 `json:"doorWidth" yaml:"doorWidth"`
	DoorHeight float64 `json:"doorHeight" yaml:"doorHeight"`
	DoorGap    float64 `json:"doorGap" yaml:"doorGap"`
	TopGap     float64 `json:"topGap" yaml:"topGap"`
	BottomGap  float64 `json:"bottomGap" yaml:"bottomGap"`

	ShelfWidth      float64 `json:"shelfWidth" yaml:"shelfWidth"`
	ShelfDepth      float64 `json:"shelfDepth" yaml:"shelfDepth"`
	AvailableHeight float64 `json:"availableHeight" yaml:"availableHeight"`
	ShelfSpacing    float64 `json:"shelfSpacing" yaml:"shelfSpacing"`
}

// ShelfZ returns the Z position of the underside of shelf i (1-indexed):
//
//	z = thickness + i·shelfSpacing + (i−1)·thickness
func (d DerivedDimensions) ShelfZ(i int) float64 {
	t := d.Params.Thickness
	return t + float64(i)*d.ShelfSpacing + float64(i-1)*t
}

// Vec3 is a point or direction in cabinet space.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Unit axis directions.
var (
	AxisX = Vec3{X: 1}
	AxisY = Vec3{Y: 1}
	AxisZ = Vec3{Z: 1}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale returns v·s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// String formats the vector as "(x, y, z)".
func (v Vec3) String() string {
	return fmt.Sprintf("(%s, %s, %s)", FormatLength(v.X), FormatLength(v.Y), FormatLength(v.Z))
}

// PanelSpec describes an oriented rectangular solid: an origin corner, two
// orthogonal unit axes spanning the panel's local X/Y plane, and three
// extents along local X, local Y and local Z (= XAxis × YAxis).
//
// A PanelSpec is owned by the Assembly that contains it and has no
// identity beyond its name and position in that list.
type PanelSpec struct {
	Name    string    `json:"name" yaml:"name"`
	Role    PanelRole `json:"role" yaml:"role"`
	Origin  Vec3      `json:"origin" yaml:"origin"`
	XAxis   Vec3      `json:"xAxis" yaml:"xAxis"`
	YAxis   Vec3      `json:"yAxis" yaml:"yAxis"`
	Extents Vec3      `json:"extents" yaml:"extents"`
}

// ZAxis returns the panel's local Z direction (XAxis × YAxis).
func (p PanelSpec) ZAxis() Vec3 {
	return p.XAxis.Cross(p.YAxis)
}

// Corner returns the corner diagonally opposite Origin.
func (p PanelSpec) Corner() Vec3 {
	return p.Origin.
		Add(p.XAxis.Scale(p.Extents.X)).
		Add(p.YAxis.Scale(p.Extents.Y)).
		Add(p.ZAxis().Scale(p.Extents.Z))
}

// Bounds returns the axis-aligned min and max corners of the panel.
func (p PanelSpec) Bounds() (min, max Vec3) {
	a, b := p.Origin, p.Corner()
	min = Vec3{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
	max = Vec3{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
	return min, max
}

// ReferencePoint is a named hardware location (hinge or pull).
type ReferencePoint struct {
	Name  string    `json:"name" yaml:"name"`
	Kind  PointKind `json:"kind" yaml:"kind"`
	Point Vec3      `json:"point" yaml:"point"`
}

// CutListEntry summarizes one group of identical panels for the shop.
// Length ≥ Width ≥ Thickness. Purely derived from the Assembly's panels.
type CutListEntry struct {
	Name      string    `json:"name" yaml:"name"`
	Role      PanelRole `json:"role" yaml:"role"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	Length    float64   `json:"length" yaml:"length"`
	Width     float64   `json:"width" yaml:"width"`
	Thickness float64   `json:"thickness" yaml:"thickness"`
}

// Assembly is the ordered output of one generation request: every panel,
// every hardware point, and the layer/group label the geometry kernel
// should file them under.
//
// Insertion order matters only for stable naming and reporting.
type Assembly struct {
	// ID is a name-based UUID derived from the label, so identical inputs
	// always produce the same ID.
	ID     string            `json:"id" yaml:"id"`
	Label  string            `json:"label" yaml:"label"`
	Params CabinetParameters `json:"params" yaml:"params"`
	Panels []PanelSpec       `json:"panels" yaml:"panels"`
	Points []ReferencePoint  `json:"points" yaml:"points"`
}

// Len returns the total number of entries (panels plus points).
func (a *Assembly) Len() int {
	return len(a.Panels) + len(a.Points)
}

// PanelsByRole returns the panels with the given role, in assembly order.
func (a *Assembly) PanelsByRole(role PanelRole) []PanelSpec {
	var out []PanelSpec
	for _, p := range a.Panels {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// Panel looks up a panel by name.
func (a *Assembly) Panel(name string) (PanelSpec, bool) {
	for _, p := range a.Panels {
		if p.Name == name {
			return p, true
		}
	}
	return PanelSpec{}, false
}

// Point looks up a reference point by name.
func (a *Assembly) Point(name string) (ReferencePoint, bool) {
	for _, p := range a.Points {
		if p.Name == name {
			return p, true
		}
	}
	return ReferencePoint{}, false
}

// FormatLength renders a length in its shortest exact decimal form
// (30 → "30", 30.5 → "30.5", 0.0625 → "0.0625").
func FormatLength(v float64) string {
	return fmt.Sprintf("%g", v)
}
