// Package hardware computes hinge and pull reference points for the two
// door leaves.
//
// Each door gets two hinges on its hinged (outer) edge, HingeEdgeOffset
// above the bottom edge and below the top edge, on the door's rear face.
// Each door gets one pull on its front face, PullEdgeOffset in from the
// inner (meeting) edge and PullTopOffset below the top edge.
package hardware

import (
	"fmt"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// side identifies which leaf a door is, and therefore which of its
// vertical edges carries the hinges.
type side struct {
	label     string // "Left" or "Right"
	panelName string
	pullName  string
	hingedMin bool // hinges on the min-X edge (left leaf)
}

var sides = []side{
	{label: "Left", panelName: model.NameDoorLeft, pullName: model.NamePullLeft, hingedMin: true},
	{label: "Right", panelName: model.NameDoorRight, pullName: model.NamePullRight, hingedMin: false},
}

// Place returns exactly six points in order: Hinge Left 1, Hinge Left 2,
// Hinge Right 1, Hinge Right 2, Pull Left, Pull Right. Hinge 1 is the
// lower hinge.
//
// The door positions are read from the PanelSpecs (via their bounds), so
// Place works for any door orientation. It fails if either door is missing
// from panels, or if a computed point would fall outside the bounds the
// dimension engine guarantees.
func Place(d model.DerivedDimensions, panels []model.PanelSpec, std standards.Standards) ([]model.ReferencePoint, error) {
	hinges := make([]model.ReferencePoint, 0, 4)
	pulls := make([]model.ReferencePoint, 0, 2)

	for _, s := range sides {
		door, ok := find(panels, s.panelName)
		if !ok {
			return nil, fmt.Errorf("cannot place hardware: panel %q not found", s.panelName)
		}
		lo, hi := door.Bounds()

		hingeX, pullX := hi.X, lo.X+std.PullEdgeOffset
		if s.hingedMin {
			hingeX, pullX = lo.X, hi.X-std.PullEdgeOffset
		}

		lower := lo.Z + std.HingeEdgeOffset
		upper := hi.Z - std.HingeEdgeOffset

		hinges = append(hinges,
			model.ReferencePoint{
				Name:  model.HingeName(s.label, 1),
				Kind:  model.PointHinge,
				Point: model.Vec3{X: hingeX, Y: hi.Y, Z: lower},
			},
			model.ReferencePoint{
				Name:  model.HingeName(s.label, 2),
				Kind:  model.PointHinge,
				Point: model.Vec3{X: hingeX, Y: hi.Y, Z: upper},
			},
		)

		pulls = append(pulls, model.ReferencePoint{
			Name:  s.pullName,
			Kind:  model.PointPull,
			Point: model.Vec3{X: pullX, Y: lo.Y, Z: hi.Z - std.PullTopOffset},
		})
	}

	points := append(hinges, pulls...)
	if err := checkBounds(d, panels, points); err != nil {
		return nil, err
	}
	return points, nil
}

func find(panels []model.PanelSpec, name string) (model.PanelSpec, bool) {
	for _, p := range panels {
		if p.Name == name {
			return p, true
		}
	}
	return model.PanelSpec{}, false
}

// checkBounds verifies hinge Z strictly inside (0, height) and each pull
// inside its door face. Derive already guarantees both, so a failure here
// means the door panels did not come from the same DerivedDimensions.
func checkBounds(d model.DerivedDimensions, panels []model.PanelSpec, points []model.ReferencePoint) error {
	for _, pt := range points {
		switch pt.Kind {
		case model.PointHinge:
			if pt.Point.Z <= 0 || pt.Point.Z >= d.Params.Height {
				return &model.GeometryError{Quantity: pt.Name + " z", Value: pt.Point.Z, Reason: "must lie strictly inside the cabinet height"}
			}
		case model.PointPull:
			doorName := model.NameDoorLeft
			if pt.Name == model.NamePullRight {
				doorName = model.NameDoorRight
			}
			door, _ := find(panels, doorName)
			lo, hi := door.Bounds()
			if pt.Point.X < lo.X || pt.Point.X > hi.X {
				return &model.GeometryError{Quantity: pt.Name + " x", Value: pt.Point.X, Reason: "must lie on the door face"}
			}
			if pt.Point.Z < lo.Z || pt.Point.Z > hi.Z {
				return &model.GeometryError{Quantity: pt.Name + " z", Value: pt.Point.Z, Reason: "must lie on the door face"}
			}
		}
	}
	return nil
}
