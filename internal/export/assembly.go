package export

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/shinji-kodama/cabinetgen/internal/engine"
	"github.com/shinji-kodama/cabinetgen/internal/hardware"
	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/panel"
	"github.com/shinji-kodama/cabinetgen/internal/shelf"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

// assemblyNamespace scopes the name-based assembly IDs so that a label
// always maps to the same UUID across runs and machines.
var assemblyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cabinetgen.dev/assembly"))

// Label returns the layer/group label for a cabinet,
// "Cabinet_{width}x{depth}x{height}", with each number in its shortest
// decimal form (e.g. "Cabinet_30x24x30.5").
func Label(p model.CabinetParameters) string {
	return fmt.Sprintf("Cabinet_%sx%sx%s",
		model.FormatLength(p.Width),
		model.FormatLength(p.Depth),
		model.FormatLength(p.Height),
	)
}

// AssemblyID returns the deterministic ID for a label.
func AssemblyID(label string) string {
	return uuid.NewSHA1(assemblyNamespace, []byte(label)).String()
}

// Assemble concatenates the generated pieces in their fixed order: the
// eight carcase and door panels, then the shelves, then the hardware
// points. The slices are copied; the Assembly does not alias its inputs.
func Assemble(d model.DerivedDimensions, panels, shelves []model.PanelSpec, points []model.ReferencePoint) *model.Assembly {
	label := Label(d.Params)

	all := make([]model.PanelSpec, 0, len(panels)+len(shelves))
	all = append(all, panels...)
	all = append(all, shelves...)

	pts := make([]model.ReferencePoint, len(points))
	copy(pts, points)

	return &model.Assembly{
		ID:     AssemblyID(label),
		Label:  label,
		Params: d.Params,
		Panels: all,
		Points: pts,
	}
}

// Build runs the whole pipeline for one set of validated parameters:
// derive, build panels, plan shelves, place hardware, assemble.
//
// Errors are returned unwrapped from the stage that produced them, so
// errors.Is against the model sentinels works on the result.
func Build(p model.CabinetParameters, std standards.Standards) (*model.Assembly, error) {
	d, err := engine.Derive(p, std)
	if err != nil {
		return nil, err
	}

	panels := panel.Build(d, std)
	shelves := shelf.Plan(d)

	points, err := hardware.Place(d, panels, std)
	if err != nil {
		return nil, err
	}

	return Assemble(d, panels, shelves, points), nil
}

// BuildRaw validates raw input and then calls Build.
func BuildRaw(raw model.RawParameters, std standards.Standards) (*model.Assembly, error) {
	p, err := engine.Validate(raw)
	if err != nil {
		return nil, err
	}
	return Build(p, std)
}
