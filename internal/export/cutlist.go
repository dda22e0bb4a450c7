package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// cutListNames maps each role to the name used for its cut list row.
var cutListNames = map[model.PanelRole]string{
	model.RoleSide:      "Side",
	model.RoleBottom:    "Bottom",
	model.RoleBack:      "Back",
	model.RoleStretcher: "Stretcher",
	model.RoleDoor:      "Door",
	model.RoleShelf:     "Shelf",
}

// CutList groups the assembly's panels into shop rows.
//
// Panels are grouped by role and by their sorted dimensions, so two
// panels of the same role but different size (which the builder never
// produces, but a hand-edited Assembly might) get separate rows. Within a
// row Length ≥ Width ≥ Thickness. Rows are ordered by role rank, then by
// descending length.
func CutList(a *model.Assembly) []model.CutListEntry {
	type key struct {
		role model.PanelRole
		dims [3]float64
	}

	index := make(map[key]int)
	entries := make([]model.CutListEntry, 0, 6)

	for _, p := range a.Panels {
		dims := sortedDims(p.Extents)
		k := key{role: p.Role, dims: dims}
		if i, ok := index[k]; ok {
			entries[i].Quantity++
			continue
		}

		name, ok := cutListNames[p.Role]
		if !ok {
			name = p.Role.String()
		}
		index[k] = len(entries)
		entries = append(entries, model.CutListEntry{
			Name:      name,
			Role:      p.Role,
			Quantity:  1,
			Length:    dims[0],
			Width:     dims[1],
			Thickness: dims[2],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Role.Rank(), entries[j].Role.Rank()
		if ri != rj {
			return ri < rj
		}
		return entries[i].Length > entries[j].Length
	})
	return entries
}

// sortedDims returns the three extents largest first.
func sortedDims(e model.Vec3) [3]float64 {
	d := []float64{e.X, e.Y, e.Z}
	sort.Sort(sort.Reverse(sort.Float64Slice(d)))
	return [3]float64{d[0], d[1], d[2]}
}

// WriteCutList renders entries as an aligned text table:
//
//	PART       QTY  LENGTH  WIDTH    THICKNESS
//	Side       2    30.5    23.125   0.75
//	Bottom     1    28.5    22.0625  0.75
func WriteCutList(w io.Writer, entries []model.CutListEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "PART\tQTY\tLENGTH\tWIDTH\tTHICKNESS"); err != nil {
		return err
	}
	for _, e := range entries {
		row := strings.Join([]string{
			e.Name,
			fmt.Sprintf("%d", e.Quantity),
			model.FormatLength(e.Length),
			model.FormatLength(e.Width),
			model.FormatLength(e.Thickness),
		}, "\t")
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}
