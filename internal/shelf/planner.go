// Package shelf plans the evenly spaced adjustable shelves inside the
// carcase.
//
// The interior run above the bottom panel is split into shelfCount+1
// equal gaps separated by shelfCount shelf thicknesses; shelf i
// (1-indexed) rests at
//
//	z = thickness + i·shelfSpacing + (i−1)·thickness
package shelf

import "github.com/shinji-kodama/cabinetgen/internal/model"

// Positions returns the Z of the underside of each shelf, bottom to top.
// It returns an empty, non-nil slice when there are no shelves.
func Positions(d model.DerivedDimensions) []float64 {
	n := d.Params.ShelfCount
	zs := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		zs = append(zs, d.ShelfZ(i))
	}
	return zs
}

// Plan returns "Shelf 1" .. "Shelf N", each shelfWidth × shelfDepth ×
// thickness, centered between the sides and flush with the carcase front.
// Zero shelves is not an error: Plan returns an empty slice.
func Plan(d model.DerivedDimensions) []model.PanelSpec {
	zs := Positions(d)
	x := (d.Params.Width - d.ShelfWidth) / 2

	shelves := make([]model.PanelSpec, 0, len(zs))
	for i, z := range zs {
		shelves = append(shelves, model.PanelSpec{
			Name:    model.ShelfName(i + 1),
			Role:    model.RoleShelf,
			Origin:  model.Vec3{X: x, Z: z},
			XAxis:   model.AxisX,
			YAxis:   model.AxisY,
			Extents: model.Vec3{X: d.ShelfWidth, Y: d.ShelfDepth, Z: d.Params.Thickness},
		})
	}
	return shelves
}
