package engine

import (
	"math"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// maxShelfCount bounds ShelfCount so the float-to-int conversion is exact.
// Any count anywhere near it fails as degenerate geometry long before.
const maxShelfCount = math.MaxInt32

// Validate range-checks raw inputs and returns immutable CabinetParameters.
//
// It fails with a *model.ParameterError (matching model.ErrInvalidParameter)
// when:
//   - width, depth, height or thickness is not a finite number > 0
//   - thickness is at least half of width, depth or height, so two opposing
//     panels would meet or pass through each other
//   - shelfCount is negative, non-integer or absurdly large
//
// Validate never adjusts a value to make it fit.
func Validate(raw model.RawParameters) (model.CabinetParameters, error) {
	dims := []struct {
		field string
		value float64
	}{
		{"width", raw.Width},
		{"depth", raw.Depth},
		{"height", raw.Height},
		{"thickness", raw.Thickness},
	}
	for _, d := range dims {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return model.CabinetParameters{}, &model.ParameterError{Field: d.field, Value: d.value, Reason: "must be a finite number"}
		}
		if d.value <= 0 {
			return model.CabinetParameters{}, &model.ParameterError{Field: d.field, Value: d.value, Reason: "must be > 0"}
		}
	}

	for _, d := range dims[:3] {
		if raw.Thickness >= d.value/2 {
			return model.CabinetParameters{}, &model.ParameterError{
				Field:  "thickness",
				Value:  raw.Thickness,
				Reason: "must be less than half of " + d.field + " (" + model.FormatLength(d.value) + ")",
			}
		}
	}

	switch {
	case math.IsNaN(raw.ShelfCount) || math.IsInf(raw.ShelfCount, 0):
		return model.CabinetParameters{}, &model.ParameterError{Field: "shelfCount", Value: raw.ShelfCount, Reason: "must be a finite number"}
	case raw.ShelfCount < 0:
		return model.CabinetParameters{}, &model.ParameterError{Field: "shelfCount", Value: raw.ShelfCount, Reason: "must be >= 0"}
	case raw.ShelfCount != math.Trunc(raw.ShelfCount):
		return model.CabinetParameters{}, &model.ParameterError{Field: "shelfCount", Value: raw.ShelfCount, Reason: "must be a whole number"}
	case raw.ShelfCount > maxShelfCount:
		return model.CabinetParameters{}, &model.ParameterError{Field: "shelfCount", Value: raw.ShelfCount, Reason: "is too large"}
	}

	return model.CabinetParameters{
		Width:      raw.Width,
		Depth:      raw.Depth,
		Height:     raw.Height,
		Thickness:  raw.Thickness,
		ShelfCount: int(raw.ShelfCount),
	}, nil
}
