// Package kernel hands a generated Assembly to a geometry kernel.
//
// The Kernel interface is the whole contract with the host modelling
// environment: pick a layer, add oriented boxes, add named points.
// Realize drives any Kernel through one Assembly; a failure on one item
// is recorded and the rest of the assembly still proceeds.
//
// Document is an in-memory Kernel used by the CLI and the tests. It also
// holds block definitions and instances, so it doubles as the Scene the
// block library inserts into.
package kernel

import (
	"errors"

	"go.uber.org/zap"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// Kernel is the geometry collaborator an Assembly is realized into.
// Implementations need not be safe for concurrent use; Realize calls
// them from a single goroutine.
type Kernel interface {
	// SetLayer makes name the current layer, creating it if needed.
	SetLayer(name string) error

	// AddBox creates an oriented rectangular solid on the current layer.
	AddBox(p model.PanelSpec) error

	// AddPoint creates a named point on the current layer.
	AddPoint(pt model.ReferencePoint) error
}

// Report is the outcome of one Realize call.
type Report struct {
	Layer    string                     `json:"layer"`
	Realized []string                   `json:"realized"`
	Failures []*model.ConstructionError `json:"-"`
}

// OK reports whether every item was realized.
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// Err joins the failures into a single error, or returns nil. The result
// matches model.ErrConstructionFailure.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// FailedItems returns the names of the items that could not be realized.
func (r Report) FailedItems() []string {
	names := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, f.Item)
	}
	return names
}

// Realize sets the assembly's layer once, then adds every panel and every
// point in assembly order. Each kernel error is wrapped as a
// *model.ConstructionError, logged, and recorded; it never stops the
// remaining items. A nil logger is allowed.
func Realize(k Kernel, a *model.Assembly, logger *zap.Logger) Report {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.With(zap.String("layer", a.Label), zap.String("assembly", a.ID))

	report := Report{
		Layer:    a.Label,
		Realized: make([]string, 0, a.Len()),
	}

	fail := func(item string, err error) {
		cerr := &model.ConstructionError{Item: item, Err: err}
		report.Failures = append(report.Failures, cerr)
		log.Warn("item not realized", zap.String("item", item), zap.Error(err))
	}

	if err := k.SetLayer(a.Label); err != nil {
		fail("layer "+a.Label, err)
	}

	for _, p := range a.Panels {
		if err := k.AddBox(p); err != nil {
			fail(p.Name, err)
			continue
		}
		report.Realized = append(report.Realized, p.Name)
		log.Debug("box added", zap.String("item", p.Name), zap.Stringer("origin", p.Origin))
	}

	for _, pt := range a.Points {
		if err := k.AddPoint(pt); err != nil {
			fail(pt.Name, err)
			continue
		}
		report.Realized = append(report.Realized, pt.Name)
		log.Debug("point added", zap.String("item", pt.Name), zap.Stringer("at", pt.Point))
	}

	log.Info("assembly realized",
		zap.Int("realized", len(report.Realized)),
		zap.Int("failed", len(report.Failures)),
	)
	return report
}
