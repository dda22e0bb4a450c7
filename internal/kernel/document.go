package kernel

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// Errors returned by Document.
var (
	ErrNoLayer       = errors.New("no current layer")
	ErrEmptyName     = errors.New("empty name")
	ErrDuplicateName = errors.New("duplicate name on layer")
	ErrDegenerateBox = errors.New("degenerate box")
	ErrInvalidPoint  = errors.New("point is not finite")
	ErrUnknownBlock  = errors.New("unknown block definition")
)

// axisTolerance bounds |length−1| and |dot| for face axes.
const axisTolerance = 1e-9

// Box is a realized panel.
type Box struct {
	Layer string          `json:"layer"`
	Spec  model.PanelSpec `json:"spec"`
}

// Point is a realized reference point.
type Point struct {
	Layer string               `json:"layer"`
	Ref   model.ReferencePoint `json:"ref"`
}

// BlockInstance is one placement of a block definition.
type BlockInstance struct {
	BlockID string     `json:"blockId"`
	At      model.Vec3 `json:"at"`
}

// Document is an in-memory scene. All methods are safe for concurrent
// use; mutations are serialized by a single mutex.
type Document struct {
	mu sync.Mutex

	current string
	layers  []string
	names   map[string]struct{} // layer + "\x00" + name

	boxes  []Box
	points []Point

	blocks    map[string]string // block ID → source file
	instances []BlockInstance
}

// NewDocument returns an empty Document with no current layer.
func NewDocument() *Document {
	return &Document{
		names:  make(map[string]struct{}),
		blocks: make(map[string]string),
	}
}

// SetLayer implements Kernel.
func (d *Document) SetLayer(name string) error {
	if name == "" {
		return fmt.Errorf("set layer: %w", ErrEmptyName)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.current = name
	for _, l := range d.layers {
		if l == name {
			return nil
		}
	}
	d.layers = append(d.layers, name)
	return nil
}

// AddBox implements Kernel. It rejects non-positive or non-finite
// extents, face axes that are not orthonormal, and a name already used
// on the current layer.
func (d *Document) AddBox(p model.PanelSpec) error {
	if err := checkBox(p); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.claimLocked(p.Name); err != nil {
		return err
	}
	d.boxes = append(d.boxes, Box{Layer: d.current, Spec: p})
	return nil
}

// AddPoint implements Kernel.
func (d *Document) AddPoint(pt model.ReferencePoint) error {
	if !finite(pt.Point) {
		return fmt.Errorf("%s %v: %w", pt.Name, pt.Point, ErrInvalidPoint)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.claimLocked(pt.Name); err != nil {
		return err
	}
	d.points = append(d.points, Point{Layer: d.current, Ref: pt})
	return nil
}

// claimLocked reserves name on the current layer. d.mu must be held.
func (d *Document) claimLocked(name string) error {
	if d.current == "" {
		return ErrNoLayer
	}
	if name == "" {
		return ErrEmptyName
	}
	key := d.current + "\x00" + name
	if _, ok := d.names[key]; ok {
		return fmt.Errorf("%q on %q: %w", name, d.current, ErrDuplicateName)
	}
	d.names[key] = struct{}{}
	return nil
}

func checkBox(p model.PanelSpec) error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if !finite(p.Origin) || !finite(p.Extents) {
		return fmt.Errorf("%s: non-finite origin or extents: %w", p.Name, ErrDegenerateBox)
	}
	if p.Extents.X <= 0 || p.Extents.Y <= 0 || p.Extents.Z <= 0 {
		return fmt.Errorf("%s: extents %v: %w", p.Name, p.Extents, ErrDegenerateBox)
	}
	if math.Abs(p.XAxis.Length()-1) > axisTolerance || math.Abs(p.YAxis.Length()-1) > axisTolerance {
		return fmt.Errorf("%s: axes must be unit length: %w", p.Name, ErrDegenerateBox)
	}
	if math.Abs(p.XAxis.Dot(p.YAxis)) > axisTolerance {
		return fmt.Errorf("%s: axes must be orthogonal: %w", p.Name, ErrDegenerateBox)
	}
	return nil
}

func finite(v model.Vec3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Layers returns the layer names in creation order.
func (d *Document) Layers() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.layers...)
}

// Boxes returns the realized boxes, optionally filtered to one layer
// (empty layer means all).
func (d *Document) Boxes(layer string) []Box {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Box
	for _, b := range d.boxes {
		if layer == "" || b.Layer == layer {
			out = append(out, b)
		}
	}
	return out
}

// Points returns the realized points, optionally filtered to one layer.
func (d *Document) Points(layer string) []Point {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []Point
	for _, p := range d.points {
		if layer == "" || p.Layer == layer {
			out = append(out, p)
		}
	}
	return out
}

// HasBlock reports whether a block definition with this ID exists.
func (d *Document) HasBlock(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.blocks[id]
	return ok
}

// ImportBlock defines block id from the file at path and places one
// instance at the given point. The file must exist. Importing an ID that
// is already defined only adds an instance.
func (d *Document) ImportBlock(id, path string, at model.Vec3) error {
	if id == "" {
		return fmt.Errorf("import block: %w", ErrEmptyName)
	}
	if !finite(at) {
		return fmt.Errorf("import block %s: %w", id, ErrInvalidPoint)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("import block %s: %w", id, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.blocks[id]; !ok {
		d.blocks[id] = path
	}
	d.instances = append(d.instances, BlockInstance{BlockID: id, At: at})
	return nil
}

// InsertBlock places another instance of an existing definition.
func (d *Document) InsertBlock(id string, at model.Vec3) error {
	if !finite(at) {
		return fmt.Errorf("insert block %s: %w", id, ErrInvalidPoint)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.blocks[id]; !ok {
		return fmt.Errorf("insert block %q: %w", id, ErrUnknownBlock)
	}
	d.instances = append(d.instances, BlockInstance{BlockID: id, At: at})
	return nil
}

// BlockNames returns the defined block IDs, sorted.
func (d *Document) BlockNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(d.blocks))
	for id := range d.blocks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instances returns every block placement in insertion order.
func (d *Document) Instances() []BlockInstance {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]BlockInstance(nil), d.instances...)
}
