package shelf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/cabinetgen/internal/engine"
	"github.com/shinji-kodama/cabinetgen/internal/model"
)

const eps = 1e-9

func derive(t *testing.T, raw model.RawParameters) model.DerivedDimensions {
	t.Helper()
	p, err := engine.Validate(raw)
	require.NoError(t, err)
	d, err := engine.DeriveDimensions(p)
	require.NoError(t, err)
	return d
}

func TestPlan_DefaultScenario(t *testing.T) {
	d := derive(t, model.DefaultRawParameters())
	shelves := Plan(d)

	require.Len(t, shelves, 1)
	s := shelves[0]
	assert.Equal(t, "Shelf 1", s.Name)
	assert.Equal(t, model.RoleShelf, s.Role)
	assert.Equal(t, model.Vec3{X: 0.78125, Y: 0, Z: 14.875}, s.Origin)
	assert.Equal(t, model.Vec3{X: 28.4375, Y: 21.875, Z: 0.75}, s.Extents)
}

func TestPlan_ZeroShelves(t *testing.T) {
	raw := model.DefaultRawParameters()
	raw.ShelfCount = 0
	d := derive(t, raw)

	shelves := Plan(d)
	assert.NotNil(t, shelves)
	assert.Empty(t, shelves)
	assert.Empty(t, Positions(d))
}

// TestPositions_EvenSpacing checks, for a range of shelf counts, that
// positions strictly increase, stay inside the cabinet, and leave equal
// gaps between consecutive shelves and at both ends.
func TestPositions_EvenSpacing(t *testing.T) {
	for n := 1; n <= 8; n++ {
		t.Run(fmt.Sprintf("%d shelves", n), func(t *testing.T) {
			raw := model.RawParameters{Width: 30, Depth: 24, Height: 72, Thickness: 0.75, ShelfCount: float64(n)}
			d := derive(t, raw)
			zs := Positions(d)
			thick := d.Params.Thickness

			require.Len(t, zs, n)
			assert.Greater(t, zs[0], 0.0)
			assert.Less(t, zs[n-1], raw.Height)

			// Gap below the first shelf, measured from the top of the bottom panel.
			assert.InDelta(t, d.ShelfSpacing, zs[0]-thick, eps)

			for i := 1; i < n; i++ {
				assert.Greater(t, zs[i], zs[i-1])
				assert.InDelta(t, d.ShelfSpacing, zs[i]-(zs[i-1]+thick), eps)
			}

			// Gap above the last shelf up to the top of the interior run.
			top := thick + d.AvailableHeight + float64(n)*thick
			assert.InDelta(t, d.ShelfSpacing, top-(zs[n-1]+thick), eps)
		})
	}
}

func TestPlan_NamesAreUnique(t *testing.T) {
	raw := model.RawParameters{Width: 30, Depth: 24, Height: 84, Thickness: 0.75, ShelfCount: 12}
	shelves := Plan(derive(t, raw))

	seen := map[string]bool{}
	for i, s := range shelves {
		assert.Equal(t, fmt.Sprintf("Shelf %d", i+1), s.Name)
		assert.False(t, seen[s.Name])
		seen[s.Name] = true
	}
}
