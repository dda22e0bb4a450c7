package standards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault pins the shop constants. They are kept verbatim; a change
// here changes every cabinet this tool produces.
func TestDefault(t *testing.T) {
	s := Default()

	assert.Equal(t, 0.875, s.SideFrontInset)
	assert.Equal(t, 1.0, s.BackWidthMargin)
	assert.Equal(t, 0.5, s.BackThickness)
	assert.Equal(t, 1.5, s.BottomWidthMargin)
	assert.Equal(t, 1.0625, s.BottomDepthMargin)
	assert.Equal(t, 4.0, s.StretcherHeight)
	assert.Equal(t, 0.0625, s.ShelfWidthClearance)
	assert.Equal(t, 1.25, s.ShelfDepthMargin)
	assert.Equal(t, 1.5, s.ShelfHeightAllowance)
	assert.Equal(t, 0.125, s.DoorGap)
	assert.Equal(t, 0.125, s.DoorTopGap)
	assert.Equal(t, 0.0, s.DoorBottomGap)
	assert.Equal(t, 0.875, s.DoorReveal)
	assert.Equal(t, 3.0, s.HingeEdgeOffset)
	assert.Equal(t, 4.625, s.PullEdgeOffset)
	assert.Equal(t, 0.0625, s.PullTopOffset)

	require.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Standards)
		errMsg string
	}{
		{"negative gap", func(s *Standards) { s.DoorGap = -0.1 }, "doorGap"},
		{"negative inset", func(s *Standards) { s.SideFrontInset = -1 }, "sideFrontInset"},
		{"zero back thickness", func(s *Standards) { s.BackThickness = 0 }, "backThickness"},
		{"zero stretcher height", func(s *Standards) { s.StretcherHeight = 0 }, "stretcherHeight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestParse_PartialOverride verifies that only the keys present in the
// YAML document replace defaults.
func TestParse_PartialOverride(t *testing.T) {
	s, err := Parse([]byte("doorGap: 0.0625\nhingeEdgeOffset: 2.5\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.0625, s.DoorGap)
	assert.Equal(t, 2.5, s.HingeEdgeOffset)
	assert.Equal(t, Default().BackThickness, s.BackThickness)
	assert.Equal(t, Default().PullEdgeOffset, s.PullEdgeOffset)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("doorGap: [1, 2]\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("backThickness: -0.5\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		s, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
	})

	t.Run("fixture file", func(t *testing.T) {
		s, err := Load(filepath.Join("testdata", "tight-reveals.yaml"))
		require.NoError(t, err)
		assert.Equal(t, 0.0625, s.DoorGap)
		assert.Equal(t, 0.0625, s.DoorTopGap)
		assert.Equal(t, 0.25, s.DoorBottomGap)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

// TestMarshal_RoundTrip verifies that the file written by the standards
// command can be fed back with --standards unchanged.
func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "# cabinetgen construction standards")

	path := filepath.Join(t.TempDir(), "standards.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}
