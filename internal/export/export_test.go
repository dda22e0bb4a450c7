package export

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/cabinetgen/internal/model"
	"github.com/shinji-kodama/cabinetgen/internal/standards"
)

func buildDefault(t *testing.T) *model.Assembly {
	t.Helper()
	a, err := BuildRaw(model.DefaultRawParameters(), standards.Default())
	require.NoError(t, err)
	return a
}

func TestBuild_DefaultScenario(t *testing.T) {
	a := buildDefault(t)

	assert.Equal(t, "Cabinet_30x24x30.5", a.Label)
	assert.Equal(t, AssemblyID(a.Label), a.ID)
	assert.Equal(t, 15, a.Len())

	var names []string
	for _, p := range a.Panels {
		names = append(names, p.Name)
	}
	for _, p := range a.Points {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		"Side Left", "Side Right", "Back", "Bottom",
		"Front Stretcher", "Back Stretcher", "Door Left", "Door Right",
		"Shelf 1",
		"Hinge Left 1", "Hinge Left 2", "Hinge Right 1", "Hinge Right 2",
		"Pull Left", "Pull Right",
	}, names)
}

func TestBuild_ZeroShelves(t *testing.T) {
	raw := model.DefaultRawParameters()
	raw.ShelfCount = 0

	a, err := BuildRaw(raw, standards.Default())
	require.NoError(t, err)

	assert.Equal(t, 14, a.Len())
	assert.Empty(t, a.PanelsByRole(model.RoleShelf))
	for _, e := range CutList(a) {
		assert.NotEqual(t, model.RoleShelf, e.Role)
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    model.RawParameters
		target error
	}{
		{
			name:   "negative width",
			raw:    model.RawParameters{Width: -1, Depth: 24, Height: 30.5, Thickness: 0.75, ShelfCount: 1},
			target: model.ErrInvalidParameter,
		},
		{
			name:   "too many shelves",
			raw:    model.RawParameters{Width: 30, Depth: 24, Height: 10, Thickness: 0.75, ShelfCount: 20},
			target: model.ErrDegenerateGeometry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := BuildRaw(tt.raw, standards.Default())
			require.Error(t, err)
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	first := buildDefault(t)
	second := buildDefault(t)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("assemblies differ (-first +second):\n%s", diff)
	}

	for _, f := range []Format{FormatJSON, FormatYAML} {
		var b1, b2 bytes.Buffer
		require.NoError(t, Encode(&b1, first, f))
		require.NoError(t, Encode(&b2, second, f))
		assert.Equal(t, b1.Bytes(), b2.Bytes(), "format %s", f)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		p    model.CabinetParameters
		want string
	}{
		{model.CabinetParameters{Width: 30, Depth: 24, Height: 30.5}, "Cabinet_30x24x30.5"},
		{model.CabinetParameters{Width: 36.25, Depth: 22, Height: 84}, "Cabinet_36.25x22x84"},
		{model.CabinetParameters{Width: 18, Depth: 12.0625, Height: 15}, "Cabinet_18x12.0625x15"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.p))
		})
	}
}

func TestAssemblyID(t *testing.T) {
	a := AssemblyID("Cabinet_30x24x30.5")
	assert.Equal(t, a, AssemblyID("Cabinet_30x24x30.5"))
	assert.NotEqual(t, a, AssemblyID("Cabinet_30x24x30.75"))
	assert.Len(t, a, 36)
}

func TestAssemble_DoesNotAliasInputs(t *testing.T) {
	a := buildDefault(t)
	panels := a.Panels[:8]
	shelves := a.Panels[8:]
	points := a.Points

	d := model.DerivedDimensions{Params: a.Params}
	b := Assemble(d, panels, shelves, points)
	b.Panels[0].Name = "changed"
	b.Points[0].Name = "changed"

	assert.Equal(t, "Side Left", a.Panels[0].Name)
	assert.Equal(t, "Hinge Left 1", a.Points[0].Name)
}

func TestCutList_DefaultScenario(t *testing.T) {
	got := CutList(buildDefault(t))

	want := []model.CutListEntry{
		{Name: "Side", Role: model.RoleSide, Quantity: 2, Length: 30.5, Width: 23.125, Thickness: 0.75},
		{Name: "Bottom", Role: model.RoleBottom, Quantity: 1, Length: 28.5, Width: 22.0625, Thickness: 0.75},
		{Name: "Back", Role: model.RoleBack, Quantity: 1, Length: 29.75, Width: 29, Thickness: 0.5},
		{Name: "Stretcher", Role: model.RoleStretcher, Quantity: 2, Length: 28.5, Width: 4, Thickness: 0.75},
		{Name: "Door", Role: model.RoleDoor, Quantity: 2, Length: 30.375, Width: 14.8125, Thickness: 0.75},
		{Name: "Shelf", Role: model.RoleShelf, Quantity: 1, Length: 28.4375, Width: 21.875, Thickness: 0.75},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cut list mismatch (-want +got):\n%s", diff)
	}
}

func TestCutList_ShelfQuantity(t *testing.T) {
	raw := model.RawParameters{Width: 30, Depth: 24, Height: 84, Thickness: 0.75, ShelfCount: 5}
	a, err := BuildRaw(raw, standards.Default())
	require.NoError(t, err)

	var shelves int
	for _, e := range CutList(a) {
		assert.GreaterOrEqual(t, e.Length, e.Width)
		assert.GreaterOrEqual(t, e.Width, e.Thickness)
		if e.Role == model.RoleShelf {
			shelves = e.Quantity
		}
	}
	assert.Equal(t, 5, shelves)
}

func TestWriteCutList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCutList(&buf, CutList(buildDefault(t))))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"PART", "QTY", "LENGTH", "WIDTH", "THICKNESS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Side", "2", "30.5", "23.125", "0.75"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Back", "1", "29.75", "29", "0.5"}, strings.Fields(lines[3]))
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, buildDefault(t), FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "Cabinet_30x24x30.5", doc.Label)
	assert.Len(t, doc.Panels, 9)
	assert.Len(t, doc.Points, 6)
	assert.Len(t, doc.CutList, 6)
	assert.Contains(t, buf.String(), `"role": "stretcher"`)
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, buildDefault(t), FormatYAML))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, yamlHeader))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 30.5, doc.Params.Height)
	assert.Equal(t, "Pull Right", doc.Points[5].Name)
}

func TestEncodeCutList_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCutList(&buf, nil, FormatJSON))
	assert.JSONEq(t, `{"cutList": []}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildBatch_OrderAndDeterminism(t *testing.T) {
	defer goleak.VerifyNone(t)

	var requests []model.RawParameters
	for i := 0; i < 24; i++ {
		raw := model.DefaultRawParameters()
		raw.Width = 18 + float64(i)
		raw.ShelfCount = float64(i % 4)
		requests = append(requests, raw)
	}

	results, err := BuildBatch(context.Background(), requests, standards.Default(), 4)
	require.NoError(t, err)
	require.Len(t, results, len(requests))

	for i, a := range results {
		want, err := BuildRaw(requests[i], standards.Default())
		require.NoError(t, err)
		if diff := cmp.Diff(want, a); diff != "" {
			t.Errorf("result %d differs from sequential build (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildBatch_Empty(t *testing.T) {
	defer goleak.VerifyNone(t)

	results, err := BuildBatch(context.Background(), nil, standards.Default(), 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBuildBatch_FailureIdentifiesRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	requests := []model.RawParameters{
		model.DefaultRawParameters(),
		{Width: 30, Depth: 24, Height: 30.5, Thickness: 0, ShelfCount: 1},
	}

	results, err := BuildBatch(context.Background(), requests, standards.Default(), 2)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.ErrorIs(t, err, model.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "cabinet 2")
}

func TestBuildBatch_CanceledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := BuildBatch(ctx, []model.RawParameters{model.DefaultRawParameters()}, standards.Default(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
