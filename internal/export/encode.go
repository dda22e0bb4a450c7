package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/cabinetgen/internal/model"
)

// Format selects the document encoding.
type Format string

const (
	// FormatJSON encodes as indented JSON.
	FormatJSON Format = "json"

	// FormatYAML encodes as YAML with a generated-by header comment.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat converts "json", "yaml" or "yml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q: valid values are json, yaml", s)
	}
}

// yamlHeader is prepended to every YAML document.
const yamlHeader = "# Generated by cabinetgen. Dimensions in inches.\n"

// Document is the encoded form of one cabinet: the assembly plus its
// derived cut list.
type Document struct {
	ID      string                  `json:"id" yaml:"id"`
	Label   string                  `json:"label" yaml:"label"`
	Params  model.CabinetParameters `json:"params" yaml:"params"`
	Panels  []model.PanelSpec       `json:"panels" yaml:"panels"`
	Points  []model.ReferencePoint  `json:"points" yaml:"points"`
	CutList []model.CutListEntry    `json:"cutList" yaml:"cutList"`
}

// NewDocument builds the encodable view of a.
func NewDocument(a *model.Assembly) Document {
	return Document{
		ID:      a.ID,
		Label:   a.Label,
		Params:  a.Params,
		Panels:  a.Panels,
		Points:  a.Points,
		CutList: CutList(a),
	}
}

// Encode writes a as a Document in the given format. Output is
// deterministic: identical assemblies encode to identical bytes.
func Encode(w io.Writer, a *model.Assembly, format Format) error {
	return encodeValue(w, NewDocument(a), format)
}

// EncodeCutList writes only the cut list rows in the given format.
func EncodeCutList(w io.Writer, entries []model.CutListEntry, format Format) error {
	type cutListDoc struct {
		CutList []model.CutListEntry `json:"cutList" yaml:"cutList"`
	}
	if entries == nil {
		entries = []model.CutListEntry{}
	}
	return encodeValue(w, cutListDoc{CutList: entries}, format)
}

// EncodeBatch writes several documents as a single JSON array or a single
// YAML sequence under "cabinets".
func EncodeBatch(w io.Writer, assemblies []*model.Assembly, format Format) error {
	type batchDoc struct {
		Cabinets []Document `json:"cabinets" yaml:"cabinets"`
	}
	docs := make([]Document, 0, len(assemblies))
	for _, a := range assemblies {
		docs = append(docs, NewDocument(a))
	}
	return encodeValue(w, batchDoc{Cabinets: docs}, format)
}

func encodeValue(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize JSON: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	case FormatYAML:
		if _, err := io.WriteString(w, yamlHeader); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize YAML: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
