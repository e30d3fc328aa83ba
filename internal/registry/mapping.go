// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ColumnMapping names the source-table columns the registry reads. The
// defaults match the institutional project report export; a YAML mapping
// file overrides them for other sources.
type ColumnMapping struct {
	// IDColumn is the natural-key column. When empty or absent from a row,
	// import falls back to generated sequence IDs.
	IDColumn string `yaml:"id_column"`

	// TitleColumn holds the project title (generation seed content).
	TitleColumn string `yaml:"title_column"`

	// ReferenceColumn holds the human-written description used as the
	// evaluation reference.
	ReferenceColumn string `yaml:"reference_column"`

	// KeywordColumns are the columns keywords are derived from, in order.
	KeywordColumns []string `yaml:"keyword_columns"`
}

// DefaultMapping returns the column names of the institutional project
// report.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		IDColumn:        "project_id",
		TitleColumn:     "Projekttitel",
		ReferenceColumn: "Beschreibung",
		KeywordColumns: []string{
			"Mittelgeber",
			"Drittmittelgeberkategorie",
			"Kooperationspartner",
			"Mittelherkunft",
			"Projektzweck",
		},
	}
}

// LoadMapping reads a column mapping from a YAML file. An empty path selects
// the defaults. Fields omitted in the file keep their default values.
func LoadMapping(path string) (ColumnMapping, error) {
	mapping := DefaultMapping()
	if path == "" {
		return mapping, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ColumnMapping{}, fmt.Errorf("reading column mapping: %w", err)
	}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return ColumnMapping{}, fmt.Errorf("parsing column mapping: %w", err)
	}
	return mapping, nil
}
