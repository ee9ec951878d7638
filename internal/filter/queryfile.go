// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filter

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// QueryFile is the on-disk form of a saved filter. Users keep recurring
// queries ("overdue work", "done this week") in files and pass them with
// --query-file; flags given alongside override the stored fields.
type QueryFile struct {
	Name    string    `yaml:"name,omitempty"`
	Filter  Options   `yaml:"filter"`
	SavedAt time.Time `yaml:"saved_at,omitempty"`
}

// WriteQueryFile saves opts to path as YAML.
func WriteQueryFile(path, name string, opts Options) error {
	qf := QueryFile{
		Name:    name,
		Filter:  opts,
		SavedAt: time.Now().UTC().Truncate(time.Second),
	}
	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a query file written by WriteQueryFile or by hand.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
