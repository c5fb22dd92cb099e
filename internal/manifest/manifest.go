// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest writes the optional YAML run record that sits next to a
// converted document and lists everything the run produced.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docshift/pkg/types"
)

// Path returns the manifest location for an input file:
// <dir>/<stem>_manifest.yaml next to the input.
func Path(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(inputPath), stem+"_manifest.yaml")
}

// Write serializes rec to path as YAML.
func Write(path string, rec types.RunRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Read loads a manifest back into a RunRecord.
func Read(path string) (types.RunRecord, error) {
	var rec types.RunRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return rec, nil
}
