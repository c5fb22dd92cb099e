// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Format holds the document formatting applied to the generated Word file.
type Format struct {
	// Font is the font family applied to every run (e.g. "Calibri").
	Font string `json:"font" yaml:"font"`

	// SizePt is the font size in points.
	SizePt float64 `json:"size_pt" yaml:"size_pt"`

	// Spacing is the line-spacing multiple (1.0 = single, 1.5 = one-and-a-half).
	Spacing float64 `json:"spacing" yaml:"spacing"`

	// MarginIn is the uniform page margin in inches. Zero keeps the
	// document default.
	MarginIn float64 `json:"margin_in,omitempty" yaml:"margin_in,omitempty"`
}

// DefaultFormat returns the formatting used when no flags are given.
func DefaultFormat() Format {
	return Format{
		Font:    "Calibri",
		SizePt:  11,
		Spacing: 1.0,
	}
}

// RunOptions control a single conversion run.
type RunOptions struct {
	Format Format `json:"format" yaml:"format"`

	// IncludeAllImages exports every embedded image and keeps all of them
	// in the Word file, bypassing the chart heuristic.
	IncludeAllImages bool `json:"include_all_images" yaml:"include_all_images"`

	// Force overwrites an existing .docx instead of skipping the file.
	Force bool `json:"force" yaml:"force"`

	// WriteManifest additionally writes a <stem>_manifest.yaml run record.
	WriteManifest bool `json:"write_manifest" yaml:"write_manifest"`
}

// HistoryConfig holds settings for the conversion-history catalog.
type HistoryConfig struct {
	// Path is the SQLite database location. Empty selects the default
	// under the user data directory.
	Path string `json:"path" yaml:"path"`

	// Disabled turns off history recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}
