// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data types flowing between the
// docshift pipeline stages: extracted documents, exported images,
// run options, and run records.
package types

import "time"

// Page holds the text extracted from one PDF page.
type Page struct {
	// Number is the 1-based page number.
	Number int `json:"number" yaml:"number"`

	// Lines is the page text split on line breaks, trimmed, in reading order.
	Lines []string `json:"lines" yaml:"lines"`
}

// Document is the in-memory form of an input PDF: per-page text plus
// document-level counts gathered during reading.
type Document struct {
	// Source is the path of the input PDF.
	Source string `json:"source" yaml:"source"`

	// Pages holds one entry per PDF page, including empty pages, so that
	// page breaks in the output line up with the input.
	Pages []Page `json:"pages" yaml:"pages"`

	// ImageObjects is the number of embedded image objects found across
	// all pages.
	ImageObjects int `json:"image_objects" yaml:"image_objects"`
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ExtractedImage describes one embedded image exported as a PNG file.
type ExtractedImage struct {
	// Path is the PNG location on disk.
	Path string `json:"path" yaml:"path"`

	// Page is the 1-based PDF page the image was embedded on.
	Page int `json:"page" yaml:"page"`

	// Index is the 1-based position of the image within its page.
	Index int `json:"index" yaml:"index"`

	// Chart reports the heuristic's verdict for the image.
	Chart bool `json:"chart" yaml:"chart"`

	// Width and Height are the pixel dimensions of the exported PNG.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// RunStatus indicates the outcome of converting one PDF.
type RunStatus string

const (
	RunConverted RunStatus = "converted"
	RunSkipped   RunStatus = "skipped"
	RunFailed    RunStatus = "failed"
)

// RunRecord summarizes one conversion run. It is what the history catalog
// stores and what the YAML manifest serializes.
type RunRecord struct {
	// Source is the input PDF path.
	Source string `json:"source" yaml:"source"`

	// DocxPath is the generated Word file, empty when the run failed
	// before writing it.
	DocxPath string `json:"docx_path,omitempty" yaml:"docx_path,omitempty"`

	// LogPath is the process log written next to the input.
	LogPath string `json:"log_path,omitempty" yaml:"log_path,omitempty"`

	// Images lists the exported PNG paths in page order.
	Images []string `json:"images,omitempty" yaml:"images,omitempty"`

	// Pages is the page count of the input PDF.
	Pages int `json:"pages" yaml:"pages"`

	// Status is the run outcome.
	Status RunStatus `json:"status" yaml:"status"`

	// Error carries the failure message for failed runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// StartedAt is the run start time in UTC.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
