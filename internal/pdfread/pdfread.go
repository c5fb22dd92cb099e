// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfread extracts page text and document statistics from PDF files.
// Text comes from the ledongthuc/pdf reader page by page; image-object counts
// come from a pdfcpu context so the pipeline can report how many embedded
// images a document carries before the image stage runs.
package pdfread

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/docshift/pkg/types"
)

// Extractor reads a PDF into a types.Document.
type Extractor struct {
	conf *model.Configuration
}

// NewExtractor returns an Extractor with a default, relaxed pdfcpu
// configuration.
func NewExtractor() *Extractor {
	return &Extractor{conf: model.NewDefaultConfiguration()}
}

// Extract reads the PDF at path and returns its per-page text and image
// statistics. A page whose text extraction fails is logged and left empty
// rather than aborting the document; an unreadable file is an error.
func (e *Extractor) Extract(path string, log *slog.Logger) (*types.Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	doc := &types.Document{
		Source: path,
		Pages:  make([]types.Page, 0, total),
	}

	for i := 1; i <= total; i++ {
		page := types.Page{Number: i}
		p := reader.Page(i)
		if p.V.IsNull() {
			doc.Pages = append(doc.Pages, page)
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			log.Warn("page text extraction failed, leaving page empty",
				"page", i, "error", err)
			doc.Pages = append(doc.Pages, page)
			continue
		}

		page.Lines = splitLines(text)
		doc.Pages = append(doc.Pages, page)
	}

	doc.ImageObjects = e.countImageObjects(path, log)

	return doc, nil
}

// countImageObjects opens the PDF with pdfcpu and sums the image object
// numbers over all pages. Failures only cost the statistic, never the run.
func (e *Extractor) countImageObjects(path string, log *slog.Logger) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, e.conf)
	if err != nil {
		log.Warn("pdfcpu read failed, image statistics unavailable", "error", err)
		return 0
	}

	count := 0
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		count += len(pdfcpu.ImageObjNrs(ctx, pageNr))
	}
	return count
}

// splitLines breaks page text into trimmed lines, dropping leading and
// trailing blank lines but keeping interior ones so paragraph gaps survive.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimSpace(l))
	}

	start := 0
	for start < len(lines) && lines[start] == "" {
		start++
	}
	end := len(lines)
	for end > start && lines[end-1] == "" {
		end--
	}
	return lines[start:end]
}
