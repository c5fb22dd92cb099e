// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one conversion run: extract text, export and
// filter images, assemble the Word document, and leave a process log and
// optional manifest behind. Stages are injected through small interfaces so
// the flow can be tested without real PDFs.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/docshift/internal/docx"
	"github.com/pdiddy/docshift/internal/images"
	"github.com/pdiddy/docshift/internal/manifest"
	"github.com/pdiddy/docshift/internal/pdfread"
	"github.com/pdiddy/docshift/internal/runlog"
	"github.com/pdiddy/docshift/pkg/types"
)

// TextExtractor reads a PDF into its per-page text form.
type TextExtractor interface {
	Extract(pdfPath string, log *slog.Logger) (*types.Document, error)
}

// ImageExporter writes a PDF's embedded images as PNGs into destDir.
type ImageExporter interface {
	Export(pdfPath, destDir, stem string, keepAll bool, log *slog.Logger) ([]types.ExtractedImage, error)
}

// DocWriter assembles the extracted content into a Word file.
type DocWriter interface {
	Write(doc *types.Document, imgs []types.ExtractedImage, outPath string, f types.Format, log *slog.Logger) error
}

// Stages bundles the three pipeline stages.
type Stages struct {
	Text   TextExtractor
	Images ImageExporter
	Docx   DocWriter
}

// Default returns the production stages.
func Default() Stages {
	return Stages{
		Text:   pdfread.NewExtractor(),
		Images: images.NewExporter(),
		Docx:   docx.NewWriter(),
	}
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// DocxPath returns the output Word file location for an input PDF: same
// directory, same stem, .docx extension.
func DocxPath(pdfPath string) string {
	return filepath.Join(filepath.Dir(pdfPath), runlog.Stem(pdfPath)+".docx")
}

// ConvertFile converts a single PDF, writing outputs next to it. Per-file
// status goes to w; the process log mirrors to console. If the Word file
// already exists and Force is off, the file is skipped. An image-stage
// failure degrades to a text-only document rather than failing the run.
func ConvertFile(st Stages, pdfPath string, opts types.RunOptions, console, w io.Writer) types.RunRecord {
	start := time.Now()
	stem := runlog.Stem(pdfPath)
	rec := types.RunRecord{
		Source:    pdfPath,
		Status:    types.RunFailed,
		StartedAt: start.UTC(),
	}

	outPath := DocxPath(pdfPath)
	if _, err := os.Stat(outPath); err == nil && !opts.Force {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", stem)
		rec.Status = types.RunSkipped
		rec.DocxPath = outPath
		rec.Duration = time.Since(start)
		return rec
	}

	log, closer, err := runlog.Open(pdfPath, console)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", stem, err)
		rec.Error = err.Error()
		rec.Duration = time.Since(start)
		return rec
	}
	defer closer.Close()
	rec.LogPath = runlog.Path(pdfPath)

	doc, err := st.Text.Extract(pdfPath, log)
	if err != nil {
		log.Error("text extraction failed", "error", err)
		fmt.Fprintf(w, "failed:  %s (%v)\n", stem, err)
		rec.Error = err.Error()
		rec.Duration = time.Since(start)
		return rec
	}
	rec.Pages = doc.PageCount()
	log.Info("text extracted", "pages", rec.Pages, "image_objects", doc.ImageObjects)

	imgs, err := st.Images.Export(pdfPath, filepath.Dir(pdfPath), stem, opts.IncludeAllImages, log)
	if err != nil {
		log.Warn("image extraction failed, continuing without images", "error", err)
		imgs = nil
	}
	for _, img := range imgs {
		rec.Images = append(rec.Images, img.Path)
	}

	if err := st.Docx.Write(doc, imgs, outPath, opts.Format, log); err != nil {
		log.Error("writing Word document failed", "error", err)
		fmt.Fprintf(w, "failed:  %s (%v)\n", stem, err)
		rec.Error = err.Error()
		rec.Duration = time.Since(start)
		return rec
	}
	rec.DocxPath = outPath
	rec.Status = types.RunConverted
	rec.Duration = time.Since(start)

	if opts.WriteManifest {
		mPath := manifest.Path(pdfPath)
		if err := manifest.Write(mPath, rec); err != nil {
			log.Warn("writing manifest failed", "error", err)
		} else {
			log.Info("manifest written", "path", mPath)
		}
	}

	log.Info("process completed", "docx", outPath, "images", len(imgs))
	fmt.Fprintf(w, "converted: %s (%d pages, %d images)\n", stem, rec.Pages, len(imgs))
	return rec
}

// ConvertBatch processes a list of PDFs through the pipeline, printing
// per-file status to w and returning the records plus a summary.
func ConvertBatch(st Stages, pdfPaths []string, opts types.RunOptions, console, w io.Writer) ([]types.RunRecord, BatchResult) {
	var result BatchResult
	recs := make([]types.RunRecord, 0, len(pdfPaths))
	for _, p := range pdfPaths {
		rec := ConvertFile(st, p, opts, console, w)
		recs = append(recs, rec)
		switch rec.Status {
		case types.RunConverted:
			result.Converted++
		case types.RunSkipped:
			result.Skipped++
		case types.RunFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return recs, result
}
