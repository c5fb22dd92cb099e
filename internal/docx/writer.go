// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx assembles the output Word document: one paragraph per
// extracted text line, a page break between PDF pages, retained images
// inline after their page's text, and uniform formatting throughout.
package docx

import (
	"fmt"
	"log/slog"

	"github.com/unidoc/unioffice/common"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/wml"

	"github.com/pdiddy/docshift/pkg/types"
)

// maxImageWidth caps inline images at the usable text width of a letter
// page with default margins.
const maxImageWidth = 6 * measurement.Inch

// Writer builds .docx files from extracted documents.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write assembles doc and the retained images into a Word file at outPath.
// Images that cannot be embedded are logged and dropped; the document is
// still written.
func (w *Writer) Write(doc *types.Document, imgs []types.ExtractedImage, outPath string, f types.Format, log *slog.Logger) error {
	out := document.New()

	if f.MarginIn > 0 {
		m := measurement.Distance(f.MarginIn) * measurement.Inch
		out.BodySection().SetPageMargins(m, m, m, m, m/2, m/2, 0)
	}

	byPage := make(map[int][]types.ExtractedImage)
	for _, img := range imgs {
		byPage[img.Page] = append(byPage[img.Page], img)
	}

	for i, page := range doc.Pages {
		for _, line := range page.Lines {
			para := out.AddParagraph()
			applySpacing(para, f)
			run := para.AddRun()
			applyFont(run, f)
			run.AddText(line)
		}

		for _, img := range byPage[page.Number] {
			if err := addInlineImage(out, img, f); err != nil {
				log.Warn("embedding image failed, dropping it",
					"path", img.Path, "error", err)
			}
		}

		// Page break between PDF pages so the output tracks the input,
		// but not after the last one.
		if i < len(doc.Pages)-1 {
			out.AddParagraph().AddRun().AddPageBreak()
		}
	}

	if err := out.SaveToFile(outPath); err != nil {
		return fmt.Errorf("saving %s: %w", outPath, err)
	}
	return nil
}

func applyFont(run document.Run, f types.Format) {
	run.Properties().SetFontFamily(f.Font)
	run.Properties().SetSize(measurement.Distance(f.SizePt) * measurement.Point)
}

// applySpacing sets the line-spacing multiple. With the auto rule the line
// value is measured in 240ths of a line, which SetLineSpacing derives from
// a distance of multiple*12pt.
func applySpacing(para document.Paragraph, f types.Format) {
	if f.Spacing <= 0 {
		return
	}
	para.Properties().Spacing().SetLineSpacing(
		measurement.Distance(f.Spacing*12)*measurement.Point,
		wml.ST_LineSpacingRuleAuto)
}

// addInlineImage embeds one exported PNG, scaled down to the text width if
// necessary but never scaled up.
func addInlineImage(out *document.Document, img types.ExtractedImage, f types.Format) error {
	ref, err := imageRef(out, img.Path)
	if err != nil {
		return err
	}

	para := out.AddParagraph()
	applySpacing(para, f)
	run := para.AddRun()
	inline, err := run.AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("adding drawing for %s: %w", img.Path, err)
	}

	width := measurement.Distance(img.Width) * measurement.Pixel96
	height := measurement.Distance(img.Height) * measurement.Pixel96
	if width > maxImageWidth {
		height = measurement.Distance(float64(height) * float64(maxImageWidth) / float64(width))
		width = maxImageWidth
	}
	inline.SetSize(width, height)
	return nil
}

func imageRef(out *document.Document, path string) (common.ImageRef, error) {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return common.ImageRef{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	ref, err := out.AddImage(img)
	if err != nil {
		return common.ImageRef{}, fmt.Errorf("registering image %s: %w", path, err)
	}
	return ref, nil
}
