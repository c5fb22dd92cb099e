// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images exports embedded PDF images as PNG files and applies the
// chart heuristic that decides which of them are worth keeping.
//
// pdfcpu does the raw extraction into a scratch directory; the exported
// filenames carry a "_page_<n>_" marker that attributes each image back to
// its page. Survivors are re-encoded as PNG (alpha flattened onto white) and
// written next to the input PDF as <stem>_p<page>_<label><idx>.png.
package images

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/docshift/pkg/types"
)

// pagePattern matches the page marker pdfcpu puts into extracted filenames.
var pagePattern = regexp.MustCompile(`_page_(\d+)_`)

// Exporter extracts embedded images from PDFs.
type Exporter struct {
	conf *model.Configuration
}

// NewExporter returns an Exporter with a default pdfcpu configuration.
func NewExporter() *Exporter {
	return &Exporter{conf: model.NewDefaultConfiguration()}
}

// Export pulls the embedded images out of the PDF at pdfPath and writes the
// retained ones as PNGs into destDir, named from stem. With keepAll false
// only images passing the chart heuristic survive and carry the "chart"
// label; with keepAll true everything survives under the "img" label.
func (e *Exporter) Export(pdfPath, destDir, stem string, keepAll bool, log *slog.Logger) ([]types.ExtractedImage, error) {
	scratch, err := os.MkdirTemp("", "docshift-images-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := api.ExtractImagesFile(pdfPath, scratch, nil, e.conf); err != nil {
		return nil, fmt.Errorf("extracting images from %s: %w", pdfPath, err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		return nil, fmt.Errorf("reading scratch directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	label := "chart"
	if keepAll {
		label = "img"
	}

	var out []types.ExtractedImage
	perPage := make(map[int]int)
	for _, name := range names {
		page := pageFromName(name)

		img, err := decodeFile(filepath.Join(scratch, name))
		if err != nil {
			log.Warn("skipping undecodable image", "name", name, "error", err)
			continue
		}

		isChart := LooksLikeChart(img)
		if !keepAll && !isChart {
			log.Info("image filtered by chart heuristic", "name", name, "page", page)
			continue
		}

		perPage[page]++
		outName := fmt.Sprintf("%s_p%d_%s%d.png", stem, page, label, perPage[page])
		outPath := filepath.Join(destDir, outName)

		flat := flatten(img)
		if err := writePNG(outPath, flat); err != nil {
			return out, err
		}

		b := flat.Bounds()
		out = append(out, types.ExtractedImage{
			Path:   outPath,
			Page:   page,
			Index:  perPage[page],
			Chart:  isChart,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
		log.Info("image exported", "path", outName, "page", page, "chart", isChart)
	}

	// Lexicographic scratch order puts page 10 before page 2; put the
	// results back in page order.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Index < out[j].Index
	})

	log.Info("image extraction finished", "exported", len(out))
	return out, nil
}

// pageFromName parses the "_page_<n>_" marker out of an extracted filename.
// Unattributable images land on page 0.
func pageFromName(name string) int {
	m := pagePattern.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// flatten composites img onto a white background, discarding any alpha
// channel the way the exported PNGs expect.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
