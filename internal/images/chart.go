// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"image"

	"golang.org/x/image/draw"
)

const (
	// thumbSize is the side of the square thumbnail the heuristic inspects.
	thumbSize = 64

	// maxChartColors is the distinct-color ceiling below which an image is
	// treated as a chart. Charts and plots use a small flat palette; photos
	// and scans do not.
	maxChartColors = 150

	// minChartDim rejects bullets, logos and other decoration outright.
	minChartDim = 64
)

// LooksLikeChart reports whether img is likely a chart or graph. The rule is
// a distinct-color count over a 64x64 thumbnail: flat-palette images pass,
// photographic content does not. Images smaller than 64px in either
// dimension never qualify.
func LooksLikeChart(img image.Image) bool {
	b := img.Bounds()
	if b.Dx() < minChartDim || b.Dy() < minChartDim {
		return false
	}

	thumb := image.NewRGBA(image.Rect(0, 0, thumbSize, thumbSize))
	draw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, b, draw.Src, nil)

	colors := make(map[uint32]struct{}, maxChartColors)
	for y := 0; y < thumbSize; y++ {
		for x := 0; x < thumbSize; x++ {
			r, g, bl, _ := thumb.At(x, y).RGBA()
			key := uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(bl>>8)
			colors[key] = struct{}{}
			if len(colors) >= maxChartColors {
				return false
			}
		}
	}
	return true
}
