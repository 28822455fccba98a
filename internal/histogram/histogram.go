package histogram

import (
	"fmt"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/drakos74/free-glyph/internal/raster"
)

// Extract builds the gray level histogram of the grid.
// Each slot holds the share of pixels with that gray level, scaled so that all slots sum up to model.HistHeight.
// This makes histograms of images with different resolutions comparable.
func Extract(grid model.Grid) (model.Features, error) {
	w, h := grid.Width(), grid.Height()
	if w == 0 || h == 0 {
		return model.Features{}, fmt.Errorf("empty grid [%dx%d]: %w", w, h, raster.ErrDecode)
	}

	var counts [model.HistWidth]int
	grid.Each(func(p model.RGB) {
		counts[model.Gray(p)]++
	})

	total := float64(grid.Area())
	histogram := make([]float64, model.HistWidth)
	for level, count := range counts {
		if count > 0 {
			histogram[level] = float64(count) * model.HistHeight / total
		}
	}
	return model.NewFeatures(histogram), nil
}
