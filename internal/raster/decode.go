package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/drakos74/free-glyph/internal/model"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode signals that a file could not be turned into a usable pixel grid.
var ErrDecode = errors.New("could not decode image")

// Decoder turns an image file into a grid of RGB pixels.
type Decoder interface {
	Decode(ctx context.Context, path string) (model.Grid, error)
}

// FileDecoder decodes image files from the local file system.
type FileDecoder struct {
}

// NewFileDecoder creates a new file decoder.
func NewFileDecoder() FileDecoder {
	return FileDecoder{}
}

type decoded struct {
	grid model.Grid
	err  error
}

// Decode decodes the file at the given path.
// It gives up as soon as the context is done, the decoding goroutine is left to finish on its own.
func (d FileDecoder) Decode(ctx context.Context, path string) (model.Grid, error) {
	if err := ctx.Err(); err != nil {
		return model.Grid{}, fmt.Errorf("decoding '%s' %w: %w", path, ErrDecode, err)
	}
	done := make(chan decoded, 1)
	go func() {
		grid, err := decodeFile(path)
		done <- decoded{grid: grid, err: err}
	}()
	select {
	case <-ctx.Done():
		return model.Grid{}, fmt.Errorf("decoding '%s' %w: %w", path, ErrDecode, ctx.Err())
	case r := <-done:
		return r.grid, r.err
	}
}

func decodeFile(path string) (model.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Grid{}, fmt.Errorf("could not open file '%s' %w: %w", path, ErrDecode, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return model.Grid{}, fmt.Errorf("could not read file '%s' %w: %w", path, ErrDecode, err)
	}
	return FromImage(img), nil
}

// FromImage converts any image into a grid of 8-bit non-premultiplied RGB pixels.
func FromImage(img image.Image) model.Grid {
	bounds := img.Bounds()
	grid := model.NewGrid(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			grid.Set(x-bounds.Min.X, y-bounds.Min.Y, model.RGB{R: c.R, G: c.G, B: c.B})
		}
	}
	return grid
}
