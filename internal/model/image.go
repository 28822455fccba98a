package model

// RGB is a single decoded pixel with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Grid is a decoded raster of RGB pixels, stored row by row.
type Grid struct {
	width  int
	height int
	pixels []RGB
}

// NewGrid creates a black grid of the given size.
func NewGrid(width, height int) Grid {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return Grid{
		width:  width,
		height: height,
		pixels: make([]RGB, width*height),
	}
}

// Fill creates a grid where every pixel has the same value.
func Fill(width, height int, p RGB) Grid {
	g := NewGrid(width, height)
	for i := range g.pixels {
		g.pixels[i] = p
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return g.height
}

// Area returns the number of pixels.
func (g Grid) Area() int {
	return g.width * g.height
}

// At returns the pixel at column x and row y.
func (g Grid) At(x, y int) RGB {
	return g.pixels[y*g.width+x]
}

// Set sets the pixel at column x and row y.
func (g Grid) Set(x, y int, p RGB) {
	g.pixels[y*g.width+x] = p
}

// Each visits every pixel.
func (g Grid) Each(f func(p RGB)) {
	for _, p := range g.pixels {
		f(p)
	}
}
