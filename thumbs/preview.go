package thumbs

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// Cells is a thumbnail downscaled for half-block rendering: two pixel rows per
// terminal row, one pixel column per terminal column.
type Cells struct {
	Cols, Rows int
	Pix        []color.RGBA
}

// Empty reports whether c holds no pixels.
func (c Cells) Empty() bool {
	return c.Cols == 0 || c.Rows == 0 || len(c.Pix) == 0
}

// At returns the pixel for column x and pixel row y (0 <= y < 2*Rows).
func (c Cells) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.Cols || y >= 2*c.Rows {
		return color.RGBA{}
	}
	return c.Pix[y*c.Cols+x]
}

// Preview decodes the image at path and scales it to cols x rows cells.
func Preview(path string, cols, rows int) (Cells, error) {
	if cols <= 0 || rows <= 0 {
		return Cells{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Cells{}, fmt.Errorf("open thumbnail: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Cells{}, fmt.Errorf("decode thumbnail: %w", err)
	}
	return Downscale(img, cols, rows), nil
}

// Downscale resamples img into cols x rows half-block cells.
func Downscale(img image.Image, cols, rows int) Cells {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	cells := Cells{Cols: cols, Rows: rows, Pix: make([]color.RGBA, cols*rows*2)}
	for y := 0; y < rows*2; y++ {
		for x := 0; x < cols; x++ {
			cells.Pix[y*cols+x] = dst.RGBAAt(x, y)
		}
	}
	return cells
}
