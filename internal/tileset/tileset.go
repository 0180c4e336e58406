// Package tileset slices a tileset image into cells and reduces every cell
// to the single colour shown for it in a terminal.
package tileset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
)

// MaxTiles is the number of ids a one-byte tile can address.
const MaxTiles = 256

// ErrTooSmall is returned for images that hold no complete cell.
var ErrTooSmall = errors.New("tileset image smaller than one cell")

// Tileset is a grid of Cols × Rows cells of CellW × CellH pixels each.
// Cell i sits at column i%Cols, row i/Cols.
type Tileset struct {
	Cols, Rows   int
	CellW, CellH int
	colors       []colorful.Color
	opaque       []bool
}

// Load decodes the image at path (PNG, GIF, JPEG or BMP) and slices it.
func Load(path string, cellW, cellH int) (*Tileset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tileset: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode tileset %s: %w", path, err)
	}
	ts, err := FromImage(img, cellW, cellH)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// FromImage slices img. Partial cells at the right and bottom edges are
// dropped.
func FromImage(img image.Image, cellW, cellH int) (*Tileset, error) {
	b := img.Bounds()
	cols, rows := b.Dx()/cellW, b.Dy()/cellH
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d image, %dx%d cells", ErrTooSmall, b.Dx(), b.Dy(), cellW, cellH)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	ts := &Tileset{
		Cols:   cols,
		Rows:   rows,
		CellW:  cellW,
		CellH:  cellH,
		colors: make([]colorful.Color, cols*rows),
		opaque: make([]bool, cols*rows),
	}
	for i := range ts.colors {
		x0, y0 := (i%cols)*cellW, (i/cols)*cellH
		cell := rgba.SubImage(image.Rect(x0, y0, x0+cellW, y0+cellH)).(*image.RGBA)
		ts.colors[i], ts.opaque[i] = average(cell)
	}
	return ts, nil
}

// average blends the non-transparent pixels of cell in linear RGB.
func average(cell *image.RGBA) (colorful.Color, bool) {
	var r, g, b float64
	n := 0
	bounds := cell.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := cell.RGBAAt(x, y)
			if px.A == 0 {
				continue
			}
			c, ok := colorful.MakeColor(px)
			if !ok {
				continue
			}
			lr, lg, lb := c.LinearRgb()
			r, g, b = r+lr, g+lg, b+lb
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}, false
	}
	fn := float64(n)
	return colorful.LinearRgb(r/fn, g/fn, b/fn).Clamped(), true
}

// Count is the number of cells in the image.
func (t *Tileset) Count() int { return len(t.colors) }

// Selectable is the number of cells a tile byte can reference.
func (t *Tileset) Selectable() int { return min(t.Count(), MaxTiles) }

// Color returns the average colour of cell id. ok is false for ids beyond
// the image.
func (t *Tileset) Color(id int) (c colorful.Color, ok bool) {
	if id < 0 || id >= len(t.colors) {
		return colorful.Color{}, false
	}
	return t.colors[id], true
}

// Transparent reports whether cell id has no visible pixel.
func (t *Tileset) Transparent(id int) bool {
	return id >= 0 && id < len(t.opaque) && !t.opaque[id]
}
