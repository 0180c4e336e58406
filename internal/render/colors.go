package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"core-editor/internal/tileset"
)

var (
	colorFrame     = tcell.ColorGray
	colorArrow     = tcell.ColorWhite
	colorArrowDead = tcell.ColorDarkGray
	colorMissing   = tcell.ColorFuchsia
	colorViewMark  = tcell.ColorWhite
	colorStatus    = tcell.ColorLightYellow
	colorWarning   = tcell.ColorOrangeRed

	// Backgrounds for transparent tiles; rooms alternate so their edges show.
	colorEmptyEven = tcell.NewRGBColor(0, 0, 0)
	colorEmptyOdd  = tcell.NewRGBColor(28, 28, 36)
)

// tcellColor converts a tileset colour for the terminal.
func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// contrast picks black or white, whichever reads better on top of c.
func contrast(c colorful.Color) tcell.Color {
	l, _, _ := c.Lab()
	if l > 0.6 {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

// tileStyle is the style for tile id of ts. ok is false when the tileset
// has no cell for id.
func tileStyle(ts *tileset.Tileset, id int, odd bool) (tcell.Style, bool) {
	empty := colorEmptyEven
	if odd {
		empty = colorEmptyOdd
	}
	c, ok := ts.Color(id)
	if !ok {
		return tcell.StyleDefault.Background(empty).Foreground(colorMissing), false
	}
	if ts.Transparent(id) {
		return tcell.StyleDefault.Background(empty).Foreground(colorFrame), true
	}
	return tcell.StyleDefault.Background(tcellColor(c)).Foreground(contrast(c)), true
}
