package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusText is the status line for f.
func StatusText(f Frame) string {
	text := fmt.Sprintf("tile %3d  view %d,%d", f.Selected, f.View.X, f.View.Y)
	if f.Message != "" {
		text += "  " + f.Message
	}
	return text
}

// DrawStatus renders the status line directly below the layout. When the
// terminal cannot hold the whole layout a warning replaces the status.
func (r *Renderer) DrawStatus(f Frame) {
	screenW, screenH := r.screen.Size()
	needW, needH := r.camera.Size(r.layout.Width, r.layout.Height)
	y := min(needH, screenH-1)

	text := StatusText(f)
	style := tcell.StyleDefault.Foreground(colorStatus)
	if screenW < needW || screenH < needH+1 {
		text = fmt.Sprintf("terminal too small: need %dx%d, have %dx%d", needW, needH+1, screenW, screenH)
		style = tcell.StyleDefault.Foreground(colorWarning)
	}

	r.clearLine(y, screenW)
	r.drawText(0, y, runewidth.Truncate(text, screenW, "…"), style)
}

func (r *Renderer) clearLine(y, w int) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}
