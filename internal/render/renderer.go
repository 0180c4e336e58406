package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"core-editor/internal/grid"
	"core-editor/internal/tileset"
	"core-editor/internal/world"
)

// Renderer draws the editor blocks onto a tcell screen.
type Renderer struct {
	screen   tcell.Screen
	camera   Camera
	layout   grid.Layout
	tiles    *tileset.Tileset
	mapTiles *tileset.Tileset
}

// NewRenderer creates a Renderer. mapTiles colours the minimap; it may be the
// same tileset as tiles.
func NewRenderer(screen tcell.Screen, layout grid.Layout, tiles, mapTiles *tileset.Tileset) *Renderer {
	return &Renderer{
		screen:   screen,
		camera:   NewCamera(),
		layout:   layout,
		tiles:    tiles,
		mapTiles: mapTiles,
	}
}

// Camera returns the cell/terminal mapping used by the renderer.
func (r *Renderer) Camera() Camera { return r.camera }

// Frame is the editor state shown by DrawFrame.
type Frame struct {
	World    *world.World
	View     grid.View
	Selected int
	Message  string
}

// DrawFrame redraws every block. Call Show to flip.
func (r *Renderer) DrawFrame(f Frame) {
	r.screen.Clear()
	r.drawBorder(f.View)
	r.drawRooms(f.World, f.View)
	r.drawPicker(f.Selected)
	r.DrawPreview(f.Selected)
	r.drawMinimap(f.World, f.View)
	r.DrawStatus(f)
}

// Show flips the screen.
func (r *Renderer) Show() { r.screen.Show() }

// DrawTile redraws the room tile at cell (cx, cy) after a paint.
func (r *Renderer) DrawTile(cx, cy int, id byte) {
	h, ok := r.layout.RoomAt(cx, cy)
	if !ok {
		return
	}
	r.drawTile(cx, cy, r.tiles, int(id), (h.RoomX+h.RoomY)%2 == 1, "  ")
}

// DrawPreview shows the selected tile next to the picker.
func (r *Renderer) DrawPreview(id int) {
	p := r.layout.Preview
	r.drawTile(p.X, p.Y, r.tiles, id, false, "  ")
}

func (r *Renderer) drawRooms(w *world.World, v grid.View) {
	g := r.layout.Geometry
	for ry := 0; ry < g.ViewH; ry++ {
		for rx := 0; rx < g.ViewW; rx++ {
			b, _ := r.layout.Room(rx, ry)
			room := w.Room(v.X+rx, v.Y+ry)
			odd := (rx+ry)%2 == 1
			for y := 0; y < b.H; y++ {
				for x := 0; x < b.W; x++ {
					r.drawTile(b.X+x, b.Y+y, r.tiles, int(room.At(x, y)), odd, "  ")
				}
			}
		}
	}
}

func (r *Renderer) drawPicker(selected int) {
	p := r.layout.Picker
	for i := 0; i < p.Len(); i++ {
		glyph := "  "
		switch {
		case i == selected:
			glyph = "[]"
		case i >= r.tiles.Selectable():
			glyph = "××"
		}
		r.drawTile(p.X+i%p.W, p.Y+i/p.W, r.tiles, i, false, glyph)
	}
}

func (r *Renderer) drawMinimap(w *world.World, v grid.View) {
	m := r.layout.Minimap
	g := r.layout.Geometry
	for ry := 0; ry < m.H; ry++ {
		for rx := 0; rx < m.W; rx++ {
			glyph := "  "
			if rx >= v.X && rx < v.X+g.ViewW && ry >= v.Y && ry < v.Y+g.ViewH {
				glyph = "[]"
			}
			style, _ := tileStyle(r.mapTiles, int(w.Summary(rx, ry)), false)
			if glyph != "  " {
				style = style.Foreground(colorViewMark)
			}
			sx, sy := r.camera.CellToScreen(m.X+rx, m.Y+ry)
			r.drawText(sx, sy, glyph, style)
		}
	}
}

// drawBorder frames the room view and marks the edge-scroll cells with
// arrows, dimmed when the view already touches that world edge.
func (r *Renderer) drawBorder(v grid.View) {
	rv := r.layout.RoomView()
	g := r.layout.Geometry
	frame := tcell.StyleDefault.Foreground(colorFrame)
	left, right := rv.X-1, rv.X+rv.W
	top, bottom := rv.Y-1, rv.Y+rv.H

	for cx := rv.X; cx < right; cx++ {
		r.drawCell(cx, top, "──", frame)
		r.drawCell(cx, bottom, "──", frame)
	}
	for cy := rv.Y; cy < bottom; cy++ {
		r.drawCell(left, cy, " │", frame)
		r.drawCell(right, cy, "│ ", frame)
	}
	r.drawCell(left, top, " ┌", frame)
	r.drawCell(right, top, "┐ ", frame)
	r.drawCell(left, bottom, " └", frame)
	r.drawCell(right, bottom, "┘ ", frame)

	arrow := func(live bool) tcell.Style {
		if live {
			return tcell.StyleDefault.Foreground(colorArrow)
		}
		return tcell.StyleDefault.Foreground(colorArrowDead)
	}
	midX, midY := rv.X+rv.W/2, rv.Y+rv.H/2
	r.drawCell(left, midY, "◀│", arrow(v.X > 0))
	r.drawCell(right, midY, "│▶", arrow(v.X < g.WorldW-g.ViewW))
	r.drawCell(midX, top, "▲─", arrow(v.Y > 0))
	r.drawCell(midX, bottom, "▼─", arrow(v.Y < g.WorldH-g.ViewH))
}

func (r *Renderer) drawTile(cx, cy int, ts *tileset.Tileset, id int, odd bool, glyph string) {
	style, ok := tileStyle(ts, id, odd)
	switch {
	case !ok:
		glyph = "? "
	case glyph == "  " && ts.Transparent(id):
		glyph = "· "
	}
	r.drawCell(cx, cy, glyph, style)
}

func (r *Renderer) drawCell(cx, cy int, glyph string, style tcell.Style) {
	sx, sy := r.camera.CellToScreen(cx, cy)
	r.drawText(sx, sy, glyph, style)
}

// drawText writes text from terminal column x, advancing by display width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
