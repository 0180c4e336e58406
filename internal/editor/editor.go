// Package editor runs the interactive tile editor: a single goroutine that
// redraws when something changed and then waits for the next input event.
// The world buffer is owned and mutated by that goroutine only.
package editor

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"core-editor/internal/grid"
	"core-editor/internal/logging"
	"core-editor/internal/render"
	"core-editor/internal/tileset"
	"core-editor/internal/world"
)

// EraseTile is painted by the right mouse button.
const EraseTile = 0

// Stats counts what happened during a session.
type Stats struct {
	Placed  int // tiles changed by the left button
	Erased  int // tiles cleared by the right button
	Picks   int
	Scrolls int
	Saves   int
}

// Options configures New.
type Options struct {
	Screen   tcell.Screen
	World    *world.World
	Tiles    *tileset.Tileset
	MapTiles *tileset.Tileset // nil reuses Tiles
	Logger   *slog.Logger // nil discards
	// Save persists the world on demand; nil disables the save key.
	Save func() error
}

// Editor holds the state of one editing session.
type Editor struct {
	screen   tcell.Screen
	renderer *render.Renderer
	camera   render.Camera
	layout   grid.Layout
	geom     grid.Geometry
	world    *world.World
	tiles    *tileset.Tileset
	logger   *slog.Logger
	save     func() error

	view     grid.View
	selected int
	ptr      pointer
	left     bool
	right    bool
	last     grid.Coord
	dirty    bool
	quit     bool
	message  string
	stats    Stats
}

// New creates an Editor with tile 1 selected and the view at the world
// origin.
func New(opts Options) *Editor {
	mapTiles := opts.MapTiles
	if mapTiles == nil {
		mapTiles = opts.Tiles
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	geom := opts.World.Geometry()
	layout := grid.NewLayout(geom, opts.Tiles.Cols, opts.Tiles.Rows)
	r := render.NewRenderer(opts.Screen, layout, opts.Tiles, mapTiles)
	return &Editor{
		screen:   opts.Screen,
		renderer: r,
		camera:   r.Camera(),
		layout:   layout,
		geom:     geom,
		world:    opts.World,
		tiles:    opts.Tiles,
		logger:   logger,
		save:     opts.Save,
		selected: min(1, opts.Tiles.Selectable()-1),
		dirty:    true,
	}
}

// View returns the current view origin.
func (e *Editor) View() grid.View { return e.view }

// Selected returns the tile id painted by the left button.
func (e *Editor) Selected() int { return e.selected }

// Stats returns the session counters.
func (e *Editor) Stats() Stats { return e.stats }

// Done reports whether a quit was requested.
func (e *Editor) Done() bool { return e.quit }

// Run is the main loop. It returns when the user quits or the screen is
// closed, and finalizes the screen on the way out.
func (e *Editor) Run() {
	defer e.screen.Fini()

	for !e.quit {
		if e.dirty {
			e.redraw()
		}
		ev := e.screen.PollEvent()
		if ev == nil {
			return
		}
		e.HandleEvent(ev)
	}
}

func (e *Editor) redraw() {
	e.dirty = false
	e.renderer.DrawFrame(render.Frame{
		World:    e.world,
		View:     e.view,
		Selected: e.selected,
		Message:  e.message,
	})
	e.renderer.Show()
}

// HandleEvent applies one input event to the editor state.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
		e.dirty = true
	case *tcell.EventKey:
		e.handleAction(keyToAction(ev))
	case *tcell.EventMouse:
		for _, me := range e.ptr.translate(ev) {
			e.handleMouse(me)
		}
	}
}

func (e *Editor) handleAction(a Action) {
	switch a {
	case ActionQuit:
		e.quit = true
	case ActionSave:
		e.saveNow()
	case ActionPrevTile:
		n := e.tiles.Selectable()
		e.pick((e.selected - 1 + n) % n)
	case ActionNextTile:
		e.pick((e.selected + 1) % e.tiles.Selectable())
	default:
		if dx, dy := actionToDelta(a); dx != 0 || dy != 0 {
			e.scroll(dx, dy)
		}
	}
}

func (e *Editor) handleMouse(me MouseEvent) {
	cx, cy := e.camera.ScreenToCell(me.X, me.Y)

	switch me.Kind {
	case MousePress:
		switch me.Button {
		case ButtonLeft:
			e.left = true
			if dx, dy := grid.EdgeScroll(cx, cy, e.layout.RoomView()); dx != 0 || dy != 0 {
				e.scroll(dx, dy)
			}
		case ButtonRight:
			e.right = true
		}
		e.apply(cx, cy, me.Button)
	case MouseRelease:
		switch me.Button {
		case ButtonLeft:
			e.left = false
		case ButtonRight:
			e.right = false
		}
	case MouseMove:
		if !e.left && !e.right {
			return
		}
		if cx == e.last.X && cy == e.last.Y {
			return
		}
		btn := ButtonRight
		if e.left {
			btn = ButtonLeft
		}
		e.apply(cx, cy, btn)
	}
}

// apply performs the press or drag action of btn on cell (cx, cy).
func (e *Editor) apply(cx, cy int, btn Button) {
	e.last = grid.Coord{X: cx, Y: cy}

	if h, ok := e.layout.RoomAt(cx, cy); ok {
		e.paint(cx, cy, h, btn)
	}
	if t, ok := e.layout.Picker.Relative(cx, cy); ok && t.I < e.tiles.Selectable() {
		e.pick(t.I)
	}
	if t, ok := e.layout.Minimap.Relative(cx, cy); ok && btn == ButtonLeft {
		if v := e.geom.CenterOn(t.X, t.Y); v != e.view {
			e.view = v
			e.dirty = true
		}
	}
}

func (e *Editor) paint(cx, cy int, h grid.Hit, btn Button) {
	id := byte(EraseTile)
	if btn == ButtonLeft {
		id = byte(e.selected)
	}
	off := e.layout.Offset(e.view, h)
	if !e.world.Paint(off, id) {
		return
	}
	if btn == ButtonLeft {
		e.stats.Placed++
	} else {
		e.stats.Erased++
	}
	e.logger.Debug("placed tile", "offset", off, "id", id,
		"room_x", e.view.X+h.RoomX, "room_y", e.view.Y+h.RoomY)
	e.renderer.DrawTile(cx, cy, id)
	e.renderer.Show()
}

func (e *Editor) pick(id int) {
	if id == e.selected {
		return
	}
	e.selected = id
	e.stats.Picks++
	e.logger.Debug("picked tile", "id", id)
	e.dirty = true
}

func (e *Editor) scroll(dx, dy int) {
	v, moved := e.geom.Scroll(e.view, dx, dy)
	if !moved {
		return
	}
	e.view = v
	e.stats.Scrolls++
	e.dirty = true
}

func (e *Editor) saveNow() {
	if e.save == nil {
		return
	}
	if err := e.save(); err != nil {
		e.logger.Warn("save failed", "error", err)
		e.message = fmt.Sprintf("save failed: %v", err)
	} else {
		e.stats.Saves++
		e.message = "saved"
	}
	e.dirty = true
}
