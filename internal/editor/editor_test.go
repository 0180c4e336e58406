package editor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"core-editor/internal/grid"
	"core-editor/internal/tileset"
	"core-editor/internal/world"
)

// defaultGeometry is the stock editor layout: 11×8 rooms, a 9×8 world and
// a 3×3 view.
func defaultGeometry() grid.Geometry {
	return grid.Geometry{RoomW: 11, RoomH: 8, WorldW: 9, WorldH: 8, ViewW: 3, ViewH: 3}
}

// testTileset is a single row of eight opaque 2×2 cells.
func testTileset(t *testing.T) *tileset.Tileset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 2))
	for x := 0; x < 16; x++ {
		for y := 0; y < 2; y++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: 64, B: 128, A: 255})
		}
	}
	ts, err := tileset.FromImage(img, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	ss.SetSize(100, 30)
	return ss
}

func newTestEditor(t *testing.T, save func() error) (*Editor, *world.World) {
	t.Helper()
	ss := newSimScreen(t)
	t.Cleanup(ss.Fini)
	w := world.New(defaultGeometry())
	e := New(Options{Screen: ss, World: w, Tiles: testTileset(t), Save: save})
	return e, w
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// click presses and releases btn on terminal position (x, y).
func click(e *Editor, x, y int, btn tcell.ButtonMask) {
	e.HandleEvent(tcell.NewEventMouse(x, y, btn, tcell.ModNone))
	e.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

// cellPos is the terminal position of the left half of screen cell (cx, cy).
func cellPos(e *Editor, cx, cy int) (int, int) {
	return e.camera.CellToScreen(cx, cy)
}

func selectTile(t *testing.T, e *Editor, id int) {
	t.Helper()
	x, y := cellPos(e, e.layout.Picker.X+id, e.layout.Picker.Y)
	click(e, x, y, tcell.Button1)
	if e.Selected() != id {
		t.Fatalf("Selected() = %d after picking %d", e.Selected(), id)
	}
}

func TestNewSelectsTileOne(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	if e.Selected() != 1 {
		t.Errorf("Selected() = %d; want 1", e.Selected())
	}
	if e.View() != (grid.View{}) {
		t.Errorf("View() = %+v; want origin", e.View())
	}
}

func TestLeftClickPaintsFirstTile(t *testing.T) {
	e, w := newTestEditor(t, nil)
	selectTile(t, e, 5)

	// Terminal (2,1) is the first tile of the top-left visible room.
	click(e, 2, 1, tcell.Button1)
	if got := w.At(0); got != 5 {
		t.Errorf("offset 0 = %d; want 5", got)
	}
	if s := e.Stats(); s.Placed != 1 {
		t.Errorf("Placed = %d; want 1", s.Placed)
	}
}

func TestLeftClickUsesView(t *testing.T) {
	e, w := newTestEditor(t, nil)
	e.HandleEvent(key('l'))
	e.HandleEvent(key('j'))
	if e.View() != (grid.View{X: 1, Y: 1}) {
		t.Fatalf("View() = %+v; want {1 1}", e.View())
	}

	// Second room column, second room row, local tile (3,2).
	cx, cy := 1+11+3, 1+8+2
	x, y := cellPos(e, cx, cy)
	click(e, x, y, tcell.Button1)

	want := defaultGeometry().Offset(2, 2, 3, 2)
	if got := w.At(want); got != 1 {
		t.Errorf("offset %d = %d; want 1", want, got)
	}
}

func TestEdgeClickAtWorldEdgeDoesNotScroll(t *testing.T) {
	e, w := newTestEditor(t, nil)
	x, y := cellPos(e, 0, 5)
	click(e, x, y, tcell.Button1)
	if e.View() != (grid.View{}) {
		t.Errorf("View() = %+v; want origin", e.View())
	}
	if s := e.Stats(); s.Scrolls != 0 || s.Placed != 0 {
		t.Errorf("Stats() = %+v; want nothing counted", s)
	}
	for i := 0; i < w.Len(); i++ {
		if w.At(i) != 0 {
			t.Fatalf("offset %d changed to %d", i, w.At(i))
		}
	}
}

func TestEdgeClickScrolls(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	rv := e.layout.RoomView()

	x, y := cellPos(e, rv.X+rv.W, rv.Y+1)
	click(e, x, y, tcell.Button1)
	if e.View() != (grid.View{X: 1}) {
		t.Fatalf("after right edge View() = %+v; want {1 0}", e.View())
	}

	x, y = cellPos(e, rv.X+rv.W, rv.Y+rv.H)
	click(e, x, y, tcell.Button1)
	if e.View() != (grid.View{X: 2, Y: 1}) {
		t.Fatalf("after corner View() = %+v; want {2 1}", e.View())
	}

	x, y = cellPos(e, rv.X+2, rv.Y-1)
	click(e, x, y, tcell.Button1)
	if e.View() != (grid.View{X: 2}) {
		t.Errorf("after top edge View() = %+v; want {2 0}", e.View())
	}
	if got := e.Stats().Scrolls; got != 3 {
		t.Errorf("Scrolls = %d; want 3", got)
	}
}

func TestRightDragErasesOncePerCell(t *testing.T) {
	e, w := newTestEditor(t, nil)
	for off := 0; off < 3; off++ {
		w.Paint(off, 5)
	}

	// Each screen cell is two terminal columns wide, so (2,1) and (3,1) are
	// the same tile.
	e.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button2, tcell.ModNone))
	for _, x := range []int{3, 4, 5, 6} {
		e.HandleEvent(tcell.NewEventMouse(x, 1, tcell.Button2, tcell.ModNone))
	}
	e.HandleEvent(tcell.NewEventMouse(6, 1, tcell.ButtonNone, tcell.ModNone))

	for off := 0; off < 3; off++ {
		if got := w.At(off); got != 0 {
			t.Errorf("offset %d = %d; want erased", off, got)
		}
	}
	if got := e.Stats().Erased; got != 3 {
		t.Errorf("Erased = %d; want 3", got)
	}
}

func TestLeftDragPaints(t *testing.T) {
	e, w := newTestEditor(t, nil)
	e.HandleEvent(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone))
	e.HandleEvent(tcell.NewEventMouse(2, 2, tcell.Button1, tcell.ModNone))
	e.HandleEvent(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))

	g := defaultGeometry()
	for _, off := range []int{g.Offset(0, 0, 0, 0), g.Offset(0, 0, 0, 1)} {
		if got := w.At(off); got != 1 {
			t.Errorf("offset %d = %d; want 1", off, got)
		}
	}
}

func TestReleaseStopsDrag(t *testing.T) {
	e, w := newTestEditor(t, nil)
	click(e, 2, 1, tcell.Button1)
	e.HandleEvent(tcell.NewEventMouse(4, 1, tcell.ButtonNone, tcell.ModNone))
	if got := w.At(1); got != 0 {
		t.Errorf("move without a button painted offset 1 = %d", got)
	}
}

func TestRepaintSameValueNotCounted(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	click(e, 2, 1, tcell.Button1)
	click(e, 2, 1, tcell.Button1)
	click(e, 4, 1, tcell.Button2)
	if s := e.Stats(); s.Placed != 1 || s.Erased != 0 {
		t.Errorf("Stats() = %+v; want Placed 1, Erased 0", s)
	}
}

func TestPickerIgnoresUnselectableAndOutside(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	p := e.layout.Picker
	// The preview sits one cell past the picker and is not a picker cell.
	x, y := cellPos(e, p.X+p.W+1, p.Y)
	click(e, x, y, tcell.Button1)
	if e.Selected() != 1 {
		t.Errorf("Selected() = %d; want 1", e.Selected())
	}
	selectTile(t, e, 7)
	if got := e.Stats().Picks; got != 1 {
		t.Errorf("Picks = %d; want 1", got)
	}
}

func TestMinimapCentresView(t *testing.T) {
	tests := []struct {
		name   string
		rx, ry int
		want   grid.View
	}{
		{"middle", 4, 4, grid.View{X: 3, Y: 3}},
		{"bottom right", 8, 7, grid.View{X: 6, Y: 5}},
		{"top left", 0, 0, grid.View{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, nil)
			m := e.layout.Minimap
			x, y := cellPos(e, m.X+tt.rx, m.Y+tt.ry)
			click(e, x, y, tcell.Button1)
			if e.View() != tt.want {
				t.Errorf("View() = %+v; want %+v", e.View(), tt.want)
			}
		})
	}
}

func TestMinimapRightClickIgnored(t *testing.T) {
	e, _ := newTestEditor(t, nil)
	m := e.layout.Minimap
	x, y := cellPos(e, m.X+8, m.Y+7)
	click(e, x, y, tcell.Button2)
	if e.View() != (grid.View{}) {
		t.Errorf("View() = %+v; want origin", e.View())
	}
}

func TestKeys(t *testing.T) {
	e, _ := newTestEditor(t, nil)

	e.HandleEvent(key('['))
	if e.Selected() != 0 {
		t.Errorf("'[' from 1: Selected() = %d; want 0", e.Selected())
	}
	e.HandleEvent(key('['))
	if e.Selected() != 7 {
		t.Errorf("'[' from 0: Selected() = %d; want 7", e.Selected())
	}
	e.HandleEvent(key(']'))
	if e.Selected() != 0 {
		t.Errorf("']' from 7: Selected() = %d; want 0", e.Selected())
	}

	e.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	e.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if e.View() != (grid.View{}) {
		t.Errorf("View() = %+v; want origin", e.View())
	}
	for i := 0; i < 10; i++ {
		e.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
		e.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	if e.View() != (grid.View{X: 6, Y: 5}) {
		t.Errorf("View() = %+v; want {6 5}", e.View())
	}
	if got := e.Stats().Scrolls; got != 11 {
		t.Errorf("Scrolls = %d; want 11", got)
	}

	if e.Done() {
		t.Fatal("Done() before quit")
	}
	e.HandleEvent(key('q'))
	if !e.Done() {
		t.Error("'q' did not quit")
	}
}

func TestSaveKey(t *testing.T) {
	calls := 0
	e, _ := newTestEditor(t, func() error {
		calls++
		return nil
	})
	e.HandleEvent(key('s'))
	if calls != 1 || e.Stats().Saves != 1 {
		t.Errorf("calls = %d, Saves = %d; want 1, 1", calls, e.Stats().Saves)
	}
	if e.message != "saved" {
		t.Errorf("message = %q; want %q", e.message, "saved")
	}
}

func TestSaveKeyReportsFailure(t *testing.T) {
	e, _ := newTestEditor(t, func() error { return errors.New("disk full") })
	e.HandleEvent(key('s'))
	if e.Stats().Saves != 0 {
		t.Errorf("Saves = %d; want 0", e.Stats().Saves)
	}
	if e.message != "save failed: disk full" {
		t.Errorf("message = %q", e.message)
	}
	if e.Done() {
		t.Error("a failed save should not end the session")
	}
}

func TestRunQuitsOnEscape(t *testing.T) {
	// Run finalizes the screen itself.
	ss := newSimScreen(t)
	w := world.New(defaultGeometry())
	e := New(Options{Screen: ss, World: w, Tiles: testTileset(t)})

	if err := ss.PostEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	e.Run()
	if !e.Done() {
		t.Error("Run returned without a quit")
	}
}
