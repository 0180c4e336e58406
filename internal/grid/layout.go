package grid

// Layout places every interactive block on screen. All positions are in
// screen cells; one cell shows one tile.
type Layout struct {
	Geometry Geometry
	Origin   Coord   // first cell of room (0, 0) of the view
	Rooms    []Block // ViewW*ViewH blocks, row-major by (roomCol, roomRow)
	Picker   Block
	Preview  Block
	Minimap  Block
	Width    int
	Height   int
}

// NewLayout lays out the room view on the left with a one cell border for the
// scroll arrows, and the tile picker (setW × setH cells) above the minimap on
// the right.
func NewLayout(g Geometry, setW, setH int) Layout {
	l := Layout{
		Geometry: g,
		Origin:   Coord{X: 1, Y: 1},
		Rooms:    make([]Block, 0, g.ViewW*g.ViewH),
	}
	for ry := 0; ry < g.ViewH; ry++ {
		for rx := 0; rx < g.ViewW; rx++ {
			l.Rooms = append(l.Rooms, Block{
				X: l.Origin.X + rx*g.RoomW,
				Y: l.Origin.Y + ry*g.RoomH,
				W: g.RoomW,
				H: g.RoomH,
			})
		}
	}

	panelW := max(setW+2, g.WorldW)
	panelX := g.RoomW*g.ViewW + 2
	l.Picker = Block{X: panelX, Y: 1, W: setW, H: setH}
	l.Preview = Block{X: panelX + setW + 1, Y: 1, W: 1, H: 1}
	l.Minimap = Block{X: panelX, Y: setH + 2, W: g.WorldW, H: g.WorldH}

	l.Width = g.RoomW*g.ViewW + panelW + 3
	l.Height = max(g.RoomH*g.ViewH+2, l.Minimap.Y+l.Minimap.H+1)
	return l
}

// RoomView is the block spanning all visible rooms.
func (l Layout) RoomView() Block { return l.Geometry.RoomView(l.Origin) }

// Room returns the block of view-local room (rx, ry).
func (l Layout) Room(rx, ry int) (Block, bool) {
	if rx < 0 || rx >= l.Geometry.ViewW || ry < 0 || ry >= l.Geometry.ViewH {
		return Block{}, false
	}
	return l.Rooms[ry*l.Geometry.ViewW+rx], true
}

// Hit is a cell resolved to a tile of a visible room.
type Hit struct {
	RoomX, RoomY int   // view-local room
	Tile         Coord // room-local tile
}

// RoomAt resolves (cx, cy) to a visible room and tile.
func (l Layout) RoomAt(cx, cy int) (Hit, bool) {
	rx, ry, ok := RoomOfCell(cx, cy, l.Origin, l.Geometry.RoomW, l.Geometry.RoomH)
	if !ok {
		return Hit{}, false
	}
	b, ok := l.Room(rx, ry)
	if !ok {
		return Hit{}, false
	}
	t, ok := b.Relative(cx, cy)
	if !ok {
		return Hit{}, false
	}
	return Hit{RoomX: rx, RoomY: ry, Tile: t}, true
}

// Offset is the world buffer offset of h while the view is at v.
func (l Layout) Offset(v View, h Hit) int {
	return l.Geometry.Offset(v.X+h.RoomX, v.Y+h.RoomY, h.Tile.X, h.Tile.Y)
}
