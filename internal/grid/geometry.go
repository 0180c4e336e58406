package grid

// Geometry holds the room, world and view dimensions of one editing session.
// Room sizes are in tiles; world and view sizes are in rooms.
type Geometry struct {
	RoomW, RoomH   int
	WorldW, WorldH int
	ViewW, ViewH   int
}

// View is the world coordinate of the top-left visible room.
type View struct {
	X, Y int
}

// PayloadLen is the number of tile bytes in the whole world.
func (g Geometry) PayloadLen() int {
	return g.RoomW * g.RoomH * g.WorldW * g.WorldH
}

// RoomLen is the number of tiles in one room.
func (g Geometry) RoomLen() int { return g.RoomW * g.RoomH }

// Offset is TileOffset for this geometry.
func (g Geometry) Offset(worldX, worldY, localX, localY int) int {
	return TileOffset(worldX, worldY, localX, localY, g.RoomW, g.RoomH, g.WorldW)
}

// Clamp keeps v inside the world.
func (g Geometry) Clamp(v View) View {
	x, y := ClampView(v.X, v.Y, g.ViewW, g.ViewH, g.WorldW, g.WorldH)
	return View{X: x, Y: y}
}

// Scroll moves the view by (dx, dy) rooms. moved is false when the view was
// already at the world edge in every requested direction.
func (g Geometry) Scroll(v View, dx, dy int) (View, bool) {
	next := g.Clamp(View{X: v.X + dx, Y: v.Y + dy})
	return next, next != v
}

// CenterOn returns the view that puts room (rx, ry) in the middle, clamped.
func (g Geometry) CenterOn(rx, ry int) View {
	return g.Clamp(View{X: rx - g.ViewW/2, Y: ry - g.ViewH/2})
}

// RoomView is the block covering every visible room when room (0, 0) of the
// view starts at origin.
func (g Geometry) RoomView(origin Coord) Block {
	return Block{X: origin.X, Y: origin.Y, W: g.RoomW * g.ViewW, H: g.RoomH * g.ViewH}
}

// EdgeScroll reports the scroll direction requested by a click on (cx, cy)
// relative to the room view rv. Only the single ring of cells directly
// around rv counts; every other cell yields (0, 0).
func EdgeScroll(cx, cy int, rv Block) (dx, dy int) {
	inRows := cy >= rv.Y-1 && cy <= rv.Y+rv.H
	inCols := cx >= rv.X-1 && cx <= rv.X+rv.W
	if !inRows || !inCols {
		return 0, 0
	}
	switch cx {
	case rv.X - 1:
		dx = -1
	case rv.X + rv.W:
		dx = 1
	}
	switch cy {
	case rv.Y - 1:
		dy = -1
	case rv.Y + rv.H:
		dy = 1
	}
	return dx, dy
}
