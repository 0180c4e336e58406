// Package grid maps screen positions onto the rooms and tiles of a world.
// It performs no I/O and has no error states: anything out of range simply
// reports "no match".
package grid

// Coord is a position local to a Block together with its linear index.
type Coord struct {
	X, Y int
	I    int // Y*W + X within the owning block
}

// Block is a rectangular screen region measured in screen cells.
type Block struct {
	X, Y int
	W, H int
}

// Relative converts the absolute cell (cx, cy) to block-local coordinates.
// ok is false when the cell lies outside [X, X+W) × [Y, Y+H).
func (b Block) Relative(cx, cy int) (Coord, bool) {
	xrel := cx - b.X
	yrel := cy - b.Y
	if xrel < 0 || xrel >= b.W || yrel < 0 || yrel >= b.H {
		return Coord{}, false
	}
	return Coord{X: xrel, Y: yrel, I: yrel*b.W + xrel}, true
}

// Contains reports whether (cx, cy) lies inside the block.
func (b Block) Contains(cx, cy int) bool {
	_, ok := b.Relative(cx, cy)
	return ok
}

// Len is the number of cells covered by the block.
func (b Block) Len() int { return b.W * b.H }

// PixelToCell truncates a pixel position to the cell of size gridW × gridH
// containing it. Only non-negative pixel positions are meaningful.
func PixelToCell(px, py, gridW, gridH int) (int, int) {
	return px / gridW, py / gridH
}

// RoomOfCell returns which room of the visible view contains (cx, cy), given
// the cell where room (0, 0) starts. ok is false for cells left of or above
// the origin; callers still have to bound the result by the view size.
func RoomOfCell(cx, cy int, origin Coord, roomW, roomH int) (rx, ry int, ok bool) {
	dx := cx - origin.X
	dy := cy - origin.Y
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}
	return dx / roomW, dy / roomH, true
}

// TileOffset is the byte offset of tile (localX, localY) of room
// (worldX, worldY) inside the flattened world buffer. Rooms are stored
// row-major within the world and tiles row-major within a room.
func TileOffset(worldX, worldY, localX, localY, roomW, roomH, worldW int) int {
	return roomW*roomH*(worldW*worldY+worldX) + roomW*localY + localX
}

// ClampView moves the view origin so that a viewW × viewH window stays
// inside a worldW × worldH world.
func ClampView(x, y, viewW, viewH, worldW, worldH int) (int, int) {
	return clamp(x, 0, worldW-viewW), clamp(y, 0, worldH-viewH)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
