// Package world owns the flattened tile buffer of a world and its on-disk
// format.
package world

import "core-editor/internal/grid"

// World is a WorldW × WorldH grid of rooms stored as one byte per tile.
// Rooms are row-major within the world and tiles row-major within a room.
type World struct {
	geom  grid.Geometry
	tiles []byte
}

// New returns a zero-filled world.
func New(g grid.Geometry) *World {
	return &World{geom: g, tiles: make([]byte, g.PayloadLen())}
}

// Geometry returns the dimensions the buffer was allocated for.
func (w *World) Geometry() grid.Geometry { return w.geom }

// Len is the payload size in bytes.
func (w *World) Len() int { return len(w.tiles) }

// At returns the tile stored at offset.
func (w *World) At(offset int) byte { return w.tiles[offset] }

// Paint stores id at offset and reports whether the stored value changed.
func (w *World) Paint(offset int, id byte) bool {
	return Paint(w.tiles, offset, id)
}

// Paint writes one byte into buf and reports whether it changed.
func Paint(buf []byte, offset int, id byte) bool {
	if buf[offset] == id {
		return false
	}
	buf[offset] = id
	return true
}

// Payload returns a copy of the tile bytes.
func (w *World) Payload() []byte {
	out := make([]byte, len(w.tiles))
	copy(out, w.tiles)
	return out
}

// Load replaces the payload with data. Missing trailing bytes are zeroed and
// extra bytes are ignored; the number of ignored bytes is returned.
func (w *World) Load(data []byte) int {
	n := copy(w.tiles, data)
	clear(w.tiles[n:])
	return len(data) - n
}

// Room is a bounded view of one room of the world.
type Room struct {
	w    *World
	base int
}

// Room returns the view of room (rx, ry) in world coordinates.
func (w *World) Room(rx, ry int) Room {
	return Room{w: w, base: w.geom.Offset(rx, ry, 0, 0)}
}

// Offset is the world offset of tile (x, y) of the room.
func (r Room) Offset(x, y int) int { return r.base + y*r.w.geom.RoomW + x }

// At returns tile (x, y) of the room.
func (r Room) At(x, y int) byte { return r.w.tiles[r.Offset(x, y)] }

// Used counts the non-zero tiles of the room.
func (r Room) Used() int {
	n := 0
	for _, b := range r.w.tiles[r.base : r.base+r.w.geom.RoomLen()] {
		if b != 0 {
			n++
		}
	}
	return n
}

// Summary is the minimap value of room (rx, ry): its most frequent non-zero
// tile, lowest id on ties, or 0 for an empty room.
func (w *World) Summary(rx, ry int) byte {
	r := w.Room(rx, ry)
	var counts [256]int
	for _, b := range w.tiles[r.base : r.base+w.geom.RoomLen()] {
		counts[b]++
	}
	best := 0
	for id := 1; id < len(counts); id++ {
		if counts[id] == 0 {
			continue
		}
		if best == 0 || counts[id] > counts[best] {
			best = id
		}
	}
	return byte(best)
}
