package main

import (
	"flag"
	"fmt"
	"os"

	"core-editor/internal/config"
	"core-editor/internal/grid"
	"core-editor/internal/world"
)

// dimFlags are the geometry flags shared with the editor.
type dimFlags struct {
	gridW, gridH   int
	roomW, roomH   int
	worldW, worldH int
}

func (d *dimFlags) register(f *flag.FlagSet) {
	f.IntVar(&d.gridW, "g", config.DefaultGrid, "tileset cell `width` in pixels")
	f.IntVar(&d.gridH, "G", config.DefaultGrid, "tileset cell `height` in pixels")
	f.IntVar(&d.roomW, "r", config.DefaultRoomW, "room `width` in tiles")
	f.IntVar(&d.roomH, "R", config.DefaultRoomH, "room `height` in tiles")
	f.IntVar(&d.worldW, "w", config.DefaultWorldW, "world `width` in rooms")
	f.IntVar(&d.worldH, "W", config.DefaultWorldH, "world `height` in rooms")
}

func (d *dimFlags) geometry() (grid.Geometry, error) {
	for _, v := range []struct {
		name string
		val  int
	}{{"r", d.roomW}, {"R", d.roomH}, {"w", d.worldW}, {"W", d.worldH}} {
		if v.val < 1 || v.val > 255 {
			return grid.Geometry{}, fmt.Errorf("-%s: %d out of range 1-255", v.name, v.val)
		}
	}
	return grid.Geometry{
		RoomW: d.roomW, RoomH: d.roomH,
		WorldW: d.worldW, WorldH: d.worldH,
		ViewW: 1, ViewH: 1,
	}, nil
}

// load reads an existing world file. A v1 header overrides the dimension
// flags; raw files are decoded with them.
func (d *dimFlags) load(path string) (world.ReadResult, error) {
	g, err := d.geometry()
	if err != nil {
		return world.ReadResult{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return world.ReadResult{}, err
	}
	if h, ok := world.PeekHeader(data); ok && len(data) != g.PayloadLen() {
		hg := h.Geometry()
		hg.ViewW, hg.ViewH = 1, 1
		g = hg
		d.gridW, d.gridH = int(h.GridW), int(h.GridH)
	}
	res, err := world.Decode(data, g)
	if err != nil {
		return world.ReadResult{}, fmt.Errorf("%s: %w", path, err)
	}
	res.Found = true
	return res, nil
}
