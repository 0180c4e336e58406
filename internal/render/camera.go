package render

import "core-editor/internal/grid"

// Each tile is drawn two terminal columns wide so it looks roughly square.
const (
	CellCols = 2
	CellRows = 1
)

// Camera translates between editor cells and terminal positions.
type Camera struct {
	CellCols int
	CellRows int
}

// NewCamera returns the camera for CellCols × CellRows tiles.
func NewCamera() Camera { return Camera{CellCols: CellCols, CellRows: CellRows} }

// CellToScreen returns the top-left terminal position of cell (cx, cy).
func (c Camera) CellToScreen(cx, cy int) (sx, sy int) {
	return cx * c.CellCols, cy * c.CellRows
}

// ScreenToCell converts a terminal position to the cell containing it.
func (c Camera) ScreenToCell(sx, sy int) (int, int) {
	return grid.PixelToCell(sx, sy, c.CellCols, c.CellRows)
}

// Size is the terminal size needed to show w × h cells.
func (c Camera) Size(w, h int) (int, int) {
	return w * c.CellCols, h * c.CellRows
}
