package paperdoll

import "image"

// Grid describes how part sheets are sliced into animation cells. All part
// sheets share the grid; only the row count varies with sheet height.
type Grid struct {
	Columns    int
	Rows       int // fallback when a sheet's height is unknown
	CellWidth  int
	CellHeight int
	OffsetX    int
	OffsetY    int
}

// DefaultGrid is an 8×8 grid of 32px cells.
var DefaultGrid = Grid{Columns: 8, Rows: 8, CellWidth: 32, CellHeight: 32}

// Normalize clamps every dimension to at least 1 and offsets to at least 0.
func (g Grid) Normalize() Grid {
	g.Columns = max(g.Columns, 1)
	g.Rows = max(g.Rows, 1)
	g.CellWidth = max(g.CellWidth, 1)
	g.CellHeight = max(g.CellHeight, 1)
	g.OffsetX = max(g.OffsetX, 0)
	g.OffsetY = max(g.OffsetY, 0)
	return g
}

// CellIndex returns the row-major index of (row, column).
func (g Grid) CellIndex(row, column int) int {
	return row*max(g.Columns, 1) + column
}

// CellCount returns Rows × Columns.
func (g Grid) CellCount() int {
	g = g.Normalize()
	return g.Rows * g.Columns
}

// RowsFor derives how many rows fit in a sheet of the given pixel height,
// falling back to g.Rows when the height is unknown or smaller than the
// offset.
func (g Grid) RowsFor(height int) int {
	g = g.Normalize()
	if height <= g.OffsetY {
		return g.Rows
	}
	return max((height-g.OffsetY)/g.CellHeight, 1)
}

// TextureRegion is one cell of a part sheet, in sheet pixel coordinates.
type TextureRegion struct {
	Index         int
	X, Y          int
	Width, Height int
}

// Rect returns the region as an image rectangle.
func (r TextureRegion) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// AtlasLayout is the grid applied to one sheet.
type AtlasLayout struct {
	Grid Grid
	Rows int
}

// LayoutFor builds the layout of a sheet with the given bounds.
func (g Grid) LayoutFor(bounds image.Rectangle) AtlasLayout {
	g = g.Normalize()
	return AtlasLayout{Grid: g, Rows: g.RowsFor(bounds.Dy())}
}

// Len returns the number of cells in the layout.
func (a AtlasLayout) Len() int {
	return a.Rows * a.Grid.Columns
}

// Region returns the rectangle for cell index, or false when the sheet has no
// such cell. Cells are row-major with no padding between them.
func (a AtlasLayout) Region(index int) (TextureRegion, bool) {
	if index < 0 || index >= a.Len() {
		return TextureRegion{}, false
	}
	g := a.Grid
	col := index % g.Columns
	row := index / g.Columns
	return TextureRegion{
		Index:  index,
		X:      g.OffsetX + col*g.CellWidth,
		Y:      g.OffsetY + row*g.CellHeight,
		Width:  g.CellWidth,
		Height: g.CellHeight,
	}, true
}
