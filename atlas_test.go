package paperdoll

import (
	"image"
	"testing"
)

func TestGrid_Normalize(t *testing.T) {
	g := Grid{Columns: 0, Rows: -2, CellWidth: 0, CellHeight: 16, OffsetX: -4, OffsetY: 3}.Normalize()
	want := Grid{Columns: 1, Rows: 1, CellWidth: 1, CellHeight: 16, OffsetX: 0, OffsetY: 3}
	if g != want {
		t.Errorf("got %+v, want %+v", g, want)
	}
}

func TestGrid_RowsFor(t *testing.T) {
	tests := []struct {
		name   string
		grid   Grid
		height int
		want   int
	}{
		{"exact", DefaultGrid, 256, 8},
		{"partial row dropped", DefaultGrid, 100, 3},
		{"taller than grid", DefaultGrid, 512, 16},
		{"smaller than a cell", DefaultGrid, 10, 1},
		{"unknown height", DefaultGrid, 0, 8},
		{"offset", Grid{Columns: 8, Rows: 4, CellWidth: 32, CellHeight: 32, OffsetY: 64}, 128, 2},
		{"height within offset", Grid{Columns: 8, Rows: 4, CellWidth: 32, CellHeight: 32, OffsetY: 64}, 64, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.grid.RowsFor(tt.height); got != tt.want {
				t.Errorf("RowsFor(%d) = %d, want %d", tt.height, got, tt.want)
			}
		})
	}
}

func TestAtlasLayout_Region(t *testing.T) {
	layout := DefaultGrid.LayoutFor(image.Rect(0, 0, 256, 128))
	if layout.Rows != 4 || layout.Len() != 32 {
		t.Fatalf("Rows = %d, Len = %d, want 4, 32", layout.Rows, layout.Len())
	}

	tests := []struct {
		index int
		want  TextureRegion
	}{
		{0, TextureRegion{Index: 0, X: 0, Y: 0, Width: 32, Height: 32}},
		{7, TextureRegion{Index: 7, X: 224, Y: 0, Width: 32, Height: 32}},
		{8, TextureRegion{Index: 8, X: 0, Y: 32, Width: 32, Height: 32}},
		{31, TextureRegion{Index: 31, X: 224, Y: 96, Width: 32, Height: 32}},
	}
	for _, tt := range tests {
		got, ok := layout.Region(tt.index)
		if !ok {
			t.Fatalf("Region(%d) missing", tt.index)
		}
		if got != tt.want {
			t.Errorf("Region(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
	for _, i := range []int{-1, 32} {
		if _, ok := layout.Region(i); ok {
			t.Errorf("Region(%d) should miss", i)
		}
	}
}

func TestAtlasLayout_Offset(t *testing.T) {
	g := Grid{Columns: 2, Rows: 1, CellWidth: 16, CellHeight: 24, OffsetX: 4, OffsetY: 8}
	r, ok := g.LayoutFor(image.Rect(0, 0, 36, 56)).Region(3)
	if !ok {
		t.Fatal("expected region")
	}
	want := TextureRegion{Index: 3, X: 20, Y: 32, Width: 16, Height: 24}
	if r != want {
		t.Errorf("got %+v, want %+v", r, want)
	}
	if r.Rect() != image.Rect(20, 32, 36, 56) {
		t.Errorf("Rect = %v", r.Rect())
	}
}

func TestGrid_CellIndexAndCount(t *testing.T) {
	if got := DefaultGrid.CellIndex(2, 3); got != 19 {
		t.Errorf("CellIndex(2, 3) = %d, want 19", got)
	}
	if got := DefaultGrid.CellCount(); got != 64 {
		t.Errorf("CellCount = %d, want 64", got)
	}
}
