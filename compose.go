package paperdoll

import (
	"image"

	"golang.org/x/image/draw"
)

// Compose flattens draws, back to front, into one cell-sized image. Each
// layer's region is copied to the origin with source-over blending. A zero
// size takes the size of the first region.
func Compose(draws []LayerDraw, width, height int) *image.NRGBA {
	if (width <= 0 || height <= 0) && len(draws) > 0 {
		width, height = draws[0].Region.Width, draws[0].Region.Height
	}
	dst := image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	for _, d := range draws {
		if d.Sheet == nil {
			continue
		}
		r := d.Region.Rect().Add(d.Sheet.Bounds().Min)
		draw.Draw(dst, dst.Bounds(), d.Sheet, r.Min, draw.Over)
	}
	return dst
}

// ComposeCell builds the draw plan for cell and flattens it at the grid's
// cell size.
func (s *Studio) ComposeCell(cell int) *image.NRGBA {
	g := s.grid
	return Compose(s.Draws(cell), g.CellWidth, g.CellHeight)
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling so
// pixel art stays crisp. Factors below 2 return img unchanged.
func Scale(img *image.NRGBA, factor int) *image.NRGBA {
	if img == nil || factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
