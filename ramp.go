package paperdoll

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp reference images are laid out as 2×2 pixel blocks: colors run left to
// right, variants run top to bottom in 2px bands.
const (
	rampBlockWidth  = 2
	rampBlockHeight = 2
)

// rampPair maps a base ramp (read at variant 0) onto a reference ramp (read
// at the requested variant).
type rampPair struct {
	source      string // palette key tail
	sourceX     int
	sourceCount int
	target      string
	targetX     int
	targetCount int
}

const (
	base3Ramp      = "palettes/base ramps/3-color base ramp (00a)"
	base4Ramp      = "palettes/base ramps/4-color base ramp (00b)"
	base2x3Ramp    = "palettes/base ramps/2x 3-color base ramps (00c)"
	base4and3Ramp  = "palettes/base ramps/4-color + 3-color base ramps (00d)"
	baseSkinRamp   = "palettes/base ramps/skin color base ramp"
	baseHairRamp   = "palettes/base ramps/hair color base ramp"
	seed3Ramps     = "palettes/mana seed 3-color ramps"
	seed4Ramps     = "palettes/mana seed 4-color ramps"
	seedSkinRamps  = "palettes/mana seed skin ramps"
	seedHairRamps  = "palettes/mana seed hair ramps"
	canonicalRamps = seed3Ramps
)

// rampPairs is the fixed ramp geometry for each palette suffix.
var rampPairs = map[byte][]rampPair{
	'a': {
		{base3Ramp, 0, 4, seed3Ramps, 0, 4},
	},
	'b': {
		{base4Ramp, 0, 5, seed4Ramps, 0, 5},
	},
	'c': {
		{base2x3Ramp, 0, 4, seed3Ramps, 0, 4},
		{base2x3Ramp, 8, 4, seed3Ramps, 0, 4},
	},
	'd': {
		{base4and3Ramp, 0, 5, seed4Ramps, 0, 5},
		{base4and3Ramp, 10, 4, seed3Ramps, 0, 4},
	},
	// Version 00 parts without a letter share the generic skin and hair
	// families on top of the 4-color outfit ramp.
	'f': {
		{base4Ramp, 0, 5, seed4Ramps, 0, 5},
		{baseSkinRamp, 0, 5, seedSkinRamps, 0, 5},
		{baseHairRamp, 0, 6, seedHairRamps, 0, 6},
	},
}

// InferredSuffix returns the palette suffix implied by a layer when a part
// carries none. Body and hair sheets use the standard skin/hair ramps.
func InferredSuffix(l LayerCode) (byte, bool) {
	switch l {
	case Body01, Hair13:
		return 'f', true
	}
	return 0, false
}

// PaletteSuffix returns the suffix used to recolor p.
func PaletteSuffix(p *PartDef) (byte, bool) {
	if p.ID.HasPalette() {
		return p.ID.Palette, true
	}
	return InferredSuffix(p.ID.Layer)
}

// VariantCount returns how many 2px variant bands img holds (at least 1).
func VariantCount(img image.Image) int {
	if img == nil {
		return 1
	}
	return max(img.Bounds().Dy()/rampBlockHeight, 1)
}

// Ramp is an ordered run of reference colors.
type Ramp []color.NRGBA

// ExtractRamp samples count colors from img starting at xStart, reading the
// centre of each 2×2 block in the given variant band. variant is clamped to
// the image's band count. It fails when any sample falls outside the image.
func ExtractRamp(img *image.NRGBA, xStart, count, variant int) (Ramp, bool) {
	if img == nil || count <= 0 || xStart < 0 {
		return nil, false
	}
	b := img.Bounds()
	variant = min(max(variant, 0), VariantCount(img)-1)
	y := variant*rampBlockHeight + rampBlockHeight/2
	if y >= b.Dy() {
		return nil, false
	}
	out := make(Ramp, 0, count)
	for i := 0; i < count; i++ {
		x := xStart + i*rampBlockWidth + rampBlockWidth/2
		if x >= b.Dx() {
			return nil, false
		}
		out = append(out, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
	}
	return out, true
}

// Hex formats the ramp as "#rrggbb" strings.
func (r Ramp) Hex() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = hexColor(c)
	}
	return out
}

func hexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
