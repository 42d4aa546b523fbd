package paperdoll

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureCache uploads decoded (and possibly recolored) sheets to the GPU
// once and hands out per-cell sub-images. Sheets are keyed by identity, which
// is stable because the Remapper memoizes its results.
type TextureCache struct {
	mu       sync.Mutex
	textures map[*image.NRGBA]*ebiten.Image
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[*image.NRGBA]*ebiten.Image)}
}

// Texture returns the GPU image for img, uploading it on first use.
func (t *TextureCache) Texture(img *image.NRGBA) *ebiten.Image {
	if img == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if tex, ok := t.textures[img]; ok {
		return tex
	}
	tex := ebiten.NewImageFromImage(img)
	t.textures[img] = tex
	return tex
}

// Cell returns the sub-image of img covered by r.
func (t *TextureCache) Cell(img *image.NRGBA, r TextureRegion) *ebiten.Image {
	tex := t.Texture(img)
	if tex == nil {
		return nil
	}
	return tex.SubImage(r.Rect().Add(tex.Bounds().Min)).(*ebiten.Image)
}

// Len returns the number of uploaded sheets.
func (t *TextureCache) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.textures)
}

// Clear deallocates every uploaded sheet.
func (t *TextureCache) Clear() {
	t.mu.Lock()
	for _, tex := range t.textures {
		tex.Deallocate()
	}
	t.textures = make(map[*image.NRGBA]*ebiten.Image)
	t.mu.Unlock()
}
