package paperdoll

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// memImages is an in-memory ImageLoader keyed by OS path.
type memImages map[string]*image.NRGBA

func (m memImages) LoadImage(path string) (*image.NRGBA, error) {
	img, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return img, nil
}

func mustParse(t *testing.T, name string) PartID {
	t.Helper()
	id, err := ParsePartFilename(name)
	if err != nil {
		t.Fatalf("ParsePartFilename(%q): %v", name, err)
	}
	return id
}

// testParts builds part definitions rooted at "" whose image path is the file
// name itself.
func testParts(t *testing.T, names ...string) []PartDef {
	t.Helper()
	parts := make([]PartDef, 0, len(names))
	for _, n := range names {
		parts = append(parts, NewPartDef(mustParse(t, n), "", n))
	}
	return parts
}

func testCatalog(t *testing.T, names ...string) *PartCatalog {
	t.Helper()
	return BuildCatalog(testParts(t, names...))
}

func mustIndex(t *testing.T, c *PartCatalog, key string) int {
	t.Helper()
	i, ok := c.IndexByKey(key)
	if !ok {
		t.Fatalf("key %q not in catalog", key)
	}
	return i
}

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// rampImage lays out bands (one per variant) of 2×2 color blocks.
func rampImage(bands ...[]color.NRGBA) *image.NRGBA {
	w := 0
	for _, b := range bands {
		w = max(w, len(b)*rampBlockWidth)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, len(bands)*rampBlockHeight))
	for v, band := range bands {
		for i, c := range band {
			for dy := 0; dy < rampBlockHeight; dy++ {
				for dx := 0; dx < rampBlockWidth; dx++ {
					img.SetNRGBA(i*rampBlockWidth+dx, v*rampBlockHeight+dy, c)
				}
			}
		}
	}
	return img
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// writeTestPNG encodes img to path, creating parent directories.
func writeTestPNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func writeTestFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}
