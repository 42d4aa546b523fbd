package paperdoll

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/image/draw"
)

// ImageLoader supplies decoded images by OS path. The core never decides how
// textures are stored; hosts may back this with a GPU asset cache.
type ImageLoader interface {
	LoadImage(path string) (*image.NRGBA, error)
}

// FileImages decodes PNG files from disk and keeps them for the session.
type FileImages struct {
	mu     sync.Mutex
	images map[string]*image.NRGBA
}

// NewFileImages creates an empty disk-backed loader.
func NewFileImages() *FileImages {
	return &FileImages{images: make(map[string]*image.NRGBA)}
}

// LoadImage decodes path on first use and returns the cached image after.
func (f *FileImages) LoadImage(path string) (*image.NRGBA, error) {
	f.mu.Lock()
	img, ok := f.images[path]
	f.mu.Unlock()
	if ok {
		return img, nil
	}

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.images[path] = img
	f.mu.Unlock()
	return img, nil
}

// Forget drops every decoded image. Called when asset roots are rescanned.
func (f *FileImages) Forget() {
	f.mu.Lock()
	f.images = make(map[string]*image.NRGBA)
	f.mu.Unlock()
}

func decodeFile(path string) (*image.NRGBA, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("paperdoll: open %s: %w", path, err)
	}
	defer fh.Close()
	src, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("paperdoll: decode %s: %w", path, err)
	}
	return toNRGBA(src), nil
}

// toNRGBA returns src as straight-alpha NRGBA with a zero origin. Ramp
// sampling and remapping compare raw channel bytes, so premultiplied or
// paletted sources are converted first.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// WritePNG encodes img to a PNG file at path, creating parent directories.
// The file is written under a temporary name and renamed into place, so a
// failed export never leaves a truncated image behind.
func WritePNG(path string, img image.Image) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("paperdoll: create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".paperdoll-*.png")
	if err != nil {
		return fmt.Errorf("paperdoll: create %s: %w", path, err)
	}
	tmp := f.Name()
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("paperdoll: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("paperdoll: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("paperdoll: write %s: %w", path, err)
	}
	return nil
}

// exportLabel turns an outfit name or part key into a file-name stem.
// Separators and spaces become single dashes; underscores and dots are kept
// and anything else is dropped. Empty results fall back to "outfit".
func exportLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	dash := false
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '_', r == '.':
			b.WriteRune(r)
			dash = false
		case r == '/', r == '\\', r == '-', unicode.IsSpace(r):
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	out := strings.TrimLeft(strings.TrimRight(b.String(), "-"), ".")
	if out == "" {
		return "outfit"
	}
	return out
}

// ExportName builds a file name for a rendered preview, e.g.
// "outfit_cell3_v2.png".
func ExportName(label string, cell, variant int) string {
	return fmt.Sprintf("%s_cell%d_v%d.png", exportLabel(label), cell, variant)
}
