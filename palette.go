package paperdoll

import (
	"path"
	"sort"
	"strings"
)

// PaletteDef is one ramp reference image found under a "palettes" folder.
type PaletteDef struct {
	Key       string // ImagePath without the .png suffix
	ImagePath string // root-relative, forward slashes
	Root      string
}

// FullPath joins Root and ImagePath into an OS path.
func (p *PaletteDef) FullPath() string {
	return joinAssetPath(p.Root, p.ImagePath)
}

// Name returns the file name without directories or extension.
func (p *PaletteDef) Name() string {
	return path.Base(p.Key)
}

// PaletteCatalog lists palette images sorted by key so indexes are stable
// across rescans.
type PaletteCatalog struct {
	palettes []PaletteDef
	byKey    map[string]int
}

// BuildPaletteCatalog sorts defs by key and indexes them.
func BuildPaletteCatalog(defs []PaletteDef) *PaletteCatalog {
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })
	c := &PaletteCatalog{palettes: defs, byKey: make(map[string]int, len(defs))}
	for i := range defs {
		c.byKey[defs[i].Key] = i
	}
	return c
}

// Len returns the number of palettes.
func (c *PaletteCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.palettes)
}

// Palettes returns every palette in key order. The returned slice MUST NOT be mutated.
func (c *PaletteCatalog) Palettes() []PaletteDef {
	if c == nil {
		return nil
	}
	return c.palettes
}

// Palette returns the palette at index i.
func (c *PaletteCatalog) Palette(i int) (*PaletteDef, bool) {
	if c == nil || i < 0 || i >= len(c.palettes) {
		return nil, false
	}
	return &c.palettes[i], true
}

// IndexByKey resolves an exact palette key.
func (c *PaletteCatalog) IndexByKey(key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.byKey[key]
	return i, ok
}

// FindByTail returns the first palette (in key order) whose key ends with
// tail, compared case-insensitively with forward slashes.
func (c *PaletteCatalog) FindByTail(tail string) (*PaletteDef, bool) {
	if c == nil {
		return nil, false
	}
	tail = strings.ToLower(strings.ReplaceAll(tail, "\\", "/"))
	for i := range c.palettes {
		key := strings.ToLower(strings.ReplaceAll(c.palettes[i].Key, "\\", "/"))
		if strings.HasSuffix(key, tail) {
			return &c.palettes[i], true
		}
	}
	return nil, false
}

// IsPaletteAssetPath reports whether a root-relative path lies in, or under,
// a folder named "palettes" (any case).
func IsPaletteAssetPath(assetPath string) bool {
	lower := strings.ToLower(strings.ReplaceAll(assetPath, "\\", "/"))
	return strings.HasPrefix(lower, "palettes/") || strings.Contains(lower, "/palettes/")
}

// PaletteKeyFromAssetPath strips a trailing .png (any case).
func PaletteKeyFromAssetPath(assetPath string) string {
	if len(assetPath) >= 4 && strings.EqualFold(assetPath[len(assetPath)-4:], ".png") {
		return assetPath[:len(assetPath)-4]
	}
	return assetPath
}
