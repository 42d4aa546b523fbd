package paperdoll

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// ErrNoRemap means a remap table could not be built: the suffix is unknown,
// a reference image is missing or too small, or the ramps produced nothing.
// Callers render the unmodified part.
var ErrNoRemap = errors.New("paperdoll: no remap available")

// RemapTable maps a source RGB (packed 0xRRGGBB) to its replacement color.
// Only the replacement's RGB is used; the recolored pixel keeps its alpha.
type RemapTable map[uint32]color.NRGBA

func packRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// PaletteImageFunc resolves a palette key tail to its decoded image.
type PaletteImageFunc func(tail string) (*image.NRGBA, bool)

// BuildRemapTable pairs each base ramp of suffix (variant 0) with its
// reference ramp at variant and zips them positionally. Fully transparent
// base cells are ignored so they cannot claim transparent-black pixels.
func BuildRemapTable(suffix byte, variant int, lookup PaletteImageFunc) (RemapTable, error) {
	pairs, ok := rampPairs[suffix]
	if !ok {
		return nil, fmt.Errorf("%w: unknown palette suffix %q", ErrNoRemap, suffix)
	}
	table := make(RemapTable)
	for _, p := range pairs {
		srcImg, ok := lookup(p.source)
		if !ok {
			return nil, fmt.Errorf("%w: missing ramp image %q", ErrNoRemap, p.source)
		}
		dstImg, ok := lookup(p.target)
		if !ok {
			return nil, fmt.Errorf("%w: missing ramp image %q", ErrNoRemap, p.target)
		}
		from, ok := ExtractRamp(srcImg, p.sourceX, p.sourceCount, 0)
		if !ok {
			return nil, fmt.Errorf("%w: ramp image %q too small", ErrNoRemap, p.source)
		}
		to, ok := ExtractRamp(dstImg, p.targetX, p.targetCount, variant)
		if !ok {
			return nil, fmt.Errorf("%w: ramp image %q too small", ErrNoRemap, p.target)
		}
		for i := 0; i < len(from) && i < len(to); i++ {
			if from[i].A == 0 {
				continue
			}
			table[packRGB(from[i].R, from[i].G, from[i].B)] = to[i]
		}
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: suffix %q produced an empty table", ErrNoRemap, suffix)
	}
	return table, nil
}

// Describe lists the table as sorted "#source -> #target" lines.
func (t RemapTable) Describe() []string {
	keys := make([]uint32, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		src := color.NRGBA{R: uint8(k >> 16), G: uint8(k >> 8), B: uint8(k), A: 0xff}
		out[i] = hexColor(src) + " -> " + hexColor(t[k])
	}
	return out
}

// ApplyRemap returns a copy of src with every pixel whose RGB is a table key
// recolored, alpha preserved. When nothing matches, src itself is returned
// and changed is false.
func ApplyRemap(src *image.NRGBA, table RemapTable) (out *image.NRGBA, changed bool) {
	if src == nil || len(table) == 0 {
		return src, false
	}
	b := src.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			target, ok := table[packRGB(row[x], row[x+1], row[x+2])]
			if !ok {
				continue
			}
			if out == nil {
				out = &image.NRGBA{
					Pix:    slices.Clone(src.Pix),
					Stride: src.Stride,
					Rect:   src.Rect,
				}
			}
			p := out.Pix[y*out.Stride+x:]
			p[0], p[1], p[2] = target.R, target.G, target.B
			changed = true
		}
	}
	if out == nil {
		return src, false
	}
	return out, changed
}

type tableKey struct {
	suffix  byte
	variant int
}

type imageKey struct {
	image   string
	variant int
}

// Remapper builds and memoizes remap tables per (suffix, variant) and
// recolored part images per (source image, variant). Both caches live until
// ClearCache.
type Remapper struct {
	mu       sync.Mutex
	palettes *PaletteCatalog
	images   ImageLoader
	tables   map[tableKey]RemapTable
	remapped map[imageKey]*image.NRGBA
}

// NewRemapper creates a remapper reading reference ramps from palettes.
func NewRemapper(palettes *PaletteCatalog, images ImageLoader) *Remapper {
	return &Remapper{
		palettes: palettes,
		images:   images,
		tables:   make(map[tableKey]RemapTable),
		remapped: make(map[imageKey]*image.NRGBA),
	}
}

func (r *Remapper) paletteImage(tail string) (*image.NRGBA, bool) {
	def, ok := r.palettes.FindByTail(tail)
	if !ok {
		return nil, false
	}
	img, err := r.images.LoadImage(def.FullPath())
	if err != nil {
		logger.Debug("palette image unavailable", zap.String("key", def.Key), zap.Error(err))
		return nil, false
	}
	return img, true
}

// Table returns the cached table for (suffix, variant), building it on first
// use. Failures are not cached.
func (r *Remapper) Table(suffix byte, variant int) (RemapTable, error) {
	variant = max(variant, 0)
	key := tableKey{suffix, variant}
	r.mu.Lock()
	t, ok := r.tables[key]
	r.mu.Unlock()
	if ok {
		return t, nil
	}

	t, err := BuildRemapTable(suffix, variant, r.paletteImage)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.tables[key] = t
	r.mu.Unlock()
	return t, nil
}

// Source loads the unmodified image of p.
func (r *Remapper) Source(p *PartDef) (*image.NRGBA, error) {
	return r.images.LoadImage(p.FullPath())
}

// Remap returns p's image recolored to variant. Parts without a palette
// suffix, and parts whose table cannot be built, come back unmodified.
func (r *Remapper) Remap(p *PartDef, variant int) (*image.NRGBA, error) {
	variant = max(variant, 0)
	key := imageKey{p.FullPath(), variant}
	r.mu.Lock()
	img, ok := r.remapped[key]
	r.mu.Unlock()
	if ok {
		return img, nil
	}

	src, err := r.Source(p)
	if err != nil {
		return nil, err
	}
	suffix, ok := PaletteSuffix(p)
	if !ok {
		return src, nil
	}
	table, err := r.Table(suffix, variant)
	if err != nil {
		logger.Debug("rendering part without remap", zap.String("part", p.Key), zap.Error(err))
		return src, nil
	}
	img, _ = ApplyRemap(src, table)

	r.mu.Lock()
	r.remapped[key] = img
	r.mu.Unlock()
	return img, nil
}

// CachedTables returns the number of memoized tables.
func (r *Remapper) CachedTables() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tables)
}

// CachedImages returns the number of memoized part images.
func (r *Remapper) CachedImages() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.remapped)
}

// ClearCache drops every table and recolored image.
func (r *Remapper) ClearCache() {
	r.mu.Lock()
	r.tables = make(map[tableKey]RemapTable)
	r.remapped = make(map[imageKey]*image.NRGBA)
	r.mu.Unlock()
}
