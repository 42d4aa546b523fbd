package paperdoll

import (
	"image"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Snapshot is one complete, immutable scan of the asset roots. A rescan
// builds a new Snapshot off to the side; readers never see a partial one.
type Snapshot struct {
	Parts    *PartCatalog
	Palettes *PaletteCatalog
	Report   ScanReport
	Elapsed  time.Duration
}

// Scan walks roots and builds both catalogs. Safe to call from any goroutine.
func Scan(roots []string) *Snapshot {
	start := time.Now()
	parts, report := ScanParts(roots)
	palettes := ScanPalettes(roots)
	return &Snapshot{
		Parts:    parts,
		Palettes: palettes,
		Report:   report,
		Elapsed:  time.Since(start),
	}
}

// LayerDraw is everything a renderer needs to draw one layer of one cell.
type LayerDraw struct {
	Layer     LayerCode
	Part      *PartDef
	Sheet     *image.NRGBA // recolored when a palette selection applies
	Region    TextureRegion
	Selection PaletteSelection
	Recolored bool
}

// Studio is the top-level paper-doll state: the published snapshot, the
// equipped selection, palette selections and the remap caches. Apart from
// Snapshot, which may be read from any goroutine, a Studio is driven from one
// update loop.
type Studio struct {
	roots  []string
	grid   Grid
	images ImageLoader
	debug  bool

	snap       atomic.Pointer[Snapshot]
	equipped   *Equipped
	pending    []string
	hasPending bool
	selections *PaletteSelections
	remap      *Remapper
}

// NewStudio creates an unloaded studio. Call Rescan (or Publish a Snapshot
// built elsewhere) before equipping.
func NewStudio(cfg Config, images ImageLoader) *Studio {
	if images == nil {
		images = NewFileImages()
	}
	return &Studio{
		roots:      cfg.AssetRoots(),
		grid:       cfg.Grid.Normalize(),
		images:     images,
		debug:      cfg.Debug,
		equipped:   NewEquipped(),
		selections: NewPaletteSelections(),
		remap:      NewRemapper(nil, images),
	}
}

// SetDebugMode enables or disables logging of scan statistics after every
// publish.
func (s *Studio) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Roots returns the asset roots scanned by Rescan, in precedence order.
func (s *Studio) Roots() []string {
	return s.roots
}

// Grid returns the cell grid applied to part sheets.
func (s *Studio) Grid() Grid {
	return s.grid
}

// SetGrid replaces the cell grid.
func (s *Studio) SetGrid(g Grid) {
	s.grid = g.Normalize()
}

// Snapshot returns the published snapshot, or nil before the first publish.
func (s *Studio) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Loaded reports whether a snapshot has been published.
func (s *Studio) Loaded() bool {
	return s.snap.Load() != nil
}

// Catalog returns the published part catalog (nil before loading).
func (s *Studio) Catalog() *PartCatalog {
	if snap := s.snap.Load(); snap != nil {
		return snap.Parts
	}
	return nil
}

// Palettes returns the published palette catalog (nil before loading).
func (s *Studio) Palettes() *PaletteCatalog {
	if snap := s.snap.Load(); snap != nil {
		return snap.Palettes
	}
	return nil
}

// Rescan scans the configured roots and publishes the result.
func (s *Studio) Rescan() *Snapshot {
	snap := Scan(s.roots)
	s.Publish(snap)
	return snap
}

// Publish swaps in snap. Pending keys are applied if set (an empty list
// means defaults); otherwise the current outfit is carried across by key, or
// defaults are equipped on first load. Remap caches are dropped.
func (s *Studio) Publish(snap *Snapshot) {
	if snap == nil {
		return
	}
	old := s.snap.Load()
	var carried []string
	if old != nil {
		carried = s.equipped.Keys(old.Parts)
	}

	if f, ok := s.images.(interface{ Forget() }); ok && old != nil {
		f.Forget()
	}
	s.remap = NewRemapper(snap.Palettes, s.images)
	s.snap.Store(snap)

	switch {
	case s.hasPending:
		s.applyKeysOrDefaults(snap.Parts, s.pending)
		s.pending, s.hasPending = nil, false
	case old != nil:
		s.equipped.ApplyKeys(snap.Parts, carried)
	default:
		s.equipped.SetDefaults(snap.Parts)
	}

	if snap.Report.Empty() {
		logger.Warn("catalog built with zero parts", zap.Strings("roots", snap.Report.Roots))
	}
	if s.debug {
		logger.Info("snapshot published",
			zap.Int("parts", snap.Parts.Len()),
			zap.Int("sets", snap.Parts.SetCount()),
			zap.Int("paired", len(snap.Parts.PairedSets())),
			zap.Int("palettes", snap.Palettes.Len()),
			zap.Int("skipped", len(snap.Report.Skipped)),
			zap.Duration("elapsed", snap.Elapsed))
	}
}

func (s *Studio) applyKeysOrDefaults(c *PartCatalog, keys []string) {
	if len(keys) == 0 {
		s.equipped.SetDefaults(c)
		return
	}
	s.equipped.ApplyKeys(c, keys)
}

// SetPendingKeys loads a saved outfit. Before the first publish the keys are
// held and applied when the catalog lands; afterwards they apply at once. An
// empty list selects the defaults.
func (s *Studio) SetPendingKeys(keys []string) {
	if c := s.Catalog(); c != nil {
		s.applyKeysOrDefaults(c, keys)
		return
	}
	s.pending = append([]string(nil), keys...)
	s.hasPending = true
}

// Equipped returns the equipped selection.
func (s *Studio) Equipped() *Equipped {
	return s.equipped
}

// Remapper returns the remap engine of the published snapshot.
func (s *Studio) Remapper() *Remapper {
	return s.remap
}

// Selections returns the palette selections.
func (s *Studio) Selections() *PaletteSelections {
	return s.selections
}

// EquipKey wears the part named by key. It reports false for unknown keys.
func (s *Studio) EquipKey(key string) bool {
	c := s.Catalog()
	i, ok := c.IndexByKey(key)
	if !ok {
		return false
	}
	s.equipped.Equip(c, i)
	return true
}

// Unequip empties layer l.
func (s *Studio) Unequip(l LayerCode) {
	s.equipped.Unequip(s.Catalog(), l)
}

// Cycle steps layer l to the next (delta ≥ 0) or previous part.
func (s *Studio) Cycle(l LayerCode, delta int) (*PartDef, bool) {
	c := s.Catalog()
	i, ok := s.equipped.Cycle(c, l, delta)
	if !ok {
		return nil, false
	}
	return c.Part(i)
}

// EquippedKeys returns the worn part keys in layer order.
func (s *Studio) EquippedKeys() []string {
	return s.equipped.Keys(s.Catalog())
}

// VisibleLayers returns the render view of the equipped selection.
func (s *Studio) VisibleLayers() map[LayerCode]int {
	return s.equipped.VisibleLayers(s.Catalog())
}

// VariantCount returns the number of variant bands of palette index. Images
// with a single band (or not yet loadable) report the band count of the
// canonical 3-color ramp image instead.
func (s *Studio) VariantCount(palette int) int {
	pc := s.Palettes()
	def, ok := pc.Palette(palette)
	if !ok {
		return 1
	}
	if img, err := s.images.LoadImage(def.FullPath()); err == nil {
		if n := VariantCount(img); n > 1 {
			return n
		}
	}
	return s.canonicalVariantCount()
}

func (s *Studio) canonicalVariantCount() int {
	def, ok := s.Palettes().FindByTail(canonicalRamps)
	if !ok {
		return 1
	}
	img, err := s.images.LoadImage(def.FullPath())
	if err != nil {
		return 1
	}
	return VariantCount(img)
}

// CycleGlobalPalette steps the global palette selection.
func (s *Studio) CycleGlobalPalette(delta int) (PaletteSelection, bool) {
	n := s.Palettes().Len()
	if n == 0 {
		return PaletteSelection{}, false
	}
	cur, _ := s.selections.Global(n)
	next := CycleSelection(cur, delta, n, s.VariantCount)
	s.selections.SetGlobal(next)
	return next, true
}

// CycleLayerPalette steps the selection of layer l, starting from whatever is
// in force for it. Landing back on the global selection drops the override.
func (s *Studio) CycleLayerPalette(l LayerCode, delta int) (PaletteSelection, bool) {
	n := s.Palettes().Len()
	if n == 0 {
		return PaletteSelection{}, false
	}
	cur, _, _ := s.selections.Effective(l, n)
	next := CycleSelection(cur, delta, n, s.VariantCount)
	if global, ok := s.selections.Global(n); ok && global == next {
		s.selections.ClearLayer(l)
	} else {
		s.selections.SetLayer(l, next)
	}
	return next, true
}

// Draws returns the visible layers of cell in draw order. Layers whose sheet
// cannot be loaded, or has no such cell, are left out.
func (s *Studio) Draws(cell int) []LayerDraw {
	c := s.Catalog()
	if c == nil {
		return nil
	}
	visible := s.VisibleLayers()
	paletteCount := s.Palettes().Len()
	out := make([]LayerDraw, 0, len(visible))
	for _, l := range AllLayers {
		idx, ok := visible[l]
		if !ok {
			continue
		}
		part, ok := c.Part(idx)
		if !ok {
			continue
		}
		d := LayerDraw{Layer: l, Part: part}
		sel, _, hasSel := s.selections.Effective(l, paletteCount)

		var err error
		if hasSel {
			d.Selection = sel
			d.Sheet, err = s.remap.Remap(part, sel.Variant)
		} else {
			d.Sheet, err = s.remap.Source(part)
		}
		if err != nil {
			logger.Debug("part sheet unavailable", zap.String("part", part.Key), zap.Error(err))
			continue
		}
		if hasSel {
			if src, err := s.remap.Source(part); err == nil {
				d.Recolored = src != d.Sheet
			}
		}

		region, ok := s.grid.LayoutFor(d.Sheet.Bounds()).Region(cell)
		if !ok {
			continue
		}
		d.Region = region
		out = append(out, d)
	}
	return out
}
