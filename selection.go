package paperdoll

// PaletteSelection picks a palette image and a variant band within it.
type PaletteSelection struct {
	Palette int
	Variant int
}

// PaletteSelections holds the global selection and per-layer overrides. A
// layer without an override inherits the global selection.
type PaletteSelections struct {
	global    PaletteSelection
	hasGlobal bool
	byLayer   map[LayerCode]PaletteSelection
}

// NewPaletteSelections returns selections with nothing chosen.
func NewPaletteSelections() *PaletteSelections {
	return &PaletteSelections{byLayer: make(map[LayerCode]PaletteSelection)}
}

// Global returns the global selection clamped to paletteCount. There is none
// when nothing was chosen or no palettes exist.
func (p *PaletteSelections) Global(paletteCount int) (PaletteSelection, bool) {
	if !p.hasGlobal || paletteCount <= 0 {
		return PaletteSelection{}, false
	}
	sel := p.global
	sel.Palette = min(max(sel.Palette, 0), paletteCount-1)
	return sel, true
}

// SetGlobal replaces the global selection.
func (p *PaletteSelections) SetGlobal(sel PaletteSelection) {
	p.global = sel
	p.hasGlobal = true
}

// ClearGlobal removes the global selection.
func (p *PaletteSelections) ClearGlobal() {
	p.hasGlobal = false
}

// Layer returns the override for l, if any.
func (p *PaletteSelections) Layer(l LayerCode) (PaletteSelection, bool) {
	sel, ok := p.byLayer[l]
	return sel, ok
}

// SetLayer overrides the selection for l.
func (p *PaletteSelections) SetLayer(l LayerCode, sel PaletteSelection) {
	if p.byLayer == nil {
		p.byLayer = make(map[LayerCode]PaletteSelection)
	}
	p.byLayer[l] = sel
}

// ClearLayer makes l inherit the global selection again.
func (p *PaletteSelections) ClearLayer(l LayerCode) {
	delete(p.byLayer, l)
}

// Effective returns the selection in force for l and whether it is a
// layer override.
func (p *PaletteSelections) Effective(l LayerCode, paletteCount int) (sel PaletteSelection, local, ok bool) {
	if sel, ok := p.byLayer[l]; ok {
		return sel, true, true
	}
	sel, ok = p.Global(paletteCount)
	return sel, false, ok
}

// CycleSelection steps cur by one variant in the direction of delta. Past the
// last variant it moves to the first variant of the next palette; before the
// first variant it moves to the last variant of the previous palette.
// variants reports the band count of a palette index.
func CycleSelection(cur PaletteSelection, delta, paletteCount int, variants func(palette int) int) PaletteSelection {
	if paletteCount <= 0 {
		return PaletteSelection{}
	}
	palette := min(max(cur.Palette, 0), paletteCount-1)
	count := max(variants(palette), 1)
	variant := min(max(cur.Variant, 0), count-1)

	if delta >= 0 {
		if variant+1 < count {
			return PaletteSelection{Palette: palette, Variant: variant + 1}
		}
		return PaletteSelection{Palette: (palette + 1) % paletteCount}
	}
	if variant > 0 {
		return PaletteSelection{Palette: palette, Variant: variant - 1}
	}
	prev := (palette + paletteCount - 1) % paletteCount
	return PaletteSelection{Palette: prev, Variant: max(variants(prev), 1) - 1}
}
