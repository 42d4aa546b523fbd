package paperdoll

// Equipped is the "what is worn" state: at most one part index per layer.
// Indexes refer to the catalog passed to each call; after a rescan, carry a
// selection across with Keys on the old catalog and ApplyKeys on the new one.
type Equipped struct {
	byLayer map[LayerCode]int
}

// NewEquipped returns an empty selection.
func NewEquipped() *Equipped {
	return &Equipped{byLayer: make(map[LayerCode]int, LayerCount)}
}

func (e *Equipped) init() {
	if e.byLayer == nil {
		e.byLayer = make(map[LayerCode]int, LayerCount)
	}
}

// Clear unequips everything.
func (e *Equipped) Clear() {
	clear(e.byLayer)
}

// Len returns the number of occupied layers.
func (e *Equipped) Len() int {
	return len(e.byLayer)
}

// At returns the part index worn on layer l.
func (e *Equipped) At(l LayerCode) (int, bool) {
	i, ok := e.byLayer[l]
	return i, ok
}

// Layers returns a copy of the layer → part index map.
func (e *Equipped) Layers() map[LayerCode]int {
	out := make(map[LayerCode]int, len(e.byLayer))
	for l, i := range e.byLayer {
		out[l] = i
	}
	return out
}

// SetDefaults clears the selection and equips the first part (in browsing
// order) of each default layer: body, socks, footwear, lower, shirt, hair.
func (e *Equipped) SetDefaults(c *PartCatalog) {
	e.init()
	e.Clear()
	for _, l := range defaultLayers {
		if idx := c.LayerIndices(l); len(idx) > 0 {
			e.Equip(c, idx[0])
		}
	}
}

// Equip wears part index. Any worn part sharing its slot is removed first,
// whatever layer it sits on. If the part's outfit set is paired-required,
// every other member of the set is worn too; that expansion happens once and
// does not chase further pairings. A displaced member of another
// paired-required set takes the rest of its set with it. Out-of-range
// indexes are ignored.
func (e *Equipped) Equip(c *PartCatalog, index int) {
	part, ok := c.Part(index)
	if !ok {
		return
	}
	e.init()
	e.evictSlot(c, part.Slot)
	sk := part.SetKey()
	e.wear(c, part.ID.Layer, index, sk)

	if !c.PairedRequired(sk) {
		return
	}
	for _, member := range c.Set(sk) {
		if member == index {
			continue
		}
		if mp, ok := c.Part(member); ok {
			e.wear(c, mp.ID.Layer, member, sk)
		}
	}
}

func (e *Equipped) wear(c *PartCatalog, l LayerCode, index int, sk OutfitSetKey) {
	if cur, ok := e.byLayer[l]; ok {
		if worn, ok := c.Part(cur); !ok || worn.SetKey() != sk {
			e.takeOff(c, l)
		}
	}
	e.byLayer[l] = index
}

func (e *Equipped) evictSlot(c *PartCatalog, slot Slot) {
	if slot == SlotNone {
		return
	}
	for l, i := range e.byLayer {
		if worn, ok := c.Part(i); ok && worn.Slot == slot {
			e.takeOff(c, l)
		}
	}
}

// takeOff empties layer l. A member of a paired-required set comes off
// together with every other worn member of that set.
func (e *Equipped) takeOff(c *PartCatalog, l LayerCode) {
	i, ok := e.byLayer[l]
	if !ok {
		return
	}
	delete(e.byLayer, l)
	part, ok := c.Part(i)
	if !ok {
		return
	}
	sk := part.SetKey()
	if !c.PairedRequired(sk) {
		return
	}
	for wl, wi := range e.byLayer {
		if wp, ok := c.Part(wi); ok && wp.SetKey() == sk {
			delete(e.byLayer, wl)
		}
	}
}

// Unequip empties layer l. Paired-required sets come off as a unit, so the
// selection always survives a Keys/ApplyKeys round trip.
func (e *Equipped) Unequip(c *PartCatalog, l LayerCode) {
	e.takeOff(c, l)
}

// ApplyKeys replaces the selection with the parts named by keys. Unknown keys
// are dropped silently so stale saved outfits still load.
func (e *Equipped) ApplyKeys(c *PartCatalog, keys []string) {
	e.init()
	e.Clear()
	for _, k := range keys {
		if i, ok := c.IndexByKey(k); ok {
			e.Equip(c, i)
		}
	}
}

// Keys returns the part keys of the worn parts in layer order.
func (e *Equipped) Keys(c *PartCatalog) []string {
	keys := make([]string, 0, len(e.byLayer))
	for _, l := range AllLayers {
		i, ok := e.byLayer[l]
		if !ok {
			continue
		}
		if p, ok := c.Part(i); ok {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// VisibleLayers derives the render view: the worn parts minus hair when an
// exclusive hat is worn, or when exclusive hair meets any hat. The selection
// itself is not modified.
func (e *Equipped) VisibleLayers(c *PartCatalog) map[LayerCode]int {
	out := e.Layers()
	hatIdx, hasHat := out[Head14]
	hairIdx, hasHair := out[Hair13]
	if !hasHair {
		return out
	}
	var hat, hair *PartDef
	if hasHat {
		hat, _ = c.Part(hatIdx)
	}
	hair, _ = c.Part(hairIdx)

	hatHidesHair := hat != nil && hat.ID.Special == SpecialExclusive
	hairRefusesHat := hat != nil && hair != nil && hair.ID.Special == SpecialExclusive
	if hatHidesHair || hairRefusesHat {
		delete(out, Hair13)
	}
	return out
}

// Cycle steps layer l through the catalog's browsing order. Forward from an
// empty layer selects the first part; forward from the last part empties the
// layer. Backward mirrors this. It returns the newly worn index, or false when
// the layer was emptied or has no parts.
func (e *Equipped) Cycle(c *PartCatalog, l LayerCode, delta int) (int, bool) {
	indices := c.LayerIndices(l)
	if len(indices) == 0 {
		return 0, false
	}
	pos := -1
	if cur, ok := e.byLayer[l]; ok {
		for i, idx := range indices {
			if idx == cur {
				pos = i
				break
			}
		}
	}

	next := -1
	if delta >= 0 {
		switch {
		case pos < 0:
			next = 0
		case pos+1 < len(indices):
			next = pos + 1
		}
	} else {
		switch {
		case pos < 0:
			next = len(indices) - 1
		case pos > 0:
			next = pos - 1
		}
	}
	if next < 0 {
		e.Unequip(c, l)
		return 0, false
	}
	e.Equip(c, indices[next])
	return indices[next], true
}
