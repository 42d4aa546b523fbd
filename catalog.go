package paperdoll

import (
	"cmp"
	"slices"
	"strings"
)

// PartCatalog owns every discovered part plus the indexes derived from them.
// The indexes are built together by BuildCatalog and never updated in place;
// a rescan produces a new catalog.
type PartCatalog struct {
	parts   []PartDef
	byKey   map[string]int
	byLayer [LayerCount][]int
	sets    map[OutfitSetKey][]int
	paired  map[OutfitSetKey]bool
}

// BuildCatalog indexes parts. Parts sharing a key are expected to have been
// removed by the caller; if one slips through, the first index keeps the key.
func BuildCatalog(parts []PartDef) *PartCatalog {
	c := &PartCatalog{
		parts:  parts,
		byKey:  make(map[string]int, len(parts)),
		sets:   make(map[OutfitSetKey][]int),
		paired: make(map[OutfitSetKey]bool),
	}
	for i := range c.parts {
		p := &c.parts[i]
		if _, dup := c.byKey[p.Key]; !dup {
			c.byKey[p.Key] = i
		}
		c.byLayer[p.ID.Layer] = append(c.byLayer[p.ID.Layer], i)
		sk := p.SetKey()
		c.sets[sk] = append(c.sets[sk], i)
	}
	for l := range c.byLayer {
		slices.SortStableFunc(c.byLayer[l], func(a, b int) int {
			return comparePartIDs(&c.parts[a].ID, &c.parts[b].ID)
		})
	}
	for sk, members := range c.sets {
		var hasUnder, hasNeck bool
		for _, i := range members {
			switch c.parts[i].ID.Layer {
			case Undr00:
				hasUnder = true
			case Neck11:
				hasNeck = true
			}
		}
		if hasUnder && hasNeck {
			c.paired[sk] = true
		}
	}
	return c
}

// comparePartIDs orders parts for browsing: name, version, palette, special.
func comparePartIDs(a, b *PartID) int {
	return cmp.Or(
		cmp.Compare(a.Base, b.Base),
		strings.Compare(a.Name, b.Name),
		cmp.Compare(a.Version, b.Version),
		cmp.Compare(a.Palette, b.Palette),
		cmp.Compare(a.Special, b.Special),
	)
}

// Len returns the number of parts.
func (c *PartCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.parts)
}

// Parts returns all parts in discovery order. The returned slice MUST NOT be mutated.
func (c *PartCatalog) Parts() []PartDef {
	if c == nil {
		return nil
	}
	return c.parts
}

// Part returns the part at index i.
func (c *PartCatalog) Part(i int) (*PartDef, bool) {
	if c == nil || i < 0 || i >= len(c.parts) {
		return nil, false
	}
	return &c.parts[i], true
}

// IndexByKey resolves a part key.
func (c *PartCatalog) IndexByKey(key string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.byKey[key]
	return i, ok
}

// LayerIndices returns the parts of a layer in browsing order. The returned
// slice MUST NOT be mutated.
func (c *PartCatalog) LayerIndices(l LayerCode) []int {
	if c == nil || !l.Valid() {
		return nil
	}
	return c.byLayer[l]
}

// Set returns the members of an outfit set.
func (c *PartCatalog) Set(sk OutfitSetKey) []int {
	if c == nil {
		return nil
	}
	return c.sets[sk]
}

// SetCount returns the number of distinct outfit sets.
func (c *PartCatalog) SetCount() int {
	if c == nil {
		return 0
	}
	return len(c.sets)
}

// PairedRequired reports whether the set spans both the undergarment and the
// neck layer and must therefore be equipped as a unit.
func (c *PartCatalog) PairedRequired(sk OutfitSetKey) bool {
	if c == nil {
		return false
	}
	return c.paired[sk]
}

// PairedSets returns every paired-required set, sorted for stable output.
func (c *PartCatalog) PairedSets() []OutfitSetKey {
	if c == nil {
		return nil
	}
	out := make([]OutfitSetKey, 0, len(c.paired))
	for sk := range c.paired {
		out = append(out, sk)
	}
	slices.SortFunc(out, func(a, b OutfitSetKey) int {
		return cmp.Or(
			strings.Compare(a.Name, b.Name),
			cmp.Compare(a.Version, b.Version),
			cmp.Compare(a.Palette, b.Palette),
		)
	})
	return out
}
