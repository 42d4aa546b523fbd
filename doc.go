// Package paperdoll is the asset core of a layered sprite editor built on
// [Ebitengine].
//
// A character is drawn as a stack of 16 fixed layers (body, socks, footwear,
// lower garments, shirt, hair, hat and so on). Each part is a sprite sheet
// whose file name encodes its identity:
//
//	fbas_04lwr1_pants_00a.png
//	│    │      │     │ └ palette suffix (a, b, c, d or f)
//	│    │      │     └ two-digit version
//	│    │      └ part name
//	│    └ layer code
//	└ base type (farmer)
//
// # Quick start
//
// The simplest way to get started is a [Studio], which scans the asset roots,
// equips the default outfit and hands out per-cell draw plans:
//
//	studio := paperdoll.NewStudio(paperdoll.DefaultConfig(), nil)
//	studio.Rescan()
//	studio.EquipKey("14head/cap/01")
//	for _, d := range studio.Draws(0) {
//		// draw d.Sheet at d.Region
//	}
//
// # Catalogs
//
// [ScanParts] walks every root and builds an immutable [PartCatalog].
// Malformed file names never abort a scan; they are listed in the
// [ScanReport]. [ScanPalettes] does the same for ramp reference images under
// any "palettes" folder.
//
// # Equipping
//
// [Equipped] holds at most one part per layer. Lower garments, footwear and
// head wear each form a slot spanning several layers; equipping into a slot
// removes whatever else occupies it. Outfit sets that include both
// underwear and neckwear are always worn together. [Equipped.VisibleLayers]
// hides hair under exclusive hats without touching the selection.
//
// # Recoloring
//
// Parts with a palette suffix are recolored by building a [RemapTable] from
// the base ramp images to the chosen variant band of a reference ramp image.
// A [Remapper] memoizes tables and recolored sheets; if anything is missing,
// the part renders with its original colors.
//
// [Ebitengine]: https://ebitengine.org
package paperdoll
