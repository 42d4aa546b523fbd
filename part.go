package paperdoll

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// PartID is the identity encoded in a part sheet filename:
//
//	fbas_<layercode>_<name...>_<vv>[<p>][_e].png
//
// Palette is 0 when the version token carries no suffix letter.
type PartID struct {
	Base    BaseType
	Layer   LayerCode
	Name    string
	Version uint8
	Palette byte
	Special Special
}

// HasPalette reports whether the part carries a palette suffix letter.
func (id PartID) HasPalette() bool {
	return id.Palette != 0
}

// ParseError describes why a filename was rejected.
type ParseError struct {
	File   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return e.Reason
	}
	return e.File + ": " + e.Reason
}

// IsPaletteSuffix reports whether c is one of the legal palette letters.
func IsPaletteSuffix(c byte) bool {
	switch c {
	case 'a', 'b', 'c', 'd', 'f':
		return true
	}
	return false
}

// ParsePartFilename decodes a part sheet file name (not a path). Malformed
// names return a *ParseError; it never panics.
func ParsePartFilename(fileName string) (PartID, error) {
	fail := func(format string, args ...any) (PartID, error) {
		return PartID{}, &ParseError{File: fileName, Reason: fmt.Sprintf(format, args...)}
	}

	ext := filepath.Ext(fileName)
	if ext == "" {
		return fail("missing extension")
	}
	if !strings.EqualFold(ext, ".png") {
		return fail("not a png file")
	}
	stem := strings.TrimSuffix(fileName, ext)
	if stem == "" {
		return fail("missing file stem")
	}

	segs := strings.Split(stem, "_")
	if len(segs) < 4 {
		return fail("expected at least 4 filename segments, got %d", len(segs))
	}
	if segs[0] != baseToken {
		return fail("base prefix must be %s", baseToken)
	}
	layer, ok := ParseLayerCode(segs[1])
	if !ok {
		return fail("unknown layer code: %s", segs[1])
	}

	end := len(segs)
	special := SpecialNone
	if segs[end-1] == specialToken {
		special = SpecialExclusive
		end--
	}
	if end < 4 {
		return fail("missing name/version segments")
	}

	token := segs[end-1]
	name := strings.Join(segs[2:end-1], "_")
	if name == "" {
		return fail("part name is empty")
	}

	if len(token) < 2 || !isDigit(token[0]) || !isDigit(token[1]) {
		return fail("version token must start with two digits: %q", token)
	}
	if len(token) > 3 {
		return fail("version token must be 2 digits with optional palette suffix: %q", token)
	}
	v, err := strconv.ParseUint(token[:2], 10, 8)
	if err != nil {
		return fail("invalid version digits: %q", token[:2])
	}
	version := uint8(v)

	var palette byte
	if len(token) == 3 {
		palette = toLowerASCII(token[2])
		if !IsPaletteSuffix(palette) {
			return fail("invalid palette suffix: %c", palette)
		}
		if version != 0 {
			return fail("palette suffix is only valid on version 00")
		}
	}

	return PartID{
		Base:    BaseFarmer,
		Layer:   layer,
		Name:    name,
		Version: version,
		Palette: palette,
		Special: special,
	}, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// PartKey formats the stable catalog key for id:
// "<layer>/<name>/<vv><p?>[/e]".
func PartKey(id PartID) string {
	var b strings.Builder
	b.Grow(len(id.Name) + 16)
	b.WriteString(id.Layer.String())
	b.WriteByte('/')
	b.WriteString(id.Name)
	b.WriteByte('/')
	if id.Version < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(int(id.Version)))
	if id.HasPalette() {
		b.WriteByte(id.Palette)
	}
	if id.Special == SpecialExclusive {
		b.WriteString("/" + specialToken)
	}
	return b.String()
}

// OutfitSetKey groups the layer variants of one designed outfit.
type OutfitSetKey struct {
	Name    string
	Version uint8
	Palette byte
}

// PartDef is one catalog entry.
type PartDef struct {
	Key  string
	ID   PartID
	Slot Slot

	// ImagePath is relative to Root and always uses forward slashes.
	ImagePath string
	// Root is the asset root the part was discovered under.
	Root string
}

// NewPartDef derives the key and slot for id.
func NewPartDef(id PartID, root, imagePath string) PartDef {
	return PartDef{
		Key:       PartKey(id),
		ID:        id,
		Slot:      SlotForLayer(id.Layer),
		ImagePath: imagePath,
		Root:      root,
	}
}

// SetKey returns the outfit set this part belongs to.
func (p *PartDef) SetKey() OutfitSetKey {
	return OutfitSetKey{Name: p.ID.Name, Version: p.ID.Version, Palette: p.ID.Palette}
}

// FullPath joins Root and ImagePath into an OS path.
func (p *PartDef) FullPath() string {
	return joinAssetPath(p.Root, p.ImagePath)
}

// ShortName is a compact label such as "headscarf 00b e".
func (p *PartDef) ShortName() string {
	s := fmt.Sprintf("%s %02d", p.ID.Name, p.ID.Version)
	if p.ID.HasPalette() {
		s += string(p.ID.Palette)
	}
	if p.ID.Special == SpecialExclusive {
		s += " e"
	}
	return s
}

func joinAssetPath(root, rel string) string {
	if root == "" {
		return filepath.FromSlash(rel)
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}
