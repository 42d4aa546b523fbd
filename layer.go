package paperdoll

// BaseType identifies the sprite family a part belongs to. Only the farmer
// base ("fbas") exists today.
type BaseType uint8

const (
	BaseFarmer BaseType = iota // "fbas" sheets
)

// baseToken is the first filename segment of every part sheet.
const baseToken = "fbas"

// LayerCode is one of the 16 z-ordered paper-doll layers. The numeric value
// is the draw order: lower values render underneath higher ones.
type LayerCode uint8

const (
	Undr00 LayerCode = iota // undergarment / cloak back
	Body01                  // body
	Sock02                  // socks
	Fot103                  // footwear (low)
	Lwr104                  // lower garment 1
	Shrt05                  // shirt
	Lwr206                  // lower garment 2
	Fot207                  // footwear (high)
	Lwr308                  // lower garment 3
	Hand09                  // hand items
	Outr10                  // outerwear
	Neck11                  // neck / cloak front
	Face12                  // face
	Hair13                  // hair
	Head14                  // headwear
	Over15                  // overlay
)

// LayerCount is the number of layers.
const LayerCount = 16

// AllLayers lists every layer in draw order.
var AllLayers = [LayerCount]LayerCode{
	Undr00, Body01, Sock02, Fot103, Lwr104, Shrt05, Lwr206, Fot207,
	Lwr308, Hand09, Outr10, Neck11, Face12, Hair13, Head14, Over15,
}

var layerCodes = [LayerCount]string{
	"00undr", "01body", "02sock", "03fot1", "04lwr1", "05shrt", "06lwr2", "07fot2",
	"08lwr3", "09hand", "10outr", "11neck", "12face", "13hair", "14head", "15over",
}

var layerByCode = func() map[string]LayerCode {
	m := make(map[string]LayerCode, LayerCount)
	for i, code := range layerCodes {
		m[code] = LayerCode(i)
	}
	return m
}()

// String returns the two-digit prefixed code used in filenames, e.g. "01body".
func (l LayerCode) String() string {
	if int(l) < LayerCount {
		return layerCodes[l]
	}
	return "invalid"
}

// Valid reports whether l names one of the 16 layers.
func (l LayerCode) Valid() bool {
	return int(l) < LayerCount
}

// ParseLayerCode returns the layer for a filename code such as "14head".
func ParseLayerCode(code string) (LayerCode, bool) {
	l, ok := layerByCode[code]
	return l, ok
}

// Slot is a mutual-exclusion group. At most one equipped part may occupy a
// slot, even when the slot spans several layers.
type Slot uint8

const (
	SlotNone     Slot = iota // unlimited co-equip
	SlotLower                // 04lwr1, 06lwr2, 08lwr3
	SlotFootwear             // 03fot1, 07fot2
	SlotHead                 // 14head
)

func (s Slot) String() string {
	switch s {
	case SlotLower:
		return "lower"
	case SlotFootwear:
		return "footwear"
	case SlotHead:
		return "head"
	default:
		return "none"
	}
}

var slotByLayer = [LayerCount]Slot{
	Fot103: SlotFootwear,
	Lwr104: SlotLower,
	Lwr206: SlotLower,
	Fot207: SlotFootwear,
	Lwr308: SlotLower,
	Head14: SlotHead,
}

// SlotForLayer returns the exclusion slot a layer belongs to, or SlotNone.
func SlotForLayer(l LayerCode) Slot {
	if !l.Valid() {
		return SlotNone
	}
	return slotByLayer[l]
}

// Special is an optional marker carried by the trailing "_e" filename segment.
type Special uint8

const (
	SpecialNone      Special = iota
	SpecialExclusive         // "_e": a hat hides hair, or hair refuses any hat
)

// specialToken is the literal trailing segment for SpecialExclusive.
const specialToken = "e"

// defaultLayers is the canonical minimal outfit seeded by Equipped.SetDefaults.
var defaultLayers = [...]LayerCode{Body01, Sock02, Fot103, Lwr104, Shrt05, Hair13}
