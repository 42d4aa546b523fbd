package paperdoll

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultOutfitPath is where outfits live inside a host's save document.
const DefaultOutfitPath = "paperdoll.equipped"

// ReadOutfitKeys returns the part keys stored as a string array at path in
// a JSON document. A missing path yields no keys and false, which callers
// pass to SetPendingKeys to get the defaults.
func ReadOutfitKeys(doc []byte, path string) ([]string, bool) {
	res := gjson.GetBytes(doc, path)
	if !res.Exists() || !res.IsArray() {
		return nil, false
	}
	var keys []string
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String && v.Str != "" {
			keys = append(keys, v.Str)
		}
		return true
	})
	return keys, true
}

// WriteOutfitKeys stores keys as a string array at path, leaving the rest of
// doc untouched. An empty doc starts a new object.
func WriteOutfitKeys(doc []byte, path string, keys []string) ([]byte, error) {
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	if keys == nil {
		keys = []string{}
	}
	out, err := sjson.SetBytes(doc, path, keys)
	if err != nil {
		return nil, fmt.Errorf("paperdoll: write outfit at %q: %w", path, err)
	}
	return out, nil
}
