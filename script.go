package paperdoll

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// scriptStep represents a single action in an equip script.
type scriptStep struct {
	Action string   `json:"action"`
	Key    string   `json:"key,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Layer  string   `json:"layer,omitempty"`
	Delta  int      `json:"delta,omitempty"`
	Frames int      `json:"frames,omitempty"`
}

// equipScript is the top-level JSON structure for an equip script.
type equipScript struct {
	Steps []scriptStep `json:"steps"`
}

// EquipScript sequences equip actions across frames, one step per Step call.
// It drives demos and automated previews:
//
//	{"steps": [
//		{"action": "defaults"},
//		{"action": "equip", "key": "04lwr1/pants/01"},
//		{"action": "wait", "frames": 30},
//		{"action": "next", "layer": "13hair"},
//		{"action": "palette", "layer": "13hair", "delta": 1}
//	]}
//
// Actions: equip (key), keys (keys), unequip (layer), next and prev (layer),
// defaults, palette (delta, optional layer; no layer means the global
// selection) and wait (frames).
type EquipScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadEquipScript parses a JSON equip script. Layer codes are validated up
// front so a typo fails at load time rather than mid-run.
func LoadEquipScript(jsonData []byte) (*EquipScript, error) {
	var script equipScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("paperdoll: parse equip script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("paperdoll: parse equip script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "equip":
			if st.Key == "" {
				return nil, fmt.Errorf("paperdoll: equip script step %d: equip needs a key", i)
			}
		case "unequip", "next", "prev":
			if _, ok := ParseLayerCode(st.Layer); !ok {
				return nil, fmt.Errorf("paperdoll: equip script step %d: unknown layer %q", i, st.Layer)
			}
		case "palette":
			if st.Layer != "" {
				if _, ok := ParseLayerCode(st.Layer); !ok {
					return nil, fmt.Errorf("paperdoll: equip script step %d: unknown layer %q", i, st.Layer)
				}
			}
		case "keys", "defaults", "wait":
		default:
			return nil, fmt.Errorf("paperdoll: equip script step %d: unknown action %q", i, st.Action)
		}
	}
	return &EquipScript{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *EquipScript) Done() bool {
	return r.done
}

// Step advances the script by one frame. It waits for the studio's first
// snapshot before running anything.
func (r *EquipScript) Step(s *Studio) {
	if r.done || !s.Loaded() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	layer, _ := ParseLayerCode(st.Layer)
	switch st.Action {
	case "equip":
		if !s.EquipKey(st.Key) {
			logger.Debug("equip script: unknown part", zap.String("key", st.Key))
		}
	case "keys":
		s.SetPendingKeys(st.Keys)
	case "unequip":
		s.Unequip(layer)
	case "next":
		s.Cycle(layer, 1)
	case "prev":
		s.Cycle(layer, -1)
	case "defaults":
		s.Equipped().SetDefaults(s.Catalog())
	case "palette":
		delta := st.Delta
		if delta == 0 {
			delta = 1
		}
		if st.Layer == "" {
			s.CycleGlobalPalette(delta)
		} else {
			s.CycleLayerPalette(layer, delta)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
