package domain

import "fmt"

// ColorPair is the display configuration for one section.
type ColorPair struct {
	ShapeColor string `json:"shapeColor" bson:"shapeColor"`
	TextColor  string `json:"textColor" bson:"textColor"`
}

// ColorConfig maps every section to its ColorPair. Stored configs always carry
// all eight sections; unset sections hold the zero pair.
type ColorConfig map[Section]ColorPair

// ColorPatch is a partial per-section color update. Nil fields were absent from
// the payload and keep the stored value.
type ColorPatch struct {
	ShapeColor *string
	TextColor  *string
}

// NewColorConfig returns a ColorConfig with every section present and zeroed.
func NewColorConfig() ColorConfig {
	cc := make(ColorConfig, len(Sections()))
	for _, s := range Sections() {
		cc[s] = ColorPair{}
	}
	return cc
}

// ValidateColorConfig checks a raw decoded colorConfig object: every key naming
// a known section must map to a non-null object carrying both shapeColor and
// textColor (empty strings are fine). Unknown keys are ignored.
func ValidateColorConfig(raw map[string]any) error {
	if raw == nil {
		return fmt.Errorf("colorConfig must be an object")
	}
	for k, v := range raw {
		s, ok := ParseSection(k)
		if !ok {
			continue
		}
		pair, ok := v.(map[string]any)
		if !ok || pair == nil {
			return fmt.Errorf("colorConfig.%s must be an object", s)
		}
		if _, ok := pair["shapeColor"]; !ok {
			return fmt.Errorf("colorConfig.%s is missing shapeColor", s)
		}
		if _, ok := pair["textColor"]; !ok {
			return fmt.Errorf("colorConfig.%s is missing textColor", s)
		}
	}
	return nil
}

// ColorConfigFromMap builds a full ColorConfig from a validated raw object,
// zero-filling sections the caller did not supply.
func ColorConfigFromMap(raw map[string]any) ColorConfig {
	cc := NewColorConfig()
	for k, v := range raw {
		s, ok := ParseSection(k)
		if !ok {
			continue
		}
		pair, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var cp ColorPair
		if sc, ok := pair["shapeColor"].(string); ok {
			cp.ShapeColor = sc
		}
		if tc, ok := pair["textColor"].(string); ok {
			cp.TextColor = tc
		}
		cc[s] = cp
	}
	return cc
}

// ColorPatchesFromMap extracts per-section patches from a raw decoded object,
// keeping field-level presence. Unknown sections are dropped.
func ColorPatchesFromMap(raw map[string]any) map[Section]ColorPatch {
	if raw == nil {
		return nil
	}
	patches := make(map[Section]ColorPatch)
	for k, v := range raw {
		s, ok := ParseSection(k)
		if !ok {
			continue
		}
		pair, ok := v.(map[string]any)
		if !ok || pair == nil {
			continue
		}
		var p ColorPatch
		if sc, ok := pair["shapeColor"]; ok {
			str, _ := sc.(string)
			p.ShapeColor = &str
		}
		if tc, ok := pair["textColor"]; ok {
			str, _ := tc.(string)
			p.TextColor = &str
		}
		patches[s] = p
	}
	return patches
}

// MergeColors computes the next color config per section and per field:
// zero default, overlaid by the stored pair, overlaid by patch fields that are
// present. A patch supplying only shapeColor keeps the stored textColor.
func MergeColors(existing ColorConfig, patches map[Section]ColorPatch) ColorConfig {
	merged := make(ColorConfig, len(Sections()))
	for _, s := range Sections() {
		pair := ColorPair{}
		if ex, ok := existing[s]; ok {
			pair = ex
		}
		if p, ok := patches[s]; ok {
			if p.ShapeColor != nil {
				pair.ShapeColor = *p.ShapeColor
			}
			if p.TextColor != nil {
				pair.TextColor = *p.TextColor
			}
		}
		merged[s] = pair
	}
	return merged
}
