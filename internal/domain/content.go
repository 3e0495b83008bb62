package domain

// Content holds the value of every section. A nil value means the section was
// explicitly cleared or never filled in; Content from the store always carries
// all eight keys.
type Content map[Section]any

// ContentPatch is a partial content update. Presence of a key decides whether
// the section is touched: a key mapped to nil overwrites the stored value with
// null, an absent key leaves the stored value alone. This is key-existence
// semantics, not a nil check.
type ContentPatch map[Section]any

// NewContent returns a Content with every section present and nil.
func NewContent() Content {
	c := make(Content, len(Sections()))
	for _, s := range Sections() {
		c[s] = nil
	}
	return c
}

// ContentPatchFromMap filters a raw decoded JSON object down to known sections,
// preserving key presence. Unknown keys are dropped.
func ContentPatchFromMap(raw map[string]any) ContentPatch {
	if raw == nil {
		return nil
	}
	p := make(ContentPatch)
	for k, v := range raw {
		if s, ok := ParseSection(k); ok {
			p[s] = v
		}
	}
	return p
}

// MergeContent computes the next content document: for each section, the patch
// value wins when the key is present (even when nil), otherwise the existing
// value is kept. The result always carries all eight sections.
func MergeContent(existing Content, patch ContentPatch) Content {
	merged := make(Content, len(Sections()))
	for _, s := range Sections() {
		if v, ok := patch[s]; ok {
			merged[s] = v
			continue
		}
		if v, ok := existing[s]; ok {
			merged[s] = v
			continue
		}
		merged[s] = nil
	}
	return merged
}
