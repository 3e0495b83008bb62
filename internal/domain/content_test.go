package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContentCarriesAllSections(t *testing.T) {
	c := NewContent()
	require.Len(t, c, 8)
	for _, s := range Sections() {
		v, ok := c[s]
		assert.True(t, ok, "section %s missing", s)
		assert.Nil(t, v)
	}
}

func TestMergeContentAbsentKeyPreserves(t *testing.T) {
	existing := NewContent()
	existing[SectionGoal] = "Reduce homelessness"
	existing[SectionAim] = "Shelter access"

	merged := MergeContent(existing, ContentPatch{SectionAim: "Stable housing"})

	assert.Equal(t, "Reduce homelessness", merged[SectionGoal])
	assert.Equal(t, "Stable housing", merged[SectionAim])
	assert.Nil(t, merged[SectionOutcomes])
}

func TestMergeContentExplicitNilOverwrites(t *testing.T) {
	existing := NewContent()
	existing[SectionGoal] = "G1"

	// Key present with nil clears the stored value; this is presence, not a
	// nil check.
	merged := MergeContent(existing, ContentPatch{SectionGoal: nil})

	v, ok := merged[SectionGoal]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestMergeContentNilPatchKeepsEverything(t *testing.T) {
	existing := NewContent()
	existing[SectionActivities] = []any{"workshops", "outreach"}

	merged := MergeContent(existing, nil)

	assert.Equal(t, existing[SectionActivities], merged[SectionActivities])
	assert.Len(t, merged, 8)
}

func TestContentPatchFromMapDropsUnknownKeys(t *testing.T) {
	p := ContentPatchFromMap(map[string]any{
		"goal":       "G",
		"irrelevant": "x",
		"outcomes":   nil,
	})
	require.Len(t, p, 2)
	assert.Equal(t, "G", p[SectionGoal])
	v, ok := p[SectionOutcomes]
	assert.True(t, ok)
	assert.Nil(t, v)
}
