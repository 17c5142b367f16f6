package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkTarget_DefinitionID(t *testing.T) {
	raw := `{"link": {
		"content": [{"text": "cyclic group"}],
		"target": {"definition_id": {"term_id": "group_theory.def.cyclic_group", "theory_context": "GroupTheory"}},
		"tooltip": "jump to definition"
	}}`

	var seg RichTextSegment
	require.NoError(t, json.Unmarshal([]byte(raw), &seg))

	require.NotNil(t, seg.Link)
	require.NotNil(t, seg.Link.Target.DefinitionID)
	assert.Equal(t, "group_theory.def.cyclic_group", seg.Link.Target.DefinitionID.TermID)
	assert.Equal(t, "GroupTheory", seg.Link.Target.DefinitionID.TheoryContext)
	assert.Equal(t, "cyclic group", seg.PlainText())
}

func TestLinkTarget_AllKnownVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		got  func(lt LinkTarget) bool
	}{
		{"url", `{"url": "https://example.org"}`, func(lt LinkTarget) bool { return lt.URL != nil && *lt.URL == "https://example.org" }},
		{"internal_page", `{"internal_page_id": "about"}`, func(lt LinkTarget) bool { return lt.InternalPageID != nil }},
		{"definition_aspect", `{"definition_aspect": {"term_id": "t", "theory_context": "T", "aspect": "commutativity"}}`, func(lt LinkTarget) bool {
			return lt.DefinitionAspect != nil && lt.DefinitionAspect.Aspect == "commutativity"
		}},
		{"theorem", `{"theorem_id": {"theorem_id": "lagrange", "theory_context": "GroupTheory"}}`, func(lt LinkTarget) bool {
			return lt.TheoremID != nil && lt.TheoremID.TheoremID == "lagrange"
		}},
		{"glossary", `{"glossary_term": "homomorphism"}`, func(lt LinkTarget) bool { return lt.GlossaryTerm != nil }},
		{"interactive", `{"interactive_element_id": "slider-1"}`, func(lt LinkTarget) bool { return lt.InteractiveElementID != nil }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var lt LinkTarget
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &lt))
			assert.True(t, tc.got(lt))
		})
	}
}

func TestLinkTarget_UnknownVariantPreserved(t *testing.T) {
	raw := `{"hyperspace_jump": {"coords": [1, 2]}}`

	var lt LinkTarget
	require.NoError(t, json.Unmarshal([]byte(raw), &lt))
	require.NotNil(t, lt.Unrecognized)
	assert.Equal(t, "hyperspace_jump", lt.Unrecognized.Tag)

	out, err := json.Marshal(lt)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestRichTextSegment_StyledAndFootnote(t *testing.T) {
	raw := `{"styled_text": {"content": [{"text": "abelian"}], "styles": ["bold"]}}`
	var seg RichTextSegment
	require.NoError(t, json.Unmarshal([]byte(raw), &seg))
	require.NotNil(t, seg.Styled)
	assert.Equal(t, []string{"bold"}, seg.Styled.Styles)
	assert.Equal(t, "abelian", seg.PlainText())

	raw = `{"footnote_reference": {"id": "fn3"}}`
	var fn RichTextSegment
	require.NoError(t, json.Unmarshal([]byte(raw), &fn))
	require.NotNil(t, fn.Footnote)
	assert.Equal(t, "fn3", fn.Footnote.ID)
	assert.Equal(t, "", fn.PlainText())
}
