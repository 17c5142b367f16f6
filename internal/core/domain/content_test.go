package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentDocument_DecodePaper(t *testing.T) {
	raw := `{
		"id": "group_theory.def.generic_group",
		"content_type": {
			"scientific_paper": {
				"structure": [
					{
						"id": "intro",
						"title": [{"text": "Groups"}],
						"content": [
							{"paragraph": [
								{"text": "A group is a set with "},
								{"math_inline": "\\circ"}
							]},
							{"math_block": {"expression": "a \\circ b", "label": "eq1"}}
						],
						"metadata": [{"key": "difficulty", "value": "intro"}]
					}
				]
			}
		}
	}`

	var doc ContentDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "group_theory.def.generic_group", doc.ID)
	require.NotNil(t, doc.ContentType.ScientificPaper)

	sections := doc.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "intro", sections[0].ID)
	assert.Equal(t, "Groups", plainText(sections[0].Title))
	require.Len(t, sections[0].Content, 2)
	assert.NotNil(t, sections[0].Content[0].Paragraph)
	require.NotNil(t, sections[0].Content[1].MathBlock)
	assert.Equal(t, "eq1", sections[0].Content[1].MathBlock.Label)
	assert.Equal(t, []MetadataPair{{Key: "difficulty", Value: "intro"}}, sections[0].Metadata)
}

func TestContentDocument_DecodeNestedSubSections(t *testing.T) {
	raw := `{
		"id": "t.doc",
		"content_type": {"lecture_notes": {"structure": [
			{"id": "outer", "content": [
				{"sub_section": {"id": "inner", "content": [
					{"structured_math": {"definition": {
						"term": [{"text": "cyclic group"}],
						"formal_term": "CyclicGroup",
						"properties": ["abelian"]
					}}}
				]}}
			]}
		]}}
	}`

	var doc ContentDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	sections := doc.Sections()
	require.Len(t, sections, 1)
	inner := sections[0].Content[0].SubSection
	require.NotNil(t, inner)
	assert.Equal(t, "inner", inner.ID)

	sm := inner.Content[0].StructuredMath
	require.NotNil(t, sm)
	require.NotNil(t, sm.Definition)
	assert.Equal(t, "CyclicGroup", sm.Definition.FormalTerm)
	assert.Equal(t, []string{"abelian"}, sm.Definition.Properties)
}

func TestSectionContentNode_UnknownTagBecomesUnrecognized(t *testing.T) {
	raw := `{"interactive_widget": {"widget_id": "cayley-table"}}`

	var node SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	require.NotNil(t, node.Unrecognized)
	assert.Equal(t, "interactive_widget", node.Unrecognized.Tag)
	assert.JSONEq(t, `{"widget_id": "cayley-table"}`, string(node.Unrecognized.Raw))
}

func TestSectionContentNode_UnrecognizedRoundTrips(t *testing.T) {
	raw := `{"hologram": {"depth": 3}}`

	var node SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))

	out, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestSectionContentNode_MultipleVariantKeysRejected(t *testing.T) {
	raw := `{"paragraph": [], "math_block": {"expression": "x"}}`

	var node SectionContentNode
	err := json.Unmarshal([]byte(raw), &node)
	assert.ErrorIs(t, err, ErrAmbiguousVariant)
}

func TestSectionContentNode_EmptyObjectRejected(t *testing.T) {
	var node SectionContentNode
	err := json.Unmarshal([]byte(`{}`), &node)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSectionContentNode_EmptyMarshalRejected(t *testing.T) {
	_, err := json.Marshal(SectionContentNode{})
	assert.Error(t, err)
}

func TestContentType_UnknownKindPreserved(t *testing.T) {
	raw := `{"id": "x", "content_type": {"slide_deck": {"slides": 12}}}`

	var doc ContentDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	require.NotNil(t, doc.ContentType.Unrecognized)
	assert.Equal(t, "slide_deck", doc.ContentType.Unrecognized.Tag)
	assert.Nil(t, doc.Sections())
}

func TestStructuredMath_TheoremAndExample(t *testing.T) {
	raw := `{"structured_math": {"theorem": {
		"kind": "lemma",
		"statement": [{"text": "every subgroup of a cyclic group is cyclic"}],
		"proof": [{"text": "induct on the index"}]
	}}}`

	var node SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))
	require.NotNil(t, node.StructuredMath)
	require.NotNil(t, node.StructuredMath.Theorem)
	assert.Equal(t, "lemma", node.StructuredMath.Theorem.Kind)

	raw = `{"structured_math": {"example": {"title": "Z/5Z", "content": []}}}`
	var node2 SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node2))
	require.NotNil(t, node2.StructuredMath.Example)
	assert.Equal(t, "Z/5Z", node2.StructuredMath.Example.Title)
}

func TestTableAndList_Decode(t *testing.T) {
	raw := `{"table": {
		"headers": [[{"paragraph": [{"text": "element"}]}]],
		"rows": [[[{"paragraph": [{"text": "e"}]}]]]
	}}`

	var node SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &node))
	require.NotNil(t, node.Table)
	require.Len(t, node.Table.Headers, 1)
	require.Len(t, node.Table.Rows, 1)

	raw = `{"list": {"items": [[{"paragraph": [{"text": "closure"}]}], [{"paragraph": [{"text": "identity"}]}]], "ordered": true}}`
	var list SectionContentNode
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.NotNil(t, list.List)
	assert.True(t, list.List.Ordered)
	assert.Len(t, list.List.Items, 2)
}
