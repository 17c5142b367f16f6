package domain

import (
	"encoding/json"
	"fmt"
)

// RichTextSegment is the tagged union of inline text content.
// Exactly one variant is populated; unknown variants decode into
// Unrecognized.
type RichTextSegment struct {
	Text         *string
	MathInline   *string
	Link         *LinkSegment
	Footnote     *FootnoteReference
	Styled       *StyledText
	Unrecognized *UnrecognizedVariant
}

// LinkSegment is an inline cross-reference link.
type LinkSegment struct {
	// Content is the rich-text link body.
	Content []RichTextSegment `json:"content"`

	// Target is where the link points.
	Target LinkTarget `json:"target"`

	// Tooltip is optional hover text.
	Tooltip string `json:"tooltip,omitempty"`
}

// FootnoteReference points at a footnote by id.
type FootnoteReference struct {
	ID string `json:"id"`
}

// StyledText wraps segments in display styles (bold, italic, ...).
type StyledText struct {
	Content []RichTextSegment `json:"content"`
	Styles  []string          `json:"styles"`
}

// MarshalJSON encodes the segment as a single-key variant object.
func (s RichTextSegment) MarshalJSON() ([]byte, error) {
	switch {
	case s.Text != nil:
		return marshalVariant("text", *s.Text)
	case s.MathInline != nil:
		return marshalVariant("math_inline", *s.MathInline)
	case s.Link != nil:
		return marshalVariant("link", s.Link)
	case s.Footnote != nil:
		return marshalVariant("footnote_reference", s.Footnote)
	case s.Styled != nil:
		return marshalVariant("styled_text", s.Styled)
	case s.Unrecognized != nil:
		return marshalVariant(s.Unrecognized.Tag, s.Unrecognized.Raw)
	default:
		return nil, fmt.Errorf("%w: empty rich text segment", ErrInvalidInput)
	}
}

// UnmarshalJSON decodes a single-key variant object.
func (s *RichTextSegment) UnmarshalJSON(data []byte) error {
	tag, payload, err := unionVariant(data)
	if err != nil {
		return err
	}
	switch tag {
	case "text":
		s.Text = new(string)
		return json.Unmarshal(payload, s.Text)
	case "math_inline":
		s.MathInline = new(string)
		return json.Unmarshal(payload, s.MathInline)
	case "link":
		s.Link = &LinkSegment{}
		return json.Unmarshal(payload, s.Link)
	case "footnote_reference":
		s.Footnote = &FootnoteReference{}
		return json.Unmarshal(payload, s.Footnote)
	case "styled_text":
		s.Styled = &StyledText{}
		return json.Unmarshal(payload, s.Styled)
	default:
		s.Unrecognized = &UnrecognizedVariant{Tag: tag, Raw: payload}
		return nil
	}
}

// PlainText flattens the segment to unstyled text for logging and
// suggestion display. Math renders as its source, links as their body.
func (s RichTextSegment) PlainText() string {
	switch {
	case s.Text != nil:
		return *s.Text
	case s.MathInline != nil:
		return *s.MathInline
	case s.Link != nil:
		return plainText(s.Link.Content)
	case s.Styled != nil:
		return plainText(s.Styled.Content)
	default:
		return ""
	}
}

func plainText(segments []RichTextSegment) string {
	var out string
	for _, seg := range segments {
		out += seg.PlainText()
	}
	return out
}

// LinkTarget is the tagged union of link destinations.
// Exactly one variant is populated; unknown variants decode into
// Unrecognized.
type LinkTarget struct {
	URL                  *string
	InternalPageID       *string
	DefinitionID         *DefinitionTarget
	DefinitionAspect     *DefinitionAspectTarget
	TheoremID            *TheoremTarget
	GlossaryTerm         *string
	InteractiveElementID *string
	Unrecognized         *UnrecognizedVariant
}

// DefinitionTarget points at a definition in a theory.
type DefinitionTarget struct {
	TermID        string `json:"term_id"`
	TheoryContext string `json:"theory_context"`
}

// DefinitionAspectTarget points at one aspect (a property or member)
// of a definition.
type DefinitionAspectTarget struct {
	TermID        string `json:"term_id"`
	TheoryContext string `json:"theory_context"`
	Aspect        string `json:"aspect"`
}

// TheoremTarget points at a theorem in a theory.
type TheoremTarget struct {
	TheoremID     string `json:"theorem_id"`
	TheoryContext string `json:"theory_context"`
}

// MarshalJSON encodes the target as a single-key variant object.
func (t LinkTarget) MarshalJSON() ([]byte, error) {
	switch {
	case t.URL != nil:
		return marshalVariant("url", *t.URL)
	case t.InternalPageID != nil:
		return marshalVariant("internal_page_id", *t.InternalPageID)
	case t.DefinitionID != nil:
		return marshalVariant("definition_id", t.DefinitionID)
	case t.DefinitionAspect != nil:
		return marshalVariant("definition_aspect", t.DefinitionAspect)
	case t.TheoremID != nil:
		return marshalVariant("theorem_id", t.TheoremID)
	case t.GlossaryTerm != nil:
		return marshalVariant("glossary_term", *t.GlossaryTerm)
	case t.InteractiveElementID != nil:
		return marshalVariant("interactive_element_id", *t.InteractiveElementID)
	case t.Unrecognized != nil:
		return marshalVariant(t.Unrecognized.Tag, t.Unrecognized.Raw)
	default:
		return nil, fmt.Errorf("%w: empty link target", ErrInvalidInput)
	}
}

// UnmarshalJSON decodes a single-key variant object.
func (t *LinkTarget) UnmarshalJSON(data []byte) error {
	tag, payload, err := unionVariant(data)
	if err != nil {
		return err
	}
	switch tag {
	case "url":
		t.URL = new(string)
		return json.Unmarshal(payload, t.URL)
	case "internal_page_id":
		t.InternalPageID = new(string)
		return json.Unmarshal(payload, t.InternalPageID)
	case "definition_id":
		t.DefinitionID = &DefinitionTarget{}
		return json.Unmarshal(payload, t.DefinitionID)
	case "definition_aspect":
		t.DefinitionAspect = &DefinitionAspectTarget{}
		return json.Unmarshal(payload, t.DefinitionAspect)
	case "theorem_id":
		t.TheoremID = &TheoremTarget{}
		return json.Unmarshal(payload, t.TheoremID)
	case "glossary_term":
		t.GlossaryTerm = new(string)
		return json.Unmarshal(payload, t.GlossaryTerm)
	case "interactive_element_id":
		t.InteractiveElementID = new(string)
		return json.Unmarshal(payload, t.InteractiveElementID)
	default:
		t.Unrecognized = &UnrecognizedVariant{Tag: tag, Raw: payload}
		return nil
	}
}
