package domain

import (
	"encoding/json"
	"fmt"
)

// ContentDocument is one mathematical document within a theory file.
// Documents are identified by a globally unique, dot-separated
// hierarchical id such as "group_theory.def.cyclic_group".
type ContentDocument struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// ContentType carries the document kind and its section structure.
	ContentType ContentType `json:"content_type"`

	// Definition optionally carries the formal definition entity this
	// document describes. Documents in a theory's definitions file use
	// it to feed the dependency graph builder.
	Definition *Definition `json:"definition,omitempty"`
}

// Sections returns the document's ordered section structure, regardless
// of which known content kind carries it. Unrecognized kinds have no
// readable structure and return nil.
func (d *ContentDocument) Sections() []Section {
	switch {
	case d.ContentType.ScientificPaper != nil:
		return d.ContentType.ScientificPaper.Structure
	case d.ContentType.LectureNotes != nil:
		return d.ContentType.LectureNotes.Structure
	default:
		return nil
	}
}

// ContentType is the polymorphic document kind. Exactly one variant is
// populated. Unknown kinds decode into Unrecognized so that future
// document kinds survive a round-trip instead of failing the load.
type ContentType struct {
	ScientificPaper *PaperContent
	LectureNotes    *NotesContent
	Unrecognized    *UnrecognizedVariant
}

// PaperContent is the structure of a scientific paper.
type PaperContent struct {
	// Structure is the ordered top-level sections.
	Structure []Section `json:"structure"`
}

// NotesContent is the structure of expository lecture notes.
type NotesContent struct {
	// Structure is the ordered top-level sections.
	Structure []Section `json:"structure"`
}

// UnrecognizedVariant preserves a union variant this version does not
// know. Consumers render it as an explicit placeholder.
type UnrecognizedVariant struct {
	// Tag is the unknown variant key as it appeared on the wire.
	Tag string

	// Raw is the untouched variant payload.
	Raw json.RawMessage
}

// MarshalJSON encodes the content type as a single-key variant object.
func (c ContentType) MarshalJSON() ([]byte, error) {
	switch {
	case c.ScientificPaper != nil:
		return marshalVariant("scientific_paper", c.ScientificPaper)
	case c.LectureNotes != nil:
		return marshalVariant("lecture_notes", c.LectureNotes)
	case c.Unrecognized != nil:
		return marshalVariant(c.Unrecognized.Tag, c.Unrecognized.Raw)
	default:
		return nil, fmt.Errorf("%w: empty content type", ErrInvalidInput)
	}
}

// UnmarshalJSON decodes a single-key variant object.
func (c *ContentType) UnmarshalJSON(data []byte) error {
	tag, payload, err := unionVariant(data)
	if err != nil {
		return err
	}
	switch tag {
	case "scientific_paper":
		c.ScientificPaper = &PaperContent{}
		return json.Unmarshal(payload, c.ScientificPaper)
	case "lecture_notes":
		c.LectureNotes = &NotesContent{}
		return json.Unmarshal(payload, c.LectureNotes)
	default:
		c.Unrecognized = &UnrecognizedVariant{Tag: tag, Raw: payload}
		return nil
	}
}

// Section is one node of a document's structure tree.
type Section struct {
	// ID identifies the section within its document; it doubles as the
	// in-page anchor for navigation targets.
	ID string `json:"id"`

	// Title is the optional rich-text heading.
	Title []RichTextSegment `json:"title,omitempty"`

	// Content is the ordered sequence of content nodes.
	Content []SectionContentNode `json:"content,omitempty"`

	// Metadata holds free-form ordered key/value pairs.
	Metadata []MetadataPair `json:"metadata,omitempty"`
}

// MetadataPair is one ordered key/value entry of section metadata.
type MetadataPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SectionContentNode is the tagged union of everything that can appear
// inside a section. Exactly one variant is populated; unknown variants
// decode into Unrecognized.
type SectionContentNode struct {
	Paragraph      []RichTextSegment
	SubSection     *Section
	MathBlock      *MathBlock
	List           *ListBlock
	Table          *TableBlock
	StructuredMath *StructuredMathBlock
	Unrecognized   *UnrecognizedVariant
}

// MathBlock is a display math expression with an optional label.
type MathBlock struct {
	// Expression is the math source (TeX or similar).
	Expression string `json:"expression"`

	// Label is the optional equation label.
	Label string `json:"label,omitempty"`

	// Caption is the optional rich-text caption.
	Caption []RichTextSegment `json:"caption,omitempty"`
}

// ListBlock is an ordered or unordered list; each item is a content
// node sequence.
type ListBlock struct {
	Items   [][]SectionContentNode `json:"items"`
	Ordered bool                   `json:"ordered,omitempty"`
}

// TableCell is one cell of a table: a content node sequence.
type TableCell []SectionContentNode

// TableBlock is a table of content-node cells.
type TableBlock struct {
	Headers []TableCell   `json:"headers,omitempty"`
	Rows    [][]TableCell `json:"rows"`
}

// MarshalJSON encodes the node as a single-key variant object.
func (n SectionContentNode) MarshalJSON() ([]byte, error) {
	switch {
	case n.Paragraph != nil:
		return marshalVariant("paragraph", n.Paragraph)
	case n.SubSection != nil:
		return marshalVariant("sub_section", n.SubSection)
	case n.MathBlock != nil:
		return marshalVariant("math_block", n.MathBlock)
	case n.List != nil:
		return marshalVariant("list", n.List)
	case n.Table != nil:
		return marshalVariant("table", n.Table)
	case n.StructuredMath != nil:
		return marshalVariant("structured_math", n.StructuredMath)
	case n.Unrecognized != nil:
		return marshalVariant(n.Unrecognized.Tag, n.Unrecognized.Raw)
	default:
		return nil, fmt.Errorf("%w: empty content node", ErrInvalidInput)
	}
}

// UnmarshalJSON decodes a single-key variant object.
func (n *SectionContentNode) UnmarshalJSON(data []byte) error {
	tag, payload, err := unionVariant(data)
	if err != nil {
		return err
	}
	switch tag {
	case "paragraph":
		return json.Unmarshal(payload, &n.Paragraph)
	case "sub_section":
		n.SubSection = &Section{}
		return json.Unmarshal(payload, n.SubSection)
	case "math_block":
		n.MathBlock = &MathBlock{}
		return json.Unmarshal(payload, n.MathBlock)
	case "list":
		n.List = &ListBlock{}
		return json.Unmarshal(payload, n.List)
	case "table":
		n.Table = &TableBlock{}
		return json.Unmarshal(payload, n.Table)
	case "structured_math":
		n.StructuredMath = &StructuredMathBlock{}
		return json.Unmarshal(payload, n.StructuredMath)
	default:
		n.Unrecognized = &UnrecognizedVariant{Tag: tag, Raw: payload}
		return nil
	}
}

// StructuredMathBlock is the tagged union of formally structured math
// content. Exactly one variant is populated.
type StructuredMathBlock struct {
	Definition   *TermDefinition
	Theorem      *TheoremBlock
	Example      *ExampleBlock
	Unrecognized *UnrecognizedVariant
}

// TermDefinition is a formal definition of a mathematical term.
type TermDefinition struct {
	// Term is the rich-text display form of the defined term.
	Term []RichTextSegment `json:"term"`

	// FormalTerm is the machine-readable form.
	FormalTerm string `json:"formal_term,omitempty"`

	// Body is the definition text.
	Body []RichTextSegment `json:"body,omitempty"`

	// Properties lists selectable properties of the term
	// (e.g. "commutative"). Selection state is a UI concern.
	Properties []string `json:"properties,omitempty"`
}

// TheoremBlock is a theorem-like statement with an optional proof.
type TheoremBlock struct {
	// Kind distinguishes theorem, lemma, corollary, proposition.
	Kind string `json:"kind,omitempty"`

	Statement []RichTextSegment `json:"statement"`
	Proof     []RichTextSegment `json:"proof,omitempty"`
}

// ExampleBlock is a worked example.
type ExampleBlock struct {
	Title   string               `json:"title,omitempty"`
	Content []SectionContentNode `json:"content,omitempty"`
}

// MarshalJSON encodes the block as a single-key variant object.
func (b StructuredMathBlock) MarshalJSON() ([]byte, error) {
	switch {
	case b.Definition != nil:
		return marshalVariant("definition", b.Definition)
	case b.Theorem != nil:
		return marshalVariant("theorem", b.Theorem)
	case b.Example != nil:
		return marshalVariant("example", b.Example)
	case b.Unrecognized != nil:
		return marshalVariant(b.Unrecognized.Tag, b.Unrecognized.Raw)
	default:
		return nil, fmt.Errorf("%w: empty structured math block", ErrInvalidInput)
	}
}

// UnmarshalJSON decodes a single-key variant object.
func (b *StructuredMathBlock) UnmarshalJSON(data []byte) error {
	tag, payload, err := unionVariant(data)
	if err != nil {
		return err
	}
	switch tag {
	case "definition":
		b.Definition = &TermDefinition{}
		return json.Unmarshal(payload, b.Definition)
	case "theorem":
		b.Theorem = &TheoremBlock{}
		return json.Unmarshal(payload, b.Theorem)
	case "example":
		b.Example = &ExampleBlock{}
		return json.Unmarshal(payload, b.Example)
	default:
		b.Unrecognized = &UnrecognizedVariant{Tag: tag, Raw: payload}
		return nil
	}
}

// marshalVariant encodes a payload under a single variant key.
func marshalVariant(tag string, payload any) ([]byte, error) {
	return json.Marshal(map[string]any{tag: payload})
}

// unionVariant splits a single-key variant object into its tag and
// payload. More than one key violates the exactly-one-variant
// invariant; an empty object carries nothing decodable.
func unionVariant(data []byte) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}
	if len(m) == 0 {
		return "", nil, fmt.Errorf("%w: empty variant object", ErrInvalidInput)
	}
	if len(m) > 1 {
		return "", nil, fmt.Errorf("%w: %d variant keys", ErrAmbiguousVariant, len(m))
	}
	for tag, payload := range m {
		return tag, payload, nil
	}
	return "", nil, fmt.Errorf("%w: unreachable", ErrInvalidInput)
}
