package domain

// ReferenceKind distinguishes what a symbolic reference points at.
type ReferenceKind string

// Reference kinds.
const (
	RefDefinition ReferenceKind = "definition"
	RefTheorem    ReferenceKind = "theorem"
	RefTheory     ReferenceKind = "theory"
)

// Reference is a symbolic pointer to content: a theory context plus a
// content identifier. The identifier may be stale — resolution
// tolerates renames and restructuring.
type Reference struct {
	// Kind selects the target file and resolution behaviour.
	Kind ReferenceKind `json:"kind"`

	// TermID is the content identifier (definition id, theorem id, or
	// empty for a bare theory reference).
	TermID string `json:"term_id,omitempty"`

	// TheoryContext names the theory, e.g. "GroupTheory".
	TheoryContext string `json:"theory_context"`
}

// ResolutionTier names which resolver tier produced a target.
type ResolutionTier string

// Resolution tiers, in the order they are attempted.
const (
	TierDirect ResolutionTier = "direct"
	TierLegacy ResolutionTier = "legacy"
	TierSplit  ResolutionTier = "split"
	TierFuzzy  ResolutionTier = "fuzzy"
)

// NavigationTarget is a resolved reference: the concrete file,
// document and optional in-page section a caller should navigate to.
// Scrolling to SectionID is best-effort; the anchor may not exist.
type NavigationTarget struct {
	// File is the logical content file, e.g. "group_theory.definitions".
	File string `json:"file"`

	// DocumentID is the resolved document id. Empty for a theory
	// overview target.
	DocumentID string `json:"document_id,omitempty"`

	// SectionID is the optional in-page anchor.
	SectionID string `json:"section_id,omitempty"`
}

// Resolution is the outcome of resolving a Reference. Failure to match
// is a normal result, never an error: an unresolved reference carries
// suggestions so callers can offer a redirect instead of a dead link.
type Resolution struct {
	// Target is the navigation target, nil when unresolved.
	Target *NavigationTarget `json:"target,omitempty"`

	// Tier records which resolver tier matched.
	Tier ResolutionTier `json:"tier,omitempty"`

	// Suggestions carries up to 5 candidate ids when unresolved.
	Suggestions []string `json:"suggestions,omitempty"`
}

// Resolved reports whether a navigation target was found.
func (r Resolution) Resolved() bool {
	return r.Target != nil
}

// MaxSuggestions caps the candidate ids carried by an unresolved
// resolution.
const MaxSuggestions = 5
