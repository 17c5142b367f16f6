package domain

// Edge is one directed dependency between two definitions:
// Source references Target.
type Edge struct {
	// Source is the referencing definition's name.
	Source string `json:"source"`

	// Target is the referenced definition's name.
	Target string `json:"target"`

	// Artificial marks a synthetic connectivity edge added to attach
	// an orphan node. Consumers render artificial edges distinctly.
	Artificial bool `json:"artificial,omitempty"`
}

// DependencyGraph is the graph builder's output: definitions in a
// display order where dependencies precede dependents, plus the
// deduplicated edge list for a layout collaborator. Node coordinates
// are explicitly not computed here.
type DependencyGraph struct {
	// Ordered is the topologically sorted definition sequence.
	Ordered []Definition `json:"ordered"`

	// Edges is the deduplicated directed edge list.
	Edges []Edge `json:"edges"`
}
