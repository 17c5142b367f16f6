package domain

// Definition is a formal type definition within a theory. It is the
// sole input of the dependency graph builder and is deliberately
// simpler than ContentDocument: a flat name/kind/members record whose
// member types reference other definitions by name.
type Definition struct {
	// Name is the definition's unique key within its theory.
	Name string `json:"name"`

	// Kind is the definition flavour: "struct", "enum" or "trait".
	Kind string `json:"kind"`

	// Members are the ordered fields or variants.
	Members []Member `json:"members,omitempty"`

	// Extends lists parent definitions by name.
	Extends []string `json:"extends,omitempty"`

	// Implements lists implemented traits by name.
	Implements []string `json:"implements,omitempty"`
}

// Member is one field or variant of a Definition.
type Member struct {
	// Name is the member name.
	Name string `json:"name"`

	// Type is a free-form, possibly generic type expression,
	// e.g. "Vec<Pair<Foo, Bar>>".
	Type string `json:"type"`

	// Docs is optional member documentation.
	Docs string `json:"docs,omitempty"`
}

// DefinitionKind values as they appear in content files.
const (
	KindStruct = "struct"
	KindEnum   = "enum"
	KindTrait  = "trait"
)
