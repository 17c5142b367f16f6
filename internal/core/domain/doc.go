// Package domain defines the core business entities for Mathtrail.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ContentDocument: A mathematical document with structured sections
//   - Definition: A formal type definition used by the dependency graph
//   - Reference: A symbolic pointer to a definition, theorem, or theory
//   - TheorySnapshot: The immutable result of loading one theory
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
