// Package driving defines the interfaces through which callers drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI (and any future rendering layer)
// consumes them.
//
//   - TheoryService: Load/reload theories and list what is loaded
//   - ResolverService: Resolve symbolic references to navigation targets
//   - GraphService: Build the definition dependency graph
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
