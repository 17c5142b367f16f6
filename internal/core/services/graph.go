package services

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driving"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

// Ensure GraphBuilder implements the interface.
var _ driving.GraphService = (*GraphBuilder)(nil)

// GraphBuilder constructs the definition dependency graph: directed
// edges from type references, artificial connectivity for orphans, and
// a cycle-tolerant topological display order.
type GraphBuilder struct {
	store driven.ContentStore
}

// NewGraphBuilder creates a new graph builder. The store may be nil
// when only Build over explicit definitions is needed.
func NewGraphBuilder(store driven.ContentStore) *GraphBuilder {
	return &GraphBuilder{store: store}
}

// BuildForTheory builds the graph over a loaded theory's definitions.
func (b *GraphBuilder) BuildForTheory(ctx context.Context, theory string) (*domain.DependencyGraph, error) {
	if b.store == nil {
		return nil, domain.ErrTheoryNotLoaded
	}
	defs, err := b.store.ListDefinitions(ctx, theory)
	if err != nil {
		return nil, err
	}
	return b.Build(defs), nil
}

// Build builds the graph over an explicit definition sequence.
// The output is deterministic in the input order: root traversal
// follows the sequence and edges keep insertion order.
func (b *GraphBuilder) Build(definitions []domain.Definition) *domain.DependencyGraph {
	graph := &domain.DependencyGraph{
		Ordered: []domain.Definition{},
		Edges:   []domain.Edge{},
	}
	if len(definitions) == 0 {
		return graph
	}

	byName := make(map[string]*domain.Definition, len(definitions))
	for i := range definitions {
		byName[definitions[i].Name] = &definitions[i]
	}

	type edgeKey struct{ src, tgt string }
	seen := make(map[edgeKey]struct{})
	out := make(map[string][]string)
	degree := make(map[string]int)

	addEdge := func(src, tgt string, artificial bool) {
		key := edgeKey{src, tgt}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out[src] = append(out[src], tgt)
		graph.Edges = append(graph.Edges, domain.Edge{Source: src, Target: tgt, Artificial: artificial})
		degree[src]++
		degree[tgt]++
	}

	for i := range definitions {
		def := &definitions[i]
		for _, ref := range referencedTypes(def) {
			if _, known := byName[ref]; !known || ref == def.Name {
				continue
			}
			addEdge(def.Name, ref, false)
		}
	}

	// Orphans are attached artificially so the visualization stays a
	// single connected structure. Each orphan links to the first
	// definition with a real edge; when none exists, to the first
	// other orphan in input order.
	anchor := ""
	for i := range definitions {
		if degree[definitions[i].Name] > 0 {
			anchor = definitions[i].Name
			break
		}
	}
	var orphans []string
	for i := range definitions {
		if degree[definitions[i].Name] == 0 {
			orphans = append(orphans, definitions[i].Name)
		}
	}
	for i, orphan := range orphans {
		target := anchor
		if target == "" {
			if len(orphans) < 2 {
				break
			}
			if i == 0 {
				target = orphans[1]
			} else {
				target = orphans[0]
			}
		}
		logger.Debug("graph: attaching orphan %s -> %s", orphan, target)
		addEdge(orphan, target, true)
	}

	// Depth-first topological sort, dependencies before dependents.
	// Revisiting a node on the active stack means a cycle: the edge is
	// treated as satisfied and traversal continues.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(definitions))

	var visit func(name string)
	visit = func(name string) {
		if state[name] != unvisited {
			return
		}
		state[name] = visiting
		for _, dep := range out[name] {
			if state[dep] == visiting {
				continue
			}
			visit(dep)
		}
		state[name] = done
		graph.Ordered = append(graph.Ordered, *byName[name])
	}

	for i := range definitions {
		visit(definitions[i].Name)
	}

	logger.Debug("graph: %d definitions, %d edges, %d orphans",
		len(definitions), len(graph.Edges), len(orphans))
	return graph
}

// referencedTypes collects every capitalized identifier a definition's
// members, extends and implements lists reference, in order. A member
// whose type expression cannot be tokenized contributes nothing.
func referencedTypes(def *domain.Definition) []string {
	var refs []string
	for _, member := range def.Members {
		memberRefs, err := TypeReferences(member.Type)
		if err != nil {
			logger.Warn("graph: skipping member %s.%s: %v", def.Name, member.Name, err)
			continue
		}
		refs = append(refs, memberRefs...)
	}
	refs = append(refs, def.Extends...)
	refs = append(refs, def.Implements...)
	return refs
}
