package cli

import (
	"context"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// mockTheoryService returns canned snapshots.
type mockTheoryService struct {
	snapshot *domain.TheorySnapshot
	theories []string
	err      error
}

func (m *mockTheoryService) Load(_ context.Context, theory string) (*domain.TheorySnapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	snapshot := m.snapshot
	if snapshot == nil {
		snapshot = &domain.TheorySnapshot{Theory: theory}
	}
	return snapshot, nil
}

func (m *mockTheoryService) Theories(_ context.Context) ([]string, error) {
	return m.theories, m.err
}

// mockResolverService returns a fixed resolution.
type mockResolverService struct {
	resolution domain.Resolution
	err        error
	lastRef    domain.Reference
}

func (m *mockResolverService) Resolve(_ context.Context, ref domain.Reference) (domain.Resolution, error) {
	m.lastRef = ref
	return m.resolution, m.err
}

// mockGraphService returns a fixed graph.
type mockGraphService struct {
	graph *domain.DependencyGraph
	err   error
}

func (m *mockGraphService) BuildForTheory(_ context.Context, _ string) (*domain.DependencyGraph, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.graph, nil
}

func (m *mockGraphService) Build(_ []domain.Definition) *domain.DependencyGraph {
	return m.graph
}

// mockConfigStore is an in-memory config store.
type mockConfigStore struct {
	data map[string]any
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if s, ok := m.data[key].(string); ok {
		return s
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if i, ok := m.data[key].(int); ok {
		return i
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if b, ok := m.data[key].(bool); ok {
		return b
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	m.data[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

// setupTestServices swaps the package services for mocks and returns a
// cleanup restoring the originals.
func setupTestServices() func() {
	oldTheory := theoryService
	oldResolver := resolverService
	oldGraph := graphService
	oldConfig := configStore

	theoryService = &mockTheoryService{
		snapshot: &domain.TheorySnapshot{
			Theory: "GroupTheory",
			Files: []domain.TheoryFile{
				{Name: "group_theory.definitions"},
				{Name: "group_theory.theorems"},
			},
			Definitions: []domain.Definition{{Name: "Group", Kind: domain.KindStruct}},
			Statuses: []domain.FileStatus{
				{File: "group_theory.definitions"},
				{File: "group_theory.theorems"},
			},
		},
		theories: []string{"GroupTheory"},
	}
	resolverService = &mockResolverService{
		resolution: domain.Resolution{
			Target: &domain.NavigationTarget{
				File:       "group_theory.definitions",
				DocumentID: "group_theory.def.generic_group",
			},
			Tier: domain.TierDirect,
		},
	}
	graphService = &mockGraphService{
		graph: &domain.DependencyGraph{
			Ordered: []domain.Definition{
				{Name: "GroupOperation", Kind: domain.KindStruct},
				{Name: "Group", Kind: domain.KindStruct},
			},
			Edges: []domain.Edge{{Source: "Group", Target: "GroupOperation"}},
		},
	}
	configStore = newMockConfigStore()

	return func() {
		theoryService = oldTheory
		resolverService = oldResolver
		graphService = oldGraph
		configStore = oldConfig
	}
}
