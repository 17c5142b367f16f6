package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathtrail/mathtrail-cli/internal/adapters/driven/storage/memory"
	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

func docs(ids ...string) []domain.ContentDocument {
	out := make([]domain.ContentDocument, len(ids))
	for i, id := range ids {
		out[i] = domain.ContentDocument{ID: id}
	}
	return out
}

func resolverStore(t *testing.T) *memory.ContentStore {
	t.Helper()
	store := memory.NewContentStore()
	require.NoError(t, store.ReplaceTheory(context.Background(), &domain.TheorySnapshot{
		Theory: "GroupTheory",
		Files: []domain.TheoryFile{
			{
				Name: "group_theory.definitions",
				Documents: docs(
					"group_theory.def.generic_group",
					"group_theory.def.cyclic_group",
					"group_theory.def.subgroup",
					"group_theory.overview",
					"group_theory.def.quotient_group",
					"group_theory.def.normal_subgroup",
					"shared.notation",
				),
			},
			{
				Name: "group_theory.theorems",
				Documents: docs(
					"group_theory.thm.lagrange",
					"group_theory.thm.cayley",
				),
			},
		},
	}))
	return store
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	resolver, err := NewResolver(resolverStore(t), 0)
	require.NoError(t, err)
	return resolver
}

func defRef(theory, term string) domain.Reference {
	return domain.Reference{Kind: domain.RefDefinition, TermID: term, TheoryContext: theory}
}

func TestResolve_DirectHit(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "group_theory.def.subgroup"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierDirect, res.Tier)
	assert.Equal(t, &domain.NavigationTarget{
		File:       "group_theory.definitions",
		DocumentID: "group_theory.def.subgroup",
	}, res.Target)
}

func TestResolve_TheoremKindTargetsTheoremsFile(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), domain.Reference{
		Kind:          domain.RefTheorem,
		TermID:        "group_theory.thm.lagrange",
		TheoryContext: "GroupTheory",
	})
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierDirect, res.Tier)
	assert.Equal(t, "group_theory.theorems", res.Target.File)
}

func TestResolve_TheoryKindTargetsOverview(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), domain.Reference{
		Kind:          domain.RefTheory,
		TheoryContext: "GroupTheory",
	})
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierDirect, res.Tier)
	assert.Equal(t, &domain.NavigationTarget{File: "group_theory.definitions"}, res.Target)
}

func TestResolve_LegacyRewrite(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "cyclic-main-groupbasic-section"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierLegacy, res.Tier)
	assert.Equal(t, "group_theory.def.generic_group", res.Target.DocumentID)
	assert.Empty(t, res.Target.SectionID)
}

func TestResolve_LegacyOverviewRewrite(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "anything-overview-page"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierLegacy, res.Tier)
	assert.Equal(t, "group_theory.overview", res.Target.DocumentID)
}

func TestResolve_SplitDocumentAndSection(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "group_theory.def.cyclic_group.properties"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierSplit, res.Tier)
	assert.Equal(t, "group_theory.def.cyclic_group", res.Target.DocumentID)
	assert.Equal(t, "properties", res.Target.SectionID)
}

func TestResolve_SplitLongestPrefixWins(t *testing.T) {
	store := memory.NewContentStore()
	ctx := context.Background()
	require.NoError(t, store.ReplaceTheory(ctx, &domain.TheorySnapshot{
		Theory: "GroupTheory",
		Files: []domain.TheoryFile{{
			Name:      "group_theory.definitions",
			Documents: docs("group_theory.def", "group_theory.def.subgroup"),
		}},
	}))
	resolver, err := NewResolver(store, 0)
	require.NoError(t, err)

	// Both "group_theory.def" and "group_theory.def.subgroup" are
	// documents; the longer prefix claims the id.
	res, err := resolver.Resolve(ctx, defRef("GroupTheory", "group_theory.def.subgroup.index"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, "group_theory.def.subgroup", res.Target.DocumentID)
	assert.Equal(t, "index", res.Target.SectionID)
}

func TestResolve_SplitAtLastDash(t *testing.T) {
	store := memory.NewContentStore()
	ctx := context.Background()
	require.NoError(t, store.ReplaceTheory(ctx, &domain.TheorySnapshot{
		Theory: "GroupTheory",
		Files: []domain.TheoryFile{{
			Name:      "group_theory.definitions",
			Documents: docs("intro-groups"),
		}},
	}))
	resolver, err := NewResolver(store, 0)
	require.NoError(t, err)

	res, err := resolver.Resolve(ctx, defRef("GroupTheory", "intro-groups-axioms"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierSplit, res.Tier)
	assert.Equal(t, "intro-groups", res.Target.DocumentID)
	assert.Equal(t, "axioms", res.Target.SectionID)
}

func TestResolve_FuzzyFinalSegment(t *testing.T) {
	resolver := newTestResolver(t)

	// No document is named "subgroup", but one id ends in that segment.
	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "subgroup"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierFuzzy, res.Tier)
	assert.Equal(t, "group_theory.def.subgroup", res.Target.DocumentID)
}

func TestResolve_FuzzyFirstOccurrenceWins(t *testing.T) {
	resolver := newTestResolver(t)

	// "group_theory.def" is a prefix of several ids; the first in file
	// order is the match.
	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "group_theory.def"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierFuzzy, res.Tier)
	assert.Equal(t, "group_theory.def.generic_group", res.Target.DocumentID)
}

func TestResolve_FuzzySubstring(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "quotient"))
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierFuzzy, res.Tier)
	assert.Equal(t, "group_theory.def.quotient_group", res.Target.DocumentID)
}

func TestResolve_UnresolvedCarriesSuggestions(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("GroupTheory", "zzz_no_such_term"))
	require.NoError(t, err)
	assert.False(t, res.Resolved())
	assert.Nil(t, res.Target)

	// Suggestions share the theory prefix and are capped; the foreign
	// "shared.notation" id is excluded.
	assert.LessOrEqual(t, len(res.Suggestions), domain.MaxSuggestions)
	assert.NotContains(t, res.Suggestions, "shared.notation")
	assert.Contains(t, res.Suggestions, "group_theory.def.generic_group")
}

func TestResolve_EmptyTheoryContext(t *testing.T) {
	resolver := newTestResolver(t)

	_, err := resolver.Resolve(context.Background(), defRef("", "group_theory.def.subgroup"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolve_UnloadedTheoryIsAMiss(t *testing.T) {
	resolver := newTestResolver(t)

	res, err := resolver.Resolve(context.Background(), defRef("RingTheory", "ring_theory.def.ideal"))
	require.NoError(t, err)
	assert.False(t, res.Resolved())
	assert.Empty(t, res.Suggestions)
}

func TestResolve_CacheInvalidation(t *testing.T) {
	store := memory.NewContentStore()
	ctx := context.Background()
	require.NoError(t, store.ReplaceTheory(ctx, &domain.TheorySnapshot{
		Theory: "GroupTheory",
		Files: []domain.TheoryFile{{
			Name:      "group_theory.definitions",
			Documents: docs("group_theory.def.generic_group"),
		}},
	}))
	resolver, err := NewResolver(store, 0)
	require.NoError(t, err)

	ref := defRef("GroupTheory", "generic_group")
	res, err := resolver.Resolve(ctx, ref)
	require.NoError(t, err)
	require.True(t, res.Resolved())
	assert.Equal(t, domain.TierFuzzy, res.Tier)

	// Replace the snapshot so the fuzzy match would now land elsewhere;
	// the cached result survives until invalidation.
	require.NoError(t, store.ReplaceTheory(ctx, &domain.TheorySnapshot{
		Theory: "GroupTheory",
		Files: []domain.TheoryFile{{
			Name:      "group_theory.definitions",
			Documents: docs("group_theory.def.generic_group.v2"),
		}},
	}))

	cached, err := resolver.Resolve(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "group_theory.def.generic_group", cached.Target.DocumentID)

	resolver.InvalidateTheory("GroupTheory")

	fresh, err := resolver.Resolve(ctx, ref)
	require.NoError(t, err)
	require.True(t, fresh.Resolved())
	assert.Equal(t, "group_theory.def.generic_group.v2", fresh.Target.DocumentID)
}

func TestRewriteLegacyID(t *testing.T) {
	cases := []struct {
		term string
		want string
	}{
		{"cyclic-main-groupbasic-section", "group_theory.def.generic_group"},
		{"poly-main-ringbasic-section", "group_theory.def.generic_ring"},
		{"ext-main-fieldbasic-section", "group_theory.def.generic_field"},
		{"cyclic-overview-page", "group_theory.overview"},
	}
	for _, tc := range cases {
		got, ok := rewriteLegacyID(tc.term, "group_theory")
		require.True(t, ok, tc.term)
		assert.Equal(t, tc.want, got)
	}

	_, ok := rewriteLegacyID("group_theory.def.subgroup", "group_theory")
	assert.False(t, ok)
}
