package services

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driven"
	"github.com/mathtrail/mathtrail-cli/internal/core/ports/driving"
	"github.com/mathtrail/mathtrail-cli/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.ResolverService = (*Resolver)(nil)

// DefaultCacheSize is the resolver cache capacity when none is
// configured.
const DefaultCacheSize = 256

// resolveKey identifies a cached resolution.
type resolveKey struct {
	kind   domain.ReferenceKind
	theory string
	term   string
}

// Resolver resolves symbolic references against the content store.
// Identifiers drift as the corpus is restructured, so resolution runs
// through ordered fallback tiers: verbatim hit, legacy-pattern
// rewrite, document/section split, fuzzy scan, suggestions.
//
// Resolution is pure over the loaded snapshot; results are memoized in
// an LRU cache that is purged when a theory is replaced.
type Resolver struct {
	store driven.ContentStore
	cache *lru.Cache[resolveKey, domain.Resolution]
}

// NewResolver creates a resolver over the given store. A non-positive
// cacheSize selects DefaultCacheSize.
func NewResolver(store driven.ContentStore, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[resolveKey, domain.Resolution](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{store: store, cache: cache}, nil
}

// InvalidateTheory drops cached resolutions for a theory. Called when
// the theory's snapshot is replaced.
func (r *Resolver) InvalidateTheory(theory string) {
	token := domain.TheoryToken(theory)
	for _, key := range r.cache.Keys() {
		if domain.TheoryToken(key.theory) == token {
			r.cache.Remove(key)
		}
	}
}

// Resolve resolves a reference to a navigation target, or to an
// unresolved result carrying up to domain.MaxSuggestions candidate
// ids. A miss is a normal result, not an error.
func (r *Resolver) Resolve(ctx context.Context, ref domain.Reference) (domain.Resolution, error) {
	if r.store == nil {
		return domain.Resolution{}, domain.ErrTheoryNotLoaded
	}
	if ref.TheoryContext == "" {
		return domain.Resolution{}, domain.ErrInvalidInput
	}

	key := resolveKey{kind: ref.Kind, theory: ref.TheoryContext, term: ref.TermID}
	if cached, ok := r.cache.Get(key); ok {
		return cached, nil
	}

	res, err := r.resolve(ctx, ref)
	if err != nil {
		return domain.Resolution{}, err
	}
	r.cache.Add(key, res)
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, ref domain.Reference) (domain.Resolution, error) {
	token := domain.TheoryToken(ref.TheoryContext)
	file := targetFile(token, ref.Kind)

	// A bare theory reference targets the theory overview: its
	// definitions file with no document selected.
	if ref.Kind == domain.RefTheory {
		return domain.Resolution{
			Target: &domain.NavigationTarget{File: file},
			Tier:   domain.TierDirect,
		}, nil
	}

	term := ref.TermID
	if term == "" {
		return r.unresolved(ctx, file, token), nil
	}

	// Tier 1: verbatim document id.
	if ok, err := r.exists(ctx, file, term); err != nil {
		return domain.Resolution{}, err
	} else if ok {
		return domain.Resolution{
			Target: &domain.NavigationTarget{File: file, DocumentID: term},
			Tier:   domain.TierDirect,
		}, nil
	}

	// Tier 2: legacy-pattern rewrite to the canonical id, then
	// re-resolve — directly if the canonical id exists, otherwise the
	// rewritten id feeds the remaining tiers.
	if rewritten, ok := rewriteLegacyID(term, token); ok {
		logger.Debug("resolver: legacy rewrite %q -> %q", term, rewritten)
		if ok, err := r.exists(ctx, file, rewritten); err != nil {
			return domain.Resolution{}, err
		} else if ok {
			return domain.Resolution{
				Target: &domain.NavigationTarget{File: file, DocumentID: rewritten},
				Tier:   domain.TierLegacy,
			}, nil
		}
		term = rewritten
	}

	// Tier 3: split the id into a document prefix and a section
	// suffix along its hierarchical segmentation.
	if target, err := r.splitDocSection(ctx, file, term); err != nil {
		return domain.Resolution{}, err
	} else if target != nil {
		return domain.Resolution{Target: target, Tier: domain.TierSplit}, nil
	}

	// Tier 4: fuzzy scan over the file's ids, in file order.
	if target := r.fuzzyMatch(ctx, file, term); target != nil {
		return domain.Resolution{Target: target, Tier: domain.TierFuzzy}, nil
	}

	// Tier 5: no candidate anywhere. Degrade to suggestions so the
	// caller can offer a redirect instead of a dead link.
	return r.unresolved(ctx, file, token), nil
}

// exists reports whether a document id is present in a file. A missing
// file reads as a missing document.
func (r *Resolver) exists(ctx context.Context, file, id string) (bool, error) {
	_, err := r.store.GetDocument(ctx, file, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrTheoryNotLoaded) {
		return false, nil
	}
	return false, err
}

// splitDocSection tries progressively shorter dot-prefixes of the term
// as document ids, keeping the remainder as the section anchor; the
// longest matching prefix wins. Ids without dots fall back to a split
// at the last dash.
func (r *Resolver) splitDocSection(ctx context.Context, file, term string) (*domain.NavigationTarget, error) {
	if segments := strings.Split(term, "."); len(segments) > 1 {
		for i := len(segments) - 1; i >= 1; i-- {
			docID := strings.Join(segments[:i], ".")
			ok, err := r.exists(ctx, file, docID)
			if err != nil {
				return nil, err
			}
			if ok {
				section := strings.Join(segments[i:], ".")
				logger.Debug("resolver: split %q -> doc %q section %q", term, docID, section)
				return &domain.NavigationTarget{File: file, DocumentID: docID, SectionID: section}, nil
			}
		}
		return nil, nil
	}

	if idx := strings.LastIndex(term, "-"); idx > 0 {
		docID, section := term[:idx], term[idx+1:]
		ok, err := r.exists(ctx, file, docID)
		if err != nil {
			return nil, err
		}
		if ok {
			return &domain.NavigationTarget{File: file, DocumentID: docID, SectionID: section}, nil
		}
	}
	return nil, nil
}

// fuzzyMatch scans the file's ids through the match tiers in priority
// order: exact, final-segment, prefix containment either direction,
// substring containment either direction. The first satisfied tier
// wins; ties within a tier go to the first occurrence in file order.
func (r *Resolver) fuzzyMatch(ctx context.Context, file, term string) *domain.NavigationTarget {
	ids, err := r.store.ListIDs(ctx, file)
	if err != nil || len(ids) == 0 {
		return nil
	}

	matchers := []struct {
		name string
		fn   func(id string) bool
	}{
		{"exact", func(id string) bool { return id == term }},
		{"segment", func(id string) bool { return lastSegment(id) == lastSegment(term) }},
		{"prefix", func(id string) bool {
			return strings.HasPrefix(id, term) || strings.HasPrefix(term, id)
		}},
		{"substring", func(id string) bool {
			return strings.Contains(id, term) || strings.Contains(term, id)
		}},
	}

	for _, matcher := range matchers {
		for _, id := range ids {
			if matcher.fn(id) {
				logger.Debug("resolver: fuzzy %s match %q -> %q", matcher.name, term, id)
				return &domain.NavigationTarget{File: file, DocumentID: id}
			}
		}
	}
	return nil
}

// unresolved assembles the suggestion-carrying miss result: up to
// MaxSuggestions ids from the target file that share the theory
// prefix token.
func (r *Resolver) unresolved(ctx context.Context, file, token string) domain.Resolution {
	res := domain.Resolution{}
	ids, err := r.store.ListIDs(ctx, file)
	if err != nil {
		return res
	}
	for _, id := range ids {
		if !strings.HasPrefix(id, token+".") {
			continue
		}
		res.Suggestions = append(res.Suggestions, id)
		if len(res.Suggestions) == domain.MaxSuggestions {
			break
		}
	}
	return res
}

// targetFile selects the content file for a reference. File selection
// is a pure function of the theory token and reference kind.
func targetFile(token string, kind domain.ReferenceKind) string {
	if kind == domain.RefTheorem {
		return domain.TheoryFileName(token, domain.FileTheorems)
	}
	return domain.TheoryFileName(token, domain.FileDefinitions)
}

func lastSegment(id string) string {
	if idx := strings.LastIndex(id, "."); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
