package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mathtrail/mathtrail-cli/internal/core/domain"
)

// typeExprRunes are the non-identifier characters a well-formed type
// expression may contain: generic brackets, separators, references,
// slices, tuples and lifetimes. Anything else marks the expression
// malformed.
const typeExprRunes = "<>,:&[]()*'- .+?!;="

// TokenizeTypeExpr extracts every identifier token from a possibly
// generic type expression, in order of appearance and including
// duplicates. "Vec<Pair<Foo, Bar>>" yields Vec, Pair, Foo, Bar.
// An expression containing characters outside the identifier and
// punctuation sets returns an error wrapping domain.ErrMalformedType.
func TokenizeTypeExpr(expr string) ([]string, error) {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range expr {
		switch {
		case unicode.IsLetter(r) || r == '_':
			current.WriteRune(r)
		case unicode.IsDigit(r):
			// Identifiers may contain digits after the first rune;
			// bare numerals (array lengths) are not identifiers.
			if current.Len() > 0 {
				current.WriteRune(r)
			}
		case strings.ContainsRune(typeExprRunes, r):
			flush()
		default:
			return nil, fmt.Errorf("%w: %q at %q", domain.ErrMalformedType, expr, r)
		}
	}
	flush()

	return tokens, nil
}

// TypeReferences returns the capitalized identifiers of a type
// expression: the tokens that can name another definition.
func TypeReferences(expr string) ([]string, error) {
	tokens, err := TokenizeTypeExpr(expr)
	if err != nil {
		return nil, err
	}

	var refs []string
	for _, tok := range tokens {
		if isCapitalized(tok) {
			refs = append(refs, tok)
		}
	}
	return refs, nil
}

func isCapitalized(token string) bool {
	for _, r := range token {
		return unicode.IsUpper(r)
	}
	return false
}
