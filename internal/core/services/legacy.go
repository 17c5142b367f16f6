package services

import "strings"

// legacyRule maps a deprecated id naming pattern to its canonical
// replacement. The "{theory}" placeholder expands to the theory token.
type legacyRule struct {
	// Marker is the substring identifying the deprecated scheme.
	Marker string

	// Canonical is the current id template for the concept.
	Canonical string
}

// legacyRules is the fixed, ordered rewrite table for deprecated ids.
// These reflect accumulated renames in the corpus; the first matching
// rule wins. New patterns are added explicitly, never inferred.
var legacyRules = []legacyRule{
	// Old hierarchical scheme: specialized variant pages carried a
	// "-main-<concept>basic-section" suffix pointing at the basic
	// section of the generic concept page.
	{Marker: "-main-groupbasic-section", Canonical: "{theory}.def.generic_group"},
	{Marker: "-main-ringbasic-section", Canonical: "{theory}.def.generic_ring"},
	{Marker: "-main-fieldbasic-section", Canonical: "{theory}.def.generic_field"},

	// Pre-restructure overview pages.
	{Marker: "-overview-page", Canonical: "{theory}.overview"},
}

// rewriteLegacyID applies the first matching legacy rule to a term id.
// Returns the canonical id and true on a match.
func rewriteLegacyID(termID, theoryToken string) (string, bool) {
	for _, rule := range legacyRules {
		if strings.Contains(termID, rule.Marker) {
			return strings.ReplaceAll(rule.Canonical, "{theory}", theoryToken), true
		}
	}
	return "", false
}
