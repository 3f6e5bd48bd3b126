// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ground enforces the citation-safety contract: every string the
// pipeline emits must occur verbatim in the source article.
// Implements: prd003-qa (R1, R2); docs/ARCHITECTURE § Grounding.
package ground

import (
	"strings"

	"github.com/pdiddy/cmdextract/internal/orderedset"
)

// Filter returns the candidates that occur as literal substrings of the
// article, deduplicated in first-seen order. Upstream stages do not alter
// candidate text, but this stage is the contract enforcement point, so
// any drift introduced later still cannot leak ungrounded strings.
func Filter(candidates []string, article string) []string {
	if article == "" {
		return nil
	}

	grounded := orderedset.New[string]()
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if strings.Contains(article, candidate) {
			grounded.Add(candidate)
		}
	}
	return grounded.Items()
}
