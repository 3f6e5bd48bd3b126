// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/orderedset"
)

// Harvester applies the ordered pattern table to article text and returns
// deduplicated candidate command lines.
type Harvester struct {
	patterns []namedPattern
	logger   *zap.Logger
}

// New returns a Harvester with the built-in pattern table. A nil logger
// disables logging.
func New(logger *zap.Logger) *Harvester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harvester{patterns: builtinPatterns, logger: logger}
}

// LoadOverrides merges the YAML name-to-pattern resource at path over the
// built-in table. Entries that fail to compile are skipped with a warning
// (R2.3). A read or parse failure is returned to the caller, who decides
// whether it is fatal; the built-in table stays in effect either way.
func (h *Harvester) LoadOverrides(path string) error {
	overrides, warnings, err := loadPatternFile(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		h.logger.Warn("skipping invalid override pattern", zap.String("detail", w))
	}
	h.patterns = mergePatterns(h.patterns, overrides)
	h.logger.Info("pattern overrides loaded",
		zap.String("path", path),
		zap.Int("applied", len(overrides)),
		zap.Int("skipped", len(warnings)))
	return nil
}

// candidateMatch is one raw pattern hit, kept with its table position for
// overlap resolution.
type candidateMatch struct {
	text    string
	pattern int
}

// ExtractCandidateLines scans text with every pattern in table order and
// returns trimmed candidates, deduplicated in first-seen order. When one
// match's text is a substring of another's, only the longer variant is
// kept, so full commands win over truncated fragments (R1.3). Empty input
// yields an empty result, not an error.
func (h *Harvester) ExtractCandidateLines(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matches []candidateMatch
	for i, p := range h.patterns {
		for _, m := range p.re.FindAllString(text, -1) {
			trimmed := strings.TrimSpace(m)
			if trimmed == "" {
				continue
			}
			matches = append(matches, candidateMatch{text: trimmed, pattern: i})
		}
	}

	out := orderedset.New[string]()
	for i, m := range matches {
		if absorbedBy(matches, i) {
			continue
		}
		out.Add(m.text)
	}

	h.logger.Debug("harvested candidates",
		zap.Int("matches", len(matches)),
		zap.Int("kept", out.Len()))
	return out.Items()
}

// absorbedBy reports whether matches[i].text is a strict substring of some
// other match's text. Equal texts are not absorbed; the dedup pass keeps
// the first occurrence, which belongs to the earlier pattern.
func absorbedBy(matches []candidateMatch, i int) bool {
	for j, other := range matches {
		if j == i || other.text == matches[i].text {
			continue
		}
		if strings.Contains(other.text, matches[i].text) {
			return true
		}
	}
	return false
}
