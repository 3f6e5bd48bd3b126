// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/embeddings"
	"github.com/pdiddy/cmdextract/pkg/types"
)

const (
	// DefaultSimilarityThreshold is the strict-pass cutoff.
	DefaultSimilarityThreshold = 0.7

	// relaxedThreshold is the floor for the second cascade pass.
	relaxedThreshold = 0.05

	// DefaultMaxResults caps the ranked output.
	DefaultMaxResults = 20
)

// exeArgsRe is the eligibility gate for the scored passes: the span must
// carry an executable token with content after it (R3.2).
var exeArgsRe = regexp.MustCompile(`(?i)\b[\w.-]+\.exe\b`)

// Extractor runs the score-and-rank engine end to end.
type Extractor struct {
	cfg    types.RankConfig
	scorer *Scorer
	logger *zap.Logger
}

// NewExtractor builds the engine on an embedding provider. Unlike the
// classify path there is no heuristic fallback here: an unavailable
// provider is a hard construction error (R3.5).
func NewExtractor(ctx context.Context, cfg types.RankConfig, provider embeddings.Provider, logger *zap.Logger) (*Extractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	scorer, err := NewScorer(ctx, provider, logger)
	if err != nil {
		return nil, err
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}
	return &Extractor{cfg: cfg, scorer: scorer, logger: logger}, nil
}

// ExtractRanked segments the content, scores candidates against the
// prototype index, and selects through the cascade: strict threshold,
// relaxed threshold, then a regex-only fallback at score zero (R3.1-R3.4).
func (e *Extractor) ExtractRanked(ctx context.Context, content string) ([]types.RankedCommand, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	candidates := SegmentCandidates(content, e.cfg.MaxCandidates)
	e.logger.Debug("segmented content",
		zap.Int("content_bytes", len(content)),
		zap.Int("candidates", len(candidates)))
	if len(candidates) == 0 {
		return e.regexFallback(content), nil
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}
	scores, err := e.scorer.Score(ctx, texts)
	if err != nil {
		// Scoring failure drops to the regex pass rather than aborting.
		e.logger.Warn("candidate scoring failed, using regex fallback", zap.Error(err))
		return e.regexFallback(content), nil
	}

	strict := e.selectPass(candidates, scores, e.cfg.SimilarityThreshold)
	if len(strict) > 0 {
		e.logger.Info("strict pass selected results", zap.Int("count", len(strict)))
		return strict, nil
	}

	relaxed := e.selectPass(candidates, scores, relaxedThreshold)
	if len(relaxed) > 0 {
		e.logger.Info("relaxed pass selected results", zap.Int("count", len(relaxed)))
		return relaxed, nil
	}

	fallback := e.regexFallback(content)
	e.logger.Info("regex fallback selected results", zap.Int("count", len(fallback)))
	return fallback, nil
}

// selectPass keeps eligible candidates at or above the threshold, sorted
// by score descending with earlier offsets breaking ties, deduplicated by
// text, and capped at max results.
func (e *Extractor) selectPass(candidates []Candidate, scores []float64, threshold float64) []types.RankedCommand {
	var kept []types.RankedCommand
	for i, c := range candidates {
		if scores[i] < threshold || !eligible(c.Text) {
			continue
		}
		kept = append(kept, types.RankedCommand{
			Text:    c.Text,
			Start:   c.Start,
			End:     c.End,
			Context: c.Context,
			Score:   scores[i],
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].Start < kept[j].Start
	})

	seen := make(map[string]struct{}, len(kept))
	out := kept[:0]
	for _, rc := range kept {
		if _, ok := seen[rc.Text]; ok {
			continue
		}
		seen[rc.Text] = struct{}{}
		out = append(out, rc)
		if len(out) >= e.cfg.MaxResults {
			break
		}
	}
	return out
}

// eligible reports whether a span carries an executable token followed by
// argument content.
func eligible(text string) bool {
	m := exeArgsRe.FindStringIndex(text)
	if m == nil {
		return false
	}
	return strings.TrimSpace(text[m[1]:]) != ""
}

// regexFallback scans the raw content with the command alternation and
// returns every match at score zero, in document order, deduplicated by
// text and capped at max results.
func (e *Extractor) regexFallback(content string) []types.RankedCommand {
	var out []types.RankedCommand
	seen := make(map[string]struct{})
	for _, loc := range commandRe.FindAllStringIndex(content, -1) {
		text, start := trimOffsets(content[loc[0]:loc[1]], loc[0])
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, types.RankedCommand{
			Text:    text,
			Start:   start,
			End:     start + len(text),
			Context: contextSnippet(content, start, start+len(text)),
		})
		if len(out) >= e.cfg.MaxResults {
			break
		}
	}
	return out
}
