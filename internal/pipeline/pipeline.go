// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the classify-then-filter extraction
// engine: harvest, classify, ground, optional QA, then dedupe. This is the
// authoritative engine; the score-and-rank variant lives in internal/rank.
// Implements: prd001-harvest R4, prd003-qa R3; docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/classify"
	"github.com/pdiddy/cmdextract/internal/ground"
	"github.com/pdiddy/cmdextract/internal/harvest"
	"github.com/pdiddy/cmdextract/internal/orderedset"
	"github.com/pdiddy/cmdextract/pkg/types"
)

const (
	summaryApplied = "QA validation applied"
	summaryNone    = "None."
)

// Extractor runs the classify-then-filter pipeline. Safe to call
// repeatedly; calls share no mutable state beyond the lazily-built
// classifier, whose construction is guarded by once-semantics.
type Extractor struct {
	cfg    types.PipelineConfig
	logger *zap.Logger

	harvester *harvest.Harvester
	qa        *ground.QAValidator

	classifierOnce sync.Once
	classifier     classify.Classifier
}

// New builds an Extractor. The pattern-override resource, when
// configured, is loaded here so configuration warnings surface before
// extraction begins; a resource that cannot be read is reported and
// skipped, never fatal. A nil logger disables logging.
func New(cfg types.PipelineConfig, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := harvest.New(logger)
	if cfg.Harvest.PatternsFile != "" {
		if err := h.LoadOverrides(cfg.Harvest.PatternsFile); err != nil {
			logger.Warn("pattern override resource not loaded, using built-ins",
				zap.String("path", cfg.Harvest.PatternsFile),
				zap.Error(err))
		}
	}

	return &Extractor{
		cfg:       cfg,
		logger:    logger,
		harvester: h,
		qa:        ground.NewQAValidator(cfg.QA, logger),
	}
}

// ExtractCommands runs the full pipeline over articleText. Every returned
// item occurs verbatim in the article; the list is deduplicated in
// first-seen order and Count equals its length. Empty input yields an
// empty result. Degraded stages recover internally and are logged, so
// this never fails; callers observe at worst a conservative result.
func (e *Extractor) ExtractCommands(ctx context.Context, articleText string) types.ExtractionResult {
	result := types.ExtractionResult{
		CmdlineItems: []string{},
		QACorrections: types.QACorrections{
			Removed: []string{},
			Added:   []string{},
			Summary: summaryNone,
		},
	}
	if strings.TrimSpace(articleText) == "" {
		return result
	}

	harvested := e.harvester.ExtractCandidateLines(articleText)
	classified := e.classifierFor().Classify(ctx, harvested)
	grounded := ground.Filter(classified, articleText)

	final := grounded
	if e.qa.Enabled() {
		final = e.qa.Validate(grounded, articleText)
		result.QACorrections.Removed = removedBy(grounded, final)
		result.QACorrections.Summary = summaryApplied
	}

	unique := orderedset.New[string]()
	for _, cmd := range final {
		unique.Add(cmd)
	}
	result.CmdlineItems = unique.Items()
	if result.CmdlineItems == nil {
		result.CmdlineItems = []string{}
	}
	result.Count = len(result.CmdlineItems)

	e.logger.Info("extraction complete",
		zap.Int("harvested", len(harvested)),
		zap.Int("classified", len(classified)),
		zap.Int("grounded", len(grounded)),
		zap.Int("final", result.Count))
	return result
}

// Run wraps ExtractCommands as the integration point consumed by the
// external orchestration layer.
func (e *Extractor) Run(ctx context.Context, articleText string) types.ExtractionResult {
	return e.ExtractCommands(ctx, articleText)
}

// classifierFor builds the configured classifier on first use. Embedding
// mode loads the model here, so a heuristic-only configuration never
// touches it.
func (e *Extractor) classifierFor() classify.Classifier {
	e.classifierOnce.Do(func() {
		e.classifier = classify.New(e.cfg.Encoder, e.logger)
	})
	return e.classifier
}

// removedBy lists the items of before that are absent from after,
// preserving before's order.
func removedBy(before, after []string) []string {
	kept := make(map[string]bool, len(after))
	for _, s := range after {
		kept[s] = true
	}

	removed := []string{}
	for _, s := range before {
		if !kept[s] {
			removed = append(removed, s)
		}
	}
	return removed
}
