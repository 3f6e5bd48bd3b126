// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/embeddings"
	"github.com/pdiddy/cmdextract/internal/orderedset"
	"github.com/pdiddy/cmdextract/pkg/types"
)

// similarityMargin is how far above the invalid-centroid similarity a
// candidate must score against the valid centroid to be accepted (R2.4).
const similarityMargin = 0.05

// Classifier filters candidates to the command-like subset, preserving
// first-seen order and never raising for degraded inputs.
type Classifier interface {
	Classify(ctx context.Context, candidates []string) []string
}

// New builds the classifier variant the configuration selects. Heuristic
// mode never touches the embedding provider. Embedding mode asks for the
// shared provider; when it is unavailable the heuristic variant is chosen
// instead, with a warning (R3.1-R3.2).
func New(cfg types.EncoderConfig, logger *zap.Logger) Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Mode == types.ModeHeuristic {
		return &HeuristicClassifier{logger: logger}
	}

	provider, err := embeddings.Shared(embeddings.Config{
		Model:       cfg.Model,
		CacheDir:    cfg.CacheDir,
		LoadTimeout: cfg.LoadTimeout,
	}, logger)
	if err != nil {
		logger.Warn("embedding provider unavailable, using heuristic classifier",
			zap.Error(err))
		return &HeuristicClassifier{logger: logger}
	}
	return NewEmbeddingClassifier(provider, logger)
}

// HeuristicClassifier applies the rule gate alone.
type HeuristicClassifier struct {
	logger *zap.Logger
}

// Classify returns the deduplicated candidates that pass the heuristic
// gate, in first-seen order.
func (c *HeuristicClassifier) Classify(_ context.Context, candidates []string) []string {
	return gateCandidates(candidates)
}

// EmbeddingClassifier accepts candidates whose similarity to the valid
// centroid beats the invalid centroid by the margin, after the heuristic
// gate. Centroids are computed once and cached for the classifier's
// lifetime. Any provider failure degrades the classifier to heuristic-only
// for the rest of the process; it is logged, never raised (R3.3).
type EmbeddingClassifier struct {
	provider embeddings.Provider
	logger   *zap.Logger

	centroidOnce    sync.Once
	validCentroid   []float32
	invalidCentroid []float32
	degraded        atomic.Bool
}

// NewEmbeddingClassifier wraps provider. A nil logger disables logging.
func NewEmbeddingClassifier(provider embeddings.Provider, logger *zap.Logger) *EmbeddingClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddingClassifier{provider: provider, logger: logger}
}

// Classify filters candidates by centroid similarity margin. The
// heuristic gate applies first regardless of mode (R2.5).
func (c *EmbeddingClassifier) Classify(ctx context.Context, candidates []string) []string {
	gated := gateCandidates(candidates)
	if len(gated) == 0 {
		return gated
	}
	if c.degraded.Load() {
		return gated
	}

	c.centroidOnce.Do(func() { c.buildCentroids(ctx) })
	if c.degraded.Load() {
		return gated
	}

	vectors, err := c.provider.EmbedDocuments(ctx, gated)
	if err != nil {
		c.degrade("candidate encode failed", err)
		return gated
	}

	var kept []string
	for i, candidate := range gated {
		simValid := cosine32(vectors[i], c.validCentroid)
		simInvalid := cosine32(vectors[i], c.invalidCentroid)
		if simValid > simInvalid+similarityMargin {
			kept = append(kept, candidate)
		}
	}
	c.logger.Debug("embedding classification",
		zap.Int("gated", len(gated)),
		zap.Int("kept", len(kept)))
	return kept
}

// buildCentroids encodes the reference examples into two L2-normalized
// centroid vectors. Runs once; failure degrades the classifier.
func (c *EmbeddingClassifier) buildCentroids(ctx context.Context) {
	validVecs, err := c.provider.EmbedDocuments(ctx, validExamples)
	if err != nil {
		c.degrade("encoding valid reference examples failed", err)
		return
	}
	invalidVecs, err := c.provider.EmbedDocuments(ctx, invalidExamples)
	if err != nil {
		c.degrade("encoding invalid reference examples failed", err)
		return
	}
	c.validCentroid = l2Normalize(meanVector(validVecs))
	c.invalidCentroid = l2Normalize(meanVector(invalidVecs))
}

// degrade switches the classifier to heuristic-only for the remainder of
// the process.
func (c *EmbeddingClassifier) degrade(reason string, err error) {
	if c.degraded.CompareAndSwap(false, true) {
		c.logger.Warn("embedding classifier degraded to heuristic-only",
			zap.String("reason", reason),
			zap.Error(err))
	}
}

// gateCandidates deduplicates candidates in first-seen order and applies
// the heuristic gate.
func gateCandidates(candidates []string) []string {
	unique := orderedset.New[string]()
	for _, candidate := range candidates {
		unique.Add(candidate)
	}

	var gated []string
	for _, candidate := range unique.Items() {
		if heuristicAccept(candidate) {
			gated = append(gated, candidate)
		}
	}
	return gated
}
