// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package embeddings provides sentence embedding generation backed by a
// local ONNX model. The model is a process-wide singleton, loaded lazily
// on first use and cached for the process lifetime.
// Implements: prd002-classify R2.1; docs/ARCHITECTURE § Embeddings.
package embeddings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrUnavailable indicates the embedding dependency is absent
	// (for example a binary built without cgo). Callers decide whether
	// to degrade to heuristics or fail hard.
	ErrUnavailable = errors.New("embeddings: backend not available")

	// ErrLoadTimeout indicates the model did not load within the
	// configured bound.
	ErrLoadTimeout = errors.New("embeddings: model load timed out")

	// ErrEmptyInput indicates an empty text batch or query.
	ErrEmptyInput = errors.New("embeddings: empty input")

	// ErrEmbeddingFailed wraps encode failures from the model runtime.
	ErrEmbeddingFailed = errors.New("embeddings: encode failed")

	// ErrInvalidConfig indicates an unsupported model or option.
	ErrInvalidConfig = errors.New("embeddings: invalid config")
)

// Provider is the embedding capability injected into the classifier and
// the ranking scorer.
type Provider interface {
	// EmbedDocuments encodes a batch of texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery encodes a single text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding dimension for the loaded model.
	Dimension() int

	// Close releases model resources.
	Close() error
}

// Config holds settings for constructing a provider.
type Config struct {
	// Model is the embedding model identifier. Empty selects the default
	// (BAAI/bge-small-en-v1.5).
	Model string

	// CacheDir is the model file cache directory.
	CacheDir string

	// MaxLength is the maximum input sequence length (default 512).
	MaxLength int

	// LoadTimeout bounds model initialization. Zero means wait forever.
	LoadTimeout time.Duration
}

// newProvider constructs the backing provider. Tests override this to
// avoid loading a real model.
var newProvider = func(cfg Config) (Provider, error) {
	p, err := NewFastEmbedProvider(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

var (
	sharedOnce     sync.Once
	sharedProvider Provider
	sharedErr      error
)

// Shared returns the process-wide provider, initializing it on the first
// call. Initialization runs at most once even under concurrent first use;
// a failed load is cached and returned to every later caller.
func Shared(cfg Config, logger *zap.Logger) (Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sharedOnce.Do(func() {
		start := time.Now()
		sharedProvider, sharedErr = load(cfg)
		if sharedErr != nil {
			logger.Warn("embedding model load failed",
				zap.String("model", cfg.Model),
				zap.Error(sharedErr))
			return
		}
		logger.Info("embedding model loaded",
			zap.String("model", cfg.Model),
			zap.Int("dimension", sharedProvider.Dimension()),
			zap.Duration("elapsed", time.Since(start)))
	})
	return sharedProvider, sharedErr
}

// load constructs a provider, bounding initialization by cfg.LoadTimeout.
// The underlying loader has no cancellation hook, so on timeout the loader
// goroutine is abandoned and its eventual result closed.
func load(cfg Config) (Provider, error) {
	if cfg.LoadTimeout <= 0 {
		return newProvider(cfg)
	}

	type loadResult struct {
		provider Provider
		err      error
	}
	ch := make(chan loadResult, 1)
	go func() {
		p, err := newProvider(cfg)
		ch <- loadResult{provider: p, err: err}
	}()

	select {
	case r := <-ch:
		return r.provider, r.err
	case <-time.After(cfg.LoadTimeout):
		go func() {
			if r := <-ch; r.provider != nil {
				r.provider.Close()
			}
		}()
		return nil, fmt.Errorf("%w after %s", ErrLoadTimeout, cfg.LoadTimeout)
	}
}
