//go:build !cgo

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embeddings

import (
	"context"
	"fmt"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "BAAI/bge-small-en-v1.5"

// FastEmbedProvider is a stub for binaries built without cgo; the ONNX
// runtime is unavailable there and every constructor call fails with
// ErrUnavailable.
type FastEmbedProvider struct{}

// NewFastEmbedProvider fails: the model runtime requires cgo.
func NewFastEmbedProvider(_ Config) (*FastEmbedProvider, error) {
	return nil, fmt.Errorf("%w: binary built without cgo", ErrUnavailable)
}

// EmbedDocuments fails with ErrUnavailable.
func (p *FastEmbedProvider) EmbedDocuments(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ErrUnavailable
}

// EmbedQuery fails with ErrUnavailable.
func (p *FastEmbedProvider) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	return nil, ErrUnavailable
}

// Dimension returns 0; no model is loaded.
func (p *FastEmbedProvider) Dimension() int { return 0 }

// Close is a no-op.
func (p *FastEmbedProvider) Close() error { return nil }
