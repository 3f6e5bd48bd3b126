// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// EncoderMode selects how candidates are classified.
// Per prd002-classify R1.1.
type EncoderMode string

const (
	// ModeEmbedding classifies by similarity margin against reference
	// centroids, with the heuristic gate always applied on top.
	ModeEmbedding EncoderMode = "embedding"

	// ModeHeuristic skips model loading entirely and classifies with the
	// heuristic rules alone.
	ModeHeuristic EncoderMode = "heuristic"
)

// EncoderConfig holds settings for the embedding encoder.
// Per prd002-classify R1.1-R1.3.
type EncoderConfig struct {
	// Mode selects the classifier variant: embedding (default) or heuristic.
	Mode EncoderMode `json:"mode" yaml:"mode"`

	// Model is the embedding model identifier
	// (e.g. "BAAI/bge-small-en-v1.5").
	Model string `json:"model" yaml:"model"`

	// CacheDir is the directory to cache model files.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// LoadTimeout bounds the first model load. Zero means no timeout.
	LoadTimeout time.Duration `json:"load_timeout" yaml:"load_timeout"`
}

// HarvestConfig holds settings for the candidate harvester.
// Per prd001-harvest R2.1-R2.3.
type HarvestConfig struct {
	// PatternsFile is an optional YAML resource mapping pattern names to
	// regular expressions, merged over the built-in table at startup.
	// Invalid entries are skipped with a warning.
	PatternsFile string `json:"patterns_file" yaml:"patterns_file"`
}

// QAConfig holds settings for the QA validation pass.
// Per prd003-qa R1.1-R1.2.
type QAConfig struct {
	// Enabled gates the pass; disabled means pass-through identity.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Model is reserved for a future live-model QA pass. The current
	// deterministic pass accepts but ignores it.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
}

// RankConfig holds settings for the score-and-rank engine.
// Per prd004-rank R3.1-R3.3.
type RankConfig struct {
	// SimilarityThreshold is the strict-pass acceptance score (default 0.7).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// MaxResults caps the returned spans (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxCandidates caps segmentation output (default 200).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Encoder EncoderConfig `json:"encoder" yaml:"encoder"`
	Harvest HarvestConfig `json:"harvest" yaml:"harvest"`
	QA      QAConfig      `json:"qa" yaml:"qa"`
	Rank    RankConfig    `json:"rank" yaml:"rank"`
}
