// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	yaml "go.yaml.in/yaml/v3"

	"github.com/pdiddy/cmdextract/internal/embeddings"
	"github.com/pdiddy/cmdextract/internal/rank"
	"github.com/pdiddy/cmdextract/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank [article.txt]",
	Short: "Score and rank command spans (experimental engine)",
	Long: `Rank runs the score-and-rank engine: the content is segmented into
candidate spans with byte offsets, each span is scored against prototype
command embeddings, and selection cascades from a strict similarity
threshold through a relaxed one down to a regex-only fallback.

Unlike extract, rank requires a working embedding model and fails hard
when none is available.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := readArticle(args)
		if err != nil {
			return err
		}

		model, _ := cmd.Flags().GetString("rank-model")
		cacheDir, _ := cmd.Flags().GetString("rank-cache-dir")
		loadTimeout, _ := cmd.Flags().GetDuration("rank-load-timeout")
		provider, err := embeddings.Shared(embeddings.Config{
			Model:       model,
			CacheDir:    cacheDir,
			LoadTimeout: loadTimeout,
		}, logger)
		if err != nil {
			return fmt.Errorf("rank requires an embedding model: %w", err)
		}

		cfg := types.RankConfig{
			SimilarityThreshold: viper.GetFloat64("rank.similarity_threshold"),
			MaxResults:          viper.GetInt("rank.max_results"),
			MaxCandidates:       viper.GetInt("rank.max_candidates"),
		}
		extractor, err := rank.NewExtractor(cmd.Context(), cfg, provider, logger)
		if err != nil {
			return err
		}

		results, err := extractor.ExtractRanked(cmd.Context(), article)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(results)
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	rankCmd.Flags().Float64("threshold", rank.DefaultSimilarityThreshold, "strict-pass similarity threshold")
	rankCmd.Flags().Int("max-results", rank.DefaultMaxResults, "maximum ranked results")
	rankCmd.Flags().Int("max-candidates", rank.DefaultMaxCandidates, "maximum segmentation candidates")
	rankCmd.Flags().String("rank-model", embeddings.DefaultModel, "embedding model identifier")
	rankCmd.Flags().String("rank-cache-dir", "", "directory to cache model files")
	rankCmd.Flags().Duration("rank-load-timeout", 2*time.Minute, "bound on first model load (0 disables)")

	must(viper.BindPFlag("rank.similarity_threshold", rankCmd.Flags().Lookup("threshold")))
	must(viper.BindPFlag("rank.max_results", rankCmd.Flags().Lookup("max-results")))
	must(viper.BindPFlag("rank.max_candidates", rankCmd.Flags().Lookup("max-candidates")))

	rootCmd.AddCommand(rankCmd)
}
