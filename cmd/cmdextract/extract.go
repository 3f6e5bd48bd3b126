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
	"github.com/pdiddy/cmdextract/internal/pipeline"
	"github.com/pdiddy/cmdextract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [article.txt]",
	Short: "Extract command lines with the authoritative pipeline",
	Long: `Extract runs the classify-then-filter pipeline: regex harvesting,
semantic classification, literal grounding against the article, and an
optional QA validation pass. Every returned command appears verbatim in
the input text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		article, err := readArticle(args)
		if err != nil {
			return err
		}

		cfg := types.PipelineConfig{
			Encoder: types.EncoderConfig{
				Mode:        types.EncoderMode(viper.GetString("encoder.mode")),
				Model:       viper.GetString("encoder.model"),
				CacheDir:    viper.GetString("encoder.cache_dir"),
				LoadTimeout: viper.GetDuration("encoder.load_timeout"),
			},
			Harvest: types.HarvestConfig{
				PatternsFile: viper.GetString("harvest.patterns_file"),
			},
			QA: types.QAConfig{
				Enabled: viper.GetBool("qa.enabled"),
				Model:   viper.GetString("qa.model"),
			},
		}

		result := pipeline.New(cfg, logger).Run(cmd.Context(), article)

		out, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	extractCmd.Flags().String("encoder-mode", string(types.ModeEmbedding), "classifier mode: embedding or heuristic")
	extractCmd.Flags().String("encoder-model", embeddings.DefaultModel, "embedding model identifier")
	extractCmd.Flags().String("cache-dir", "", "directory to cache model files")
	extractCmd.Flags().Duration("load-timeout", 2*time.Minute, "bound on first model load (0 disables)")
	extractCmd.Flags().String("patterns", "", "YAML file of pattern overrides merged over the built-in table")
	extractCmd.Flags().Bool("qa", false, "enable the QA validation pass")
	extractCmd.Flags().String("qa-model", "", "QA model identifier (reserved)")

	must(viper.BindPFlag("encoder.mode", extractCmd.Flags().Lookup("encoder-mode")))
	must(viper.BindPFlag("encoder.model", extractCmd.Flags().Lookup("encoder-model")))
	must(viper.BindPFlag("encoder.cache_dir", extractCmd.Flags().Lookup("cache-dir")))
	must(viper.BindPFlag("encoder.load_timeout", extractCmd.Flags().Lookup("load-timeout")))
	must(viper.BindPFlag("harvest.patterns_file", extractCmd.Flags().Lookup("patterns")))
	must(viper.BindPFlag("qa.enabled", extractCmd.Flags().Lookup("qa")))
	must(viper.BindPFlag("qa.model", extractCmd.Flags().Lookup("qa-model")))

	rootCmd.AddCommand(extractCmd)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
