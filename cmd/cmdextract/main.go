// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cmdextract CLI.
// Implements: prd001-harvest, prd002-classify, prd003-qa,
//             prd004-rank (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in the root PersistentPreRunE and shared by all
// subcommands.
var logger = zap.NewNop()

// rootCmd is the base command for the cmdextract CLI.
var rootCmd = &cobra.Command{
	Use:   "cmdextract",
	Short: "Extract attacker command lines from threat-intelligence articles",
	Long: `cmdextract reads threat-intelligence article text and surfaces the
command lines it quotes. The extract subcommand runs the authoritative
harvest, classify, ground, and QA pipeline; the rank subcommand runs the
experimental score-and-rank engine against prototype command embeddings.

Input is a file argument or stdin; output is YAML on stdout.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			cfg := zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
			logger, err = cfg.Build()
		}
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cmdextract.yaml or ~/.config/cmdextract/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cmdextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cmdextract"))
		}
	}

	viper.SetEnvPrefix("CMDEXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// readArticle returns the article text from the single file argument, or
// from stdin when no argument is given.
func readArticle(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading article %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading article from stdin: %w", err)
	}
	return string(data), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
