// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the confmatch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confmatch/internal/secrets"
	"github.com/pdiddy/confmatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the confmatch CLI.
var rootCmd = &cobra.Command{
	Use:   "confmatch",
	Short: "Match academic papers to conference calls for papers",
	Long: `confmatch analyzes an academic paper (PDF or DOCX), identifies its
subject areas, and ranks the conferences from a loaded catalog by how well
their topic directions fit the paper.

Each stage is a subcommand: analyze extracts and classifies a paper,
catalog manages the conference list, and match produces the ranked
recommendations. State is kept per session so concurrent users never
see each other's papers or catalogs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./confmatch.yaml or ~/.config/confmatch/config.yaml)")
	rootCmd.PersistentFlags().String("session", "", "session ID isolating paper and catalog state (default \"default\")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("confmatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "confmatch"))
		}
	}

	viper.SetEnvPrefix("CONFMATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig merges the defaults with any config-file or environment
// overrides viper has picked up.
func pipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()

	if viper.IsSet("extraction.max_bytes") {
		cfg.Extraction.MaxBytes = viper.GetInt64("extraction.max_bytes")
	}
	if viper.IsSet("segment.abstract_cap") {
		cfg.Segment.AbstractCap = viper.GetInt("segment.abstract_cap")
	}
	if v := viper.GetString("classifier.taxonomy_file"); v != "" {
		cfg.Classifier.TaxonomyFile = v
	}
	if viper.IsSet("classifier.top_k") {
		cfg.Classifier.TopK = viper.GetInt("classifier.top_k")
	}
	if viper.IsSet("catalog.satellite_filter_enabled") {
		cfg.Catalog.SatelliteFilterEnabled = viper.GetBool("catalog.satellite_filter_enabled")
	}
	if v := viper.GetString("catalog.satellite_marker"); v != "" {
		cfg.Catalog.SatelliteMarker = v
	}
	if viper.IsSet("match.top_n") {
		cfg.Match.TopN = viper.GetInt("match.top_n")
	}
	if v := viper.GetString("match.strategy"); v != "" {
		cfg.Match.Strategy = types.SimilarityStrategy(v)
	}
	if viper.IsSet("match.full_text_fallback_runes") {
		cfg.Match.FullTextFallbackRunes = viper.GetInt("match.full_text_fallback_runes")
	}
	if v := viper.GetString("match.embedding.endpoint"); v != "" {
		cfg.Match.Embedding.Endpoint = v
	}
	if v := viper.GetString("match.embedding.model"); v != "" {
		cfg.Match.Embedding.Model = v
	}
	if viper.IsSet("match.embedding.timeout") {
		cfg.Match.Embedding.Timeout = viper.GetDuration("match.embedding.timeout")
	}
	if v := viper.GetString("session.dir"); v != "" {
		cfg.Session.Dir = v
	}
	if cfg.Match.Embedding.Timeout <= 0 {
		cfg.Match.Embedding.Timeout = 15 * time.Second
	}
	return cfg
}

// sessionID resolves the per-invocation session from flag or environment.
func sessionID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("session")
	if id == "" {
		id = viper.GetString("session.id")
	}
	return id
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
