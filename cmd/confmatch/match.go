// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/confmatch/internal/match"
	"github.com/pdiddy/confmatch/internal/secrets"
	"github.com/pdiddy/confmatch/internal/session"
	"github.com/pdiddy/confmatch/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match [paper.pdf|paper.docx]",
	Short: "Rank the session's conferences against a paper",
	Long: `Match scores every conference in the session catalog against the paper
and prints the best fits, highest similarity first. Ties are broken by the
earlier submission deadline.

With a file argument the paper is analyzed first; without one the paper
from the last analyze run is used. Similarity is lexical by default; the
embedding strategy calls a remote embeddings API and falls back to lexical
when the service is unreachable.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()

	paper, err := resolvePaper(cmd, args, &cfg)
	if err != nil {
		return err
	}

	if topN, _ := cmd.Flags().GetInt("top"); topN > 0 {
		cfg.Match.TopN = topN
	}
	if s, _ := cmd.Flags().GetString("strategy"); s != "" {
		cfg.Match.Strategy = types.SimilarityStrategy(s)
	}

	store, err := session.Open(cfg.Session, sessionID(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Catalog(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no catalog loaded in session %q; run: confmatch catalog load <conferences.xlsx>", store.ID())
	}

	strategy, err := buildStrategy(cfg.Match)
	if err != nil {
		return err
	}

	out, err := match.Rank(context.Background(), strategy, paper, records, cfg.Match, time.Now(), os.Stderr)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return match.FormatJSON(out, os.Stdout)
	}
	match.FormatTable(out, os.Stdout)
	return nil
}

// resolvePaper analyzes the file argument when given, or falls back to the
// paper saved by the last analyze run in this session.
func resolvePaper(cmd *cobra.Command, args []string, cfg *types.PipelineConfig) (match.Paper, error) {
	if len(args) == 1 {
		a, usedCfg, err := analyzeFile(cmd, args[0])
		if err != nil {
			return match.Paper{}, err
		}
		*cfg = usedCfg
		return match.Paper{Meta: a.Meta, FullText: a.FullText}, nil
	}

	store, err := session.Open(cfg.Session, sessionID(cmd))
	if err != nil {
		return match.Paper{}, err
	}
	defer store.Close()

	meta, ok, err := store.Paper(context.Background())
	if err != nil {
		return match.Paper{}, err
	}
	if !ok {
		return match.Paper{}, fmt.Errorf("no paper in session %q; run: confmatch analyze <paper>", store.ID())
	}
	return match.Paper{Meta: meta}, nil
}

// buildStrategy constructs the similarity scorer the configuration asks for.
func buildStrategy(cfg types.MatchConfig) (match.Strategy, error) {
	switch cfg.Strategy {
	case types.StrategyLexical, "":
		return &match.LexicalStrategy{}, nil
	case types.StrategyEmbedding:
		ecfg := cfg.Embedding
		ecfg.APIKey = secretDefault(secrets.EmbeddingAPIKey, viper.GetString("match.embedding.api_key"))
		if ecfg.Endpoint == "" {
			return nil, fmt.Errorf("embedding strategy needs match.embedding.endpoint in the config")
		}
		return &match.EmbeddingStrategy{Encoder: match.NewClient(ecfg)}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want lexical or embedding)", cfg.Strategy)
	}
}

func init() {
	matchCmd.Flags().Int("top", 0, "maximum recommendations to print (0 = config default)")
	matchCmd.Flags().String("strategy", "", "similarity strategy: lexical or embedding")
	matchCmd.Flags().Bool("json", false, "output matches as JSON")
	matchCmd.Flags().String("taxonomy", "", "YAML file replacing the built-in subject taxonomy")

	rootCmd.AddCommand(matchCmd)
}
