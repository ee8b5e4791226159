// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/confmatch/internal/classify"
	"github.com/pdiddy/confmatch/internal/extract"
	"github.com/pdiddy/confmatch/internal/pipeline"
	"github.com/pdiddy/confmatch/internal/session"
	"github.com/pdiddy/confmatch/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <paper.pdf|paper.docx>",
	Short: "Extract metadata and subject areas from a paper",
	Long: `Analyze reads a PDF or DOCX paper, extracts its title, abstract, and
keywords, and scores the subject areas it belongs to. The result is saved
in the session so a later match run can reuse it.

A paper the extractor cannot read still produces a result: the title falls
back to the filename and no subject is identified.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, _, err := analyzeFile(cmd, args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return classify.FormatJSON(a.Subjects, os.Stdout)
	}

	fmt.Printf("Title:    %s (from %s)\n", a.Meta.Title, a.Meta.TitleSource)
	if a.Meta.Abstract != "" {
		fmt.Printf("Abstract: %s\n", truncateLine(a.Meta.Abstract, 200))
	}
	if a.Meta.HasKeywords() {
		fmt.Printf("Keywords: %v\n", a.Meta.Keywords)
	}
	fmt.Println()
	classify.FormatTable(a.Subjects, os.Stdout)
	return nil
}

// analyzeFile runs the per-document pipeline on path and persists the
// resulting metadata in the session store.
func analyzeFile(cmd *cobra.Command, path string) (pipeline.Analysis, types.PipelineConfig, error) {
	cfg := pipelineConfig()

	if taxFile, _ := cmd.Flags().GetString("taxonomy"); taxFile != "" {
		cfg.Classifier.TaxonomyFile = taxFile
	}
	var taxonomy classify.Taxonomy
	if cfg.Classifier.TaxonomyFile != "" {
		var err error
		taxonomy, err = classify.LoadTaxonomy(cfg.Classifier.TaxonomyFile)
		if err != nil {
			return pipeline.Analysis{}, cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Analysis{}, cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	format, ok := extract.FormatFromName(path)
	if !ok {
		return pipeline.Analysis{}, cfg, fmt.Errorf("%s: unsupported format (want .pdf or .docx)", path)
	}

	doc := types.Document{Name: path, Format: format, Data: data}
	a := pipeline.Analyze(doc, taxonomy, cfg, os.Stderr)

	store, err := session.Open(cfg.Session, sessionID(cmd))
	if err != nil {
		return a, cfg, err
	}
	defer store.Close()
	if err := store.SavePaper(context.Background(), a.Meta); err != nil {
		return a, cfg, err
	}
	return a, cfg, nil
}

func truncateLine(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output subject scores as JSON")
	analyzeCmd.Flags().String("taxonomy", "", "YAML file replacing the built-in subject taxonomy")

	rootCmd.AddCommand(analyzeCmd)
}
