// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/confmatch/internal/catalog"
	"github.com/pdiddy/confmatch/internal/session"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the session's conference catalog",
	Long: `Catalog manages the conference list used for matching. Load replaces
the session's catalog from an xlsx workbook, show lists the loaded
records, and export writes them back out with canonical headers.`,
}

// --- load subcommand ---

var catalogLoadCmd = &cobra.Command{
	Use:   "load <conferences.xlsx>",
	Short: "Replace the session catalog from an xlsx workbook",
	Long: `Load reads the first sheet of an xlsx workbook, resolves its headers
(Chinese alias headers are recognized), and replaces the session's catalog
wholesale. A workbook missing required columns is rejected and the
previous catalog is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogLoad,
}

func runCatalogLoad(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if noFilter, _ := cmd.Flags().GetBool("no-satellite-filter"); noFilter {
		cfg.Catalog.SatelliteFilterEnabled = false
	}
	if marker, _ := cmd.Flags().GetString("satellite-marker"); marker != "" {
		cfg.Catalog.SatelliteMarker = marker
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	records, stats, err := catalog.LoadBytes(data, cfg.Catalog)
	if err != nil {
		return err
	}

	store, err := session.Open(cfg.Session, sessionID(cmd))
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.ReplaceCatalog(context.Background(), records); err != nil {
		return err
	}

	fmt.Printf("Loaded %d conferences into session %q", len(records), store.ID())
	if stats.Filtered > 0 {
		fmt.Printf(" (%d non-satellite events filtered)", stats.Filtered)
	}
	if stats.Skipped > 0 {
		fmt.Printf(" (%d blank rows skipped)", stats.Skipped)
	}
	fmt.Println()
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the conferences loaded in the session",
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	store, err := session.Open(cfg.Session, sessionID(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Catalog(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No catalog loaded. Run: confmatch catalog load <conferences.xlsx>")
		return nil
	}

	fmt.Printf("%-4s  %-50s  %-30s  %s\n", "Row", "Conference", "Topic direction", "Deadline")
	fmt.Println(strings.Repeat("-", 100))
	for _, rec := range records {
		fmt.Printf("%-4d  %-50s  %-30s  %s\n",
			rec.Row, truncateLine(rec.FullName(), 50), truncateLine(rec.TopicDirection, 30), rec.DeadlineRaw)
	}
	fmt.Printf("\n%d conferences\n", len(records))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export <out.xlsx>",
	Short: "Write the session catalog to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
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
		return fmt.Errorf("no catalog loaded in session %q", store.ID())
	}

	data, err := catalog.ExportXLSX(records)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Printf("Exported %d conferences to %s\n", len(records), args[0])
	return nil
}

func init() {
	catalogLoadCmd.Flags().Bool("no-satellite-filter", false, "keep conferences whose name lacks the satellite marker")
	catalogLoadCmd.Flags().String("satellite-marker", "", "override the satellite marker substring")

	catalogShowCmd.Flags().Bool("json", false, "output records as JSON")

	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
