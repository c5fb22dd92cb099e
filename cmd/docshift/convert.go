package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docshift/internal/history"
	"github.com/pdiddy/docshift/internal/pipeline"
	"github.com/pdiddy/docshift/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.pdf> [more.pdf...]",
	Short: "Convert PDF files to Word documents and export chart images",
	Long: `Convert transforms each input PDF into a Word document colocated with it:
text page by page with a page break between pages, uniform font, size and
spacing, and embedded images that pass the chart heuristic placed inline
and exported as PNG files.

By default only chart-looking images are kept; --include-all-images keeps
everything. An existing .docx is skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("font", "", "font family for the output document (default: Calibri)")
	convertCmd.Flags().Float64("size", 0, "font size in points (default: 11)")
	convertCmd.Flags().Float64("spacing", 0, "line-spacing multiple (default: 1.0)")
	convertCmd.Flags().Float64("margin", 0, "uniform page margin in inches (default: keep document default)")
	convertCmd.Flags().Bool("include-all-images", false, "export and keep every embedded image, not only charts")
	convertCmd.Flags().Bool("force", false, "overwrite an existing .docx instead of skipping")
	convertCmd.Flags().Bool("manifest", false, "also write a <stem>_manifest.yaml run record")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := validatePDFArgs(args); err != nil {
		return err
	}

	opts := runOptions(cmd)
	recs, result := pipeline.ConvertBatch(pipeline.Default(), args, opts, os.Stderr, os.Stdout)

	recordRuns(recs)

	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// validatePDFArgs rejects missing files and non-PDF extensions before any
// work happens.
func validatePDFArgs(args []string) error {
	for _, p := range args {
		if !strings.EqualFold(filepath.Ext(p), ".pdf") {
			return fmt.Errorf("input must be a .pdf file: %s", p)
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("input not readable: %s: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("input is a directory: %s", p)
		}
	}
	return nil
}

// runOptions merges flags over config-file values over built-in defaults.
func runOptions(cmd *cobra.Command) types.RunOptions {
	f := types.DefaultFormat()

	if viper.IsSet("font") {
		f.Font = viper.GetString("font")
	}
	if viper.IsSet("size") {
		f.SizePt = viper.GetFloat64("size")
	}
	if viper.IsSet("spacing") {
		f.Spacing = viper.GetFloat64("spacing")
	}
	if viper.IsSet("margin") {
		f.MarginIn = viper.GetFloat64("margin")
	}

	if v, _ := cmd.Flags().GetString("font"); v != "" {
		f.Font = v
	}
	if v, _ := cmd.Flags().GetFloat64("size"); v > 0 {
		f.SizePt = v
	}
	if v, _ := cmd.Flags().GetFloat64("spacing"); v > 0 {
		f.Spacing = v
	}
	if v, _ := cmd.Flags().GetFloat64("margin"); v > 0 {
		f.MarginIn = v
	}

	includeAll, _ := cmd.Flags().GetBool("include-all-images")
	force, _ := cmd.Flags().GetBool("force")
	writeManifest, _ := cmd.Flags().GetBool("manifest")

	return types.RunOptions{
		Format:           f,
		IncludeAllImages: includeAll,
		Force:            force,
		WriteManifest:    writeManifest,
	}
}

// recordRuns appends the finished runs to the history catalog. Catalog
// problems are warnings only.
func recordRuns(recs []types.RunRecord) {
	cfg := historyConfig()
	if cfg.Disabled {
		return
	}

	store, err := history.Open(cfg.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history catalog unavailable: %v\n", err)
		return
	}
	defer store.Close()

	for _, rec := range recs {
		if err := store.Record(context.Background(), rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
			return
		}
	}
}

// historyConfig resolves the catalog settings from the config file with the
// default path as fallback.
func historyConfig() types.HistoryConfig {
	cfg := types.HistoryConfig{
		Path:     viper.GetString("history.path"),
		Disabled: viper.GetBool("history.disabled"),
	}
	if cfg.Path == "" {
		p, err := history.DefaultPath()
		if err != nil {
			cfg.Disabled = true
			return cfg
		}
		cfg.Path = p
	}
	return cfg
}
