package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docshift/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion runs from the local catalog",
	Long: `History lists conversion runs recorded in the local SQLite catalog,
newest first, with their outcome and produced files.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	historyCmd.Flags().Bool("failed", false, "show only failed runs")
	historyCmd.Flags().String("db", "", "catalog database path (default: user data directory)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		cfg := historyConfig()
		if cfg.Disabled {
			return fmt.Errorf("history catalog is disabled")
		}
		dbPath = cfg.Path
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	failedOnly, _ := cmd.Flags().GetBool("failed")

	recs, err := store.List(context.Background(), history.ListOptions{
		Limit:      limit,
		FailedOnly: failedOnly,
	})
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(os.Stdout, "%s  %-9s  %s  (%d pages, %d images, %s)\n",
			rec.StartedAt.Local().Format(time.DateTime), rec.Status, rec.Source,
			rec.Pages, len(rec.Images), rec.Duration.Round(time.Millisecond))
		if rec.Error != "" {
			fmt.Fprintf(os.Stdout, "    error: %s\n", rec.Error)
		}
	}
	return nil
}
