package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kshitij-139/GEM-JD/internal/store"
)

var (
	historyLimit int
	historyFull  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated job descriptions and FAQ lists",
	Long:  "Reads the history database (history.enabled must be true) and prints the newest entries first.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().BoolVar(&historyFull, "full", false, "print the generated text of each entry")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.History.Enabled {
		fmt.Println("History is disabled. Set history.enabled: true in config.yaml.")
		return nil
	}

	sqlStore, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer sqlStore.Close()

	recs, err := sqlStore.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	fmt.Printf("%-17s %-16s %-25s %-10s %s\n", "Created", "Kind", "Title", "Language", "Creativity")
	fmt.Println(strings.Repeat("─", 82))
	for _, r := range recs {
		fmt.Printf("%-17s %-16s %-25s %-10s %.1f\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Kind.Label(),
			truncate(r.Title, 25),
			r.Language,
			r.Temperature,
		)
		if historyFull {
			fmt.Printf("\n%s\n\n", r.Text)
		}
	}

	fmt.Printf("\nTotal: %d entries\n", len(recs))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
