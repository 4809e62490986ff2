// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogojjh/everyday-my-arxiv/internal/arxiv"
	"github.com/gogojjh/everyday-my-arxiv/internal/pipeline"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Preview the selection without analysis or delivery",
	Long: `Fetch runs only the cheap half of the pipeline: query arXiv, apply the
date window, category allow-list, and keyword scoring, and print the papers
that a full report run would analyze. No Claude calls, no report file, no
email. Useful for tuning the keyword taxonomy.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("date", "", "selection date (YYYY-MM-DD, default today)")
	fetchCmd.Flags().Bool("json", false, "output selected papers as JSON")

	rootCmd.AddCommand(fetchCmd)
}

// fetchConfig builds just enough configuration for a preview. Analysis and
// email settings are not validated here, so the taxonomy can be tuned
// without an API key on hand.
func fetchConfig() (*types.Config, *types.KeywordsConfig, error) {
	cfg := &types.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("reading configuration: %w", err)
	}
	if kw, _ := rootCmd.PersistentFlags().GetString("keywords"); kw != "" {
		cfg.KeywordsFile = kw
	}
	cfg.ApplyDefaults()

	var problems []string
	if len(cfg.Arxiv.Categories) == 0 {
		problems = append(problems, "arxiv.categories must list at least one category")
	}
	if cfg.Arxiv.MaxResults <= 0 {
		problems = append(problems, "arxiv.max_results must be > 0")
	}
	if cfg.KeywordsFile == "" {
		problems = append(problems, "keywords_file is required")
	}
	if len(problems) > 0 {
		return nil, nil, fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}

	keywords, err := types.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, keywords, nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, keywords, err := fetchConfig()
	if err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	today, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	client := arxiv.NewClient(cfg.Arxiv)
	raw, err := client.Recent(context.Background())
	if err != nil {
		return err
	}

	selected, counts := pipeline.Select(raw, cfg, keywords, today)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(selected)
	}

	fmt.Fprintf(os.Stdout, "Fetched %d, in window %d, in categories %d, matched %d, selected %d\n\n",
		counts.Fetched, counts.InWindow, counts.InCategory, counts.Matched, counts.Selected)

	if len(selected) == 0 {
		fmt.Println("No papers selected.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-7s  %-14s  %-60s  %s\n",
		"Rank", "Score", "ID", "Title", "Published")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, p := range selected {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-7.2f  %-14s  %-60s  %s\n",
			i+1, p.Score, p.ShortID(), title, p.Published.Format("2006-01-02"))
	}

	fmt.Fprintf(os.Stdout, "\n%d papers\n", len(selected))
	return nil
}
