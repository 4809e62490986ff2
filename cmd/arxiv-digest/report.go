// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogojjh/everyday-my-arxiv/internal/analyze"
	"github.com/gogojjh/everyday-my-arxiv/internal/arxiv"
	"github.com/gogojjh/everyday-my-arxiv/internal/citations"
	"github.com/gogojjh/everyday-my-arxiv/internal/mail"
	"github.com/gogojjh/everyday-my-arxiv/internal/pipeline"
	"github.com/gogojjh/everyday-my-arxiv/internal/secrets"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full daily digest pipeline",
	Long: `Report runs the complete pipeline: fetch recent papers, select the
top keyword matches, analyze them with Claude, write the Markdown report
(plus HTML when configured), and send the email notification.

The report date defaults to today; pass --date to regenerate an earlier
digest. --no-email skips delivery regardless of configuration, and --rank
overrides the configured final ordering.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("date", "", "report date (YYYY-MM-DD, default today)")
	reportCmd.Flags().Bool("no-email", false, "skip email delivery for this run")
	reportCmd.Flags().String("rank", "", "final ordering: score or impact (overrides config)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, keywords, err := loadConfig()
	if err != nil {
		return err
	}

	if noEmail, _ := cmd.Flags().GetBool("no-email"); noEmail {
		cfg.Email.Enabled = false
	}
	if rank, _ := cmd.Flags().GetString("rank"); rank != "" {
		cfg.Report.Rank = types.RankMode(rank)
		if cfg.Report.Rank != types.RankScore && cfg.Report.Rank != types.RankImpact {
			return fmt.Errorf("unsupported rank %q: use score or impact", rank)
		}
	}

	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	p := &pipeline.Pipeline{
		Cfg:      cfg,
		Keywords: keywords,
		Source:   arxiv.NewClient(cfg.Arxiv),
		Analyzer: analyze.NewClaudeBackend(cfg.LLM),
		Notifier: mail.NewNotifier(cfg.Email),
		Out:      os.Stdout,
	}
	if cfg.Citations.Enabled {
		p.Citations = citations.NewClient(cfg.Citations, loadedSecrets[secrets.OpenAlexEmail])
	}

	result, err := p.Run(context.Background(), date)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Done: %d papers in %s\n", len(result.Papers), result.MDPath)
	return nil
}
