// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-digest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogojjh/everyday-my-arxiv/internal/secrets"
	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
// Config-file values win over secrets so a run can be pointed at a different
// account without touching .secrets/.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the arxiv-digest CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-digest",
	Short: "Daily digest of relevant arXiv preprints",
	Long: `arxiv-digest produces a daily report of recent arXiv preprints matched
against a keyword taxonomy. It fetches candidates from the arXiv API, keeps
papers inside the publication window and category allow-list, scores them
against primary and secondary keywords, analyzes the top matches with Claude,
and writes a Markdown report with an optional HTML twin and email delivery.

Run "arxiv-digest report" for the full pipeline, or "arxiv-digest fetch" to
preview the selection without spending analysis calls.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-digest.yaml or ~/.config/arxiv-digest/config.yaml)")
	rootCmd.PersistentFlags().String("keywords", "", "keyword taxonomy file (overrides keywords_file from config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-digest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-digest"))
		}
	}

	viper.SetEnvPrefix("ARXIV_DIGEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig unmarshals the merged viper state into a Config, overlays
// secrets and flags, fills defaults, and validates. Every command that
// touches the pipeline goes through here.
func loadConfig() (*types.Config, *types.KeywordsConfig, error) {
	cfg := &types.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("reading configuration: %w", err)
	}

	cfg.LLM.APIKey = secretDefault(secrets.AnthropicAPIKey, cfg.LLM.APIKey)
	cfg.Email.Password = secretDefault(secrets.SMTPPassword, cfg.Email.Password)

	if kw, _ := rootCmd.PersistentFlags().GetString("keywords"); kw != "" {
		cfg.KeywordsFile = kw
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	keywords, err := types.LoadKeywords(cfg.KeywordsFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, keywords, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
