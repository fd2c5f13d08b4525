// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-papers CLI. It searches
// PubMed and lists papers with at least one author at a pharmaceutical or
// biotech company.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-papers/internal/logging"
	"github.com/pdiddy/pubmed-papers/internal/pubmed"
	"github.com/pdiddy/pubmed-papers/internal/secrets"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE once --debug is known.
	logger = zap.NewNop()

	// loadedSecrets holds credentials loaded from .secrets/ at startup.
	loadedSecrets map[string]string
)

// rootCmd searches PubMed and reports papers with commercial affiliations.
var rootCmd = &cobra.Command{
	Use:   "pubmed-papers <query>",
	Short: "Find PubMed papers with pharmaceutical or biotech co-authors",
	Long: `pubmed-papers searches PubMed for a query, fetches the matching records,
and keeps the papers where at least one author lists a company affiliation
(pharma, biotech, therapeutics, biosciences, laboratories, Inc., Ltd., GmbH).

Results print to the console, or are written to a CSV file with --file.

Examples:
  pubmed-papers "cancer immunotherapy"
  pubmed-papers "CRISPR[Title] AND 2023[PDAT]" -f results.csv
  pubmed-papers "antibody drug conjugate" --debug`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		l, err := logging.New(debug)
		if err != nil {
			return err
		}
		logger = l

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", zap.Int("count", len(s)))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runPapers,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("pubmed-papers {{.Version}}\n")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-papers.yaml or ~/.config/pubmed-papers/config.yaml)")

	rootCmd.Flags().BoolP("debug", "d", false, "print debug information during execution")
	rootCmd.Flags().StringP("file", "f", "", "write results to this file instead of the console")
	rootCmd.Flags().String("format", "csv", "file format when --file is set: csv, json, or yaml")
	rootCmd.Flags().Int("max-results", types.DefaultMaxResults, "maximum number of PubMed search results")
	rootCmd.Flags().Duration("timeout", pubmed.DefaultTimeout, "timeout for each PubMed request")

	_ = viper.BindPFlag("max_results", rootCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("timeout", rootCmd.Flags().Lookup("timeout"))
}

func initConfig() {
	// A missing .env is normal; variables may come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pubmed-papers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pubmed-papers"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("PUBMED_PAPERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so that env overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "")
	v.SetDefault("max_results", types.DefaultMaxResults)
	v.SetDefault("timeout", pubmed.DefaultTimeout)
	v.SetDefault("user_agent", "pubmed-papers/"+version)
	v.SetDefault("tool", "pubmed-papers")
	v.SetDefault("email", "")
	v.SetDefault("api_key", "")
}

// loadPubMedConfig reads the client settings from v and fills credentials
// from .secrets/ when the config leaves them empty.
func loadPubMedConfig(v *viper.Viper, s map[string]string) (types.PubMedConfig, error) {
	var cfg types.PubMedConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = pubmed.DefaultTimeout
	}
	cfg.APIKey = secrets.Default(s, secrets.NCBIAPIKey, cfg.APIKey)
	cfg.Email = secrets.Default(s, secrets.NCBIEmail, cfg.Email)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
