package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-papers/internal/affiliation"
	"github.com/pdiddy/pubmed-papers/internal/pubmed"
	"github.com/pdiddy/pubmed-papers/internal/report"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// runOptions carries the parsed command line into run.
type runOptions struct {
	Query  types.Query
	Debug  bool
	File   string
	Format report.Format
}

func runPapers(cmd *cobra.Command, args []string) error {
	cfg, err := loadPubMedConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	file, _ := cmd.Flags().GetString("file")
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	opts := runOptions{
		Query:  types.Query{Term: args[0], MaxResults: cfg.MaxResults},
		Debug:  debug,
		File:   file,
		Format: format,
	}
	client := pubmed.NewClient(cfg, logger)
	return run(cmd.Context(), client, opts, cmd.OutOrStdout(), logger)
}

// run executes search, fetch, classification, and output. Only a malformed
// efetch document is returned as an error; retrieval and file errors are
// logged and the run ends normally.
func run(ctx context.Context, client *pubmed.Client, opts runOptions, w io.Writer, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := client.FetchRecords(ctx, opts.Query, w)
	if err != nil {
		return err
	}

	papers := affiliation.FilterPapers(records)
	logger.Debug("classified records",
		zap.Int("records", len(records)),
		zap.Int("qualifying", len(papers)))
	if len(papers) == 0 {
		fmt.Fprintln(w, "No qualifying papers found.")
		return nil
	}

	if opts.File != "" {
		if err := report.WriteFile(opts.File, opts.Format, papers); err != nil {
			logger.Error("Error saving output file", zap.String("path", opts.File), zap.Error(err))
			return nil
		}
		fmt.Fprintf(w, "Results saved to %s\n", opts.File)
		return nil
	}

	if opts.Debug {
		fmt.Fprintf(w, "Debug: Searching for '%s'\n", opts.Query.Term)
		fmt.Fprintln(w, "Debug: Searching completed and fetching papers.")
	}
	report.WriteConsole(w, papers)
	if opts.Debug {
		fmt.Fprintf(w, "Debug: '%s' has been successfully fetched.\n", opts.Query.Term)
	}
	return nil
}
