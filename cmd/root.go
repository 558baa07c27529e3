// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bonial-oss/cve-triage/internal/datasource/epss"
	"github.com/bonial-oss/cve-triage/internal/datasource/kev"
	"github.com/bonial-oss/cve-triage/internal/datasource/nvd"
	"github.com/bonial-oss/cve-triage/internal/enricher"
	"github.com/bonial-oss/cve-triage/internal/input"
	"github.com/bonial-oss/cve-triage/internal/output"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options holds all CLI flag values.
type Options struct {
	NoNVD       bool
	NoEPSS      bool
	NoKEV       bool
	NVDAPIKey   string
	Format      string
	Input       string
	Output      string
	SortBy      string
	Concurrency int
}

// NewRootCommand creates the root cobra command with all flags.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "cve-triage",
		Short:   "Enrich CVE lists with NVD data, EPSS scores, and KEV status into ticket-ready rows",
		Version: Version,
		Long: `cve-triage reads a batch of CVE identifiers (JSON or CSV) from stdin and
enriches each with the NVD description, CVSS base score and references,
the FIRST EPSS exploit-prediction probability, and CISA Known Exploited
Vulnerabilities (KEV) status. Every item yields one output row with a
composite priority score and a suggested remediation ticket, even when
all upstream lookups fail.

Usage:
  cve-triage < cves.csv
  cve-triage --format table --sort-by priority < batch.json
  cve-triage --format csv -o tickets.csv < batch.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.NoNVD, "no-nvd", false, "Disable NVD enrichment")
	flags.BoolVar(&opts.NoEPSS, "no-epss", false, "Disable EPSS enrichment")
	flags.BoolVar(&opts.NoKEV, "no-kev", false, "Disable KEV enrichment")
	flags.StringVar(&opts.NVDAPIKey, "nvd-api-key", "", "NVD API key for higher rate limits (default $NVD_API_KEY)")
	flags.StringVar(&opts.Format, "format", "json", "Output format: json, csv, table")
	flags.StringVarP(&opts.Input, "input", "i", "", "Read from file instead of stdin")
	flags.StringVarP(&opts.Output, "output", "o", "", "Write to file instead of stdout")
	flags.StringVar(&opts.SortBy, "sort-by", "priority", "Sort table by: priority, epss, cvss, cve")
	flags.IntVar(&opts.Concurrency, "concurrency", 4, "Number of items enriched in parallel")

	return cmd
}

// run orchestrates the full enrichment pipeline.
func run(opts *Options) error {
	// Read the batch.
	var data []byte
	var err error
	if opts.Input != "" && opts.Input != "-" {
		data, err = os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}
	if len(data) == 0 {
		return &ExitError{Code: 2, Message: "no input provided"}
	}

	items, err := input.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	// Initialize data sources. Disabled sources stay nil and their
	// output fields degrade to empty values.
	var vulnSource enricher.VulnSource
	var scoreSource enricher.ScoreSource
	var exploitedRegistry enricher.ExploitedRegistry

	if !opts.NoNVD {
		apiKey := opts.NVDAPIKey
		if apiKey == "" {
			apiKey = os.Getenv("NVD_API_KEY")
		}
		vulnSource = nvd.NewClient(apiKey)
	}
	if !opts.NoEPSS {
		scoreSource = epss.NewClient()
	}
	if !opts.NoKEV {
		exploitedRegistry = kev.NewRegistry()
	}

	pipeline := enricher.New(vulnSource, scoreSource, exploitedRegistry, opts.Concurrency)
	rows := pipeline.Enrich(items)

	// Determine output writer.
	var w io.Writer
	if opts.Output != "" && opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		return output.WriteJSON(w, rows)
	case "csv":
		return output.WriteCSV(w, rows)
	case "table":
		cfg := output.TableConfig{
			SortBy:     opts.SortBy,
			IsTerminal: output.IsOutputToTerminal(w),
		}
		return output.WriteTable(w, rows, cfg)
	default:
		return &ExitError{
			Code:    2,
			Message: fmt.Sprintf("unsupported output format: %s", opts.Format),
		}
	}
}
