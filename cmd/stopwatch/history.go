package main

import (
	"fmt"
	"io"

	"github.com/dariasmyr/stopwatch/internal/domain/models"
	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
	"github.com/dariasmyr/stopwatch/internal/services/bench"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type historyEntry struct {
	Label       string          `yaml:"label"`
	Runs        int             `yaml:"runs"`
	Min         string          `yaml:"min"`
	Max         string          `yaml:"max"`
	Mean        string          `yaml:"mean"`
	Total       string          `yaml:"total"`
	MeanSeconds float64         `yaml:"mean_seconds"`
	Samples     []models.Sample `yaml:"samples,omitempty"`
}

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		output      string
		withSamples bool
	)

	cmd := &cobra.Command{
		Use:   "history [label...]",
		Short: "Summarise stored measurements",
		Long:  `Prints a summary of the stored measurements per label. Without arguments every stored label is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != outputText && output != outputYAML {
				return fmt.Errorf("unknown output format %q", output)
			}

			application, _, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.StorageApp.Stop(); err != nil {
					log.Error("Failed to close database", sl.Err(err))
				}
			}()

			ctx := cmd.Context()

			labels := args
			if len(labels) == 0 {
				labels, err = application.Bench.Labels(ctx)
				if err != nil {
					return err
				}
			}

			entries := make([]historyEntry, 0, len(labels))
			for _, label := range labels {
				report, samples, err := application.Bench.History(ctx, label)
				if err != nil {
					return err
				}

				entry := newHistoryEntry(application.Printer, report)
				if withSamples {
					entry.Samples = samples
				}
				entries = append(entries, entry)
			}

			if output == outputYAML {
				return writeYAML(cmd.OutOrStdout(), entries)
			}
			writeText(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text or yaml")
	cmd.Flags().BoolVar(&withSamples, "samples", false, "Include raw samples in yaml output")

	return cmd
}

func newHistoryEntry(p bench.Printer, r bench.Report) historyEntry {
	return historyEntry{
		Label:       r.Label,
		Runs:        r.Runs,
		Min:         p.Sprint(r.Min),
		Max:         p.Sprint(r.Max),
		Mean:        p.Sprint(r.Mean),
		Total:       p.Sprint(r.Total),
		MeanSeconds: r.Mean.FractionalSecs(),
	}
}

func writeYAML(w io.Writer, entries []historyEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, entries []historyEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no measurements stored")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-12s runs=%-6d mean=%-12s min=%-12s max=%-12s total=%s\n",
			e.Label, e.Runs, e.Mean, e.Min, e.Max, e.Total)
	}
}
