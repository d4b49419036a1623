package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
	"github.com/dariasmyr/stopwatch/internal/services/bench"
	"github.com/spf13/cobra"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [workload...]",
		Short: "Time workloads and store the measurements",
		Long: `Runs every named workload the configured number of times and prints the
mean elapsed time together with min and max. Without arguments the workloads
listed in the config are run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, cfg, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.StorageApp.Stop(); err != nil {
					log.Error("Failed to close database", sl.Err(err))
				}
			}()

			names := args
			if len(names) == 0 {
				names = cfg.Bench.Workloads
			}

			for _, name := range names {
				report, err := application.Bench.Run(cmd.Context(), name)
				if err != nil {
					log.Error("workload failed", slog.String("workload", name), sl.Err(err))
					return err
				}
				printRun(cmd.OutOrStdout(), application.Printer, report)
			}

			return nil
		},
	}
}

func printRun(w io.Writer, p bench.Printer, r bench.Report) {
	fmt.Fprintf(w, "%s: Needed %s (min %s, max %s, %d runs, %d failed)\n",
		r.Label, p.Sprint(r.Mean), p.Sprint(r.Min), p.Sprint(r.Max), r.Runs, r.Failures)
	fmt.Fprintf(w, "%s: In seconds: %v\n", r.Label, r.Mean.FractionalSecs())
}
