package main

import (
	"fmt"

	"github.com/dariasmyr/stopwatch/internal/lib/logger/sl"
	"github.com/spf13/cobra"
)

func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear label...",
		Short: "Delete stored measurements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, _, log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.StorageApp.Stop(); err != nil {
					log.Error("Failed to close database", sl.Err(err))
				}
			}()

			for _, label := range args {
				if err := application.Bench.Clear(cmd.Context(), label); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", label)
			}

			return nil
		},
	}
}
