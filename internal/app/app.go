package app

import (
	"log/slog"

	"github.com/dariasmyr/stopwatch/config"
	"github.com/dariasmyr/stopwatch/internal/services/bench"
	"github.com/dariasmyr/stopwatch/internal/services/workload"
)

type App struct {
	Bench      *bench.Bench
	Printer    bench.Printer
	Workloads  *workload.Set
	StorageApp *StorageApp
}

func New(
	log *slog.Logger,
	cfg *config.Config,
) (*App, error) {
	storageApp, err := NewStorageApp(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	workloads := workload.New(cfg.Bench.FactorialN, cfg.Bench.Text)

	benchService := bench.New(
		log,
		cfg.Bench.Workers,
		cfg.Bench.Runs,
		workloads,
		storageApp.Storage(),
		storageApp.Storage(),
	)

	return &App{
		Bench: benchService,
		Printer: bench.Printer{
			ASCII:     cfg.Format.ASCII,
			LongUnits: cfg.Format.LongUnits,
			Precision: cfg.Format.Precision,
		},
		Workloads:  workloads,
		StorageApp: storageApp,
	}, nil
}
