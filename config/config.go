package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/config_local.yaml"

type Config struct {
	Env         string       `yaml:"env" env:"APP_ENV" env-default:"local"`
	StoragePath string       `yaml:"storage_path" env:"STORAGE_PATH"`
	Bench       BenchConfig  `yaml:"bench"`
	Format      FormatConfig `yaml:"format"`
}

type BenchConfig struct {
	Workers    int      `yaml:"workers" env:"BENCH_WORKERS" env-default:"4"`
	Runs       int      `yaml:"runs" env:"BENCH_RUNS" env-default:"100"`
	Workloads  []string `yaml:"workloads" env:"BENCH_WORKLOADS" env-default:"factorial,stem,clean"`
	FactorialN int      `yaml:"factorial_n" env:"BENCH_FACTORIAL_N" env-default:"12"`
	Text       string   `yaml:"text" env:"BENCH_TEXT" env-default:"The quick brown foxes were jumping over the lazy dogs while the hunters kept running."`
}

type FormatConfig struct {
	// ASCII writes "us" instead of "µs".
	ASCII     bool `yaml:"ascii" env:"FORMAT_ASCII" env-default:"false"`
	LongUnits bool `yaml:"long_units" env:"FORMAT_LONG_UNITS" env-default:"false"`
	Precision int  `yaml:"precision" env:"FORMAT_PRECISION" env-default:"3"`
}

// Override adjusts a loaded config before it is validated, e.g. from
// command line flags.
type Override func(cfg *Config)

// WithStoragePath replaces the storage path unless path is empty.
func WithStoragePath(path string) Override {
	return func(cfg *Config) {
		if path != "" {
			cfg.StoragePath = path
		}
	}
}

// MustLoad loads the config from configPath, falling back to CONFIG_PATH and
// then to the default location. It panics on any error.
func MustLoad(configPath string, overrides ...Override) *Config {
	cfg, err := Load(Path(configPath), overrides...)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. A missing file is not an error: the config is then
// read from the environment only.
func Load(path string, overrides ...Override) (*Config, error) {
	const op = "config.Load"

	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: error loading config file: %w", op, err)
		}
	} else if os.IsNotExist(err) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: error reading environment: %w", op, err)
		}
	} else {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, override := range overrides {
		override(&cfg)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// Path resolves the config location.
// Priority: flag > env > default.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return fetchConfigPath()
}

// fetchConfigPath fetches config path from environment variable or default if it was not set in command line flag.
func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		res = defaultConfigPath
	}

	return res
}

func validateConfig(cfg *Config) error {
	if cfg.StoragePath == "" {
		return errors.New("storage_path is required")
	}

	switch cfg.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("unknown env: %s", cfg.Env)
	}

	if cfg.Bench.Workers < 1 {
		return fmt.Errorf("bench.workers must be positive, got %d", cfg.Bench.Workers)
	}
	if cfg.Bench.Runs < 1 {
		return fmt.Errorf("bench.runs must be positive, got %d", cfg.Bench.Runs)
	}
	if cfg.Format.Precision < 0 || cfg.Format.Precision > 9 {
		return fmt.Errorf("format.precision must be within 0..9, got %d", cfg.Format.Precision)
	}

	for i, w := range cfg.Bench.Workloads {
		cfg.Bench.Workloads[i] = strings.TrimSpace(w)
	}

	return nil
}
