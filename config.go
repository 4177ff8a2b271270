package main

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "jackc.yaml"

// Config holds the driver settings. Flags given on the command line override
// values read from the configuration file.
type Config struct {
	Jobs    int    `yaml:"jobs"`
	Out     string `yaml:"out"`
	Verbose bool   `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{Jobs: runtime.NumCPU()}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !required {
		return cfg, nil
	} else if err != nil {
		return cfg, errors.Wrapf(err, "could not read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "could not parse config %q", path)
	}
	if cfg.Jobs < 1 {
		return cfg, errors.Errorf("config %q: jobs must be positive, got %d", path, cfg.Jobs)
	}
	return cfg, nil
}

func configure(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := loadConfig(orDefault(path, defaultConfigFile), path != "")
	if err != nil {
		return cfg, err
	}
	if flags.Changed("jobs") {
		if cfg.Jobs, _ = flags.GetInt("jobs"); cfg.Jobs < 1 {
			return cfg, errors.Errorf("--jobs must be positive, got %d", cfg.Jobs)
		}
	}
	if flags.Changed("out") {
		cfg.Out, _ = flags.GetString("out")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	return cfg, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
