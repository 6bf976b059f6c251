// Package config holds the configuration of the chaingen command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmera/chaingen"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Bond rules accepted in GeneratorConfig.BondRule.
const (
	BondSum       = "sum"
	BondSumOffset = "sum+offset"
	BondFixed     = "fixed"
)

// Config is the whole configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Ensemble  EnsembleConfig  `yaml:"ensemble"`
	Hydro     HydroConfig     `yaml:"hydro"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig configures the chain builder.
type GeneratorConfig struct {
	Seed          int64   `yaml:"seed"`
	LocalRetries  int     `yaml:"local_retries"`
	MaxBacktracks int     `yaml:"max_backtracks"`
	BondRule      string  `yaml:"bond_rule"`   // sum, sum+offset, fixed
	BondOffset    float64 `yaml:"bond_offset"` // for sum+offset
	BondLength    float64 `yaml:"bond_length"` // for fixed
	BondTolerance float64 `yaml:"bond_tolerance"`
	OverlapMargin float64 `yaml:"overlap_margin"`
}

// EnsembleConfig configures ensemble generation.
type EnsembleConfig struct {
	Size    int `yaml:"size"`
	Workers int `yaml:"workers"` // 0 means one per CPU
	Bins    int `yaml:"bins"`
}

// HydroConfig holds the solvent conditions for the diffusion coefficient.
type HydroConfig struct {
	Temperature float64 `yaml:"temperature"` // K
	Viscosity   float64 `yaml:"viscosity"`   // cP
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	o := chaingen.DefaultOptions()
	return &Config{
		Generator: GeneratorConfig{
			Seed:          o.Seed(),
			LocalRetries:  o.LocalRetries(),
			MaxBacktracks: o.MaxBacktracks(),
			BondRule:      BondSum,
			BondTolerance: o.BondTolerance(),
			OverlapMargin: o.Overlap(),
		},
		Ensemble: EnsembleConfig{
			Size:    100,
			Workers: 0,
			Bins:    20,
		},
		Hydro: HydroConfig{
			Temperature: 293.15,
			Viscosity:   1.0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file gives the defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"CHAINGEN_WORKERS", &c.Ensemble.Workers},
		{"CHAINGEN_LOCAL_RETRIES", &c.Generator.LocalRetries},
		{"CHAINGEN_MAX_BACKTRACKS", &c.Generator.MaxBacktracks},
	}
	for _, e := range ints {
		if v := os.Getenv(e.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", e.name, err)
			}
			*e.dst = n
		}
	}
	if v := os.Getenv("CHAINGEN_SEED"); v != "" {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CHAINGEN_SEED: %w", err)
		}
		c.Generator.Seed = s
	}
	if v := os.Getenv("CHAINGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	g := c.Generator
	if g.LocalRetries < 1 {
		return fmt.Errorf("local_retries must be positive, got %d", g.LocalRetries)
	}
	if g.MaxBacktracks < 0 {
		return fmt.Errorf("max_backtracks can't be negative, got %d", g.MaxBacktracks)
	}
	switch g.BondRule {
	case BondSum, BondSumOffset:
	case BondFixed:
		if !(g.BondLength > 0) {
			return fmt.Errorf("bond_rule %q needs a positive bond_length, got %g", BondFixed, g.BondLength)
		}
	default:
		return fmt.Errorf("invalid bond_rule %q (valid: %s, %s, %s)", g.BondRule, BondSum, BondSumOffset, BondFixed)
	}
	if g.BondTolerance < 0 {
		return fmt.Errorf("bond_tolerance can't be negative, got %g", g.BondTolerance)
	}
	if g.OverlapMargin < 0 || g.OverlapMargin >= 1 {
		return fmt.Errorf("overlap_margin must be in [0,1), got %g", g.OverlapMargin)
	}
	if c.Ensemble.Size < 1 {
		return fmt.Errorf("ensemble size must be positive, got %d", c.Ensemble.Size)
	}
	if c.Ensemble.Workers < 0 {
		return fmt.Errorf("workers can't be negative, got %d", c.Ensemble.Workers)
	}
	if c.Ensemble.Bins < 1 {
		return fmt.Errorf("bins must be positive, got %d", c.Ensemble.Bins)
	}
	if !(c.Hydro.Temperature > 0) || !(c.Hydro.Viscosity > 0) {
		return fmt.Errorf("temperature and viscosity must be positive, got %g K and %g cP", c.Hydro.Temperature, c.Hydro.Viscosity)
	}
	if _, err := c.Logging.ZapLevel(); err != nil {
		return err
	}
	if f := c.Logging.Format; f != "json" && f != "console" {
		return fmt.Errorf("invalid log format %q (valid: json, console)", f)
	}
	return nil
}

// Rule returns the chaingen bond rule for the configuration.
func (g GeneratorConfig) Rule() chaingen.BondRule {
	switch g.BondRule {
	case BondSumOffset:
		return chaingen.SumPlusOffset(g.BondOffset)
	case BondFixed:
		return chaingen.FixedLength(g.BondLength)
	}
	return chaingen.SumOfRadii
}

// Options returns the builder options for the configuration, logging to logger.
func (c *Config) Options(logger *zap.Logger) *chaingen.Options {
	o := chaingen.DefaultOptions()
	o.Seed(c.Generator.Seed)
	o.LocalRetries(c.Generator.LocalRetries)
	o.MaxBacktracks(c.Generator.MaxBacktracks)
	o.BondRule(c.Generator.Rule())
	o.BondTolerance(c.Generator.BondTolerance)
	o.Overlap(c.Generator.OverlapMargin)
	o.Logger(logger)
	return o
}

// ZapLevel returns the zap level for the configured level name.
func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the logger for the configuration. With verbose, the level
// is debug regardless of the configured one. Logs go to stderr.
func (l LoggingConfig) NewLogger(verbose bool) (*zap.Logger, error) {
	lvl, err := l.ZapLevel()
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	if l.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
