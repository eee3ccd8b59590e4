// Package config loads CLI settings from a YAML file, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"life-engine/pkg/algorithm"
	"life-engine/pkg/temporal"
)

// Config holds every setting of the life CLI.
type Config struct {
	LogLevel  string `yaml:"log_level" validate:"loglevel"`
	Algorithm string `yaml:"algorithm" validate:"required"`

	HashLife HashLifeConfig `yaml:"hashlife"`
	Temporal TemporalConfig `yaml:"temporal"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// HashLifeConfig mirrors algorithm.HashLifeConfig.
type HashLifeConfig struct {
	MaxNodes int `yaml:"max_nodes" validate:"gte=0"`
}

// TemporalConfig configures `life run`.
type TemporalConfig struct {
	GenerationsPerStep   int     `yaml:"generations_per_step" validate:"gte=1"`
	TargetStepsPerSecond float64 `yaml:"target_steps_per_second" validate:"gt=0"`
	MetricsAddr          string  `yaml:"metrics_addr"`
}

// SweepConfig configures `life sweep`.
type SweepConfig struct {
	Soups       int     `yaml:"soups" validate:"gte=0"`
	Size        int     `yaml:"size" validate:"gte=1"`
	Density     float64 `yaml:"density" validate:"gte=0,lte=1"`
	Generations int     `yaml:"generations" validate:"gte=0"`
	Workers     int     `yaml:"workers" validate:"gte=1"`
	Seed        int64   `yaml:"seed"`
}

// validate reports field errors by their YAML names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		var level slog.Level
		return level.UnmarshalText([]byte(fl.Field().String())) == nil
	})
	return v
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		Algorithm: "hashlife",
		HashLife:  HashLifeConfig{MaxNodes: algorithm.DefaultHashLifeConfig().MaxNodes},
		Temporal: TemporalConfig{
			GenerationsPerStep:   temporal.DefaultConfig().GenerationsPerStep,
			TargetStepsPerSecond: temporal.DefaultConfig().TargetStepsPerSecond,
		},
		Sweep: SweepConfig{
			Soups:       64,
			Size:        16,
			Density:     0.35,
			Generations: 128,
			Workers:     runtime.NumCPU(),
			Seed:        1337,
		},
	}
}

// Load reads path over the defaults and then applies LIFE_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	loadFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("LIFE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LIFE_ALGORITHM"); v != "" {
		cfg.Algorithm = v
	}
	if v := os.Getenv("LIFE_HASHLIFE_MAX_NODES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.HashLife.MaxNodes = i
		}
	}
	if v := os.Getenv("LIFE_METRICS_ADDR"); v != "" {
		cfg.Temporal.MetricsAddr = v
	}
}

// Validate checks every setting against its range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// AlgorithmOptions returns the registry configuration for Algorithm.
func (c Config) AlgorithmOptions() map[string]string {
	return map[string]string{"max_nodes": strconv.Itoa(c.HashLife.MaxNodes)}
}

// TemporalOptions returns the controller tunables.
func (c Config) TemporalOptions() temporal.Config {
	return temporal.Config{
		GenerationsPerStep:   c.Temporal.GenerationsPerStep,
		TargetStepsPerSecond: c.Temporal.TargetStepsPerSecond,
	}
}

// Bind attaches the global settings to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.Algorithm, "algorithm", c.Algorithm, "stepping algorithm (hashlife, naive)")
	fs.IntVar(&c.HashLife.MaxNodes, "max-nodes", c.HashLife.MaxNodes, "HashLife arena size that triggers a reset (0 disables)")
	markConfig(fs, "log-level", "algorithm", "max-nodes")
}

// BindRun attaches the `life run` settings.
func (c *Config) BindRun(fs *pflag.FlagSet) {
	fs.IntVar(&c.Temporal.GenerationsPerStep, "gps", c.Temporal.GenerationsPerStep, "generations per step")
	fs.Float64Var(&c.Temporal.TargetStepsPerSecond, "tps", c.Temporal.TargetStepsPerSecond, "target steps per second")
	fs.StringVar(&c.Temporal.MetricsAddr, "metrics-addr", c.Temporal.MetricsAddr, "serve Prometheus metrics on this address")
	markConfig(fs, "gps", "tps", "metrics-addr")
}

// BindSweep attaches the `life sweep` settings.
func (c *Config) BindSweep(fs *pflag.FlagSet) {
	fs.IntVar(&c.Sweep.Soups, "soups", c.Sweep.Soups, "number of random soups")
	fs.IntVar(&c.Sweep.Size, "size", c.Sweep.Size, "side of each soup")
	fs.Float64Var(&c.Sweep.Density, "density", c.Sweep.Density, "fraction of alive cells in each soup")
	fs.IntVar(&c.Sweep.Generations, "generations", c.Sweep.Generations, "generations to compare")
	fs.IntVar(&c.Sweep.Workers, "workers", c.Sweep.Workers, "number of worker goroutines")
	fs.Int64Var(&c.Sweep.Seed, "seed", c.Sweep.Seed, "seed of the first soup")
	markConfig(fs, "soups", "size", "density", "generations", "workers", "seed")
}

// configAnnotation marks flags that mirror a Config field, so that
// command-specific flags sharing a name are left alone.
const configAnnotation = "life-config"

func markConfig(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = fs.SetAnnotation(name, configAnnotation, []string{"true"})
	}
}

// ApplyFlags copies every flag explicitly set on fs onto c. Only flags
// registered by the Bind methods, on any Config, are considered.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	target := pflag.NewFlagSet("config", pflag.ContinueOnError)
	c.Bind(target)
	c.BindRun(target)
	c.BindSweep(target)

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || f.Annotations[configAnnotation] == nil || target.Lookup(f.Name) == nil {
			return
		}
		if setErr := target.Set(f.Name, f.Value.String()); setErr != nil {
			err = fmt.Errorf("flag --%s: %w", f.Name, setErr)
		}
	})
	if err != nil {
		return err
	}
	return c.Validate()
}
