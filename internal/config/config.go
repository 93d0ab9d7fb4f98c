package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sweepd/internal/pattern"
)

// PatternCfg selects which entries a routine removes.
// Type is "any" or "extension"; Extension carries no leading dot.
type PatternCfg struct {
	Type      string `yaml:"type" json:"type"`
	Extension string `yaml:"extension" json:"extension"`
}

// RoutineCfg describes one recurring cleanup task: a directory, a scan
// interval, and a pattern.
type RoutineCfg struct {
	Directory       string     `yaml:"directory" json:"directory"`
	IntervalMinutes int        `yaml:"interval_minutes" json:"interval_minutes"`
	Pattern         PatternCfg `yaml:"pattern" json:"pattern"`
}

type PrometheusCfg struct {
	Port int `yaml:"port" json:"port"`
}

type LoggingCfg struct {
	RotationDays int `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type Config struct {
	Routines     []RoutineCfg  `yaml:"routines" json:"routines"`
	Prometheus   PrometheusCfg `yaml:"prometheus" json:"prometheus"`
	Logging      LoggingCfg    `yaml:"logging" json:"logging"`
	DatabasePath string        `yaml:"database_path" json:"database_path"` // Path to SQLite database for removal history
}

var (
	errNoRoutines       = errors.New("configuration must specify at least one routine")
	errInvalidPath      = errors.New("directory must be absolute")
	errInvalidInterval  = errors.New("interval_minutes must be positive")
	errUnknownPattern   = errors.New("unknown pattern type")
	errInvalidExtension = errors.New("extension must be non-empty and carry no leading dot")
)

func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if len(c.Routines) == 0 {
		return errNoRoutines
	}

	for i := range c.Routines {
		r := &c.Routines[i]

		cp, err := cleanAbsolute(r.Directory)
		if err != nil {
			return err
		}
		r.Directory = cp

		// A zero or negative interval is a configuration error, never
		// defaulted: the scheduler would spin on the directory.
		if r.IntervalMinutes <= 0 {
			return fmt.Errorf("routine %s: %w", r.Directory, errInvalidInterval)
		}

		if _, err := r.Pattern.Compile(); err != nil {
			return fmt.Errorf("routine %s: %w", r.Directory, err)
		}
	}

	if c.Prometheus.Port == 0 {
		c.Prometheus.Port = 9090
	}

	if c.Logging.RotationDays <= 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}

	if c.DatabasePath == "" {
		c.DatabasePath = "/var/lib/sweepd/removals.db"
	}

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

// Compile turns the config representation into a pattern value.
func (p PatternCfg) Compile() (pattern.Pattern, error) {
	switch p.Type {
	case "any", "":
		// an omitted pattern means "remove everything", matching the
		// common case of sweeping a whole directory
		return pattern.Any{}, nil
	case "extension":
		if p.Extension == "" || strings.HasPrefix(p.Extension, ".") {
			return nil, fmt.Errorf("%w: %q", errInvalidExtension, p.Extension)
		}
		return pattern.Extension{Ext: p.Extension}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownPattern, p.Type)
	}
}

func (r RoutineCfg) Interval() time.Duration {
	return time.Duration(r.IntervalMinutes) * time.Minute
}

func (c *Config) PrometheusAddress() string {
	return fmt.Sprintf(":%d", c.Prometheus.Port)
}
