package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for values no search can run with.
var ErrInvalid = errors.New("invalid config")

// FileConfig is the on-disk YAML configuration shape for rootfind.
type FileConfig struct {
	Function  *string  `yaml:"function"`
	DomainMin *float64 `yaml:"domain_min"`
	DomainMax *float64 `yaml:"domain_max"`
	Roots     *int     `yaml:"roots"`

	// Solver constants
	IterationCap       *int     `yaml:"iteration_cap"`
	CoarseTolerance    *float64 `yaml:"coarse_tolerance"`
	FineTolerance      *float64 `yaml:"fine_tolerance"`
	TruncationConstant *float64 `yaml:"truncation_constant"`

	// Bracket discovery
	Strategy      *string  `yaml:"strategy"`
	MaxResamples  *int     `yaml:"max_resamples"`
	ScanSteps     *int     `yaml:"scan_steps"`
	Seed          *uint64  `yaml:"seed"`
	MinSeparation *float64 `yaml:"min_separation"`

	// Reporting
	Output    *string `yaml:"output"`
	Reference *string `yaml:"reference"`
	NoColor   *bool   `yaml:"no_color"`
	NoCache   *bool   `yaml:"no_cache"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given directory.
// It supports .rootfind.yml/.yaml and rootfind.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".rootfind.yml", ".rootfind.yaml", "rootfind.yml", "rootfind.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "rootfind", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Validate checks the values that are set. Unset fields fall back to
// defaults and are not checked.
func (fc FileConfig) Validate() error {
	if fc.DomainMin != nil && fc.DomainMax != nil && *fc.DomainMin >= *fc.DomainMax {
		return fmt.Errorf("%w: domain_min %g must be below domain_max %g", ErrInvalid, *fc.DomainMin, *fc.DomainMax)
	}
	if fc.Roots != nil && *fc.Roots <= 0 {
		return fmt.Errorf("%w: roots must be positive", ErrInvalid)
	}
	if fc.IterationCap != nil && *fc.IterationCap <= 0 {
		return fmt.Errorf("%w: iteration_cap must be positive", ErrInvalid)
	}
	for name, v := range map[string]*float64{
		"coarse_tolerance":    fc.CoarseTolerance,
		"fine_tolerance":      fc.FineTolerance,
		"truncation_constant": fc.TruncationConstant,
		"min_separation":      fc.MinSeparation,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalid, name)
		}
	}
	if fc.Strategy != nil {
		switch *fc.Strategy {
		case "random", "scan":
		default:
			return fmt.Errorf("%w: strategy must be random or scan, got %q", ErrInvalid, *fc.Strategy)
		}
	}
	return nil
}
