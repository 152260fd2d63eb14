// Package config loads the optional YAML file that tunes Ember's
// runtime pacing: the GC's initial threshold and growth factor, and
// the fixed call-frame ceiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime knobs that can vary from run to run;
// every field falls back to its documented default when no file is
// given.
type Config struct {
	// GCInitialThreshold is the byte count that triggers the first
	// collection. Defaults to 1 MiB.
	GCInitialThreshold int `yaml:"gc_initial_threshold,omitempty"`

	// GCGrowthFactor multiplies bytesAllocated after each collection to
	// compute the next threshold. Defaults to 2.
	GCGrowthFactor int `yaml:"gc_growth_factor,omitempty"`

	// StackFramesMax caps concurrent call frames. Defaults to 64.
	StackFramesMax int `yaml:"stack_frames_max,omitempty"`
}

const (
	defaultGCInitialThreshold = 1024 * 1024
	defaultGCGrowthFactor     = 2
	defaultStackFramesMax     = 64
)

// Default returns a Config with every field at its documented
// default, used when no -config flag is given.
func Default() *Config {
	return &Config{
		GCInitialThreshold: defaultGCInitialThreshold,
		GCGrowthFactor:     defaultGCGrowthFactor,
		StackFramesMax:     defaultStackFramesMax,
	}
}

// Load reads and parses a YAML config file at path, filling any
// field the file omits with its default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML config bytes, applying defaults to any omitted
// field.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.GCInitialThreshold == 0 {
		c.GCInitialThreshold = defaultGCInitialThreshold
	}
	if c.GCGrowthFactor == 0 {
		c.GCGrowthFactor = defaultGCGrowthFactor
	}
	if c.StackFramesMax == 0 {
		c.StackFramesMax = defaultStackFramesMax
	}
}
