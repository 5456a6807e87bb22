package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/tasim/sim"
	"github.com/inference-sim/tasim/sim/trace"
)

// OfficeConfig represents an office-hours YAML file (see examples/office-hours.yaml).
// Nil pointers and empty strings mean "not set in YAML".
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type OfficeConfig struct {
	Students     *int   `yaml:"students"`
	Capacity     *int   `yaml:"capacity"`
	MaxWork      *int   `yaml:"max_work"`
	TimeUnit     string `yaml:"time_unit"`
	PollInterval string `yaml:"poll_interval"`
	Policy       string `yaml:"policy"`
	Seed         *int64 `yaml:"seed"`
	MaxThreads   *int   `yaml:"max_threads"`
	TraceLevel   string `yaml:"trace_level"`
}

// LoadOfficeConfig reads and parses an office-hours YAML file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadOfficeConfig(path string) (*OfficeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading office config: %w", err)
	}
	var cfg OfficeConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing office config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values that can be checked without the rest of the run.
func (c *OfficeConfig) Validate() error {
	if c.Policy != "" && !sim.IsValidPolicy(c.Policy) {
		return fmt.Errorf("%w: unknown policy %q", sim.ErrConfiguration, c.Policy)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace_level %q; valid: none, events", sim.ErrConfiguration, c.TraceLevel)
	}
	for name, v := range map[string]string{"time_unit": c.TimeUnit, "poll_interval": c.PollInterval} {
		if v == "" {
			continue
		}
		if _, err := parseDuration(name, v); err != nil {
			return err
		}
	}
	return nil
}

func parseDuration(key, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", sim.ErrConfiguration, key, err)
	}
	return d, nil
}

// runOptions is everything a run needs besides the student count.
type runOptions struct {
	Sim        sim.SimConfig
	TraceLevel trace.TraceLevel
}

// ApplyTo copies YAML values into opts and *students, skipping every value
// whose flag was set explicitly on the command line (CLI wins over YAML).
func (c *OfficeConfig) ApplyTo(opts *runOptions, students *int, flags *pflag.FlagSet) error {
	if err := c.Validate(); err != nil {
		return err
	}
	fromYAML := func(flag string) bool { return !flags.Changed(flag) }

	if c.Students != nil && fromYAML("students") {
		*students = *c.Students
	}
	if c.Capacity != nil && fromYAML("capacity") {
		opts.Sim.Capacity = *c.Capacity
	}
	if c.MaxWork != nil && fromYAML("max-work") {
		opts.Sim.MaxWork = *c.MaxWork
	}
	if c.TimeUnit != "" && fromYAML("time-unit") {
		d, err := parseDuration("time_unit", c.TimeUnit)
		if err != nil {
			return err
		}
		opts.Sim.TimeUnit = d
	}
	if c.PollInterval != "" && fromYAML("poll-interval") {
		d, err := parseDuration("poll_interval", c.PollInterval)
		if err != nil {
			return err
		}
		opts.Sim.PollInterval = d
	}
	if c.Policy != "" && fromYAML("policy") {
		opts.Sim.Policy = sim.Policy(c.Policy)
	}
	if c.Seed != nil && fromYAML("seed") {
		opts.Sim.Seed = *c.Seed
	}
	if c.MaxThreads != nil && fromYAML("max-threads") {
		opts.Sim.MaxThreads = *c.MaxThreads
	}
	if c.TraceLevel != "" && fromYAML("trace-level") {
		opts.TraceLevel = trace.TraceLevel(c.TraceLevel)
	}
	return nil
}
