package model

import (
	"fmt"
	"runtime"
	"time"
)

// Missing bank policies
const (
	MissingBankSkip = "skip" // Log and skip the assessment
	MissingBankFail = "fail" // Abort the run
)

// DefaultMatchingMarker is inserted between a matching prompt and its term
const DefaultMatchingMarker = " (converted_matching_question) select the best definition for term "

// Config holds the complete converter configuration
type Config struct {
	Input       InputConfig       `yaml:"input" mapstructure:"input"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Render      RenderConfig      `yaml:"render" mapstructure:"render"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// InputConfig describes where source documents are found inside an export
type InputConfig struct {
	AssessmentsDir string `yaml:"assessments_dir" mapstructure:"assessments_dir"` // Relative to the export path
	Pattern        string `yaml:"pattern" mapstructure:"pattern"`                 // Glob for QTI documents
}

// OutputConfig describes where rendered files are written
type OutputConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"` // Empty means the export path
	Extension   string `yaml:"extension" mapstructure:"extension"`
	Assessments bool   `yaml:"assessments" mapstructure:"assessments"`
	Banks       bool   `yaml:"banks" mapstructure:"banks"`
}

// ConcurrencyConfig controls the read phase
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers" mapstructure:"workers"`
	ReadsPerSecond float64 `yaml:"reads_per_second" mapstructure:"reads_per_second"` // 0 = unlimited
	Burst          int     `yaml:"burst" mapstructure:"burst"`
}

// RenderConfig controls conversion and rendering
type RenderConfig struct {
	MatchingMarker string `yaml:"matching_marker" mapstructure:"matching_marker"`
	WarnNoCorrect  bool   `yaml:"warn_no_correct" mapstructure:"warn_no_correct"`
	OnMissingBank  string `yaml:"on_missing_bank" mapstructure:"on_missing_bank"` // skip or fail
}

// CacheConfig controls the markup reduction memo
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// LogConfig controls diagnostics output
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			AssessmentsDir: "non_cc_assessments",
			Pattern:        "*.xml.qti",
		},
		Output: OutputConfig{
			Extension:   ".txt",
			Assessments: true,
			Banks:       true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
			Burst:   5,
		},
		Render: RenderConfig{
			MatchingMarker: DefaultMatchingMarker,
			WarnNoCorrect:  true,
			OnMissingBank:  MissingBankSkip,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports settings that cannot drive a conversion run
func (c *Config) Validate() error {
	switch c.Render.OnMissingBank {
	case MissingBankSkip, MissingBankFail:
	default:
		return fmt.Errorf("render.on_missing_bank must be %q or %q, got %q", MissingBankSkip, MissingBankFail, c.Render.OnMissingBank)
	}
	if c.Concurrency.Workers < 1 {
		return fmt.Errorf("concurrency.workers must be at least 1, got %d", c.Concurrency.Workers)
	}
	if c.Concurrency.ReadsPerSecond < 0 {
		return fmt.Errorf("concurrency.reads_per_second must not be negative")
	}
	if c.Input.Pattern == "" {
		return fmt.Errorf("input.pattern must not be empty")
	}
	return nil
}
