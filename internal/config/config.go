package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	// Source grades file
	Input InputConfig

	// Rendered chart
	Output OutputConfig

	// Chart styling
	Plot PlotConfig

	// Logging
	Observability ObservabilityConfig
}

// InputConfig describes where the grades table comes from.
type InputConfig struct {
	// Path to a comma separated file, or an .xlsx workbook
	Path string

	// Field separator for text input
	Delimiter rune
}

// OutputConfig describes where the scatter plot is written.
type OutputConfig struct {
	// Relative paths resolve against the working directory.
	// An existing file is overwritten.
	ImagePath string
}

// PlotConfig holds the scatter plot layout.
type PlotConfig struct {
	// Canvas is square, SizeInches on each side
	SizeInches float64
	DPI        float64

	// Spacing between major ticks on both axes
	TickStep float64

	// Scatter marker
	MarkerAreaPt2 float64 // matplotlib-style marker area in points^2
	MarkerAlpha   float64

	// Average reference line
	LineWidthPt float64
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel string // debug, info, warn, error
}

// Default returns the fixed configuration used by the entry point.
func Default() Config {
	return Config{
		Input: InputConfig{
			Path:      "TEST.csv",
			Delimiter: ',',
		},
		Output: OutputConfig{
			ImagePath: "Grades.png",
		},
		Plot: PlotConfig{
			SizeInches:    10,
			DPI:           100,
			TickStep:      5,
			MarkerAreaPt2: 100,
			MarkerAlpha:   0.5,
			LineWidthPt:   2,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	var errs []string

	if c.Input.Path == "" {
		errs = append(errs, "input path is required")
	}
	if c.Input.Delimiter == 0 || c.Input.Delimiter == '\n' || c.Input.Delimiter == '\r' {
		errs = append(errs, "input delimiter must be a printable rune")
	}
	if c.Output.ImagePath == "" {
		errs = append(errs, "output image path is required")
	}

	if c.Plot.SizeInches <= 0 {
		errs = append(errs, "plot size must be positive")
	}
	if c.Plot.DPI <= 0 {
		errs = append(errs, "plot DPI must be positive")
	}
	if c.Plot.TickStep <= 0 {
		errs = append(errs, "tick step must be positive")
	}
	if c.Plot.MarkerAlpha < 0 || c.Plot.MarkerAlpha > 1 {
		errs = append(errs, "marker alpha must be 0-1")
	}

	switch strings.ToLower(c.Observability.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", c.Observability.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
