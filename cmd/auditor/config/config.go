// Package config translates CLI flag values into component configurations.
// All paths and tunables flow explicitly from here into the pipeline; no
// package reads input or output locations from ambient state.
package config

import (
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/report"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"

	"github.com/shopspring/decimal"
)

// CreateAnalyzerConfig builds the analysis engine configuration from flag
// values. A non-positive tolerance falls back to the engine default.
func CreateAnalyzerConfig(tolerance float64, minSamples int, sigma float64) (*analyze.Config, error) {
	cfg := analyze.DefaultConfig()
	if tolerance > 0 {
		cfg.Tolerance = decimal.NewFromFloat(tolerance)
	}
	if minSamples > 0 {
		cfg.AnomalyMinSamples = minSamples
	}
	if sigma > 0 {
		cfg.AnomalySigma = sigma
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "analyzer", cfg, err)
	}
	return cfg, nil
}

// CreateReportConfig builds the report generator configuration.
func CreateReportConfig(format, outputDir string, sampleSize int) (*report.Config, error) {
	cfg := report.DefaultConfig()
	if format != "" {
		cfg.Format = report.OutputFormat(format)
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if sampleSize >= 0 {
		cfg.SampleSize = sampleSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "report", cfg, err)
	}
	return cfg, nil
}

// CreateLoggerConfig builds the logging configuration. Verbose drops the
// level to debug.
func CreateLoggerConfig(verbose bool, format string) (*logger.Config, error) {
	cfg := logger.DefaultConfig()
	if verbose {
		cfg.Level = logger.DebugLevel
	}
	if format != "" {
		cfg.Format = logger.Format(format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "logger", cfg, err)
	}
	return cfg, nil
}
