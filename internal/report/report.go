// Package report renders analysis results into their delivery formats.
//
// The engine exposes two tables, the enriched event collection and the
// per-user summary, with fixed column sets. On top of those, the report
// derives the named subsets reviewers actually work from: all flagged rows,
// overdraft-only, mismatch-only, flow-break-only, anomaly-only, and a
// bounded sample of the raw table.
//
// Supported formats:
//   - xlsx: a multi-sheet workbook with README and glossary sheets
//   - csv: one file per table and subset in the output directory
//   - json: a single structured document
package report

import (
	"fmt"
	"time"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"
)

// OutputFormat represents the supported report output formats.
type OutputFormat string

const (
	FormatXLSX OutputFormat = "xlsx"
	FormatCSV  OutputFormat = "csv"
	FormatJSON OutputFormat = "json"
)

// IsValid checks if the output format is supported.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatXLSX, FormatCSV, FormatJSON:
		return true
	default:
		return false
	}
}

// Config holds report generation options.
type Config struct {
	Format    OutputFormat `json:"format"`
	OutputDir string       `json:"output_dir"`

	// WorkbookName is the xlsx file name inside OutputDir.
	WorkbookName string `json:"workbook_name"`

	// SampleSize bounds the SampleRaw table.
	SampleSize int `json:"sample_size"`
}

// DefaultConfig returns the default report configuration.
func DefaultConfig() *Config {
	return &Config{
		Format:       FormatXLSX,
		OutputDir:    ".",
		WorkbookName: "balance_reports.xlsx",
		SampleSize:   200,
	}
}

// Validate validates the report configuration.
func (c *Config) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.Format == FormatXLSX && c.WorkbookName == "" {
		return fmt.Errorf("workbook name cannot be empty")
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("sample size cannot be negative, got %d", c.SampleSize)
	}
	return nil
}

// Generator renders analysis results in the configured format.
type Generator struct {
	config *Config
	logger logger.Logger
}

// NewGenerator creates a report generator with the given configuration.
func NewGenerator(config *Config) (*Generator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return &Generator{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("report"),
	}, nil
}

// Write renders the result and returns the path of the primary artifact
// (the workbook, the output directory for csv, or the json document).
func (g *Generator) Write(result *analyze.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("analysis result cannot be nil")
	}

	started := time.Now()
	var path string
	var err error

	switch g.config.Format {
	case FormatXLSX:
		path, err = g.writeWorkbook(result)
	case FormatCSV:
		path, err = g.writeCSVDir(result)
	case FormatJSON:
		path, err = g.writeJSON(result)
	default:
		return "", fmt.Errorf("unsupported output format: %s", g.config.Format)
	}
	if err != nil {
		return "", err
	}

	g.logger.WithFields(logger.Fields{
		"format":   string(g.config.Format),
		"path":     path,
		"duration": time.Since(started).String(),
	}).Info("Report written")

	return path, nil
}
