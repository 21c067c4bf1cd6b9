package cmd

import (
	"fmt"
	"os"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/cmd/auditor/config"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/logparse"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/report"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the audit command
var (
	inputPath    string
	outputDir    string
	outputFormat string
	logFormat    string
	sampleSize   int

	tolerance         float64
	anomalyMinSamples int
	anomalySigma      float64
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit wallet transaction logs for balance integrity issues",
	Long: `Audit reconstructs transaction events from START/END RequestId blocks in
compressed application logs, derives balance integrity metrics per event,
and writes a per-user summary plus flagged-event subsets.

The input is a directory containing .gz log files (searched recursively) or
a .zip archive of such a directory.

Examples:
  # Workbook output
  auditor audit --input ./logs --output-dir ./out

  # CSV files, larger raw sample
  auditor audit --input data.zip --output-dir ./out --format csv --sample-size 500

  # Stricter outlier detection
  auditor audit --input ./logs --output-dir ./out --anomaly-sigma 2.5`,

	PreRunE: validateAuditFlags,
	RunE:    runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVarP(&inputPath, "input", "i", "", "directory of .gz log files, or a .zip archive (required)")
	auditCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory for report output")
	auditCmd.Flags().StringVarP(&outputFormat, "format", "f", "xlsx", "output format: xlsx, csv, json")
	auditCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
	auditCmd.Flags().IntVar(&sampleSize, "sample-size", 200, "rows in the raw sample table")

	auditCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "balance comparison tolerance (default 1e-6)")
	auditCmd.Flags().IntVar(&anomalyMinSamples, "anomaly-min-samples", 5, "minimum known deltas per user for outlier detection")
	auditCmd.Flags().Float64Var(&anomalySigma, "anomaly-sigma", 3.0, "standard deviations beyond which a delta is an outlier")

	// Input is required, but not via cobra's required-flag check: that runs
	// before PreRunE and would reject invocations that supply the input
	// through AUDITOR_INPUT or a config file. validateAuditFlags enforces it
	// after viper has merged all sources.
	viper.BindPFlag("input", auditCmd.Flags().Lookup("input"))
	viper.BindPFlag("output-dir", auditCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("format", auditCmd.Flags().Lookup("format"))
	viper.BindPFlag("log-format", auditCmd.Flags().Lookup("log-format"))
	viper.BindPFlag("sample-size", auditCmd.Flags().Lookup("sample-size"))
	viper.BindPFlag("tolerance", auditCmd.Flags().Lookup("tolerance"))
	viper.BindPFlag("anomaly-min-samples", auditCmd.Flags().Lookup("anomaly-min-samples"))
	viper.BindPFlag("anomaly-sigma", auditCmd.Flags().Lookup("anomaly-sigma"))
}

func validateAuditFlags(cmd *cobra.Command, args []string) error {
	// Viper lets config file and AUDITOR_* env values override defaults.
	inputPath = viper.GetString("input")
	outputDir = viper.GetString("output-dir")
	outputFormat = viper.GetString("format")
	logFormat = viper.GetString("log-format")
	sampleSize = viper.GetInt("sample-size")
	tolerance = viper.GetFloat64("tolerance")
	anomalyMinSamples = viper.GetInt("anomaly-min-samples")
	anomalySigma = viper.GetFloat64("anomaly-sigma")

	if inputPath == "" {
		return fmt.Errorf("input is required (flag --input or AUDITOR_INPUT)")
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input does not exist: %s", inputPath)
	}

	validFormats := map[string]bool{"xlsx": true, "csv": true, "json": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: xlsx, csv, json", outputFormat)
	}

	if sampleSize < 0 {
		return fmt.Errorf("sample size cannot be negative")
	}
	if anomalyMinSamples < 2 {
		return fmt.Errorf("anomaly-min-samples must be at least 2")
	}
	if anomalySigma <= 0 {
		return fmt.Errorf("anomaly-sigma must be positive")
	}
	if tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative")
	}

	return nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	loggerConfig, err := config.CreateLoggerConfig(viper.GetBool("verbose"), logFormat)
	if err != nil {
		return err
	}
	log, err := logger.NewLogger(loggerConfig)
	if err != nil {
		return err
	}
	logger.SetGlobalLogger(log)

	// Resolve the input up front: a zip archive becomes a temp directory.
	dataDir, err := logparse.ResolveInputDir(inputPath)
	if err != nil {
		return err
	}

	records, err := logparse.ParseDir(dataDir)
	if err != nil {
		return err
	}

	analyzerConfig, err := config.CreateAnalyzerConfig(tolerance, anomalyMinSamples, anomalySigma)
	if err != nil {
		return err
	}
	analyzer, err := analyze.NewAnalyzer(analyzerConfig)
	if err != nil {
		return err
	}
	result, err := analyzer.Analyze(records)
	if err != nil {
		return err
	}

	reportConfig, err := config.CreateReportConfig(outputFormat, outputDir, sampleSize)
	if err != nil {
		return err
	}
	generator, err := report.NewGenerator(reportConfig)
	if err != nil {
		return err
	}
	path, err := generator.Write(result)
	if err != nil {
		return err
	}

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nAudit completed successfully.\n")
		fmt.Fprintf(os.Stderr, "Parsed %d events across %d users.\n", len(result.Events), len(result.Users))
		fmt.Fprintf(os.Stderr, "Report written to %s\n", path)
	}

	return nil
}
