package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
)

// writeCSVDir renders one CSV file per table and subset into the output
// directory, mirroring the workbook's sheets.
func (g *Generator) writeCSVDir(result *analyze.Result) (string, error) {
	dir := g.config.OutputDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.FileError(errors.CodeDirectoryError, dir, err)
	}

	userRows := make([][]string, len(result.Users))
	for i, u := range result.Users {
		userRows[i] = UserRow(u)
	}
	if err := writeCSVFile(filepath.Join(dir, "per_user_summary.csv"), UserColumns, userRows); err != nil {
		return "", err
	}

	glossaryRows := make([][]string, len(columnGlossary))
	for i, c := range columnGlossary {
		glossaryRows[i] = []string{c.Column, c.Definition}
	}
	if err := writeCSVFile(filepath.Join(dir, "column_definitions.csv"),
		[]string{"Column", "Definition"}, glossaryRows); err != nil {
		return "", err
	}

	eventFiles := []struct {
		name   string
		events []*models.EnrichedRecord
	}{
		{"events.csv", result.Events},
		{"red_flags.csv", Flagged(result.Events)},
		{"overdraft_events.csv", Overdrafts(result.Events)},
		{"mismatch_events.csv", Mismatches(result.Events)},
		{"flow_breaks.csv", FlowBreaks(result.Events)},
		{"anomalies.csv", Anomalies(result.Events)},
		{"sample_raw.csv", Sample(result.Events, g.config.SampleSize)},
	}
	for _, ef := range eventFiles {
		rows := make([][]string, len(ef.events))
		for i, e := range ef.events {
			rows[i] = EventRow(e)
		}
		if err := writeCSVFile(filepath.Join(dir, ef.name), EventColumns, rows); err != nil {
			return "", err
		}
	}

	return dir, nil
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.FileError(errors.CodeWriteFailed, path, err)
	}
	return nil
}
