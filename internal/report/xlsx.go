package report

import (
	"os"
	"path/filepath"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook renders the full multi-sheet workbook: README and glossary
// sheets first, then the summary, the flagged subsets, and a bounded raw
// sample.
func (g *Generator) writeWorkbook(result *analyze.Result) (string, error) {
	if err := os.MkdirAll(g.config.OutputDir, 0o755); err != nil {
		return "", errors.FileError(errors.CodeDirectoryError, g.config.OutputDir, err)
	}
	path := filepath.Join(g.config.OutputDir, g.config.WorkbookName)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeReadmeSheet(f); err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}
	if err := writeGlossarySheet(f); err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}

	if len(result.Users) > 0 {
		rows := make([][]string, len(result.Users))
		for i, u := range result.Users {
			rows[i] = UserRow(u)
		}
		if err := writeSheet(f, "PerUserSummary", UserColumns, rows); err != nil {
			return "", errors.FileError(errors.CodeWriteFailed, path, err)
		}
	}

	eventSheets := []struct {
		name   string
		events []*models.EnrichedRecord
	}{
		{"RedFlags", Flagged(result.Events)},
		{"OverdraftEvents", Overdrafts(result.Events)},
		{"MismatchEvents", Mismatches(result.Events)},
		{"FlowBreaks", FlowBreaks(result.Events)},
		{"Anomalies", Anomalies(result.Events)},
		{"SampleRaw", Sample(result.Events, g.config.SampleSize)},
	}
	for _, sheet := range eventSheets {
		rows := make([][]string, len(sheet.events))
		for i, e := range sheet.events {
			rows[i] = EventRow(e)
		}
		if err := writeSheet(f, sheet.name, EventColumns, rows); err != nil {
			return "", errors.FileError(errors.CodeWriteFailed, path, err)
		}
	}

	// Drop the implicit default sheet so README leads the workbook.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}
	if err := f.SaveAs(path); err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}
	return path, nil
}

// writeReadmeSheet writes the tab glossary as the leading sheet.
func writeReadmeSheet(f *excelize.File) error {
	rows := make([][]string, len(tabGlossary))
	for i, t := range tabGlossary {
		rows[i] = []string{t.Tab, t.What}
	}
	return writeSheet(f, "README", []string{"Item / Tab", "What it shows"}, rows)
}

// writeGlossarySheet writes the event-column definitions.
func writeGlossarySheet(f *excelize.File) error {
	rows := make([][]string, len(columnGlossary))
	for i, c := range columnGlossary {
		rows[i] = []string{c.Column, c.Definition}
	}
	return writeSheet(f, "ColumnDefinitions", []string{"Column", "Definition"}, rows)
}

// writeSheet creates a sheet and fills it with a header row plus data rows.
func writeSheet(f *excelize.File, name string, header []string, rows [][]string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}
