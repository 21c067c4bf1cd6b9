package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/analyze"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
)

// jsonReport is the single-document JSON rendering of an analysis run.
type jsonReport struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Events      []*models.EnrichedRecord `json:"events"`
	Users       []*models.UserSummary    `json:"users"`
	RedFlags    []*models.EnrichedRecord `json:"red_flags"`
	Overdrafts  []*models.EnrichedRecord `json:"overdraft_events"`
	Mismatches  []*models.EnrichedRecord `json:"mismatch_events"`
	FlowBreaks  []*models.EnrichedRecord `json:"flow_breaks"`
	Anomalies   []*models.EnrichedRecord `json:"anomalies"`
}

// writeJSON renders the result as one indented JSON document.
func (g *Generator) writeJSON(result *analyze.Result) (string, error) {
	if err := os.MkdirAll(g.config.OutputDir, 0o755); err != nil {
		return "", errors.FileError(errors.CodeDirectoryError, g.config.OutputDir, err)
	}
	path := filepath.Join(g.config.OutputDir, "balance_reports.json")

	doc := &jsonReport{
		GeneratedAt: time.Now().UTC(),
		Events:      result.Events,
		Users:       result.Users,
		RedFlags:    Flagged(result.Events),
		Overdrafts:  Overdrafts(result.Events),
		Mismatches:  Mismatches(result.Events),
		FlowBreaks:  FlowBreaks(result.Events),
		Anomalies:   Anomalies(result.Events),
	}

	f, err := os.Create(path)
	if err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", errors.FileError(errors.CodeWriteFailed, path, err)
	}
	return path, nil
}
