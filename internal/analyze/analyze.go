// Package analyze implements the balance-integrity analysis engine.
//
// The engine consumes the flat record collection produced by log parsing and
// derives, per record: coerced numeric fields, the balance delta, an
// inferred transaction sign, a delta/amount mismatch flag, overdraft flags,
// a balance-flow continuity flag, and a per-user statistical outlier flag.
// It also computes one aggregate summary row per user.
//
// Unknown values (absent or unparseable fields) are first-class: they
// propagate through every derived computation and never produce a positive
// flag. The engine flags only what it can evidence.
package analyze

import (
	"fmt"
	"sort"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"

	"github.com/shopspring/decimal"
)

// Config holds tunables for the analysis engine.
type Config struct {
	// Tolerance is the maximum absolute difference treated as equal when
	// comparing balances and deltas.
	Tolerance decimal.Decimal `json:"tolerance"`

	// AnomalyMinSamples is the minimum number of known deltas a user needs
	// before outlier detection applies.
	AnomalyMinSamples int `json:"anomaly_min_samples"`

	// AnomalySigma is the number of sample standard deviations beyond
	// which a delta is flagged.
	AnomalySigma float64 `json:"anomaly_sigma"`
}

// DefaultConfig returns the standard engine configuration: 1e-6 tolerance,
// five-sample minimum, three-sigma threshold.
func DefaultConfig() *Config {
	return &Config{
		Tolerance:         decimal.New(1, -6),
		AnomalyMinSamples: 5,
		AnomalySigma:      3.0,
	}
}

// Validate validates the engine configuration.
func (c *Config) Validate() error {
	if c.Tolerance.IsNegative() {
		return fmt.Errorf("tolerance cannot be negative")
	}
	if c.AnomalyMinSamples < 2 {
		return fmt.Errorf("anomaly min samples must be at least 2, got %d", c.AnomalyMinSamples)
	}
	if c.AnomalySigma <= 0 {
		return fmt.Errorf("anomaly sigma must be positive, got %v", c.AnomalySigma)
	}
	return nil
}

// Result holds the two analysis outputs: the enriched event collection and
// the per-user summary table.
type Result struct {
	Events []*models.EnrichedRecord `json:"events"`
	Users  []*models.UserSummary    `json:"users"`
}

// Analyzer runs the analysis pipeline over a record collection.
type Analyzer struct {
	config *Config
	logger logger.Logger
}

// NewAnalyzer creates an analyzer with the given configuration.
func NewAnalyzer(config *Config) (*Analyzer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, errors.ConfigurationError(errors.CodeInvalidConfig, "analyzer", config, err)
	}
	return &Analyzer{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("analyze"),
	}, nil
}

// Analyze runs the full pipeline: per-record enrichment, grouped flow
// checks, per-user outlier detection, and user summaries. The input records
// are not mutated. Input order is preserved in Result.Events.
func (a *Analyzer) Analyze(records []*models.Record) (*Result, error) {
	if records == nil {
		return nil, errors.AnalysisError(errors.CodeProcessingError, "analyze",
			fmt.Errorf("record collection cannot be nil"))
	}

	events := make([]*models.EnrichedRecord, len(records))
	for i, rec := range records {
		events[i] = a.enrich(rec)
	}

	a.applyFlowChecks(events)
	a.applyAnomalyDetection(events)
	users := a.summarize(events)

	a.logger.WithFields(logger.Fields{
		"events":  len(events),
		"users":   len(users),
		"flagged": countFlagged(events),
	}).Info("Analysis complete")

	return &Result{Events: events, Users: users}, nil
}

// enrich computes all single-record derived fields.
func (a *Analyzer) enrich(rec *models.Record) *models.EnrichedRecord {
	e := &models.EnrichedRecord{Record: rec}

	e.TS = models.ParseTimestamp(rec.StartTS)
	e.PaymentBalance = models.ParseNullDecimal(rec.PaymentBalance)
	e.OldBalance = models.ParseNullDecimal(rec.OldBalance)
	e.NewBalance = models.ParseNullDecimal(rec.NewBalance)
	e.Amount = models.ParseNullDecimal(rec.Amount)

	if e.OldBalance.Valid && e.NewBalance.Valid {
		e.Delta = models.KnownDecimal(e.NewBalance.Decimal.Sub(e.OldBalance.Decimal))
	}

	if e.Delta.Valid && e.Amount.Valid {
		e.AmountSign = models.KnownDecimal(inferSign(e.Delta.Decimal, e.Amount.Decimal))
		e.ExpectedDelta = models.KnownDecimal(e.Amount.Decimal.Mul(e.AmountSign.Decimal))
		diff := e.Delta.Decimal.Sub(e.ExpectedDelta.Decimal).Abs()
		e.Mismatch = diff.GreaterThan(a.config.Tolerance)
	}

	e.OverdraftBefore = e.OldBalance.Valid && e.OldBalance.Decimal.IsNegative()
	e.OverdraftAfter = e.NewBalance.Valid && e.NewBalance.Decimal.IsNegative()
	e.OverdraftCross = !e.OverdraftBefore && e.OverdraftAfter

	return e
}

// inferSign chooses the sign that brings sign*amount closest to delta. A
// tie favors +1.
func inferSign(delta, amount decimal.Decimal) decimal.Decimal {
	asCredit := delta.Sub(amount).Abs()
	asDebit := delta.Add(amount).Abs()
	if asCredit.LessThanOrEqual(asDebit) {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// sortChronological orders events in place by (timestamp, requestId)
// ascending, with unknown timestamps after all known ones. The sort is
// stable so records that tie completely keep their emission order.
func sortChronological(events []*models.EnrichedRecord) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.HasTS() && !b.HasTS():
			return true
		case !a.HasTS() && b.HasTS():
			return false
		case a.HasTS() && b.HasTS() && !a.TS.Equal(b.TS):
			return a.TS.Before(b.TS)
		default:
			return a.Record.RequestID < b.Record.RequestID
		}
	})
}

func countFlagged(events []*models.EnrichedRecord) int {
	n := 0
	for _, e := range events {
		if e.Flagged() {
			n++
		}
	}
	return n
}
