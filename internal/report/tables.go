package report

import (
	"strconv"
	"time"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"

	"github.com/shopspring/decimal"
)

// EventColumns is the fixed column set of the enriched event table. This
// ordering is part of the output contract; consumers key on it.
var EventColumns = []string{
	"requestId", "file", "start_ts", "ts",
	"paymentBalance", "oldBalance", "newBalance", "amount",
	"action", "transactionAction", "walletId", "userId", "email", "id",
	"delta", "amount_sign", "expected_delta", "mismatch",
	"overdraft_before", "overdraft_after", "overdraft_cross",
	"next_old", "flow_break", "delta_anomaly",
}

// UserColumns is the fixed column set of the per-user summary table.
var UserColumns = []string{
	"userId", "first_ts", "last_ts", "events",
	"overdraft_events", "overdraft_crossings", "mismatches", "flow_breaks",
	"last_balance", "min_balance", "max_balance", "final_overdraft",
}

// EventRow renders one enriched record as strings in EventColumns order.
// Unknown values render as the empty string.
func EventRow(e *models.EnrichedRecord) []string {
	r := e.Record
	return []string{
		r.RequestID,
		r.File,
		r.StartTS,
		formatTime(e.TS),
		formatDecimal(e.PaymentBalance),
		formatDecimal(e.OldBalance),
		formatDecimal(e.NewBalance),
		formatDecimal(e.Amount),
		r.Action,
		r.TransactionAction,
		r.WalletID,
		r.UserID,
		r.Email,
		r.BusinessID,
		formatDecimal(e.Delta),
		formatDecimal(e.AmountSign),
		formatDecimal(e.ExpectedDelta),
		formatBool(e.Mismatch),
		formatBool(e.OverdraftBefore),
		formatBool(e.OverdraftAfter),
		formatBool(e.OverdraftCross),
		formatDecimal(e.NextOld),
		formatBool(e.FlowBreak),
		formatBool(e.DeltaAnomaly),
	}
}

// UserRow renders one user summary as strings in UserColumns order.
func UserRow(s *models.UserSummary) []string {
	return []string{
		s.UserID,
		formatTime(s.FirstTS),
		formatTime(s.LastTS),
		strconv.Itoa(s.Events),
		strconv.Itoa(s.OverdraftEvents),
		strconv.Itoa(s.OverdraftCrossings),
		strconv.Itoa(s.Mismatches),
		strconv.Itoa(s.FlowBreaks),
		formatDecimal(s.LastBalance),
		formatDecimal(s.MinBalance),
		formatDecimal(s.MaxBalance),
		formatBool(s.FinalOverdraft),
	}
}

// Flagged returns the events with any integrity flag set.
func Flagged(events []*models.EnrichedRecord) []*models.EnrichedRecord {
	return filter(events, func(e *models.EnrichedRecord) bool { return e.Flagged() })
}

// Overdrafts returns the events with a negative post-transaction balance.
func Overdrafts(events []*models.EnrichedRecord) []*models.EnrichedRecord {
	return filter(events, func(e *models.EnrichedRecord) bool { return e.OverdraftAfter })
}

// Mismatches returns the events whose delta disagrees with the expected
// signed amount.
func Mismatches(events []*models.EnrichedRecord) []*models.EnrichedRecord {
	return filter(events, func(e *models.EnrichedRecord) bool { return e.Mismatch })
}

// FlowBreaks returns the events whose balance does not carry over to the
// next event of the same user and wallet.
func FlowBreaks(events []*models.EnrichedRecord) []*models.EnrichedRecord {
	return filter(events, func(e *models.EnrichedRecord) bool { return e.FlowBreak })
}

// Anomalies returns the events flagged as statistical delta outliers.
func Anomalies(events []*models.EnrichedRecord) []*models.EnrichedRecord {
	return filter(events, func(e *models.EnrichedRecord) bool { return e.DeltaAnomaly })
}

// Sample returns the first n events, or all of them when fewer exist.
func Sample(events []*models.EnrichedRecord, n int) []*models.EnrichedRecord {
	if n < 0 {
		n = 0
	}
	if len(events) <= n {
		return events
	}
	return events[:n]
}

func filter(events []*models.EnrichedRecord, keep func(*models.EnrichedRecord) bool) []*models.EnrichedRecord {
	var out []*models.EnrichedRecord
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
