// Package models defines the core data types for the balance audit pipeline:
// raw records reconstructed from log blocks, enriched records carrying
// derived integrity metrics, and per-user aggregate summaries.
//
// Monetary values use decimal.NullDecimal so that "unknown" (field absent
// from the log, or not parseable as a number) stays distinct from zero all
// the way through the analysis. Timestamps use the zero time.Time as their
// unknown sentinel.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind classifies how an extracted field value should be coerced.
type ValueKind string

const (
	// KindNumber is coerced to decimal.NullDecimal
	KindNumber ValueKind = "number"
	// KindBool is a case-insensitive true/false token
	KindBool ValueKind = "bool"
	// KindText is kept as-is
	KindText ValueKind = "text"
)

// Record is the structured result of one reconstructed log block.
//
// All extracted fields are raw strings exactly as captured by the field
// patterns; the empty string means the pattern did not match anywhere in the
// block. Coercion to typed values happens once, in the analysis engine.
type Record struct {
	RequestID string `json:"requestId"`
	File      string `json:"file"`
	StartTS   string `json:"start_ts,omitempty"`

	PaymentBalance       string `json:"paymentBalance,omitempty"`
	UpdatePaymentBalance string `json:"updatePaymentBalance,omitempty"`
	OldBalance           string `json:"oldBalance,omitempty"`
	NewBalance           string `json:"newBalance,omitempty"`
	Amount               string `json:"amount,omitempty"`
	Action               string `json:"action,omitempty"`
	TransactionAction    string `json:"transactionAction,omitempty"`
	WalletID             string `json:"walletId,omitempty"`
	UserID               string `json:"userId,omitempty"`
	Email                string `json:"email,omitempty"`
	BusinessID           string `json:"id,omitempty"`
}

// NewRecord creates a Record for a completed block.
func NewRecord(requestID, file, startTS string) *Record {
	return &Record{
		RequestID: requestID,
		File:      file,
		StartTS:   startTS,
	}
}

// SetField assigns an extracted field value by its table name. Unknown names
// are rejected so that the field table and the record struct cannot drift
// apart silently.
func (r *Record) SetField(name, value string) error {
	switch name {
	case "paymentBalance":
		r.PaymentBalance = value
	case "updatePaymentBalance":
		r.UpdatePaymentBalance = value
	case "oldBalance":
		r.OldBalance = value
	case "newBalance":
		r.NewBalance = value
	case "amount":
		r.Amount = value
	case "action":
		r.Action = value
	case "transactionAction":
		r.TransactionAction = value
	case "walletId":
		r.WalletID = value
	case "userId":
		r.UserID = value
	case "email":
		r.Email = value
	case "id":
		r.BusinessID = value
	default:
		return fmt.Errorf("unknown record field: %s", name)
	}
	return nil
}

// HasUser reports whether the record carries a user identifier.
func (r *Record) HasUser() bool {
	return r.UserID != ""
}

// HasWallet reports whether the record carries a wallet identifier.
func (r *Record) HasWallet() bool {
	return r.WalletID != ""
}

// String returns a short representation for logging.
func (r *Record) String() string {
	return fmt.Sprintf("Record{RequestID: %s, User: %s, Wallet: %s, File: %s}",
		r.RequestID, r.UserID, r.WalletID, r.File)
}

// EnrichedRecord is a Record plus the derived metrics computed by the
// analysis engine. The source Record is never mutated; enrichment is a
// separate view over it.
type EnrichedRecord struct {
	Record *Record `json:"record"`

	// TS is the parsed start timestamp; the zero value means unknown.
	TS time.Time `json:"ts,omitempty"`

	PaymentBalance decimal.NullDecimal `json:"paymentBalance"`
	OldBalance     decimal.NullDecimal `json:"oldBalance"`
	NewBalance     decimal.NullDecimal `json:"newBalance"`
	Amount         decimal.NullDecimal `json:"amount"`

	// Delta is newBalance - oldBalance, unknown if either operand is.
	Delta decimal.NullDecimal `json:"delta"`
	// AmountSign is +1 or -1, chosen to bring sign*amount closest to Delta.
	AmountSign decimal.NullDecimal `json:"amount_sign"`
	// ExpectedDelta is amount * AmountSign.
	ExpectedDelta decimal.NullDecimal `json:"expected_delta"`
	// NextOld is the following record's oldBalance within the same
	// (user, wallet) group in chronological order.
	NextOld decimal.NullDecimal `json:"next_old"`

	Mismatch        bool `json:"mismatch"`
	OverdraftBefore bool `json:"overdraft_before"`
	OverdraftAfter  bool `json:"overdraft_after"`
	OverdraftCross  bool `json:"overdraft_cross"`
	FlowBreak       bool `json:"flow_break"`
	DeltaAnomaly    bool `json:"delta_anomaly"`
}

// HasTS reports whether the parsed timestamp is known.
func (e *EnrichedRecord) HasTS() bool {
	return !e.TS.IsZero()
}

// Flagged reports whether any of the four integrity flags is set.
func (e *EnrichedRecord) Flagged() bool {
	return e.OverdraftAfter || e.Mismatch || e.FlowBreak || e.DeltaAnomaly
}

// UserSummary aggregates one user's enriched records.
type UserSummary struct {
	UserID string `json:"userId"`

	// FirstTS and LastTS are the earliest and latest known timestamps;
	// zero when the user has no record with a parseable timestamp.
	FirstTS time.Time `json:"first_ts,omitempty"`
	LastTS  time.Time `json:"last_ts,omitempty"`

	Events             int `json:"events"`
	OverdraftEvents    int `json:"overdraft_events"`
	OverdraftCrossings int `json:"overdraft_crossings"`
	Mismatches         int `json:"mismatches"`
	FlowBreaks         int `json:"flow_breaks"`

	// LastBalance is the newBalance of the chronologically last record
	// that has a known newBalance.
	LastBalance decimal.NullDecimal `json:"last_balance"`
	MinBalance  decimal.NullDecimal `json:"min_balance"`
	MaxBalance  decimal.NullDecimal `json:"max_balance"`

	FinalOverdraft bool `json:"final_overdraft"`
}

// String returns a short representation for logging.
func (s *UserSummary) String() string {
	return fmt.Sprintf("UserSummary{User: %s, Events: %d, Overdrafts: %d, Mismatches: %d}",
		s.UserID, s.Events, s.OverdraftEvents, s.Mismatches)
}

// ParseNullDecimal coerces a raw field value to a nullable decimal. Empty or
// unparseable input yields the invalid (unknown) value, never an error:
// absence of a numeric value is a normal record state, not a failure.
func ParseNullDecimal(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// KnownDecimal wraps a decimal into its known nullable form.
func KnownDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParseNullBool coerces a boolean-like token (case-insensitive true/false).
// The second return value reports whether the token was recognized.
func ParseNullBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// timestampLayouts lists the layouts tried when parsing block start
// timestamps, most specific first. Lambda-style logs use RFC3339 with
// fractional seconds; the truncation heuristic in the block scanner can also
// leave a bare date-time without zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a raw start_ts value. The zero time is returned for
// empty or unparseable input; callers treat it as the unknown sentinel.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
