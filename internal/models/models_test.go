package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseNullDecimal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      string
	}{
		{name: "Integer", input: "42", wantValid: true, want: "42"},
		{name: "Negative decimal", input: "-12.50", wantValid: true, want: "-12.5"},
		{name: "Surrounding whitespace", input: "  3.25 ", wantValid: true, want: "3.25"},
		{name: "Empty", input: "", wantValid: false},
		{name: "Garbage", input: "12.3.4", wantValid: false},
		{name: "Non-numeric", input: "abc", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNullDecimal(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ParseNullDecimal(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid && got.Decimal.String() != tt.want {
				t.Errorf("ParseNullDecimal(%q) = %s, want %s", tt.input, got.Decimal.String(), tt.want)
			}
		})
	}
}

func TestParseNullBool(t *testing.T) {
	tests := []struct {
		input    string
		want     bool
		wantKnown bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"False", false, true},
		{" false ", false, true},
		{"", false, false},
		{"yes", false, false},
	}

	for _, tt := range tests {
		got, known := ParseNullBool(tt.input)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("ParseNullBool(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		unknown bool
	}{
		{
			name:  "RFC3339 with millis",
			input: "2024-01-02T03:04:05.123Z",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 123000000, time.UTC),
		},
		{
			name:  "RFC3339 without fraction",
			input: "2024-01-02T03:04:05Z",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:  "Truncated without zone",
			input: "2024-01-02T03:04:05.123",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 123000000, time.UTC),
		},
		{name: "Empty", input: "", unknown: true},
		{name: "Garbage", input: "not a timestamp", unknown: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.input)
			if tt.unknown {
				if !got.IsZero() {
					t.Errorf("ParseTimestamp(%q) = %v, want zero time", tt.input, got)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRecordSetField(t *testing.T) {
	rec := NewRecord("req-1", "a.gz", "2024-01-02T03:04:05Z")

	fields := map[string]string{
		"paymentBalance":       "100",
		"updatePaymentBalance": "true",
		"oldBalance":           "10",
		"newBalance":           "15",
		"amount":               "5",
		"action":               "PAYMENT",
		"transactionAction":    "DEBIT",
		"walletId":             "w-1",
		"userId":               "u-1",
		"email":                "user@example.com",
		"id":                   "biz-1",
	}
	for name, value := range fields {
		if err := rec.SetField(name, value); err != nil {
			t.Fatalf("SetField(%q) returned error: %v", name, err)
		}
	}

	if rec.OldBalance != "10" || rec.NewBalance != "15" || rec.Amount != "5" {
		t.Errorf("Balance fields not set: %+v", rec)
	}
	if rec.UserID != "u-1" || rec.WalletID != "w-1" || rec.BusinessID != "biz-1" {
		t.Errorf("Identifier fields not set: %+v", rec)
	}

	if err := rec.SetField("nonexistent", "x"); err == nil {
		t.Error("Expected error for unknown field name")
	}
}

func TestRecordHasUserHasWallet(t *testing.T) {
	rec := NewRecord("req-1", "a.gz", "")
	if rec.HasUser() || rec.HasWallet() {
		t.Error("Empty record should have no user or wallet")
	}
	rec.UserID = "u-1"
	rec.WalletID = "w-1"
	if !rec.HasUser() || !rec.HasWallet() {
		t.Error("Expected user and wallet to be present")
	}
}

func TestEnrichedRecordFlagged(t *testing.T) {
	e := &EnrichedRecord{Record: NewRecord("r", "f", "")}
	if e.Flagged() {
		t.Error("Fresh record should not be flagged")
	}

	for _, set := range []func(*EnrichedRecord){
		func(e *EnrichedRecord) { e.OverdraftAfter = true },
		func(e *EnrichedRecord) { e.Mismatch = true },
		func(e *EnrichedRecord) { e.FlowBreak = true },
		func(e *EnrichedRecord) { e.DeltaAnomaly = true },
	} {
		e := &EnrichedRecord{Record: NewRecord("r", "f", "")}
		set(e)
		if !e.Flagged() {
			t.Error("Expected record to be flagged")
		}
	}
}

func TestKnownDecimal(t *testing.T) {
	d := KnownDecimal(decimal.NewFromInt(7))
	if !d.Valid || !d.Decimal.Equal(decimal.NewFromInt(7)) {
		t.Errorf("KnownDecimal(7) = %+v", d)
	}
}
