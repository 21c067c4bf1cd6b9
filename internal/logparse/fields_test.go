package logparse

import (
	"testing"
)

func TestExtractFields(t *testing.T) {
	block := `2024-01-02T03:04:05.123Z START RequestId: 11111111-1111-1111-1111-111111111111
INFO processing payment { paymentBalance: 250.75, updatePaymentBalance: TRUE }
INFO wallet update oldBalance: 100.5 newBalance: 95.5 amount: 5
INFO action: 'PAYMENT' transactionAction: 'DEBIT'
INFO payload {"walletId":"w-123","email":"user@example.com","id":"tx-9"}
INFO userId: 'u-42'
2024-01-02T03:04:06.000Z END RequestId: 11111111-1111-1111-1111-111111111111`

	fields := ExtractFields(block)

	want := map[string]string{
		"paymentBalance":       "250.75",
		"updatePaymentBalance": "TRUE",
		"oldBalance":           "100.5",
		"newBalance":           "95.5",
		"amount":               "5",
		"action":               "PAYMENT",
		"transactionAction":    "DEBIT",
		"walletId":             "w-123",
		"userId":               "u-42",
		"email":                "user@example.com",
		"id":                   "tx-9",
	}
	for name, value := range want {
		if got := fields[name]; got != value {
			t.Errorf("field %s = %q, want %q", name, got, value)
		}
	}
	if len(fields) != len(want) {
		t.Errorf("extracted %d fields, want %d: %v", len(fields), len(want), fields)
	}
}

func TestExtractFieldsAbsent(t *testing.T) {
	fields := ExtractFields("INFO nothing of interest here")
	if len(fields) != 0 {
		t.Errorf("Expected no fields, got %v", fields)
	}
}

func TestExtractFieldsFirstMatchWins(t *testing.T) {
	block := `INFO oldBalance: 10
INFO retry oldBalance: 20`

	fields := ExtractFields(block)
	if fields["oldBalance"] != "10" {
		t.Errorf("oldBalance = %q, want first occurrence %q", fields["oldBalance"], "10")
	}
}

func TestExtractFieldsBooleanCaseInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"updatePaymentBalance: true", "true"},
		{"updatePaymentBalance: False", "False"},
		{"updatePaymentBalance: TRUE", "TRUE"},
	}
	for _, tt := range tests {
		fields := ExtractFields(tt.input)
		if fields["updatePaymentBalance"] != tt.want {
			t.Errorf("ExtractFields(%q)[updatePaymentBalance] = %q, want %q",
				tt.input, fields["updatePaymentBalance"], tt.want)
		}
	}
}

func TestExtractFieldsActionDoesNotMatchTransactionAction(t *testing.T) {
	fields := ExtractFields("INFO transactionAction: 'CREDIT'")
	if _, ok := fields["action"]; ok {
		t.Error("action pattern must not match inside transactionAction")
	}
	if fields["transactionAction"] != "CREDIT" {
		t.Errorf("transactionAction = %q, want CREDIT", fields["transactionAction"])
	}
}

func TestExtractRecord(t *testing.T) {
	block := `INFO userId: 'u-1' and oldBalance: 10 newBalance: 15 amount: 5`

	rec := ExtractRecord(block, "11111111-1111-1111-1111-111111111111", "a.gz", "2024-01-02T03:04:05Z")

	if rec.RequestID != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("RequestID = %q", rec.RequestID)
	}
	if rec.File != "a.gz" {
		t.Errorf("File = %q", rec.File)
	}
	if rec.StartTS != "2024-01-02T03:04:05Z" {
		t.Errorf("StartTS = %q", rec.StartTS)
	}
	if rec.UserID != "u-1" || rec.OldBalance != "10" || rec.NewBalance != "15" || rec.Amount != "5" {
		t.Errorf("Extracted record = %+v", rec)
	}
	if rec.Email != "" {
		t.Errorf("Email should be absent, got %q", rec.Email)
	}
}

func TestFieldTableClosed(t *testing.T) {
	// Every table entry must round-trip into the record type.
	for _, fp := range FieldTable() {
		rec := ExtractRecord(" ", "11111111-1111-1111-1111-111111111111", "f", "")
		if err := rec.SetField(fp.Name, "x"); err != nil {
			t.Errorf("field table entry %q has no record attribute: %v", fp.Name, err)
		}
	}
}
