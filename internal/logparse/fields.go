// Package logparse reconstructs wallet-transaction records from compressed,
// line-oriented application logs.
//
// Lambda-style logs wrap each invocation in START/END RequestId marker lines.
// This package streams each log source through a small state machine that
// buffers the lines between a start marker and its matching end marker (or
// the end of the source), then extracts named fields from the buffered block
// text with a fixed pattern table.
//
// Key properties:
//   - at most one block is open per source at any time; a new start marker
//     preempts (and flushes) an unterminated block
//   - sources are independent: no reconstruction state crosses file
//     boundaries
//   - unreadable or corrupt sources are skipped with a warning rather than
//     failing the batch
//   - an absent field is a valid record state, never an error
package logparse

import (
	"regexp"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
)

// FieldPattern binds a record field name to its extraction pattern. The
// field set is a closed, versioned table: adding a field is a data change
// here plus the matching attribute on models.Record.
type FieldPattern struct {
	Name    string
	Kind    models.ValueKind
	Pattern *regexp.Regexp
}

// fieldTable is the v1 field set. Patterns capture exactly one group; the
// first match inside a block wins. Only the boolean token is matched
// case-insensitively, since log emitters vary its casing.
var fieldTable = []FieldPattern{
	{Name: "paymentBalance", Kind: models.KindNumber, Pattern: regexp.MustCompile(`paymentBalance:\s*([0-9.\-]+)`)},
	{Name: "updatePaymentBalance", Kind: models.KindBool, Pattern: regexp.MustCompile(`(?i)updatePaymentBalance:\s*(true|false)`)},
	{Name: "oldBalance", Kind: models.KindNumber, Pattern: regexp.MustCompile(`oldBalance:\s*([0-9.\-]+)`)},
	{Name: "newBalance", Kind: models.KindNumber, Pattern: regexp.MustCompile(`newBalance:\s*([0-9.\-]+)`)},
	{Name: "amount", Kind: models.KindNumber, Pattern: regexp.MustCompile(`amount:\s*([0-9.\-]+)`)},
	{Name: "action", Kind: models.KindText, Pattern: regexp.MustCompile(`action:\s*'([^']+)'`)},
	{Name: "transactionAction", Kind: models.KindText, Pattern: regexp.MustCompile(`transactionAction:\s*'([^']+)'`)},
	{Name: "walletId", Kind: models.KindText, Pattern: regexp.MustCompile(`"walletId":"?([^",'}]+)`)},
	{Name: "userId", Kind: models.KindText, Pattern: regexp.MustCompile(`userId:\s*'([^']+)'`)},
	{Name: "email", Kind: models.KindText, Pattern: regexp.MustCompile(`"email":"?([^",'}]+)`)},
	{Name: "id", Kind: models.KindText, Pattern: regexp.MustCompile(`"id":"?([^",'}]+)`)},
}

// FieldTable returns the active field set. The returned slice must not be
// modified.
func FieldTable() []FieldPattern {
	return fieldTable
}

// ExtractFields applies the field table to a block of text and returns the
// first captured value per field. Fields with no match are omitted.
func ExtractFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, fp := range fieldTable {
		if m := fp.Pattern.FindStringSubmatch(text); m != nil {
			fields[fp.Name] = m[1]
		}
	}
	return fields
}

// ExtractRecord materializes a completed block into a Record.
func ExtractRecord(text, requestID, file, startTS string) *models.Record {
	rec := models.NewRecord(requestID, file, startTS)
	for name, value := range ExtractFields(text) {
		// The table and the record share one field set, so this cannot
		// fail for table entries; ignore rather than propagate.
		_ = rec.SetField(name, value)
	}
	return rec
}
