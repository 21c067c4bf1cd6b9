package logparse

import (
	"regexp"
	"strings"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"

	"github.com/google/uuid"
)

// Start/end marker lines: an ISO-style date-time token, then the literal
// START/END RequestId text, then a canonical 8-4-4-4-12 hex identifier.
var (
	startMarkerRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T.*START RequestId:\s+([0-9a-f\-]{36})`)
	endMarkerRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T.*END RequestId:\s+([0-9a-f\-]{36})`)
)

// startTimestampLength is the truncation fallback when a start marker line
// carries no 'Z' zone designator: enough for an ISO date-time with
// millisecond precision.
const startTimestampLength = 25

// BlockScanner reassembles multi-line log output into discrete blocks, one
// per request. It holds the state for a single source; create a fresh
// scanner per file.
//
// The scanner is either idle (no open block) or has exactly one open block.
// A start marker seen while a block is open preempts it: the open block is
// flushed without its end marker, then the new block opens. This is policy,
// not an error: Lambda runtimes can drop an END line when an invocation is
// killed.
type BlockScanner struct {
	file string

	requestID string
	startTS   string
	buffer    []string

	records []*models.Record
}

// NewBlockScanner creates a scanner for one log source. The file name is
// only used to tag emitted records.
func NewBlockScanner(file string) *BlockScanner {
	return &BlockScanner{file: file}
}

// ProcessLine feeds one line (without trailing newline) into the state
// machine.
func (bs *BlockScanner) ProcessLine(line string) {
	line = strings.TrimSpace(line)

	if m := startMarkerRe.FindStringSubmatch(line); m != nil && validRequestID(m[1]) {
		// A start marker preempts any open block.
		bs.flush()
		bs.requestID = m[1]
		bs.startTS = captureStartTimestamp(line)
		bs.buffer = []string{line}
		return
	}

	if m := endMarkerRe.FindStringSubmatch(line); m != nil && bs.open() && m[1] == bs.requestID {
		bs.buffer = append(bs.buffer, line)
		bs.flush()
		return
	}

	if bs.open() {
		bs.buffer = append(bs.buffer, line)
	}
	// Lines outside any block are discarded.
}

// Finish flushes an unterminated trailing block (a log truncated
// mid-request) and returns all records emitted by this source in order.
func (bs *BlockScanner) Finish() []*models.Record {
	bs.flush()
	return bs.records
}

// open reports whether a block is currently being buffered.
func (bs *BlockScanner) open() bool {
	return bs.requestID != ""
}

// flush extracts a record from the buffered block, if any, and resets the
// scanner to idle.
func (bs *BlockScanner) flush() {
	if bs.open() && len(bs.buffer) > 0 {
		text := strings.Join(bs.buffer, "\n")
		bs.records = append(bs.records, ExtractRecord(text, bs.requestID, bs.file, bs.startTS))
	}
	bs.requestID = ""
	bs.startTS = ""
	bs.buffer = nil
}

// validRequestID confirms the captured identifier is a canonical UUID. The
// marker patterns already constrain length and alphabet; this rejects
// malformed grouping (for example a dash in the wrong position).
func validRequestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// captureStartTimestamp pulls the leading timestamp token from a start
// marker line: everything before the first 'Z' (kept inclusive) when one is
// present, else the first startTimestampLength characters. This is a
// best-effort truncation, not strict ISO-8601 parsing.
func captureStartTimestamp(line string) string {
	if i := strings.IndexByte(line, 'Z'); i >= 0 {
		return line[:i+1]
	}
	if len(line) > startTimestampLength {
		return line[:startTimestampLength]
	}
	return line
}
