package logparse

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	auditerrors "github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"

	"github.com/klauspost/compress/gzip"
)

// writeGzLog writes lines into a gzip-compressed log file.
func writeGzLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(strings.Join(lines, "\n") + "\n")); err != nil {
		t.Fatalf("Failed to write gzip data: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close gzip writer: %v", err)
	}
}

func completeBlock(rid, user string) []string {
	return []string{
		startLine("2024-01-02T03:04:05.123Z", rid),
		"INFO userId: '" + user + "'",
		endLine("2024-01-02T03:04:06.000Z", rid),
	}
}

func TestListLogFilesSorted(t *testing.T) {
	dir := t.TempDir()
	writeGzLog(t, filepath.Join(dir, "b.gz"), "x")
	writeGzLog(t, filepath.Join(dir, "sub", "c.gz"), "x")
	writeGzLog(t, filepath.Join(dir, "a.gz"), "x")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListLogFiles(dir)
	if err != nil {
		t.Fatalf("ListLogFiles() error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(files), files)
	}
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Errorf("Files not sorted: %v", files)
		}
	}
}

func TestListLogFilesMissingRoot(t *testing.T) {
	_, err := ListLogFiles(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("Expected error for missing root")
	}
	auditErr, ok := auditerrors.AsAuditError(err)
	if !ok || auditErr.Code != auditerrors.CodeFileNotFound {
		t.Errorf("Expected file_not_found, got %v", err)
	}
}

func TestParseDirOrderingAcrossSources(t *testing.T) {
	dir := t.TempDir()
	// Written out of name order on purpose; record order must follow the
	// sorted file order.
	writeGzLog(t, filepath.Join(dir, "b.gz"), completeBlock(reqB, "u-2")...)
	writeGzLog(t, filepath.Join(dir, "a.gz"), completeBlock(reqA, "u-1")...)

	records, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].RequestID != reqA || records[1].RequestID != reqB {
		t.Errorf("Record order = [%s, %s], want a.gz before b.gz",
			records[0].RequestID, records[1].RequestID)
	}
	if !strings.HasSuffix(records[0].File, "a.gz") {
		t.Errorf("Record file tag = %q", records[0].File)
	}
}

func TestParseDirSkipsCorruptSource(t *testing.T) {
	dir := t.TempDir()
	writeGzLog(t, filepath.Join(dir, "a.gz"), completeBlock(reqA, "u-1")...)
	// Not gzip data at all.
	if err := os.WriteFile(filepath.Join(dir, "broken.gz"), []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir() must not fail on one corrupt source: %v", err)
	}
	if len(records) != 1 || records[0].RequestID != reqA {
		t.Errorf("Expected the healthy source's record, got %v", records)
	}
}

func TestParseDirNoSourcesIsFatal(t *testing.T) {
	_, err := ParseDir(t.TempDir())
	if err == nil {
		t.Fatal("Expected error for directory without log sources")
	}
	auditErr, ok := auditerrors.AsAuditError(err)
	if !ok || auditErr.Code != auditerrors.CodeNoLogSources {
		t.Errorf("Expected no_log_sources, got %v", err)
	}
}

func TestParseFileMultipleBlocks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.gz")
	lines := append(completeBlock(reqA, "u-1"), completeBlock(reqB, "u-2")...)
	// Truncated trailing block.
	lines = append(lines, startLine("2024-01-02T04:00:00.000Z", reqC), "INFO userId: 'u-3'")
	writeGzLog(t, path, lines...)

	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[2].RequestID != reqC {
		t.Errorf("Trailing truncated block not emitted: %v", records[2])
	}
}

func TestParseFileOversizedLine(t *testing.T) {
	// A payload line well past any sane scanner buffer must neither fail
	// the source nor lose the blocks around it.
	dir := t.TempDir()
	path := filepath.Join(dir, "big.gz")

	lines := completeBlock(reqA, "u-1")
	lines = append(lines,
		startLine("2024-01-02T03:06:00.000Z", reqB),
		"INFO payload "+strings.Repeat("x", 2*1024*1024)+" userId: 'u-2'",
		endLine("2024-01-02T03:06:01.000Z", reqB),
	)
	lines = append(lines, completeBlock(reqC, "u-3")...)
	writeGzLog(t, path, lines...)

	records, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[1].RequestID != reqB || records[1].UserID != "u-2" {
		t.Errorf("Oversized-line block = %+v", records[1])
	}
	if records[2].RequestID != reqC {
		t.Errorf("Block after the oversized line lost: %+v", records[2])
	}
}

func TestResolveInputDirDirectory(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveInputDir(dir)
	if err != nil {
		t.Fatalf("ResolveInputDir() error: %v", err)
	}
	if got != dir {
		t.Errorf("ResolveInputDir(%q) = %q", dir, got)
	}
}

func TestResolveInputDirZipArchive(t *testing.T) {
	dir := t.TempDir()

	// Build a zip containing one gzip log entry.
	gzPath := filepath.Join(dir, "inner.gz")
	writeGzLog(t, gzPath, completeBlock(reqA, "u-1")...)
	gzBytes, err := os.ReadFile(gzPath)
	if err != nil {
		t.Fatal(err)
	}

	zipPath := filepath.Join(dir, "logs.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(zf)
	w, err := zw.Create("logs/inner.gz")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(gzBytes); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	zf.Close()

	extracted, err := ResolveInputDir(zipPath)
	if err != nil {
		t.Fatalf("ResolveInputDir() error: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(extracted) })

	records, err := ParseDir(extracted)
	if err != nil {
		t.Fatalf("ParseDir() over extracted archive: %v", err)
	}
	if len(records) != 1 || records[0].RequestID != reqA {
		t.Errorf("Expected the archived record, got %v", records)
	}
}

func TestResolveInputDirRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveInputDir(path); err == nil {
		t.Error("Expected error for non-zip regular file")
	}
}
