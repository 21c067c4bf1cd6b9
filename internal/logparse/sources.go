package logparse

import (
	"bufio"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/internal/models"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"

	"github.com/klauspost/compress/gzip"
)

// ListLogFiles enumerates every .gz file under root recursively, sorted by
// path for reproducible record order.
func ListLogFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, root, err)
		}
		return nil, errors.FileError(errors.CodeDirectoryError, root, err)
	}
	if !info.IsDir() {
		return nil, errors.FileError(errors.CodeDirectoryError, root,
			nil).WithSuggestion("provide a directory of .gz log files, or a .zip archive")
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".gz") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.FileError(errors.CodeDirectoryError, root, err)
	}

	sort.Strings(files)
	return files, nil
}

// ParseDir runs block reconstruction over every .gz log file under root and
// returns the flat, order-preserving record collection.
//
// A source that cannot be opened or decoded is skipped with a warning;
// partial results are preferred over total failure. Finding no log sources
// at all is the one fatal condition, since it signals a misconfigured input
// rather than a data-quality problem.
func ParseDir(root string) ([]*models.Record, error) {
	log := logger.GetGlobalLogger().WithComponent("logparse")

	files, err := ListLogFiles(root)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.FileError(errors.CodeNoLogSources, root,
			nil).WithSuggestion("check that the input directory contains gzip-compressed log files")
	}

	log.WithFields(logger.Fields{
		"root":  root,
		"files": len(files),
	}).Info("Parsing log sources")

	var records []*models.Record
	skipped := 0
	for _, file := range files {
		recs, err := ParseFile(file)
		if err != nil {
			skipped++
			log.WithError(err).WithField("file", file).Warn("Skipping unreadable log source")
			continue
		}
		records = append(records, recs...)
	}

	log.WithFields(logger.Fields{
		"records": len(records),
		"skipped": skipped,
	}).Info("Finished parsing log sources")

	return records, nil
}

// ParseFile reconstructs all blocks from a single gzip-compressed log file.
func ParseFile(path string) ([]*models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeFileNotFound, path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	defer zr.Close()

	// ReadString instead of a Scanner: blocks can embed marshalled payloads
	// of arbitrary size, and a single oversized line must not discard the
	// source's other blocks.
	reader := bufio.NewReaderSize(zr, 64*1024)
	bs := NewBlockScanner(path)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			// Lenient decoding: drop undecodable bytes instead of failing
			// the source.
			bs.ProcessLine(strings.ToValidUTF8(line, ""))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			// A decode error mid-file still loses the source entirely;
			// reconstruction state is not trustworthy past the failure.
			return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
		}
	}

	return bs.Finish(), nil
}
