package logparse

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/errors"
	"github.com/abdullahsamad95/AbdusSamad-Calo-Project/pkg/logger"
)

// ResolveInputDir prepares an input path for parsing. A directory is
// returned unchanged; a .zip archive is extracted into a fresh temp
// directory and that directory is returned. Anything else is rejected.
func ResolveInputDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.FileError(errors.CodeFileNotFound, path, err)
		}
		return "", errors.FileError(errors.CodeDirectoryError, path, err)
	}

	if info.IsDir() {
		return path, nil
	}
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return extractZip(path)
	}
	return "", errors.FileError(errors.CodeDirectoryError, path,
		nil).WithSuggestion("input must be a directory of .gz log files or a .zip archive")
}

// extractZip unpacks a log archive into a temp directory, skipping entries
// that would escape it.
func extractZip(path string) (string, error) {
	log := logger.GetGlobalLogger().WithComponent("logparse")

	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	defer zr.Close()

	dir, err := os.MkdirTemp("", "balance_audit_logs_")
	if err != nil {
		return "", errors.FileError(errors.CodeDirectoryError, path, err)
	}

	extracted := 0
	for _, entry := range zr.File {
		name := filepath.Clean(entry.Name)
		if name == "." || strings.HasPrefix(name, "..") || filepath.IsAbs(name) {
			log.WithField("entry", entry.Name).Warn("Skipping unsafe archive entry")
			continue
		}
		dest := filepath.Join(dir, name)

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return "", errors.FileError(errors.CodeDirectoryError, dest, err)
			}
			continue
		}

		if err := extractZipEntry(entry, dest); err != nil {
			return "", err
		}
		extracted++
	}

	log.WithFields(logger.Fields{
		"archive": path,
		"entries": extracted,
		"dir":     dir,
	}).Debug("Extracted log archive")

	return dir, nil
}

func extractZipEntry(entry *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.FileError(errors.CodeDirectoryError, dest, err)
	}

	src, err := entry.Open()
	if err != nil {
		return errors.FileError(errors.CodeFileCorrupted, entry.Name, err)
	}
	defer src.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.FileError(errors.CodeFilePermission, dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, entry.Name, err)
	}
	return nil
}
