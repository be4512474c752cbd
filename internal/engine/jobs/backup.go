package jobs

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBackupRetention is how long compressed backups are kept.
const DefaultBackupRetention = 7 * 24 * time.Hour

// BackupDatabase writes a gzip-compressed, timestamped copy of the database
// file into <dataDir>/backups and returns the backup path.
func BackupDatabase(dbPath, dataDir string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("backup: database not found: %w", err)
	}

	backupDir := filepath.Join(dataDir, "backups")
	if err := os.MkdirAll(backupDir, 0o750); err != nil {
		return "", fmt.Errorf("backup: mkdir: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(backupDir, fmt.Sprintf("jobs_backup_%s.db.gz", stamp))

	src, err := os.Open(dbPath)
	if err != nil {
		return "", fmt.Errorf("backup: open source: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("backup: create %s: %w", dst, err)
	}

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, src); err != nil {
		gz.Close()
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("backup: compress: %w", err)
	}
	if err := gz.Close(); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("backup: close gzip: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("backup: close file: %w", err)
	}

	slog.Info("database backup created", slog.String("path", dst))
	return dst, nil
}

// CleanupOldBackups removes compressed backups older than retention. Returns
// how many files were removed.
func CleanupOldBackups(dataDir string, retention time.Duration) int {
	if retention <= 0 {
		retention = DefaultBackupRetention
	}
	cutoff := time.Now().Add(-retention)

	entries, err := os.ReadDir(filepath.Join(dataDir, "backups"))
	if err != nil {
		return 0
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".gz") {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(dataDir, "backups", e.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("backup cleanup", slog.String("path", path), slog.Any("error", err))
			continue
		}
		slog.Info("removed old backup", slog.String("path", path))
		removed++
	}
	return removed
}
