package jobs

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBackupDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "jobs.db")
	if err := os.WriteFile(dbPath, []byte("sqlite contents"), 0o600); err != nil {
		t.Fatal(err)
	}

	dst, err := BackupDatabase(dbPath, dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(dst, ".db.gz") {
		t.Errorf("backup path = %q, want .db.gz suffix", dst)
	}

	f, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(gz)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "sqlite contents" {
		t.Errorf("restored contents = %q", data)
	}
}

func TestBackupDatabase_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if _, err := BackupDatabase(filepath.Join(dir, "absent.db"), dir); err == nil {
		t.Error("missing database accepted, want error")
	}
}

func TestCleanupOldBackups(t *testing.T) {
	dir := t.TempDir()
	backups := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backups, 0o750); err != nil {
		t.Fatal(err)
	}

	oldFile := filepath.Join(backups, "jobs_backup_old.db.gz")
	newFile := filepath.Join(backups, "jobs_backup_new.db.gz")
	keepMe := filepath.Join(backups, "notes.txt")
	for _, p := range []string{oldFile, newFile, keepMe} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	stale := time.Now().Add(-10 * 24 * time.Hour)
	if err := os.Chtimes(oldFile, stale, stale); err != nil {
		t.Fatal(err)
	}

	removed := CleanupOldBackups(dir, DefaultBackupRetention)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(oldFile); !os.IsNotExist(err) {
		t.Error("stale backup still present")
	}
	if _, err := os.Stat(newFile); err != nil {
		t.Error("fresh backup removed")
	}
	if _, err := os.Stat(keepMe); err != nil {
		t.Error("non-backup file removed")
	}
}

func TestCleanupOldBackups_NoDir(t *testing.T) {
	if removed := CleanupOldBackups(t.TempDir(), 0); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
