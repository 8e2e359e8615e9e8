package journal

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestJournal creates a file-backed journal for testing.
func createTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		j, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		j.Close()
	}
}

func TestOpen_InMemory(t *testing.T) {
	j, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer j.Close()

	var count int
	if err := j.db.QueryRow("SELECT COUNT(*) FROM calls").Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	j := createTestJournal(t)

	checks := map[string]string{
		"journal_mode": "wal",
		"foreign_keys": "1",
		"busy_timeout": "5000",
		"user_version": "1",
	}
	for name, want := range checks {
		if err := j.verifyPragma(name, want); err != nil {
			t.Error(err)
		}
	}
}

func TestClose_NilDB(t *testing.T) {
	j := &Journal{}
	if err := j.Close(); err != nil {
		t.Errorf("Close() on empty journal = %v, want nil", err)
	}
}

func TestOpen_RejectsNewerFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := j.db.Exec("PRAGMA user_version = 2"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	j.Close()

	j, err = Open(path)
	if err == nil {
		j.Close()
		t.Fatal("Open() on a newer journal format succeeded, want error")
	}
}

func TestSchema_SeqUniqueWithinRun(t *testing.T) {
	j := createTestJournal(t)

	if _, err := j.db.Exec(`INSERT INTO runs (id, source, policy) VALUES ('r1', 'test', 'status')`); err != nil {
		t.Fatalf("insert run: %v", err)
	}
	insert := `INSERT INTO calls (id, run_id, seq, a, b, sum, status) VALUES (?, 'r1', 1, 0, 0, 0, 0)`
	if _, err := j.db.Exec(insert, "c1"); err != nil {
		t.Fatalf("insert first call: %v", err)
	}
	if _, err := j.db.Exec(insert, "c2"); err == nil {
		t.Error("second call with the same seq in one run was accepted")
	}
}
