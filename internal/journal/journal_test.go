package journal

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "removals.db"))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() {
		if err := j.Close(); err != nil {
			t.Errorf("Failed to close journal: %v", err)
		}
	})
	return j
}

func TestWALModeEnabled(t *testing.T) {
	j := openTestJournal(t)

	var journalMode string
	if err := j.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}
}

func TestSchemaCreation(t *testing.T) {
	j := openTestJournal(t)

	var tableName string
	err := j.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='removals'").Scan(&tableName)
	if err != nil {
		t.Errorf("removals table not found: %v", err)
	}

	err = j.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableName)
	if err != nil {
		t.Errorf("schema_version table not found: %v", err)
	}
}

func TestRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	entries := []Entry{
		{Action: ActionRemove, Path: "/spool/a.lnk", ObjectType: "file", Size: 128, Directory: "/spool", Pattern: "extension:lnk"},
		{Action: ActionError, Path: "/spool/b.lnk", ObjectType: "file", Size: 64, Directory: "/spool", Pattern: "extension:lnk", ErrorMessage: "permission denied"},
		{Action: ActionDryRun, Path: "/spool/c", ObjectType: "directory", Size: 0, Directory: "/spool", Pattern: "any"},
	}
	for i, e := range entries {
		e.Timestamp = time.Now().Add(time.Duration(i) * time.Second)
		if err := j.RecordRemoval(e); err != nil {
			t.Fatalf("RecordRemoval failed: %v", err)
		}
	}

	records, err := j.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// most recent first
	if records[0].Action != ActionDryRun {
		t.Errorf("Expected most recent action DRY_RUN, got %s", records[0].Action)
	}
	if records[0].FileName != "c" {
		t.Errorf("FileName = %q, want %q", records[0].FileName, "c")
	}
}

func TestByActionAndByDirectory(t *testing.T) {
	j := openTestJournal(t)

	seed := []Entry{
		{Action: ActionRemove, Path: "/a/x.log", ObjectType: "file", Size: 1, Directory: "/a", Pattern: "any"},
		{Action: ActionRemove, Path: "/b/y.log", ObjectType: "file", Size: 2, Directory: "/b", Pattern: "any"},
		{Action: ActionError, Path: "/a/z.log", ObjectType: "file", Size: 3, Directory: "/a", Pattern: "any", ErrorMessage: "busy"},
	}
	for _, e := range seed {
		if err := j.RecordRemoval(e); err != nil {
			t.Fatalf("RecordRemoval failed: %v", err)
		}
	}

	errored, err := j.ByAction(ActionError)
	if err != nil {
		t.Fatalf("ByAction failed: %v", err)
	}
	if len(errored) != 1 || errored[0].ErrorMessage != "busy" {
		t.Errorf("ByAction(ERROR) = %+v", errored)
	}

	inA, err := j.ByDirectory("/a")
	if err != nil {
		t.Fatalf("ByDirectory failed: %v", err)
	}
	if len(inA) != 2 {
		t.Errorf("Expected 2 records for /a, got %d", len(inA))
	}
}

func TestGetStats(t *testing.T) {
	j := openTestJournal(t)

	seed := []Entry{
		{Action: ActionRemove, Path: "/a/x", ObjectType: "file", Size: 100, Directory: "/a", Pattern: "any"},
		{Action: ActionRemove, Path: "/a/y", ObjectType: "file", Size: 50, Directory: "/a", Pattern: "any"},
		{Action: ActionError, Path: "/a/z", ObjectType: "file", Size: 10, Directory: "/a", Pattern: "any"},
		{Action: ActionDryRun, Path: "/b/w", ObjectType: "file", Size: 25, Directory: "/b", Pattern: "any"},
	}
	for _, e := range seed {
		if err := j.RecordRemoval(e); err != nil {
			t.Fatalf("RecordRemoval failed: %v", err)
		}
	}

	stats, err := j.GetStats(1)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalRemoved != 2 {
		t.Errorf("TotalRemoved = %d, want 2", stats.TotalRemoved)
	}
	if stats.TotalErrors != 1 {
		t.Errorf("TotalErrors = %d, want 1", stats.TotalErrors)
	}
	if stats.TotalDryRun != 1 {
		t.Errorf("TotalDryRun = %d, want 1", stats.TotalDryRun)
	}
	if stats.TotalSpaceFreed != 150 {
		t.Errorf("TotalSpaceFreed = %d, want 150", stats.TotalSpaceFreed)
	}
	if stats.ByDirectory["/a"] != 3 {
		t.Errorf("ByDirectory[/a] = %d, want 3", stats.ByDirectory["/a"])
	}
}

func TestNilJournalIsNoOp(t *testing.T) {
	var j *Journal

	if err := j.RecordRemoval(Entry{Action: ActionRemove, Path: "/x"}); err != nil {
		t.Errorf("nil journal RecordRemoval returned error: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil journal Close returned error: %v", err)
	}
}

// TestVacuum verifies the journal survives a vacuum after pruning
func TestVacuum(t *testing.T) {
	j := openTestJournal(t)

	// Insert and prune rows to create fragmentation
	for i := 0; i < 100; i++ {
		e := Entry{
			Timestamp:  time.Now().AddDate(0, 0, -i),
			Action:     ActionRemove,
			Path:       fmt.Sprintf("/spool/file%d.log", i),
			ObjectType: "file",
			Size:       1024,
			Directory:  "/spool",
			Pattern:    "any",
		}
		if err := j.RecordRemoval(e); err != nil {
			t.Fatalf("RecordRemoval failed: %v", err)
		}
	}

	pruned, err := j.PruneOlderThan(60)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if pruned == 0 {
		t.Fatal("Expected rows older than 60 days to be pruned")
	}

	if err := j.Vacuum(); err != nil {
		t.Fatalf("Vacuum failed: %v", err)
	}

	// Journal must still be usable after vacuum
	records, err := j.Recent(200)
	if err != nil {
		t.Fatalf("Recent after vacuum failed: %v", err)
	}
	if len(records) != 100-int(pruned) {
		t.Errorf("Expected %d records after prune+vacuum, got %d", 100-int(pruned), len(records))
	}
}

func TestLargest(t *testing.T) {
	j := openTestJournal(t)

	seed := []Entry{
		{Action: ActionRemove, Path: "/a/small", ObjectType: "file", Size: 10, Directory: "/a", Pattern: "any"},
		{Action: ActionRemove, Path: "/a/big", ObjectType: "file", Size: 1000, Directory: "/a", Pattern: "any"},
		{Action: ActionError, Path: "/a/huge-but-failed", ObjectType: "file", Size: 9999, Directory: "/a", Pattern: "any"},
	}
	for _, e := range seed {
		if err := j.RecordRemoval(e); err != nil {
			t.Fatalf("RecordRemoval failed: %v", err)
		}
	}

	records, err := j.Largest(1)
	if err != nil {
		t.Fatalf("Largest failed: %v", err)
	}
	if len(records) != 1 || records[0].Path != "/a/big" {
		t.Errorf("Largest(1) = %+v, want /a/big", records)
	}
}
