package routine

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"sweepd/internal/fsops"
	"sweepd/internal/journal"
	"sweepd/internal/metrics"
)

// SweepLogger interface for structured logging in sweep passes
type SweepLogger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// sweepStdLogger wraps standard log.Logger to implement SweepLogger
type sweepStdLogger struct {
	*log.Logger
}

func (l *sweepStdLogger) Info(msg string, args ...interface{}) {
	l.logWithLevel("INFO", msg, args...)
}

func (l *sweepStdLogger) Error(msg string, args ...interface{}) {
	l.logWithLevel("ERROR", msg, args...)
}

func (l *sweepStdLogger) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	l.Logger.Println(parts...)
}

// PassResult summarizes one scan-and-delete pass
type PassResult struct {
	Matched      int
	Removed      int
	Failed       int
	BytesRemoved int64
}

// Sweeper executes routine passes. Per-entry removal failures never abort
// a pass and never surface through its return value; each outcome is
// routed to the log, the metrics, and the journal instead.
type Sweeper struct {
	logger  SweepLogger
	deleter fsops.Deleter
	journal *journal.Journal // nil disables journaling
	dryRun  bool
}

// NewSweeper creates a Sweeper. A nil journal disables journaling.
func NewSweeper(logger *log.Logger, dryRun bool, jr *journal.Journal) *Sweeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Sweeper{
		logger:  &sweepStdLogger{Logger: logger},
		deleter: fsops.OSDeleter{},
		journal: jr,
		dryRun:  dryRun,
	}
}

// SetDeleter replaces the filesystem deleter (used by tests)
func (s *Sweeper) SetDeleter(d fsops.Deleter) {
	s.deleter = d
}

// Run executes one pass of the routine: list the directory's immediate
// entries and remove every one the pattern matches, sequentially.
//
// The only error Run returns is a failed directory listing; in that case
// no removals are performed. Matching is evaluated against immediate
// entries only, never recursively.
func (s *Sweeper) Run(r Routine) (PassResult, error) {
	var res PassResult
	start := time.Now()

	entries, err := os.ReadDir(r.Directory)
	if err != nil {
		metrics.RecordUnreadableDirectory(r.Directory)
		return res, fmt.Errorf("list directory %s: %w", r.Directory, err)
	}

	for _, entry := range entries {
		path := filepath.Join(r.Directory, entry.Name())
		if !r.Pattern.Matches(path) {
			continue
		}
		res.Matched++

		objectType := "file"
		if entry.IsDir() {
			objectType = "directory"
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}

		if s.dryRun {
			s.logger.Info("[DRY RUN] Would remove", "path", path, "object", objectType, "size", size)
			s.record(journal.ActionDryRun, r, path, objectType, size, "")
			continue
		}

		if err := fsops.RemoveWith(s.deleter, path); err != nil {
			res.Failed++
			s.logger.Error("Failed to remove", "path", path, "error", err)
			metrics.RecordRemovalError(r.Directory)
			s.record(journal.ActionError, r, path, objectType, size, err.Error())
			continue
		}

		res.Removed++
		res.BytesRemoved += size
		s.logger.Info("Removed", "path", path, "object", objectType, "size", size)
		metrics.RecordRemoval(r.Directory, size)
		s.record(journal.ActionRemove, r, path, objectType, size, "")
	}

	metrics.RecordPass(r.Directory, time.Since(start))
	s.logger.Info("Pass complete",
		"directory", r.Directory,
		"matched", res.Matched,
		"removed", res.Removed,
		"failed", res.Failed,
		"bytes_removed", res.BytesRemoved,
	)

	return res, nil
}

func (s *Sweeper) record(action string, r Routine, path, objectType string, size int64, errMsg string) {
	err := s.journal.RecordRemoval(journal.Entry{
		Timestamp:    time.Now(),
		Action:       action,
		Path:         path,
		ObjectType:   objectType,
		Size:         size,
		Directory:    r.Directory,
		Pattern:      r.Pattern.String(),
		ErrorMessage: errMsg,
	})
	if err != nil {
		// a journal failure must not abort the pass
		s.logger.Error("Failed to record to journal", "error", err)
	}
}
