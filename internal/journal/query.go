package journal

import (
	"database/sql"
	"time"
)

const selectColumns = `
	SELECT id, timestamp, action, path, file_name, object_type, size,
	       directory, pattern, error_message
	FROM removals
`

// Recent returns the N most recent removal events
func (j *Journal) Recent(limit int) ([]Record, error) {
	query := selectColumns + `
	ORDER BY timestamp DESC
	LIMIT ?
	`

	return j.queryRecords(query, limit)
}

// ByAction returns removals filtered by action type
func (j *Journal) ByAction(action string) ([]Record, error) {
	query := selectColumns + `
	WHERE action = ?
	ORDER BY timestamp DESC
	`

	return j.queryRecords(query, action)
}

// ByDirectory returns removals produced by the routine on a directory
func (j *Journal) ByDirectory(directory string) ([]Record, error) {
	query := selectColumns + `
	WHERE directory = ?
	ORDER BY timestamp DESC
	`

	return j.queryRecords(query, directory)
}

// ByPath returns removals matching a path pattern (SQL LIKE syntax)
func (j *Journal) ByPath(pathPattern string) ([]Record, error) {
	query := selectColumns + `
	WHERE path LIKE ?
	ORDER BY timestamp DESC
	`

	return j.queryRecords(query, pathPattern)
}

// Largest returns the N largest successful removals by size
func (j *Journal) Largest(limit int) ([]Record, error) {
	query := selectColumns + `
	WHERE action = 'REMOVE'
	ORDER BY size DESC
	LIMIT ?
	`

	return j.queryRecords(query, limit)
}

// Stats holds aggregated removal statistics
type Stats struct {
	TotalRemoved    int
	TotalErrors     int
	TotalDryRun     int
	TotalSpaceFreed int64
	ByAction        map[string]int
	ByDirectory     map[string]int
	StartDate       time.Time
	EndDate         time.Time
}

// GetStats returns aggregated statistics for the last N days
func (j *Journal) GetStats(days int) (*Stats, error) {
	since := time.Now().AddDate(0, 0, -days)
	now := time.Now()

	stats := &Stats{
		StartDate: since,
		EndDate:   now,
	}

	err := j.db.QueryRow(`
		SELECT
			COUNT(CASE WHEN action = 'REMOVE' THEN 1 END),
			COUNT(CASE WHEN action = 'ERROR' THEN 1 END),
			COUNT(CASE WHEN action = 'DRY_RUN' THEN 1 END),
			COALESCE(SUM(CASE WHEN action = 'REMOVE' THEN size ELSE 0 END), 0)
		FROM removals
		WHERE timestamp >= ?
	`, since).Scan(&stats.TotalRemoved, &stats.TotalErrors, &stats.TotalDryRun, &stats.TotalSpaceFreed)
	if err != nil {
		return nil, err
	}

	stats.ByAction, err = j.countBy("action", since)
	if err != nil {
		return nil, err
	}

	stats.ByDirectory, err = j.countBy("directory", since)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// countBy groups removal counts by the given column since a cutoff
func (j *Journal) countBy(column string, since time.Time) (map[string]int, error) {
	rows, err := j.db.Query(`
		SELECT `+column+`, COUNT(*)
		FROM removals
		WHERE timestamp >= ?
		GROUP BY `+column,
		since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}

	return counts, rows.Err()
}

// PruneOlderThan removes journal rows older than the given number of days
func (j *Journal) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result, err := j.db.Exec(`DELETE FROM removals WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// queryRecords executes a query and scans the rows into Records
func (j *Journal) queryRecords(query string, args ...interface{}) ([]Record, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var errMsg sql.NullString

		err := rows.Scan(
			&r.ID, &r.Timestamp, &r.Action, &r.Path, &r.FileName,
			&r.ObjectType, &r.Size, &r.Directory, &r.Pattern, &errMsg,
		)
		if err != nil {
			return nil, err
		}

		if errMsg.Valid {
			r.ErrorMessage = errMsg.String
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
