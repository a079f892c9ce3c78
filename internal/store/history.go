package store

import (
	"embed"
	"fmt"

	"github.com/google/uuid"

	"workorders/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// LogReport records one report generation and returns the entry ID.
func (s *Store) LogReport(propertyCode string, rowCount int, filePath string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(`
		INSERT INTO report_log (id, property_code, row_count, file_path)
		VALUES (?, ?, ?, ?)
	`, id, propertyCode, rowCount, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to log report: %w", err)
	}
	return id, nil
}

// ReportHistory returns a property's logged reports, newest first.
func (s *Store) ReportHistory(propertyCode string) ([]model.ReportEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, property_code, row_count, file_path, generated_at
		FROM report_log
		WHERE property_code = ?
		ORDER BY generated_at DESC, rowid DESC
	`, propertyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query report log: %w", err)
	}
	defer rows.Close()

	entries := make([]model.ReportEntry, 0)
	for rows.Next() {
		var e model.ReportEntry
		if err := rows.Scan(&e.ID, &e.PropertyCode, &e.RowCount, &e.FilePath, &e.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountReports returns the total number of logged reports.
func (s *Store) CountReports() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM report_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}
