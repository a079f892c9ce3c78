package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"workorders/internal/model"
)

const (
	// SheetName is the single worksheet every store file carries.
	SheetName = "Work Orders"

	fileSuffix = "_work_orders.xlsx"
)

// headerRow is the fixed column order of a store file. The Best Room column
// was added later; files written before it exist and must be tolerated.
var headerRow = []interface{}{"Room Number", "Work Order", "Completion Date", "Status", "Best Room"}

var (
	// ErrPropertyNotFound means no store file exists for the property.
	ErrPropertyNotFound = errors.New("no work orders found for this property")
	// ErrRoomNotFound means no row matched the requested room number.
	ErrRoomNotFound = errors.New("no work order found for this room")
	// ErrListMismatch means the room and work-order lists differ in length.
	ErrListMismatch = errors.New("number of rooms and work orders must match")
	// ErrBadDate means the completion date is not in YYYY-MM-DD form.
	ErrBadDate = errors.New("invalid date format, use YYYY-MM-DD")
)

// Store owns the per-property work-order tables plus the report log.
//
// Each property persists as one xlsx file under uploadsDir; every mutation
// loads the whole table and rewrites the whole file. Mutations on the same
// property serialize through a per-property mutex; there is no cross-process
// coordination.
type Store struct {
	uploadsDir string
	db         *sql.DB
	locks      *propertyLocks
}

// New creates a Store rooted at uploadsDir with its report log at dbPath.
func New(uploadsDir, dbPath string) (*Store, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{
		uploadsDir: uploadsDir,
		db:         db,
		locks:      newPropertyLocks(),
	}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close releases the report-log database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// FilePath returns the store file path for a property code.
func (s *Store) FilePath(propertyCode string) string {
	return filepath.Join(s.uploadsDir, propertyCode+fileSuffix)
}

// Exists reports whether a store file exists for the property.
func (s *Store) Exists(propertyCode string) bool {
	_, err := os.Stat(s.FilePath(propertyCode))
	return err == nil
}

// Properties returns the codes of every property with a store file on disk.
func (s *Store) Properties() ([]string, error) {
	entries, err := os.ReadDir(s.uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, fileSuffix) {
			codes = append(codes, strings.TrimSuffix(name, fileSuffix))
		}
	}
	return codes, nil
}

// Submit records one work order per (room, text) pair, all dated
// completionDate.
//
// A room already present keeps its row: the new text is appended to the
// existing one with " / " and the date is overwritten; status and best-room
// stay as they are. A new room appends a Pending row. The file is written
// once, after every pair is applied.
func (s *Store) Submit(propertyCode string, rooms, texts []string, completionDate string) error {
	if len(rooms) != len(texts) {
		return ErrListMismatch
	}
	if _, err := time.Parse(model.DateLayout, completionDate); err != nil {
		return ErrBadDate
	}

	mu := s.locks.get(propertyCode)
	mu.Lock()
	defer mu.Unlock()

	if err := s.ensureFile(propertyCode); err != nil {
		return err
	}
	rows, err := s.loadRows(propertyCode)
	if err != nil {
		return err
	}

	for i, room := range rooms {
		text := texts[i]
		if idx := findRoom(rows, room); idx >= 0 {
			rows[idx] = padRow(rows[idx], 3)
			rows[idx][1] = rows[idx][1] + " / " + text
			rows[idx][2] = completionDate
		} else {
			rows = append(rows, []string{room, text, completionDate, model.StatusPending})
		}
	}

	return s.saveRows(propertyCode, rows)
}

// Remove deletes the first row matching roomNumber.
func (s *Store) Remove(propertyCode, roomNumber string) error {
	mu := s.locks.get(propertyCode)
	mu.Lock()
	defer mu.Unlock()

	if !s.Exists(propertyCode) {
		return ErrPropertyNotFound
	}
	rows, err := s.loadRows(propertyCode)
	if err != nil {
		return err
	}

	idx := findRoom(rows, roomNumber)
	if idx < 0 {
		return ErrRoomNotFound
	}
	rows = append(rows[:idx], rows[idx+1:]...)

	return s.saveRows(propertyCode, rows)
}

// Edit replaces (not appends) the text and completion date of the first row
// matching roomNumber.
func (s *Store) Edit(propertyCode, roomNumber, text, completionDate string) error {
	if _, err := time.Parse(model.DateLayout, completionDate); err != nil {
		return ErrBadDate
	}

	mu := s.locks.get(propertyCode)
	mu.Lock()
	defer mu.Unlock()

	if !s.Exists(propertyCode) {
		return ErrPropertyNotFound
	}
	rows, err := s.loadRows(propertyCode)
	if err != nil {
		return err
	}

	idx := findRoom(rows, roomNumber)
	if idx < 0 {
		return ErrRoomNotFound
	}
	rows[idx] = padRow(rows[idx], 3)
	rows[idx][1] = text
	rows[idx][2] = completionDate

	return s.saveRows(propertyCode, rows)
}

// UpdateStatus sets the status and best-room flag of the first row matching
// roomNumber, growing the row to the best-room column when the file predates
// it.
func (s *Store) UpdateStatus(propertyCode, roomNumber, status, bestRoom string) error {
	mu := s.locks.get(propertyCode)
	mu.Lock()
	defer mu.Unlock()

	if !s.Exists(propertyCode) {
		return ErrPropertyNotFound
	}
	rows, err := s.loadRows(propertyCode)
	if err != nil {
		return err
	}

	idx := findRoom(rows, roomNumber)
	if idx < 0 {
		return ErrRoomNotFound
	}
	rows[idx] = padRow(rows[idx], 5)
	rows[idx][3] = status
	rows[idx][4] = bestRoom

	return s.saveRows(propertyCode, rows)
}

// List returns every complete row in file order. Rows missing any of the
// first four cells are skipped; an absent best-room cell reads as "No". A
// property with no store file yields an empty list, not an error.
func (s *Store) List(propertyCode string) ([]model.WorkOrder, error) {
	mu := s.locks.get(propertyCode)
	mu.Lock()
	defer mu.Unlock()

	if !s.Exists(propertyCode) {
		return []model.WorkOrder{}, nil
	}
	rows, err := s.loadRows(propertyCode)
	if err != nil {
		return nil, err
	}

	orders := make([]model.WorkOrder, 0, len(rows))
	for _, row := range rows {
		room := cell(row, 0)
		text := cell(row, 1)
		date := cell(row, 2)
		status := cell(row, 3)
		if room == "" || text == "" || date == "" || status == "" {
			continue
		}
		best := cell(row, 4)
		if best == "" {
			best = model.BestRoomDefault
		}
		orders = append(orders, model.WorkOrder{
			RoomNumber:     room,
			WorkOrder:      text,
			CompletionDate: FormatCompletionDate(date),
			Status:         status,
			BestRoom:       best,
		})
	}
	return orders, nil
}

// FormatCompletionDate renders a date cell for display. Values that parse as
// dates come out as YYYY-MM-DD; anything else (legacy or hand-edited rows)
// passes through untouched.
func FormatCompletionDate(raw string) string {
	for _, layout := range []string{model.DateLayout, "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(model.DateLayout)
		}
	}
	return raw
}

// ensureFile lazily creates a header-only store file. An existing file is
// left alone.
func (s *Store) ensureFile(propertyCode string) error {
	path := s.FilePath(propertyCode)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to create store file: %w", err)
	}
	return nil
}

// loadRows reads every data row (header excluded) of a property's table.
func (s *Store) loadRows(propertyCode string) ([][]string, error) {
	f, err := excelize.OpenFile(s.FilePath(propertyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// saveRows rewrites the whole store file: header plus the given data rows.
// The file, not the row, is the unit of persistence.
func (s *Store) saveRows(propertyCode string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return err
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cellRef, &values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(s.FilePath(propertyCode)); err != nil {
		return fmt.Errorf("failed to save store file: %w", err)
	}
	return nil
}

// findRoom returns the index of the first row whose room number matches, or
// -1. Duplicate room numbers are possible in hand-edited files; only the
// first is ever addressed.
func findRoom(rows [][]string, roomNumber string) int {
	for i, row := range rows {
		if cell(row, 0) == roomNumber {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func padRow(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}
