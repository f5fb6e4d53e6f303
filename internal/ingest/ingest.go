// Package ingest reads joint and load tables from CSV files or XLSX workbooks
// and reports header compliance and missing cells before a solve.
package ingest

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// Canonical column names
var (
	JointHeader = []string{"fastener_id", "fastener_x_loc", "fastener_y_loc", "fastener_dia"}
	LoadsHeader = []string{"load_id", "load_x_loc", "load_y_loc", "load_px", "load_py", "load_mz"}
)

// Warning is a non-fatal finding of the read/check pass
type Warning struct {
	Source  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Source, w.Message)
}

// CellIssue locates an empty, NaN or unparsable cell.
// Row uses spreadsheet numbering: the header is row 1.
type CellIssue struct {
	Row    int
	Column string
}

func (c CellIssue) String() string {
	return fmt.Sprintf("NaN: row %d, column %s", c.Row, c.Column)
}

// MissingDataError collects every bad cell of a table
type MissingDataError struct {
	Source string
	Cells  []CellIssue
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("missed data in %s file (%d cell(s))", e.Source, len(e.Cells))
}

// MissingColumnError is returned when a required column is absent
type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s file has no %q column", e.Source, e.Column)
}

// FormatError is returned for files that are neither CSV nor XLSX
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (expected .csv or .xlsx)", filepath.Ext(e.Path))
}

// ReadJoint reads the fastener table of a joint
func ReadJoint(path string) ([]fastener.Fastener, []Warning, error) {
	rows, err := readRows(path, "joint")
	if err != nil {
		return nil, nil, err
	}
	return ParseJoint(rows)
}

// ReadLoads reads the applied loads table
func ReadLoads(path string) ([]fastener.Load, []Warning, error) {
	rows, err := readRows(path, "loads")
	if err != nil {
		return nil, nil, err
	}
	return ParseLoads(rows)
}

// ParseJoint converts raw rows (header first) into fasteners
func ParseJoint(rows [][]string) ([]fastener.Fastener, []Warning, error) {
	t, warnings, err := newTable("joint", rows, JointHeader)
	if err != nil {
		return nil, warnings, err
	}

	fasteners := make([]fastener.Fastener, 0, len(t.records))
	for i := range t.records {
		fasteners = append(fasteners, fastener.Fastener{
			ID:       t.text(i, "fastener_id"),
			X:        t.number(i, "fastener_x_loc"),
			Y:        t.number(i, "fastener_y_loc"),
			Diameter: t.number(i, "fastener_dia"),
		})
	}

	if len(t.issues) > 0 {
		return nil, warnings, &MissingDataError{Source: "joint", Cells: t.issues}
	}
	return fasteners, warnings, nil
}

// ParseLoads converts raw rows (header first) into loads
func ParseLoads(rows [][]string) ([]fastener.Load, []Warning, error) {
	t, warnings, err := newTable("loads", rows, LoadsHeader)
	if err != nil {
		return nil, warnings, err
	}

	loads := make([]fastener.Load, 0, len(t.records))
	for i := range t.records {
		loads = append(loads, fastener.Load{
			ID: t.text(i, "load_id"),
			X:  t.number(i, "load_x_loc"),
			Y:  t.number(i, "load_y_loc"),
			Px: t.number(i, "load_px"),
			Py: t.number(i, "load_py"),
			Mz: t.number(i, "load_mz"),
		})
	}

	if len(t.issues) > 0 {
		return nil, warnings, &MissingDataError{Source: "loads", Cells: t.issues}
	}
	return loads, warnings, nil
}

func readRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path, sheet)
	case ".xlsx", ".xlsm":
		return readWorkbook(path, sheet)
	default:
		return nil, &FormatError{Path: path}
	}
}

// table indexes the records of a file by column name
type table struct {
	source  string
	columns map[string]int
	records [][]string
	rows    []int // spreadsheet row of each record
	issues  []CellIssue
}

func newTable(source string, rows [][]string, header []string) (*table, []Warning, error) {
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s file is empty", source)
	}

	var warnings []Warning
	got := normalizeHeader(rows[0])
	if !equalHeader(got, header) {
		warnings = append(warnings, Warning{
			Source:  source,
			Message: fmt.Sprintf("%s file header is not compliant (expected %s)", source, strings.Join(header, ",")),
		})
	}

	t := &table{
		source:  source,
		columns: make(map[string]int, len(got)),
	}
	for i, name := range got {
		if _, ok := t.columns[name]; !ok {
			t.columns[name] = i
		}
	}
	for _, name := range header {
		if _, ok := t.columns[name]; !ok {
			return nil, warnings, &MissingColumnError{Source: source, Column: name}
		}
	}

	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		t.records = append(t.records, record)
		t.rows = append(t.rows, i+2)
	}

	return t, warnings, nil
}

func (t *table) row(i int) int {
	return t.rows[i]
}

func (t *table) cell(i int, column string) string {
	idx := t.columns[column]
	record := t.records[i]
	if idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (t *table) text(i int, column string) string {
	v := t.cell(i, column)
	if v == "" || isNaNText(v) {
		t.issues = append(t.issues, CellIssue{Row: t.row(i), Column: column})
	}
	return v
}

func (t *table) number(i int, column string) float64 {
	v := t.cell(i, column)
	f, err := strconv.ParseFloat(v, 64)
	if v == "" || err != nil || math.IsNaN(f) {
		t.issues = append(t.issues, CellIssue{Row: t.row(i), Column: column})
		return math.NaN()
	}
	return f
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isNaNText(v string) bool {
	switch strings.ToLower(v) {
	case "nan", "na", "n/a", "null":
		return true
	}
	return false
}
