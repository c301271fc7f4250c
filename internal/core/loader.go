package core

// loader.go parses raw coaching exports into a validated Table.
//
// The loader is strict about shape (required columns, at least one upcoming
// row) and lenient about content: string cells are trimmed, numeric cells
// are coerced with a zero default, and extra columns are ignored. It never
// mutates caller-owned input.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// RequiredColumns is the fixed header set a coaching export must contain.
// Other columns are tolerated and ignored.
var RequiredColumns = []string{
	"Name", "Status", "Start Date", "Time", "Type", "Day", "Classes", "Active Participants",
}

// statusUpcoming is the only status retained by the loader (compared
// case-insensitively). Rows with any other status are dropped, not kept.
const statusUpcoming = "upcoming"

// Load parses a CSV coaching export.
func Load(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // BOM from Excel exports
	records, err := parseCSV(sanitizeUTF8(data))
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return loadRows(records)
}

// LoadWorkbook parses an XLSX coaching export. The first sheet is read and
// fed through the same pipeline as CSV input.
func LoadWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("parse workbook: no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	return loadRows(rows)
}

// loadRows validates raw rows and builds the Table.
func loadRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	header := rows[0]
	idx := makeHeaderIndex(header)

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Kind: MissingColumns, Columns: missing}
	}

	var out []CourseRecord
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		status := cell(row, idx, "Status")
		if !strings.EqualFold(status, statusUpcoming) {
			continue
		}

		out = append(out, CourseRecord{
			Name:               cell(row, idx, "Name"),
			Status:             status,
			StartDate:          cell(row, idx, "Start Date"),
			Time:               cell(row, idx, "Time"),
			Type:               cell(row, idx, "Type"),
			Day:                cell(row, idx, "Day"),
			ClassCount:         toCount(cell(row, idx, "Classes")),
			ActiveParticipants: toCount(cell(row, idx, "Active Participants")),
		})
	}

	if len(out) == 0 {
		return nil, &ValidationError{Kind: EmptyResult}
	}

	return &Table{Records: out}, nil
}

// headerIndex maps trimmed column names to their position in a row.
type headerIndex map[string]int

func makeHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// cell returns the trimmed value of a named column, or "" when the row is
// shorter than the header.
func cell(row []string, idx headerIndex, col string) string {
	pos, ok := idx[col]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// toCount coerces a numeric cell to a non-negative int. Non-numeric input
// becomes 0 rather than an error.
func toCount(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	// Exports occasionally format counts as decimals ("6.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}

func parseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// sanitizeUTF8 replaces invalid byte sequences so the csv reader never
// chokes on a mis-encoded export.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
