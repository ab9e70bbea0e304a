package boq

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a typed, fully-decoded view of an Excel file. All cell access
// goes through Sheet so string/number coercion lives in one place.
type Workbook struct {
	sheets []*Sheet
	byName map[string]*Sheet
}

// Sheet exposes zero-based row/column cell access over pre-read rows.
type Sheet struct {
	Name string
	rows [][]string
}

// OpenWorkbook decodes a workbook from r. The file is read fully into
// memory; the returned Workbook has no handle to release.
func OpenWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{byName: make(map[string]*Sheet)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			// A sheet that cannot be read contributes nothing; the parser
			// decides whether the remaining sheets are enough.
			continue
		}
		sheet := &Sheet{Name: name, rows: rows}
		wb.sheets = append(wb.sheets, sheet)
		wb.byName[strings.ToLower(name)] = sheet
	}

	if len(wb.sheets) == 0 {
		return nil, ErrNoValidSheet
	}
	return wb, nil
}

// Sheets returns the sheets in workbook order.
func (w *Workbook) Sheets() []*Sheet {
	return w.sheets
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.Name
	}
	return names
}

// SheetNamed returns the sheet with the given name (case-insensitive).
func (w *Workbook) SheetNamed(name string) (*Sheet, bool) {
	s, ok := w.byName[strings.ToLower(name)]
	return s, ok
}

// RowCount returns the number of rows excelize decoded for the sheet.
func (s *Sheet) RowCount() int {
	return len(s.rows)
}

// CellText returns the trimmed cell text at (row, col), both zero-based.
// Out-of-range coordinates yield "".
func (s *Sheet) CellText(row, col int) string {
	if row < 0 || row >= len(s.rows) {
		return ""
	}
	r := s.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// CellNumber parses the cell at (row, col) as a number, tolerating currency
// symbols and digit-group separators. Returns (0, false) when the cell is
// empty or unparseable.
func (s *Sheet) CellNumber(row, col int) (float64, bool) {
	text := s.CellText(row, col)
	if text == "" {
		return 0, false
	}
	n := CleanNumber(text)
	if n == 0 && !looksNumeric(text) {
		return 0, false
	}
	return n, true
}

// MaxCols returns the widest row width in the sheet.
func (s *Sheet) MaxCols() int {
	maxCols := 0
	for _, r := range s.rows {
		if len(r) > maxCols {
			maxCols = len(r)
		}
	}
	return maxCols
}

// looksNumeric reports whether text contains at least one digit.
func looksNumeric(text string) bool {
	return strings.ContainsAny(text, "0123456789")
}
