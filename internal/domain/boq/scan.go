package boq

import (
	"regexp"
	"strings"
)

const (
	// blankRunLimit is the number of consecutive fully-blank rows that
	// terminates a data scan. Sparse sheets below the limit keep scanning.
	blankRunLimit = 15

	// blankCheckCols is how many leading columns must all be empty for a
	// row to count as blank.
	blankCheckCols = 10
)

// sectionHeaderPatterns recognize rows that group line items (roman
// numerals, lettered/numbered list markers, grouping keywords). Matching
// rows are skipped: not data, and not blank-run terminators. Known
// fuzziness: a legitimate description starting with a roman-numeral-like
// token can false-positive, but such rows also lack make/model and would be
// rejected by the valid-row rule anyway.
var sectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*[IVXLC]+[\.\)]\s`),
	regexp.MustCompile(`^\s*[A-Z][\.\)]\s`),
	regexp.MustCompile(`^\s*\d+[\.\)]\s*$`),
	regexp.MustCompile(`(?i)^\s*(materials|accessories|equipment|hardware items|services|supply|section)\b[\s:]*$`),
}

// isSectionHeader reports whether the first-column text marks a section
// grouping row.
func isSectionHeader(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range sectionHeaderPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// isBlankRow reports whether the first blankCheckCols cells of the row are
// all empty.
func isBlankRow(sheet *Sheet, row int) bool {
	for col := 0; col < blankCheckCols; col++ {
		if sheet.CellText(row, col) != "" {
			return false
		}
	}
	return true
}

// rowScanner walks data rows applying the shared section-header-skip and
// blank-run-termination policy. Both layout variants use it so the
// termination semantics cannot drift apart.
type rowScanner struct {
	sheet    *Sheet
	row      int
	blankRun int
}

func newRowScanner(sheet *Sheet, startRow int) *rowScanner {
	return &rowScanner{sheet: sheet, row: startRow - 1}
}

// Next advances to the next candidate data row. It returns false once the
// blank-run limit is reached or the sheet is exhausted. Section-header rows
// are skipped transparently and reset nothing.
func (s *rowScanner) Next() bool {
	for {
		s.row++
		if s.row >= s.sheet.RowCount() {
			return false
		}

		if isBlankRow(s.sheet, s.row) {
			s.blankRun++
			if s.blankRun >= blankRunLimit {
				return false
			}
			continue
		}
		s.blankRun = 0

		if isSectionHeader(s.sheet.CellText(s.row, 0)) || isSectionHeader(s.sheet.CellText(s.row, 1)) {
			continue
		}
		return true
	}
}

// Row returns the current zero-based row index.
func (s *rowScanner) Row() int {
	return s.row
}

// headerRowIndex scans the first maxScan rows for a cell containing the
// given keyword (case-insensitive). Returns -1 when not found.
func headerRowIndex(sheet *Sheet, keyword string, maxScan int) int {
	kw := strings.ToLower(keyword)
	for row := 0; row < maxScan && row < sheet.RowCount(); row++ {
		for col := 0; col < sheet.MaxCols(); col++ {
			if strings.Contains(strings.ToLower(sheet.CellText(row, col)), kw) {
				return row
			}
		}
	}
	return -1
}
