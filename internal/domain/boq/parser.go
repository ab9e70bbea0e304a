package boq

import (
	"io"
	"log/slog"
	"strings"
)

// layoutParser is one spreadsheet layout strategy.
type layoutParser interface {
	Variant() Variant
	Parse(wb *Workbook, opts ParseOptions) (*ParseResult, error)
}

// Parser selects a layout strategy from the workbook's sheet names and runs
// it. All heavy lifting happens in the layout parsers; Parser owns only the
// selection heuristic.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse decodes the workbook from r and extracts a ParseResult.
func (p *Parser) Parse(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	wb, err := OpenWorkbook(r)
	if err != nil {
		return nil, err
	}
	return p.ParseWorkbook(wb, opts)
}

// ParseWorkbook runs the selected layout strategy over an already-decoded
// workbook.
func (p *Parser) ParseWorkbook(wb *Workbook, opts ParseOptions) (*ParseResult, error) {
	layout := p.selectLayout(wb)

	p.logger.Info("parsing workbook",
		slog.String("file", opts.FileName),
		slog.String("variant", string(layout.Variant())),
		slog.Int("sheets", len(wb.Sheets())),
	)

	result, err := layout.Parse(wb, opts)
	if err != nil {
		return nil, err
	}

	p.logger.Info("workbook parsed",
		slog.String("file", opts.FileName),
		slog.Int("roomTypes", len(result.RoomTypes)),
		slog.Int("invalidEntries", len(result.InvalidEntries)),
	)

	return result, nil
}

// selectLayout picks the layout strategy: a sheet named with "AV" or "BOQ",
// or a single-sheet workbook, means the multi-room matrix layout; a
// multi-sheet workbook without such a sheet is one sheet per room.
func (p *Parser) selectLayout(wb *Workbook) layoutParser {
	names := wb.SheetNames()
	if len(names) == 1 {
		return &multiRoomParser{logger: p.logger}
	}
	for _, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "av") || strings.Contains(lower, "boq") {
			return &multiRoomParser{logger: p.logger}
		}
	}
	return &perSheetParser{logger: p.logger}
}
