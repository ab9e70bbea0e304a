package boq

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/avsuite/av-cost-estimator/pkg/money"
)

// One-sheet-per-room layout convention.
const (
	perSheetHeaderScanRows = 20 // rows searched for the header row
	summaryCostCol         = 6  // column G: cost column on the Summary sheet
	unitCostWindowStart    = 5  // column F: start of the unit-cost window
	unitCostWindowEnd      = 7  // column H: end of the unit-cost window
)

// summarySkipTerms exclude aggregate sheets from room extraction.
var summarySkipTerms = []string{"summary", "index", "total", "overview"}

// summaryLabourTerms pick labour rows out of a dedicated Summary sheet.
var summaryLabourTerms = []string{
	"conceptualization", "design engineering", "programming", "installation",
	"commissioning", "documentation", "user orientation",
}

// perSheetParser handles workbooks where each sheet is one room type, named
// after the room, with its own line-item table.
type perSheetParser struct {
	logger *slog.Logger
}

func (p *perSheetParser) Variant() Variant {
	return VariantPerSheet
}

func (p *perSheetParser) Parse(wb *Workbook, opts ParseOptions) (*ParseResult, error) {
	result := &ParseResult{
		SourceFile: opts.FileName,
		Variant:    VariantPerSheet,
	}

	var labourParts, miscParts []float64

	// A literal Summary sheet carries project-wide labour rows. This path
	// is additive with per-sheet embedded labour items: the Summary sheet
	// itself is excluded from room extraction, so no row lands in two
	// buckets.
	if summary, ok := wb.SheetNamed("Summary"); ok {
		labourParts = append(labourParts, p.summaryLabour(summary))
	}

	processed := 0
	for _, sheet := range wb.Sheets() {
		if skipSheetName(sheet.Name) {
			continue
		}
		processed++

		room, labour, misc, err := p.parseRoomSheet(sheet, opts, result)
		if err != nil {
			// One malformed sheet must not abort the whole parse.
			p.logger.Error("failed to process room sheet",
				slog.String("sheet", sheet.Name),
				slog.Any("error", err),
			)
			continue
		}

		labourParts = append(labourParts, labour)
		miscParts = append(miscParts, misc)

		// A room with no hardware left after filtering is omitted.
		if len(room.Components) == 0 {
			continue
		}
		result.RoomTypes = append(result.RoomTypes, *room)
	}

	if processed == 0 {
		return nil, ErrNoValidSheet
	}
	if len(result.RoomTypes) == 0 {
		return nil, ErrNoRoomTypes
	}

	result.LabourCost = money.Sum(labourParts...)
	result.MiscellaneousCost = money.Sum(miscParts...)

	return result, nil
}

// summaryLabour sums the cost column of Summary rows that mention a labour
// activity.
func (p *perSheetParser) summaryLabour(sheet *Sheet) float64 {
	var parts []float64
	for row := 0; row < sheet.RowCount(); row++ {
		label := strings.ToLower(sheet.CellText(row, 0) + " " + sheet.CellText(row, 1))
		if !containsAny(label, summaryLabourTerms) {
			continue
		}
		if n, ok := sheet.CellNumber(row, summaryCostCol); ok && n > 0 {
			parts = append(parts, n)
		}
	}
	return money.Sum(parts...)
}

// parseRoomSheet extracts one room type from one sheet. Embedded labour and
// miscellaneous line items are returned as totals and excluded from the
// component list.
func (p *perSheetParser) parseRoomSheet(sheet *Sheet, opts ParseOptions, result *ParseResult) (room *RoomType, labour, misc float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sheet %q: %v", sheet.Name, r)
		}
	}()

	headerRow := headerRowIndex(sheet, "description", perSheetHeaderScanRows)
	if headerRow < 0 {
		return nil, 0, 0, fmt.Errorf("sheet %q: no description header found", sheet.Name)
	}

	cols := p.mapColumns(sheet, headerRow)

	canonical := NormalizeRoomTypeName(sheet.Name)
	room = &RoomType{
		RoomType: canonical,
		PaxCount: PaxFromName(canonical),
		Count:    1,
	}

	var labourParts, miscParts []float64

	scanner := newRowScanner(sheet, headerRow+1)
	for scanner.Next() {
		row := scanner.Row()

		component := Component{
			Description: sheet.CellText(row, cols.descCol),
			Make:        sheet.CellText(row, cols.makeCol),
			Model:       sheet.CellText(row, cols.modelCol),
			Currency:    opts.Currency,
			Region:      opts.Region,
			Country:     opts.Country,
			RoomType:    canonical,
			SourceFile:  opts.FileName,
		}

		qty, ok := sheet.CellNumber(row, cols.qtyCol)
		if !ok || qty <= 0 {
			continue
		}
		component.Quantity = qty

		if component.Description == "" || component.Make == "" || component.Model == "" {
			// Labour/misc summary lines legitimately omit make/model; only
			// hardware-looking rows are reported as invalid.
			category := CategorizeCostItem(component.Description)
			if component.Description != "" && category != CostHardware {
				cost := p.unitCostFromWindow(sheet, row)
				if category == CostLabour {
					labourParts = append(labourParts, money.LineTotal(qty, cost))
				} else {
					miscParts = append(miscParts, money.LineTotal(qty, cost))
				}
				continue
			}
			result.InvalidEntries = append(result.InvalidEntries, InvalidEntry{
				Component: component,
				Reason:    "Missing description, make, or model",
				Sheet:     sheet.Name,
				Row:       row + 1,
			})
			continue
		}

		component.UnitCost = p.unitCostFromWindow(sheet, row)
		if component.UnitCost == 0 {
			result.InvalidEntries = append(result.InvalidEntries, InvalidEntry{
				Component: component,
				Reason:    "Zero unit cost",
				Sheet:     sheet.Name,
				Row:       row + 1,
			})
			continue
		}

		// Classification decides the bucket; a line never lands in two.
		switch CategorizeCostItem(component.Description) {
		case CostLabour:
			labourParts = append(labourParts, component.LineTotal())
		case CostMiscellaneous:
			miscParts = append(miscParts, component.LineTotal())
		default:
			room.Components = append(room.Components, component)
		}
	}

	room.LabourCost = money.Sum(labourParts...)
	room.MiscellaneousCost = money.Sum(miscParts...)
	room.RecomputeTotal()
	room.SubType = resolveSubType(*room, opts)

	return room, room.LabourCost, room.MiscellaneousCost, nil
}

// perSheetColumns is the resolved column map for a room sheet.
type perSheetColumns struct {
	descCol  int
	makeCol  int
	modelCol int
	qtyCol   int
}

func (p *perSheetParser) mapColumns(sheet *Sheet, headerRow int) perSheetColumns {
	cols := perSheetColumns{descCol: -1, makeCol: -1, modelCol: -1, qtyCol: -1}

	for col := 0; col < sheet.MaxCols(); col++ {
		header := CanonicalHeader(sheet.CellText(headerRow, col))
		switch {
		case cols.descCol < 0 && strings.Contains(header, "DESCRIPTION"):
			cols.descCol = col
		case cols.makeCol < 0 && header == "MAKE":
			cols.makeCol = col
		case cols.modelCol < 0 && header == "MODEL":
			cols.modelCol = col
		case cols.qtyCol < 0 && header == "QTY":
			cols.qtyCol = col
		}
	}

	// Conventional positions when headers are missing.
	if cols.descCol < 0 {
		cols.descCol = 1
	}
	if cols.makeCol < 0 {
		cols.makeCol = 2
	}
	if cols.modelCol < 0 {
		cols.modelCol = 3
	}
	if cols.qtyCol < 0 {
		cols.qtyCol = 4
	}

	return cols
}

// unitCostFromWindow scans the fixed F–H column window for the first
// numeric cell.
func (p *perSheetParser) unitCostFromWindow(sheet *Sheet, row int) float64 {
	for col := unitCostWindowStart; col <= unitCostWindowEnd; col++ {
		if n, ok := sheet.CellNumber(row, col); ok && n > 0 {
			return n
		}
	}
	return 0
}

func skipSheetName(name string) bool {
	return containsAny(strings.ToLower(name), summarySkipTerms)
}
