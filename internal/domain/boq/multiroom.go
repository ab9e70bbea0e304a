package boq

import (
	"log/slog"
	"strings"

	"github.com/avsuite/av-cost-estimator/pkg/money"
)

// Multi-room single-sheet layout convention: one "AV" sheet holding a
// component matrix. Fixed row positions (zero-based) near the top of the
// sheet, matching the source spreadsheets' layout.
const (
	multiHeaderRow    = 4 // canonical field headers (DESCRIPTION, MAKE, ...)
	multiRoomNameRow  = 5 // room-type display names per column
	multiRoomCountRow = 6 // physical room count per room-type column
	multiLabourRow    = 7 // pre-aggregated labour cost per room-type column
	multiMiscRow      = 8 // pre-aggregated miscellaneous cost per column
	multiDataStartRow = 9 // first component data row
)

// fieldHeaders is the exclusion set: columns carrying these canonical
// headers are line-item fields, not room-type columns.
var fieldHeaders = map[string]bool{
	"DESCRIPTION": true, "MAKE": true, "MODEL": true, "QTY": true,
	"UNIT_COST": true, "TOTAL": true, "S NO": true, "SNO": true,
	"SL NO": true, "SR NO": true, "REMARKS": true, "CURRENCY": true,
}

// multiRoomParser extracts every room type from a single matrix sheet:
// line-item fields on the left, one quantity column per room type on the
// right.
type multiRoomParser struct {
	logger *slog.Logger
}

func (p *multiRoomParser) Variant() Variant {
	return VariantMultiRoom
}

func (p *multiRoomParser) Parse(wb *Workbook, opts ParseOptions) (*ParseResult, error) {
	sheet := p.locateSheet(wb)
	if sheet == nil {
		return nil, ErrNoValidSheet
	}

	cols := p.mapColumns(sheet)
	if len(cols.roomTypeCols) == 0 {
		return nil, ErrNoRoomTypes
	}

	result := &ParseResult{
		SourceFile: opts.FileName,
		Variant:    VariantMultiRoom,
	}

	labourTotals := make([]float64, 0, len(cols.roomTypeCols))
	miscTotals := make([]float64, 0, len(cols.roomTypeCols))

	for _, rtc := range cols.roomTypeCols {
		room := p.parseRoomColumn(sheet, cols, rtc, opts, result)

		labourTotals = append(labourTotals, room.LabourCost)
		miscTotals = append(miscTotals, room.MiscellaneousCost)

		result.RoomTypes = append(result.RoomTypes, room)
	}

	result.LabourCost = money.Sum(labourTotals...)
	result.MiscellaneousCost = money.Sum(miscTotals...)

	return result, nil
}

// locateSheet prefers a sheet whose name contains "av", falling back to the
// first sheet.
func (p *multiRoomParser) locateSheet(wb *Workbook) *Sheet {
	for _, s := range wb.Sheets() {
		if strings.Contains(strings.ToLower(s.Name), "av") {
			return s
		}
	}
	if sheets := wb.Sheets(); len(sheets) > 0 {
		return sheets[0]
	}
	return nil
}

// multiColumns is the resolved column map for the matrix sheet.
type multiColumns struct {
	descCol  int
	makeCol  int
	modelCol int
	costCol  int // first header containing COST or PRICE
	totalCol int // fallback for deriving unit cost

	roomTypeCols []roomTypeColumn
}

type roomTypeColumn struct {
	col   int
	label string
}

func (p *multiRoomParser) mapColumns(sheet *Sheet) multiColumns {
	cols := multiColumns{descCol: -1, makeCol: -1, modelCol: -1, costCol: -1, totalCol: -1}

	maxCols := sheet.MaxCols()
	for col := 0; col < maxCols; col++ {
		header := CanonicalHeader(sheet.CellText(multiHeaderRow, col))

		switch {
		case header == "DESCRIPTION" && cols.descCol < 0:
			cols.descCol = col
		case header == "MAKE" && cols.makeCol < 0:
			cols.makeCol = col
		case header == "MODEL" && cols.modelCol < 0:
			cols.modelCol = col
		case cols.costCol < 0 && (strings.Contains(header, "COST") || strings.Contains(header, "PRICE")):
			cols.costCol = col
		case header == "TOTAL" && cols.totalCol < 0:
			cols.totalCol = col
		}

		if fieldHeaders[header] {
			continue
		}
		if label := sheet.CellText(multiRoomNameRow, col); label != "" {
			cols.roomTypeCols = append(cols.roomTypeCols, roomTypeColumn{col: col, label: label})
		}
	}

	return cols
}

// parseRoomColumn builds one RoomType from a quantity column.
func (p *multiRoomParser) parseRoomColumn(sheet *Sheet, cols multiColumns, rtc roomTypeColumn, opts ParseOptions, result *ParseResult) RoomType {
	canonical := NormalizeRoomTypeName(rtc.label)

	room := RoomType{
		RoomType: canonical,
		PaxCount: PaxFromName(canonical),
		Count:    1,
	}

	if n, ok := sheet.CellNumber(multiRoomCountRow, rtc.col); ok && n > 0 {
		room.Count = int(n)
	}
	if n, ok := sheet.CellNumber(multiLabourRow, rtc.col); ok {
		room.LabourCost = n
	}
	if n, ok := sheet.CellNumber(multiMiscRow, rtc.col); ok {
		room.MiscellaneousCost = n
	}

	scanner := newRowScanner(sheet, multiDataStartRow)
	for scanner.Next() {
		row := scanner.Row()

		qty, ok := sheet.CellNumber(row, rtc.col)
		if !ok || qty <= 0 {
			continue
		}

		component := Component{
			Description: sheet.CellText(row, cols.descCol),
			Make:        sheet.CellText(row, cols.makeCol),
			Model:       sheet.CellText(row, cols.modelCol),
			Quantity:    qty,
			Currency:    opts.Currency,
			Region:      opts.Region,
			Country:     opts.Country,
			RoomType:    canonical,
			SourceFile:  opts.FileName,
		}

		if component.Description == "" || component.Make == "" || component.Model == "" {
			result.InvalidEntries = append(result.InvalidEntries, InvalidEntry{
				Component: component,
				Reason:    "Missing description, make, or model",
				Sheet:     sheet.Name,
				Row:       row + 1,
			})
			continue
		}

		component.UnitCost = p.resolveUnitCost(sheet, cols, row, qty)
		if component.UnitCost == 0 {
			result.InvalidEntries = append(result.InvalidEntries, InvalidEntry{
				Component: component,
				Reason:    "Zero unit cost",
				Sheet:     sheet.Name,
				Row:       row + 1,
			})
			continue
		}

		room.Components = append(room.Components, component)
	}

	// The matrix rows mix hardware with embedded labour/misc items; this
	// layout takes labour/misc from the dedicated rows above, so matching
	// rows are dropped entirely to avoid double counting.
	room.Components = filterHardware(room.Components)
	room.RecomputeTotal()

	room.SubType = resolveSubType(room, opts)

	return room
}

// resolveUnitCost reads the unit-cost column, falling back to TOTAL / qty.
func (p *multiRoomParser) resolveUnitCost(sheet *Sheet, cols multiColumns, row int, qty float64) float64 {
	if cols.costCol >= 0 {
		if n, ok := sheet.CellNumber(row, cols.costCol); ok && n > 0 {
			return n
		}
	}
	if cols.totalCol >= 0 && qty > 0 {
		if n, ok := sheet.CellNumber(row, cols.totalCol); ok && n > 0 {
			return n / qty
		}
	}
	return 0
}

// filterHardware drops components whose description classifies as labour or
// miscellaneous.
func filterHardware(components []Component) []Component {
	kept := components[:0]
	for _, c := range components {
		if IsNonHardware(c.Description) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// resolveSubType applies the caller's manual override when present,
// otherwise computes the tier from signals and cost.
func resolveSubType(room RoomType, opts ParseOptions) SubType {
	if override, ok := opts.SubTypeOverrides[room.RoomType]; ok && override != "" {
		return override
	}
	return DetermineSubType(room.RoomType, room.TotalCost, room.Components)
}

