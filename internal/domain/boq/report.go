package boq

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// invalidEntryRow is the CSV shape of one rejected row in the operator
// report.
type invalidEntryRow struct {
	Sheet       string  `csv:"sheet"`
	Row         int     `csv:"row"`
	Reason      string  `csv:"reason"`
	Description string  `csv:"description"`
	Make        string  `csv:"make"`
	Model       string  `csv:"model"`
	Quantity    float64 `csv:"quantity"`
	UnitCost    float64 `csv:"unit_cost"`
	RoomType    string  `csv:"room_type"`
	SourceFile  string  `csv:"source_file"`
}

// WriteInvalidEntriesCSV renders the invalid-entries collection as a CSV
// report so operators can fix the source spreadsheet. An empty collection
// still produces the header row.
func WriteInvalidEntriesCSV(w io.Writer, entries []InvalidEntry) error {
	rows := make([]invalidEntryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, invalidEntryRow{
			Sheet:       e.Sheet,
			Row:         e.Row,
			Reason:      e.Reason,
			Description: e.Component.Description,
			Make:        e.Component.Make,
			Model:       e.Component.Model,
			Quantity:    e.Component.Quantity,
			UnitCost:    e.Component.UnitCost,
			RoomType:    e.Component.RoomType,
			SourceFile:  e.Component.SourceFile,
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write invalid-entries report: %w", err)
	}
	return nil
}
