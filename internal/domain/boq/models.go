// Package boq implements the spreadsheet ingestion and normalization
// pipeline: workbook walking, header/room-type canonicalization, cost-item
// classification, and sub-type inference for AV bill-of-quantities files.
package boq

import (
	"errors"

	"github.com/avsuite/av-cost-estimator/pkg/money"
)

// Fatal parse errors. Row-level problems never surface as errors; they are
// collected in ParseResult.InvalidEntries instead.
var (
	ErrNoValidSheet = errors.New("boq: no valid sheet found in workbook")
	ErrNoRoomTypes  = errors.New("boq: no room type columns found")
)

// CostCategory is the bucket a line item contributes to.
type CostCategory string

const (
	CostHardware      CostCategory = "hardware"
	CostLabour        CostCategory = "labour"
	CostMiscellaneous CostCategory = "miscellaneous"
)

// SubType is the qualitative AV tier of a room.
type SubType string

const (
	SubTypeStandard      SubType = "Standard"
	SubTypePremium       SubType = "Premium"
	SubTypeExecutive     SubType = "Executive"
	SubTypeCodecBased    SubType = "Codec-Based"
	SubTypeDirectConnect SubType = "Direct-Connect"
)

// Component is one line item extracted from a spreadsheet row. Immutable
// after parsing except for the category fields, which classification or a
// user edit may overwrite.
type Component struct {
	Description       string  `json:"description"`
	Make              string  `json:"make"`
	Model             string  `json:"model"`
	Quantity          float64 `json:"quantity"`
	UnitCost          float64 `json:"unit_cost"`
	Currency          string  `json:"currency"`
	Region            string  `json:"region"`
	Country           string  `json:"country"`
	RoomType          string  `json:"room_type"`
	ComponentType     string  `json:"component_type,omitempty"`
	ComponentCategory string  `json:"component_category,omitempty"`
	SourceFile        string  `json:"source_file"`
}

// LineTotal returns the component's qty * unit_cost.
func (c Component) LineTotal() float64 {
	return money.LineTotal(c.Quantity, c.UnitCost)
}

// RoomType is the parse unit: one canonical room type with its hardware
// components and pre-aggregated costs.
type RoomType struct {
	RoomType          string      `json:"room_type"`
	SubType           SubType     `json:"sub_type"`
	Components        []Component `json:"components"`
	TotalCost         float64     `json:"total_cost"`
	PaxCount          int         `json:"pax_count"`
	Category          string      `json:"category"`
	LabourCost        float64     `json:"labour_cost"`
	MiscellaneousCost float64     `json:"miscellaneous_cost"`
	Count             int         `json:"count"`
}

// RecomputeTotal recalculates TotalCost from the current component list.
// Must be called after any filtering of Components.
func (r *RoomType) RecomputeTotal() {
	totals := make([]float64, 0, len(r.Components))
	for _, c := range r.Components {
		totals = append(totals, c.LineTotal())
	}
	r.TotalCost = money.Sum(totals...)
}

// InvalidEntry is a rejected row kept for the operator report.
type InvalidEntry struct {
	Component Component `json:"component"`
	Reason    string    `json:"reason"`
	Sheet     string    `json:"sheet"`
	Row       int       `json:"row"`
}

// ParseResult is the output of one parse pass over a workbook.
type ParseResult struct {
	RoomTypes         []RoomType     `json:"room_types"`
	InvalidEntries    []InvalidEntry `json:"invalid_entries"`
	LabourCost        float64        `json:"labour_cost"`
	MiscellaneousCost float64        `json:"miscellaneous_cost"`
	SourceFile        string         `json:"source_file"`
	Variant           Variant        `json:"variant"`
}

// Variant identifies which layout strategy produced a ParseResult.
type Variant string

const (
	VariantMultiRoom Variant = "multi_room_sheet"
	VariantPerSheet  Variant = "sheet_per_room"
)

// ParseOptions carries the caller-supplied context for a parse pass.
type ParseOptions struct {
	FileName string
	Region   string
	Country  string
	Currency string

	// SubTypeOverrides maps canonical room-type names to a caller-chosen
	// sub-type that takes precedence over the computed one.
	SubTypeOverrides map[string]SubType
}
