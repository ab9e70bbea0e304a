// Package catalog persists parse output: room types, AV components,
// configuration lines, room instances, and BOQ records, with a full-text
// component search on top.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// RoomTypeRecord is a catalog room type. CanonicalUID is the stable,
// region-scoped identity the foreign keys hang off.
type RoomTypeRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CanonicalUID string    `json:"canonical_uid"`
	Region       string    `json:"region"`
	Country      string    `json:"country"`
	Currency     string    `json:"currency"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ComponentRecord is a catalog AV part, unique per (make, model, region).
type ComponentRecord struct {
	ID            uuid.UUID `json:"id"`
	Make          string    `json:"make"`
	Model         string    `json:"model"`
	Description   string    `json:"description"`
	UnitCost      float64   `json:"unit_cost"`
	Currency      string    `json:"currency"`
	Region        string    `json:"region"`
	Country       string    `json:"country"`
	ComponentType string    `json:"component_type"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConfigLine is one line of a room type's standard bill of materials.
type ConfigLine struct {
	RoomTypeUID string  `json:"room_type_uid"`
	Description string  `json:"description"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	SubType     string  `json:"sub_type"`
}

// RoomInstance is one physical room priced against a room type.
type RoomInstance struct {
	RoomTypeUID string  `json:"room_type_uid"`
	ActualCost  float64 `json:"actual_cost"`
	SourceFile  string  `json:"source_file"`
}

// BOQRecord is the per-room-type cost rollup of one parsed workbook.
type BOQRecord struct {
	ID           uuid.UUID `json:"id"`
	Country      string    `json:"country"`
	Region       string    `json:"region"`
	Currency     string    `json:"currency"`
	PaxCount     int       `json:"pax_count"`
	RoomCount    int       `json:"room_count"`
	HardwareCost float64   `json:"hardware_cost"`
	LabourCost   float64   `json:"labour_cost"`
	MiscCost     float64   `json:"misc_cost"`
	SourceFile   string    `json:"source_file"`
	CreatedAt    time.Time `json:"created_at"`
}
