package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs; satisfied by a
// pool and by pgxmock in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the PostgreSQL persistence layer for the catalog.
type Repository struct {
	db Querier
}

// NewRepository creates a repository over the given querier.
func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

// UpsertRoomType creates or refreshes a room type keyed by canonical UID.
func (r *Repository) UpsertRoomType(ctx context.Context, rt RoomTypeRecord) (*RoomTypeRecord, error) {
	query := `
		INSERT INTO room_types (name, canonical_uid, region, country, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (canonical_uid) DO UPDATE SET
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			country = EXCLUDED.country,
			currency = EXCLUDED.currency,
			updated_at = now()
		RETURNING id, name, canonical_uid, region, country, currency, created_at, updated_at
	`

	var result RoomTypeRecord
	err := r.db.QueryRow(ctx, query,
		rt.Name, rt.CanonicalUID, rt.Region, rt.Country, rt.Currency,
	).Scan(
		&result.ID, &result.Name, &result.CanonicalUID, &result.Region,
		&result.Country, &result.Currency, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert room type %q: %w", rt.CanonicalUID, err)
	}
	return &result, nil
}

// UpsertComponent creates or refreshes a component keyed by
// (make, model, region).
func (r *Repository) UpsertComponent(ctx context.Context, c ComponentRecord) (*ComponentRecord, error) {
	query := `
		INSERT INTO av_components (
			make, model, description, unit_cost, currency, region, country,
			component_type, category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (make, model, region) DO UPDATE SET
			description = EXCLUDED.description,
			unit_cost = EXCLUDED.unit_cost,
			currency = EXCLUDED.currency,
			country = EXCLUDED.country,
			component_type = EXCLUDED.component_type,
			category = EXCLUDED.category,
			updated_at = now()
		RETURNING id, make, model, description, unit_cost, currency, region,
			country, component_type, category, created_at, updated_at
	`

	var result ComponentRecord
	err := r.db.QueryRow(ctx, query,
		c.Make, c.Model, c.Description, c.UnitCost, c.Currency,
		c.Region, c.Country, c.ComponentType, c.Category,
	).Scan(
		&result.ID, &result.Make, &result.Model, &result.Description,
		&result.UnitCost, &result.Currency, &result.Region, &result.Country,
		&result.ComponentType, &result.Category, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert component %s %s: %w", c.Make, c.Model, err)
	}
	return &result, nil
}

// ReplaceConfigLines swaps a room type's configuration for a fresh one.
func (r *Repository) ReplaceConfigLines(ctx context.Context, roomTypeUID string, lines []ConfigLine) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM room_config_lines WHERE room_type_uid = $1`, roomTypeUID); err != nil {
		return fmt.Errorf("failed to clear config lines for %q: %w", roomTypeUID, err)
	}

	query := `
		INSERT INTO room_config_lines (
			room_type_uid, description, make, model, quantity, unit_price, sub_type
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, line := range lines {
		if _, err := r.db.Exec(ctx, query,
			roomTypeUID, line.Description, line.Make, line.Model,
			line.Quantity, line.UnitPrice, line.SubType,
		); err != nil {
			return fmt.Errorf("failed to insert config line for %q: %w", roomTypeUID, err)
		}
	}
	return nil
}

// InsertRoomInstance records one physical room.
func (r *Repository) InsertRoomInstance(ctx context.Context, inst RoomInstance) error {
	query := `
		INSERT INTO room_instances (room_type_uid, actual_cost, source_file)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query,
		inst.RoomTypeUID, inst.ActualCost, inst.SourceFile); err != nil {
		return fmt.Errorf("failed to insert room instance for %q: %w", inst.RoomTypeUID, err)
	}
	return nil
}

// InsertBOQRecord stores one cost rollup row.
func (r *Repository) InsertBOQRecord(ctx context.Context, rec BOQRecord) error {
	query := `
		INSERT INTO boq_records (
			country, region, currency, pax_count, room_count,
			hardware_cost, labour_cost, misc_cost, source_file
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.Exec(ctx, query,
		rec.Country, rec.Region, rec.Currency, rec.PaxCount, rec.RoomCount,
		rec.HardwareCost, rec.LabourCost, rec.MiscCost, rec.SourceFile,
	); err != nil {
		return fmt.Errorf("failed to insert BOQ record: %w", err)
	}
	return nil
}

// ListComponents returns the whole component catalog, newest first. Used to
// warm the search index at startup.
func (r *Repository) ListComponents(ctx context.Context) ([]ComponentRecord, error) {
	query := `
		SELECT id, make, model, description, unit_cost, currency, region,
			country, component_type, category, created_at, updated_at
		FROM av_components
		ORDER BY updated_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var components []ComponentRecord
	for rows.Next() {
		var c ComponentRecord
		if err := rows.Scan(
			&c.ID, &c.Make, &c.Model, &c.Description, &c.UnitCost,
			&c.Currency, &c.Region, &c.Country, &c.ComponentType,
			&c.Category, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate components: %w", err)
	}
	return components, nil
}
