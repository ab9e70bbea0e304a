package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
)

// Service executes the multi-step persistence sequence for a parse result.
// Steps run sequentially with no compensating rollback: a failure leaves the
// earlier steps committed. Room types, components, and config lines converge
// when the import is re-run; room instances and BOQ records append a row per
// run, so only the import path may call PersistParseResult.
type Service struct {
	repo   *Repository
	search *SearchIndex
	logger *slog.Logger
}

// NewService wires the catalog service.
func NewService(repo *Repository, search *SearchIndex, logger *slog.Logger) *Service {
	return &Service{repo: repo, search: search, logger: logger}
}

var uidSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalUID derives the stable room-type key from its canonical name and
// region.
func CanonicalUID(name, region string) string {
	joined := strings.ToLower(strings.TrimSpace(name + " " + region))
	return strings.Trim(uidSeparators.ReplaceAllString(joined, "-"), "-")
}

// PersistParseResult writes one parsed workbook into the catalog: per room
// type, the room type itself, its components, its configuration lines, its
// room instances, and a BOQ cost rollup. Returns the upserted components so
// the caller can refresh dependent state.
func (s *Service) PersistParseResult(ctx context.Context, result *boq.ParseResult, region, country, currency string) ([]ComponentRecord, error) {
	var indexed []ComponentRecord

	for _, room := range result.RoomTypes {
		uid := CanonicalUID(room.RoomType, region)

		if _, err := s.repo.UpsertRoomType(ctx, RoomTypeRecord{
			Name:         room.RoomType,
			CanonicalUID: uid,
			Region:       region,
			Country:      country,
			Currency:     currency,
		}); err != nil {
			return indexed, err
		}

		lines := make([]ConfigLine, 0, len(room.Components))
		for _, c := range room.Components {
			record, err := s.repo.UpsertComponent(ctx, componentRecord(c, currency))
			if err != nil {
				return indexed, err
			}
			indexed = append(indexed, *record)

			lines = append(lines, ConfigLine{
				RoomTypeUID: uid,
				Description: c.Description,
				Make:        c.Make,
				Model:       c.Model,
				Quantity:    c.Quantity,
				UnitPrice:   c.UnitCost,
				SubType:     string(room.SubType),
			})
		}

		if err := s.repo.ReplaceConfigLines(ctx, uid, lines); err != nil {
			return indexed, err
		}

		for i := 0; i < room.Count; i++ {
			if err := s.repo.InsertRoomInstance(ctx, RoomInstance{
				RoomTypeUID: uid,
				ActualCost:  room.TotalCost,
				SourceFile:  result.SourceFile,
			}); err != nil {
				return indexed, err
			}
		}

		if err := s.repo.InsertBOQRecord(ctx, BOQRecord{
			Country:      country,
			Region:       region,
			Currency:     currency,
			PaxCount:     room.PaxCount,
			RoomCount:    room.Count,
			HardwareCost: room.TotalCost,
			LabourCost:   room.LabourCost,
			MiscCost:     room.MiscellaneousCost,
			SourceFile:   result.SourceFile,
		}); err != nil {
			return indexed, err
		}
	}

	if len(indexed) > 0 {
		if err := s.search.IndexComponents(indexed); err != nil {
			return indexed, fmt.Errorf("catalog persisted but search indexing failed: %w", err)
		}
	}

	s.logger.Info("parse result persisted",
		slog.String("file", result.SourceFile),
		slog.Int("roomTypes", len(result.RoomTypes)),
		slog.Int("components", len(indexed)),
	)
	return indexed, nil
}

// SearchComponents proxies the full-text index.
func (s *Service) SearchComponents(query string, limit int) ([]SearchHit, error) {
	return s.search.Search(query, limit)
}

// RebuildSearchIndex reloads every catalog component into the index.
func (s *Service) RebuildSearchIndex(ctx context.Context) error {
	components, err := s.repo.ListComponents(ctx)
	if err != nil {
		return err
	}
	if err := s.search.IndexComponents(components); err != nil {
		return err
	}
	s.logger.Info("search index rebuilt", slog.Int("components", len(components)))
	return nil
}

func componentRecord(c boq.Component, currency string) ComponentRecord {
	componentType := c.ComponentType
	if componentType == "" {
		componentType = "Uncategorized"
	}
	category := c.ComponentCategory
	if category == "" {
		category = "Uncategorized"
	}
	if currency == "" {
		currency = c.Currency
	}

	return ComponentRecord{
		Make:          c.Make,
		Model:         c.Model,
		Description:   c.Description,
		UnitCost:      c.UnitCost,
		Currency:      currency,
		Region:        c.Region,
		Country:       c.Country,
		ComponentType: componentType,
		Category:      category,
	}
}
