package catalog

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
)

func parseResultFixture() *boq.ParseResult {
	return &boq.ParseResult{
		SourceFile: "office.xlsx",
		Variant:    boq.VariantMultiRoom,
		RoomTypes: []boq.RoomType{
			{
				RoomType: "6pax Meeting Room",
				SubType:  boq.SubTypeStandard,
				PaxCount: 6,
				Count:    2,
				Components: []boq.Component{
					{
						Description: "65 inch 4K Display", Make: "Samsung", Model: "QM65R",
						Quantity: 1, UnitCost: 1200, Region: "APAC", Country: "India",
						ComponentType: "Video", ComponentCategory: "Displays",
					},
				},
				TotalCost:         1200,
				LabourCost:        5000,
				MiscellaneousCost: 1000,
			},
		},
	}
}

func TestPersistParseResult(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewService(NewRepository(mock), newMemIndex(t), slog.New(slog.DiscardHandler))
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO room_types`).
		WithArgs("6pax Meeting Room", "6pax-meeting-room-apac", "APAC", "India", "USD").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "canonical_uid", "region", "country", "currency", "created_at", "updated_at",
		}).AddRow(uuid.New(), "6pax Meeting Room", "6pax-meeting-room-apac", "APAC", "India", "USD", now, now))

	mock.ExpectQuery(`INSERT INTO av_components`).
		WithArgs("Samsung", "QM65R", "65 inch 4K Display", 1200.0, "USD", "APAC", "India", "Video", "Displays").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "make", "model", "description", "unit_cost", "currency", "region",
			"country", "component_type", "category", "created_at", "updated_at",
		}).AddRow(uuid.New(), "Samsung", "QM65R", "65 inch 4K Display", 1200.0, "USD", "APAC",
			"India", "Video", "Displays", now, now))

	mock.ExpectExec(`DELETE FROM room_config_lines`).
		WithArgs("6pax-meeting-room-apac").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO room_config_lines`).
		WithArgs("6pax-meeting-room-apac", "65 inch 4K Display", "Samsung", "QM65R", 1.0, 1200.0, "Standard").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	// One instance per physical room.
	for i := 0; i < 2; i++ {
		mock.ExpectExec(`INSERT INTO room_instances`).
			WithArgs("6pax-meeting-room-apac", 1200.0, "office.xlsx").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}

	mock.ExpectExec(`INSERT INTO boq_records`).
		WithArgs("India", "APAC", "USD", 6, 2, 1200.0, 5000.0, 1000.0, "office.xlsx").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	persisted, err := svc.PersistParseResult(context.Background(), parseResultFixture(), "APAC", "India", "USD")
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "QM65R", persisted[0].Model)
	assert.NoError(t, mock.ExpectationsWereMet())

	t.Run("persisted components become searchable", func(t *testing.T) {
		hits, err := svc.SearchComponents("display", 5)
		require.NoError(t, err)
		require.NotEmpty(t, hits)
		assert.Equal(t, "Samsung", hits[0].Make)
	})
}

func TestPersistParseResultStopsOnFirstError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewService(NewRepository(mock), newMemIndex(t), slog.New(slog.DiscardHandler))

	mock.ExpectQuery(`INSERT INTO room_types`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)

	_, err = svc.PersistParseResult(context.Background(), parseResultFixture(), "APAC", "India", "USD")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
