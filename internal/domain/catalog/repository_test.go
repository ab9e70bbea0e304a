package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *Repository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewRepository(mock)
}

func TestUpsertRoomType(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO room_types`).
		WithArgs("6pax Meeting Room", "6pax-meeting-room-apac", "APAC", "India", "USD").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "canonical_uid", "region", "country", "currency", "created_at", "updated_at",
		}).AddRow(id, "6pax Meeting Room", "6pax-meeting-room-apac", "APAC", "India", "USD", now, now))

	got, err := repo.UpsertRoomType(context.Background(), RoomTypeRecord{
		Name:         "6pax Meeting Room",
		CanonicalUID: "6pax-meeting-room-apac",
		Region:       "APAC",
		Country:      "India",
		Currency:     "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "6pax-meeting-room-apac", got.CanonicalUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertComponent(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO av_components`).
		WithArgs("Samsung", "QM65R", "65 inch 4K Display", 1200.0, "USD", "APAC", "India", "Video", "Displays").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "make", "model", "description", "unit_cost", "currency", "region",
			"country", "component_type", "category", "created_at", "updated_at",
		}).AddRow(id, "Samsung", "QM65R", "65 inch 4K Display", 1200.0, "USD", "APAC",
			"India", "Video", "Displays", now, now))

	got, err := repo.UpsertComponent(context.Background(), ComponentRecord{
		Make: "Samsung", Model: "QM65R", Description: "65 inch 4K Display",
		UnitCost: 1200, Currency: "USD", Region: "APAC", Country: "India",
		ComponentType: "Video", Category: "Displays",
	})
	require.NoError(t, err)
	assert.Equal(t, "QM65R", got.Model)
	assert.InDelta(t, 1200, got.UnitCost, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceConfigLines(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`DELETE FROM room_config_lines`).
		WithArgs("6pax-meeting-room-apac").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO room_config_lines`).
		WithArgs("6pax-meeting-room-apac", "65 inch 4K Display", "Samsung", "QM65R", 1.0, 1200.0, "Standard").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.ReplaceConfigLines(context.Background(), "6pax-meeting-room-apac", []ConfigLine{
		{
			RoomTypeUID: "6pax-meeting-room-apac",
			Description: "65 inch 4K Display", Make: "Samsung", Model: "QM65R",
			Quantity: 1, UnitPrice: 1200, SubType: "Standard",
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBOQRecordError(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO boq_records`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(assert.AnError)

	err := repo.InsertBOQRecord(context.Background(), BOQRecord{SourceFile: "office.xlsx"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListComponents(t *testing.T) {
	mock, repo := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM av_components`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "make", "model", "description", "unit_cost", "currency", "region",
			"country", "component_type", "category", "created_at", "updated_at",
		}).
			AddRow(uuid.New(), "Samsung", "QM65R", "65 inch 4K Display", 1200.0, "USD", "APAC", "India", "Video", "Displays", now, now).
			AddRow(uuid.New(), "JBL", "Control 26CT", "Ceiling Speaker", 150.0, "USD", "APAC", "India", "Audio", "Speakers", now, now))

	got, err := repo.ListComponents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Samsung", got[0].Make)
	assert.Equal(t, "Audio", got[1].ComponentType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
