package importer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
	"github.com/avsuite/av-cost-estimator/internal/domain/catalog"
	"github.com/avsuite/av-cost-estimator/internal/domain/learning"
	"github.com/avsuite/av-cost-estimator/pkg/kvstore"
	"github.com/avsuite/av-cost-estimator/pkg/metrics"
)

type fakeCatalog struct {
	lastResult   *boq.ParseResult
	lastRegion   string
	persistCalls int
	err          error
}

func (f *fakeCatalog) PersistParseResult(_ context.Context, result *boq.ParseResult, region, _, _ string) ([]catalog.ComponentRecord, error) {
	f.persistCalls++
	if f.err != nil {
		return nil, f.err
	}
	f.lastResult = result
	f.lastRegion = region

	var records []catalog.ComponentRecord
	for _, room := range result.RoomTypes {
		for _, c := range room.Components {
			records = append(records, catalog.ComponentRecord{Make: c.Make, Model: c.Model})
		}
	}
	return records, nil
}

// matrixWorkbook builds a one-room matrix sheet with a display and a
// speaker.
func matrixWorkbook(t *testing.T) []byte {
	return labeledWorkbook(t, "6 Person Meeting")
}

func labeledWorkbook(t *testing.T, roomLabel string) []byte {
	t.Helper()
	f := excelize.NewFile()
	cells := map[string]any{
		"B5": "Description", "C5": "Make", "D5": "Model", "E5": "Unit Cost",
		"F6":  roomLabel,
		"B10": "65 inch 4K Display", "C10": "Samsung", "D10": "QM65R", "E10": 1200, "F10": 1,
		"B11": "Ceiling speaker 8 ohm", "C11": "JBL", "D11": "Control 26CT", "E11": 150, "F11": 4,
	}
	for ref, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, v))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())
	return buf.Bytes()
}

func trainedPredictor(t *testing.T) *learning.Store {
	t.Helper()
	store := learning.NewStore(kvstore.NewMemStore(), slog.New(slog.DiscardHandler))

	accept := func(desc, brand, model string) learning.Feedback {
		return learning.Feedback{
			UserCorrection: learning.Correction{Type: "Audio", Category: "Speakers", Action: learning.ActionAccept},
			ComponentData:  learning.ComponentData{Description: desc, Make: brand, Model: model},
		}
	}
	require.NoError(t, store.AddFeedback(accept("Ceiling speaker 8 ohm", "JBL", "Control 26CT")))
	require.NoError(t, store.AddFeedback(accept("Ceiling speaker white", "JBL", "Control 24CT")))
	require.NoError(t, store.AddFeedback(accept("Pendant speaker 8 ohm", "Bose", "DS16")))
	return store
}

func newTestService(t *testing.T, cat CatalogPersister) *Service {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	return NewService(
		boq.NewParser(logger),
		trainedPredictor(t),
		cat,
		metrics.New(prometheus.NewRegistry()),
		logger,
	)
}

func TestImport(t *testing.T) {
	cat := &fakeCatalog{}
	svc := newTestService(t, cat)

	result, err := svc.Import(context.Background(), bytes.NewReader(matrixWorkbook(t)), boq.ParseOptions{
		FileName: "office.xlsx",
		Region:   "APAC",
		Currency: "USD",
	})
	require.NoError(t, err)

	t.Run("parses the workbook", func(t *testing.T) {
		require.Len(t, result.Parse.RoomTypes, 1)
		assert.Equal(t, "6pax Meeting Room", result.Parse.RoomTypes[0].RoomType)
		require.Len(t, result.Parse.RoomTypes[0].Components, 2)
	})

	t.Run("confident predictions annotate the component", func(t *testing.T) {
		require.Len(t, result.Suggestions, 2)

		var speaker, display *Suggestion
		for i := range result.Suggestions {
			switch result.Suggestions[i].Component.Model {
			case "Control 26CT":
				speaker = &result.Suggestions[i]
			case "QM65R":
				display = &result.Suggestions[i]
			}
		}
		require.NotNil(t, speaker)
		require.NotNil(t, display)

		assert.Equal(t, "Audio", speaker.Prediction.Type)
		assert.Equal(t, "Audio", speaker.Component.ComponentType)
		assert.Equal(t, "Speakers", speaker.Component.ComponentCategory)

		assert.Equal(t, learning.Uncategorized, display.Prediction.Type)
		assert.Empty(t, display.Component.ComponentType)
	})

	t.Run("hands the result to the catalog", func(t *testing.T) {
		require.NotNil(t, cat.lastResult)
		assert.Equal(t, "APAC", cat.lastRegion)
		assert.Equal(t, 1, cat.persistCalls)
		assert.Equal(t, 2, result.Persisted)
	})
}

func TestPreviewSkipsCatalog(t *testing.T) {
	cat := &fakeCatalog{}
	svc := newTestService(t, cat)

	result, err := svc.Preview(bytes.NewReader(matrixWorkbook(t)), boq.ParseOptions{
		FileName: "office.xlsx",
		Region:   "APAC",
	})
	require.NoError(t, err)

	assert.Zero(t, cat.persistCalls, "preview must not write to the catalog")
	assert.Zero(t, result.Persisted)
	assert.Len(t, result.Suggestions, 2)
}

func TestRoomTypeSuggestions(t *testing.T) {
	t.Run("verbatim label gets did-you-mean names", func(t *testing.T) {
		svc := newTestService(t, &fakeCatalog{})

		result, err := svc.Preview(bytes.NewReader(labeledWorkbook(t, "Confrence Rm")), boq.ParseOptions{
			FileName: "office.xlsx",
		})
		require.NoError(t, err)

		require.Len(t, result.Parse.RoomTypes, 1)
		assert.Equal(t, "Confrence Rm", result.Parse.RoomTypes[0].RoomType)
		assert.Contains(t, result.RoomTypeSuggestions["Confrence Rm"], "Conference Room")
	})

	t.Run("canonical label gets none", func(t *testing.T) {
		svc := newTestService(t, &fakeCatalog{})

		result, err := svc.Preview(bytes.NewReader(matrixWorkbook(t)), boq.ParseOptions{
			FileName: "office.xlsx",
		})
		require.NoError(t, err)
		assert.Empty(t, result.RoomTypeSuggestions)
	})
}

func TestImportParseFailure(t *testing.T) {
	cat := &fakeCatalog{}
	svc := newTestService(t, cat)

	_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not a workbook")), boq.ParseOptions{})
	require.Error(t, err)
	assert.Nil(t, cat.lastResult, "catalog must not see a failed parse")
}

func TestImportPersistFailure(t *testing.T) {
	cat := &fakeCatalog{err: assert.AnError}
	svc := newTestService(t, cat)

	_, err := svc.Import(context.Background(), bytes.NewReader(matrixWorkbook(t)), boq.ParseOptions{FileName: "office.xlsx"})
	assert.ErrorIs(t, err, assert.AnError)
}
