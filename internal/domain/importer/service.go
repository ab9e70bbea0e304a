// Package importer orchestrates a workbook import: parse, categorization
// suggestions, metrics, and catalog persistence.
package importer

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/avsuite/av-cost-estimator/internal/domain/boq"
	"github.com/avsuite/av-cost-estimator/internal/domain/catalog"
	"github.com/avsuite/av-cost-estimator/internal/domain/learning"
	"github.com/avsuite/av-cost-estimator/pkg/metrics"
)

// CatalogPersister stores a parse result.
type CatalogPersister interface {
	PersistParseResult(ctx context.Context, result *boq.ParseResult, region, country, currency string) ([]catalog.ComponentRecord, error)
}

// Predictor suggests a {type, category} for a component.
type Predictor interface {
	Predict(description, componentMake, model, region string) learning.Prediction
}

// Service runs the import pipeline.
type Service struct {
	parser    *boq.Parser
	predictor Predictor
	catalog   CatalogPersister
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewService wires the import pipeline.
func NewService(parser *boq.Parser, predictor Predictor, cat CatalogPersister, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		parser:    parser,
		predictor: predictor,
		catalog:   cat,
		metrics:   m,
		logger:    logger,
	}
}

// Suggestion pairs a component with the engine's prediction for it, keyed
// back to its room type.
type Suggestion struct {
	RoomType   string              `json:"room_type"`
	Component  boq.Component       `json:"component"`
	Prediction learning.Prediction `json:"prediction"`
}

// ImportResult is the outcome of one upload. RoomTypeSuggestions offers
// canonical did-you-mean names for room labels the normalizer passed through
// verbatim, keyed by that label.
type ImportResult struct {
	Parse               *boq.ParseResult    `json:"parse"`
	Suggestions         []Suggestion        `json:"suggestions"`
	RoomTypeSuggestions map[string][]string `json:"room_type_suggestions,omitempty"`
	Persisted           int                 `json:"persisted_components"`
}

// Import parses the workbook from r, annotates components with
// categorization suggestions, persists the result, and reports metrics.
func (s *Service) Import(ctx context.Context, r io.Reader, opts boq.ParseOptions) (*ImportResult, error) {
	result, err := s.analyze(r, opts)
	if err != nil {
		return nil, err
	}

	persisted, err := s.catalog.PersistParseResult(ctx, result.Parse, opts.Region, opts.Country, opts.Currency)
	if err != nil {
		return nil, err
	}
	result.Persisted = len(persisted)

	s.logger.Info("import complete",
		slog.String("file", opts.FileName),
		slog.Int("roomTypes", len(result.Parse.RoomTypes)),
		slog.Int("suggestions", len(result.Suggestions)),
		slog.Int("persistedComponents", len(persisted)),
	)
	return result, nil
}

// Preview runs the parse and suggestion stages without writing to the
// catalog. Room-instance and BOQ rows are plain inserts, so anything that
// re-parses an upload for display must stay off the persistence path.
func (s *Service) Preview(r io.Reader, opts boq.ParseOptions) (*ImportResult, error) {
	return s.analyze(r, opts)
}

func (s *Service) analyze(r io.Reader, opts boq.ParseOptions) (*ImportResult, error) {
	start := time.Now()

	parse, err := s.parser.Parse(r, opts)
	s.metrics.ParseDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FilesParsed.WithLabelValues("unknown", "error").Inc()
		return nil, err
	}
	s.metrics.FilesParsed.WithLabelValues(string(parse.Variant), "ok").Inc()
	s.metrics.InvalidRows.Add(float64(len(parse.InvalidEntries)))
	s.metrics.RoomTypesFound.Add(float64(len(parse.RoomTypes)))

	return &ImportResult{
		Parse:               parse,
		Suggestions:         s.annotate(parse, opts.Region),
		RoomTypeSuggestions: roomTypeSuggestions(parse),
	}, nil
}

// roomTypeSuggestions collects fuzzy canonical-name matches for every room
// label normalization left verbatim.
func roomTypeSuggestions(parse *boq.ParseResult) map[string][]string {
	var out map[string][]string
	for _, room := range parse.RoomTypes {
		if boq.IsCanonicalRoomType(room.RoomType) {
			continue
		}
		matches := boq.SuggestRoomTypes(room.RoomType, 3)
		if len(matches) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string][]string)
		}
		out[room.RoomType] = matches
	}
	return out
}

// annotate asks the engine about every component without a type and writes
// confident answers back onto the component. Every queried component also
// yields a Suggestion so the UI can offer accept/reject controls.
func (s *Service) annotate(result *boq.ParseResult, region string) []Suggestion {
	var suggestions []Suggestion

	for ri := range result.RoomTypes {
		room := &result.RoomTypes[ri]
		for ci := range room.Components {
			c := &room.Components[ci]
			if c.ComponentType != "" {
				continue
			}

			prediction := s.predictor.Predict(c.Description, c.Make, c.Model, region)

			outcome := "uncategorized"
			if prediction.Type != learning.Uncategorized {
				outcome = "matched"
				c.ComponentType = prediction.Type
				c.ComponentCategory = prediction.Category
			}
			s.metrics.Predictions.WithLabelValues(outcome).Inc()

			suggestions = append(suggestions, Suggestion{
				RoomType:   room.RoomType,
				Component:  *c,
				Prediction: prediction,
			})
		}
	}
	return suggestions
}
