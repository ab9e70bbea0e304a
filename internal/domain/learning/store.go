package learning

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avsuite/av-cost-estimator/pkg/kvstore"
)

// Persistence keys. Each holds one whole JSON document.
const (
	modelKey    = "trained_model"
	feedbackKey = "learning_feedback"
)

const (
	// minRetrainFeedback is the buffer size that triggers an automatic
	// retrain on AddFeedback.
	minRetrainFeedback = 3

	// maxFeedbackBuffer bounds the retained history; oldest entries are
	// evicted on append so retrains stay O(cap), not O(lifetime).
	maxFeedbackBuffer = 500

	// schemaVersion tags persisted payloads.
	schemaVersion = 1
)

// persistedFeedback wraps the buffer with an explicit schema version.
type persistedFeedback struct {
	SchemaVersion int        `json:"schema_version"`
	Feedback      []Feedback `json:"feedback"`
}

// Store owns the trained model and the feedback buffer. All mutation goes
// through its mutex; the model is replaced wholesale on retrain, never
// edited in place. Persistence is whole-document per key via the injected
// kvstore port.
type Store struct {
	mu       sync.RWMutex
	model    *TrainedModel
	feedback []Feedback

	kv     kvstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewStore loads any previously persisted model and feedback buffer.
// Corrupt payloads are logged and treated as absent rather than failing
// construction.
func NewStore(kv kvstore.Store, logger *slog.Logger) *Store {
	s := &Store{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
	s.load()
	return s
}

func (s *Store) load() {
	if data, err := s.kv.Get(modelKey); err == nil {
		var m TrainedModel
		if jsonErr := json.Unmarshal(data, &m); jsonErr != nil {
			s.logger.Error("discarding corrupt trained model", slog.Any("error", jsonErr))
		} else {
			s.model = &m
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.Error("failed to load trained model", slog.Any("error", err))
	}

	if data, err := s.kv.Get(feedbackKey); err == nil {
		var p persistedFeedback
		if jsonErr := json.Unmarshal(data, &p); jsonErr != nil {
			s.logger.Error("discarding corrupt feedback buffer", slog.Any("error", jsonErr))
		} else {
			s.feedback = p.Feedback
		}
	} else if !errors.Is(err, kvstore.ErrNotFound) {
		s.logger.Error("failed to load feedback buffer", slog.Any("error", err))
	}

	s.logger.Info("learning store loaded",
		slog.Bool("hasModel", s.model != nil),
		slog.Int("feedbackItems", len(s.feedback)),
	)
}

// AddFeedback appends one feedback item, persists the buffer, and retrains
// synchronously once the buffer reaches the retrain threshold.
func (s *Store) AddFeedback(fb Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fb.Timestamp.IsZero() {
		fb.Timestamp = s.now()
	}

	s.feedback = append(s.feedback, fb)
	if len(s.feedback) > maxFeedbackBuffer {
		s.feedback = s.feedback[len(s.feedback)-maxFeedbackBuffer:]
	}

	if err := s.persistFeedback(); err != nil {
		return err
	}

	if len(s.feedback) >= minRetrainFeedback {
		return s.retrainLocked()
	}
	return nil
}

// ForceRetrain retrains immediately when feedback exists; no-op otherwise.
func (s *Store) ForceRetrain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.feedback) == 0 {
		s.logger.Debug("force retrain skipped: no feedback")
		return nil
	}
	return s.retrainLocked()
}

// ClearLearningData wipes the model and feedback buffer, in memory and in
// the persistent store.
func (s *Store) ClearLearningData() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.model = nil
	s.feedback = nil

	if err := s.kv.Delete(modelKey); err != nil {
		return fmt.Errorf("failed to clear model: %w", err)
	}
	if err := s.kv.Delete(feedbackKey); err != nil {
		return fmt.Errorf("failed to clear feedback: %w", err)
	}

	s.logger.Info("learning data cleared")
	return nil
}

// Stats returns a read-only learning summary.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{TotalFeedback: len(s.feedback)}
	for _, fb := range s.feedback {
		if fb.UserCorrection.Action == ActionAccept {
			stats.Accepts++
		} else {
			stats.Corrections++
		}
	}
	if s.model != nil {
		stats.ModelVersion = s.model.Version
		stats.Performance = s.model.Performance
	}
	return stats
}

// DebugState dumps the current model and buffer sizes for diagnostics.
func (s *Store) DebugState() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := map[string]any{
		"feedback_items": len(s.feedback),
		"has_model":      s.model != nil,
	}
	if s.model != nil {
		types := make(map[string]int, len(s.model.Patterns))
		for name, tp := range s.model.Patterns {
			types[name] = len(tp.Patterns)
		}
		state["model_version"] = s.model.Version
		state["pattern_counts"] = types
		state["training_date"] = s.model.TrainingDate
	}
	return state
}

// ModelVersion returns the current model version, or "" when untrained.
func (s *Store) ModelVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.model == nil {
		return ""
	}
	return s.model.Version
}

func (s *Store) persistFeedback() error {
	data, err := json.Marshal(persistedFeedback{
		SchemaVersion: schemaVersion,
		Feedback:      s.feedback,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize feedback: %w", err)
	}
	if err := s.kv.Set(feedbackKey, data); err != nil {
		return fmt.Errorf("failed to persist feedback: %w", err)
	}
	return nil
}

func (s *Store) persistModel() error {
	data, err := json.Marshal(s.model)
	if err != nil {
		return fmt.Errorf("failed to serialize model: %w", err)
	}
	if err := s.kv.Set(modelKey, data); err != nil {
		return fmt.Errorf("failed to persist model: %w", err)
	}
	return nil
}
