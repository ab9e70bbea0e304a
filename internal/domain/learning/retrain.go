package learning

import (
	"fmt"
	"log/slog"
	"strings"
)

// maxPatternsPerType truncates each type's pattern list after merging;
// earliest-learned patterns survive.
const maxPatternsPerType = 50

// retrainLocked rebuilds the pattern table from the entire feedback buffer,
// merges it with the prior model, and replaces the model wholesale. Caller
// holds the write lock.
func (s *Store) retrainLocked() error {
	fresh := buildPatterns(s.feedback)
	merged := mergePatterns(fresh, s.model)

	for _, tp := range merged {
		if len(tp.Patterns) > maxPatternsPerType {
			tp.Patterns = tp.Patterns[:maxPatternsPerType]
		}
	}

	version := "1.0.0"
	if s.model != nil && s.model.Version != "" {
		version = fmt.Sprintf("%s.%d", s.model.Version, s.now().Unix())
	}

	s.model = &TrainedModel{
		SchemaVersion: schemaVersion,
		Version:       version,
		Patterns:      merged,
		Performance:   computePerformance(s.feedback),
		TrainingDate:  s.now(),
	}

	if err := s.persistModel(); err != nil {
		return err
	}

	s.logger.Info("model retrained",
		slog.String("version", version),
		slog.Int("types", len(merged)),
		slog.Int("feedbackItems", len(s.feedback)),
	)
	return nil
}

// buildPatterns derives a fresh pattern table from the whole buffer.
// Corrections are processed before accepts; both write into the same keyed
// structure, so ordering only affects logging, never the result.
func buildPatterns(feedback []Feedback) map[string]*TypePatterns {
	patterns := make(map[string]*TypePatterns)

	var corrections, accepts []Feedback
	for _, fb := range feedback {
		if fb.UserCorrection.Action == ActionAccept {
			accepts = append(accepts, fb)
		} else {
			corrections = append(corrections, fb)
		}
	}

	for _, fb := range append(corrections, accepts...) {
		accumulate(patterns, fb)
	}
	return patterns
}

// accumulate folds one feedback item into the pattern table under its
// corrected type.
func accumulate(patterns map[string]*TypePatterns, fb Feedback) {
	typeName := strings.TrimSpace(fb.UserCorrection.Type)
	if typeName == "" || typeName == Uncategorized {
		return
	}

	tp, ok := patterns[typeName]
	if !ok {
		tp = &TypePatterns{
			SubCategories:       make(map[string][]string),
			RegionalPreferences: make(map[string][]string),
		}
		patterns[typeName] = tp
	}

	features := ExtractFeatures(
		fb.ComponentData.Description,
		fb.ComponentData.Make,
		fb.ComponentData.Model,
	)
	for f := range features {
		tp.Patterns = appendUnique(tp.Patterns, f)
	}

	if category := strings.TrimSpace(fb.UserCorrection.Category); category != "" {
		for f := range features {
			tp.SubCategories[category] = appendUnique(tp.SubCategories[category], f)
		}
	}

	if brand := strings.TrimSpace(fb.ComponentData.Make); brand != "" {
		tp.Examples = appendUnique(tp.Examples, brand)
		if fb.Region != "" {
			tp.RegionalPreferences[fb.Region] = appendUnique(
				tp.RegionalPreferences[fb.Region], strings.ToLower(brand))
		}
	}

	tp.TrainingData++
}

// mergePatterns unions the fresh table with the prior model's, field by
// field. Types only present in the prior model are copied through unchanged.
func mergePatterns(fresh map[string]*TypePatterns, prior *TrainedModel) map[string]*TypePatterns {
	merged := make(map[string]*TypePatterns, len(fresh))
	for name, tp := range fresh {
		merged[name] = tp
	}
	if prior == nil {
		return merged
	}

	for name, old := range prior.Patterns {
		current, ok := merged[name]
		if !ok {
			merged[name] = old
			continue
		}

		for _, p := range old.Patterns {
			current.Patterns = appendUnique(current.Patterns, p)
		}
		for _, e := range old.Examples {
			current.Examples = appendUnique(current.Examples, e)
		}
		for category, patterns := range old.SubCategories {
			for _, p := range patterns {
				current.SubCategories[category] = appendUnique(current.SubCategories[category], p)
			}
		}
		for region, brands := range old.RegionalPreferences {
			for _, b := range brands {
				current.RegionalPreferences[region] = appendUnique(current.RegionalPreferences[region], b)
			}
		}
		current.TrainingData += old.TrainingData
	}
	return merged
}

// computePerformance derives the quality snapshot from the full buffer. An
// item counts as categorized when both corrected levels are set and neither
// is Uncategorized.
func computePerformance(feedback []Feedback) Performance {
	perf := Performance{
		TotalComponents:  len(feedback),
		RegionalAccuracy: make(map[string]float64),
	}

	regionTotal := make(map[string]int)
	regionCategorized := make(map[string]int)

	for _, fb := range feedback {
		categorized := isCategorized(fb.UserCorrection)
		if categorized {
			perf.CategorizedComponents++
		}
		if fb.Region != "" {
			regionTotal[fb.Region]++
			if categorized {
				regionCategorized[fb.Region]++
			}
		}
	}

	if perf.TotalComponents > 0 {
		perf.Accuracy = float64(perf.CategorizedComponents) / float64(perf.TotalComponents)
	}
	for region, total := range regionTotal {
		perf.RegionalAccuracy[region] = float64(regionCategorized[region]) / float64(total)
	}
	return perf
}

func isCategorized(c Correction) bool {
	return c.Type != "" && c.Type != Uncategorized &&
		c.Category != "" && c.Category != Uncategorized
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
