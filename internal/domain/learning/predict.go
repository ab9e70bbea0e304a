package learning

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// confidenceThreshold is the minimum combined confidence a candidate
	// needs before the engine commits to a suggestion.
	confidenceThreshold = 0.6

	// typeSimilarityFloor gates the second-level category comparison; types
	// scoring at or below it are not worth descending into.
	typeSimilarityFloor = 0.1

	// trainingBoostCap bounds the confidence bonus for well-represented
	// types.
	trainingBoostCap = 0.2
)

// Predict scores the component text against every learned type and returns
// the best candidate that clears the confidence threshold, or Uncategorized
// with confidence 0. Pure with respect to the current model snapshot; the
// region parameter only adds a brand hint, never changes the winner.
func (s *Store) Predict(description, componentMake, model, region string) Prediction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.model == nil {
		return Prediction{
			Type:       Uncategorized,
			Category:   Uncategorized,
			Confidence: 0,
			Reasoning:  []string{"No trained model available"},
		}
	}

	features := ExtractFeatures(description, componentMake, model)

	var candidates []Prediction
	for typeName, tp := range s.model.Patterns {
		typeSim := Jaccard(features, featureSet(tp.Patterns))
		if typeSim <= typeSimilarityFloor {
			continue
		}

		boost := float64(tp.TrainingData) / 20
		if boost > trainingBoostCap {
			boost = trainingBoostCap
		}

		for category, patterns := range tp.SubCategories {
			catSim := Jaccard(features, featureSet(patterns))
			confidence := (typeSim+catSim)/2 + boost
			if confidence > 1 {
				confidence = 1
			}
			if confidence <= confidenceThreshold {
				continue
			}
			candidates = append(candidates, Prediction{
				Type:       typeName,
				Category:   category,
				Confidence: confidence,
				Reasoning: []string{
					fmt.Sprintf("type similarity %.2f against %q", typeSim, typeName),
					fmt.Sprintf("category similarity %.2f against %q", catSim, category),
					fmt.Sprintf("trained on %d examples", tp.TrainingData),
				},
			})
		}
	}

	if len(candidates) == 0 {
		return Prediction{
			Type:       Uncategorized,
			Category:   Uncategorized,
			Confidence: 0,
			Reasoning:  []string{"No patterns matched above confidence threshold"},
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	best := candidates[0]

	if region != "" {
		best.RegionalOptimization = s.regionalHint(best.Type, componentMake, region)
	}
	return best
}

// regionalHint returns a brand suggestion when the winning type has a
// recorded preference for the region that differs from the component's make.
// Caller holds at least a read lock.
func (s *Store) regionalHint(typeName, componentMake, region string) *RegionalOptimization {
	tp, ok := s.model.Patterns[typeName]
	if !ok {
		return nil
	}
	preferred := tp.RegionalPreferences[region]
	if len(preferred) == 0 {
		return nil
	}

	current := strings.ToLower(strings.TrimSpace(componentMake))
	for _, brand := range preferred {
		if strings.ToLower(brand) == current {
			return nil
		}
	}

	return &RegionalOptimization{
		SuggestedBrand: preferred[0],
		Region:         region,
		Reason:         fmt.Sprintf("%s is commonly used for %s in %s", preferred[0], typeName, region),
	}
}
