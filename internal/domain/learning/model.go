// Package learning implements the adaptive categorization engine: a
// feature-extraction and similarity-scoring classifier that predicts a
// {type, category} for a component description and improves its pattern
// table from user feedback.
package learning

import "time"

// Action is what the user did with a suggestion.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionEdit   Action = "edit"
)

// Uncategorized is the fallback type/category when no pattern clears the
// confidence threshold.
const Uncategorized = "Uncategorized"

// Suggestion is the engine's original prediction attached to a feedback
// item.
type Suggestion struct {
	Type       string  `json:"type"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Correction is the user's answer to a suggestion.
type Correction struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Action   Action `json:"action"`
}

// ComponentData is the raw component text the feedback refers to.
type ComponentData struct {
	Description string `json:"description"`
	Make        string `json:"make"`
	Model       string `json:"model"`
}

// Feedback is one append-only user decision on a suggestion.
type Feedback struct {
	ComponentID        string        `json:"component_id"`
	OriginalSuggestion Suggestion    `json:"original_suggestion"`
	UserCorrection     Correction    `json:"user_correction"`
	ComponentData      ComponentData `json:"component_data"`
	Region             string        `json:"region,omitempty"`
	Timestamp          time.Time     `json:"timestamp"`
}

// TypePatterns is the learned state for one component type.
type TypePatterns struct {
	Patterns            []string            `json:"patterns"`
	Examples            []string            `json:"examples"`
	SubCategories       map[string][]string `json:"sub_categories"`
	RegionalPreferences map[string][]string `json:"regional_preferences"`
	Confidence          float64             `json:"confidence"`
	TrainingData        int                 `json:"training_data"`
}

// Performance is the model quality snapshot computed at retrain time from
// the full feedback buffer.
type Performance struct {
	TotalComponents       int                `json:"total_components"`
	CategorizedComponents int                `json:"categorized_components"`
	Accuracy              float64            `json:"accuracy"`
	RegionalAccuracy      map[string]float64 `json:"regional_accuracy"`
}

// TrainedModel is the engine's long-lived state. It is rebuilt wholesale on
// every retrain, never mutated field-by-field after being read.
type TrainedModel struct {
	SchemaVersion int                      `json:"schema_version"`
	Version       string                   `json:"version"`
	Patterns      map[string]*TypePatterns `json:"patterns"`
	Performance   Performance              `json:"performance"`
	TrainingDate  time.Time                `json:"training_date"`
}

// RegionalOptimization is a brand hint attached to a prediction when the
// winning type has a recorded preference for the caller's region.
type RegionalOptimization struct {
	SuggestedBrand string `json:"suggested_brand"`
	Region         string `json:"region"`
	Reason         string `json:"reason"`
}

// Prediction is the engine's answer for one component.
type Prediction struct {
	Type                 string                `json:"type"`
	Category             string                `json:"category"`
	Confidence           float64               `json:"confidence"`
	Reasoning            []string              `json:"reasoning"`
	RegionalOptimization *RegionalOptimization `json:"regional_optimization,omitempty"`
}

// Stats is the read-only learning summary for the admin surface.
type Stats struct {
	TotalFeedback int         `json:"total_feedback"`
	Accepts       int         `json:"accepts"`
	Corrections   int         `json:"corrections"`
	ModelVersion  string      `json:"model_version"`
	Performance   Performance `json:"performance"`
}
