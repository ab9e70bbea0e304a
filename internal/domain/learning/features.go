package learning

import (
	"regexp"
	"strings"
)

// technicalVocabulary are domain tokens that count as features whenever
// they appear anywhere in the concatenated component text, even inside
// larger words (connectivity standards, resolution tiers, form factors,
// category nouns).
var technicalVocabulary = []string{
	"hdmi", "usb", "usb-c", "sdi", "xlr", "dante", "poe", "hdbaset",
	"4k", "1080p", "uhd", "fhd",
	"display", "monitor", "projector", "screen", "camera", "codec",
	"microphone", "speaker", "amplifier", "mixer", "switcher", "matrix",
	"mount", "bracket", "rack", "touchpanel", "soundbar", "dsp",
	"wireless", "bluetooth", "ptz",
}

var digitRuns = regexp.MustCompile(`\d+`)

// ExtractFeatures derives the feature set for a component: whitespace
// tokens longer than two characters, all digit runs, the make, and any
// technical-vocabulary term appearing as a substring. Total; empty inputs
// yield an empty set.
func ExtractFeatures(description, brand, model string) map[string]struct{} {
	text := strings.ToLower(strings.TrimSpace(description + " " + brand + " " + model))
	features := make(map[string]struct{})
	if text == "" {
		return features
	}

	for _, token := range strings.Fields(text) {
		if len(token) > 2 {
			features[token] = struct{}{}
		}
	}

	for _, run := range digitRuns.FindAllString(text, -1) {
		features[run] = struct{}{}
	}

	if m := strings.ToLower(strings.TrimSpace(brand)); m != "" {
		features[m] = struct{}{}
	}

	for _, term := range technicalVocabulary {
		if strings.Contains(text, term) {
			features[term] = struct{}{}
		}
	}

	return features
}

// Jaccard returns |A ∩ B| / |A ∪ B|, or 0 when either set is empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for f := range a {
		if _, ok := b[f]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// featureSet builds a set from a pattern slice.
func featureSet(patterns []string) map[string]struct{} {
	set := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		set[p] = struct{}{}
	}
	return set
}
