package boq

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// labourKeywords marks line items that are services rather than hardware.
// Checked before the miscellaneous list, so a description matching both is
// labour.
var labourKeywords = []string{
	"installation", "commissioning", "testing", "programming", "training",
	"documentation", "engineering", "setup", "integration",
	"project management", "handover", "warranty", "cable termination",
	"mounting labour", "painting charges", "labour", "labor charges",
	"site survey", "as-built", "user orientation",
}

// miscKeywords marks consumables, logistics, and lump-sum surcharges.
var miscKeywords = []string{
	"accessories", "tags", "velcro", "freight", "shipping", "insurance",
	"permits", "taxes", "overhead", "contingency", "airmag", "aircharge",
	"consumables", "sundries", "packing", "delivery charges", "misc",
}

// The keyword tables are compiled once into Aho-Corasick matchers so every
// row costs a single pass regardless of table size.
var (
	labourMatcher = ahocorasick.NewStringMatcher(labourKeywords)
	miscMatcher   = ahocorasick.NewStringMatcher(miscKeywords)
)

// CategorizeCostItem classifies a line-item description into labour,
// miscellaneous, or hardware (the default). Total; never fails.
func CategorizeCostItem(description string) CostCategory {
	lower := strings.ToLower(description)
	if lower == "" {
		return CostHardware
	}

	if labourMatcher.Contains([]byte(lower)) {
		return CostLabour
	}
	if miscMatcher.Contains([]byte(lower)) {
		return CostMiscellaneous
	}
	return CostHardware
}

// IsNonHardware reports whether a description belongs in the labour or
// miscellaneous buckets. Used by the multi-room parser to filter component
// lists before recomputing room totals.
func IsNonHardware(description string) bool {
	return CategorizeCostItem(description) != CostHardware
}
