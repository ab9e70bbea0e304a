package boq

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// roomTypeRule maps a label pattern to a canonical base name. Rules are
// evaluated in order; the first match wins. Rules with paxGroup > 0 extract
// an occupancy count from that capture group and render the base name with
// it.
type roomTypeRule struct {
	pattern  *regexp.Regexp
	baseName string
	paxGroup int
}

// variantToken matches an optional "Type 2" / "Variant 3" / "Version 1"
// suffix that survives canonicalization as " - <token>".
var variantToken = regexp.MustCompile(`(?i)\b((?:type|variant|version)\s*\d+)\b`)

// roomTypeRules is the precedence-ordered canonicalization table. Domain
// patterns come first, numeric occupancy patterns next (most specific
// first), generic fallbacks last.
var roomTypeRules = []roomTypeRule{
	// Domain patterns.
	{regexp.MustCompile(`(?i)\b(mdp|partner)\b.*\bcabin\b|\bcabin\b.*\b(mdp|partner)\b`), "MDP Cabin", 0},
	{regexp.MustCompile(`(?i)\bco[\s-]?room\b`), "CO Room", 0},
	{regexp.MustCompile(`(?i)multi[\s-]?purpose`), "Multipurpose Room", 0},
	{regexp.MustCompile(`(?i)\bcafe\b|work[\s-]?lounge`), "Cafe Work Lounge", 0},
	{regexp.MustCompile(`(?i)town[\s-]?hall`), "Town Hall", 0},
	{regexp.MustCompile(`(?i)restaurant`), "Restaurant", 0},
	{regexp.MustCompile(`(?i)\bbgm\b|background[\s-]?music`), "BGM Zone", 0},
	{regexp.MustCompile(`(?i)reception|barista`), "Reception", 0},
	{regexp.MustCompile(`(?i)work[\s-]?station`), "Workstation", 0},
	{regexp.MustCompile(`(?i)it[\s-]?help[\s-]?desk`), "IT Help Desk", 0},
	{regexp.MustCompile(`(?i)recreation`), "Recreation Room", 0},
	{regexp.MustCompile(`(?i)case[\s-]?team[\s-]?room`), "Case Team Room", 0},

	// Numeric occupancy patterns, priority order.
	{regexp.MustCompile(`(?i)\b(\d+)[\s-]?person[\s-]?team[\s-]?room\b`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)[\s-]?person[\s-]?room\b`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)\s*p\b[\s-]*meeting[\s-]?room`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)[\s-]?person[\s-]?meeting\b`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)\s*p\b(?:[\s-]?room)?`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)[\s-]?team[\s-]?room\b`), "%dpax Meeting Room", 1},
	{regexp.MustCompile(`(?i)\b(\d+)[\s-]?pax\b`), "%dpax Meeting Room", 1},

	// Generic fallbacks.
	{regexp.MustCompile(`(?i)meeting`), "Meeting Room", 0},
	{regexp.MustCompile(`(?i)conference`), "Conference Room", 0},
	{regexp.MustCompile(`(?i)focus`), "Focus Room", 0},
	{regexp.MustCompile(`(?i)huddle`), "Huddle Room", 0},
	{regexp.MustCompile(`(?i)training`), "Training Room", 0},
}

// NormalizeRoomTypeName maps a free-form room label to a canonical
// room-type name, preserving an optional variant suffix. Unmatched labels
// are returned trimmed but otherwise verbatim; the function never fails.
func NormalizeRoomTypeName(label string) string {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return ""
	}

	variant := ""
	probe := trimmed
	if m := variantToken.FindStringSubmatch(probe); m != nil {
		variant = " - " + normalizeVariant(m[1])
		probe = strings.TrimSpace(variantToken.ReplaceAllString(probe, ""))
	}

	for _, rule := range roomTypeRules {
		m := rule.pattern.FindStringSubmatch(probe)
		if m == nil {
			continue
		}
		base := rule.baseName
		if rule.paxGroup > 0 {
			pax := firstNonEmptyGroup(m, rule.paxGroup)
			n, err := strconv.Atoi(pax)
			if err != nil {
				continue
			}
			base = fmt.Sprintf(rule.baseName, n)
		}
		return base + variant
	}

	return trimmed
}

// PaxFromName extracts the occupancy count from a canonical "{N}pax" name.
// Returns 0 when the name carries no occupancy.
func PaxFromName(canonical string) int {
	m := regexp.MustCompile(`(?i)^(\d+)pax\b`).FindStringSubmatch(canonical)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// canonicalBaseNames are the fixed base names the normalizer can produce,
// used for fuzzy suggestions when a label falls through verbatim.
var canonicalBaseNames = []string{
	"MDP Cabin", "CO Room", "Multipurpose Room", "Cafe Work Lounge",
	"Town Hall", "Restaurant", "BGM Zone", "Reception", "Workstation",
	"IT Help Desk", "Recreation Room", "Case Team Room", "Meeting Room",
	"Conference Room", "Focus Room", "Huddle Room", "Training Room",
}

// IsCanonicalRoomType reports whether name is one the normalizer itself
// produces: an "{N}pax" occupancy name or a fixed base name, optionally
// carrying a variant suffix.
func IsCanonicalRoomType(name string) bool {
	base := name
	if i := strings.Index(base, " - "); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if PaxFromName(base) > 0 {
		return true
	}
	for _, canonical := range canonicalBaseNames {
		if strings.EqualFold(base, canonical) {
			return true
		}
	}
	return false
}

// SuggestRoomTypes ranks canonical base names by fuzzy similarity to an
// unrecognized label. Suggestions only; never applied automatically.
func SuggestRoomTypes(label string, limit int) []string {
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(label), canonicalBaseNames)
	sort.Sort(ranks)

	out := make([]string, 0, limit)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}

func normalizeVariant(token string) string {
	fields := strings.Fields(strings.TrimSpace(token))
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + strings.ToLower(f[1:])
	}
	return strings.Join(fields, " ")
}

func firstNonEmptyGroup(m []string, from int) string {
	for i := from; i < len(m); i++ {
		if m[i] != "" {
			return m[i]
		}
	}
	return ""
}
