package boq

import (
	"regexp"
	"strconv"
	"strings"
)

// headerAliases converges vendor-specific header spellings to canonical
// field names. Applied after NormalizeHeader.
var headerAliases = map[string]string{
	"MANUFACTURER":     "MAKE",
	"BRAND":            "MAKE",
	"OEM":              "MAKE",
	"MODEL NO":         "MODEL",
	"MODEL NUMBER":     "MODEL",
	"PART NO":          "MODEL",
	"PART NUMBER":      "MODEL",
	"ITEM DESCRIPTION": "DESCRIPTION",
	"PARTICULARS":      "DESCRIPTION",
	"QUANTITY":         "QTY",
	"NOS":              "QTY",
	"UNIT PRICE":       "UNIT_COST",
	"UNIT COST":        "UNIT_COST",
	"UNIT RATE":        "UNIT_COST",
	"RATE":             "UNIT_COST",
	"PRICE":            "UNIT_COST",
	"TOTAL PRICE":      "TOTAL",
	"TOTAL COST":       "TOTAL",
	"TOTAL AMOUNT":     "TOTAL",
	"AMOUNT":           "TOTAL",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeHeader canonicalizes a raw header string: trims, upper-cases,
// and collapses internal whitespace. Total; empty input yields "".
func NormalizeHeader(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return whitespaceRun.ReplaceAllString(strings.ToUpper(trimmed), " ")
}

// CanonicalHeader normalizes raw and maps it through the alias table.
func CanonicalHeader(raw string) string {
	h := NormalizeHeader(raw)
	if alias, ok := headerAliases[h]; ok {
		return alias
	}
	return h
}

// nonNumeric matches everything except digits, decimal point, and minus,
// so stripping it removes currency symbols and digit-group separators from
// both western ("$1,234.56") and Indian ("₹1,23,456.78") grouping.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// CleanNumber strips currency symbols and separators and parses the rest as
// a float. Returns 0 on unparseable input; never fails.
func CleanNumber(raw string) float64 {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0
	}

	// A minus only counts in the leading position; strip stray dashes.
	neg := strings.HasPrefix(cleaned, "-")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	if cleaned == "" || cleaned == "." {
		return 0
	}

	// Multiple dots mean the dots were grouping separators (e.g. 1.234.567);
	// keep the last as the decimal point.
	if strings.Count(cleaned, ".") > 1 {
		last := strings.LastIndex(cleaned, ".")
		cleaned = strings.ReplaceAll(cleaned[:last], ".", "") + cleaned[last:]
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	if neg {
		v = -v
	}
	return v
}
