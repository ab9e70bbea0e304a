package boq

import (
	"strings"
)

// Cost thresholds for tier dispatch. Fixed for behavioral compatibility
// with existing estimates.
const (
	premiumCostThreshold     = 15_000.0
	premiumFeatureThreshold  = 25_000.0
	executiveCostThreshold   = 30_000.0
	executiveAbsoluteCeiling = 50_000.0
)

// featureSignals are the boolean signals scanned out of a room's component
// descriptions.
type featureSignals struct {
	highEnd       bool
	midRange      bool
	hasTV         bool
	hasMonitor    bool
	cameraCount   int
	hasSwitcher   bool
	hasCodec      bool
	hasDirectConn bool
	hasVCCam      bool
	highEndAudio  bool
}

var (
	highEndTerms  = []string{"4k", "interactive", "touch", "ptz", "beamforming", "dante", "crestron", "extron", "q-sys", "qsc core"}
	midRangeTerms = []string{"hdmi", "logitech", "yealink", "poly", "jabra"}
	tvTerms       = []string{"tv", "television"}
	monitorTerms  = []string{"monitor", "display"}
	cameraTerms   = []string{"camera", "cam "}
	switcherTerms = []string{"switcher", "matrix", "presentation switch"}
	codecTerms    = []string{"codec", "rally bar", "room kit", "roomkit", "meetup"}
	directTerms   = []string{"direct connect", "byod", "pc connection", "laptop connect", "usb passthrough"}
	vcCamTerms    = []string{"vc camera", "video conferencing camera", "conference camera", "webcam"}
	hiAudioTerms  = []string{"dsp", "audio processor", "dante", "beamforming mic", "tesira", "biamp"}
)

func scanSignals(components []Component) featureSignals {
	var sig featureSignals
	for _, c := range components {
		desc := strings.ToLower(c.Description)

		if containsAny(desc, highEndTerms) {
			sig.highEnd = true
		}
		if containsAny(desc, midRangeTerms) {
			sig.midRange = true
		}
		if containsAny(desc, tvTerms) {
			sig.hasTV = true
		}
		if containsAny(desc, monitorTerms) {
			sig.hasMonitor = true
		}
		if containsAny(desc, cameraTerms) {
			sig.cameraCount++
		}
		if containsAny(desc, switcherTerms) {
			sig.hasSwitcher = true
		}
		if containsAny(desc, codecTerms) {
			sig.hasCodec = true
		}
		if containsAny(desc, directTerms) {
			sig.hasDirectConn = true
		}
		if containsAny(desc, vcCamTerms) {
			sig.hasVCCam = true
		}
		if containsAny(desc, hiAudioTerms) {
			sig.highEndAudio = true
		}
	}
	return sig
}

// DetermineSubType infers a qualitative AV tier for a room from its
// component feature signals and total cost. Pure and total; unknown inputs
// fall through to the cost-based default rules.
func DetermineSubType(roomType string, totalCost float64, components []Component) SubType {
	sig := scanSignals(components)
	name := strings.ToLower(roomType)

	switch {
	case strings.Contains(name, "mdp") || strings.Contains(name, "partner"):
		switch {
		case sig.hasTV && sig.hasMonitor && sig.cameraCount >= 2 && sig.hasSwitcher:
			return SubTypeExecutive
		case sig.hasTV && sig.hasMonitor && sig.cameraCount >= 2:
			return SubTypePremium
		case sig.hasMonitor && sig.cameraCount >= 1:
			return SubTypeStandard
		}
		// No signal pattern matched; use the default rules below.

	case strings.Contains(name, "pax") || strings.Contains(name, "meeting room"):
		switch {
		case sig.hasCodec && !sig.hasDirectConn:
			return SubTypeCodecBased
		case sig.hasVCCam && sig.hasDirectConn && !sig.hasCodec:
			return SubTypeDirectConnect
		case sig.highEndAudio || (sig.highEnd && totalCost > executiveCostThreshold):
			return SubTypeExecutive
		case sig.midRange || totalCost > premiumCostThreshold:
			return SubTypePremium
		default:
			return SubTypeStandard
		}

	case strings.Contains(name, "co room") ||
		strings.Contains(name, "town hall") ||
		strings.Contains(name, "multipurpose") ||
		strings.Contains(name, "social") ||
		strings.Contains(name, "cafe"):
		return SubTypeExecutive

	// A very expensive or high-end fit-out outranks the name-based
	// Premium rule below.
	case totalCost > executiveAbsoluteCeiling || sig.highEnd:
		return SubTypeExecutive

	case strings.Contains(name, "conference") ||
		strings.Contains(name, "training") ||
		strings.Contains(name, "case team") ||
		strings.Contains(name, "workstation"):
		return SubTypePremium
	}

	switch {
	case totalCost > executiveAbsoluteCeiling || sig.highEnd:
		return SubTypeExecutive
	case totalCost > premiumFeatureThreshold || sig.midRange:
		return SubTypePremium
	default:
		return SubTypeStandard
	}
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
