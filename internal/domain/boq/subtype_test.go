package boq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func components(descriptions ...string) []Component {
	out := make([]Component, len(descriptions))
	for i, d := range descriptions {
		out[i] = Component{Description: d}
	}
	return out
}

func TestDetermineSubTypeMeetingRooms(t *testing.T) {
	t.Run("codec without direct connect", func(t *testing.T) {
		got := DetermineSubType("6pax Meeting Room", 8000,
			components("Rally Bar video codec", "Ceiling microphone"))
		assert.Equal(t, SubTypeCodecBased, got)
	})

	t.Run("vc camera with direct connect and no codec", func(t *testing.T) {
		got := DetermineSubType("8pax Meeting Room", 6000,
			components("Conference camera", "BYOD direct connect plate"))
		assert.Equal(t, SubTypeDirectConnect, got)
	})

	t.Run("high-end audio goes executive", func(t *testing.T) {
		got := DetermineSubType("12pax Meeting Room", 10000,
			components("Biamp Tesira DSP"))
		assert.Equal(t, SubTypeExecutive, got)
	})

	t.Run("high-end gear above cost line goes executive", func(t *testing.T) {
		got := DetermineSubType("16pax Meeting Room", 35000,
			components("4K PTZ camera"))
		assert.Equal(t, SubTypeExecutive, got)
	})

	t.Run("mid-range gear goes premium", func(t *testing.T) {
		got := DetermineSubType("6pax Meeting Room", 5000,
			components("Logitech tap controller"))
		assert.Equal(t, SubTypePremium, got)
	})

	t.Run("plain room defaults to standard", func(t *testing.T) {
		got := DetermineSubType("4pax Meeting Room", 3000,
			components("Wall speaker"))
		assert.Equal(t, SubTypeStandard, got)
	})
}

func TestDetermineSubTypeMDPCabin(t *testing.T) {
	t.Run("dual camera with switcher is executive", func(t *testing.T) {
		got := DetermineSubType("MDP Cabin", 20000, components(
			"85 inch TV panel", "Confidence monitor",
			"PTZ camera front", "PTZ camera rear", "Matrix switcher 4x2",
		))
		assert.Equal(t, SubTypeExecutive, got)
	})

	t.Run("dual camera without switcher is premium", func(t *testing.T) {
		got := DetermineSubType("MDP Cabin - Type 2", 18000, components(
			"85 inch TV panel", "Confidence monitor",
			"PTZ camera front", "PTZ camera rear",
		))
		assert.Equal(t, SubTypePremium, got)
	})

	t.Run("single camera setup is standard", func(t *testing.T) {
		got := DetermineSubType("MDP Cabin", 8000, components(
			"Desktop monitor", "Webcam camera",
		))
		assert.Equal(t, SubTypeStandard, got)
	})
}

func TestDetermineSubTypeFixedCategories(t *testing.T) {
	assert.Equal(t, SubTypeExecutive, DetermineSubType("Town Hall", 1000, nil))
	assert.Equal(t, SubTypeExecutive, DetermineSubType("CO Room", 1000, nil))
	assert.Equal(t, SubTypeExecutive, DetermineSubType("Multipurpose Room", 1000, nil))
	assert.Equal(t, SubTypePremium, DetermineSubType("Training Room", 1000, nil))
	assert.Equal(t, SubTypePremium, DetermineSubType("Case Team Room", 1000, nil))
	assert.Equal(t, SubTypePremium, DetermineSubType("Conference Room", 1000, nil))
}

func TestDetermineSubTypeExecutiveOutranksNamedPremium(t *testing.T) {
	assert.Equal(t, SubTypeExecutive, DetermineSubType("Conference Room", 60000, nil))
	assert.Equal(t, SubTypeExecutive, DetermineSubType("Training Room", 10000,
		components("Crestron 4K presentation system")))

	// Below the cost ceiling and without high-end gear the name rule holds.
	assert.Equal(t, SubTypePremium, DetermineSubType("Conference Room", 40000, nil))
}

func TestDetermineSubTypeCostFallback(t *testing.T) {
	assert.Equal(t, SubTypeExecutive, DetermineSubType("Server Closet", 60000, nil))
	assert.Equal(t, SubTypePremium, DetermineSubType("Server Closet", 26000, nil))
	assert.Equal(t, SubTypeStandard, DetermineSubType("Server Closet", 1000, nil))
	assert.Equal(t, SubTypeStandard, DetermineSubType("", 0, nil))
}
