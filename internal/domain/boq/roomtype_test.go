package boq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoomTypeName(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		// Domain patterns.
		{"MDP Cabin", "MDP Cabin"},
		{"Partner Cabin East Wing", "MDP Cabin"},
		{"CO Room", "CO Room"},
		{"Multi-Purpose Hall", "Multipurpose Room"},
		{"Cafe / Work Lounge", "Cafe Work Lounge"},
		{"Town Hall", "Town Hall"},
		{"BGM Zone", "BGM Zone"},
		{"Reception Area", "Reception"},
		{"IT Help Desk", "IT Help Desk"},
		{"Case Team Room", "Case Team Room"},

		// Occupancy patterns.
		{"24 Person Team Room", "24pax Meeting Room"},
		{"8 Person Room", "8pax Meeting Room"},
		{"12P Meeting Room", "12pax Meeting Room"},
		{"6 Person Meeting", "6pax Meeting Room"},
		{"10P", "10pax Meeting Room"},
		{"4 Team Room", "4pax Meeting Room"},
		{"16pax", "16pax Meeting Room"},

		// Variant suffix.
		{"MDP Cabin Type 2", "MDP Cabin - Type 2"},
		{"8 Person Room Variant 3", "8pax Meeting Room - Variant 3"},

		// Generic fallbacks.
		{"Large Meeting Area", "Meeting Room"},
		{"Main Conference", "Conference Room"},
		{"Focus Pod", "Focus Room"},
		{"Huddle Space", "Huddle Room"},
		{"Training Centre", "Training Room"},

		// Verbatim passthrough.
		{"Server Closet", "Server Closet"},
		{"  Server Closet  ", "Server Closet"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeRoomTypeName(tc.label), "label=%q", tc.label)
	}
}

func TestNormalizeRoomTypeNameIdempotent(t *testing.T) {
	labels := []string{
		"24 Person Team Room",
		"MDP Cabin Type 2",
		"Main Conference",
		"Cafe / Work Lounge",
		"16pax",
		"Server Closet",
	}
	for _, label := range labels {
		once := NormalizeRoomTypeName(label)
		assert.Equal(t, once, NormalizeRoomTypeName(once), "label=%q", label)
	}
}

func TestPaxFromName(t *testing.T) {
	assert.Equal(t, 24, PaxFromName("24pax Meeting Room"))
	assert.Equal(t, 6, PaxFromName("6pax Meeting Room - Type 2"))
	assert.Zero(t, PaxFromName("MDP Cabin"))
	assert.Zero(t, PaxFromName(""))
}

func TestIsCanonicalRoomType(t *testing.T) {
	assert.True(t, IsCanonicalRoomType("6pax Meeting Room"))
	assert.True(t, IsCanonicalRoomType("MDP Cabin - Type 2"))
	assert.True(t, IsCanonicalRoomType("Town Hall"))

	assert.False(t, IsCanonicalRoomType("Confrence Rm"))
	assert.False(t, IsCanonicalRoomType("Boardroom East"))
	assert.False(t, IsCanonicalRoomType(""))
}

func TestSuggestRoomTypes(t *testing.T) {
	t.Run("close misspelling suggests the canonical name", func(t *testing.T) {
		got := SuggestRoomTypes("Meting Rom", 3)
		assert.Contains(t, got, "Meeting Room")
		assert.LessOrEqual(t, len(got), 3)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, SuggestRoomTypes("zzzzqqqq", 3))
	})
}
