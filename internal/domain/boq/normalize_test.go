package boq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  unit   cost ", "UNIT COST"},
		{"Description", "DESCRIPTION"},
		{"Make\t\tModel", "MAKE MODEL"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeHeader(tc.raw), "raw=%q", tc.raw)
	}
}

func TestCanonicalHeader(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Manufacturer", "MAKE"},
		{"brand", "MAKE"},
		{"Model No", "MODEL"},
		{"Part Number", "MODEL"},
		{"Item Description", "DESCRIPTION"},
		{"Quantity", "QTY"},
		{"Nos", "QTY"},
		{"Unit Price", "UNIT_COST"},
		{"unit  rate", "UNIT_COST"},
		{"Total Amount", "TOTAL"},
		{"Remarks", "REMARKS"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalHeader(tc.raw), "raw=%q", tc.raw)
	}
}

func TestCleanNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"₹1,23,456.78", 123456.78},
		{"$1,234.56", 1234.56},
		{"1234", 1234},
		{" 12.5 ", 12.5},
		{"-500", -500},
		{"INR 2,000", 2000},
		{"", 0},
		{"n/a", 0},
		{"-", 0},
		{".", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, CleanNumber(tc.raw), 1e-9, "raw=%q", tc.raw)
	}
}
