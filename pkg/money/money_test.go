package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 2500.0, LineTotal(5, 500))
	assert.Equal(t, 0.0, LineTotal(0, 123.45))

	// Float-hostile values stay exact through decimal arithmetic.
	assert.Equal(t, 0.3, LineTotal(3, 0.1))
}

func TestSum(t *testing.T) {
	assert.Equal(t, 0.0, Sum())
	assert.Equal(t, 0.3, Sum(0.1, 0.1, 0.1))
	assert.Equal(t, 99.99, Sum(33.33, 33.33, 33.33))
}

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("USD"))
	assert.True(t, ValidCurrency("INR"))
	assert.False(t, ValidCurrency("ZZZ"))
}
