package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$2.99", FormatCents(299))
	assert.Equal(t, "$33.97", FormatCents(3397))
	assert.Equal(t, "$100.05", FormatCents(10005))
	assert.Equal(t, "-$1.50", FormatCents(-150))
}

func TestLineTotalCents(t *testing.T) {
	line := CartLine{Item: MenuItem{ID: "m1", PriceCents: 1299}, Quantity: 2}
	assert.Equal(t, int64(2598), line.LineTotalCents())
}
