package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func fPtr(f float64) *float64 { return &f }

func TestFirstOf_PrecedenceIsArgumentOrder(t *testing.T) {
	got := FirstOf("Unknown", NonEmpty(strPtr("Budi")), NonEmpty(strPtr("Siti")))
	assert.Equal(t, "Budi", got)

	got = FirstOf("Unknown", NonEmpty(nil), NonEmpty(strPtr("  ")), NonEmpty(strPtr("Siti")))
	assert.Equal(t, "Siti", got)

	got = FirstOf("Unknown", NonEmpty(nil), nil)
	assert.Equal(t, "Unknown", got)
}

func TestNonZero_SkipsZeroAmounts(t *testing.T) {
	got := FirstOf[float64](0, NonZero(fPtr(0)), NonZero(nil), NonZero(fPtr(125000)))
	assert.Equal(t, 125000.0, got)
}

func TestLastN(t *testing.T) {
	assert.Equal(t, "9abc", LastN("inv-0009abc", 4))
	assert.Equal(t, "12", LastN("12", 4))
	assert.Equal(t, "", LastN("", 4))
}
