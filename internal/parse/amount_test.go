package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmount_CommaGrouped(t *testing.T) {
	assert.Equal(t, 198779.0, Amount("198,779"))
	assert.Equal(t, 1234.56, Amount("1,234.56"))
	assert.Equal(t, 2254000.0, Amount("2,254,000"))
}

func TestAmount_PlainAndSigned(t *testing.T) {
	assert.Equal(t, 76.0, Amount("  76  "))
	assert.Equal(t, -45.0, Amount("-45"))
	assert.Equal(t, 0.5, Amount(".5"))
}

func TestAmount_MalformedTokensNormalizeToZero(t *testing.T) {
	assert.Equal(t, 0.0, Amount(""))
	assert.Equal(t, 0.0, Amount("(1,234)"))
	assert.Equal(t, 0.0, Amount("12.3.4"))
	assert.Equal(t, 0.0, Amount("O76"))
	assert.Equal(t, 0.0, Amount("n/a"))
	assert.Equal(t, 0.0, Amount("-"))
}
