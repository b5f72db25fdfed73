package spi

import (
	"testing"

	"github.com/leapstack-labs/sqlequiv/pkg/token"
	"github.com/stretchr/testify/assert"
)

func TestBinary(t *testing.T) {
	assert.Equal(t, PrecedenceOr, Binary(token.OR))
	assert.Equal(t, PrecedenceMultiply, Binary(token.STAR))
	assert.Equal(t, PrecedenceNone, Binary(token.COMMA))
	assert.Greater(t, Binary(token.AND), Binary(token.OR))
	assert.True(t, IsComparison(token.GE))
	assert.False(t, IsComparison(token.DPIPE))
}
