package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert.Equal(t, 2, Min(2, 3))
	assert.Equal(t, -1, Min(5, -1))
	assert.Equal(t, 3, Max(2, 3))
	assert.Equal(t, 1.5, Max(1.5, -2.0))
	assert.Equal(t, 4, Min(4, 4))
}
