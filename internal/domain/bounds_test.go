package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBounds_Valid(t *testing.T) {
	b, err := NewBounds(0, 10, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, 10.0, b.Width())
	assert.Equal(t, 4.0, b.Height())
	assert.Equal(t, 5.0, b.MidX())
	assert.Equal(t, 2.0, b.MidY())
}

func TestNewBounds_Degenerate(t *testing.T) {
	_, err := NewBounds(10, 10, 0, 4)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDegenerateBounds))

	_, err = NewBounds(0, 10, 4, 0)
	require.Error(t, err)
	assert.True(t, IsCode(err, ErrCodeDegenerateBounds))
}
