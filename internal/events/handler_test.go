package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 14, d.Day())

	_, err = parseDate("14/03/2026")
	assert.Error(t, err)
	_, err = parseDate("")
	assert.Error(t, err)
}

func TestValidTime(t *testing.T) {
	assert.True(t, validTime("09:30"))
	assert.True(t, validTime("23:59"))
	assert.False(t, validTime("9:30pm"))
	assert.False(t, validTime("25:00"))
	assert.False(t, validTime(""))
}
