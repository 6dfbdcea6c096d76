package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, m)

	m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, m)

	for _, bad := range []string{"9am", "25:00", "09:60", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "00:05", FormatClock(5))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestStartsAt(t *testing.T) {
	s := MeetingSlot{Date: "2026-09-15", Start: 9*60 + 30}
	want := time.Date(2026, 9, 15, 9, 30, 0, 0, time.Local)
	assert.True(t, s.StartsAt().Equal(want))

	malformed := MeetingSlot{Date: "15/09/2026", Start: 540}
	assert.True(t, malformed.StartsAt().IsZero())
}
