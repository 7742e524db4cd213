package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid morning", "09:30", false},
		{"valid midnight", "00:00", false},
		{"valid late night", "23:59", false},
		{"out of range hour", "24:00", true},
		{"out of range minutes", "12:60", true},
		{"with seconds", "12:30:15", true},
		{"empty", "", true},
		{"garbage", "noon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Hour(t *testing.T) {
	ts, err := NewTimeStringFromString("21:15")
	require.NoError(t, err)

	hour, err := ts.Hour()
	require.NoError(t, err)
	assert.Equal(t, 21, hour)
}

func TestTimeString_On(t *testing.T) {
	ts, err := NewTimeStringFromString("16:30")
	require.NoError(t, err)

	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	at, err := ts.On(date)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 12, 16, 30, 0, 0, time.UTC), at)
}

func TestTimeString_Ordering(t *testing.T) {
	early, err := NewTimeStringFromString("08:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("21:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsAfter(late))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("14:00")
	require.NoError(t, err)

	shifted, err := ts.AddMinutes(-120)
	require.NoError(t, err)
	assert.Equal(t, "12:00", shifted.String())
}

func TestTimeString_Format12Hour(t *testing.T) {
	ts, err := NewTimeStringFromString("21:00")
	require.NoError(t, err)
	assert.Equal(t, "9:00 PM", ts.Format12Hour())
}

func TestTimeString_IsZero(t *testing.T) {
	assert.True(t, TimeString("").IsZero())

	ts, err := NewTimeStringFromString("10:00")
	require.NoError(t, err)
	assert.False(t, ts.IsZero())
}
