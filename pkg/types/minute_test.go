package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinuteOfDay(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "midnight", value: 0, wantErr: false},
		{name: "morning", value: 540, wantErr: false},
		{name: "last minute of day", value: 1439, wantErr: false},
		{name: "negative", value: -1, wantErr: true},
		{name: "full day", value: 1440, wantErr: true},
		{name: "far out of range", value: 100000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMinuteOfDay(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMinuteOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, m.Int())
		})
	}
}

func TestMinuteOfDay_String(t *testing.T) {
	assert.Equal(t, "00:00", MinuteOfDay(0).String())
	assert.Equal(t, "09:00", MinuteOfDay(540).String())
	assert.Equal(t, "09:05", MinuteOfDay(545).String())
	assert.Equal(t, "23:59", MinuteOfDay(1439).String())
}

func TestMinuteOfDayFromClock(t *testing.T) {
	clock := time.Date(2026, 3, 10, 14, 30, 59, 0, time.UTC)
	assert.Equal(t, MinuteOfDay(870), MinuteOfDayFromClock(clock))

	midnight := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, MinuteOfDay(0), MinuteOfDayFromClock(midnight))
}

func TestMinuteOfDay_Add(t *testing.T) {
	start := MinuteOfDay(540)
	assert.Equal(t, MinuteOfDay(600), start.Add(60))
	assert.Equal(t, MinuteOfDay(540), start.Add(0))
}
