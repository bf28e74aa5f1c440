package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeString
		wantErr bool
	}{
		{input: "10:00", want: "10:00"},
		{input: "9:00", want: "09:00"},
		{input: "23:59", want: "23:59"},
		{input: "24:00", wantErr: true},
		{input: "10", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeStringHelpers(t *testing.T) {
	assert.Equal(t, TimeString("07:00"), HourSlot(7))
	assert.Equal(t, TimeString("14:05"), NewTimeString(time.Date(2024, 1, 1, 14, 5, 59, 0, time.UTC)))

	assert.Equal(t, 14, TimeString("14:30").Hour())
	assert.Equal(t, -1, TimeString("bad").Hour())
	assert.Equal(t, 870, TimeString("14:30").Minutes())

	assert.True(t, TimeString("14:00").IsWholeHour())
	assert.False(t, TimeString("14:30").IsWholeHour())
	assert.False(t, TimeString("").IsWholeHour())

	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))

	assert.True(t, TimeString("").IsZero())
	assert.NoError(t, TimeString("00:00").Validate())
	assert.Error(t, TimeString("0:00").Validate())
}
