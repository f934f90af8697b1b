package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "10:00", want: 600},
		{in: "10:30", want: 630},
		{in: "23:59", want: 1439},
		{in: "9:05", want: 545},
		{in: "24:00", wantErr: true},
		{in: "10:60", wantErr: true},
		{in: "-1:00", wantErr: true},
		{in: "1000", wantErr: true},
		{in: "ten:thirty", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "10:30", FormatClock(630))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "12:00 AM", FormatTime(0))
	assert.Equal(t, "10:00 AM", FormatTime(600))
	assert.Equal(t, "12:00 PM", FormatTime(720))
	assert.Equal(t, "5:30 PM", FormatTime(1050))
	assert.Equal(t, "11:59 PM", FormatTime(1439))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, m := range []int{0, 75, 600, 630, 1439} {
		got, err := ParseClock(FormatClock(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}
