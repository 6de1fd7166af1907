package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:15", 555, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "Parse(%q)", tt.in)
			continue
		}
		assert.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "09:05", Format(545))
	assert.Equal(t, "11:00", Format(660))
	assert.Equal(t, "23:59", Format(1439))
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"08:00", "12:30", "17:45"} {
		m, err := Parse(s)
		assert.NoError(t, err)
		assert.Equal(t, s, Format(m))
	}
}
