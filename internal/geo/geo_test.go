package geo

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFixed(t *testing.T) {
	loc, err := NewFixed(40.7128, -74.006)
	require.NoError(t, err)

	pos, err := loc.Locate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 40.7128, pos.Lat, 1e-9)
	assert.InDelta(t, -74.006, pos.Lng, 1e-9)

	_, err = NewFixed(91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = NewFixed(math.NaN(), 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestFixedHonoursCancellation(t *testing.T) {
	loc, err := NewFixed(1, 2)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = loc.Locate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseCoordinates(t *testing.T) {
	lat, lng, err := ParseCoordinates(" 12.5 ", "-45")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, lat, 1e-9)
	assert.InDelta(t, -45, lng, 1e-9)

	for _, tc := range [][2]string{{"", "1"}, {"1", "abc"}, {"-91", "0"}, {"0", "180.5"}, {"NaN", "0"}, {"0", "nan"}, {"+Inf", "0"}} {
		_, _, err := ParseCoordinates(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrInvalidCoordinate, "lat=%q lng=%q", tc[0], tc[1])
	}
}

func TestFormatCoordinate(t *testing.T) {
	assert.Equal(t, "40.7128", FormatCoordinate(40.7128))
	assert.Equal(t, "-74", FormatCoordinate(-74))
}
