package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoom_Clamped(t *testing.T) {
	s := New(DefaultSettings()).WithLocation(cityHall)

	s, err := s.Zoom(1)
	require.NoError(t, err)
	assert.Equal(t, 20, s.View().Zoom)

	s, err = s.Zoom(5)
	require.NoError(t, err)
	assert.Equal(t, 21, s.View().Zoom)

	s, err = s.Zoom(-10)
	require.NoError(t, err)
	assert.Equal(t, 15, s.View().Zoom)
}

func TestPan(t *testing.T) {
	s := New(DefaultSettings()).WithLocation(cityHall)

	up, err := s.Pan(PanUp)
	require.NoError(t, err)
	assert.InDelta(t, cityHall.Lat+0.002, up.View().Lat, 1e-12)
	assert.Equal(t, cityHall.Lng, up.View().Lng)

	down, err := s.Pan(PanDown)
	require.NoError(t, err)
	assert.InDelta(t, cityHall.Lat-0.002, down.View().Lat, 1e-12)

	left, err := s.Pan(PanLeft)
	require.NoError(t, err)
	assert.InDelta(t, cityHall.Lng-0.002, left.View().Lng, 1e-12)

	right, err := s.Pan(PanRight)
	require.NoError(t, err)
	assert.InDelta(t, cityHall.Lng+0.002, right.View().Lng, 1e-12)

	_, err = s.Pan(Direction("sideways"))
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestPan_KeepsOutline(t *testing.T) {
	s := traced(t)
	s, err := s.Pan(PanLeft)
	require.NoError(t, err)
	assert.True(t, s.Outline().Complete)
	assert.Len(t, s.Outline().Points, 4)
}

func TestViewRequiresLocation(t *testing.T) {
	s := New(DefaultSettings())
	_, err := s.Zoom(1)
	assert.ErrorIs(t, err, ErrNoLocation)
	_, err = s.Pan(PanUp)
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestParseDirection(t *testing.T) {
	for _, d := range []string{"up", "down", "left", "right"} {
		got, err := ParseDirection(d)
		require.NoError(t, err)
		assert.Equal(t, Direction(d), got)
	}
	_, err := ParseDirection("north")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
