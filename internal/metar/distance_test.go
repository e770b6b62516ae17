package metar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceConversions_RoundTrip(t *testing.T) {
	for _, m := range []float64{0, 0.25, 1, 1.5, 10, 1234.5678, 1e6} {
		assert.InDelta(t, m, MetersToMiles(MetersFromMiles(m)), 1e-9)
		assert.InDelta(t, m, MetersToKilometers(MetersFromKilometers(m)), 1e-9)
	}
}

func TestDistanceConversions_Constants(t *testing.T) {
	assert.InDelta(t, 1609.344, MetersFromMiles(1), 1e-12)
	assert.InDelta(t, 1000.0, MetersFromKilometers(1), 1e-12)
	assert.InDelta(t, 2414.016, MetersFromMiles(1.5), 1e-9)
}

func TestNewDistance_InvalidUnit(t *testing.T) {
	_, err := NewDistance(100, DistanceOptions{Units: "furlongs"})
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.Contains(t, err.Error(), "furlongs")

	_, err = NewDistance(100, DistanceOptions{})
	require.ErrorIs(t, err, ErrInvalidUnit)
}

func TestDistance_In(t *testing.T) {
	d, err := NewDistance(MetersFromMiles(2), DefaultOptions().Distance)
	require.NoError(t, err)

	assert.InDelta(t, 3218.688, d.In(Meters), 1e-9)
	assert.InDelta(t, 2.0, d.In(Miles), 1e-9)
	assert.InDelta(t, 3.218688, d.In(Kilometers), 1e-9)
}

func TestDistance_Render(t *testing.T) {
	l := englishLocalizer(t)

	tests := []struct {
		name     string
		meters   float64
		opts     DistanceOptions
		expected string
	}{
		{"default meters", 2414.016, DefaultOptions().Distance, "2,414.016 meters"},
		{"zero meters", 0, DefaultOptions().Distance, "0.000 meters"},
		{"one kilometer", 1000, DistanceOptions{Units: Kilometers}, "1 kilometer"},
		{"one mile", MetersPerMile, DistanceOptions{Units: Miles, Decimals: 1}, "1.0 mile"},
		{"miles plural", MetersFromMiles(1.5), DistanceOptions{Units: Miles, Decimals: 3}, "1.500 miles"},
		{"abbreviated", 2414.016, DistanceOptions{Units: Kilometers, Abbreviated: true, Decimals: 1}, "2.4km"},
		{"abbreviated meters", 800, DistanceOptions{Units: Meters, Abbreviated: true}, "800m"},
		{"abbreviated one kilometer", 1000, DistanceOptions{Units: Kilometers, Abbreviated: true, Decimals: 3}, "1.000km"},
		{"abbreviated one mile", MetersPerMile, DistanceOptions{Units: Miles, Abbreviated: true, Decimals: 3}, "1.000mi"},
		{"abbreviated one meter", 1, DistanceOptions{Units: Meters, Abbreviated: true, Decimals: 3}, "1.000m"},
		{"abbreviated zero", 0, DistanceOptions{Units: Kilometers, Abbreviated: true, Decimals: 3}, "0.000km"},
		{"negative decimals clamp", 1500, DistanceOptions{Units: Kilometers, Decimals: -2}, "2 kilometers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDistance(tt.meters, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Render(l))
		})
	}
}
