package metar

import (
	"fmt"
	"math"
)

// DirectionUnit is a display unit for directions.
type DirectionUnit string

const (
	Degrees DirectionUnit = "degrees"
	Compass DirectionUnit = "compass"
)

const (
	circleDegrees = 360.0
	sectorDegrees = circleDegrees / 16
)

// sectors has 17 entries so that rounding up to 360° lands on "N" again.
var sectors = [17]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW", "N",
}

// Valid reports whether u is a known direction unit.
func (u DirectionUnit) Valid() bool {
	return u == Degrees || u == Compass
}

// Normalize maps d into [0, 360).
func Normalize(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return math.NaN()
	}
	n := math.Mod(d, circleDegrees)
	if n < 0 {
		n += circleDegrees
	}
	// -1e-14 + 360 rounds to 360 exactly.
	if n >= circleDegrees {
		n -= circleDegrees
	}
	return n
}

// ToCompass names the 22.5° sector nearest to d.
func ToCompass(d float64) string {
	n := Normalize(d)
	if math.IsNaN(n) {
		return ""
	}
	return sectors[int(math.Round(n/sectorDegrees))]
}

// Direction is a bearing in degrees. The stored value is not normalized.
type Direction struct {
	degrees float64
	opts    DirectionOptions
}

// NewDirection builds a Direction. It fails with ErrInvalidUnit when opts
// selects an unknown display unit.
func NewDirection(degrees float64, opts DirectionOptions) (Direction, error) {
	if !opts.Units.Valid() {
		return Direction{}, unitError("direction", string(opts.Units))
	}
	return Direction{degrees: degrees, opts: opts}, nil
}

// CompassDirection builds the Direction at the center of the named sector.
func CompassDirection(name string, opts DirectionOptions) (Direction, error) {
	for i, s := range sectors {
		if s == name {
			return NewDirection(float64(i)*sectorDegrees, opts)
		}
	}
	return Direction{}, fmt.Errorf("compass direction %q: %w", name, ErrUnknownCompassDirection)
}

// Degrees returns the stored bearing.
func (d Direction) Degrees() float64 { return d.degrees }

// Options returns the formatting options the direction was built with.
func (d Direction) Options() DirectionOptions { return d.opts }

// Compass names the sector of the direction.
func (d Direction) Compass() string { return ToCompass(d.degrees) }

// Render formats the direction as "240°" or, in compass units, "WSW".
func (d Direction) Render(l Localizer) string {
	if d.opts.Units == Compass {
		return d.Compass()
	}
	return l.LocalizeFloat(d.degrees, decimalFormat(d.opts.Decimals)) + "°"
}
