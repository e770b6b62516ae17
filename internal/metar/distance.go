package metar

import (
	"fmt"
	"strings"
)

// DistanceUnit is a display unit for distances.
type DistanceUnit string

const (
	Meters     DistanceUnit = "meters"
	Miles      DistanceUnit = "miles"
	Kilometers DistanceUnit = "kilometers"
)

const (
	MetersPerMile      = 1609.344
	MetersPerKilometer = 1000.0
)

// Valid reports whether u is a known distance unit.
func (u DistanceUnit) Valid() bool {
	switch u {
	case Meters, Miles, Kilometers:
		return true
	default:
		return false
	}
}

// MetersFromMiles converts miles to meters.
func MetersFromMiles(mi float64) float64 { return mi * MetersPerMile }

// MetersFromKilometers converts kilometers to meters.
func MetersFromKilometers(km float64) float64 { return km * MetersPerKilometer }

// MetersToMiles converts meters to miles.
func MetersToMiles(m float64) float64 { return m / MetersPerMile }

// MetersToKilometers converts meters to kilometers.
func MetersToKilometers(m float64) float64 { return m / MetersPerKilometer }

// Distance is a length stored canonically in meters.
type Distance struct {
	meters float64
	opts   DistanceOptions
}

// NewDistance builds a Distance of the given number of meters. It fails with
// ErrInvalidUnit when opts selects an unknown display unit.
func NewDistance(meters float64, opts DistanceOptions) (Distance, error) {
	if !opts.Units.Valid() {
		return Distance{}, unitError("distance", string(opts.Units))
	}
	return Distance{meters: meters, opts: opts}, nil
}

// Meters returns the canonical magnitude.
func (d Distance) Meters() float64 { return d.meters }

// Options returns the formatting options the distance was built with.
func (d Distance) Options() DistanceOptions { return d.opts }

// In converts the distance to the given unit.
func (d Distance) In(unit DistanceUnit) float64 {
	switch unit {
	case Miles:
		return MetersToMiles(d.meters)
	case Kilometers:
		return MetersToKilometers(d.meters)
	default:
		return d.meters
	}
}

// Render formats the distance in its display unit, e.g. "2.414 kilometers"
// or "10km" when abbreviated.
func (d Distance) Render(l Localizer) string {
	value := d.In(d.opts.Units)
	localized := l.LocalizeFloat(value, decimalFormat(d.opts.Decimals))

	key := "units.distance." + string(d.opts.Units)
	if d.opts.Abbreviated {
		key += ".abbreviated"
	} else {
		key += ".full"
	}
	unit := l.TranslateFloatCount(key, value)

	if d.opts.Abbreviated {
		return localized + unit
	}
	return localized + " " + unit
}

func decimalFormat(decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%%.%df", decimals)
}

func unitError(quantity, unit string) error {
	if strings.TrimSpace(unit) == "" {
		unit = "<empty>"
	}
	return fmt.Errorf("%s unit %q: %w", quantity, unit, ErrInvalidUnit)
}
