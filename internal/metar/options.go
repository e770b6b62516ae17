package metar

import "errors"

var (
	// ErrInvalidUnit reports a display unit that is not a member of the
	// quantity's unit set.
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnknownCompassDirection reports a compass label outside the 16 named sectors.
	ErrUnknownCompassDirection = errors.New("unknown compass direction")
)

// DistanceOptions controls how a Distance renders.
type DistanceOptions struct {
	Units       DistanceUnit
	Abbreviated bool
	Decimals    int
}

// DirectionOptions controls how a Direction renders.
type DirectionOptions struct {
	Units       DirectionUnit
	Abbreviated bool
	Decimals    int
}

// Options carries the formatting configuration for every quantity a parser
// may construct.
type Options struct {
	Distance  DistanceOptions
	Direction DirectionOptions
}

// DefaultOptions returns the default formatting configuration: distances in
// meters with three decimals and full unit names, directions in whole degrees.
func DefaultOptions() Options {
	return Options{
		Distance: DistanceOptions{
			Units:       Meters,
			Abbreviated: false,
			Decimals:    3,
		},
		Direction: DirectionOptions{
			Units:       Degrees,
			Abbreviated: true,
			Decimals:    0,
		},
	}
}

// Validate checks both unit selections.
func (o Options) Validate() error {
	if !o.Distance.Units.Valid() {
		return unitError("distance", string(o.Distance.Units))
	}
	if !o.Direction.Units.Valid() {
		return unitError("direction", string(o.Direction.Units))
	}
	return nil
}

// Localizer is the localization service consumed by Render.
type Localizer interface {
	// LocalizeFloat formats f with a printf-style format and the active
	// locale's separators.
	LocalizeFloat(f float64, format string) string

	// TranslateFloatCount looks up key inflected for the plural category of f.
	TranslateFloatCount(key string, f float64) string

	// Translate looks up key without inflection.
	Translate(key string) string
}
