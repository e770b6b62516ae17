package metar

import (
	"regexp"
	"strconv"
)

// Comparator qualifies a visibility as a bound rather than a measurement.
type Comparator string

const (
	NoComparator Comparator = ""
	MoreThan     Comparator = "more_than"
	LessThan     Comparator = "less_than"
)

var (
	// WMO no-directional-variation group, e.g. "1200NDV".
	visibilityNDVRe = regexp.MustCompile(`^(\d{4})NDV$`)

	// US fractional statute miles with an optional whole part: "3/4SM", "1 1/2SM".
	visibilityFractionRe = regexp.MustCompile(`^(?:([12])\s)?([13])/([24])SM$`)

	visibilityMilesRe      = regexp.MustCompile(`^(\d+)SM$`)
	visibilityKilometersRe = regexp.MustCompile(`^(\d+)KM$`)

	// Kilometers with an optional octant of reduced visibility: "2", "2NE".
	visibilitySectorRe = regexp.MustCompile(`^(\d+)(N|NE|E|SE|S|SW|W|NW)?$`)
)

// Visibility is a horizontal visibility, optionally restricted to a sector
// or qualified as a bound.
type Visibility struct {
	Distance   Distance
	Direction  *Direction
	Comparator Comparator
}

// ParseVisibility reads a visibility token. Distances take their formatting
// from opts.Distance with the unit overridden to the one the token was
// reported in; sector directions use opts.Direction.
//
// ok is false when the token fits no alternative. err is non-nil only for
// invalid options (ErrInvalidUnit).
func ParseVisibility(s string, opts Options) (v Visibility, ok bool, err error) {
	switch {
	case s == "9999":
		o := opts.Distance
		o.Units = Kilometers
		o.Decimals = 0
		return visibility(MetersFromKilometers(10), o, nil, MoreThan)

	case visibilityNDVRe.MatchString(s):
		m := visibilityNDVRe.FindStringSubmatch(s)
		return visibility(atof(m[1]), opts.Distance, nil, NoComparator)

	case visibilityFractionRe.MatchString(s):
		m := visibilityFractionRe.FindStringSubmatch(s)
		miles := atof(m[1]) + atof(m[2])/atof(m[3])
		return visibility(MetersFromMiles(miles), withUnits(opts.Distance, Miles), nil, NoComparator)

	case visibilityMilesRe.MatchString(s):
		m := visibilityMilesRe.FindStringSubmatch(s)
		return visibility(MetersFromMiles(atof(m[1])), withUnits(opts.Distance, Miles), nil, NoComparator)

	case s == "M1/4SM":
		return visibility(MetersFromMiles(0.25), withUnits(opts.Distance, Miles), nil, LessThan)

	case visibilityKilometersRe.MatchString(s):
		m := visibilityKilometersRe.FindStringSubmatch(s)
		return visibility(MetersFromKilometers(atof(m[1])), withUnits(opts.Distance, Kilometers), nil, NoComparator)

	case visibilitySectorRe.MatchString(s):
		m := visibilitySectorRe.FindStringSubmatch(s)
		var dir *Direction
		if m[2] != "" {
			d, err := CompassDirection(m[2], opts.Direction)
			if err != nil {
				return Visibility{}, false, err
			}
			dir = &d
		}
		return visibility(MetersFromKilometers(atof(m[1])), withUnits(opts.Distance, Kilometers), dir, NoComparator)

	default:
		return Visibility{}, false, nil
	}
}

func visibility(meters float64, opts DistanceOptions, dir *Direction, cmp Comparator) (Visibility, bool, error) {
	d, err := NewDistance(meters, opts)
	if err != nil {
		return Visibility{}, false, err
	}
	return Visibility{Distance: d, Direction: dir, Comparator: cmp}, true, nil
}

func withUnits(o DistanceOptions, u DistanceUnit) DistanceOptions {
	o.Units = u
	return o
}

// atof parses a digit group; an empty group is zero.
func atof(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Render formats the visibility, e.g. "more than 10 kilometers" or
// "2.000 kilometers 45°".
func (v Visibility) Render(l Localizer) string {
	out := v.Distance.Render(l)
	if v.Comparator != NoComparator {
		out = l.Translate("comparison."+string(v.Comparator)) + " " + out
	}
	if v.Direction != nil {
		out += " " + v.Direction.Render(l)
	}
	return out
}
