package metar

import "regexp"

// WindDirectionState distinguishes a measured direction from the sentinels
// a report may carry instead.
type WindDirectionState string

const (
	DirectionMeasured WindDirectionState = "measured"
	DirectionVariable WindDirectionState = "variable"
	DirectionUnknown  WindDirectionState = "unknown"
)

var (
	windRe         = regexp.MustCompile(`^(\d{3})(\d{2}(?:KT|MPS|KMH|))$`)
	windGustRe     = regexp.MustCompile(`^(\d{3})(\d{2})G(\d{2,3})(KT|MPS|KMH|)$`)
	windVariableRe = regexp.MustCompile(`^VRB(\d{2}(?:KT|MPS|KMH|))$`)
	windUnknownRe  = regexp.MustCompile(`^///(\d{2}(?:KT|MPS|KMH|))$`)
	windMissingRe  = regexp.MustCompile(`^/////(?:KT|MPS|KMH|)$`)
)

// Wind is a surface wind observation. Gusts are recognized by ParseWind but
// not retained.
type Wind struct {
	DirectionState WindDirectionState
	Direction      Direction // zero unless DirectionState is DirectionMeasured
	Speed          Speed
	SpeedKnown     bool
}

// ParseWind reads a wind group: "24015KT", "24015G25KT", "VRB05KT",
// "///05KT" or "/////KT".
//
// ok is false when the token fits no alternative. err is non-nil only for
// invalid options (ErrInvalidUnit).
func ParseWind(s string, opts Options) (w Wind, ok bool, err error) {
	switch {
	case windRe.MatchString(s):
		m := windRe.FindStringSubmatch(s)
		return measuredWind(m[1], m[2], opts.Direction)

	case windGustRe.MatchString(s):
		// The unit suffix follows the gust but applies to both speeds.
		m := windGustRe.FindStringSubmatch(s)
		return measuredWind(m[1], m[2]+m[4], opts.Direction)

	case windVariableRe.MatchString(s):
		m := windVariableRe.FindStringSubmatch(s)
		speed, _ := ParseSpeed(m[1])
		return Wind{DirectionState: DirectionVariable, Speed: speed, SpeedKnown: true}, true, nil

	case windUnknownRe.MatchString(s):
		m := windUnknownRe.FindStringSubmatch(s)
		speed, _ := ParseSpeed(m[1])
		return Wind{DirectionState: DirectionUnknown, Speed: speed, SpeedKnown: true}, true, nil

	case windMissingRe.MatchString(s):
		return Wind{DirectionState: DirectionUnknown}, true, nil

	default:
		return Wind{}, false, nil
	}
}

func measuredWind(degrees, speed string, opts DirectionOptions) (Wind, bool, error) {
	dir, err := NewDirection(atof(degrees), opts)
	if err != nil {
		return Wind{}, false, err
	}
	sp, _ := ParseSpeed(speed)
	return Wind{
		DirectionState: DirectionMeasured,
		Direction:      dir,
		Speed:          sp,
		SpeedKnown:     true,
	}, true, nil
}

// Render formats the wind as "240° 15 knots" or "variable direction 5 knots".
func (w Wind) Render(l Localizer) string {
	var dir string
	switch w.DirectionState {
	case DirectionMeasured:
		dir = w.Direction.Render(l)
	case DirectionVariable:
		dir = l.Translate("wind.variable_direction")
	default:
		dir = l.Translate("wind.unknown_direction")
	}

	speed := l.Translate("wind.unknown_speed")
	if w.SpeedKnown {
		speed = w.Speed.Render(l)
	}
	return dir + " " + speed
}
