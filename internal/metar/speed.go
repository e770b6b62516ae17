package metar

import (
	"regexp"
	"strconv"
)

// SpeedUnit is the unit a speed was reported in.
type SpeedUnit string

const (
	KilometersPerHour SpeedUnit = "kilometers_per_hour"
	Knots             SpeedUnit = "knots"
	MetersPerSecond   SpeedUnit = "meters_per_second"
)

// speedUnits maps the token suffix to its unit. A bare number is km/h.
var speedUnits = map[string]SpeedUnit{
	"":    KilometersPerHour,
	"KMH": KilometersPerHour,
	"KT":  Knots,
	"MPS": MetersPerSecond,
}

// speedRe is anchored at the start only; trailing characters are ignored.
var speedRe = regexp.MustCompile(`^(\d+)(KT|MPS|KMH|)`)

// Speed is a whole-number speed with its reporting unit.
type Speed struct {
	Value int
	Unit  SpeedUnit
}

// ParseSpeed reads a speed such as "15KT", "8MPS" or "20".
func ParseSpeed(s string) (Speed, bool) {
	m := speedRe.FindStringSubmatch(s)
	if m == nil {
		return Speed{}, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return Speed{}, false
	}
	return Speed{Value: v, Unit: speedUnits[m[2]]}, true
}

// Render formats the speed as "15 knots" or "1 knot".
func (s Speed) Render(l Localizer) string {
	form := "plural"
	if s.Value == 1 {
		form = "singular"
	}
	return strconv.Itoa(s.Value) + " " + l.Translate("speed.unit."+string(s.Unit)+"."+form)
}
