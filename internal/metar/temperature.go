package metar

import (
	"regexp"
	"strconv"
)

var temperatureRe = regexp.MustCompile(`^(M?)(\d+)$`)

// Temperature is a whole-degree Celsius reading. A zero Temperature is
// unknown.
type Temperature struct {
	Celsius int
	Known   bool
}

// ParseTemperature reads "12" or "M05" (minus five).
func ParseTemperature(s string) (Temperature, bool) {
	m := temperatureRe.FindStringSubmatch(s)
	if m == nil {
		return Temperature{}, false
	}
	v, err := strconv.Atoi(m[2])
	if err != nil {
		return Temperature{}, false
	}
	if m[1] == "M" {
		v = -v
	}
	return Temperature{Celsius: v, Known: true}, true
}

// Render formats the temperature as "-5°".
func (t Temperature) Render(l Localizer) string {
	if !t.Known {
		return l.Translate("temperature.not_available")
	}
	return strconv.Itoa(t.Celsius) + "°"
}
