package metar

import (
	"regexp"
	"strings"
)

// code pairs a report code with its English wording. Tables are ordered so
// the compiled alternation is deterministic.
type code struct {
	code string
	text string
}

var weatherModifiers = []code{
	{"+", "heavy "},
	{"-", "light "},
	{"VC", "nearby "},
}

var weatherDescriptors = []code{
	{"BC", "patches of "},
	{"BL", "blowing "},
	{"DR", "low drifting "},
	{"FZ", "freezing "},
	{"MI", "shallow "},
	{"PR", "partial "},
	{"SH", "shower of "},
	{"TS", "thunderstorm and "},
}

var weatherPhenomena = []code{
	{"BR", "mist"},
	{"DU", "dust"},
	{"DZ", "drizzle"},
	{"FG", "fog"},
	{"FU", "smoke"},
	{"GR", "hail"},
	{"GS", "small hail"},
	{"HZ", "haze"},
	{"IC", "ice crystals"},
	{"PL", "ice pellets"},
	{"PO", "dust whirls"},
	{"PY", "spray"},
	{"RA", "rain"},
	{"SA", "sand"},
	{"SH", "shower"},
	{"SN", "snow"},
	{"SG", "snow grains"},
	{"SNRA", "snow and rain"},
	{"SQ", "squall"},
	{"UP", "unknown phenomenon"},
	{"VA", "volcanic ash"},
	{"FC", "funnel cloud"},
	{"SS", "sand storm"},
	{"DS", "dust storm"},
}

// weatherRe is optional modifier, optional descriptor, required phenomenon.
var weatherRe = regexp.MustCompile(
	"^(" + alternation(weatherModifiers) + ")?" +
		"(" + alternation(weatherDescriptors) + ")?" +
		"(" + alternation(weatherPhenomena) + ")$",
)

func alternation(table []code) string {
	keys := make([]string, len(table))
	for i, c := range table {
		keys[i] = regexp.QuoteMeta(c.code)
	}
	return strings.Join(keys, "|")
}

func lookup(table []code, key string) string {
	for _, c := range table {
		if c.code == key {
			return c.text
		}
	}
	return ""
}

// WeatherPhenomenon is a present-weather group such as "+TSRA".
type WeatherPhenomenon struct {
	Modifier   string
	Descriptor string
	Phenomenon string
}

// ParseWeatherPhenomenon reads a present-weather group. The phenomenon code
// is mandatory: "+TS" alone does not match.
func ParseWeatherPhenomenon(s string) (WeatherPhenomenon, bool) {
	m := weatherRe.FindStringSubmatch(s)
	if m == nil {
		return WeatherPhenomenon{}, false
	}
	return WeatherPhenomenon{
		Modifier:   lookup(weatherModifiers, m[1]),
		Descriptor: lookup(weatherDescriptors, m[2]),
		Phenomenon: lookup(weatherPhenomena, m[3]),
	}, true
}

func (w WeatherPhenomenon) String() string {
	return w.Modifier + w.Descriptor + w.Phenomenon
}
