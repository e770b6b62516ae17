package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/couchcryptid/metar-decoder/internal/metar"
)

var (
	// stationRe matches an ICAO location indicator such as "KJFK" or "EGLL".
	stationRe = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)

	// observationTimeRe matches the DDHHMMZ issue time group.
	observationTimeRe = regexp.MustCompile(`^\d{6}Z$`)

	// fractionRe matches the fractional half of a split visibility group, "1 1/2SM".
	fractionRe = regexp.MustCompile(`^[13]/[24]SM$`)

	// temperaturePairRe matches "TT/DD"; either half may be missing ("//") and
	// the dew point may be absent altogether.
	temperaturePairRe = regexp.MustCompile(`^(M?\d{2}|//)/(M?\d{2}|//)?$`)
)

// ErrEmptyReport is returned for a report with no groups.
var ErrEmptyReport = errors.New("empty report")

// markers are report-type and status groups that carry no decodable content.
var markers = map[string]bool{
	"METAR": true,
	"SPECI": true,
	"COR":   true,
	"AUTO":  true,
}

// TokenDecoder decodes one report group. A nil slice with a nil error means
// no parser recognized the group.
type TokenDecoder interface {
	DecodeToken(token string) ([]DecodedToken, error)
}

// Decoder turns report bodies into localized DecodedReports. It is safe for
// concurrent use; options are fixed at construction.
type Decoder struct {
	opts      metar.Options
	localizer metar.Localizer
	locale    string
	tokens    TokenDecoder
}

// NewDecoder validates opts and builds a Decoder rendering through localizer.
// locale is recorded on every report it produces.
func NewDecoder(opts metar.Options, localizer metar.Localizer, locale string) (*Decoder, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("decoder options: %w", err)
	}
	d := &Decoder{opts: opts, localizer: localizer, locale: locale}
	d.tokens = d
	return d, nil
}

// WithTokenDecoder returns a copy of d that routes groups through td, which
// is typically a cache wrapping d.
func (d *Decoder) WithTokenDecoder(td TokenDecoder) *Decoder {
	cp := *d
	cp.tokens = td
	return &cp
}

// Locale returns the locale name recorded on decoded reports.
func (d *Decoder) Locale() string { return d.locale }

// DecodeToken routes one group through the parsers in order: wind,
// visibility, weather, sky, temperature pair.
func (d *Decoder) DecodeToken(token string) ([]DecodedToken, error) {
	w, ok, err := metar.ParseWind(token, d.opts)
	if err != nil {
		return nil, err
	}
	if ok {
		return d.single(token, KindWind, w.Render(d.localizer)), nil
	}

	v, ok, err := metar.ParseVisibility(token, d.opts)
	if err != nil {
		return nil, err
	}
	if ok {
		return d.single(token, KindVisibility, v.Render(d.localizer)), nil
	}

	if wx, ok := metar.ParseWeatherPhenomenon(token); ok {
		return d.single(token, KindWeather, wx.String()), nil
	}

	if sky, ok := metar.ParseSkyCondition(token); ok {
		return d.single(token, KindSky, sky.String()), nil
	}

	if m := temperaturePairRe.FindStringSubmatch(token); m != nil {
		temp, _ := metar.ParseTemperature(m[1])
		dew, _ := metar.ParseTemperature(m[2])
		return []DecodedToken{
			{Token: token, Kind: KindTemperature, Text: temp.Render(d.localizer)},
			{Token: token, Kind: KindDewPoint, Text: dew.Render(d.localizer)},
		}, nil
	}

	return nil, nil
}

func (d *Decoder) single(token, kind, text string) []DecodedToken {
	return []DecodedToken{{Token: token, Kind: kind, Text: text}}
}

// DecodeEvent decodes a source-topic message. A payload that is not a JSON
// RawReport is taken as the bare report body.
func (d *Decoder) DecodeEvent(raw RawEvent) (DecodedReport, error) {
	var rep RawReport
	if err := json.Unmarshal(raw.Value, &rep); err != nil {
		trimmed := strings.TrimSpace(string(raw.Value))
		if strings.HasPrefix(trimmed, "{") {
			return DecodedReport{}, fmt.Errorf("parse raw report: %w", err)
		}
		rep = RawReport{Body: trimmed}
	}
	return d.DecodeReport(rep.Station, rep.Body)
}

// DecodeReport decodes a whole report body. station, when non-empty, takes
// precedence over the identifier in the body.
func (d *Decoder) DecodeReport(station, body string) (DecodedReport, error) {
	fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(body), "="))
	if len(fields) == 0 {
		return DecodedReport{}, ErrEmptyReport
	}

	report := DecodedReport{
		Station: station,
		Raw:     strings.Join(fields, " "),
		Locale:  d.locale,
		Tokens:  []DecodedToken{},
	}

	groups := d.header(fields, &report)
	for _, g := range joinFractions(groups) {
		decoded, err := d.tokens.DecodeToken(g)
		if err != nil {
			return DecodedReport{}, fmt.Errorf("decode %q: %w", g, err)
		}
		if decoded == nil {
			report.Unparsed = append(report.Unparsed, g)
			continue
		}
		report.Tokens = append(report.Tokens, decoded...)
	}

	report.ID = generateID(report.Station, report.Raw)
	report.ProcessedAt = clock.Now().UTC()
	return report, nil
}

// header consumes the leading markers, station identifier and issue time,
// and returns the body groups up to (not including) RMK.
func (d *Decoder) header(fields []string, report *DecodedReport) []string {
	i := 0
	for i < len(fields) && markers[fields[i]] {
		i++
	}

	if i < len(fields) && d.isStation(fields[i]) {
		if report.Station == "" {
			report.Station = fields[i]
		}
		i++
	}

	for i < len(fields) && (markers[fields[i]] || observationTimeRe.MatchString(fields[i])) {
		if observationTimeRe.MatchString(fields[i]) {
			report.Time = fields[i]
		}
		i++
	}

	body := fields[i:]
	for j, f := range body {
		if f == "RMK" {
			return body[:j]
		}
	}
	return body
}

// isStation reports whether s is a location indicator rather than a
// four-letter weather group such as "TSRA".
func (d *Decoder) isStation(s string) bool {
	if !stationRe.MatchString(s) {
		return false
	}
	_, isWeather := metar.ParseWeatherPhenomenon(s)
	return !isWeather
}

// joinFractions re-joins a lone whole-mile digit with the fraction that
// follows it: "1", "1/2SM" becomes "1 1/2SM".
func joinFractions(groups []string) []string {
	out := make([]string, 0, len(groups))
	for i := 0; i < len(groups); i++ {
		g := groups[i]
		if (g == "1" || g == "2") && i+1 < len(groups) && fractionRe.MatchString(groups[i+1]) {
			g += " " + groups[i+1]
			i++
		}
		out = append(out, g)
	}
	return out
}

// generateID creates a deterministic identifier from station and normalized
// body so replays of the same report produce the same ID.
func generateID(station, body string) string {
	hash := sha256.Sum256([]byte(station + "|" + body))
	short := hex.EncodeToString(hash[:8])
	if station == "" {
		return short
	}
	return strings.ToLower(station) + "-" + short
}
