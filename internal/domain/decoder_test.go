package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/metar"
)

const testReport = "METAR KJFK 121651Z AUTO 27015G25KT 1 1/2SM -RA BR BKN008 OVC015 12/M05 A2992 RMK AO2 SLP132"

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	catalog, err := i18n.DefaultCatalog()
	require.NoError(t, err)
	loc, err := catalog.Locale("en")
	require.NoError(t, err)

	d, err := NewDecoder(metar.DefaultOptions(), i18n.NewLocalizer(loc), loc.Name())
	require.NoError(t, err)
	return d
}

func TestDecoder_DecodeReport(t *testing.T) {
	fixed := time.Date(2024, 3, 12, 16, 55, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	d := newTestDecoder(t)
	report, err := d.DecodeReport("", testReport)
	require.NoError(t, err)

	assert.Equal(t, "KJFK", report.Station)
	assert.Equal(t, "121651Z", report.Time)
	assert.Equal(t, "en", report.Locale)
	assert.Equal(t, testReport, report.Raw)
	assert.Equal(t, fixed, report.ProcessedAt)
	assert.True(t, strings.HasPrefix(report.ID, "kjfk-"))
	assert.Equal(t, []string{"A2992"}, report.Unparsed)

	expected := []DecodedToken{
		{Token: "27015G25KT", Kind: KindWind, Text: "270° 15 knots"},
		{Token: "1 1/2SM", Kind: KindVisibility, Text: "1.500 miles"},
		{Token: "-RA", Kind: KindWeather, Text: "light rain"},
		{Token: "BR", Kind: KindWeather, Text: "mist"},
		{Token: "BKN008", Kind: KindSky, Text: "Broken cloud at 240"},
		{Token: "OVC015", Kind: KindSky, Text: "Overcast at 450"},
		{Token: "12/M05", Kind: KindTemperature, Text: "12°"},
		{Token: "12/M05", Kind: KindDewPoint, Text: "-5°"},
	}
	if diff := cmp.Diff(expected, report.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoder_DecodeReport_Sentinels(t *testing.T) {
	d := newTestDecoder(t)
	report, err := d.DecodeReport("", "SPECI EGLL 121650Z 9999 VRB03KT CAVOK 05/ Q1013=")
	require.NoError(t, err)

	assert.Equal(t, "EGLL", report.Station)
	assert.Equal(t, "SPECI EGLL 121650Z 9999 VRB03KT CAVOK 05/ Q1013", report.Raw)
	assert.Equal(t, []string{"CAVOK", "Q1013"}, report.Unparsed)

	expected := []DecodedToken{
		{Token: "9999", Kind: KindVisibility, Text: "more than 10 kilometers"},
		{Token: "VRB03KT", Kind: KindWind, Text: "variable direction 3 knots"},
		{Token: "05/", Kind: KindTemperature, Text: "5°"},
		{Token: "05/", Kind: KindDewPoint, Text: "Not available"},
	}
	if diff := cmp.Diff(expected, report.Tokens); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestDecoder_DecodeReport_StationOverride(t *testing.T) {
	d := newTestDecoder(t)

	report, err := d.DecodeReport("KLGA", "KJFK 121651Z 27015KT")
	require.NoError(t, err)
	assert.Equal(t, "KLGA", report.Station)
	assert.Empty(t, report.Unparsed)
	require.Len(t, report.Tokens, 1)
}

func TestDecoder_DecodeReport_NoHeader(t *testing.T) {
	d := newTestDecoder(t)

	// A four-letter weather group in first position is not a station.
	report, err := d.DecodeReport("", "TSRA BR")
	require.NoError(t, err)
	assert.Empty(t, report.Station)
	assert.Empty(t, report.Time)
	require.Len(t, report.Tokens, 2)
	assert.Equal(t, "thunderstorm and rain", report.Tokens[0].Text)
	assert.Equal(t, "mist", report.Tokens[1].Text)
	assert.NotContains(t, report.ID, "-")
}

func TestDecoder_DecodeReport_Empty(t *testing.T) {
	d := newTestDecoder(t)

	for _, body := range []string{"", "   ", "="} {
		_, err := d.DecodeReport("", body)
		assert.ErrorIs(t, err, ErrEmptyReport, "body %q", body)
	}
}

func TestDecoder_DecodeReport_OnlyRemarks(t *testing.T) {
	d := newTestDecoder(t)

	report, err := d.DecodeReport("", "METAR KJFK 121651Z RMK AO2")
	require.NoError(t, err)
	assert.Empty(t, report.Tokens)
	assert.Empty(t, report.Unparsed)
}

func TestDecoder_DeterministicID(t *testing.T) {
	d := newTestDecoder(t)

	a, err := d.DecodeReport("", testReport)
	require.NoError(t, err)
	b, err := d.DecodeReport("", "  "+strings.ReplaceAll(testReport, " ", "   ")+"  ")
	require.NoError(t, err)
	c, err := d.DecodeReport("", strings.Replace(testReport, "27015G25KT", "27016G25KT", 1))
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID, "whitespace must not change the ID")
	assert.NotEqual(t, a.ID, c.ID)
}

func TestDecoder_DecodeEvent(t *testing.T) {
	d := newTestDecoder(t)

	t.Run("JSON payload", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"station":"KBOS","body":"KBOS 121654Z 18010KT 10SM"}`)}
		report, err := d.DecodeEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, "KBOS", report.Station)
		require.Len(t, report.Tokens, 2)
		assert.Equal(t, "180° 10 knots", report.Tokens[0].Text)
		assert.Equal(t, "10.000 miles", report.Tokens[1].Text)
	})

	t.Run("bare body", func(t *testing.T) {
		raw := RawEvent{Value: []byte("METAR KBOS 121654Z 18010KT\n")}
		report, err := d.DecodeEvent(raw)
		require.NoError(t, err)
		assert.Equal(t, "KBOS", report.Station)
		require.Len(t, report.Tokens, 1)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"body":`)}
		_, err := d.DecodeEvent(raw)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw report")
	})

	t.Run("JSON with empty body", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"station":"KBOS"}`)}
		_, err := d.DecodeEvent(raw)
		assert.ErrorIs(t, err, ErrEmptyReport)
	})
}

func TestNewDecoder_InvalidOptions(t *testing.T) {
	opts := metar.DefaultOptions()
	opts.Distance.Units = "furlongs"

	_, err := NewDecoder(opts, nil, "en")
	require.Error(t, err)
	assert.True(t, errors.Is(err, metar.ErrInvalidUnit))
}

type countingDecoder struct {
	inner TokenDecoder
	calls []string
}

func (c *countingDecoder) DecodeToken(token string) ([]DecodedToken, error) {
	c.calls = append(c.calls, token)
	return c.inner.DecodeToken(token)
}

func TestDecoder_WithTokenDecoder(t *testing.T) {
	d := newTestDecoder(t)
	counter := &countingDecoder{inner: d}

	wrapped := d.WithTokenDecoder(counter)
	report, err := wrapped.DecodeReport("", "KJFK 121651Z 27015KT 1 1/2SM")
	require.NoError(t, err)

	assert.Equal(t, []string{"27015KT", "1 1/2SM"}, counter.calls)
	assert.Len(t, report.Tokens, 2)
	assert.Equal(t, "en", wrapped.Locale())
}

func TestDecoder_DecodeToken(t *testing.T) {
	d := newTestDecoder(t)

	tests := []struct {
		token string
		kind  string
		text  string
	}{
		{"24015KT", KindWind, "240° 15 knots"},
		{"/////KT", KindWind, "unknown direction unknown"},
		{"1200", KindVisibility, "1,200.000 kilometers"},
		{"M1/4SM", KindVisibility, "less than 0.250 miles"},
		{"+TSRA", KindWeather, "heavy thunderstorm and rain"},
		{"VV///", KindSky, "Vertical visibility unknown"},
		{"FEW030", KindSky, "Few clouds at 900"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			decoded, err := d.DecodeToken(tt.token)
			require.NoError(t, err)
			require.Len(t, decoded, 1)
			assert.Equal(t, tt.kind, decoded[0].Kind)
			assert.Equal(t, tt.text, decoded[0].Text)
		})
	}

	for _, token := range []string{"A2992", "Q1013", "CAVOK", "NOSIG", "1/2"} {
		decoded, err := d.DecodeToken(token)
		require.NoError(t, err)
		assert.Nil(t, decoded, "token %q should not decode", token)
	}
}

func TestJoinFractions(t *testing.T) {
	tests := []struct {
		name     string
		in       []string
		expected []string
	}{
		{"whole and half", []string{"1", "1/2SM", "BR"}, []string{"1 1/2SM", "BR"}},
		{"two and three quarters", []string{"2", "3/4SM"}, []string{"2 3/4SM"}},
		{"lone digit", []string{"1", "BR"}, []string{"1", "BR"}},
		{"trailing digit", []string{"BR", "2"}, []string{"BR", "2"}},
		{"three is not a whole-mile prefix", []string{"3", "1/2SM"}, []string{"3", "1/2SM"}},
		{"empty", []string{}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, joinFractions(tt.in))
		})
	}
}

func TestGenerateID(t *testing.T) {
	id := generateID("KJFK", "KJFK 121651Z 27015KT")
	assert.Equal(t, id, generateID("KJFK", "KJFK 121651Z 27015KT"))
	assert.True(t, strings.HasPrefix(id, "kjfk-"))
	assert.Len(t, strings.TrimPrefix(id, "kjfk-"), 16)

	assert.Len(t, generateID("", "27015KT"), 16)
}
