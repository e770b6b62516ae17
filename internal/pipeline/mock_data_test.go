package pipeline_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-decoder/internal/cache"
	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/metar"
	"github.com/couchcryptid/metar-decoder/internal/observability"
	"github.com/couchcryptid/metar-decoder/internal/pipeline"
)

// unsupportedGroupRe lists groups the decoder deliberately leaves alone:
// altimeter settings, CAVOK, trend markers and wind direction variation.
var unsupportedGroupRe = regexp.MustCompile(`^(A\d{4}|Q\d{4}|CAVOK|NOSIG|TEMPO|BECMG|\d{3}V\d{3})$`)

var knownKinds = map[string]bool{
	domain.KindWind:        true,
	domain.KindVisibility:  true,
	domain.KindWeather:     true,
	domain.KindSky:         true,
	domain.KindTemperature: true,
	domain.KindDewPoint:    true,
}

func TestReportTransformer_WithMockReports(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	decoder := newDecoder(t)
	cached := decoder.WithTokenDecoder(cache.NewCachedDecoder(decoder, 100, metrics))
	transformer := pipeline.NewTransformer(cached, metrics, discardLogger())

	reports := readMockReports(t)
	require.Len(t, reports, 16)

	ids := make(map[string]string, len(reports))
	for _, rep := range reports {
		t.Run(rep.Station, func(t *testing.T) {
			raw := rawEventFromReport(t, rep)

			out, err := transformer.Transform(context.Background(), raw)
			require.NoError(t, err)

			assert.Equal(t, rep.Station, out.Station)
			assert.Regexp(t, `^\d{6}Z$`, out.Time)
			assert.NotEmpty(t, out.Tokens)
			for _, tok := range out.Tokens {
				assert.True(t, knownKinds[tok.Kind], "unknown kind %q", tok.Kind)
				assert.NotEmpty(t, tok.Text, "empty rendering for %q", tok.Token)
				assert.NotContains(t, tok.Text, "translation missing")
			}
			for _, g := range out.Unparsed {
				assert.Regexp(t, unsupportedGroupRe, g, "group %q should have decoded", g)
			}

			again, err := transformer.Transform(context.Background(), raw)
			require.NoError(t, err)
			assert.Equal(t, out.ID, again.ID, "IDs must be deterministic")

			if prev, dup := ids[out.ID]; dup {
				t.Errorf("ID %s shared by %s and %s", out.ID, prev, rep.Station)
			}
			ids[out.ID] = rep.Station
		})
	}
}

func TestReportTransformer_MockReportsAllKinds(t *testing.T) {
	transformer := pipeline.NewTransformer(newDecoder(t), observability.NewMetricsForTesting(), discardLogger())

	seen := make(map[string]bool)
	for _, rep := range readMockReports(t) {
		out, err := transformer.Transform(context.Background(), rawEventFromReport(t, rep))
		require.NoError(t, err)
		for _, tok := range out.Tokens {
			seen[tok.Kind] = true
		}
	}
	assert.Equal(t, knownKinds, seen)
}

// --- helpers ---

func newDecoder(t *testing.T) *domain.Decoder {
	t.Helper()
	catalog, err := i18n.DefaultCatalog()
	require.NoError(t, err)
	loc, err := catalog.Locale(i18n.DefaultLocale)
	require.NoError(t, err)

	d, err := domain.NewDecoder(metar.DefaultOptions(), i18n.NewLocalizer(loc), loc.Name())
	require.NoError(t, err)
	return d
}

func readMockReports(t *testing.T) []domain.RawReport {
	t.Helper()

	path := filepath.Join("..", "..", "data", "mock", "metar_reports_raw.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var reports []domain.RawReport
	require.NoError(t, json.Unmarshal(data, &reports))
	return reports
}

func rawEventFromReport(t *testing.T, rep domain.RawReport) domain.RawEvent {
	t.Helper()
	payload, err := json.Marshal(rep)
	require.NoError(t, err)

	return domain.RawEvent{
		Key:   []byte(rep.Station),
		Value: payload,
		Topic: "raw-metar-reports",
	}
}
