// Command validate performs data integrity checks across the METAR mock
// fixtures: the plain-text report list, the raw JSON fixture consumed by the
// pipeline tests, and (optionally) a decoded fixture written by genmock. It
// verifies report counts, station identifiers, decoder coverage, ID
// determinism, and decoded-output parity.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -reports-txt data/mock/metar_reports.txt \
//	  -raw-json data/mock/metar_reports_raw.json \
//	  -decoded-json data/mock/metar_reports_decoded.json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/metar"
)

// fixtureTime matches genmock so decoded fixtures compare equal.
var fixtureTime = time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)

var stationRe = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)

// unsupportedGroupRe lists groups the decoder is expected to leave unparsed.
var unsupportedGroupRe = regexp.MustCompile(`^(A\d{4}|Q\d{4}|CAVOK|NOSIG|TEMPO|BECMG|NSC|\d{3}V\d{3})$`)

var knownKinds = map[string]bool{
	domain.KindWind:        true,
	domain.KindVisibility:  true,
	domain.KindWeather:     true,
	domain.KindSky:         true,
	domain.KindTemperature: true,
	domain.KindDewPoint:    true,
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	reportsTxt := flag.String("reports-txt", "", "path to plain-text METAR reports")
	rawJSON := flag.String("raw-json", "", "path to raw report JSON fixture")
	decodedJSON := flag.String("decoded-json", "", "path to decoded report JSON fixture (optional)")
	flag.Parse()

	if *reportsTxt == "" || *rawJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*reportsTxt, *rawJSON, *decodedJSON); code != 0 {
		os.Exit(code)
	}
}

func run(reportsTxtPath, rawJSONPath, decodedJSONPath string) int {
	// Set a fixed clock matching genmock for ProcessedAt reproducibility.
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	// ── Load all data sources ──
	fmt.Println("=== METAR Fixture Integrity Validation ===")
	fmt.Println()

	lines, err := loadLines(reportsTxtPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load reports: %v\n", err)
		return 1
	}

	raw, err := loadJSON[domain.RawReport](rawJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}

	var decoded []domain.DecodedReport
	if decodedJSONPath != "" {
		decoded, err = loadJSON[domain.DecodedReport](decodedJSONPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load decoded JSON: %v\n", err)
			return 1
		}
	}

	decoder, err := newDecoder()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: build decoder: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateSourceParity(lines, raw),
		validateRawSchema(raw),
		validateDecoding(decoder, raw),
		validateIDs(decoder, raw),
	}
	if decodedJSONPath != "" {
		phases = append(phases, validateDecodedParity(decoder, raw, decoded))
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Reports: %d text, %d raw JSON, %d decoded JSON\n", len(lines), len(raw), len(decoded))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newDecoder() (*domain.Decoder, error) {
	catalog, err := i18n.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	loc, err := catalog.Locale(i18n.DefaultLocale)
	if err != nil {
		return nil, err
	}
	return domain.NewDecoder(metar.DefaultOptions(), i18n.NewLocalizer(loc), loc.Name())
}

// ── Phase 1: text list vs raw JSON ──

func validateSourceParity(lines []string, raw []domain.RawReport) *phase {
	p := &phase{name: "Source parity (text ↔ raw JSON)"}

	if len(lines) != len(raw) {
		p.errorf("count mismatch: %d text lines vs %d raw JSON reports", len(lines), len(raw))
	}
	for i := range min(len(lines), len(raw)) {
		if lines[i] != raw[i].Body {
			p.errorf("report %d: body %q does not match text line %q", i, raw[i].Body, lines[i])
		}
	}
	return p
}

// ── Phase 2: raw fixture schema ──

func validateRawSchema(raw []domain.RawReport) *phase {
	p := &phase{name: "Raw fixture schema"}

	seen := make(map[string]int, len(raw))
	for i, r := range raw {
		if !stationRe.MatchString(r.Station) {
			p.errorf("report %d: invalid station %q", i, r.Station)
		}
		if strings.TrimSpace(r.Body) == "" {
			p.errorf("report %d (%s): empty body", i, r.Station)
			continue
		}
		if !containsField(r.Body, r.Station) {
			p.errorf("report %d: station %s does not appear in body", i, r.Station)
		}
		if prev, dup := seen[r.Station]; dup {
			p.errorf("report %d: station %s already used by report %d", i, r.Station, prev)
		}
		seen[r.Station] = i
	}
	return p
}

func containsField(body, field string) bool {
	for _, f := range strings.Fields(body) {
		if f == field {
			return true
		}
	}
	return false
}

// ── Phase 3: decoder coverage ──

func validateDecoding(decoder *domain.Decoder, raw []domain.RawReport) *phase {
	p := &phase{name: "Decoder coverage"}

	kinds := map[string]int{}
	for i, r := range raw {
		report, err := decoder.DecodeReport("", r.Body)
		if err != nil {
			p.errorf("report %d (%s): decode: %v", i, r.Station, err)
			continue
		}
		if report.Station != r.Station {
			p.errorf("report %d: header station %q, fixture station %q", i, report.Station, r.Station)
		}
		if report.Time == "" {
			p.errorf("report %d (%s): no observation time", i, r.Station)
		}
		if want := strings.Join(strings.Fields(r.Body), " "); report.Raw != want {
			p.errorf("report %d (%s): raw %q, want %q", i, r.Station, report.Raw, want)
		}
		if len(report.Tokens) == 0 {
			p.errorf("report %d (%s): no decoded tokens", i, r.Station)
		}
		for _, tok := range report.Tokens {
			kinds[tok.Kind]++
			checkToken(p, i, r.Station, tok)
		}
		for _, g := range report.Unparsed {
			if !unsupportedGroupRe.MatchString(g) {
				p.errorf("report %d (%s): unexpected unparsed group %q", i, r.Station, g)
			}
		}
	}

	for kind := range knownKinds {
		if kinds[kind] == 0 {
			p.errorf("no %s tokens across the fixture", kind)
		}
	}
	return p
}

func checkToken(p *phase, i int, station string, tok domain.DecodedToken) {
	if !knownKinds[tok.Kind] {
		p.errorf("report %d (%s): token %q has unknown kind %q", i, station, tok.Token, tok.Kind)
	}
	if tok.Text == "" {
		p.errorf("report %d (%s): token %q rendered empty", i, station, tok.Token)
	}
	if strings.Contains(tok.Text, "translation missing") {
		p.errorf("report %d (%s): token %q: %s", i, station, tok.Token, tok.Text)
	}
}

// ── Phase 4: IDs ──

func validateIDs(decoder *domain.Decoder, raw []domain.RawReport) *phase {
	p := &phase{name: "ID determinism and uniqueness"}

	ids := make(map[string]string, len(raw))
	for i, r := range raw {
		first, err := decoder.DecodeReport(r.Station, r.Body)
		if err != nil {
			p.errorf("report %d (%s): decode: %v", i, r.Station, err)
			continue
		}
		second, err := decoder.DecodeReport(r.Station, r.Body)
		if err != nil {
			p.errorf("report %d (%s): decode: %v", i, r.Station, err)
			continue
		}
		if first.ID != second.ID {
			p.errorf("report %d (%s): ID not deterministic: %s vs %s", i, r.Station, first.ID, second.ID)
		}
		if !strings.HasPrefix(first.ID, strings.ToLower(r.Station)+"-") {
			p.errorf("report %d (%s): ID %s lacks station prefix", i, r.Station, first.ID)
		}
		if other, dup := ids[first.ID]; dup {
			p.errorf("report %d (%s): ID %s collides with %s", i, r.Station, first.ID, other)
		}
		ids[first.ID] = r.Station
	}
	return p
}

// ── Phase 5: decoded fixture parity ──

func validateDecodedParity(decoder *domain.Decoder, raw []domain.RawReport, decoded []domain.DecodedReport) *phase {
	p := &phase{name: "Decoded fixture parity"}

	if len(raw) != len(decoded) {
		p.errorf("count mismatch: %d raw vs %d decoded", len(raw), len(decoded))
	}
	for i := range min(len(raw), len(decoded)) {
		got, err := decoder.DecodeReport("", raw[i].Body)
		if err != nil {
			p.errorf("report %d (%s): decode: %v", i, raw[i].Station, err)
			continue
		}
		// ProcessedAt round-trips through JSON; compare instants.
		if !got.ProcessedAt.Equal(decoded[i].ProcessedAt) {
			p.errorf("report %d (%s): processed_at %s, fixture %s", i, raw[i].Station,
				got.ProcessedAt.Format(time.RFC3339), decoded[i].ProcessedAt.Format(time.RFC3339))
		}
		got.ProcessedAt = decoded[i].ProcessedAt
		if diff := cmp.Diff(decoded[i], got); diff != "" {
			p.errorf("report %d (%s): decoded output drifted (-fixture +decoder):\n%s", i, raw[i].Station, diff)
		}
	}
	return p
}
