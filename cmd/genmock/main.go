// Command genmock reads plain-text METAR reports (one per line) and generates
// the JSON fixtures used by the pipeline and integration test suites. It runs
// every report through the real domain decoder so the decoded fixture matches
// pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -in data/mock/metar_reports.txt \
//	  -raw-out data/mock/metar_reports_raw.json \
//	  -decoded-out data/mock/metar_reports_decoded.json
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/metar"
)

// fixtureTime is the ProcessedAt stamped on every decoded fixture entry.
var fixtureTime = time.Date(2024, time.March, 12, 18, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "data/mock/metar_reports.txt", "plain-text METAR reports, one per line")
	rawOut := flag.String("raw-out", "", "output path for the raw report JSON fixture")
	decodedOut := flag.String("decoded-out", "", "output path for the decoded report JSON fixture (optional)")
	locale := flag.String("locale", i18n.DefaultLocale, "locale used for the decoded fixture")
	flag.Parse()

	if *rawOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -raw-out")
	}

	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	decoder, err := newDecoder(*locale)
	if err != nil {
		return err
	}

	lines, err := readLines(*in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *in, err)
	}

	raw := make([]domain.RawReport, 0, len(lines))
	decoded := make([]domain.DecodedReport, 0, len(lines))
	for i, line := range lines {
		report, err := decoder.DecodeReport("", line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if report.Station == "" {
			return fmt.Errorf("line %d: no station identifier in %q", i+1, line)
		}
		raw = append(raw, domain.RawReport{Station: report.Station, Body: line})
		decoded = append(decoded, report)
	}
	log.Printf("total: %d reports", len(raw))

	if err := writeJSON(*rawOut, raw); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s", *rawOut)

	if *decodedOut != "" {
		if err := writeJSON(*decodedOut, decoded); err != nil {
			return fmt.Errorf("writing decoded fixture: %w", err)
		}
		log.Printf("wrote decoded fixture: %s", *decodedOut)
	}

	printStats(decoded)
	return nil
}

func newDecoder(locale string) (*domain.Decoder, error) {
	catalog, err := i18n.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	loc, err := catalog.Locale(locale)
	if err != nil {
		return nil, err
	}
	return domain.NewDecoder(metar.DefaultOptions(), i18n.NewLocalizer(loc), loc.Name())
}

// readLines returns the non-blank lines of path, skipping # comments.
func readLines(path string) ([]string, error) {
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
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no reports")
	}
	return lines, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type kindCount struct {
	kind  string
	count int
}

// printStats prints the counts test assertions are written against.
func printStats(reports []domain.DecodedReport) {
	kinds := map[string]int{}
	unparsed := map[string]int{}
	var tokens int
	for i := range reports {
		for _, tok := range reports[i].Tokens {
			kinds[tok.Kind]++
			tokens++
		}
		for _, g := range reports[i].Unparsed {
			unparsed[g]++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Reports: %d\n", len(reports))
	fmt.Printf("Tokens: %d\n", tokens)

	kc := make([]kindCount, 0, len(kinds))
	for k, c := range kinds {
		kc = append(kc, kindCount{k, c})
	}
	sort.Slice(kc, func(i, j int) bool {
		if kc[i].count != kc[j].count {
			return kc[i].count > kc[j].count
		}
		return kc[i].kind < kc[j].kind
	})
	fmt.Printf("By kind:")
	for _, k := range kc {
		fmt.Printf(" %s=%d", k.kind, k.count)
	}
	fmt.Println()

	groups := make([]string, 0, len(unparsed))
	for g := range unparsed {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	fmt.Printf("Unparsed groups (%d): %s\n", len(groups), strings.Join(groups, " "))
}
