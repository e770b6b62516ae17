// Command metar decodes a METAR report, or individual groups, and prints one
// line per decoded token.
//
// Usage:
//
//	go run ./cmd/metar "METAR KJFK 121651Z 27015G25KT 10SM FEW045 22/12 A2992"
//	go run ./cmd/metar -locale fr -distance-units kilometers -tokens 9999 VRB03KT
//
// Defaults for every flag come from the same environment variables the
// decoder service reads (DISTANCE_UNITS, LOCALE and so on).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/metar-decoder/internal/config"
	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults, err := config.LoadFormat()
	if err != nil {
		fmt.Fprintf(stderr, "metar: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("metar", flag.ContinueOnError)
	fs.SetOutput(stderr)
	locale := fs.String("locale", defaults.Locale, "catalog locale used for rendering")
	distanceUnits := fs.String("distance-units", defaults.DistanceUnits, "meters, miles or kilometers")
	directionUnits := fs.String("direction-units", defaults.DirectionUnits, "degrees or compass")
	abbreviated := fs.Bool("abbreviated", defaults.DistanceAbbreviated, "abbreviate distance units")
	decimals := fs.Int("decimals", defaults.DistanceDecimals, "fraction digits for distances")
	tokensOnly := fs.Bool("tokens", false, "decode each argument as an isolated group")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: metar [flags] <report|token...>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	opts := defaults
	opts.Locale = *locale
	opts.DistanceUnits = *distanceUnits
	opts.DirectionUnits = *directionUnits
	opts.DistanceAbbreviated = *abbreviated
	opts.DistanceDecimals = *decimals

	decoder, err := newDecoder(opts)
	if err != nil {
		fmt.Fprintf(stderr, "metar: %v\n", err)
		return exitUsage
	}

	if *tokensOnly {
		return printTokens(decoder, fs.Args(), stdout, stderr)
	}

	report, err := decoder.DecodeReport("", strings.Join(fs.Args(), " "))
	if err != nil {
		fmt.Fprintf(stderr, "metar: %v\n", err)
		return exitError
	}
	if report.Station != "" {
		fmt.Fprintf(stdout, "station\t%s\n", report.Station)
	}
	if report.Time != "" {
		fmt.Fprintf(stdout, "time\t%s\n", report.Time)
	}
	for _, tok := range report.Tokens {
		printToken(stdout, tok)
	}
	for _, g := range report.Unparsed {
		fmt.Fprintf(stdout, "unparsed\t%s\n", g)
	}
	return exitOK
}

func newDecoder(f config.Format) (*domain.Decoder, error) {
	catalog, err := i18n.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	loc, err := catalog.Locale(f.Locale)
	if err != nil {
		return nil, err
	}
	return domain.NewDecoder(f.Options(), i18n.NewLocalizer(loc), loc.Name())
}

func printTokens(decoder *domain.Decoder, groups []string, stdout, stderr io.Writer) int {
	code := exitOK
	for _, g := range groups {
		decoded, err := decoder.DecodeToken(g)
		if err != nil {
			fmt.Fprintf(stderr, "metar: %s: %v\n", g, err)
			code = exitError
			continue
		}
		if decoded == nil {
			fmt.Fprintf(stdout, "unparsed\t%s\n", g)
			continue
		}
		for _, tok := range decoded {
			printToken(stdout, tok)
		}
	}
	return code
}

func printToken(w io.Writer, tok domain.DecodedToken) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", tok.Kind, tok.Token, tok.Text)
}
