package cache

import (
	"fmt"

	"github.com/couchcryptid/metar-decoder/internal/domain"
	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/couchcryptid/metar-decoder/internal/metar"
	"github.com/couchcryptid/metar-decoder/internal/observability"
)

// DecoderSet holds one cached decoder per catalog locale. Decoders share the
// formatting options; each has its own cache since renderings differ by locale.
type DecoderSet struct {
	catalog  *i18n.Catalog
	decoders map[string]*domain.Decoder
	fallback *domain.Decoder
}

// NewDecoderSet builds decoders for every locale in catalog. defaultLocale
// selects the decoder used when a request names no locale.
func NewDecoderSet(catalog *i18n.Catalog, opts metar.Options, defaultLocale string, cacheSize int, metrics *observability.Metrics) (*DecoderSet, error) {
	s := &DecoderSet{catalog: catalog, decoders: make(map[string]*domain.Decoder)}
	for _, name := range catalog.Names() {
		loc, err := catalog.Locale(name)
		if err != nil {
			return nil, err
		}
		d, err := domain.NewDecoder(opts, i18n.NewLocalizer(loc), loc.Name())
		if err != nil {
			return nil, err
		}
		s.decoders[loc.Name()] = d.WithTokenDecoder(NewCachedDecoder(d, cacheSize, metrics))
	}

	def, err := s.Locale(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("default locale: %w", err)
	}
	s.fallback = def
	return s, nil
}

// Default returns the decoder for the configured default locale.
func (s *DecoderSet) Default() *domain.Decoder { return s.fallback }

// Locale returns the decoder for the catalog locale best matching name.
func (s *DecoderSet) Locale(name string) (*domain.Decoder, error) {
	loc, err := s.catalog.Locale(name)
	if err != nil {
		return nil, err
	}
	return s.decoders[loc.Name()], nil
}

// Negotiate returns the decoder for an Accept-Language header, or the
// default decoder when the header is empty.
func (s *DecoderSet) Negotiate(acceptLanguage string) *domain.Decoder {
	if acceptLanguage == "" {
		return s.fallback
	}
	return s.decoders[s.catalog.Negotiate(acceptLanguage).Name()]
}
