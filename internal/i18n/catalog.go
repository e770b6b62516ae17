package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var embeddedLocales embed.FS

// DefaultLocale is preferred when a requested locale has no match.
const DefaultLocale = "en"

// ErrUnknownLocale reports a locale the catalog has no resources for.
var ErrUnknownLocale = errors.New("unknown locale")

// Locale is the translation table of one locale, flattened to dotted keys.
// It implements Translator.
type Locale struct {
	name    string
	entries map[string]string
}

// Name returns the locale tag, e.g. "en".
func (l *Locale) Name() string { return l.name }

// Translate returns the entry for key, or a "translation missing" marker.
func (l *Locale) Translate(key string) string {
	if v, ok := l.entries[key]; ok {
		return v
	}
	return l.missing(key)
}

// TranslatePlural returns the entry for key inflected for category. A missing
// zero or one form falls back to the other form; a key stored as a plain
// string is returned as-is.
func (l *Locale) TranslatePlural(key string, category PluralCategory) string {
	if v, ok := l.entries[key+"."+string(category)]; ok {
		return v
	}
	if category != Other {
		if v, ok := l.entries[key+"."+string(Other)]; ok {
			return v
		}
	}
	if v, ok := l.entries[key]; ok {
		return v
	}
	return l.missing(key)
}

func (l *Locale) missing(key string) string {
	return "translation missing: " + l.name + "." + key
}

// Catalog holds every loaded locale.
type Catalog struct {
	locales map[string]*Locale
	names   []string
	matcher language.Matcher
}

// DefaultCatalog loads the locale resources compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return LoadCatalog(sub)
}

// LoadCatalog reads every *.yml file at the root of fsys. Each file holds
// one or more locales keyed by tag at the top level:
//
//	en:
//	  numbers:
//	    decimal_separator: "."
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return nil, fmt.Errorf("list locale files: %w", err)
	}

	c := &Catalog{locales: make(map[string]*Locale)}
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", name, err)
		}
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", path.Base(name), err)
		}
		for tag, tree := range doc {
			loc, ok := c.locales[tag]
			if !ok {
				loc = &Locale{name: tag, entries: make(map[string]string)}
				c.locales[tag] = loc
			}
			flatten("", tree, loc.entries)
		}
	}
	if len(c.locales) == 0 {
		return nil, errors.New("no locales found")
	}

	c.index()
	return c, nil
}

// index orders the locale names with DefaultLocale first so the matcher falls
// back to it.
func (c *Catalog) index() {
	c.names = make([]string, 0, len(c.locales))
	for name := range c.locales {
		c.names = append(c.names, name)
	}
	sort.Slice(c.names, func(i, j int) bool {
		if c.names[i] == DefaultLocale || c.names[j] == DefaultLocale {
			return c.names[i] == DefaultLocale
		}
		return c.names[i] < c.names[j]
	})

	tags := make([]language.Tag, len(c.names))
	for i, name := range c.names {
		tags[i] = language.Make(name)
	}
	c.matcher = language.NewMatcher(tags)
}

// Names lists the loaded locales, DefaultLocale first.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Locale returns the locale best matching name ("en", "en-GB", "fr_CA").
func (c *Catalog) Locale(name string) (*Locale, error) {
	if loc, ok := c.locales[name]; ok {
		return loc, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", name, ErrUnknownLocale)
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("locale %q: %w", name, ErrUnknownLocale)
	}
	return c.locales[c.names[idx]], nil
}

// Negotiate picks a locale for an Accept-Language header value, falling back
// to the first loaded locale.
func (c *Catalog) Negotiate(acceptLanguage string) *Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.locales[c.names[0]]
	}
	_, idx, _ := c.matcher.Match(tags...)
	return c.locales[c.names[idx]]
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			flatten(join(prefix, k), child, out)
		}
	case nil:
		out[prefix] = ""
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
