package i18n

import (
	"fmt"
	"strings"
)

// Translator resolves dotted keys such as "units.distance.meters.full" for a
// single locale.
type Translator interface {
	Translate(key string) string
	TranslatePlural(key string, category PluralCategory) string
}

// Localizer renders numbers and unit labels for one locale.
type Localizer struct {
	tr Translator
}

// NewLocalizer wraps a Translator.
func NewLocalizer(tr Translator) *Localizer {
	return &Localizer{tr: tr}
}

// Translate looks up key.
func (l *Localizer) Translate(key string) string {
	return l.tr.Translate(key)
}

// TranslateFloatCount looks up key inflected for the plural category of f.
func (l *Localizer) TranslateFloatCount(key string, f float64) string {
	return l.tr.TranslatePlural(key, CategoryFor(f))
}

// LocalizeFloat formats f with a printf-style format ("%f" when empty), groups
// the integer digits in threes with the locale's thousands separator and
// joins the fraction with the locale's decimal separator.
func (l *Localizer) LocalizeFloat(f float64, format string) string {
	if format == "" {
		format = "%f"
	}
	s := fmt.Sprintf(format, f)
	integers, decimals, hasDecimals := strings.Cut(s, ".")

	integers = groupThousands(integers, l.tr.Translate("numbers.thousands_separator"))
	if !hasDecimals {
		return integers
	}
	return integers + l.tr.Translate("numbers.decimal_separator") + decimals
}

// groupThousands inserts sep between every three digits of a run of digits,
// leaving any sign or non-digit prefix untouched.
func groupThousands(s, sep string) string {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return s
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	digits := s[start:end]
	if len(digits) <= 3 || sep == "" {
		return s
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return s[:start] + b.String() + s[end:]
}
