package i18n

// PluralCategory selects the inflection of a translated unit label.
type PluralCategory string

const (
	Zero  PluralCategory = "zero"
	One   PluralCategory = "one"
	Other PluralCategory = "other"
)

// CategoryFor buckets a magnitude: exactly 0 is Zero, exactly 1 is One and
// everything else is Other. Locale plural rules are deliberately not applied;
// the locale resources are written against this partition.
func CategoryFor(f float64) PluralCategory {
	switch f {
	case 0:
		return Zero
	case 1:
		return One
	default:
		return Other
	}
}
