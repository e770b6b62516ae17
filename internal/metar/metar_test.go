package metar

import (
	"testing"

	"github.com/couchcryptid/metar-decoder/internal/i18n"
	"github.com/stretchr/testify/require"
)

// englishLocalizer renders with the embedded "en" resources.
func englishLocalizer(t *testing.T) Localizer {
	t.Helper()
	c, err := i18n.DefaultCatalog()
	require.NoError(t, err)
	en, err := c.Locale("en")
	require.NoError(t, err)
	return i18n.NewLocalizer(en)
}
