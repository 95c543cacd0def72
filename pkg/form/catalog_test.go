package form_test

import (
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Translate(t *testing.T) {
	catalog, err := form.ParseCatalog([]byte(`
releaseDate:
  empty: You must enter a release date
  inPast: The release date must be in the future
`))
	require.NoError(t, err)

	errs, err := catalog.Translate([]form.InvalidParam{
		{PropertyName: "$.releaseDate", ErrorType: "inPast"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"releaseDate": "The release date must be in the future"}, errs.Map())

	_, err = catalog.Translate([]form.InvalidParam{{PropertyName: "$.releaseDate", ErrorType: "tooLate"}})

	var catalogErr *form.CatalogError
	require.ErrorAs(t, err, &catalogErr)
	assert.Equal(t, "releaseDate", catalogErr.Field)
	assert.Equal(t, "tooLate", catalogErr.ErrorType)

	_, err = catalog.Translate([]form.InvalidParam{{PropertyName: "$.unknown", ErrorType: "empty"}})
	assert.ErrorAs(t, err, &catalogErr)
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := form.DefaultCatalog()
	require.NoError(t, err)

	message, err := catalog.Message("sentenceType", "empty")
	require.NoError(t, err)
	assert.Equal(t, "You must choose a sentence type", message)
}

func TestParseCatalog_Invalid(t *testing.T) {
	_, err := form.ParseCatalog([]byte("releaseDate: [not, a, map]"))
	assert.Error(t, err)
}
