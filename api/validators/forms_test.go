package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/angelmondragon/chemstock/pkg/enums"
	pkgerrors "github.com/angelmondragon/chemstock/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseAddProductFormTrimsFields(t *testing.T) {
	form, err := ParseAddProductForm(formRequest(url.Values{
		"name": {"  Toluene "},
		"cas":  {" 108-88-3 "},
		"unit": {" Litre "},
	}))
	require.NoError(t, err)
	assert.Equal(t, "Toluene", form.Name)
	assert.Equal(t, "108-88-3", form.CASNumber)
	assert.Equal(t, "Litre", form.Unit)
}

func TestParseAddProductFormRejectsBlankFields(t *testing.T) {
	_, err := ParseAddProductForm(formRequest(url.Values{
		"name": {"Toluene"},
		"cas":  {"   "},
		"unit": {"Litre"},
	}))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseStockFormParsesActionAndQuantity(t *testing.T) {
	form, err := ParseStockForm(formRequest(url.Values{
		"action":   {"OUT"},
		"quantity": {"2.5"},
	}))
	require.NoError(t, err)
	assert.Equal(t, enums.MovementActionOut, form.Action)
	assert.Equal(t, 2.5, form.Quantity)
}

func TestParseStockFormRejectsGarbageQuantity(t *testing.T) {
	for _, raw := range []string{"", "lots", "NaN", "+Inf"} {
		_, err := ParseStockForm(formRequest(url.Values{
			"action":   {"IN"},
			"quantity": {raw},
		}))
		require.Error(t, err, "quantity %q", raw)
		assert.Equal(t, "Quantity must be positive!", pkgerrors.As(err).Message())
	}
}

func TestParseStockFormRejectsUnknownAction(t *testing.T) {
	_, err := ParseStockForm(formRequest(url.Values{
		"action":   {"TRANSFER"},
		"quantity": {"1"},
	}))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestParseLoginFormKeepsPasswordVerbatim(t *testing.T) {
	form, err := ParseLoginForm(formRequest(url.Values{
		"username": {" admin "},
		"password": {" admin123 "},
	}))
	require.NoError(t, err)
	assert.Equal(t, "admin", form.Username)
	assert.Equal(t, " admin123 ", form.Password)
}
