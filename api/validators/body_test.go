package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	pkgerrors "github.com/stockyard-hq/stockyard-backend/pkg/errors"
)

type samplePayload struct {
	Title string `json:"title" validate:"required,max=10"`
	Qty   int    `json:"qty" validate:"min=0"`
	Email string `json:"email" validate:"omitempty,email"`
}

func decode(t *testing.T, body string) (samplePayload, error) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	return payload, err
}

func TestDecodeJSONBodyValid(t *testing.T) {
	payload, err := decode(t, `{"title":"Drill","qty":3}`)
	require.NoError(t, err)
	require.Equal(t, "Drill", payload.Title)
	require.Equal(t, 3, payload.Qty)
}

func TestDecodeJSONBodyMalformed(t *testing.T) {
	_, err := decode(t, `{"title":`)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestDecodeJSONBodyUnknownField(t *testing.T) {
	_, err := decode(t, `{"title":"Drill","bogus":true}`)
	require.Error(t, err)
}

func TestDecodeJSONBodyFieldErrorsUseJSONNames(t *testing.T) {
	_, err := decode(t, `{"qty":-1,"email":"nope"}`)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	require.Contains(t, details, "title")
	require.Contains(t, details, "qty")
	require.Contains(t, details, "email")
	require.Equal(t, "is required", details["title"])
	require.Equal(t, "must be at least 0", details["qty"])
	require.Equal(t, "must be a valid email", details["email"])
}
