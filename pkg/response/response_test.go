package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "skillbarter/pkg/errors"
)

func record(t *testing.T, fn func(c echo.Context) error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, fn(c))
	return rec
}

func TestSuccessEnvelope(t *testing.T) {
	rec := record(t, func(c echo.Context) error {
		return Success(c, map[string]string{"hello": "world"})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), `"hello":"world"`)
}

func TestErrorMapsAppError(t *testing.T) {
	rec := record(t, func(c echo.Context) error {
		return Error(c, apperrors.Conflict("Trade is not pending"))
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"CONFLICT"`)
	assert.Contains(t, rec.Body.String(), "Trade is not pending")
}

func TestErrorHidesUnexpectedDetails(t *testing.T) {
	rec := record(t, func(c echo.Context) error {
		return Error(c, assert.AnError)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
