package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("Trade", nil).Status)
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("who", nil).Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("no", nil).Status)
	assert.Equal(t, http.StatusConflict, Conflict("state").Status)
	assert.Equal(t, http.StatusInternalServerError, Internal("boom", nil).Status)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Status)
}

func TestIsMatchesCode(t *testing.T) {
	err := Conflict("Trade is not pending")

	assert.True(t, Is(err, "CONFLICT"))
	assert.False(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(fmt.Errorf("plain"), "CONFLICT"))
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("fetching trade: %w", NotFound("Trade", nil))

	assert.True(t, Is(wrapped, "NOT_FOUND"))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := Internal("storage failed", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "INTERNAL_ERROR")
}
