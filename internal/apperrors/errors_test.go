package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("Latitude must be between -90 and 90"), http.StatusBadRequest},
		{Authentication("Not authenticated"), http.StatusUnauthorized},
		{Permission("Permission denied"), http.StatusForbidden},
		{NotFound("Location not found"), http.StatusNotFound},
		{Conflict("You already have an active shift. Please end it first."), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.status, HTTPStatus(c.err))
	}
}

func TestHTTPStatusWrapped(t *testing.T) {
	err := fmt.Errorf("ending shift: %w", NotFound("No active shift found"))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindConflict))
}

func TestMessageSurfacesVerbatim(t *testing.T) {
	err := Conflict("You already have an active shift. Please end it first.")
	assert.Equal(t, "You already have an active shift. Please end it first.", err.Error())
}
