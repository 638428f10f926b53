package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErrorMessage(t *testing.T) {
	err := ErrNotFound("User profile not found")
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.Equal(t, "Not Found: User profile not found", err.Error())

	bare := New(http.StatusTeapot, "Teapot", "")
	assert.Equal(t, "Teapot", bare.Error())
}

func TestWithRequestID(t *testing.T) {
	err := ErrBadRequest("User ID is required").WithRequestID("abc")
	assert.Equal(t, "abc", err.RequestID)
	assert.Equal(t, http.StatusBadRequest, err.Code)
}
