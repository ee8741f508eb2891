package pkg

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ToHTTPError(t *testing.T) {
	simple := NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	assert.Equal(t, HTTPError{Code: "INVOICE_NOT_FOUND", Message: "Invoice not found"}, simple.ToHTTPError())

	internal := NewDomainError("INTERNAL_ERROR", "An internal error occurred", errors.New("dynamodb down"), http.StatusInternalServerError)
	assert.Empty(t, internal.ToHTTPError().Details)
	assert.ErrorContains(t, internal, "dynamodb down")

	conflict := NewDomainErrorSimple("INVALID_TRANSITION", "Invalid status transition", http.StatusConflict).
		WithDetails("BOOKED -> COMPLETED")
	assert.Equal(t, "BOOKED -> COMPLETED", conflict.ToHTTPError().Details)
	assert.Empty(t, simple.ToHTTPError().Details)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewDomainError("X", "x", cause, http.StatusInternalServerError)
	assert.True(t, errors.Is(err, cause))
}
