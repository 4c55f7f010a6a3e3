package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassesThroughDomainErrors(t *testing.T) {
	err := NewForbidden("forbidden")
	de := ToDomainError(err)
	assert.Equal(t, "FORBIDDEN", de.Code)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorMapsFiberErrors(t *testing.T) {
	de := ToDomainError(fiber.ErrMethodNotAllowed)
	assert.Equal(t, "METHOD_NOT_ALLOWED", de.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, de.HTTPStatus)
}

func TestToDomainErrorHidesInternalDetail(t *testing.T) {
	cause := errors.New("connection refused")
	de := ToDomainError(cause)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "internal server error", de.Message)
	assert.ErrorIs(t, de, cause)
}
