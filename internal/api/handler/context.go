package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hrcore/employee-service/internal/core/domain"
)

// HeaderIdempotencyKey lets clients retry creates without duplicating records.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// pathID parses the named path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}

// idempotencyKey returns the trimmed Idempotency-Key header, or "" when absent.
func idempotencyKey(c echo.Context) (string, error) {
	key := strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key is too long")
	}
	return key, nil
}

// normalizer is implemented by requests whose fields are trimmed before the
// length rules apply.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the JSON body into req, normalizes it and runs the
// struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
