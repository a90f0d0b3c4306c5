package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/video-rental-store/internal/repository"
	"github.com/iliyamo/video-rental-store/internal/service"
)

// getAccountID extracts the account id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims come back as float64, so a
// type switch covers the representations we may encounter.
func getAccountID(c echo.Context) (uint64, error) {
	v := c.Get("account_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid account_id in context")
}

// pathID parses a positive numeric path parameter. The services repeat
// the positivity check, but parsing here keeps garbage out of the logs.
func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// writeServiceError maps a service/repository error onto the uniform
// JSON error body: validation -> 400, not found -> 404, forbidden ->
// 403, conflicting state -> 409, anything else -> 500 with a sanitized
// message.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case service.IsNotFound(err):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict),
		errors.Is(err, repository.ErrNoCopyAvailable),
		errors.Is(err, repository.ErrAlreadyReturned):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
