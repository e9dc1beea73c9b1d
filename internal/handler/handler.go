package handler

import (
	stderrors "errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"exercisetracker/internal/errors"
)

// Responder turns service errors into responses.
type Responder struct {
	// SoftNotFound reports a missing user with 200 instead of 404. The body is
	// {"error": "User not found"} either way.
	SoftNotFound bool
}

// Error writes the response for err.
func (r Responder) Error(c echo.Context, err error) error {
	if stderrors.Is(err, errors.ErrUserNotFound) {
		status := http.StatusNotFound
		if r.SoftNotFound {
			status = http.StatusOK
		}
		return c.JSON(status, errors.NotFoundResponse())
	}
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// FlexInt accepts a JSON number, a numeric JSON string or a form value.
// Empty input is 0 and fractions are truncated.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	return f.UnmarshalParam(s)
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (f *FlexInt) UnmarshalParam(param string) error {
	s := strings.TrimSpace(param)
	if s == "" {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v >= math.MaxInt+1 || v < math.MinInt {
		return fmt.Errorf("%w: %q", errors.ErrInvalidDuration, param)
	}
	*f = FlexInt(int(v))
	return nil
}

// parseLimit reads the limit query value. Anything not a positive integer means no limit.
func parseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func bindError(err error) error {
	if stderrors.Is(err, errors.ErrInvalidDuration) {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid duration",
			Code:  "INVALID_DURATION",
		})
	}
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}
