package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

// TimezoneBody is the request and response body of the timezone endpoints.
type TimezoneBody struct {
	Timezone string `json:"timezone"`
}

// GetUserTimezone returns the zone the user resolves to.
// GET /api/v1/users/:id/timezone
func (s *APIV1Service) GetUserTimezone(c echo.Context) error {
	userID := c.Param("id")
	rc := s.begin(c, "get_timezone", userID)

	if err := s.allow(c, userID); err != nil {
		return s.finish(c, rc, err)
	}
	zone := s.Timezones.Resolve(userID, c.QueryParam("locale"))
	if err := s.finish(c, rc, nil); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TimezoneBody{Timezone: zone})
}

// SetUserTimezone stores an explicit zone for the user.
// PUT /api/v1/users/:id/timezone
func (s *APIV1Service) SetUserTimezone(c echo.Context) error {
	userID := c.Param("id")
	rc := s.begin(c, "set_timezone", userID)

	var body TimezoneBody
	if err := c.Bind(&body); err != nil {
		return s.finish(c, rc, apperrors.InvalidArgument("invalid request body"))
	}
	if err := s.allow(c, userID); err != nil {
		return s.finish(c, rc, err)
	}
	if err := s.Timezones.SetPreference(c.Request().Context(), userID, body.Timezone); err != nil {
		return s.finish(c, rc, err)
	}
	if err := s.finish(c, rc, nil); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, body)
}
