package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetStats returns the in-process resolution counters.
// GET /api/v1/stats
func (s *APIV1Service) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Metrics.Snapshot())
}
