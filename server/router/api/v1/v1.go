package v1

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/agendabot/internal/errors"
	"github.com/hrygo/agendabot/plugin/export"
	"github.com/hrygo/agendabot/plugin/ptime"
	"github.com/hrygo/agendabot/server/internal/observability"
	"github.com/hrygo/agendabot/server/middleware"
)

// TimezoneService is the part of the timezone resolver the API needs.
type TimezoneService interface {
	Resolve(userID, localeHint string) string
	SetPreference(ctx context.Context, userID, zone string) error
}

// APIV1Service serves the JSON API used by the messaging bots.
type APIV1Service struct {
	Events    ptime.EventService
	Timezones TimezoneService
	Exporter  *export.Exporter
	Metrics   *observability.Metrics
	Limiter   *middleware.RateLimiter
	Logger    *slog.Logger

	// Now is the reference clock for requests without "now".
	Now func() time.Time
}

// NewAPIV1Service wires the API. A nil logger uses slog.Default().
func NewAPIV1Service(events ptime.EventService, timezones TimezoneService, exporter *export.Exporter, limiter *middleware.RateLimiter, logger *slog.Logger) *APIV1Service {
	if logger == nil {
		logger = slog.Default()
	}
	if exporter == nil {
		exporter = export.NewExporter(export.DefaultDuration)
	}
	return &APIV1Service{
		Events:    events,
		Timezones: timezones,
		Exporter:  exporter,
		Metrics:   observability.NewMetrics(),
		Limiter:   limiter,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Register mounts the routes on the echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	// Echo reads ':' as a path parameter, so custom methods such as
	// "events:resolve" share one route.
	g.POST("/:method", s.dispatchMethod)
	g.GET("/users/:id/timezone", s.GetUserTimezone)
	g.PUT("/users/:id/timezone", s.SetUserTimezone)
	g.GET("/stats", s.GetStats)
}

func (s *APIV1Service) dispatchMethod(c echo.Context) error {
	switch c.Param("method") {
	case "events:resolve":
		return s.ResolveEvent(c)
	case "events:title":
		return s.ExtractTitle(c)
	case "events:ics":
		return s.ExportICS(c)
	default:
		return echo.ErrNotFound
	}
}

// begin starts the per-request bookkeeping shared by every handler.
func (s *APIV1Service) begin(c echo.Context, operation, userID string) *observability.RequestContext {
	rc := observability.NewRequestContextWithID(s.Logger,
		c.Request().Header.Get(echo.HeaderXRequestID), operation, userID)
	c.Response().Header().Set(echo.HeaderXRequestID, rc.RequestID)
	c.SetRequest(c.Request().WithContext(observability.WithRequestContext(c.Request().Context(), rc)))
	s.Metrics.RecordRequest(operation)
	return rc
}

// finish records the outcome and writes err, if any, as a JSON error.
func (s *APIV1Service) finish(c echo.Context, rc *observability.RequestContext, err error) error {
	s.Metrics.RecordDuration(rc.Operation, rc.Duration())
	if err == nil {
		rc.Info("request completed", slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
		return nil
	}

	code := apperrors.GetCodeFromError(err, "INTERNAL")
	s.Metrics.RecordFailure(rc.Operation, string(code))
	attrs := []slog.Attr{
		slog.String(observability.LogFieldErrorCode, string(code)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	}
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		rc.Error("request failed", err, attrs...)
	} else {
		rc.Warn("request rejected", append(attrs, slog.String("error", err.Error()))...)
	}
	return c.JSON(status, errorResponse{Code: string(code), Message: publicMessage(err)})
}

// allow applies the per-user rate limit. Anonymous callers share a bucket
// per client address.
func (s *APIV1Service) allow(c echo.Context, userID string) error {
	if s.Limiter == nil {
		return nil
	}
	key := userID
	if key == "" {
		key = "ip:" + c.RealIP()
	}
	if !s.Limiter.Allow(key) {
		return apperrors.RateLimitExceeded("too many requests")
	}
	return nil
}
