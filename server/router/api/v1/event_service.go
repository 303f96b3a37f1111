package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hrygo/agendabot/internal/errors"
	"github.com/hrygo/agendabot/plugin/export"
	"github.com/hrygo/agendabot/plugin/ptime"
)

// HeaderGoogleCalendarURL carries the "add to Google Calendar" link on ICS
// responses.
const HeaderGoogleCalendarURL = "X-Google-Calendar-Url"

// ResolveEventRequest is the body of events:resolve and events:ics.
type ResolveEventRequest struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
	Locale string `json:"locale,omitempty"`
	// Now is an optional RFC 3339 reference instant.
	Now string `json:"now,omitempty"`
}

// ResolveEventResponse is the body returned by events:resolve.
type ResolveEventResponse struct {
	Title         string   `json:"title"`
	ISO           string   `json:"iso"`
	Readable      string   `json:"readable"`
	Timezone      string   `json:"timezone"`
	TimeDefaulted bool     `json:"timeDefaulted"`
	Warnings      []string `json:"warnings,omitempty"`
	CalendarURL   string   `json:"calendarUrl"`
}

// TitleRequest is the body of events:title.
type TitleRequest struct {
	Text string `json:"text"`
}

// TitleResponse is the body returned by events:title.
type TitleResponse struct {
	Title string `json:"title"`
}

// ResolveEvent resolves the date, time and title of one message.
// POST /api/v1/events:resolve
func (s *APIV1Service) ResolveEvent(c echo.Context) error {
	var req ResolveEventRequest
	bindErr := c.Bind(&req)
	rc := s.begin(c, "resolve", req.UserID)

	ev, err := s.resolve(c, &req, bindErr)
	if err != nil {
		return s.finish(c, rc, err)
	}
	if err := s.finish(c, rc, nil); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ResolveEventResponse{
		Title:         ev.Title,
		ISO:           ev.DateTime.ISO,
		Readable:      ev.DateTime.Readable,
		Timezone:      ev.DateTime.Timezone,
		TimeDefaulted: ev.DateTime.TimeDefaulted,
		Warnings:      ev.DateTime.Warnings,
		CalendarURL:   export.GoogleCalendarURL(s.Exporter.Event(ev)),
	})
}

// ExportICS resolves one message and returns it as an iCalendar file.
// POST /api/v1/events:ics
func (s *APIV1Service) ExportICS(c echo.Context) error {
	var req ResolveEventRequest
	bindErr := c.Bind(&req)
	rc := s.begin(c, "ics", req.UserID)

	ev, err := s.resolve(c, &req, bindErr)
	if err != nil {
		return s.finish(c, rc, err)
	}
	if err := s.finish(c, rc, nil); err != nil {
		return err
	}

	entry := s.Exporter.Event(ev)
	c.Response().Header().Set(HeaderGoogleCalendarURL, export.GoogleCalendarURL(entry))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="evento.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(s.Exporter.ICS(entry)))
}

func (s *APIV1Service) resolve(c echo.Context, req *ResolveEventRequest, bindErr error) (*ptime.ResolvedEvent, error) {
	if bindErr != nil {
		return nil, apperrors.InvalidArgument("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperrors.InvalidArgument("text is required")
	}
	if err := s.allow(c, req.UserID); err != nil {
		return nil, err
	}

	ref := s.Now()
	if req.Now != "" {
		t, err := time.Parse(time.RFC3339, req.Now)
		if err != nil {
			return nil, apperrors.InvalidArgument("now must be an RFC 3339 timestamp")
		}
		ref = t
	}

	ev, err := s.Events.Resolve(c.Request().Context(), ptime.RawUtterance{
		Text:       req.Text,
		UserID:     req.UserID,
		LocaleHint: req.Locale,
	}, ref)
	if err != nil {
		return nil, err
	}
	if ev.DateTime.TimeDefaulted {
		s.Metrics.RecordTimeDefaulted()
	}
	return ev, nil
}

// ExtractTitle strips the temporal phrase from a message.
// POST /api/v1/events:title
func (s *APIV1Service) ExtractTitle(c echo.Context) error {
	var req TitleRequest
	bindErr := c.Bind(&req)
	rc := s.begin(c, "title", "")

	if bindErr != nil {
		return s.finish(c, rc, apperrors.InvalidArgument("invalid request body"))
	}
	if err := s.allow(c, ""); err != nil {
		return s.finish(c, rc, err)
	}
	if err := s.finish(c, rc, nil); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TitleResponse{Title: s.Events.ExtractEventTitle(req.Text)})
}
