// Package export renders resolved events for calendar applications: an
// iCalendar (RFC 5545) file and a Google Calendar "add event" link.
package export

import (
	"net/url"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/agendabot/plugin/ptime"
)

const (
	// ProductID identifies the generator in exported calendars.
	ProductID = "-//agendabot//agenda pt-BR//PT"
	// DefaultDuration is used when no event length is configured.
	DefaultDuration = time.Hour

	uidDomain         = "@agendabot"
	googleCalendarURL = "https://calendar.google.com/calendar/render"
	googleDateLayout  = "20060102T150405Z"
)

// Event is one calendar entry.
type Event struct {
	UID         string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Timezone    string
}

// Exporter turns resolved events into calendar entries.
type Exporter struct {
	duration time.Duration
	now      func() time.Time
	newUID   func() string
}

// NewExporter creates an exporter giving every event the same length.
func NewExporter(duration time.Duration) *Exporter {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Exporter{
		duration: duration,
		now:      time.Now,
		newUID:   func() string { return shortuuid.New() + uidDomain },
	}
}

// Event builds a calendar entry from a resolution result.
func (x *Exporter) Event(ev *ptime.ResolvedEvent) Event {
	start := ev.DateTime.Time
	return Event{
		UID:         x.newUID(),
		Title:       ev.Title,
		Description: ev.DateTime.Readable,
		Start:       start,
		End:         start.Add(x.duration),
		Timezone:    ev.DateTime.Timezone,
	}
}

// ICS serializes events as a VCALENDAR. Times are written in UTC.
func (x *Exporter) ICS(events ...Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if len(events) > 0 && events[0].Timezone != "" {
		cal.SetXWRTimezone(events[0].Timezone)
	}

	stamp := x.now()
	for _, e := range events {
		vevent := cal.AddEvent(e.UID)
		vevent.SetDtStampTime(stamp)
		vevent.SetCreatedTime(stamp)
		vevent.SetStartAt(e.Start)
		vevent.SetEndAt(e.End)
		vevent.SetSummary(e.Title)
		if e.Description != "" {
			vevent.SetDescription(e.Description)
		}
	}
	return cal.Serialize()
}

// GoogleCalendarURL returns a link that opens Google Calendar's new-event
// form pre-filled with e.
func GoogleCalendarURL(e Event) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", e.Title)
	q.Set("dates", e.Start.UTC().Format(googleDateLayout)+"/"+e.End.UTC().Format(googleDateLayout))
	if e.Description != "" {
		q.Set("details", e.Description)
	}
	if e.Timezone != "" {
		q.Set("ctz", e.Timezone)
	}
	// url.Values encodes spaces as "+", which Google accepts but renders
	// literally in some clients.
	return googleCalendarURL + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
