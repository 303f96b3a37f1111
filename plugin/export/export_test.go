package export

import (
	"net/url"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/agendabot/plugin/ptime"
)

func resolvedEvent(t *testing.T) *ptime.ResolvedEvent {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	start := time.Date(2024, 6, 11, 15, 0, 0, 0, loc)
	return &ptime.ResolvedEvent{
		Title: "reunião com João",
		DateTime: &ptime.ResolvedDateTime{
			ISO:      start.Format(ptime.ISOLayout),
			Readable: ptime.FormatReadable(start),
			Timezone: "America/Sao_Paulo",
			Time:     start,
		},
	}
}

func TestExporter_Event(t *testing.T) {
	x := NewExporter(90 * time.Minute)
	e := x.Event(resolvedEvent(t))

	assert.True(t, strings.HasSuffix(e.UID, "@agendabot"))
	assert.Equal(t, "reunião com João", e.Title)
	assert.Equal(t, "terça-feira, 11 de junho às 15:00", e.Description)
	assert.Equal(t, 90*time.Minute, e.End.Sub(e.Start))

	other := x.Event(resolvedEvent(t))
	assert.NotEqual(t, e.UID, other.UID)
}

func TestExporter_DefaultDuration(t *testing.T) {
	e := NewExporter(0).Event(resolvedEvent(t))
	assert.Equal(t, DefaultDuration, e.End.Sub(e.Start))
}

func TestExporter_ICS(t *testing.T) {
	x := NewExporter(time.Hour)
	x.now = func() time.Time { return time.Date(2024, 6, 10, 11, 30, 0, 0, time.UTC) }
	x.newUID = func() string { return "fixed@agendabot" }

	body := x.ICS(x.Event(resolvedEvent(t)))
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "PRODID:"+ProductID)

	cal, err := ics.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "fixed@agendabot", ev.Id())
	assert.Equal(t, "reunião com João", ev.GetProperty(ics.ComponentPropertySummary).Value)

	start, err := ev.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 6, 11, 18, 0, 0, 0, time.UTC)))

	end, err := ev.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestGoogleCalendarURL(t *testing.T) {
	e := NewExporter(time.Hour).Event(resolvedEvent(t))

	link := GoogleCalendarURL(e)
	require.True(t, strings.HasPrefix(link, "https://calendar.google.com/calendar/render?"))
	assert.NotContains(t, link, "+")

	u, err := url.Parse(link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "reunião com João", q.Get("text"))
	assert.Equal(t, "20240611T180000Z/20240611T190000Z", q.Get("dates"))
	assert.Equal(t, "America/Sao_Paulo", q.Get("ctz"))
	assert.Equal(t, "terça-feira, 11 de junho às 15:00", q.Get("details"))
}
