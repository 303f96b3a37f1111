package ptime

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

const (
	// DefaultEventHour is used when an utterance has a date but no time.
	DefaultEventHour = 9
	// DefaultEventMinute pairs with DefaultEventHour.
	DefaultEventMinute = 0
)

// Service composes the date, time and timezone resolvers.
type Service struct {
	timezones     TimezoneResolver
	defaultHour   int
	defaultMinute int
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithDefaultTime sets the time used when no clock phrase is found.
// Out-of-range values are ignored.
func WithDefaultTime(hour, minute int) Option {
	return func(s *Service) {
		if hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 {
			s.defaultHour, s.defaultMinute = hour, minute
		}
	}
}

// WithClock overrides the reference clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new event service.
func NewService(timezones TimezoneResolver, opts ...Option) *Service {
	s := &Service{
		timezones:     timezones,
		defaultHour:   DefaultEventHour,
		defaultMinute: DefaultEventMinute,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveEventDateTime implements EventService.
func (s *Service) ResolveEventDateTime(_ context.Context, utterance, userID, localeHint string, referenceNow time.Time) (*ResolvedDateTime, error) {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return nil, apperrors.InvalidArgument("empty utterance")
	}

	loc, tzName := s.timezones.Location(userID, localeHint)
	if referenceNow.IsZero() {
		referenceNow = s.now()
	}
	ref := referenceNow.In(loc)

	date, ok := ResolveDate(text, ref)
	if !ok {
		return nil, apperrors.NoDateRecognized(utterance)
	}

	hour, minute := s.defaultHour, s.defaultMinute
	clock, ok := ResolveTime(text)
	if ok {
		hour, minute = clock.Hour, clock.Minute
	} else {
		s.logger.Debug("no time phrase, using default",
			"code", apperrors.ErrCodeNoTimeRecognized,
			"hour", hour,
			"minute", minute)
	}

	// Offsets are calendar days: "amanhã" keeps the wall clock across DST.
	validated := NewLocalTimeValidator(loc, s.logger).
		ValidateLocalTime(ref.Year(), ref.Month(), ref.Day()+date.DayOffset, hour, minute)
	t := validated.ValidTime

	return &ResolvedDateTime{
		ISO:           t.Format(ISOLayout),
		Readable:      FormatReadable(t),
		Timezone:      tzName,
		Time:          t,
		TimeDefaulted: !ok,
		Warnings:      validated.Warnings,
	}, nil
}

// ExtractEventTitle implements EventService.
func (s *Service) ExtractEventTitle(utterance string) string {
	return ExtractEventTitle(utterance)
}

// Resolve implements EventService.
func (s *Service) Resolve(ctx context.Context, u RawUtterance, referenceNow time.Time) (*ResolvedEvent, error) {
	dt, err := s.ResolveEventDateTime(ctx, u.Text, u.UserID, u.LocaleHint, referenceNow)
	if err != nil {
		return nil, err
	}
	return &ResolvedEvent{
		Title:    s.ExtractEventTitle(u.Text),
		DateTime: dt,
	}, nil
}

// Ensure Service implements EventService
var _ EventService = (*Service)(nil)
