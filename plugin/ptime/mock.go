package ptime

import (
	"context"
	"sync"
	"time"
)

// StaticTimezone resolves every user to the same location. Useful for tests
// and for single-zone deployments.
type StaticTimezone struct {
	Loc *time.Location
}

// Location implements TimezoneResolver.
func (z StaticTimezone) Location(_, _ string) (*time.Location, string) {
	if z.Loc == nil {
		return time.UTC, "UTC"
	}
	return z.Loc, z.Loc.String()
}

// MockEventService is a mock implementation of EventService for testing.
// Calls are recorded; Err, when set, is returned by every resolution.
type MockEventService struct {
	// FixedNow can be set to use a fixed "now" for testing
	FixedNow *time.Time
	Err      error

	mu    sync.Mutex
	calls []RawUtterance
}

// NewMockEventService creates a new MockEventService.
func NewMockEventService() *MockEventService {
	return &MockEventService{}
}

// ResolveEventDateTime returns a fixed result one day after the reference, at 09:00 UTC.
func (m *MockEventService) ResolveEventDateTime(_ context.Context, utterance, userID, localeHint string, referenceNow time.Time) (*ResolvedDateTime, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RawUtterance{Text: utterance, UserID: userID, LocaleHint: localeHint})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if referenceNow.IsZero() {
		referenceNow = m.now()
	}
	ref := referenceNow.UTC()
	t := time.Date(ref.Year(), ref.Month(), ref.Day()+1, 9, 0, 0, 0, time.UTC)
	return &ResolvedDateTime{
		ISO:           t.Format(ISOLayout),
		Readable:      FormatReadable(t),
		Timezone:      "UTC",
		Time:          t,
		TimeDefaulted: true,
	}, nil
}

// ExtractEventTitle returns the utterance unchanged.
func (m *MockEventService) ExtractEventTitle(utterance string) string {
	return utterance
}

// Resolve combines the two mock operations.
func (m *MockEventService) Resolve(ctx context.Context, u RawUtterance, referenceNow time.Time) (*ResolvedEvent, error) {
	dt, err := m.ResolveEventDateTime(ctx, u.Text, u.UserID, u.LocaleHint, referenceNow)
	if err != nil {
		return nil, err
	}
	return &ResolvedEvent{Title: m.ExtractEventTitle(u.Text), DateTime: dt}, nil
}

// Calls returns the utterances seen so far.
func (m *MockEventService) Calls() []RawUtterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RawUtterance, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MockEventService) now() time.Time {
	if m.FixedNow != nil {
		return *m.FixedNow
	}
	return time.Now()
}

var (
	_ EventService     = (*MockEventService)(nil)
	_ TimezoneResolver = StaticTimezone{}
)
