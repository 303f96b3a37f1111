package timezone

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hrygo/agendabot/internal/errors"
	"github.com/hrygo/agendabot/plugin/ptime"
)

var _ ptime.TimezoneResolver = (*Resolver)(nil)

type fakePreferenceStore struct {
	mu      sync.Mutex
	prefs   map[string]string
	listErr error
	saveErr error
}

func (s *fakePreferenceStore) ListTimezonePreferences(context.Context) (map[string]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.prefs))
	for k, v := range s.prefs {
		out[k] = v
	}
	return out, nil
}

func (s *fakePreferenceStore) SaveTimezonePreference(_ context.Context, userID, zone string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs == nil {
		s.prefs = map[string]string{}
	}
	s.prefs[userID] = zone
	return nil
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		hint   string
		want   string
	}{
		{"default", "telegram:42", "", TimezoneSaoPaulo},
		{"iana hint", "telegram:43", "America/Manaus", "America/Manaus"},
		{"invalid iana hint", "telegram:44", "Mars/Olympus", TimezoneSaoPaulo},
		{"whatsapp ddd", "5568991234567@s.whatsapp.net", "", "America/Rio_Branco"},
		{"phone beats locale", "5592991234567@s.whatsapp.net", "pt-PT", "America/Manaus"},
		{"locale region", "telegram:45", "pt_PT", TimezoneLisbon},
		{"anonymous", "", "", TimezoneSaoPaulo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver()
			assert.Equal(t, tt.want, r.Resolve(tt.userID, tt.hint))
		})
	}
}

func TestResolver_Memoizes(t *testing.T) {
	cache := NewMemoryCache()
	r := NewResolver(WithCache(cache))

	assert.Equal(t, "America/Manaus", r.Resolve("u1", "America/Manaus"))
	// A later hint does not change the first answer.
	assert.Equal(t, "America/Manaus", r.Resolve("u1", "Europe/Lisbon"))
	assert.Equal(t, 1, cache.Len())

	r.Resolve("", "Europe/Lisbon")
	assert.Equal(t, 1, cache.Len())
}

func TestResolver_ConcurrentFirstLookup(t *testing.T) {
	r := NewResolver()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve("5592991234567@s.whatsapp.net", "")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "America/Manaus", got)
	}
}

func TestResolver_Location(t *testing.T) {
	r := NewResolver()

	loc, name := r.Location("u1", "America/Cuiaba")
	assert.Equal(t, "America/Cuiaba", name)
	assert.Equal(t, "America/Cuiaba", loc.String())
}

func TestResolver_LocationInvalidCachedZone(t *testing.T) {
	cache := NewMemoryCache()
	cache.Store("u1", "Mars/Olympus")
	r := NewResolver(WithCache(cache))

	loc, name := r.Location("u1", "")
	assert.Equal(t, TimezoneSaoPaulo, name)
	assert.Equal(t, TimezoneSaoPaulo, loc.String())
}

func TestResolver_WithDefaultZone(t *testing.T) {
	r := NewResolver(WithDefaultZone("America/Recife"))
	assert.Equal(t, "America/Recife", r.Resolve("u1", ""))

	r = NewResolver(WithDefaultZone("Nowhere/Land"))
	assert.Equal(t, TimezoneSaoPaulo, r.DefaultZone())
}

func TestResolver_SetPreference(t *testing.T) {
	ctx := context.Background()
	store := &fakePreferenceStore{}
	r := NewResolver(WithPreferenceStore(store))

	assert.Equal(t, TimezoneSaoPaulo, r.Resolve("u1", ""))

	require.NoError(t, r.SetPreference(ctx, "u1", "America/Manaus"))
	assert.Equal(t, "America/Manaus", r.Resolve("u1", ""))
	assert.Equal(t, "America/Manaus", store.prefs["u1"])

	err := r.SetPreference(ctx, "u1", "Mars/Olympus")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidTimezone))
	assert.Equal(t, "America/Manaus", r.Resolve("u1", ""))

	err = r.SetPreference(ctx, " ", "America/Manaus")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidArgument))
}

func TestResolver_SetPreferenceStoreFailure(t *testing.T) {
	store := &fakePreferenceStore{saveErr: errors.New("database is locked")}
	r := NewResolver(WithPreferenceStore(store))

	err := r.SetPreference(context.Background(), "u1", "America/Manaus")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreFailure))
	// Nothing is cached when persistence fails.
	assert.Equal(t, TimezoneSaoPaulo, r.Resolve("u1", ""))
}

func TestResolver_Warm(t *testing.T) {
	store := &fakePreferenceStore{prefs: map[string]string{
		"u1": "America/Manaus",
		"u2": "Europe/Lisbon",
		"u3": "Mars/Olympus",
	}}
	r := NewResolver(WithPreferenceStore(store))

	n, err := r.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "America/Manaus", r.Resolve("u1", ""))
	assert.Equal(t, "Europe/Lisbon", r.Resolve("u2", ""))
	assert.Equal(t, TimezoneSaoPaulo, r.Resolve("u3", ""))

	n, err = NewResolver().Warm(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = NewResolver(WithPreferenceStore(&fakePreferenceStore{listErr: errors.New("boom")})).Warm(context.Background())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeStoreFailure))
}
