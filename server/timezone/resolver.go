package timezone

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

// Cache memoizes user id → zone name for the life of the process.
type Cache interface {
	Load(userID string) (string, bool)
	Store(userID, zone string)
}

// MemoryCache is a Cache backed by sync.Map. Writers racing on a first
// lookup store the same value, so reads never lock.
type MemoryCache struct {
	entries sync.Map
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Load implements Cache.
func (c *MemoryCache) Load(userID string) (string, bool) {
	v, ok := c.entries.Load(userID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Store implements Cache.
func (c *MemoryCache) Store(userID, zone string) {
	c.entries.Store(userID, zone)
}

// Len returns the number of cached users.
func (c *MemoryCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// PreferenceStore persists explicit user choices.
type PreferenceStore interface {
	ListTimezonePreferences(ctx context.Context) (map[string]string, error)
	SaveTimezonePreference(ctx context.Context, userID, zone string) error
}

// Resolver maps users to timezones. It implements ptime.TimezoneResolver.
type Resolver struct {
	cache       Cache
	store       PreferenceStore
	defaultZone string
	logger      *slog.Logger

	// locations memoizes zone name → *time.Location.
	locations sync.Map
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache replaces the in-memory cache.
func WithCache(c Cache) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithPreferenceStore enables persistence of explicit preferences.
func WithPreferenceStore(s PreferenceStore) ResolverOption {
	return func(r *Resolver) {
		r.store = s
	}
}

// WithDefaultZone overrides America/Sao_Paulo. Invalid names are ignored.
func WithDefaultZone(zone string) ResolverOption {
	return func(r *Resolver) {
		if IsValidTimezone(zone) {
			r.defaultZone = zone
		}
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver with an empty in-memory cache.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:       NewMemoryCache(),
		defaultZone: DefaultTimezone,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultZone returns the fallback zone name.
func (r *Resolver) DefaultZone() string {
	return r.defaultZone
}

// Resolve returns the zone name for a user. It never returns "".
//
// Order on a cache miss: a locale hint that is itself a zone name, the
// Brazilian area code of a phone-shaped user id, the region of a locale
// tag, then the default. The result is cached per user id.
func (r *Resolver) Resolve(userID, localeHint string) string {
	if userID != "" {
		if zone, ok := r.cache.Load(userID); ok {
			return zone
		}
	}

	zone := r.infer(userID, strings.TrimSpace(localeHint))
	if userID != "" {
		r.cache.Store(userID, zone)
	}
	return zone
}

func (r *Resolver) infer(userID, hint string) string {
	if strings.Contains(hint, "/") && IsValidTimezone(hint) {
		return hint
	}
	if zone, ok := ZoneForPhone(userID); ok {
		return zone
	}
	if zone, ok := ZoneForLocale(hint); ok {
		return zone
	}
	return r.defaultZone
}

// Location resolves the user's zone and loads it. A cached name that cannot
// be loaded is logged and replaced by the default zone.
func (r *Resolver) Location(userID, localeHint string) (*time.Location, string) {
	zone := r.Resolve(userID, localeHint)
	loc, err := r.load(zone)
	if err == nil {
		return loc, zone
	}
	r.logger.Warn("falling back to default timezone",
		"user_id", userID,
		"timezone", zone,
		"error_code", apperrors.ErrCodeInvalidTimezone,
		"error", err)

	loc, err = r.load(r.defaultZone)
	if err != nil {
		return LocationSaoPaulo, TimezoneSaoPaulo
	}
	return loc, r.defaultZone
}

func (r *Resolver) load(zone string) (*time.Location, error) {
	if v, ok := r.locations.Load(zone); ok {
		return v.(*time.Location), nil
	}
	loc, err := ParseTimezone(zone)
	if err != nil {
		return nil, err
	}
	r.locations.Store(zone, loc)
	return loc, nil
}

// SetPreference records an explicit choice, persisting it first when a
// store is configured.
func (r *Resolver) SetPreference(ctx context.Context, userID, zone string) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.InvalidArgument("user id is required")
	}
	if !IsValidTimezone(zone) {
		_, err := time.LoadLocation(zone)
		return apperrors.InvalidTimezone(zone, err)
	}
	if r.store != nil {
		if err := r.store.SaveTimezonePreference(ctx, userID, zone); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeStoreFailure, "save timezone preference").
				WithContext("user_id", userID)
		}
	}
	r.cache.Store(userID, zone)
	return nil
}

// Warm loads every stored preference into the cache. Invalid stored names
// are skipped with a warning.
func (r *Resolver) Warm(ctx context.Context) (int, error) {
	if r.store == nil {
		return 0, nil
	}
	prefs, err := r.store.ListTimezonePreferences(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.ErrCodeStoreFailure, "list timezone preferences")
	}

	loaded := 0
	for userID, zone := range prefs {
		if !IsValidTimezone(zone) {
			r.logger.Warn("skipping stored timezone",
				"user_id", userID,
				"timezone", zone,
				"error_code", apperrors.ErrCodeInvalidTimezone)
			continue
		}
		r.cache.Store(userID, zone)
		loaded++
	}
	r.logger.Info("timezone preferences loaded", "count", loaded)
	return loaded, nil
}
