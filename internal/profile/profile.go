package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultTimezone      = "America/Sao_Paulo"
	defaultEventHour     = 9
	defaultEventDuration = time.Hour
	defaultRatePerSecond = 5.0
	defaultRateBurst     = 10
)

// Profile is the configuration to start main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where agendabot stores user preferences
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// Scheduling defaults
	DefaultTimezone    string        // AGENDABOT_DEFAULT_TIMEZONE (default: America/Sao_Paulo)
	DefaultEventHour   int           // AGENDABOT_DEFAULT_EVENT_HOUR (default: 9)
	DefaultEventMinute int           // AGENDABOT_DEFAULT_EVENT_MINUTE (default: 0)
	EventDuration      time.Duration // AGENDABOT_EVENT_DURATION (default: 1h)

	// Per-user API rate limiting
	RateLimitPerSecond float64 // AGENDABOT_RATE_LIMIT_PER_SECOND (default: 5)
	RateLimitBurst     int     // AGENDABOT_RATE_LIMIT_BURST (default: 10)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads the scheduling and rate limit settings from AGENDABOT_*
// environment variables. Unparsable numbers keep their defaults.
func (p *Profile) FromEnv() {
	getIntEnv := func(key string, defaultValue int) int {
		if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
			return v
		}
		return defaultValue
	}

	p.DefaultTimezone = getEnvOrDefault("AGENDABOT_DEFAULT_TIMEZONE", defaultTimezone)
	p.DefaultEventHour = getIntEnv("AGENDABOT_DEFAULT_EVENT_HOUR", defaultEventHour)
	p.DefaultEventMinute = getIntEnv("AGENDABOT_DEFAULT_EVENT_MINUTE", 0)
	p.RateLimitBurst = getIntEnv("AGENDABOT_RATE_LIMIT_BURST", defaultRateBurst)

	p.EventDuration = defaultEventDuration
	if d, err := time.ParseDuration(os.Getenv("AGENDABOT_EVENT_DURATION")); err == nil {
		p.EventDuration = d
	}

	p.RateLimitPerSecond = defaultRatePerSecond
	if f, err := strconv.ParseFloat(os.Getenv("AGENDABOT_RATE_LIMIT_PER_SECOND"), 64); err == nil {
		p.RateLimitPerSecond = f
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills derived values.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "agendabot")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/agendabot"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check dsn", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("agendabot_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("postgres driver requires a DSN")
	}

	if p.DefaultTimezone == "" {
		p.DefaultTimezone = defaultTimezone
	}
	if _, err := time.LoadLocation(p.DefaultTimezone); err != nil {
		slog.Warn("invalid default timezone, using America/Sao_Paulo",
			slog.String("timezone", p.DefaultTimezone), slog.String("error", err.Error()))
		p.DefaultTimezone = defaultTimezone
	}

	if p.DefaultEventHour < 0 || p.DefaultEventHour > 23 || p.DefaultEventMinute < 0 || p.DefaultEventMinute > 59 {
		slog.Warn("invalid default event time, using 09:00",
			slog.Int("hour", p.DefaultEventHour), slog.Int("minute", p.DefaultEventMinute))
		p.DefaultEventHour, p.DefaultEventMinute = defaultEventHour, 0
	}
	if p.EventDuration <= 0 {
		p.EventDuration = defaultEventDuration
	}
	if p.RateLimitPerSecond <= 0 {
		p.RateLimitPerSecond = defaultRatePerSecond
	}
	if p.RateLimitBurst <= 0 {
		p.RateLimitBurst = defaultRateBurst
	}

	return nil
}
