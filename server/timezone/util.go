// Package timezone maps bot users to IANA timezones.
//
// Users are resolved from an explicit preference, a locale hint or their
// phone number, and fall back to Brasília time.
package timezone

import (
	"time"
	// Embedded zone database so resolution works on minimal images.
	_ "time/tzdata"

	apperrors "github.com/hrygo/agendabot/internal/errors"
)

// Common timezone identifiers.
const (
	// TimezoneUTC is the UTC timezone identifier
	TimezoneUTC = "UTC"

	// TimezoneSaoPaulo is Brasília time, the default for every user.
	TimezoneSaoPaulo = "America/Sao_Paulo"

	// TimezoneManaus is Amazon time.
	TimezoneManaus = "America/Manaus"

	// TimezoneRioBranco is Acre time.
	TimezoneRioBranco = "America/Rio_Branco"

	// TimezoneLisbon is mainland Portugal time.
	TimezoneLisbon = "Europe/Lisbon"
)

// DefaultTimezone is used when nothing else identifies the user's zone.
const DefaultTimezone = TimezoneSaoPaulo

// LocationSaoPaulo is the pre-loaded default location.
var LocationSaoPaulo = MustParseTimezone(TimezoneSaoPaulo)

// ParseTimezone parses an IANA timezone identifier (e.g., "America/Manaus").
// If the timezone is invalid, returns the default location and an
// INVALID_TIMEZONE error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == TimezoneUTC {
		return time.UTC, nil
	}
	if tz == "" {
		return LocationSaoPaulo, apperrors.InvalidTimezone(tz, nil)
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return LocationSaoPaulo, apperrors.InvalidTimezone(tz, err)
	}

	return loc, nil
}

// MustParseTimezone parses a timezone or panics if invalid.
// Use this for constants that are known to be valid at compile time.
func MustParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValidTimezone checks if a timezone identifier is a loadable IANA name.
// "Local" and the empty string are rejected.
func IsValidTimezone(tz string) bool {
	if tz == "" || tz == "Local" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
