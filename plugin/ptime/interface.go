// Package ptime resolves Brazilian Portuguese event descriptions
// ("reunião com João amanhã às 15h") into calendar timestamps and titles.
package ptime

import (
	"context"
	"time"
)

// EventService is the contract exposed to the messaging layer.
// Consumers: the HTTP API and the CLI.
type EventService interface {
	// ResolveEventDateTime resolves the date and time described by utterance
	// in the user's timezone. A zero referenceNow means "now".
	// Returns a NO_DATE_RECOGNIZED error when no date phrase is present.
	ResolveEventDateTime(ctx context.Context, utterance, userID, localeHint string, referenceNow time.Time) (*ResolvedDateTime, error)

	// ExtractEventTitle strips the temporal phrase from utterance.
	ExtractEventTitle(utterance string) string

	// Resolve runs both operations for one incoming message.
	Resolve(ctx context.Context, u RawUtterance, referenceNow time.Time) (*ResolvedEvent, error)
}

// TimezoneResolver maps a user to a timezone. It must never fail: unknown
// users and broken configuration resolve to a default zone.
type TimezoneResolver interface {
	Location(userID, localeHint string) (*time.Location, string)
}

// RawUtterance is one incoming message.
type RawUtterance struct {
	Text       string `json:"text"`
	UserID     string `json:"userId"`
	LocaleHint string `json:"locale,omitempty"`
}

// ResolvedDateTime is the final timestamp plus its Portuguese rendering.
type ResolvedDateTime struct {
	ISO      string `json:"iso"`
	Readable string `json:"readable"`
	Timezone string `json:"timezone"`

	Time          time.Time `json:"-"`
	TimeDefaulted bool      `json:"timeDefaulted"`
	Warnings      []string  `json:"warnings,omitempty"`
}

// ResolvedEvent is a resolved timestamp with its extracted title.
type ResolvedEvent struct {
	Title    string            `json:"title"`
	DateTime *ResolvedDateTime `json:"dateTime"`
}
