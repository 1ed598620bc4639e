// Package store is the key-value persistence layer. Every collection lives
// under one named key as a JSON blob; a mutation always rewrites the whole
// blob. There is no partial update, no versioning and no cross-key
// transaction, which matches the single-writer console this system serves.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("store: key not found")

// Store reads and writes raw values under named keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Collection keys. Event-scoped keys hold a map from event id to that
// event's records; the rest hold a flat list or a single record.
const (
	KeyEvents              = "events"
	KeyUsers               = "users"
	KeyEventParticipants   = "eventParticipants"
	KeyEventTickets        = "eventTickets"
	KeyEventMeetings       = "eventMeetings"
	KeyOrganizerMeetings   = "organizerMeetings"
	KeyEventPrograms       = "eventPrograms"
	KeyEventScannedTickets = "eventScannedTickets"
	KeyOrganisationMembers = "organisationMembers"
	KeyVisitorRegistration = "visitorRegistration"
	KeyAppSettings         = "appSettings"
	KeySession             = "user"
)
