package meetings

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no meeting matches the given id.
var ErrNotFound = errors.New("meeting not found")

// Repository handles one meeting agenda. The console keeps two independent
// agendas per event, the participant-facing one and the organizer's, so the
// repository is parameterized by store key.
type Repository struct {
	col *store.ScopedCollection[models.Meeting]
}

// NewRepository creates an agenda repository over the given store key,
// store.KeyEventMeetings or store.KeyOrganizerMeetings.
func NewRepository(s store.Store, key string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewScopedCollection[models.Meeting](s, key, logger),
	}
}

// ListFor returns an event's meetings in chronological order.
func (r *Repository) ListFor(ctx context.Context, eventID string) ([]models.Meeting, error) {
	meetings, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Date != meetings[j].Date {
			return meetings[i].Date < meetings[j].Date
		}
		return meetings[i].Time < meetings[j].Time
	})
	return meetings, nil
}

// Create schedules a meeting.
func (r *Repository) Create(ctx context.Context, eventID string, m models.Meeting) (models.Meeting, error) {
	meetings, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.Meeting{}, err
	}
	m.ID = uuid.New().String()
	meetings = append(meetings, m)
	if err := r.col.SaveFor(ctx, eventID, meetings); err != nil {
		return models.Meeting{}, err
	}
	return m, nil
}

// Update replaces a meeting's fields, keeping its id.
func (r *Repository) Update(ctx context.Context, eventID, id string, m models.Meeting) (models.Meeting, error) {
	meetings, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.Meeting{}, err
	}
	for i := range meetings {
		if meetings[i].ID != id {
			continue
		}
		m.ID = id
		meetings[i] = m
		if err := r.col.SaveFor(ctx, eventID, meetings); err != nil {
			return models.Meeting{}, err
		}
		return m, nil
	}
	return models.Meeting{}, ErrNotFound
}

// Delete removes exactly one meeting.
func (r *Repository) Delete(ctx context.Context, eventID, id string) error {
	meetings, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range meetings {
		if meetings[i].ID == id {
			return r.col.SaveFor(ctx, eventID, append(meetings[:i], meetings[i+1:]...))
		}
	}
	return ErrNotFound
}
