package programs

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no session matches the given id.
var ErrNotFound = errors.New("program session not found")

// Repository handles per-event program schedules.
type Repository struct {
	col *store.ScopedCollection[models.ProgramSession]
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewScopedCollection[models.ProgramSession](s, store.KeyEventPrograms, logger),
	}
}

// ListFor returns an event's sessions ordered by start time. HH:MM strings
// sort correctly as text.
func (r *Repository) ListFor(ctx context.Context, eventID string) ([]models.ProgramSession, error) {
	sessions, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Time < sessions[j].Time
	})
	return sessions, nil
}

// Create adds a session to an event's program.
func (r *Repository) Create(ctx context.Context, eventID string, s models.ProgramSession) (models.ProgramSession, error) {
	sessions, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.ProgramSession{}, err
	}
	s.ID = uuid.New().String()
	sessions = append(sessions, s)
	if err := r.col.SaveFor(ctx, eventID, sessions); err != nil {
		return models.ProgramSession{}, err
	}
	return s, nil
}

// Update replaces a session's fields.
func (r *Repository) Update(ctx context.Context, eventID, id string, s models.ProgramSession) (models.ProgramSession, error) {
	sessions, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.ProgramSession{}, err
	}
	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		s.ID = id
		sessions[i] = s
		if err := r.col.SaveFor(ctx, eventID, sessions); err != nil {
			return models.ProgramSession{}, err
		}
		return s, nil
	}
	return models.ProgramSession{}, ErrNotFound
}

// Delete removes exactly one session.
func (r *Repository) Delete(ctx context.Context, eventID, id string) error {
	sessions, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return r.col.SaveFor(ctx, eventID, append(sessions[:i], sessions[i+1:]...))
		}
	}
	return ErrNotFound
}
