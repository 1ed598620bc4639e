package participants

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no participant matches the given id.
var ErrNotFound = errors.New("participant not found")

// Repository handles per-event participant rosters.
type Repository struct {
	col *store.ScopedCollection[models.Participant]
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewScopedCollection[models.Participant](s, store.KeyEventParticipants, logger),
	}
}

// ListFor returns the participants of one event.
func (r *Repository) ListFor(ctx context.Context, eventID string) ([]models.Participant, error) {
	return r.col.ListFor(ctx, eventID)
}

// GetFor returns one participant of an event by id.
func (r *Repository) GetFor(ctx context.Context, eventID, id string) (*models.Participant, error) {
	participants, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range participants {
		if participants[i].ID == id {
			return &participants[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create registers a participant for an event. The registration date is set
// here and never changes.
func (r *Repository) Create(ctx context.Context, eventID string, p models.Participant) (models.Participant, error) {
	participants, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.Participant{}, err
	}
	p.ID = uuid.New().String()
	p.RegistrationDate = time.Now().Format("2006-01-02")
	participants = append(participants, p)
	if err := r.col.SaveFor(ctx, eventID, participants); err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

// Update replaces a participant's fields, preserving the registration date.
func (r *Repository) Update(ctx context.Context, eventID, id string, p models.Participant) (models.Participant, error) {
	participants, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.Participant{}, err
	}
	for i := range participants {
		if participants[i].ID != id {
			continue
		}
		p.ID = id
		p.RegistrationDate = participants[i].RegistrationDate
		participants[i] = p
		if err := r.col.SaveFor(ctx, eventID, participants); err != nil {
			return models.Participant{}, err
		}
		return p, nil
	}
	return models.Participant{}, ErrNotFound
}

// Delete removes exactly one participant. Meetings referencing the
// participant keep their snapshots.
func (r *Repository) Delete(ctx context.Context, eventID, id string) error {
	participants, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range participants {
		if participants[i].ID == id {
			return r.col.SaveFor(ctx, eventID, append(participants[:i], participants[i+1:]...))
		}
	}
	return ErrNotFound
}
