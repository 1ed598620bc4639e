package tickets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no ticket type matches the given id.
var ErrNotFound = errors.New("ticket type not found")

// Repository handles per-event ticket allocations.
type Repository struct {
	col *store.ScopedCollection[models.TicketType]
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewScopedCollection[models.TicketType](s, store.KeyEventTickets, logger),
	}
}

// ListFor returns the ticket types of one event.
func (r *Repository) ListFor(ctx context.Context, eventID string) ([]models.TicketType, error) {
	return r.col.ListFor(ctx, eventID)
}

// Create adds a ticket type to an event.
func (r *Repository) Create(ctx context.Context, eventID string, t models.TicketType) (models.TicketType, error) {
	tickets, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.TicketType{}, err
	}
	t.ID = uuid.New().String()
	tickets = append(tickets, t)
	if err := r.col.SaveFor(ctx, eventID, tickets); err != nil {
		return models.TicketType{}, err
	}
	return t, nil
}

// Update replaces a ticket type's fields.
func (r *Repository) Update(ctx context.Context, eventID, id string, t models.TicketType) (models.TicketType, error) {
	tickets, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return models.TicketType{}, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		t.ID = id
		tickets[i] = t
		if err := r.col.SaveFor(ctx, eventID, tickets); err != nil {
			return models.TicketType{}, err
		}
		return t, nil
	}
	return models.TicketType{}, ErrNotFound
}

// Delete removes exactly one ticket type.
func (r *Repository) Delete(ctx context.Context, eventID, id string) error {
	tickets, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return err
	}
	for i := range tickets {
		if tickets[i].ID == id {
			return r.col.SaveFor(ctx, eventID, append(tickets[:i], tickets[i+1:]...))
		}
	}
	return ErrNotFound
}
