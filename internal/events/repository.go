package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no event matches the given id.
var ErrNotFound = errors.New("event not found")

// Repository handles event persistence. Lifecycle statuses are derived on
// every read and never written back to the store.
type Repository struct {
	col *store.Collection[models.Event]
	now func() time.Time
}

// NewRepository creates an event repository with the seeded catalog.
func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewCollection(s, store.KeyEvents, seedEvents(), logger),
		now: time.Now,
	}
}

func seedEvents() []models.Event {
	return []models.Event{
		{
			ID:          "1",
			Title:       "Afrinov Tech Summit 2025",
			Date:        "2025-05-12",
			EndDate:     "2025-05-14",
			Location:    "Dakar, Sénégal",
			Description: "Le plus grand événement tech d'Afrique de l'Ouest.",
			Category:    "conference",
			Capacity:    500,
			Image:       "https://images.unsplash.com/photo-1540575467063-178a50c2df87?auto=format&fit=crop&w=2070&q=80",
		},
		{
			ID:          "2",
			Title:       "Workshop IA & Big Data",
			Date:        "2024-06-18",
			EndDate:     "2024-06-18",
			Location:    "Abidjan, Côte d'Ivoire",
			Description: "Atelier pratique sur l'IA et le Big Data.",
			Category:    "workshop",
			Capacity:    100,
			Image:       "https://images.unsplash.com/photo-1558346490-a72e53ae2d4f?auto=format&fit=crop&w=2070&q=80",
		},
		{
			ID:          "3",
			Title:       "Hackathon Blockchain",
			Date:        "2025-07-25",
			EndDate:     "2025-07-27",
			Location:    "Lagos, Nigeria",
			Description: "Hackathon de 48 heures sur la blockchain.",
			Category:    "hackathon",
			Capacity:    200,
			Image:       "https://images.unsplash.com/photo-1517048676732-d65bc937f952?auto=format&fit=crop&w=2070&q=80",
		},
		{
			ID:           "4",
			Title:        "Conférence Cybersécurité",
			Date:         "2024-03-10",
			EndDate:      "2024-03-11",
			Location:     "Nairobi, Kenya",
			Description:  "Les enjeux de la cybersécurité en Afrique.",
			Category:     "conference",
			Capacity:     300,
			StatusUpdate: models.StatusCancelled,
			Image:        "https://images.unsplash.com/photo-1556761175-b413da4baf72?auto=format&fit=crop&w=2074&q=80",
		},
	}
}

// withStatus returns a copy of e with its derived status filled in.
func (r *Repository) withStatus(e models.Event) models.Event {
	e.Status = DeriveStatus(e, r.now())
	return e
}

// save persists the collection with derived statuses stripped.
func (r *Repository) save(ctx context.Context, events []models.Event) error {
	for i := range events {
		events[i].Status = ""
	}
	return r.col.Save(ctx, events)
}

// List returns all events with their current statuses.
func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	events, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i] = r.withStatus(events[i])
	}
	return events, nil
}

// Get returns a single event with its current status.
func (r *Repository) Get(ctx context.Context, id string) (*models.Event, error) {
	events, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].ID == id {
			e := r.withStatus(events[i])
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new event and returns it with its derived status.
func (r *Repository) Create(ctx context.Context, e models.Event) (models.Event, error) {
	events, err := r.col.Load(ctx)
	if err != nil {
		return models.Event{}, err
	}
	e.ID = uuid.New().String()
	e.Status = ""
	events = append(events, e)
	if err := r.save(ctx, events); err != nil {
		return models.Event{}, err
	}
	return r.withStatus(e), nil
}

// Update replaces an event's fields in place, keeping its id.
func (r *Repository) Update(ctx context.Context, id string, e models.Event) (models.Event, error) {
	events, err := r.col.Load(ctx)
	if err != nil {
		return models.Event{}, err
	}
	for i := range events {
		if events[i].ID != id {
			continue
		}
		e.ID = id
		if e.Image == "" {
			e.Image = events[i].Image
		}
		events[i] = e
		if err := r.save(ctx, events); err != nil {
			return models.Event{}, err
		}
		return r.withStatus(e), nil
	}
	return models.Event{}, ErrNotFound
}

// SetImage stores the cover image URL for an event.
func (r *Repository) SetImage(ctx context.Context, id, url string) (models.Event, error) {
	events, err := r.col.Load(ctx)
	if err != nil {
		return models.Event{}, err
	}
	for i := range events {
		if events[i].ID == id {
			events[i].Image = url
			if err := r.save(ctx, events); err != nil {
				return models.Event{}, err
			}
			return r.withStatus(events[i]), nil
		}
	}
	return models.Event{}, ErrNotFound
}

// Delete removes exactly one event by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	events, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].ID == id {
			return r.save(ctx, append(events[:i], events[i+1:]...))
		}
	}
	return ErrNotFound
}
