package members

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// ErrNotFound is returned when no member matches the given id.
var ErrNotFound = errors.New("member not found")

// Repository handles the organizing team roster. The roster starts empty.
type Repository struct {
	col *store.Collection[models.OrganizationMember]
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewCollection(s, store.KeyOrganisationMembers, []models.OrganizationMember{}, logger),
	}
}

// List returns all members.
func (r *Repository) List(ctx context.Context) ([]models.OrganizationMember, error) {
	return r.col.Load(ctx)
}

// Create adds a member. The registration timestamp is set here and never
// changes.
func (r *Repository) Create(ctx context.Context, m models.OrganizationMember) (models.OrganizationMember, error) {
	members, err := r.col.Load(ctx)
	if err != nil {
		return models.OrganizationMember{}, err
	}
	m.ID = uuid.New().String()
	m.RegistrationDate = time.Now().UTC().Format(time.RFC3339)
	members = append(members, m)
	if err := r.col.Save(ctx, members); err != nil {
		return models.OrganizationMember{}, err
	}
	return m, nil
}

// Update replaces a member's fields, preserving the registration timestamp.
func (r *Repository) Update(ctx context.Context, id string, m models.OrganizationMember) (models.OrganizationMember, error) {
	members, err := r.col.Load(ctx)
	if err != nil {
		return models.OrganizationMember{}, err
	}
	for i := range members {
		if members[i].ID != id {
			continue
		}
		m.ID = id
		m.RegistrationDate = members[i].RegistrationDate
		members[i] = m
		if err := r.col.Save(ctx, members); err != nil {
			return models.OrganizationMember{}, err
		}
		return m, nil
	}
	return models.OrganizationMember{}, ErrNotFound
}

// Delete removes exactly one member.
func (r *Repository) Delete(ctx context.Context, id string) error {
	members, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range members {
		if members[i].ID == id {
			return r.col.Save(ctx, append(members[:i], members[i+1:]...))
		}
	}
	return ErrNotFound
}
