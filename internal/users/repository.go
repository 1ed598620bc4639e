package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/pkg/utils"
)

var (
	// ErrNotFound is returned when no user matches the given id or email.
	ErrNotFound = errors.New("user not found")
	// ErrProtected is returned when deleting the distinguished admin account.
	ErrProtected = errors.New("user is protected and cannot be deleted")
)

// Repository handles user persistence over the users collection.
type Repository struct {
	col *store.Collection[models.User]
}

// NewRepository creates a user repository with the seeded account roster.
func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col: store.NewCollection(s, store.KeyUsers, seedUsers(), logger),
	}
}

// seedUsers returns the initial account roster. Passwords are hashed at seed
// time; the first entry is the protected admin whose credentials also serve
// as the console's built-in login.
func seedUsers() []models.User {
	seed := []struct {
		id, name, email, role, status, joined, password string
	}{
		{"0", "Sall", models.ProtectedUserEmail, models.RoleAdmin, models.UserStatusActive, "2024-01-01", "sall123"},
		{"1", "Aminata Diop", "aminata.diop@example.com", models.RoleAdmin, models.UserStatusActive, "2024-01-15", "password123"},
		{"2", "Moussa Traoré", "moussa.traore@example.com", models.RoleEditor, models.UserStatusActive, "2024-02-20", "password123"},
		{"3", "Fatou Ndiaye", "fatou.ndiaye@example.com", models.RoleViewer, models.UserStatusInactive, "2024-03-10", "password123"},
		{"4", "Samba Fall", "samba.fall@example.com", models.RoleEditor, models.UserStatusPending, "2024-04-05", "password123"},
		{"5", "Organisateur", "conde@gmail.com", models.RoleOrganisateur, models.UserStatusActive, "2024-01-01", "conde123"},
	}
	users := make([]models.User, 0, len(seed))
	for _, s := range seed {
		hash, err := utils.HashPassword(s.password)
		if err != nil {
			continue
		}
		users = append(users, models.User{
			ID:         s.id,
			Name:       s.name,
			Email:      s.email,
			Password:   hash,
			Role:       s.role,
			Status:     s.status,
			JoinedDate: s.joined,
		})
	}
	return users
}

// List returns all users.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	return r.col.Load(ctx)
}

// GetByID returns a user by id.
func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail returns a user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new user. The join date is set here and never changes.
func (r *Repository) Create(ctx context.Context, name, email, passwordHash, role, status string) (models.User, error) {
	users, err := r.col.Load(ctx)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		Password:   passwordHash,
		Role:       role,
		Status:     status,
		JoinedDate: time.Now().Format("2006-01-02"),
	}
	users = append(users, u)
	if err := r.col.Save(ctx, users); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Update replaces the mutable fields of a user. Email, join date, and the
// password hash are preserved.
func (r *Repository) Update(ctx context.Context, id, name, role, status string) (models.User, error) {
	users, err := r.col.Load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		users[i].Name = name
		users[i].Role = role
		users[i].Status = status
		if err := r.col.Save(ctx, users); err != nil {
			return models.User{}, err
		}
		return users[i], nil
	}
	return models.User{}, ErrNotFound
}

// UpdatePassword replaces a user's password hash by id.
func (r *Repository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	users, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Password = passwordHash
			return r.col.Save(ctx, users)
		}
	}
	return ErrNotFound
}

// UpdatePasswordByEmail replaces a user's password hash by email.
func (r *Repository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	users, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Email == email {
			users[i].Password = passwordHash
			return r.col.Save(ctx, users)
		}
	}
	return ErrNotFound
}

// Delete removes exactly one user by id. The protected admin is refused.
func (r *Repository) Delete(ctx context.Context, id string) error {
	users, err := r.col.Load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if users[i].Email == models.ProtectedUserEmail {
			return ErrProtected
		}
		return r.col.Save(ctx, append(users[:i], users[i+1:]...))
	}
	return ErrNotFound
}
