package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/pkg/utils"
)

func newTestRepo() *Repository {
	return NewRepository(store.NewMemoryStore(), nil)
}

func TestSeedRoster(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 6)

	admin, err := repo.GetByEmail(ctx, models.ProtectedUserEmail)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, utils.CheckPassword("sall123", admin.Password))

	organizer, err := repo.GetByEmail(ctx, "conde@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganisateur, organizer.Role)
	assert.True(t, utils.CheckPassword("conde123", organizer.Password))
}

func TestDeleteProtectedUserRefused(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	admin, err := repo.GetByEmail(ctx, models.ProtectedUserEmail)
	require.NoError(t, err)

	err = repo.Delete(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrProtected)

	// Still present after the refusal.
	_, err = repo.GetByEmail(ctx, models.ProtectedUserEmail)
	assert.NoError(t, err)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	target, err := repo.GetByEmail(ctx, "fatou.ndiaye@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, target.ID))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)
	_, err = repo.GetByID(ctx, target.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePreservesEmailJoinDateAndPassword(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	before, err := repo.GetByEmail(ctx, "moussa.traore@example.com")
	require.NoError(t, err)

	updated, err := repo.Update(ctx, before.ID, "Moussa T.", models.RoleAdmin, models.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, "Moussa T.", updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.JoinedDate, updated.JoinedDate)
	assert.Equal(t, before.Password, updated.Password)
}

func TestCreateSetsJoinDateAndID(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	hash, err := utils.HashPassword("secret99")
	require.NoError(t, err)
	u, err := repo.Create(ctx, "Nouveau", "nouveau@example.com", hash, models.RoleViewer, models.UserStatusPending)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEmpty(t, u.JoinedDate)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "nouveau@example.com", got.Email)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()

	u, err := repo.GetByEmail(ctx, "samba.fall@example.com")
	require.NoError(t, err)

	hash, err := utils.HashPassword("fresh-pass")
	require.NoError(t, err)
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, hash))

	after, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword("fresh-pass", after.Password))
}
