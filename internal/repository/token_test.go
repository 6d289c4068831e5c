package repository

import (
	"context"
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Jane Doe", Email: email, Password: "hashed"}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestTokenCreateAndGetPreloadsUser(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, userRepo, "jane@example.com")

	token := &models.AccessToken{
		UserID:    user.ID,
		Name:      user.Email,
		TokenHash: "deadbeef",
	}
	require.NoError(t, repo.Create(ctx, token))
	require.NotZero(t, token.ID)

	fetched, err := repo.GetByID(ctx, token.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.User)
	assert.Equal(t, user.Email, fetched.User.Email)
	assert.Nil(t, fetched.LastUsedAt)
}

func TestTokenGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewTokenRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	assert.True(t, models.IsNotFound(err))
}

func TestTokenTouchSetsLastUsed(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	user := seedUser(t, userRepo, "jane@example.com")
	token := &models.AccessToken{UserID: user.ID, Name: user.Email, TokenHash: "deadbeef"}
	require.NoError(t, repo.Create(ctx, token))

	require.NoError(t, repo.Touch(ctx, token.ID))

	fetched, err := repo.GetByID(ctx, token.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.LastUsedAt)
}

func TestTokenDeleteByUserID(t *testing.T) {
	db := newTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewTokenRepository(db)
	ctx := context.Background()

	jane := seedUser(t, userRepo, "jane@example.com")
	john := seedUser(t, userRepo, "john@example.com")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.AccessToken{
			UserID: jane.ID, Name: jane.Email, TokenHash: string(rune('a' + i)),
		}))
	}
	johnToken := &models.AccessToken{UserID: john.ID, Name: john.Email, TokenHash: "keep"}
	require.NoError(t, repo.Create(ctx, johnToken))

	require.NoError(t, repo.DeleteByUserID(ctx, jane.ID))

	var count int64
	require.NoError(t, db.Model(&models.AccessToken{}).Where("user_id = ?", jane.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Other users' tokens survive
	_, err := repo.GetByID(ctx, johnToken.ID)
	assert.NoError(t, err)
}
