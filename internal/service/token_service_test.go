package service

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/database"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*TokenService, *models.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	user := &models.User{Name: "Jane Doe", Email: "jane@example.com", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	return NewTokenService(repository.NewTokenRepository(db)), user
}

func TestIssueAndAuthenticate(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	plaintext, err := svc.Issue(ctx, user, user.Email)
	require.NoError(t, err)

	parts := strings.SplitN(plaintext, "|", 2)
	require.Len(t, parts, 2)
	assert.Len(t, parts[1], 40)

	authed, err := svc.Authenticate(ctx, plaintext)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Equal(t, user.Email, authed.Email)
}

func TestAuthenticateRejectsTamperedSecret(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	plaintext, err := svc.Issue(ctx, user, user.Email)
	require.NoError(t, err)

	parts := strings.SplitN(plaintext, "|", 2)
	flipped := parts[0] + "|" + strings.Repeat("0", len(parts[1]))

	_, err = svc.Authenticate(ctx, flipped)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestAuthenticateRejectsMalformedTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, bearer := range []string{"", "no-separator", "|secret", "abc|secret", "0|secret", "1|"} {
		_, err := svc.Authenticate(ctx, bearer)
		assert.Error(t, err, "bearer %q must be rejected", bearer)
	}
}

func TestAuthenticateRejectsUnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "9999|"+strings.Repeat("a", 40))
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestRevokeAllInvalidatesTokens(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	first, err := svc.Issue(ctx, user, user.Email)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, user, user.Email)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAll(ctx, user.ID))

	_, err = svc.Authenticate(ctx, first)
	assert.Error(t, err)
	_, err = svc.Authenticate(ctx, second)
	assert.Error(t, err)
}

func TestIssuedTokensAreUnique(t *testing.T) {
	svc, user := newTestService(t)
	ctx := context.Background()

	seen := map[string]struct{}{}
	for i := 0; i < 10; i++ {
		plaintext, err := svc.Issue(ctx, user, user.Email)
		require.NoError(t, err)
		_, dup := seen[plaintext]
		require.False(t, dup)
		seen[plaintext] = struct{}{}
	}
}
