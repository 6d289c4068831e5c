// Package service contains business logic shared by HTTP handlers.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// secretBytes yields a 40-character hex secret, matching the length of the
// original implementation's token strings.
const secretBytes = 20

// TokenService issues and validates persisted opaque bearer tokens.
// The plaintext handed to clients is "<id>|<secret>"; only the SHA-256
// hash of the secret is stored.
type TokenService struct {
	tokens repository.TokenRepository
}

// NewTokenService returns a TokenService backed by the given repository.
func NewTokenService(tokens repository.TokenRepository) *TokenService {
	return &TokenService{tokens: tokens}
}

// Issue creates a new token for the user and returns its plaintext form.
// name records what the token was issued for (the login email).
func (s *TokenService) Issue(ctx context.Context, user *models.User, name string) (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", models.NewInternalError(err)
	}
	secret := hex.EncodeToString(buf)

	token := &models.AccessToken{
		UserID:    user.ID,
		Name:      name,
		TokenHash: hashSecret(secret),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}

	return fmt.Sprintf("%d|%s", token.ID, secret), nil
}

// Authenticate resolves a plaintext bearer token to its user. The stored
// hash is compared in constant time and usage is recorded best-effort.
func (s *TokenService) Authenticate(ctx context.Context, bearer string) (*models.User, error) {
	id, secret, ok := splitToken(bearer)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	token, err := s.tokens.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthorizedError("Invalid or expired token")
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(token.TokenHash), []byte(hashSecret(secret))) != 1 {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}
	if token.User == nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	_ = s.tokens.Touch(ctx, token.ID)

	return token.User, nil
}

// RevokeAll deletes every outstanding token for the user.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	return s.tokens.DeleteByUserID(ctx, userID)
}

func splitToken(bearer string) (uint, string, bool) {
	parts := strings.SplitN(bearer, "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", false
	}
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || id == 0 {
		return 0, "", false
	}
	return uint(id), parts[1], true
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
