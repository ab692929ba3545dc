package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/database"
)

// TokenService persists hashed refresh tokens, one row per live session.
type TokenService struct {
	db *database.DB
}

func NewTokenService(db *database.DB) *TokenService {
	return &TokenService{db: db}
}

func (s *TokenService) StoreRefreshToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (profile_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, profileID, tokenHash, expiresAt)
	return err
}

func (s *TokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var profileID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		SELECT profile_id FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash).Scan(&profileID)
	return profileID, err
}

func (s *TokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

// RevokeAllUserTokens ends every session for the profile. Called on
// logout-everywhere and after a role grant/revoke so a stale role cannot be
// refreshed into a new token pair.
func (s *TokenService) RevokeAllUserTokens(ctx context.Context, profileID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE profile_id = $1`, profileID)
	return err
}

func (s *TokenService) CleanupExpired(ctx context.Context) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	return err
}
