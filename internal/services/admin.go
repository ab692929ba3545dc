package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotAuthorized = errors.New("caller must be a super admin to manage roles")
	ErrInvalidAction = errors.New("action must be grant or revoke")
)

type RoleAction string

const (
	RoleActionGrant  RoleAction = "grant"
	RoleActionRevoke RoleAction = "revoke"
)

func ParseRoleAction(raw string) (RoleAction, error) {
	switch RoleAction(raw) {
	case RoleActionGrant:
		return RoleActionGrant, nil
	case RoleActionRevoke:
		return RoleActionRevoke, nil
	default:
		return "", ErrInvalidAction
	}
}

// AdminService changes profile roles on behalf of a super admin.
type AdminService struct {
	db           *database.DB
	tokenService *TokenService
}

func NewAdminService(db *database.DB, tokenService *TokenService) *AdminService {
	return &AdminService{db: db, tokenService: tokenService}
}

// ManageRole grants or revokes ADMIN on the target profile. The caller's
// authority is re-read from the database at call time; the role claim in the
// caller's token is never trusted for this. On success the target's refresh
// tokens are revoked so the old role cannot outlive its access token TTL.
func (s *AdminService) ManageRole(ctx context.Context, callerID, targetID uuid.UUID, action RoleAction) (models.Role, error) {
	if action != RoleActionGrant && action != RoleActionRevoke {
		return "", ErrInvalidAction
	}

	var rawRole string
	err := s.db.Pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, callerID).Scan(&rawRole)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotAuthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to check caller role: %w", err)
	}

	callerRole, err := models.ParseRole(rawRole)
	if err != nil {
		return "", fmt.Errorf("malformed caller role: %w", err)
	}
	if callerRole != models.RoleSuperAdmin {
		return "", ErrNotAuthorized
	}

	newRole := models.RoleAdmin
	if action == RoleActionRevoke {
		newRole = models.RoleMember
	}

	result, err := s.db.Pool.Exec(ctx, `
		UPDATE profiles SET role = $1, updated_at = NOW() WHERE id = $2
	`, newRole.String(), targetID)
	if err != nil {
		return "", fmt.Errorf("failed to update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return "", ErrProfileNotFound
	}

	if err := s.tokenService.RevokeAllUserTokens(ctx, targetID); err != nil {
		// The role change already landed; a failed revocation only delays the
		// demotion until the target's access token expires.
		return newRole, nil
	}

	return newRole, nil
}

// BootstrapSuperAdmin promotes an existing account to SUPER_ADMIN by email.
// Used once, by the setup endpoint guarded with the shared secret and by the
// operator CLI.
func (s *AdminService) BootstrapSuperAdmin(ctx context.Context, email string) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET role = $1, updated_at = NOW()
		WHERE LOWER(email) = LOWER($2)
		RETURNING `+profileColumns+`
	`, models.RoleSuperAdmin.String(), email)

	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to promote super admin: %w", err)
	}
	return profile, nil
}
