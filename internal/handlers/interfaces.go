package handlers

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/oauth"
	"github.com/gracechapel/church-admin-api/internal/services"
)

// ProfileServiceInterface defines the methods used by handlers from ProfileService
type ProfileServiceInterface interface {
	Create(ctx context.Context, input services.CreateProfileInput) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.Profile, error)
	GetRole(ctx context.Context, id uuid.UUID) (models.Role, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error)
	Update(ctx context.Context, id uuid.UUID, input services.UpdateProfileInput) (*models.Profile, error)
	UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*models.ProfileStats, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, profileID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string, role models.Role) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// AdminServiceInterface defines the methods used by handlers from AdminService
type AdminServiceInterface interface {
	ManageRole(ctx context.Context, callerID, targetID uuid.UUID, action services.RoleAction) (models.Role, error)
	BootstrapSuperAdmin(ctx context.Context, email string) (*models.Profile, error)
}

// WordServiceInterface defines the methods used by handlers from WordService
type WordServiceInterface interface {
	Create(ctx context.Context, title string, scripture *string, content string, entryDate time.Time, createdBy uuid.UUID) (*models.WordEntry, error)
	List(ctx context.Context, limit int) ([]models.WordEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.WordEntry, error)
	Update(ctx context.Context, id uuid.UUID, title string, scripture *string, content string, entryDate time.Time) (*models.WordEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DevotionalServiceInterface defines the methods used by handlers from DevotionalService
type DevotionalServiceInterface interface {
	Create(ctx context.Context, title string, scripture, content *string, entryDate time.Time, createdBy uuid.UUID) (*models.Devotional, error)
	List(ctx context.Context, limit int) ([]models.Devotional, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Devotional, error)
	Update(ctx context.Context, id uuid.UUID, title string, scripture, content *string, entryDate time.Time) (*models.Devotional, error)
	AttachDocument(ctx context.Context, id uuid.UUID, file *services.StoredFile) (*string, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SermonServiceInterface defines the methods used by handlers from SermonService
type SermonServiceInterface interface {
	Create(ctx context.Context, input services.SermonInput) (*models.Sermon, error)
	List(ctx context.Context, limit int) ([]models.Sermon, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sermon, error)
	Update(ctx context.Context, id uuid.UUID, input services.SermonInput) (*models.Sermon, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AudioServiceInterface defines the methods used by handlers from AudioService
type AudioServiceInterface interface {
	Create(ctx context.Context, input services.AudioMessageInput) (*models.AudioMessage, error)
	List(ctx context.Context, limit int) ([]models.AudioMessage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AudioMessage, error)
	Update(ctx context.Context, id uuid.UUID, input services.AudioMessageInput) (*models.AudioMessage, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OutlineServiceInterface defines the methods used by handlers from OutlineService
type OutlineServiceInterface interface {
	Create(ctx context.Context, title string, outlineDate time.Time, file *services.StoredFile, uploadedBy uuid.UUID) (*models.Outline, error)
	List(ctx context.Context) ([]models.Outline, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Outline, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StorageServiceInterface defines the methods used by handlers from StorageService
type StorageServiceInterface interface {
	SaveDocument(category, filename, contentType string, size int64, r io.Reader) (*services.StoredFile, error)
	SaveImage(category, filename, contentType string, size int64, r io.Reader) (*services.StoredFile, error)
	Delete(relPath string) error
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendRoleChanged(to, newRole string) error
}
