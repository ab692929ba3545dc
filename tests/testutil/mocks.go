package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/oauth"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockProfileService mocks the ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Create(ctx context.Context, input services.CreateProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.Profile, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockProfileService) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Profile), args.Int(1), args.Error(2)
}

func (m *MockProfileService) Update(ctx context.Context, id uuid.UUID, input services.UpdateProfileInput) (*models.Profile, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProfileService) Stats(ctx context.Context) (*models.ProfileStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileStats), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, profileID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, profileID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string, role models.Role) (*services.TokenPair, error) {
	args := m.Called(userID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockAdminService mocks the AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ManageRole(ctx context.Context, callerID, targetID uuid.UUID, action services.RoleAction) (models.Role, error) {
	args := m.Called(ctx, callerID, targetID, action)
	return args.Get(0).(models.Role), args.Error(1)
}

func (m *MockAdminService) BootstrapSuperAdmin(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// MockWordService mocks the WordService
type MockWordService struct {
	mock.Mock
}

func (m *MockWordService) Create(ctx context.Context, title string, scripture *string, content string, entryDate time.Time, createdBy uuid.UUID) (*models.WordEntry, error) {
	args := m.Called(ctx, title, scripture, content, entryDate, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordEntry), args.Error(1)
}

func (m *MockWordService) List(ctx context.Context, limit int) ([]models.WordEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.WordEntry), args.Error(1)
}

func (m *MockWordService) GetByID(ctx context.Context, id uuid.UUID) (*models.WordEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordEntry), args.Error(1)
}

func (m *MockWordService) Update(ctx context.Context, id uuid.UUID, title string, scripture *string, content string, entryDate time.Time) (*models.WordEntry, error) {
	args := m.Called(ctx, id, title, scripture, content, entryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordEntry), args.Error(1)
}

func (m *MockWordService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDevotionalService mocks the DevotionalService
type MockDevotionalService struct {
	mock.Mock
}

func (m *MockDevotionalService) Create(ctx context.Context, title string, scripture, content *string, entryDate time.Time, createdBy uuid.UUID) (*models.Devotional, error) {
	args := m.Called(ctx, title, scripture, content, entryDate, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Devotional), args.Error(1)
}

func (m *MockDevotionalService) List(ctx context.Context, limit int) ([]models.Devotional, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Devotional), args.Error(1)
}

func (m *MockDevotionalService) GetByID(ctx context.Context, id uuid.UUID) (*models.Devotional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Devotional), args.Error(1)
}

func (m *MockDevotionalService) Update(ctx context.Context, id uuid.UUID, title string, scripture, content *string, entryDate time.Time) (*models.Devotional, error) {
	args := m.Called(ctx, id, title, scripture, content, entryDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Devotional), args.Error(1)
}

func (m *MockDevotionalService) AttachDocument(ctx context.Context, id uuid.UUID, file *services.StoredFile) (*string, error) {
	args := m.Called(ctx, id, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockDevotionalService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDevotionalService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSermonService mocks the SermonService
type MockSermonService struct {
	mock.Mock
}

func (m *MockSermonService) Create(ctx context.Context, input services.SermonInput) (*models.Sermon, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sermon), args.Error(1)
}

func (m *MockSermonService) List(ctx context.Context, limit int) ([]models.Sermon, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Sermon), args.Error(1)
}

func (m *MockSermonService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sermon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sermon), args.Error(1)
}

func (m *MockSermonService) Update(ctx context.Context, id uuid.UUID, input services.SermonInput) (*models.Sermon, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sermon), args.Error(1)
}

func (m *MockSermonService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSermonService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAudioService mocks the AudioService
type MockAudioService struct {
	mock.Mock
}

func (m *MockAudioService) Create(ctx context.Context, input services.AudioMessageInput) (*models.AudioMessage, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AudioMessage), args.Error(1)
}

func (m *MockAudioService) List(ctx context.Context, limit int) ([]models.AudioMessage, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.AudioMessage), args.Error(1)
}

func (m *MockAudioService) GetByID(ctx context.Context, id uuid.UUID) (*models.AudioMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AudioMessage), args.Error(1)
}

func (m *MockAudioService) Update(ctx context.Context, id uuid.UUID, input services.AudioMessageInput) (*models.AudioMessage, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AudioMessage), args.Error(1)
}

func (m *MockAudioService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockAudioService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOutlineService mocks the OutlineService
type MockOutlineService struct {
	mock.Mock
}

func (m *MockOutlineService) Create(ctx context.Context, title string, outlineDate time.Time, file *services.StoredFile, uploadedBy uuid.UUID) (*models.Outline, error) {
	args := m.Called(ctx, title, outlineDate, file, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Outline), args.Error(1)
}

func (m *MockOutlineService) List(ctx context.Context) ([]models.Outline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Outline), args.Error(1)
}

func (m *MockOutlineService) GetByID(ctx context.Context, id uuid.UUID) (*models.Outline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Outline), args.Error(1)
}

func (m *MockOutlineService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockOutlineService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStorageService mocks the StorageService
type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) SaveDocument(category, filename, contentType string, size int64, r io.Reader) (*services.StoredFile, error) {
	args := m.Called(category, filename, contentType, size, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StoredFile), args.Error(1)
}

func (m *MockStorageService) SaveImage(category, filename, contentType string, size int64, r io.Reader) (*services.StoredFile, error) {
	args := m.Called(category, filename, contentType, size, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.StoredFile), args.Error(1)
}

func (m *MockStorageService) Delete(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRoleChanged(to, newRole string) error {
	args := m.Called(to, newRole)
	return args.Error(0)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
