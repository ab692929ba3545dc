package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/oauth"
	"github.com/gracechapel/church-admin-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateProfile creates a test profile with default values
func (f *Fixtures) CreateProfile(t *testing.T, opts ...ProfileOption) *models.Profile {
	t.Helper()
	f.counter++

	firstName := fmt.Sprintf("Test%d", f.counter)
	lastName := "Member"
	profile := &models.Profile{
		Email:     fmt.Sprintf("member%d@example.com", f.counter),
		FirstName: &firstName,
		LastName:  &lastName,
		Role:      models.RoleMember,
	}

	for _, opt := range opts {
		opt(profile)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, first_name, middle_name, last_name, role, phone_number, home_address, marital_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, profile.Email, profile.PasswordHash, profile.FirstName, profile.MiddleName,
		profile.LastName, profile.Role, profile.PhoneNumber, profile.HomeAddress,
		profile.MaritalStatus).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	return profile
}

// ProfileOption configures a test profile
type ProfileOption func(*models.Profile)

// WithEmail sets the profile's email
func WithEmail(email string) ProfileOption {
	return func(p *models.Profile) {
		p.Email = email
	}
}

// WithRole sets the profile's role
func WithRole(role models.Role) ProfileOption {
	return func(p *models.Profile) {
		p.Role = role
	}
}

// WithPassword sets a bcrypt password hash on the profile
func WithPassword(t *testing.T, password string) ProfileOption {
	return func(p *models.Profile) {
		hash, err := services.HashPassword(password)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		p.PasswordHash = &hash
	}
}

// WithPhoneNumber sets the profile's phone number
func WithPhoneNumber(phone string) ProfileOption {
	return func(p *models.Profile) {
		p.PhoneNumber = &phone
	}
}

// CreateWordEntry creates a test word-for-the-day entry
func (f *Fixtures) CreateWordEntry(t *testing.T, createdBy uuid.UUID, entryDate time.Time) *models.WordEntry {
	t.Helper()
	f.counter++

	entry := &models.WordEntry{
		Title:     fmt.Sprintf("Word %d", f.counter),
		Content:   "Test content",
		EntryDate: entryDate,
		CreatedBy: &createdBy,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO word_entries (title, content, entry_date, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, entry.Title, entry.Content, entry.EntryDate, entry.CreatedBy).Scan(
		&entry.ID, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create word entry: %v", err)
	}

	return entry
}

// CreateSermon creates a test sermon
func (f *Fixtures) CreateSermon(t *testing.T, sermonDate time.Time) *models.Sermon {
	t.Helper()
	f.counter++

	sermon := &models.Sermon{
		Title:      fmt.Sprintf("Sermon %d", f.counter),
		SermonDate: sermonDate,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO sermons (title, sermon_date)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, sermon.Title, sermon.SermonDate).Scan(&sermon.ID, &sermon.CreatedAt, &sermon.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create sermon: %v", err)
	}

	return sermon
}

// CreateRefreshToken creates a test refresh token row
func (f *Fixtures) CreateRefreshToken(t *testing.T, profileID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (profile_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, profileID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, name, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}
