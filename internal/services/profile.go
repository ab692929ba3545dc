package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/oauth"
	"github.com/jackc/pgx/v5"
)

var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, email, password_hash, first_name, middle_name, last_name, role,
		phone_number, home_address, marital_status, profile_image_url, provider, provider_id,
		created_at, updated_at`

type ProfileService struct {
	db *database.DB
}

func NewProfileService(db *database.DB) *ProfileService {
	return &ProfileService{db: db}
}

type CreateProfileInput struct {
	Email         string
	Password      string
	FirstName     *string
	MiddleName    *string
	LastName      *string
	PhoneNumber   *string
	HomeAddress   *string
	MaritalStatus *string
	Role          models.Role
}

type UpdateProfileInput struct {
	FirstName     *string
	MiddleName    *string
	LastName      *string
	PhoneNumber   *string
	HomeAddress   *string
	MaritalStatus *string
}

// scanProfile decodes one profiles row. The role column is validated against
// the closed role set; rows with unknown role values are rejected rather than
// passed through.
func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	var rawRole string
	err := row.Scan(
		&p.ID, &p.Email, &p.PasswordHash, &p.FirstName, &p.MiddleName, &p.LastName, &rawRole,
		&p.PhoneNumber, &p.HomeAddress, &p.MaritalStatus, &p.ProfileImageURL, &p.Provider, &p.ProviderID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, fmt.Errorf("malformed profile row %s: %w", p.ID, err)
	}
	p.Role = role
	return &p, nil
}

func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (*models.Profile, error) {
	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	var passwordHash *string
	if input.Password != "" {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = &hash
	}

	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, password_hash, first_name, middle_name, last_name, role,
			phone_number, home_address, marital_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+profileColumns+`
	`, strings.ToLower(input.Email), passwordHash, input.FirstName, input.MiddleName, input.LastName,
		role.String(), input.PhoneNumber, input.HomeAddress, input.MaritalStatus)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1
	`, id)

	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	numbers, err := s.membershipNumbers(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.MembershipNumbers = numbers

	return profile, nil
}

func (s *ProfileService) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE email = $1
	`, strings.ToLower(email))

	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

func (s *ProfileService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.Profile, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+profileColumns+` FROM profiles
		WHERE provider = $1 AND provider_id = $2
	`, info.Provider, info.ID)

	profile, err := scanProfile(row)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// An existing password account with the same email is linked instead of
	// creating a duplicate profile.
	row = s.db.Pool.QueryRow(ctx, `
		UPDATE profiles SET provider = $1, provider_id = $2, updated_at = NOW()
		WHERE email = $3
		RETURNING `+profileColumns+`
	`, info.Provider, info.ID, strings.ToLower(info.Email))

	profile, err = scanProfile(row)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	first, last := splitName(info.Name)
	row = s.db.Pool.QueryRow(ctx, `
		INSERT INTO profiles (email, first_name, last_name, profile_image_url, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+profileColumns+`
	`, strings.ToLower(info.Email), first, last, nullableString(info.AvatarURL), info.Provider, info.ID)

	profile, err = scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// GetRole re-reads only the stored role. Authority checks go through this
// rather than trusting token claims.
func (s *ProfileService) GetRole(ctx context.Context, id uuid.UUID) (models.Role, error) {
	var rawRole string
	err := s.db.Pool.QueryRow(ctx, `SELECT role FROM profiles WHERE id = $1`, id).Scan(&rawRole)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrProfileNotFound
	}
	if err != nil {
		return "", err
	}
	return models.ParseRole(rawRole)
}

func (s *ProfileService) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	where := []string{}
	args := []any{}

	if filter.Role != nil {
		args = append(args, filter.Role.String())
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(first_name ILIKE $%d OR middle_name ILIKE $%d OR last_name ILIKE $%d OR phone_number ILIKE $%d)",
			n, n, n, n))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		where = append(where, fmt.Sprintf("created_at > $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if filter.UpdatedAfter != nil {
		args = append(args, *filter.UpdatedAfter)
		where = append(where, fmt.Sprintf("updated_at > $%d", len(args)))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT `+profileColumns+` FROM profiles%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause, len(args)-1, len(args))

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, input UpdateProfileInput) (*models.Profile, error) {
	set := []string{}
	args := []any{}

	add := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	add("first_name", input.FirstName)
	add("middle_name", input.MiddleName)
	add("last_name", input.LastName)
	add("phone_number", input.PhoneNumber)
	add("home_address", input.HomeAddress)
	add("marital_status", input.MaritalStatus)

	if len(set) == 0 {
		return s.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE profiles SET %s, updated_at = NOW() WHERE id = $%d RETURNING `+profileColumns,
		strings.Join(set, ", "), len(args))

	profile, err := scanProfile(s.db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

func (s *ProfileService) UpdateImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE profiles SET profile_image_url = $1, updated_at = NOW() WHERE id = $2
	`, imageURL, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Stats reports the dashboard counters: everyone, profiles touched in the last
// 30 days, profiles created in the last 30 days.
func (s *ProfileService) Stats(ctx context.Context) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE updated_at > NOW() - INTERVAL '30 days'),
			COUNT(*) FILTER (WHERE created_at > NOW() - INTERVAL '30 days')
		FROM profiles
	`).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.NewUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile stats: %w", err)
	}
	return &stats, nil
}

func (s *ProfileService) membershipNumbers(ctx context.Context, profileID uuid.UUID) ([]models.MembershipNumber, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, profile_id, year, membership_number, created_at
		FROM membership_numbers
		WHERE profile_id = $1
		ORDER BY year DESC
	`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	numbers := []models.MembershipNumber{}
	for rows.Next() {
		var n models.MembershipNumber
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.Year, &n.MembershipNumber, &n.CreatedAt); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}

func splitName(full string) (*string, *string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return nil, nil
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return &parts[0], nil
	}
	return &parts[0], &parts[1]
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
