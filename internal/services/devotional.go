package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/database"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/jackc/pgx/v5"
)

var ErrDevotionalNotFound = errors.New("devotional not found")

const devotionalColumns = `id, title, scripture, content, entry_date,
		document_name, document_path, document_url, created_by, created_at, updated_at`

type DevotionalService struct {
	db *database.DB
}

func NewDevotionalService(db *database.DB) *DevotionalService {
	return &DevotionalService{db: db}
}

func scanDevotional(row pgx.Row) (*models.Devotional, error) {
	var d models.Devotional
	err := row.Scan(
		&d.ID, &d.Title, &d.Scripture, &d.Content, &d.EntryDate,
		&d.DocumentName, &d.DocumentPath, &d.DocumentURL, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DevotionalService) Create(ctx context.Context, title string, scripture, content *string, entryDate time.Time, createdBy uuid.UUID) (*models.Devotional, error) {
	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO devotionals (title, scripture, content, entry_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+devotionalColumns+`
	`, title, scripture, content, entryDate, createdBy)

	devotional, err := scanDevotional(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create devotional: %w", err)
	}
	return devotional, nil
}

func (s *DevotionalService) List(ctx context.Context, limit int) ([]models.Devotional, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+devotionalColumns+` FROM devotionals
		ORDER BY entry_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list devotionals: %w", err)
	}
	defer rows.Close()

	devotionals := []models.Devotional{}
	for rows.Next() {
		devotional, err := scanDevotional(rows)
		if err != nil {
			return nil, err
		}
		devotionals = append(devotionals, *devotional)
	}
	return devotionals, rows.Err()
}

func (s *DevotionalService) GetByID(ctx context.Context, id uuid.UUID) (*models.Devotional, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+devotionalColumns+` FROM devotionals WHERE id = $1
	`, id)

	devotional, err := scanDevotional(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDevotionalNotFound
	}
	return devotional, err
}

func (s *DevotionalService) Update(ctx context.Context, id uuid.UUID, title string, scripture, content *string, entryDate time.Time) (*models.Devotional, error) {
	row := s.db.Pool.QueryRow(ctx, `
		UPDATE devotionals SET title = $1, scripture = $2, content = $3, entry_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+devotionalColumns+`
	`, title, scripture, content, entryDate, id)

	devotional, err := scanDevotional(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDevotionalNotFound
	}
	return devotional, err
}

// AttachDocument replaces the devotional's stored document reference and
// returns the previous path so the caller can delete the orphaned blob.
func (s *DevotionalService) AttachDocument(ctx context.Context, id uuid.UUID, file *StoredFile) (oldPath *string, err error) {
	err = s.db.Pool.QueryRow(ctx, `SELECT document_path FROM devotionals WHERE id = $1`, id).Scan(&oldPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDevotionalNotFound
	}
	if err != nil {
		return nil, err
	}

	result, err := s.db.Pool.Exec(ctx, `
		UPDATE devotionals SET document_name = $1, document_path = $2, document_url = $3, updated_at = NOW()
		WHERE id = $4
	`, file.Name, file.Path, file.URL, id)
	if err != nil {
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrDevotionalNotFound
	}
	return oldPath, nil
}

func (s *DevotionalService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM devotionals`).Scan(&count)
	return count, err
}

func (s *DevotionalService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM devotionals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDevotionalNotFound
	}
	return nil
}
