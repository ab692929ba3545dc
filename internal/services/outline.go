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

var ErrOutlineNotFound = errors.New("outline not found")

const outlineColumns = `id, title, outline_date, file_name, file_path, file_url, uploaded_by, created_at`

// OutlineService manages Sunday-school lesson outlines. Every outline refers
// to a stored document.
type OutlineService struct {
	db *database.DB
}

func NewOutlineService(db *database.DB) *OutlineService {
	return &OutlineService{db: db}
}

func scanOutline(row pgx.Row) (*models.Outline, error) {
	var o models.Outline
	err := row.Scan(
		&o.ID, &o.Title, &o.OutlineDate, &o.FileName, &o.FilePath, &o.FileURL, &o.UploadedBy, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *OutlineService) Create(ctx context.Context, title string, outlineDate time.Time, file *StoredFile, uploadedBy uuid.UUID) (*models.Outline, error) {
	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO sunday_school_outlines (title, outline_date, file_name, file_path, file_url, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+outlineColumns+`
	`, title, outlineDate, file.Name, file.Path, file.URL, uploadedBy)

	outline, err := scanOutline(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create outline: %w", err)
	}
	return outline, nil
}

// List returns outlines newest lesson first.
func (s *OutlineService) List(ctx context.Context) ([]models.Outline, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+outlineColumns+` FROM sunday_school_outlines
		ORDER BY outline_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outlines: %w", err)
	}
	defer rows.Close()

	outlines := []models.Outline{}
	for rows.Next() {
		outline, err := scanOutline(rows)
		if err != nil {
			return nil, err
		}
		outlines = append(outlines, *outline)
	}
	return outlines, rows.Err()
}

func (s *OutlineService) GetByID(ctx context.Context, id uuid.UUID) (*models.Outline, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+outlineColumns+` FROM sunday_school_outlines WHERE id = $1
	`, id)

	outline, err := scanOutline(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOutlineNotFound
	}
	return outline, err
}

func (s *OutlineService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sunday_school_outlines`).Scan(&count)
	return count, err
}

func (s *OutlineService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM sunday_school_outlines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrOutlineNotFound
	}
	return nil
}
