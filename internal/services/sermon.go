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

var ErrSermonNotFound = errors.New("sermon not found")

const sermonColumns = `id, title, preacher, scripture, description, video_url, sermon_date, created_at, updated_at`

type SermonService struct {
	db *database.DB
}

func NewSermonService(db *database.DB) *SermonService {
	return &SermonService{db: db}
}

type SermonInput struct {
	Title       string
	Preacher    *string
	Scripture   *string
	Description *string
	VideoURL    *string
	SermonDate  time.Time
}

func scanSermon(row pgx.Row) (*models.Sermon, error) {
	var m models.Sermon
	err := row.Scan(
		&m.ID, &m.Title, &m.Preacher, &m.Scripture, &m.Description, &m.VideoURL, &m.SermonDate,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *SermonService) Create(ctx context.Context, input SermonInput) (*models.Sermon, error) {
	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO sermons (title, preacher, scripture, description, video_url, sermon_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+sermonColumns+`
	`, input.Title, input.Preacher, input.Scripture, input.Description, input.VideoURL, input.SermonDate)

	sermon, err := scanSermon(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create sermon: %w", err)
	}
	return sermon, nil
}

func (s *SermonService) List(ctx context.Context, limit int) ([]models.Sermon, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+sermonColumns+` FROM sermons
		ORDER BY sermon_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sermons: %w", err)
	}
	defer rows.Close()

	sermons := []models.Sermon{}
	for rows.Next() {
		sermon, err := scanSermon(rows)
		if err != nil {
			return nil, err
		}
		sermons = append(sermons, *sermon)
	}
	return sermons, rows.Err()
}

func (s *SermonService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sermon, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+sermonColumns+` FROM sermons WHERE id = $1
	`, id)

	sermon, err := scanSermon(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSermonNotFound
	}
	return sermon, err
}

func (s *SermonService) Update(ctx context.Context, id uuid.UUID, input SermonInput) (*models.Sermon, error) {
	row := s.db.Pool.QueryRow(ctx, `
		UPDATE sermons SET title = $1, preacher = $2, scripture = $3, description = $4,
			video_url = $5, sermon_date = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+sermonColumns+`
	`, input.Title, input.Preacher, input.Scripture, input.Description, input.VideoURL, input.SermonDate, id)

	sermon, err := scanSermon(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSermonNotFound
	}
	return sermon, err
}

func (s *SermonService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sermons`).Scan(&count)
	return count, err
}

func (s *SermonService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM sermons WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSermonNotFound
	}
	return nil
}
