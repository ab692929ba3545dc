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

var ErrWordEntryNotFound = errors.New("word entry not found")

const wordColumns = `id, title, scripture, content, entry_date, created_by, created_at, updated_at`

// WordService manages "word for the day" entries.
type WordService struct {
	db *database.DB
}

func NewWordService(db *database.DB) *WordService {
	return &WordService{db: db}
}

func (s *WordService) Create(ctx context.Context, title string, scripture *string, content string, entryDate time.Time, createdBy uuid.UUID) (*models.WordEntry, error) {
	var e models.WordEntry
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO word_entries (title, scripture, content, entry_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+wordColumns+`
	`, title, scripture, content, entryDate, createdBy).Scan(
		&e.ID, &e.Title, &e.Scripture, &e.Content, &e.EntryDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create word entry: %w", err)
	}
	return &e, nil
}

func (s *WordService) List(ctx context.Context, limit int) ([]models.WordEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+wordColumns+` FROM word_entries
		ORDER BY entry_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list word entries: %w", err)
	}
	defer rows.Close()

	entries := []models.WordEntry{}
	for rows.Next() {
		var e models.WordEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Scripture, &e.Content, &e.EntryDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *WordService) GetByID(ctx context.Context, id uuid.UUID) (*models.WordEntry, error) {
	var e models.WordEntry
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+wordColumns+` FROM word_entries WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Scripture, &e.Content, &e.EntryDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWordEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *WordService) Update(ctx context.Context, id uuid.UUID, title string, scripture *string, content string, entryDate time.Time) (*models.WordEntry, error) {
	var e models.WordEntry
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE word_entries SET title = $1, scripture = $2, content = $3, entry_date = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+wordColumns+`
	`, title, scripture, content, entryDate, id).Scan(
		&e.ID, &e.Title, &e.Scripture, &e.Content, &e.EntryDate, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWordEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *WordService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM word_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrWordEntryNotFound
	}
	return nil
}
