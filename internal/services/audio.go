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

var ErrAudioMessageNotFound = errors.New("audio message not found")

const audioColumns = `id, title, speaker, audio_url, duration_seconds, message_date, created_at, updated_at`

type AudioService struct {
	db *database.DB
}

func NewAudioService(db *database.DB) *AudioService {
	return &AudioService{db: db}
}

type AudioMessageInput struct {
	Title           string
	Speaker         *string
	AudioURL        string
	DurationSeconds *int
	MessageDate     time.Time
}

func scanAudioMessage(row pgx.Row) (*models.AudioMessage, error) {
	var m models.AudioMessage
	err := row.Scan(
		&m.ID, &m.Title, &m.Speaker, &m.AudioURL, &m.DurationSeconds, &m.MessageDate,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *AudioService) Create(ctx context.Context, input AudioMessageInput) (*models.AudioMessage, error) {
	row := s.db.Pool.QueryRow(ctx, `
		INSERT INTO audio_messages (title, speaker, audio_url, duration_seconds, message_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+audioColumns+`
	`, input.Title, input.Speaker, input.AudioURL, input.DurationSeconds, input.MessageDate)

	message, err := scanAudioMessage(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio message: %w", err)
	}
	return message, nil
}

func (s *AudioService) List(ctx context.Context, limit int) ([]models.AudioMessage, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+audioColumns+` FROM audio_messages
		ORDER BY message_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audio messages: %w", err)
	}
	defer rows.Close()

	messages := []models.AudioMessage{}
	for rows.Next() {
		message, err := scanAudioMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}
	return messages, rows.Err()
}

func (s *AudioService) GetByID(ctx context.Context, id uuid.UUID) (*models.AudioMessage, error) {
	row := s.db.Pool.QueryRow(ctx, `
		SELECT `+audioColumns+` FROM audio_messages WHERE id = $1
	`, id)

	message, err := scanAudioMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAudioMessageNotFound
	}
	return message, err
}

func (s *AudioService) Update(ctx context.Context, id uuid.UUID, input AudioMessageInput) (*models.AudioMessage, error) {
	row := s.db.Pool.QueryRow(ctx, `
		UPDATE audio_messages SET title = $1, speaker = $2, audio_url = $3,
			duration_seconds = $4, message_date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+audioColumns+`
	`, input.Title, input.Speaker, input.AudioURL, input.DurationSeconds, input.MessageDate, id)

	message, err := scanAudioMessage(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAudioMessageNotFound
	}
	return message, err
}

func (s *AudioService) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM audio_messages`).Scan(&count)
	return count, err
}

func (s *AudioService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM audio_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAudioMessageNotFound
	}
	return nil
}
