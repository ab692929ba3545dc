package models

import (
	"time"

	"github.com/google/uuid"
)

// WordEntry is a "word for the day" post.
type WordEntry struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Scripture *string    `json:"scripture,omitempty"`
	Content   string     `json:"content"`
	EntryDate time.Time  `json:"entry_date"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Devotional is a daily devotional, optionally backed by an uploaded document.
type Devotional struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Scripture    *string    `json:"scripture,omitempty"`
	Content      *string    `json:"content,omitempty"`
	EntryDate    time.Time  `json:"entry_date"`
	DocumentName *string    `json:"document_name,omitempty"`
	DocumentPath *string    `json:"-"`
	DocumentURL  *string    `json:"document_url,omitempty"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Sermon struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Preacher    *string   `json:"preacher,omitempty"`
	Scripture   *string   `json:"scripture,omitempty"`
	Description *string   `json:"description,omitempty"`
	VideoURL    *string   `json:"video_url,omitempty"`
	SermonDate  time.Time `json:"sermon_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AudioMessage struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Speaker         *string   `json:"speaker,omitempty"`
	AudioURL        string    `json:"audio_url"`
	DurationSeconds *int      `json:"duration_seconds,omitempty"`
	MessageDate     time.Time `json:"message_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Outline is an uploaded Sunday-school lesson outline. The file reference is
// required; outlines without a stored document do not exist.
type Outline struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	OutlineDate time.Time  `json:"outline_date"`
	FileName    string     `json:"file_name"`
	FilePath    string     `json:"-"`
	FileURL     string     `json:"file_url"`
	UploadedBy  *uuid.UUID `json:"uploaded_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
