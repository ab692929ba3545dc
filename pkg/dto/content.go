package dto

type WordEntryRequest struct {
	Title     string  `json:"title"`
	Scripture *string `json:"scripture,omitempty"`
	Content   string  `json:"content"`
	EntryDate string  `json:"entry_date"`
}

type DevotionalRequest struct {
	Title     string  `json:"title"`
	Scripture *string `json:"scripture,omitempty"`
	Content   *string `json:"content,omitempty"`
	EntryDate string  `json:"entry_date"`
}

type SermonRequest struct {
	Title       string  `json:"title"`
	Preacher    *string `json:"preacher,omitempty"`
	Scripture   *string `json:"scripture,omitempty"`
	Description *string `json:"description,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
	SermonDate  string  `json:"sermon_date"`
}

type AudioMessageRequest struct {
	Title           string  `json:"title"`
	Speaker         *string `json:"speaker,omitempty"`
	AudioURL        string  `json:"audio_url"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
	MessageDate     string  `json:"message_date"`
}

// OverviewResponse backs the dashboard landing page cards.
type OverviewResponse struct {
	TotalUsers      int `json:"total_users"`
	ActiveUsers     int `json:"active_users"`
	NewUsers        int `json:"new_users"`
	TotalDevotional int `json:"total_devotionals"`
	TotalSermons    int `json:"total_sermons"`
	TotalAudio      int `json:"total_audio_messages"`
	TotalOutlines   int `json:"total_outlines"`
}
