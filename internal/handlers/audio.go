package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AudioHandler struct {
	audioService AudioServiceInterface
}

func NewAudioHandler(audioService AudioServiceInterface) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

func (h *AudioHandler) bindInput(c *drift.Context) (*services.AudioMessageInput, bool) {
	var req dto.AudioMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return nil, false
	}

	if req.Title == "" || req.AudioURL == "" {
		c.BadRequest("title and audio_url are required")
		return nil, false
	}

	messageDate, err := time.Parse(entryDateLayout, req.MessageDate)
	if err != nil {
		c.BadRequest("invalid message_date, expected YYYY-MM-DD")
		return nil, false
	}

	return &services.AudioMessageInput{
		Title:           req.Title,
		Speaker:         req.Speaker,
		AudioURL:        req.AudioURL,
		DurationSeconds: req.DurationSeconds,
		MessageDate:     messageDate,
	}, true
}

func (h *AudioHandler) Create(c *drift.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	message, err := h.audioService.Create(context.Background(), *input)
	if err != nil {
		c.InternalServerError("failed to create audio message")
		return
	}

	_ = c.JSON(201, message)
}

func (h *AudioHandler) List(c *drift.Context) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	messages, err := h.audioService.List(context.Background(), limit)
	if err != nil {
		c.InternalServerError("failed to list audio messages")
		return
	}

	_ = c.JSON(200, messages)
}

func (h *AudioHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("audioId"))
	if err != nil {
		c.BadRequest("invalid audio message id")
		return
	}

	message, err := h.audioService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("audio message not found")
		return
	}

	_ = c.JSON(200, message)
}

func (h *AudioHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("audioId"))
	if err != nil {
		c.BadRequest("invalid audio message id")
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	message, err := h.audioService.Update(context.Background(), id, *input)
	if err != nil {
		if errors.Is(err, services.ErrAudioMessageNotFound) {
			c.NotFound("audio message not found")
			return
		}
		c.InternalServerError("failed to update audio message")
		return
	}

	_ = c.JSON(200, message)
}

func (h *AudioHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("audioId"))
	if err != nil {
		c.BadRequest("invalid audio message id")
		return
	}

	if err := h.audioService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrAudioMessageNotFound) {
			c.NotFound("audio message not found")
			return
		}
		c.InternalServerError("failed to delete audio message")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "audio message deleted"})
}
