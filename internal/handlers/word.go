package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// entryDateLayout is the wire format for content dates.
const entryDateLayout = "2006-01-02"

type WordHandler struct {
	wordService WordServiceInterface
}

func NewWordHandler(wordService WordServiceInterface) *WordHandler {
	return &WordHandler{wordService: wordService}
}

func (h *WordHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.WordEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		c.BadRequest("title and content are required")
		return
	}

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		c.BadRequest("invalid entry_date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.wordService.Create(context.Background(), req.Title, req.Scripture, req.Content, entryDate, userID)
	if err != nil {
		c.InternalServerError("failed to create word entry")
		return
	}

	_ = c.JSON(201, entry)
}

func (h *WordHandler) List(c *drift.Context) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.wordService.List(context.Background(), limit)
	if err != nil {
		c.InternalServerError("failed to list word entries")
		return
	}

	_ = c.JSON(200, entries)
}

func (h *WordHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("wordId"))
	if err != nil {
		c.BadRequest("invalid word entry id")
		return
	}

	entry, err := h.wordService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("word entry not found")
		return
	}

	_ = c.JSON(200, entry)
}

func (h *WordHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("wordId"))
	if err != nil {
		c.BadRequest("invalid word entry id")
		return
	}

	var req dto.WordEntryRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		c.BadRequest("title and content are required")
		return
	}

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		c.BadRequest("invalid entry_date, expected YYYY-MM-DD")
		return
	}

	entry, err := h.wordService.Update(context.Background(), id, req.Title, req.Scripture, req.Content, entryDate)
	if err != nil {
		if errors.Is(err, services.ErrWordEntryNotFound) {
			c.NotFound("word entry not found")
			return
		}
		c.InternalServerError("failed to update word entry")
		return
	}

	_ = c.JSON(200, entry)
}

func (h *WordHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("wordId"))
	if err != nil {
		c.BadRequest("invalid word entry id")
		return
	}

	if err := h.wordService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrWordEntryNotFound) {
			c.NotFound("word entry not found")
			return
		}
		c.InternalServerError("failed to delete word entry")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "word entry deleted"})
}
