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

type DevotionalHandler struct {
	devotionalService DevotionalServiceInterface
	storageService    StorageServiceInterface
}

func NewDevotionalHandler(
	devotionalService DevotionalServiceInterface,
	storageService StorageServiceInterface,
) *DevotionalHandler {
	return &DevotionalHandler{
		devotionalService: devotionalService,
		storageService:    storageService,
	}
}

func (h *DevotionalHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.DevotionalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		c.BadRequest("invalid entry_date, expected YYYY-MM-DD")
		return
	}

	devotional, err := h.devotionalService.Create(context.Background(), req.Title, req.Scripture, req.Content, entryDate, userID)
	if err != nil {
		c.InternalServerError("failed to create devotional")
		return
	}

	_ = c.JSON(201, devotional)
}

func (h *DevotionalHandler) List(c *drift.Context) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	devotionals, err := h.devotionalService.List(context.Background(), limit)
	if err != nil {
		c.InternalServerError("failed to list devotionals")
		return
	}

	_ = c.JSON(200, devotionals)
}

func (h *DevotionalHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("devotionalId"))
	if err != nil {
		c.BadRequest("invalid devotional id")
		return
	}

	devotional, err := h.devotionalService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("devotional not found")
		return
	}

	_ = c.JSON(200, devotional)
}

func (h *DevotionalHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("devotionalId"))
	if err != nil {
		c.BadRequest("invalid devotional id")
		return
	}

	var req dto.DevotionalRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	entryDate, err := time.Parse(entryDateLayout, req.EntryDate)
	if err != nil {
		c.BadRequest("invalid entry_date, expected YYYY-MM-DD")
		return
	}

	devotional, err := h.devotionalService.Update(context.Background(), id, req.Title, req.Scripture, req.Content, entryDate)
	if err != nil {
		if errors.Is(err, services.ErrDevotionalNotFound) {
			c.NotFound("devotional not found")
			return
		}
		c.InternalServerError("failed to update devotional")
		return
	}

	_ = c.JSON(200, devotional)
}

// UploadDocument attaches a PDF or Word document to a devotional. A previous
// attachment is removed from disk once the replacement is recorded.
func (h *DevotionalHandler) UploadDocument(c *drift.Context) {
	id, err := uuid.Parse(c.Param("devotionalId"))
	if err != nil {
		c.BadRequest("invalid devotional id")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("file is required")
		return
	}
	defer file.Close()

	stored, err := h.storageService.SaveDocument(
		"devotionals",
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) || errors.Is(err, services.ErrUnsupportedFileType) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to store document")
		return
	}

	oldPath, err := h.devotionalService.AttachDocument(context.Background(), id, stored)
	if err != nil {
		_ = h.storageService.Delete(stored.Path)
		if errors.Is(err, services.ErrDevotionalNotFound) {
			c.NotFound("devotional not found")
			return
		}
		c.InternalServerError("failed to attach document")
		return
	}

	if oldPath != nil {
		_ = h.storageService.Delete(*oldPath)
	}

	_ = c.JSON(200, map[string]string{"document_url": stored.URL})
}

func (h *DevotionalHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("devotionalId"))
	if err != nil {
		c.BadRequest("invalid devotional id")
		return
	}

	ctx := context.Background()

	devotional, err := h.devotionalService.GetByID(ctx, id)
	if err != nil {
		c.NotFound("devotional not found")
		return
	}

	if err := h.devotionalService.Delete(ctx, id); err != nil {
		c.InternalServerError("failed to delete devotional")
		return
	}

	if devotional.DocumentPath != nil {
		_ = h.storageService.Delete(*devotional.DocumentPath)
	}

	_ = c.JSON(200, map[string]string{"message": "devotional deleted"})
}
