package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

type OutlineHandler struct {
	outlineService OutlineServiceInterface
	storageService StorageServiceInterface
}

func NewOutlineHandler(
	outlineService OutlineServiceInterface,
	storageService StorageServiceInterface,
) *OutlineHandler {
	return &OutlineHandler{
		outlineService: outlineService,
		storageService: storageService,
	}
}

// Create uploads a Sunday school outline document. The request is multipart:
// a "file" part plus "title" and "outline_date" form fields. The file must be
// PDF or Word and under the upload size cap.
func (h *OutlineHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	title := c.Request.FormValue("title")
	if title == "" {
		c.BadRequest("title is required")
		return
	}

	outlineDate, err := time.Parse(entryDateLayout, c.Request.FormValue("outline_date"))
	if err != nil {
		c.BadRequest("invalid outline_date, expected YYYY-MM-DD")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("file is required")
		return
	}
	defer file.Close()

	stored, err := h.storageService.SaveDocument(
		"outlines",
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
		c.InternalServerError("failed to store outline")
		return
	}

	outline, err := h.outlineService.Create(context.Background(), title, outlineDate, stored, userID)
	if err != nil {
		_ = h.storageService.Delete(stored.Path)
		c.InternalServerError("failed to create outline")
		return
	}

	_ = c.JSON(201, outline)
}

func (h *OutlineHandler) List(c *drift.Context) {
	outlines, err := h.outlineService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list outlines")
		return
	}

	_ = c.JSON(200, outlines)
}

func (h *OutlineHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("outlineId"))
	if err != nil {
		c.BadRequest("invalid outline id")
		return
	}

	outline, err := h.outlineService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("outline not found")
		return
	}

	_ = c.JSON(200, outline)
}

func (h *OutlineHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("outlineId"))
	if err != nil {
		c.BadRequest("invalid outline id")
		return
	}

	ctx := context.Background()

	outline, err := h.outlineService.GetByID(ctx, id)
	if err != nil {
		c.NotFound("outline not found")
		return
	}

	if err := h.outlineService.Delete(ctx, id); err != nil {
		c.InternalServerError("failed to delete outline")
		return
	}

	_ = h.storageService.Delete(outline.FilePath)

	_ = c.JSON(200, map[string]string{"message": "outline deleted"})
}
