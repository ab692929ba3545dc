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

type SermonHandler struct {
	sermonService SermonServiceInterface
}

func NewSermonHandler(sermonService SermonServiceInterface) *SermonHandler {
	return &SermonHandler{sermonService: sermonService}
}

func (h *SermonHandler) bindInput(c *drift.Context) (*services.SermonInput, bool) {
	var req dto.SermonRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return nil, false
	}

	if req.Title == "" {
		c.BadRequest("title is required")
		return nil, false
	}

	sermonDate, err := time.Parse(entryDateLayout, req.SermonDate)
	if err != nil {
		c.BadRequest("invalid sermon_date, expected YYYY-MM-DD")
		return nil, false
	}

	return &services.SermonInput{
		Title:       req.Title,
		Preacher:    req.Preacher,
		Scripture:   req.Scripture,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		SermonDate:  sermonDate,
	}, true
}

func (h *SermonHandler) Create(c *drift.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	sermon, err := h.sermonService.Create(context.Background(), *input)
	if err != nil {
		c.InternalServerError("failed to create sermon")
		return
	}

	_ = c.JSON(201, sermon)
}

func (h *SermonHandler) List(c *drift.Context) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	sermons, err := h.sermonService.List(context.Background(), limit)
	if err != nil {
		c.InternalServerError("failed to list sermons")
		return
	}

	_ = c.JSON(200, sermons)
}

func (h *SermonHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("sermonId"))
	if err != nil {
		c.BadRequest("invalid sermon id")
		return
	}

	sermon, err := h.sermonService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("sermon not found")
		return
	}

	_ = c.JSON(200, sermon)
}

func (h *SermonHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("sermonId"))
	if err != nil {
		c.BadRequest("invalid sermon id")
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	sermon, err := h.sermonService.Update(context.Background(), id, *input)
	if err != nil {
		if errors.Is(err, services.ErrSermonNotFound) {
			c.NotFound("sermon not found")
			return
		}
		c.InternalServerError("failed to update sermon")
		return
	}

	_ = c.JSON(200, sermon)
}

func (h *SermonHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("sermonId"))
	if err != nil {
		c.BadRequest("invalid sermon id")
		return
	}

	if err := h.sermonService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrSermonNotFound) {
			c.NotFound("sermon not found")
			return
		}
		c.InternalServerError("failed to delete sermon")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "sermon deleted"})
}
