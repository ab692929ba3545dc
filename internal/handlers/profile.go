package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/internal/sse"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProfileHandler struct {
	profileService ProfileServiceInterface
	storageService StorageServiceInterface
	hub            *sse.Hub
}

func NewProfileHandler(
	profileService ProfileServiceInterface,
	storageService StorageServiceInterface,
	hub *sse.Hub,
) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		storageService: storageService,
		hub:            hub,
	}
}

func (h *ProfileHandler) Create(c *drift.Context) {
	var req dto.CreateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	profile, err := h.profileService.Create(context.Background(), services.CreateProfileInput{
		Email:         req.Email,
		Password:      req.Password,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		HomeAddress:   req.HomeAddress,
		MaritalStatus: req.MaritalStatus,
		Role:          models.RoleMember,
	})
	if err != nil {
		c.InternalServerError("failed to create profile")
		return
	}

	h.hub.BroadcastProfileCreated(profile.ID, profile.Email, profile.Role)

	_ = c.JSON(201, dto.NewProfileResponse(profile))
}

// List supports the member directory filters: role, free-text search over
// names and phone number, and created/updated date windows.
func (h *ProfileHandler) List(c *drift.Context) {
	filter := models.ProfileFilter{
		Search: c.QueryParam("search"),
	}

	if raw := c.QueryParam("role"); raw != "" {
		role, err := models.ParseRole(raw)
		if err != nil {
			c.BadRequest("unknown role: " + raw)
			return
		}
		filter.Role = &role
	}

	var parseErr error
	filter.CreatedAfter = parseTimeParam(c, "created_after", &parseErr)
	filter.CreatedBefore = parseTimeParam(c, "created_before", &parseErr)
	filter.UpdatedAfter = parseTimeParam(c, "updated_after", &parseErr)
	if parseErr != nil {
		c.BadRequest("invalid date filter, expected RFC 3339")
		return
	}

	if raw := c.QueryParam("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		filter.PageSize, _ = strconv.Atoi(raw)
	}

	profiles, total, err := h.profileService.List(context.Background(), filter)
	if err != nil {
		c.InternalServerError("failed to list profiles")
		return
	}

	response := make([]dto.ProfileResponse, len(profiles))
	for i := range profiles {
		response[i] = dto.NewProfileResponse(&profiles[i])
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	_ = c.JSON(200, dto.ProfileListResponse{
		Profiles:   response,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	})
}

func (h *ProfileHandler) Get(c *drift.Context) {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		c.BadRequest("invalid profile id")
		return
	}

	profile, err := h.profileService.GetByID(context.Background(), profileID)
	if err != nil {
		c.NotFound("profile not found")
		return
	}

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Update(c *drift.Context) {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		c.BadRequest("invalid profile id")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	profile, err := h.profileService.Update(context.Background(), profileID, services.UpdateProfileInput{
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		PhoneNumber:   req.PhoneNumber,
		HomeAddress:   req.HomeAddress,
		MaritalStatus: req.MaritalStatus,
	})
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.NotFound("profile not found")
			return
		}
		c.InternalServerError("failed to update profile")
		return
	}

	h.hub.BroadcastProfileUpdated(profile.ID, profile.Email, profile.Role)

	_ = c.JSON(200, dto.NewProfileResponse(profile))
}

func (h *ProfileHandler) Delete(c *drift.Context) {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		c.BadRequest("invalid profile id")
		return
	}

	if err := h.profileService.Delete(context.Background(), profileID); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.NotFound("profile not found")
			return
		}
		c.InternalServerError("failed to delete profile")
		return
	}

	h.hub.BroadcastProfileDeleted(profileID)

	_ = c.JSON(200, map[string]string{"message": "profile deleted"})
}

// UploadImage replaces the profile photo. Images go through the same size cap
// as documents but with an image content-type allow-list.
func (h *ProfileHandler) UploadImage(c *drift.Context) {
	profileID, err := uuid.Parse(c.Param("profileId"))
	if err != nil {
		c.BadRequest("invalid profile id")
		return
	}

	ctx := context.Background()

	profile, err := h.profileService.GetByID(ctx, profileID)
	if err != nil {
		c.NotFound("profile not found")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.BadRequest("file is required")
		return
	}
	defer file.Close()

	stored, err := h.storageService.SaveImage(
		"profile-images",
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
		c.InternalServerError("failed to store image")
		return
	}

	if err := h.profileService.UpdateImage(ctx, profileID, stored.URL); err != nil {
		_ = h.storageService.Delete(stored.Path)
		c.InternalServerError("failed to update profile image")
		return
	}

	h.hub.BroadcastProfileUpdated(profile.ID, profile.Email, profile.Role)

	_ = c.JSON(200, map[string]string{"profile_image_url": stored.URL})
}

func parseTimeParam(c *drift.Context, name string, parseErr *error) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		*parseErr = err
		return nil
	}
	return &t
}
