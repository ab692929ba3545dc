package handlers

import (
	"context"

	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type OverviewHandler struct {
	profileService    ProfileServiceInterface
	devotionalService DevotionalServiceInterface
	sermonService     SermonServiceInterface
	audioService      AudioServiceInterface
	outlineService    OutlineServiceInterface
}

func NewOverviewHandler(
	profileService ProfileServiceInterface,
	devotionalService DevotionalServiceInterface,
	sermonService SermonServiceInterface,
	audioService AudioServiceInterface,
	outlineService OutlineServiceInterface,
) *OverviewHandler {
	return &OverviewHandler{
		profileService:    profileService,
		devotionalService: devotionalService,
		sermonService:     sermonService,
		audioService:      audioService,
		outlineService:    outlineService,
	}
}

// Get aggregates the dashboard landing page counters.
func (h *OverviewHandler) Get(c *drift.Context) {
	ctx := context.Background()

	stats, err := h.profileService.Stats(ctx)
	if err != nil {
		c.InternalServerError("failed to load profile stats")
		return
	}

	resp := dto.OverviewResponse{
		TotalUsers:  stats.TotalUsers,
		ActiveUsers: stats.ActiveUsers,
		NewUsers:    stats.NewUsers,
	}

	if resp.TotalDevotional, err = h.devotionalService.Count(ctx); err != nil {
		c.InternalServerError("failed to count devotionals")
		return
	}
	if resp.TotalSermons, err = h.sermonService.Count(ctx); err != nil {
		c.InternalServerError("failed to count sermons")
		return
	}
	if resp.TotalAudio, err = h.audioService.Count(ctx); err != nil {
		c.InternalServerError("failed to count audio messages")
		return
	}
	if resp.TotalOutlines, err = h.outlineService.Count(ctx); err != nil {
		c.InternalServerError("failed to count outlines")
		return
	}

	_ = c.JSON(200, resp)
}
