package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/config"
	"github.com/gracechapel/church-admin-api/internal/middleware"
	"github.com/gracechapel/church-admin-api/internal/services"
	"github.com/gracechapel/church-admin-api/internal/sse"
	"github.com/gracechapel/church-admin-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AdminHandler struct {
	cfg            *config.Config
	adminService   AdminServiceInterface
	profileService ProfileServiceInterface
	emailService   EmailServiceInterface
	hub            *sse.Hub
}

func NewAdminHandler(
	cfg *config.Config,
	adminService AdminServiceInterface,
	profileService ProfileServiceInterface,
	emailService EmailServiceInterface,
	hub *sse.Hub,
) *AdminHandler {
	return &AdminHandler{
		cfg:            cfg,
		adminService:   adminService,
		profileService: profileService,
		emailService:   emailService,
		hub:            hub,
	}
}

// ManageRole grants or revokes admin access. The caller's own role is
// authorized inside the service against the stored value, never the token
// claim.
func (h *AdminHandler) ManageRole(c *drift.Context) {
	callerID := middleware.GetUserID(c)
	if callerID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.ManageRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		c.BadRequest("user_id is required")
		return
	}

	action, err := services.ParseRoleAction(req.Action)
	if err != nil {
		_ = c.JSON(400, dto.ManageRoleResponse{Success: false, Error: err.Error()})
		return
	}

	ctx := context.Background()

	newRole, err := h.adminService.ManageRole(ctx, callerID, req.UserID, action)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthorized):
			c.Forbidden("access denied")
		case errors.Is(err, services.ErrProfileNotFound):
			c.NotFound("profile not found")
		default:
			c.InternalServerError("failed to update role")
		}
		return
	}

	h.hub.BroadcastRoleChanged(req.UserID, newRole, callerID)

	if target, err := h.profileService.GetByID(ctx, req.UserID); err == nil {
		if err := h.emailService.SendRoleChanged(target.Email, newRole.String()); err != nil {
			log.Printf("failed to send role change email to %s: %v", target.Email, err)
		}
	}

	_ = c.JSON(200, dto.ManageRoleResponse{Success: true, Role: newRole.String()})
}

// Bootstrap promotes the profile matching the configured email to
// SUPER_ADMIN. It is gated by a shared secret so a fresh deployment can seat
// its first super admin; once one exists, role changes go through ManageRole.
func (h *AdminHandler) Bootstrap(c *drift.Context) {
	if h.cfg.AdminSetupSecret == "" {
		c.NotFound("not found")
		return
	}

	if c.QueryParam("secret_key") != h.cfg.AdminSetupSecret {
		c.Unauthorized("invalid secret key")
		return
	}

	email := c.QueryParam("email")
	if email == "" {
		c.BadRequest("email is required")
		return
	}

	profile, err := h.adminService.BootstrapSuperAdmin(context.Background(), email)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			c.NotFound("no profile with that email")
			return
		}
		c.InternalServerError("failed to bootstrap super admin")
		return
	}

	h.hub.BroadcastRoleChanged(profile.ID, profile.Role, profile.ID)

	_ = c.JSON(200, dto.BootstrapResponse{
		Success: true,
		Message: "super admin initialized: " + profile.Email,
	})
}
