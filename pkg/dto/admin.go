package dto

import "github.com/google/uuid"

type ManageRoleRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Action string    `json:"action"`
}

type ManageRoleResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	Error   string `json:"error,omitempty"`
}

type BootstrapResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
