package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/church-admin-api/internal/models"
)

type CreateProfileRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password,omitempty"`
	FirstName     *string `json:"first_name,omitempty"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	HomeAddress   *string `json:"home_address,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName     *string `json:"first_name,omitempty"`
	MiddleName    *string `json:"middle_name,omitempty"`
	LastName      *string `json:"last_name,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	HomeAddress   *string `json:"home_address,omitempty"`
	MaritalStatus *string `json:"marital_status,omitempty"`
}

type ProfileResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Email             string                    `json:"email"`
	FirstName         *string                   `json:"first_name,omitempty"`
	MiddleName        *string                   `json:"middle_name,omitempty"`
	LastName          *string                   `json:"last_name,omitempty"`
	Role              string                    `json:"role"`
	PhoneNumber       *string                   `json:"phone_number,omitempty"`
	HomeAddress       *string                   `json:"home_address,omitempty"`
	MaritalStatus     *string                   `json:"marital_status,omitempty"`
	ProfileImageURL   *string                   `json:"profile_image_url,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
	MembershipNumbers []models.MembershipNumber `json:"membership_numbers,omitempty"`
}

type ProfileListResponse struct {
	Profiles   []ProfileResponse `json:"profiles"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int               `json:"total_count"`
}

func NewProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                p.ID,
		Email:             p.Email,
		FirstName:         p.FirstName,
		MiddleName:        p.MiddleName,
		LastName:          p.LastName,
		Role:              p.Role.String(),
		PhoneNumber:       p.PhoneNumber,
		HomeAddress:       p.HomeAddress,
		MaritalStatus:     p.MaritalStatus,
		ProfileImageURL:   p.ProfileImageURL,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
		MembershipNumbers: p.MembershipNumbers,
	}
}
