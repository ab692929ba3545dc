package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    *string   `json:"-"`
	FirstName       *string   `json:"first_name,omitempty"`
	MiddleName      *string   `json:"middle_name,omitempty"`
	LastName        *string   `json:"last_name,omitempty"`
	Role            Role      `json:"role"`
	PhoneNumber     *string   `json:"phone_number,omitempty"`
	HomeAddress     *string   `json:"home_address,omitempty"`
	MaritalStatus   *string   `json:"marital_status,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	Provider        *string   `json:"provider,omitempty"`
	ProviderID      *string   `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	MembershipNumbers []MembershipNumber `json:"membership_numbers,omitempty"`
}

// MembershipNumber is a year-scoped member registration number. A profile has
// at most one per year.
type MembershipNumber struct {
	ID               uuid.UUID `json:"id"`
	ProfileID        uuid.UUID `json:"profile_id"`
	Year             int       `json:"year"`
	MembershipNumber string    `json:"membership_number"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProfileFilter narrows the profile list query. Zero values mean "no filter".
type ProfileFilter struct {
	Role          *Role
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	Page          int
	PageSize      int
}

type ProfileStats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	NewUsers    int `json:"new_users"`
}
