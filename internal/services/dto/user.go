package dto

import (
	"time"

	"iblaze_backend/internal/models"

	"github.com/samber/lo"
)

// UserResponse is a user without secrets.
type UserResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       models.UserRole   `json:"role"`
	IsApproved bool              `json:"isApproved"`
	IsVerified bool              `json:"isVerified"`
	Status     models.UserStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// UserSummary is the identity embedded in other resources.
type UserSummary struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role,omitempty"`
}

func NewUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		IsVerified: u.IsVerified,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
	}
}

func NewUserResponses(users []models.User) []*UserResponse {
	return lo.Map(users, func(u models.User, _ int) *UserResponse { return NewUserResponse(&u) })
}

// NewUserSummary returns nil for a missing user so dangling references render as null.
func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NewUserSummaryWithRole is used where the caller needs to tell roles apart, e.g. idea creators.
func NewUserSummaryWithRole(u *models.User) *UserSummary {
	s := NewUserSummary(u)
	if s != nil {
		s.Role = u.Role
	}
	return s
}

type UserFilterQuery struct {
	Role   string `form:"role" json:"role" validate:"omitempty,is-user-role"`
	Status string `form:"status" json:"status" validate:"omitempty,is-user-status"`
}

// UpdateUserRequest is the admin patch; absent fields are left untouched.
type UpdateUserRequest struct {
	IsApproved *bool   `json:"isApproved"`
	IsVerified *bool   `json:"isVerified"`
	Status     *string `json:"status"`
}
