package dto

import "github.com/campushub/campushub/internal/app/models"

// CreateClubRequest represents club creation data
type CreateClubRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	MaxMembers  *int   `json:"maxMembers,omitempty" binding:"omitempty,min=1"`
}

// UpdateClubRequest represents club update data
type UpdateClubRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	MaxMembers  *int    `json:"maxMembers,omitempty" binding:"omitempty,min=1"`
	PresidentID *int64  `json:"presidentId,omitempty"`
}

// ClubFilterRequest represents club listing filters
type ClubFilterRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// UpdateMemberRoleRequest represents a club member role change
type UpdateMemberRoleRequest struct {
	Role models.MemberRole `json:"role" binding:"required"`
}
