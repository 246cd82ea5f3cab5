package dto

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
)

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title          string                `json:"title" binding:"required"`
	Content        string                `json:"content" binding:"required"`
	Priority       models.Priority       `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	TargetAudience models.TargetAudience `json:"targetAudience" binding:"required"`
	Department     *string               `json:"department,omitempty"`
	Year           *int                  `json:"year,omitempty" binding:"omitempty,min=1"`
	ExpiresAt      *time.Time            `json:"expiresAt,omitempty"`
}

// UpdateAnnouncementRequest represents announcement update data
type UpdateAnnouncementRequest struct {
	Title          *string                `json:"title,omitempty"`
	Content        *string                `json:"content,omitempty"`
	Priority       *models.Priority       `json:"priority,omitempty" binding:"omitempty,oneof=low normal high urgent"`
	TargetAudience *models.TargetAudience `json:"targetAudience,omitempty"`
	Department     *string                `json:"department,omitempty"`
	Year           *int                   `json:"year,omitempty" binding:"omitempty,min=1"`
	ExpiresAt      *time.Time             `json:"expiresAt,omitempty"`
	IsActive       *bool                  `json:"isActive,omitempty"`
}

// AnnouncementFilterRequest represents announcement listing filters
type AnnouncementFilterRequest struct {
	Priority string `form:"priority" binding:"omitempty,oneof=low normal high urgent"`
	Audience string `form:"audience"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
