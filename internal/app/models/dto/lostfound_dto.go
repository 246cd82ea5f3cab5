package dto

import "github.com/campushub/campushub/internal/app/models"

// CreateLostFoundRequest represents a lost or found item report
type CreateLostFoundRequest struct {
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Category    models.LostFoundCategory `json:"category" binding:"required,oneof=lost found"`
	Location    string                   `json:"location" binding:"required"`
	Latitude    *float64                 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64                 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// UpdateLostFoundRequest represents item update data
type UpdateLostFoundRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude,omitempty" binding:"omitempty,min=-180,max=180"`
}

// LostFoundFilterRequest represents item listing filters. Geo filtering
// requires all three of lat, lon and maxDistance (km).
type LostFoundFilterRequest struct {
	Category    string   `form:"category" binding:"omitempty,oneof=lost found"`
	Status      string   `form:"status" binding:"omitempty,oneof=open claimed resolved expired matched"`
	Search      string   `form:"search"`
	Latitude    *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Longitude   *float64 `form:"lon" binding:"omitempty,min=-180,max=180"`
	MaxDistance *float64 `form:"maxDistance" binding:"omitempty,min=0"`
	Page        int      `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize    int      `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// MatchLostFoundRequest pairs a lost report with a found report
type MatchLostFoundRequest struct {
	MatchedItemID int64 `json:"matchedItemId" binding:"required,min=1"`
}
