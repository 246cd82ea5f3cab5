package dto

import "github.com/campushub/campushub/internal/app/models"

// CreateFeedbackRequest represents feedback submission data
type CreateFeedbackRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Category string `json:"category" binding:"required"`
	IsPublic *bool  `json:"isPublic,omitempty"`
}

// UpdateFeedbackRequest represents feedback update data. Status is honored
// for faculty and admin callers only.
type UpdateFeedbackRequest struct {
	Subject  *string                `json:"subject,omitempty"`
	Message  *string                `json:"message,omitempty"`
	Category *string                `json:"category,omitempty"`
	IsPublic *bool                  `json:"isPublic,omitempty"`
	Status   *models.FeedbackStatus `json:"status,omitempty"`
}

// FeedbackFilterRequest represents feedback listing filters
type FeedbackFilterRequest struct {
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,oneof=open in-progress resolved closed"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}

// RespondFeedbackRequest represents a staff response on a feedback thread
type RespondFeedbackRequest struct {
	Text string `json:"text" binding:"required"`
}

// VoteFeedbackRequest represents an up or down vote
type VoteFeedbackRequest struct {
	VoteType models.VoteType `json:"voteType" binding:"required,oneof=up down"`
}
