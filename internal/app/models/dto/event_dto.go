package dto

import "time"

// CreateEventRequest represents event creation data. StartTime and EndTime
// are clock times in HH:MM form within the start and end dates.
type CreateEventRequest struct {
	Title                string     `json:"title" binding:"required"`
	Description          string     `json:"description" binding:"required"`
	Category             string     `json:"category" binding:"required"`
	Venue                string     `json:"venue" binding:"required"`
	StartDate            time.Time  `json:"startDate" binding:"required"`
	EndDate              time.Time  `json:"endDate" binding:"required,gtefield=StartDate"`
	StartTime            string     `json:"startTime" binding:"required"`
	EndTime              string     `json:"endTime" binding:"required"`
	MaxAttendees         *int       `json:"maxAttendees,omitempty" binding:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// UpdateEventRequest represents event update data. Pointer fields are
// patch semantics: nil means leave unchanged.
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Venue                *string    `json:"venue,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	StartTime            *string    `json:"startTime,omitempty"`
	EndTime              *string    `json:"endTime,omitempty"`
	MaxAttendees         *int       `json:"maxAttendees,omitempty" binding:"omitempty,min=1"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
}

// EventFilterRequest represents event listing filters
type EventFilterRequest struct {
	Category string `form:"category"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize,default=20" binding:"omitempty,min=1,max=100"`
}
