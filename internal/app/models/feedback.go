package models

import "time"

// FeedbackStatus is the feedback lifecycle state.
type FeedbackStatus string

const (
	FeedbackOpen       FeedbackStatus = "open"
	FeedbackInProgress FeedbackStatus = "in-progress"
	FeedbackResolved   FeedbackStatus = "resolved"
	FeedbackClosed     FeedbackStatus = "closed"
)

// Valid reports whether the status is one of the known states.
func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackOpen, FeedbackInProgress, FeedbackResolved, FeedbackClosed:
		return true
	}
	return false
}

// VoteType is the direction of a feedback vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Feedback defines the feedback model based on the 'feedback' table
type Feedback struct {
	ID         int64          `json:"id" db:"id"`
	Subject    string         `json:"subject" db:"subject"`
	Message    string         `json:"message" db:"message"`
	Category   string         `json:"category" db:"category"`
	Status     FeedbackStatus `json:"status" db:"status"`
	CreatedBy  int64          `json:"createdBy" db:"created_by"`
	AssignedTo *int64         `json:"assignedTo,omitempty" db:"assigned_to"`
	IsPublic   bool           `json:"isPublic" db:"is_public"`
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time      `json:"updatedAt" db:"updated_at"`

	Responses []FeedbackResponse `json:"responses,omitempty"`
	Upvotes   []int64            `json:"upvotes,omitempty"`
	Downvotes []int64            `json:"downvotes,omitempty"`
}

// FeedbackResponse is one staff reply on a feedback thread.
type FeedbackResponse struct {
	ID          int64     `json:"id" db:"id"`
	FeedbackID  int64     `json:"feedbackId" db:"feedback_id"`
	Text        string    `json:"text" db:"text"`
	RespondedBy int64     `json:"respondedBy" db:"responded_by"`
	RespondedAt time.Time `json:"respondedAt" db:"responded_at"`
}

// OwnerID returns the submitting user for capability checks and notifications.
func (f *Feedback) OwnerID() int64 { return f.CreatedBy }

// VoteCount is upvotes minus downvotes, derived at read time.
func (f *Feedback) VoteCount() int {
	return len(f.Upvotes) - len(f.Downvotes)
}
