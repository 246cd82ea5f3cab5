package models

import "time"

// TargetAudience selects who an announcement addresses.
type TargetAudience string

const (
	AudienceAll                TargetAudience = "all"
	AudienceStudents           TargetAudience = "students"
	AudienceFaculty            TargetAudience = "faculty"
	AudienceStaff              TargetAudience = "staff"
	AudienceSpecificDepartment TargetAudience = "specific-department"
	AudienceSpecificYear       TargetAudience = "specific-year"
)

// Valid reports whether the audience is one of the known values.
func (a TargetAudience) Valid() bool {
	switch a {
	case AudienceAll, AudienceStudents, AudienceFaculty, AudienceStaff,
		AudienceSpecificDepartment, AudienceSpecificYear:
		return true
	}
	return false
}

// Priority ranks how prominently an announcement is surfaced.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Announcement defines the announcement model based on the 'announcements' table
type Announcement struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Content        string         `json:"content" db:"content"`
	Priority       Priority       `json:"priority" db:"priority"`
	TargetAudience TargetAudience `json:"targetAudience" db:"target_audience"`
	Department     *string        `json:"department,omitempty" db:"department"`
	Year           *int           `json:"year,omitempty" db:"year"`
	CreatedBy      int64          `json:"createdBy" db:"created_by"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty" db:"expires_at"`
	Views          int            `json:"views" db:"views"`
	IsActive       bool           `json:"isActive" db:"is_active"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	ReadBy []AnnouncementRead `json:"readBy,omitempty"`
}

// AnnouncementRead records a user having read an announcement.
type AnnouncementRead struct {
	UserID int64     `json:"userId" db:"user_id"`
	ReadAt time.Time `json:"readAt" db:"read_at"`
}

// OwnerID returns the posting user for capability checks and notifications.
func (a *Announcement) OwnerID() int64 { return a.CreatedBy }

// Visible reports whether the announcement is effectively visible at t:
// active and not past its expiry.
func (a *Announcement) Visible(t time.Time) bool {
	return a.IsActive && (a.ExpiresAt == nil || a.ExpiresAt.After(t))
}
