package models

import "time"

// AttendanceStatus is the per-attendee registration state.
type AttendanceStatus string

const (
	AttendanceRegistered AttendanceStatus = "registered"
	AttendanceAttended   AttendanceStatus = "attended"
	AttendanceCancelled  AttendanceStatus = "cancelled"
)

// Event defines the event model based on the 'events' table
type Event struct {
	ID                   int64      `json:"id" db:"id"`
	Title                string     `json:"title" db:"title"`
	Description          string     `json:"description" db:"description"`
	Category             string     `json:"category" db:"category"`
	Venue                string     `json:"venue" db:"venue"`
	StartDate            time.Time  `json:"startDate" db:"start_date"`
	EndDate              time.Time  `json:"endDate" db:"end_date"`
	StartTime            string     `json:"startTime" db:"start_time"`
	EndTime              string     `json:"endTime" db:"end_time"`
	OrganizerID          int64      `json:"organizerId" db:"organizer_id"`
	MaxAttendees         *int       `json:"maxAttendees,omitempty" db:"max_attendees"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty" db:"registration_deadline"`
	IsApproved           bool       `json:"isApproved" db:"is_approved"`
	ApprovedBy           *int64     `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt           *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	IsActive             bool       `json:"isActive" db:"is_active"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`

	Attendees []EventAttendee `json:"attendees,omitempty"`
}

// EventAttendee is one row of an event's attendee list.
type EventAttendee struct {
	ID           int64            `json:"id" db:"id"`
	EventID      int64            `json:"eventId" db:"event_id"`
	UserID       int64            `json:"userId" db:"user_id"`
	Status       AttendanceStatus `json:"status" db:"status"`
	RegisteredAt time.Time        `json:"registeredAt" db:"registered_at"`
}

// OwnerID returns the owning user for capability checks and notifications.
func (e *Event) OwnerID() int64 { return e.OrganizerID }

// RegisteredCount counts attendees holding a seat. Cancelled rows free theirs.
func (e *Event) RegisteredCount() int {
	n := 0
	for _, a := range e.Attendees {
		if a.Status == AttendanceRegistered {
			n++
		}
	}
	return n
}

// IsFull reports whether the event has reached its attendee cap.
// Derived at read time, never stored.
func (e *Event) IsFull() bool {
	return e.MaxAttendees != nil && e.RegisteredCount() >= *e.MaxAttendees
}

// AvailableSpots returns remaining capacity, or nil for uncapped events.
func (e *Event) AvailableSpots() *int {
	if e.MaxAttendees == nil {
		return nil
	}
	spots := *e.MaxAttendees - e.RegisteredCount()
	if spots < 0 {
		spots = 0
	}
	return &spots
}

// RegistrationOpen reports whether new registrations are accepted at t.
func (e *Event) RegistrationOpen(t time.Time) bool {
	return e.RegistrationDeadline == nil || t.Before(*e.RegistrationDeadline)
}
