package models

import "time"

// MemberRole is a member's office within a club.
type MemberRole string

const (
	MemberRoleMember          MemberRole = "member"
	MemberRoleVicePresident   MemberRole = "vice-president"
	MemberRoleSecretary       MemberRole = "secretary"
	MemberRoleTreasurer       MemberRole = "treasurer"
	MemberRoleCommitteeMember MemberRole = "committee-member"
)

// Valid reports whether the member role is one of the known offices.
func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleMember, MemberRoleVicePresident, MemberRoleSecretary,
		MemberRoleTreasurer, MemberRoleCommitteeMember:
		return true
	}
	return false
}

// Club defines the club model based on the 'clubs' table
type Club struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"` // unique
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	AdvisorID   int64      `json:"advisorId" db:"advisor_id"`
	PresidentID *int64     `json:"presidentId,omitempty" db:"president_id"`
	MaxMembers  *int       `json:"maxMembers,omitempty" db:"max_members"`
	IsApproved  bool       `json:"isApproved" db:"is_approved"`
	ApprovedBy  *int64     `json:"approvedBy,omitempty" db:"approved_by"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	Members []ClubMember `json:"members,omitempty"`
}

// ClubMember is one row of a club's membership list.
type ClubMember struct {
	ID       int64      `json:"id" db:"id"`
	ClubID   int64      `json:"clubId" db:"club_id"`
	UserID   int64      `json:"userId" db:"user_id"`
	Role     MemberRole `json:"role" db:"role"`
	JoinedAt time.Time  `json:"joinedAt" db:"joined_at"`
}

// OwnerID returns the owning user for capability checks and notifications.
func (c *Club) OwnerID() int64 { return c.AdvisorID }

// IsFull reports whether the club has reached its membership cap.
func (c *Club) IsFull() bool {
	return c.MaxMembers != nil && len(c.Members) >= *c.MaxMembers
}

// AvailableSpots returns remaining capacity, or nil for uncapped clubs.
func (c *Club) AvailableSpots() *int {
	if c.MaxMembers == nil {
		return nil
	}
	spots := *c.MaxMembers - len(c.Members)
	if spots < 0 {
		spots = 0
	}
	return &spots
}

// HasMember reports whether the user already appears in the membership list.
func (c *Club) HasMember(userID int64) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
