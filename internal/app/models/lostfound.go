package models

import "time"

// LostFoundCategory distinguishes lost reports from found reports.
type LostFoundCategory string

const (
	CategoryLost  LostFoundCategory = "lost"
	CategoryFound LostFoundCategory = "found"
)

// LostFoundStatus is the item lifecycle state.
type LostFoundStatus string

const (
	LostFoundOpen     LostFoundStatus = "open"
	LostFoundClaimed  LostFoundStatus = "claimed"
	LostFoundResolved LostFoundStatus = "resolved"
	LostFoundExpired  LostFoundStatus = "expired"
	LostFoundMatched  LostFoundStatus = "matched"
)

// LostFoundItem defines the item model based on the 'lost_found_items' table
type LostFoundItem struct {
	ID          int64             `json:"id" db:"id"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Category    LostFoundCategory `json:"category" db:"category"`
	Status      LostFoundStatus   `json:"status" db:"status"`
	Location    string            `json:"location" db:"location"`
	Latitude    *float64          `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64          `json:"longitude,omitempty" db:"longitude"`
	ReportedBy  int64             `json:"reportedBy" db:"reported_by"`
	ClaimedBy   *int64            `json:"claimedBy,omitempty" db:"claimed_by"`
	ResolvedBy  *int64            `json:"resolvedBy,omitempty" db:"resolved_by"`
	MatchedWith *int64            `json:"matchedWith,omitempty" db:"matched_with"`
	IsActive    bool              `json:"isActive" db:"is_active"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`
}

// OwnerID returns the reporting user for capability checks and notifications.
func (i *LostFoundItem) OwnerID() int64 { return i.ReportedBy }
