package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	EventRepository        *EventRepository
	ClubRepository         *ClubRepository
	FeedbackRepository     *FeedbackRepository
	LostFoundRepository    *LostFoundRepository
	AnnouncementRepository *AnnouncementRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		EventRepository:        NewEventRepository(db),
		ClubRepository:         NewClubRepository(db),
		FeedbackRepository:     NewFeedbackRepository(db),
		LostFoundRepository:    NewLostFoundRepository(db),
		AnnouncementRepository: NewAnnouncementRepository(db),
	}
}
