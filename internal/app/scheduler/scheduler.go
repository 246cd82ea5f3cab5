// Package scheduler runs the periodic maintenance sweeps: retiring stale
// lost and found reports, deactivating announcements past their expiry
// and purging dead refresh tokens. The sweeps run on cron schedules; the
// resource sweeps fan their effects out through the notification
// pipeline so connected clients see items disappear without refreshing.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/campushub/campushub/internal/app/notifications"
)

// ItemExpirer retires open lost and found reports older than a cutoff.
type ItemExpirer interface {
	ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]int64, error)
}

// AnnouncementExpirer deactivates announcements whose expiry has passed.
type AnnouncementExpirer interface {
	DeactivateExpired(ctx context.Context, now time.Time) ([]int64, error)
}

// TokenCleaner deletes expired and revoked refresh tokens.
type TokenCleaner interface {
	CleanupExpiredTokens(ctx context.Context) (int64, error)
}

// Config holds the sweep schedules and the lost and found retention window.
type Config struct {
	LostFoundSweepSchedule    string
	AnnouncementSweepSchedule string
	TokenSweepSchedule        string
	LostFoundRetention        time.Duration
}

// DefaultConfig sweeps daily at 03:00 with a 30 day retention window;
// the token sweep runs an hour later.
func DefaultConfig() Config {
	return Config{
		LostFoundSweepSchedule:    "0 3 * * *",
		AnnouncementSweepSchedule: "0 3 * * *",
		TokenSweepSchedule:        "0 4 * * *",
		LostFoundRetention:        30 * 24 * time.Hour,
	}
}

const sweepTimeout = 30 * time.Second

// Scheduler owns the cron runner and the maintenance jobs.
type Scheduler struct {
	cron          *cron.Cron
	items         ItemExpirer
	announcements AnnouncementExpirer
	tokens        TokenCleaner
	publisher     notifications.Publisher
	config        Config
	logger        zerolog.Logger
}

// New creates a Scheduler; Start registers the jobs and begins running them.
func New(items ItemExpirer, announcements AnnouncementExpirer, tokens TokenCleaner, publisher notifications.Publisher, config Config, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		items:         items,
		announcements: announcements,
		tokens:        tokens,
		publisher:     publisher,
		config:        config,
		logger:        logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the sweep jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.config.LostFoundSweepSchedule, s.sweepLostFound); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.config.AnnouncementSweepSchedule, s.sweepAnnouncements); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.config.TokenSweepSchedule, s.sweepTokens); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info().
		Str("lostFoundSchedule", s.config.LostFoundSweepSchedule).
		Str("announcementSchedule", s.config.AnnouncementSweepSchedule).
		Dur("retention", s.config.LostFoundRetention).
		Msg("Scheduler started")
	return nil
}

// Stop halts the cron runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) sweepLostFound() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := time.Now().Add(-s.config.LostFoundRetention)
	ids, err := s.items.ExpireOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error().Err(err).Msg("Lost and found sweep failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	s.logger.Info().Int("expired", len(ids)).Time("cutoff", cutoff).Msg("Expired stale lost and found items")
	for _, id := range ids {
		s.publisher.Publish(notifications.EventLostFoundUpdate, &notifications.Deleted{ResourceID: id})
	}
}

func (s *Scheduler) sweepAnnouncements() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	ids, err := s.announcements.DeactivateExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("Announcement sweep failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	s.logger.Info().Int("deactivated", len(ids)).Msg("Deactivated expired announcements")
	for _, id := range ids {
		s.publisher.Publish(notifications.EventAnnouncementUpdated, &notifications.Deleted{ResourceID: id})
	}
}

// sweepTokens is housekeeping only; nothing is published.
func (s *Scheduler) sweepTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := s.tokens.CleanupExpiredTokens(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token sweep failed")
		return
	}
	if n > 0 {
		s.logger.Info().Int64("removed", n).Msg("Purged expired refresh tokens")
	}
}
