package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const announcementColumns = `id, title, content, priority, target_audience,
	department, year, created_by, expires_at, views, is_active, created_at, updated_at`

// AnnouncementFilter narrows the announcement listing.
type AnnouncementFilter struct {
	Priority string
	Audience string
	Search   string
	// VisibleOnly hides inactive and expired announcements from non-staff
	VisibleOnly bool
}

// GetAll retrieves announcements with filtering and pagination
func (r *AnnouncementRepository) GetAll(ctx context.Context, filter AnnouncementFilter, page, pageSize int) ([]models.Announcement, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM announcements
		WHERE 1=1
	`, announcementColumns)

	args := []interface{}{}
	argIndex := 1

	if filter.VisibleOnly {
		query += " AND is_active = true AND (expires_at IS NULL OR expires_at > NOW())"
	}
	if filter.Priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argIndex)
		args = append(args, filter.Priority)
		argIndex++
	}
	if filter.Audience != "" {
		query += fmt.Sprintf(" AND target_audience = $%d", argIndex)
		args = append(args, filter.Audience)
		argIndex++
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list announcements query")
		return nil, 0, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	var total int64
	for rows.Next() {
		var a models.Announcement
		err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.Priority, &a.TargetAudience,
			&a.Department, &a.Year, &a.CreatedBy, &a.ExpiresAt, &a.Views,
			&a.IsActive, &a.CreatedAt, &a.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning announcement row: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating announcement rows: %w", err)
	}

	return announcements, total, nil
}

// GetByID retrieves an announcement with its read receipts
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM announcements WHERE id = $1`, announcementColumns)

	var a models.Announcement
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Content, &a.Priority, &a.TargetAudience,
		&a.Department, &a.Year, &a.CreatedBy, &a.ExpiresAt, &a.Views,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("announcement not found with ID %d", id))
		}
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error scanning announcement row")
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT user_id, read_at FROM announcement_reads WHERE announcement_id = $1 ORDER BY read_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving read receipts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var read models.AnnouncementRead
		if err := rows.Scan(&read.UserID, &read.ReadAt); err != nil {
			return nil, fmt.Errorf("error scanning read receipt row: %w", err)
		}
		a.ReadBy = append(a.ReadBy, read)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating read receipt rows: %w", err)
	}

	return &a, nil
}

// Create inserts a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, content, priority, target_audience,
			department, year, created_by, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		a.Title, a.Content, a.Priority, a.TargetAudience,
		a.Department, a.Year, a.CreatedBy, a.ExpiresAt, a.IsActive,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", a.Title).Msg("Error executing create announcement query")
		return fmt.Errorf("error creating announcement: %w", err)
	}

	return nil
}

// Update writes the mutable fields of an announcement
func (r *AnnouncementRepository) Update(ctx context.Context, a *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		Set("title", a.Title).
		Set("content", a.Content).
		Set("priority", a.Priority).
		Set("target_audience", a.TargetAudience).
		Set("department", a.Department).
		Set("year", a.Year).
		Set("expires_at", a.ExpiresAt).
		Set("is_active", a.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", a.ID).Msg("Error executing update announcement query")
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("announcement not found with ID %d", a.ID))
	}

	return nil
}

// Delete removes an announcement and its read receipts
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error executing delete announcement query")
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("announcement not found with ID %d", id))
	}

	return nil
}

// IncrementViews bumps the view counter
func (r *AnnouncementRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE announcements SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error executing increment views query")
		return fmt.Errorf("error incrementing views: %w", err)
	}
	return nil
}

// MarkRead records a read receipt. Re-reading is a no-op.
func (r *AnnouncementRepository) MarkRead(ctx context.Context, id, userID int64, readAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO announcement_reads (announcement_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (announcement_id, user_id) DO NOTHING
	`, id, userID, readAt)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Int64("userID", userID).Msg("Error executing mark read query")
		return fmt.Errorf("error marking announcement read: %w", err)
	}
	return nil
}

// DeactivateExpired flips announcements past their expiry inactive and
// returns the affected IDs so the sweep can publish per-row updates.
func (r *AnnouncementRepository) DeactivateExpired(ctx context.Context, now time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE announcements
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at <= $1
		RETURNING id
	`, now)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing deactivate expired query")
		return nil, fmt.Errorf("error deactivating announcements: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning announcement ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement IDs: %w", err)
	}

	return ids, nil
}
