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

// LostFoundRepository handles lost and found database operations
type LostFoundRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLostFoundRepository creates a new LostFoundRepository
func NewLostFoundRepository(db *pgxpool.Pool) *LostFoundRepository {
	return &LostFoundRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const lostFoundColumns = `id, title, description, category, status, location,
	latitude, longitude, reported_by, claimed_by, resolved_by, matched_with,
	is_active, created_at, updated_at`

func scanLostFoundItem(row pgx.Row) (*models.LostFoundItem, error) {
	var i models.LostFoundItem
	err := row.Scan(
		&i.ID, &i.Title, &i.Description, &i.Category, &i.Status, &i.Location,
		&i.Latitude, &i.Longitude, &i.ReportedBy, &i.ClaimedBy, &i.ResolvedBy,
		&i.MatchedWith, &i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// LostFoundFilter narrows the item listing. The geo fields apply a
// haversine radius filter when all three are set.
type LostFoundFilter struct {
	Category    string
	Status      string
	Search      string
	Latitude    *float64
	Longitude   *float64
	MaxDistance *float64 // kilometers
}

// GetAll retrieves items with filtering and pagination
func (r *LostFoundRepository) GetAll(ctx context.Context, filter LostFoundFilter, page, pageSize int) ([]models.LostFoundItem, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM lost_found_items
		WHERE is_active = true
	`, lostFoundColumns)

	args := []interface{}{}
	argIndex := 1

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", argIndex, argIndex+1, argIndex+2)
		args = append(args, pattern, pattern, pattern)
		argIndex += 3
	}
	if filter.Latitude != nil && filter.Longitude != nil && filter.MaxDistance != nil {
		// Haversine distance in kilometers over the stored coordinates
		query += fmt.Sprintf(`
			AND latitude IS NOT NULL AND longitude IS NOT NULL
			AND 6371 * acos(least(1.0,
				cos(radians($%d)) * cos(radians(latitude)) * cos(radians(longitude) - radians($%d))
				+ sin(radians($%d)) * sin(radians(latitude))
			)) <= $%d`, argIndex, argIndex+1, argIndex+2, argIndex+3)
		args = append(args, *filter.Latitude, *filter.Longitude, *filter.Latitude, *filter.MaxDistance)
		argIndex += 4
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list items query")
		return nil, 0, fmt.Errorf("error listing items: %w", err)
	}
	defer rows.Close()

	items := []models.LostFoundItem{}
	var total int64
	for rows.Next() {
		var i models.LostFoundItem
		err := rows.Scan(
			&i.ID, &i.Title, &i.Description, &i.Category, &i.Status, &i.Location,
			&i.Latitude, &i.Longitude, &i.ReportedBy, &i.ClaimedBy, &i.ResolvedBy,
			&i.MatchedWith, &i.IsActive, &i.CreatedAt, &i.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning item row: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, total, nil
}

// GetByID retrieves an item by ID
func (r *LostFoundRepository) GetByID(ctx context.Context, id int64) (*models.LostFoundItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_found_items WHERE id = $1`, lostFoundColumns)

	item, err := scanLostFoundItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("item not found with ID %d", id))
		}
		logger.Error().Err(err).Int64("itemID", id).Msg("Error scanning item row")
		return nil, fmt.Errorf("error retrieving item: %w", err)
	}
	return item, nil
}

// Create inserts a new item report
func (r *LostFoundRepository) Create(ctx context.Context, item *models.LostFoundItem) error {
	query := `
		INSERT INTO lost_found_items (title, description, category, status, location,
			latitude, longitude, reported_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		item.Title, item.Description, item.Category, item.Status, item.Location,
		item.Latitude, item.Longitude, item.ReportedBy, item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", item.Title).Msg("Error executing create item query")
		return fmt.Errorf("error creating item: %w", err)
	}

	return nil
}

// Update writes the mutable fields of an item
func (r *LostFoundRepository) Update(ctx context.Context, item *models.LostFoundItem) error {
	sql, args, err := r.sb.Update("lost_found_items").
		Set("title", item.Title).
		Set("description", item.Description).
		Set("location", item.Location).
		Set("latitude", item.Latitude).
		Set("longitude", item.Longitude).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", item.ID).Msg("Error executing update item query")
		return fmt.Errorf("error updating item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("item not found with ID %d", item.ID))
	}

	return nil
}

// Delete removes an item report
func (r *LostFoundRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM lost_found_items WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", id).Msg("Error executing delete item query")
		return fmt.Errorf("error deleting item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("item not found with ID %d", id))
	}

	return nil
}

// Claim moves an open item to claimed. The status guard in the WHERE
// clause makes concurrent claims lose cleanly.
func (r *LostFoundRepository) Claim(ctx context.Context, id, claimedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE lost_found_items
		SET status = 'claimed', claimed_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, id, claimedBy)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", id).Msg("Error executing claim query")
		return fmt.Errorf("error claiming item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// Resolve moves a claimed item to resolved
func (r *LostFoundRepository) Resolve(ctx context.Context, id, resolvedBy int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE lost_found_items
		SET status = 'resolved', resolved_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'claimed'
	`, id, resolvedBy)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", id).Msg("Error executing resolve query")
		return fmt.Errorf("error resolving item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// Match links two open items of opposite categories in one transaction.
// Both status guards must hit, otherwise the whole match rolls back.
func (r *LostFoundRepository) Match(ctx context.Context, lostID, foundID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin match transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	first, err := tx.Exec(ctx, `
		UPDATE lost_found_items
		SET status = 'matched', matched_with = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, lostID, foundID)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", lostID).Msg("Error executing match query")
		return fmt.Errorf("error matching item: %w", err)
	}

	second, err := tx.Exec(ctx, `
		UPDATE lost_found_items
		SET status = 'matched', matched_with = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`, foundID, lostID)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", foundID).Msg("Error executing match query")
		return fmt.Errorf("error matching item: %w", err)
	}

	if first.RowsAffected() == 0 || second.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit match transaction: %w", err)
	}

	return nil
}

// ExpireOlderThan marks open items reported before the cutoff expired and
// returns the affected IDs so the sweep can publish per-item updates.
func (r *LostFoundRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE lost_found_items
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'open' AND created_at < $1
		RETURNING id
	`, cutoff)
	if err != nil {
		logger.Error().Err(err).Time("cutoff", cutoff).Msg("Error executing expire query")
		return nil, fmt.Errorf("error expiring items: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning expired item ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expired item IDs: %w", err)
	}

	return ids, nil
}
