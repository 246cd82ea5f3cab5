package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const feedbackColumns = `id, subject, message, category, status, created_by,
	assigned_to, is_public, created_at, updated_at`

// FeedbackFilter narrows the feedback listing.
type FeedbackFilter struct {
	Category   string
	Status     string
	PublicOnly bool
	// CreatedBy lets non-staff also see their own private entries
	CreatedBy *int64
}

// GetAll retrieves feedback entries with filtering and pagination
func (r *FeedbackRepository) GetAll(ctx context.Context, filter FeedbackFilter, page, pageSize int) ([]models.Feedback, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM feedback
		WHERE 1=1
	`, feedbackColumns)

	args := []interface{}{}
	argIndex := 1

	if filter.PublicOnly {
		if filter.CreatedBy != nil {
			query += fmt.Sprintf(" AND (is_public = true OR created_by = $%d)", argIndex)
			args = append(args, *filter.CreatedBy)
			argIndex++
		} else {
			query += " AND is_public = true"
		}
	}
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

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list feedback query")
		return nil, 0, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	entries := []models.Feedback{}
	var total int64
	for rows.Next() {
		var f models.Feedback
		err := rows.Scan(
			&f.ID, &f.Subject, &f.Message, &f.Category, &f.Status,
			&f.CreatedBy, &f.AssignedTo, &f.IsPublic, &f.CreatedAt, &f.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning feedback row: %w", err)
		}
		entries = append(entries, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return entries, total, nil
}

// GetByID retrieves a feedback entry with its responses and votes
func (r *FeedbackRepository) GetByID(ctx context.Context, id int64) (*models.Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM feedback WHERE id = $1`, feedbackColumns)

	var f models.Feedback
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Subject, &f.Message, &f.Category, &f.Status,
		&f.CreatedBy, &f.AssignedTo, &f.IsPublic, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("feedback not found with ID %d", id))
		}
		logger.Error().Err(err).Int64("feedbackID", id).Msg("Error scanning feedback row")
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, feedback_id, text, responded_by, responded_at
		FROM feedback_responses
		WHERE feedback_id = $1
		ORDER BY responded_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp models.FeedbackResponse
		if err := rows.Scan(&resp.ID, &resp.FeedbackID, &resp.Text, &resp.RespondedBy, &resp.RespondedAt); err != nil {
			return nil, fmt.Errorf("error scanning response row: %w", err)
		}
		f.Responses = append(f.Responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating response rows: %w", err)
	}

	voteRows, err := r.db.Query(ctx, `
		SELECT user_id, vote_type FROM feedback_votes WHERE feedback_id = $1 ORDER BY user_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving votes: %w", err)
	}
	defer voteRows.Close()

	for voteRows.Next() {
		var userID int64
		var voteType models.VoteType
		if err := voteRows.Scan(&userID, &voteType); err != nil {
			return nil, fmt.Errorf("error scanning vote row: %w", err)
		}
		if voteType == models.VoteUp {
			f.Upvotes = append(f.Upvotes, userID)
		} else {
			f.Downvotes = append(f.Downvotes, userID)
		}
	}
	if err := voteRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote rows: %w", err)
	}

	return &f, nil
}

// Create inserts a new feedback entry
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	query := `
		INSERT INTO feedback (subject, message, category, status, created_by, assigned_to, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		f.Subject, f.Message, f.Category, f.Status, f.CreatedBy, f.AssignedTo, f.IsPublic,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("subject", f.Subject).Msg("Error executing create feedback query")
		return fmt.Errorf("error creating feedback: %w", err)
	}

	return nil
}

// Update writes the mutable fields of a feedback entry
func (r *FeedbackRepository) Update(ctx context.Context, f *models.Feedback) error {
	sql, args, err := r.sb.Update("feedback").
		Set("subject", f.Subject).
		Set("message", f.Message).
		Set("category", f.Category).
		Set("status", f.Status).
		Set("assigned_to", f.AssignedTo).
		Set("is_public", f.IsPublic).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update feedback query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", f.ID).Msg("Error executing update feedback query")
		return fmt.Errorf("error updating feedback: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("feedback not found with ID %d", f.ID))
	}

	return nil
}

// Delete removes a feedback entry and its responses and votes
func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", id).Msg("Error executing delete feedback query")
		return fmt.Errorf("error deleting feedback: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("feedback not found with ID %d", id))
	}

	return nil
}

// AddResponse stores a response and the feedback state it produced in one
// transaction, so the open to in-progress edge and its trigger commit
// together.
func (r *FeedbackRepository) AddResponse(ctx context.Context, f *models.Feedback, resp *models.FeedbackResponse) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin add response transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO feedback_responses (feedback_id, text, responded_by, responded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, resp.FeedbackID, resp.Text, resp.RespondedBy, resp.RespondedAt).Scan(&resp.ID)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", f.ID).Msg("Error inserting feedback response")
		return fmt.Errorf("error adding response: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE feedback SET status = $2, assigned_to = $3, updated_at = NOW() WHERE id = $1
	`, f.ID, f.Status, f.AssignedTo)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", f.ID).Msg("Error updating feedback after response")
		return fmt.Errorf("error updating feedback state: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit add response transaction: %w", err)
	}

	return nil
}

// Vote records or switches a user's vote. The upsert makes switching a
// single atomic write.
func (r *FeedbackRepository) Vote(ctx context.Context, feedbackID, userID int64, voteType models.VoteType) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO feedback_votes (feedback_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (feedback_id, user_id) DO UPDATE SET vote_type = EXCLUDED.vote_type
	`, feedbackID, userID, voteType)
	if err != nil {
		logger.Error().Err(err).Int64("feedbackID", feedbackID).Int64("userID", userID).Msg("Error executing vote query")
		return fmt.Errorf("error recording vote: %w", err)
	}

	return nil
}
