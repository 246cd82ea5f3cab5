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
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// ClubRepository handles club database operations
type ClubRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(db *pgxpool.Pool) *ClubRepository {
	return &ClubRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const clubColumns = `id, name, description, category, advisor_id, president_id,
	max_members, is_approved, approved_by, approved_at, is_active, created_at, updated_at`

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Category, &c.AdvisorID,
		&c.PresidentID, &c.MaxMembers, &c.IsApproved, &c.ApprovedBy,
		&c.ApprovedAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClubFilter narrows the club listing.
type ClubFilter struct {
	Category     string
	Search       string
	ApprovedOnly bool
	PendingOnly  bool
}

// GetAll retrieves clubs with filtering and pagination
func (r *ClubRepository) GetAll(ctx context.Context, filter ClubFilter, page, pageSize int) ([]models.Club, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM clubs
		WHERE 1=1
	`, clubColumns)

	args := []interface{}{}
	argIndex := 1

	if filter.ApprovedOnly {
		query += " AND is_approved = true AND is_active = true"
	}
	if filter.PendingOnly {
		query += " AND is_approved = false"
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, filter.Category)
		argIndex++
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, pattern, pattern)
		argIndex += 2
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list clubs query")
		return nil, 0, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	clubs := []models.Club{}
	var total int64
	for rows.Next() {
		var c models.Club
		err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.Category, &c.AdvisorID,
			&c.PresidentID, &c.MaxMembers, &c.IsApproved, &c.ApprovedBy,
			&c.ApprovedAt, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating club rows: %w", err)
	}

	return clubs, total, nil
}

// GetByID retrieves a club by ID, including its membership list
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := fmt.Sprintf(`SELECT %s FROM clubs WHERE id = $1`, clubColumns)

	club, err := scanClub(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("club not found with ID %d", id))
		}
		logger.Error().Err(err).Int64("clubID", id).Msg("Error scanning club row")
		return nil, fmt.Errorf("error retrieving club: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, club_id, user_id, role, joined_at
		FROM club_members
		WHERE club_id = $1
		ORDER BY joined_at
	`, id)
	if err != nil {
		logger.Error().Err(err).Int64("clubID", id).Msg("Error querying club members")
		return nil, fmt.Errorf("error retrieving members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.ClubMember
		if err := rows.Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning member row: %w", err)
		}
		club.Members = append(club.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}

	return club, nil
}

// Create inserts a new club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO clubs (name, description, category, advisor_id, president_id,
			max_members, is_approved, approved_by, approved_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		club.Name, club.Description, club.Category, club.AdvisorID,
		club.PresidentID, club.MaxMembers, club.IsApproved, club.ApprovedBy,
		club.ApprovedAt, club.IsActive,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
			return apperrors.NewConflictError(fmt.Sprintf("club name %q is taken", club.Name))
		}
		logger.Error().Err(err).Str("name", club.Name).Msg("Error executing create club query")
		return fmt.Errorf("error creating club: %w", err)
	}

	return nil
}

// Update writes the mutable fields of a club
func (r *ClubRepository) Update(ctx context.Context, club *models.Club) error {
	sql, args, err := r.sb.Update("clubs").
		Set("name", club.Name).
		Set("description", club.Description).
		Set("category", club.Category).
		Set("president_id", club.PresidentID).
		Set("max_members", club.MaxMembers).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": club.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update club query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
			return apperrors.NewConflictError(fmt.Sprintf("club name %q is taken", club.Name))
		}
		logger.Error().Err(err).Int64("clubID", club.ID).Msg("Error executing update club query")
		return fmt.Errorf("error updating club: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("club not found with ID %d", club.ID))
	}

	return nil
}

// Approve flips a pending club to approved, losing cleanly on races
func (r *ClubRepository) Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE clubs
		SET is_approved = true, is_active = true, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND is_approved = false
	`, id, approvedBy, approvedAt)
	if err != nil {
		logger.Error().Err(err).Int64("clubID", id).Msg("Error executing approve club query")
		return fmt.Errorf("error approving club: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyApproved
	}

	return nil
}

// Delete removes a club, its member rows and the user_clubs links
func (r *ClubRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("clubID", id).Msg("Error executing delete club query")
		return fmt.Errorf("error deleting club: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("club not found with ID %d", id))
	}

	return nil
}

// AddMember inserts a membership row and the user_clubs link in one
// transaction. The club row is locked first so concurrent joins serialize
// and the member count each one sees includes every committed join.
func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID int64) (*models.ClubMember, error) {
	var m models.ClubMember

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var maxMembers *int
		err := tx.QueryRow(ctx, `
			SELECT max_members FROM clubs WHERE id = $1 FOR UPDATE
		`, clubID).Scan(&maxMembers)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(fmt.Sprintf("club not found with ID %d", clubID))
			}
			logger.Error().Err(err).Int64("clubID", clubID).Msg("Error locking club row")
			return fmt.Errorf("error locking club: %w", err)
		}

		query := `
			INSERT INTO club_members (club_id, user_id, role)
			SELECT $1, $2, 'member'
			WHERE ($3::int IS NULL OR (
				SELECT COUNT(*) FROM club_members WHERE club_id = $1
			) < $3)
			RETURNING id, club_id, user_id, role, joined_at
		`

		err = tx.QueryRow(ctx, query, clubID, userID, maxMembers).
			Scan(&m.ID, &m.ClubID, &m.UserID, &m.Role, &m.JoinedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCapacityFull
			}
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyJoined
			}
			logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error executing add member query")
			return fmt.Errorf("error adding member: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO user_clubs (user_id, club_id) VALUES ($1, $2)
			ON CONFLICT (user_id, club_id) DO NOTHING
		`, userID, clubID)
		if err != nil {
			logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error inserting user club link")
			return fmt.Errorf("error linking user to club: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RemoveMember deletes the membership row and the user_clubs link together
func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			DELETE FROM club_members WHERE club_id = $1 AND user_id = $2
		`, clubID, userID)
		if err != nil {
			logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error executing remove member query")
			return fmt.Errorf("error removing member: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrNotAMember
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM user_clubs WHERE user_id = $1 AND club_id = $2
		`, userID, clubID)
		if err != nil {
			logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error deleting user club link")
			return fmt.Errorf("error unlinking user from club: %w", err)
		}

		return nil
	})
}

// UpdateMemberRole changes a member's office within the club
func (r *ClubRepository) UpdateMemberRole(ctx context.Context, clubID, userID int64, role models.MemberRole) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE club_members SET role = $3 WHERE club_id = $1 AND user_id = $2
	`, clubID, userID, role)
	if err != nil {
		logger.Error().Err(err).Int64("clubID", clubID).Int64("userID", userID).Msg("Error executing update member role query")
		return fmt.Errorf("error updating member role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMemberNotFound
	}

	return nil
}
