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
	"github.com/campushub/campushub/internal/pkg/logger"
)

// EventRepository handles event database operations
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const eventColumns = `id, title, description, category, venue, start_date, end_date,
	start_time, end_time, organizer_id, max_attendees, registration_deadline,
	is_approved, approved_by, approved_at, is_active, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.OrganizerID,
		&e.MaxAttendees, &e.RegistrationDeadline, &e.IsApproved, &e.ApprovedBy,
		&e.ApprovedAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EventFilter narrows the event listing.
type EventFilter struct {
	Category     string
	Search       string
	ApprovedOnly bool
	PendingOnly  bool
	From         *time.Time
	To           *time.Time
}

// GetAll retrieves events with filtering and pagination
func (r *EventRepository) GetAll(ctx context.Context, filter EventFilter, page, pageSize int) ([]models.Event, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM events
		WHERE 1=1
	`, eventColumns)

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
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex+1)
		args = append(args, pattern, pattern)
		argIndex += 2
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND start_date >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND start_date <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY start_date, id LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list events query")
		return nil, 0, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	var total int64
	for rows.Next() {
		var e models.Event
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
			&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.OrganizerID,
			&e.MaxAttendees, &e.RegistrationDeadline, &e.IsApproved, &e.ApprovedBy,
			&e.ApprovedAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}

// GetByID retrieves an event by ID, including its attendee list
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("event not found with ID %d", id))
		}
		logger.Error().Err(err).Int64("eventID", id).Msg("Error scanning event row")
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, user_id, status, registered_at
		FROM event_attendees
		WHERE event_id = $1
		ORDER BY registered_at
	`, id)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error querying event attendees")
		return nil, fmt.Errorf("error retrieving attendees: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.EventAttendee
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.Status, &a.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning attendee row: %w", err)
		}
		event.Attendees = append(event.Attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendee rows: %w", err)
	}

	return event, nil
}

// Create inserts a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, category, venue, start_date, end_date,
			start_time, end_time, organizer_id, max_attendees, registration_deadline,
			is_approved, approved_by, approved_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		event.Title, event.Description, event.Category, event.Venue,
		event.StartDate, event.EndDate, event.StartTime, event.EndTime,
		event.OrganizerID, event.MaxAttendees, event.RegistrationDeadline,
		event.IsApproved, event.ApprovedBy, event.ApprovedAt, event.IsActive,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("title", event.Title).Msg("Error executing create event query")
		return fmt.Errorf("error creating event: %w", err)
	}

	return nil
}

// Update writes the mutable fields of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := r.sb.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("category", event.Category).
		Set("venue", event.Venue).
		Set("start_date", event.StartDate).
		Set("end_date", event.EndDate).
		Set("start_time", event.StartTime).
		Set("end_time", event.EndTime).
		Set("max_attendees", event.MaxAttendees).
		Set("registration_deadline", event.RegistrationDeadline).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", event.ID).Msg("Error executing update event query")
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("event not found with ID %d", event.ID))
	}

	return nil
}

// Approve flips a pending event to approved. The is_approved guard in the
// WHERE clause makes concurrent approvals lose cleanly.
func (r *EventRepository) Approve(ctx context.Context, id, approvedBy int64, approvedAt time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE events
		SET is_approved = true, is_active = true, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1 AND is_approved = false
	`, id, approvedBy, approvedAt)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing approve event query")
		return fmt.Errorf("error approving event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyApproved
	}

	return nil
}

// Delete removes an event and its attendee rows
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing delete event query")
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(fmt.Sprintf("event not found with ID %d", id))
	}

	return nil
}

// Register inserts an attendee row inside a transaction that locks the
// event row first, so concurrent registrations serialize and each one
// counts every committed seat. A cancelled row is revived in place via
// the conflict branch so the unique pair constraint holds.
func (r *EventRepository) Register(ctx context.Context, eventID, userID int64) (*models.EventAttendee, error) {
	var a models.EventAttendee

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var maxAttendees *int
		err := tx.QueryRow(ctx, `
			SELECT max_attendees FROM events WHERE id = $1 FOR UPDATE
		`, eventID).Scan(&maxAttendees)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewResourceNotFoundError(fmt.Sprintf("event not found with ID %d", eventID))
			}
			logger.Error().Err(err).Int64("eventID", eventID).Msg("Error locking event row")
			return fmt.Errorf("error locking event: %w", err)
		}

		query := `
			INSERT INTO event_attendees (event_id, user_id, status)
			SELECT $1, $2, 'registered'
			WHERE ($3::int IS NULL OR (
				SELECT COUNT(*) FROM event_attendees
				WHERE event_id = $1 AND status = 'registered'
			) < $3)
			ON CONFLICT (event_id, user_id) DO UPDATE
			SET status = 'registered', registered_at = NOW()
			WHERE event_attendees.status = 'cancelled'
			RETURNING id, event_id, user_id, status, registered_at
		`

		err = tx.QueryRow(ctx, query, eventID, userID, maxAttendees).
			Scan(&a.ID, &a.EventID, &a.UserID, &a.Status, &a.RegisteredAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Zero rows means either the capacity guard or the conflict
				// guard blocked the write; one more read tells them apart.
				// Any live row, registered or attended, means the caller
				// already holds a seat.
				var status models.AttendanceStatus
				checkErr := tx.QueryRow(ctx, `
					SELECT status FROM event_attendees WHERE event_id = $1 AND user_id = $2
				`, eventID, userID).Scan(&status)
				if checkErr == nil && status != models.AttendanceCancelled {
					return apperrors.ErrAlreadyJoined
				}
				return apperrors.ErrCapacityFull
			}
			logger.Error().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("Error executing register query")
			return fmt.Errorf("error registering for event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CancelRegistration flips an attendee row to cancelled, freeing the seat
func (r *EventRepository) CancelRegistration(ctx context.Context, eventID, userID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE event_attendees
		SET status = 'cancelled'
		WHERE event_id = $1 AND user_id = $2 AND status = 'registered'
	`, eventID, userID)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("Error executing cancel registration query")
		return fmt.Errorf("error cancelling registration: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotAMember
	}

	return nil
}
