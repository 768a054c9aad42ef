package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/db"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

const acceptedCountExpr = "(SELECT COUNT(*) FROM participations p WHERE p.event_id = e.id AND p.status = 'accepted') AS accepted_count"

var eventColumns = []string{
	"e.id", "e.association_id", "u.name", "e.title", "e.description", "e.date", "e.end_date",
	"e.location", "e.image_filename", "e.latitude", "e.longitude", "e.duration", "e.skills",
	"e.activity", "e.type", "e.capacity_max", acceptedCountExpr, "e.reminder_sent_at",
	"e.created_at", "e.updated_at",
}

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func selectEvents() squirrel.SelectBuilder {
	return psql.Select(eventColumns...).
		From("events e").
		Join("users u ON u.id = e.association_id")
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	e := &models.Event{}
	err := row.Scan(
		&e.ID, &e.AssociationID, &e.AssociationName, &e.Title, &e.Description, &e.Date, &e.EndDate,
		&e.Location, &e.ImageFilename, &e.Latitude, &e.Longitude, &e.Duration, &e.Skills,
		&e.Activity, &e.Type, &e.CapacityMax, &e.AcceptedCount, &e.ReminderSentAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if e.Skills == nil {
		e.Skills = []string{}
	}
	return e, nil
}

func (r *EventRepository) list(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Event, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// getEvent loads one event through q, optionally locking the events row
func getEvent(ctx context.Context, q db.Querier, id int64, forUpdate bool) (*models.Event, error) {
	query := selectEvents().Where(squirrel.Eq{"e.id": id})
	if forUpdate {
		query = query.Suffix("FOR UPDATE OF e")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	e, err := scanEvent(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error retrieving event: %w", err)
	}
	return e, nil
}

// Create stores a new event and sets its ID
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	now := time.Now()
	sql, args, err := psql.Insert("events").
		Columns("association_id", "title", "description", "date", "end_date", "location",
			"image_filename", "latitude", "longitude", "duration", "skills", "activity", "type",
			"capacity_max", "created_at", "updated_at").
		Values(e.AssociationID, e.Title, e.Description, e.Date, e.EndDate, e.Location,
			e.ImageFilename, e.Latitude, e.Longitude, e.Duration, e.Skills, e.Activity, e.Type,
			e.CapacityMax, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID); err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}
	e.CreatedAt, e.UpdatedAt = now, now
	return nil
}

// Update rewrites the editable columns of an event
func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	e.UpdatedAt = time.Now()
	sql, args, err := psql.Update("events").
		SetMap(map[string]interface{}{
			"title":        e.Title,
			"description":  e.Description,
			"date":         e.Date,
			"end_date":     e.EndDate,
			"location":     e.Location,
			"latitude":     e.Latitude,
			"longitude":    e.Longitude,
			"duration":     e.Duration,
			"skills":       e.Skills,
			"activity":     e.Activity,
			"type":         e.Type,
			"capacity_max": e.CapacityMax,
			"updated_at":   e.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// UpdateImage sets the stored image name of an event
func (r *EventRepository) UpdateImage(ctx context.Context, id int64, filename string) error {
	tag, err := r.db.Exec(ctx, `UPDATE events SET image_filename = $1, updated_at = $2 WHERE id = $3`, filename, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating event image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event; participations cascade
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// GetByID retrieves an event with its accepted count
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return getEvent(ctx, r.db, id, false)
}

// ListByAssociation returns the events of an association ordered by date
func (r *EventRepository) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Event, error) {
	return r.list(ctx, selectEvents().
		Where(squirrel.Eq{"e.association_id": associationID}).
		OrderBy("e.date ASC", "e.id ASC"))
}

// ListAll returns every event, newest start date first
func (r *EventRepository) ListAll(ctx context.Context) ([]*models.Event, error) {
	return r.list(ctx, selectEvents().OrderBy("e.date DESC", "e.id DESC"))
}

// ListUpcomingByAssociation returns up to limit events of an association starting after from
func (r *EventRepository) ListUpcomingByAssociation(ctx context.Context, associationID int64, from time.Time, limit uint64) ([]*models.Event, error) {
	return r.list(ctx, selectEvents().
		Where(squirrel.Eq{"e.association_id": associationID}).
		Where(squirrel.GtOrEq{"e.date": from}).
		OrderBy("e.date ASC").
		Limit(limit))
}

// ListGeolocated returns events that carry both coordinates
func (r *EventRepository) ListGeolocated(ctx context.Context) ([]*models.Event, error) {
	return r.list(ctx, selectEvents().
		Where(squirrel.NotEq{"e.latitude": nil, "e.longitude": nil}).
		OrderBy("e.date DESC"))
}

// ListDueForReminder returns events starting in [from, to) that were never reminded
func (r *EventRepository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	return r.list(ctx, selectEvents().
		Where(squirrel.GtOrEq{"e.date": from}).
		Where(squirrel.Lt{"e.date": to}).
		Where(squirrel.Eq{"e.reminder_sent_at": nil}).
		OrderBy("e.date ASC"))
}

// MarkReminderSent stamps the reminder time of an event
func (r *EventRepository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `UPDATE events SET reminder_sent_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("error marking reminder: %w", err)
	}
	return nil
}
