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
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/dberrors"
)

const participationUniqueConstraint = "uq_participation_unique"

// ApplyResult is the outcome of an application attempt
type ApplyResult struct {
	Outcome       domain.ApplyOutcome
	Participation *models.Participation
	Event         *models.Event
}

// DecisionResult is the participation after an accept/reject, with its event
type DecisionResult struct {
	Participation *models.Participation
	Event         *models.Event
}

// ParticipationRepository handles volunteer applications to events
type ParticipationRepository struct {
	db *pgxpool.Pool
}

// NewParticipationRepository creates a new ParticipationRepository
func NewParticipationRepository(db *pgxpool.Pool) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

// ApplyTx runs the whole application inside one transaction: the event row is
// locked, capacity and duplicates are checked, then the pending participation
// and the owner's notification are inserted together.
func (r *ParticipationRepository) ApplyTx(ctx context.Context, volunteerID int64, volunteerName string, eventID int64) (*ApplyResult, error) {
	res := &ApplyResult{}
	err := db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		event, err := getEvent(ctx, tx, eventID, true)
		if err != nil {
			return err
		}
		res.Event = event

		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM participations WHERE volunteer_id = $1 AND event_id = $2)`,
			volunteerID, eventID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("error checking participation: %w", err)
		}

		res.Outcome = domain.EvaluateApplication(event.Capacity(), exists)
		if res.Outcome != domain.ApplyCreated {
			return nil
		}

		now := time.Now()
		p := &models.Participation{
			VolunteerID: volunteerID,
			EventID:     eventID,
			Status:      domain.ParticipationPending,
			AppliedAt:   now,
			UpdatedAt:   now,
		}
		sql, args, err := psql.Insert("participations").
			Columns("volunteer_id", "event_id", "status", "applied_at", "updated_at").
			Values(p.VolunteerID, p.EventID, p.Status, p.AppliedAt, p.UpdatedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
			if dberrors.IsDuplicateConstraintError(err, participationUniqueConstraint) {
				res.Outcome = domain.ApplyAlreadyApplied
				return errDuplicateApplication
			}
			return fmt.Errorf("error creating participation: %w", err)
		}
		res.Participation = p

		draft := domain.ParticipationRequested(event.AssociationID, volunteerName, event.ID, event.Title)
		_, err = insertNotification(ctx, tx, draft)
		return err
	})
	if errors.Is(err, errDuplicateApplication) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

var errDuplicateApplication = errors.New("duplicate application")

// DecideTx changes the status of a participation of eventID and notifies the
// volunteer in the same transaction. Capacity is not re-checked.
func (r *ParticipationRepository) DecideTx(ctx context.Context, eventID, participationID int64, status domain.ParticipationStatus) (*DecisionResult, error) {
	res := &DecisionResult{}
	err := db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		event, err := getEvent(ctx, tx, eventID, true)
		if err != nil {
			return err
		}
		res.Event = event

		p := &models.Participation{}
		err = tx.QueryRow(ctx, `
			UPDATE participations SET status = $1, updated_at = $2
			WHERE id = $3 AND event_id = $4
			RETURNING id, volunteer_id, event_id, status, applied_at, updated_at`,
			status, time.Now(), participationID, eventID).
			Scan(&p.ID, &p.VolunteerID, &p.EventID, &p.Status, &p.AppliedAt, &p.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrParticipationNotFound
			}
			return fmt.Errorf("error updating participation: %w", err)
		}
		res.Participation = p

		_, err = insertNotification(ctx, tx, domain.ParticipationDecided(p.VolunteerID, status, event.ID, event.Title))
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Withdraw deletes the volunteer's own application
func (r *ParticipationRepository) Withdraw(ctx context.Context, volunteerID, eventID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM participations WHERE volunteer_id = $1 AND event_id = $2`, volunteerID, eventID)
	if err != nil {
		return fmt.Errorf("error deleting participation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipationNotFound
	}
	return nil
}

// GetStatus returns the volunteer's status for an event, nil when not applied
func (r *ParticipationRepository) GetStatus(ctx context.Context, volunteerID, eventID int64) (*domain.ParticipationStatus, error) {
	var status domain.ParticipationStatus
	err := r.db.QueryRow(ctx, `SELECT status FROM participations WHERE volunteer_id = $1 AND event_id = $2`,
		volunteerID, eventID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving participation: %w", err)
	}
	return &status, nil
}

// ListByEvent returns the applications of an event with the volunteer cards
func (r *ParticipationRepository) ListByEvent(ctx context.Context, eventID int64) ([]*models.Participation, error) {
	sql, args, err := psql.Select(
		"p.id", "p.volunteer_id", "p.event_id", "p.status", "p.applied_at", "p.updated_at",
		"u.id", "u.name", "u.role_type", "u.photo_filename",
	).
		From("participations p").
		Join("users u ON u.id = p.volunteer_id").
		Where(squirrel.Eq{"p.event_id": eventID}).
		OrderBy("p.applied_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Participation{}
	for rows.Next() {
		p := &models.Participation{Volunteer: &models.UserSummary{}}
		err := rows.Scan(&p.ID, &p.VolunteerID, &p.EventID, &p.Status, &p.AppliedAt, &p.UpdatedAt,
			&p.Volunteer.ID, &p.Volunteer.Name, &p.Volunteer.RoleType, &p.Volunteer.PhotoFilename)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListByVolunteer returns the volunteer's applications with their events.
// upcoming selects events starting at or after now, otherwise past ones;
// status narrows the result when not empty.
func (r *ParticipationRepository) ListByVolunteer(ctx context.Context, volunteerID int64, now time.Time, upcoming bool, status domain.ParticipationStatus) ([]*models.Participation, error) {
	cols := append([]string{"p.id", "p.volunteer_id", "p.event_id", "p.status", "p.applied_at", "p.updated_at"}, eventColumns...)
	query := psql.Select(cols...).
		From("participations p").
		Join("events e ON e.id = p.event_id").
		Join("users u ON u.id = e.association_id").
		Where(squirrel.Eq{"p.volunteer_id": volunteerID})
	if upcoming {
		query = query.Where(squirrel.GtOrEq{"e.date": now}).OrderBy("e.date ASC")
	} else {
		query = query.Where(squirrel.Lt{"e.date": now}).OrderBy("e.date DESC")
	}
	if status != "" {
		query = query.Where(squirrel.Eq{"p.status": status})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.Participation{}
	for rows.Next() {
		p := &models.Participation{}
		e := &models.Event{}
		err := rows.Scan(&p.ID, &p.VolunteerID, &p.EventID, &p.Status, &p.AppliedAt, &p.UpdatedAt,
			&e.ID, &e.AssociationID, &e.AssociationName, &e.Title, &e.Description, &e.Date, &e.EndDate,
			&e.Location, &e.ImageFilename, &e.Latitude, &e.Longitude, &e.Duration, &e.Skills,
			&e.Activity, &e.Type, &e.CapacityMax, &e.AcceptedCount, &e.ReminderSentAt,
			&e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		p.Event = e
		out = append(out, p)
	}
	return out, rows.Err()
}

// Recipient is a volunteer to be mailed about an event
type Recipient struct {
	UserID int64
	Name   string
	Email  string
}

// ListAcceptedRecipients returns the accepted volunteers of an event
func (r *ParticipationRepository) ListAcceptedRecipients(ctx context.Context, eventID int64) ([]Recipient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name, u.email
		FROM participations p
		JOIN users u ON u.id = p.volunteer_id
		WHERE p.event_id = $1 AND p.status = 'accepted'
		ORDER BY u.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var out []Recipient
	for rows.Next() {
		var rc Recipient
		if err := rows.Scan(&rc.UserID, &rc.Name, &rc.Email); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
