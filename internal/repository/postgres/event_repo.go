package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventcatalog/internal/domain"
)

const eventSelect = `SELECT e.id, e.name, e.description, e.event_date, e.end_date, e.venue_id, e.venue_name,
	e.capacity, e.ticket_price, e.category, e.status, e.created_at, e.updated_at
FROM events e`

const venueJoin = ` JOIN venues v ON v.id = e.venue_id`

type eventRepository struct {
	DB dbtx
}

func (r *eventRepository) Save(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	out := e.Clone()
	end := nullTime(e.EndDate)
	if e.ID == 0 {
		query := `
		INSERT INTO events (name, description, event_date, end_date, venue_id, venue_name, capacity,
			ticket_price, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
		err := r.DB.QueryRowContext(ctx, query,
			e.Name, e.Description, e.EventDate, end, e.VenueID, e.VenueName, e.Capacity,
			e.TicketPrice, e.Category, string(e.Status), e.CreatedAt, e.UpdatedAt,
		).Scan(&out.ID)
		if err != nil {
			return nil, r.translate(err, e)
		}
		return out, nil
	}

	query := `
		UPDATE events
		SET name = $2, description = $3, event_date = $4, end_date = $5, venue_id = $6, venue_name = $7,
			capacity = $8, ticket_price = $9, category = $10, status = $11, updated_at = $12
		WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Description, e.EventDate, end, e.VenueID, e.VenueName,
		e.Capacity, e.TicketPrice, e.Category, string(e.Status), e.UpdatedAt,
	)
	if err != nil {
		return nil, r.translate(err, e)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if n == 0 {
		return nil, domain.NewNotFound(domain.ResourceEvent, e.ID)
	}
	return out, nil
}

func (r *eventRepository) translate(err error, e *domain.Event) error {
	switch pgCode(err) {
	case uniqueViolation:
		return &domain.DuplicateError{Resource: domain.ResourceEvent, Field: "name", Value: e.Name}
	case foreignKeyViolation:
		return domain.NewNotFound(domain.ResourceVenue, e.VenueID)
	}
	return fmt.Errorf("save event: %w", err)
}

func (r *eventRepository) FindByID(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := scanEvent(r.DB.QueryRowContext(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourceEvent, id)
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

func (r *eventRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Event], error) {
	return r.FindFiltered(ctx, domain.Predicate{}, page)
}

func (r *eventRepository) FindFiltered(ctx context.Context, pred domain.Predicate, page domain.PageRequest) (domain.Page[*domain.Event], error) {
	where, args, err := whereClause(pred, eventColumns)
	if err != nil {
		return domain.Page[*domain.Event]{}, err
	}
	order, err := orderClause(page.Sort, eventColumns)
	if err != nil {
		return domain.Page[*domain.Event]{}, err
	}
	join := ""
	if needsVenueJoin(pred) {
		join = venueJoin
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events e`+join+where, args...).Scan(&total); err != nil {
		return domain.Page[*domain.Event]{}, fmt.Errorf("count events: %w", err)
	}

	limit, args := limitClause(args, page)
	rows, err := r.DB.QueryContext(ctx, eventSelect+join+where+order+limit, args...)
	if err != nil {
		return domain.Page[*domain.Event]{}, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return domain.Page[*domain.Event]{}, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[*domain.Event]{}, fmt.Errorf("list events: %w", err)
	}
	return domain.NewPage(events, total, page), nil
}

func (r *eventRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE name = $1 AND id <> $2)`, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("event exists by name: %w", err)
	}
	return exists, nil
}

func (r *eventRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("event exists by id: %w", err)
	}
	return exists, nil
}

func (r *eventRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(domain.ResourceEvent, id)
	}
	return nil
}

func scanEvent(row scanner) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		end    sql.NullTime
		status string
	)
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.EventDate, &end, &e.VenueID, &e.VenueName,
		&e.Capacity, &e.TicketPrice, &e.Category, &status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if end.Valid {
		t := end.Time
		e.EndDate = &t
	}
	e.Status = domain.EventStatus(status)
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
