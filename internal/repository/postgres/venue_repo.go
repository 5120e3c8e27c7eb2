package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventcatalog/internal/domain"
)

const venueSelect = `SELECT v.id, v.name, v.address, v.city, v.country, v.capacity, v.type, v.description,
	v.phone, v.email, v.status, v.created_at, v.updated_at
FROM venues v`

type venueRepository struct {
	DB dbtx
}

func (r *venueRepository) Save(ctx context.Context, v *domain.Venue) (*domain.Venue, error) {
	out := v.Clone()
	if v.ID == 0 {
		query := `
		INSERT INTO venues (name, address, city, country, capacity, type, description, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
		err := r.DB.QueryRowContext(ctx, query,
			v.Name, v.Address, v.City, v.Country, v.Capacity, v.Type, v.Description,
			v.Phone, v.Email, string(v.Status), v.CreatedAt, v.UpdatedAt,
		).Scan(&out.ID)
		if err != nil {
			return nil, r.translate(err, v)
		}
		return out, nil
	}

	query := `
		UPDATE venues
		SET name = $2, address = $3, city = $4, country = $5, capacity = $6, type = $7,
			description = $8, phone = $9, email = $10, status = $11, updated_at = $12
		WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		v.ID, v.Name, v.Address, v.City, v.Country, v.Capacity, v.Type,
		v.Description, v.Phone, v.Email, string(v.Status), v.UpdatedAt,
	)
	if err != nil {
		return nil, r.translate(err, v)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	if n == 0 {
		return nil, domain.NewNotFound(domain.ResourceVenue, v.ID)
	}
	return out, nil
}

func (r *venueRepository) translate(err error, v *domain.Venue) error {
	if pgCode(err) == uniqueViolation {
		return &domain.DuplicateError{Resource: domain.ResourceVenue, Field: "name", Value: v.Name}
	}
	return fmt.Errorf("save venue: %w", err)
}

func (r *venueRepository) FindByID(ctx context.Context, id int64) (*domain.Venue, error) {
	v, err := scanVenue(r.DB.QueryRowContext(ctx, venueSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFound(domain.ResourceVenue, id)
		}
		return nil, fmt.Errorf("find venue: %w", err)
	}
	return v, nil
}

func (r *venueRepository) FindAll(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Venue], error) {
	return r.FindFiltered(ctx, domain.Predicate{}, page)
}

func (r *venueRepository) FindFiltered(ctx context.Context, pred domain.Predicate, page domain.PageRequest) (domain.Page[*domain.Venue], error) {
	where, args, err := whereClause(pred, venueColumns)
	if err != nil {
		return domain.Page[*domain.Venue]{}, err
	}
	order, err := orderClause(page.Sort, venueColumns)
	if err != nil {
		return domain.Page[*domain.Venue]{}, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues v`+where, args...).Scan(&total); err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("count venues: %w", err)
	}

	limit, args := limitClause(args, page)
	rows, err := r.DB.QueryContext(ctx, venueSelect+where+order+limit, args...)
	if err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []*domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return domain.Page[*domain.Venue]{}, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[*domain.Venue]{}, fmt.Errorf("list venues: %w", err)
	}
	return domain.NewPage(venues, total, page), nil
}

func (r *venueRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM venues WHERE name = $1 AND id <> $2)`, name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("venue exists by name: %w", err)
	}
	return exists, nil
}

func (r *venueRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM venues WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("venue exists by id: %w", err)
	}
	return exists, nil
}

// DeleteByID removes the venue; its events go with it through ON DELETE CASCADE.
func (r *venueRepository) DeleteByID(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(domain.ResourceVenue, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVenue(row scanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var status string
	err := row.Scan(&v.ID, &v.Name, &v.Address, &v.City, &v.Country, &v.Capacity, &v.Type,
		&v.Description, &v.Phone, &v.Email, &status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.Status = domain.VenueStatus(status)
	return v, nil
}
