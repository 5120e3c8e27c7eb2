package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"eventcatalog/internal/domain"
)

// PostgreSQL error codes mapped to domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// dbtx is satisfied by *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Storage is the relational domain.Storage. Transactions rely on the database's
// isolation and on the unique and foreign key constraints as the final guard.
type Storage struct {
	DB *sql.DB
	q  dbtx
	tx bool
}

// Connection pool limits applied by Open.
const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// Open connects to databaseURL through lib/pq and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewStorage returns a Storage backed by db.
func NewStorage(db *sql.DB) *Storage {
	return &Storage{DB: db, q: db}
}

func (s *Storage) Venues() domain.VenueRepository { return &venueRepository{DB: s.q} }

func (s *Storage) Events() domain.EventRepository { return &eventRepository{DB: s.q} }

// WithTx runs fn inside a database transaction, committing when fn returns nil.
// Nested calls join the outer transaction.
func (s *Storage) WithTx(ctx context.Context, fn func(ctx context.Context, tx domain.Storage) error) error {
	if s.tx {
		return fn(ctx, s)
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, &Storage{DB: s.DB, q: tx, tx: true}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error { return s.DB.PingContext(ctx) }

// NewVenueRepository returns a VenueRepository that runs directly on db.
func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

// NewEventRepository returns an EventRepository that runs directly on db.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func pgCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
