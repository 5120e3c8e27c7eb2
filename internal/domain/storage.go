package domain

import "context"

// Storage groups the repositories of one backend.
type Storage interface {
	Venues() VenueRepository
	Events() EventRepository
	// WithTx runs fn as one atomic unit. Repositories reached through the Storage passed
	// to fn see and take part in the unit; fn's error aborts it.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Storage) error) error
	Ping(ctx context.Context) error
}
