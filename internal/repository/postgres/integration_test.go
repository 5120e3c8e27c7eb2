//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"eventcatalog/internal/domain"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("catalog"),
		tcpostgres.WithUsername("catalog"),
		tcpostgres.WithPassword("catalog"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, migrateWithRetry(dbURL, 15*time.Second))

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStorage(db)
}

func migrateWithRetry(dbURL string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := MigrateUp(dbURL)
		if err == nil || time.Now().After(deadline) {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestIntegration_StorageContract(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	req := domain.PageRequest{Size: 10, Sort: domain.Sort{Field: domain.FieldID}}

	madrid, err := s.Venues().Save(ctx, &domain.Venue{
		Name: "Teatro X", City: "Madrid", Country: "Spain", Capacity: 100,
		Status: domain.VenueActive, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), madrid.ID)

	_, err = s.Venues().Save(ctx, &domain.Venue{Name: "Teatro X", Capacity: 1, Status: domain.VenueActive, CreatedAt: now, UpdatedAt: now})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	taken, err := s.Venues().ExistsByName(ctx, "Teatro X", madrid.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	show, err := s.Events().Save(ctx, &domain.Event{
		Name: "Show", Description: "A long description", EventDate: now.Add(24 * time.Hour),
		VenueID: madrid.ID, VenueName: madrid.Name, Capacity: 50,
		TicketPrice: decimal.RequireFromString("25.50"), Status: domain.EventScheduled,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	_, err = s.Events().Save(ctx, &domain.Event{
		Name: "Orphan", Description: "A long description", EventDate: now.Add(time.Hour),
		VenueID: 999, Capacity: 1, TicketPrice: decimal.NewFromInt(1), Status: domain.EventScheduled,
		CreatedAt: now, UpdatedAt: now,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	byCity := domain.Predicate{}.And(domain.Condition{Field: domain.FieldVenueCity, Op: domain.OpEqualFold, Value: "MADRID"})
	page, err := s.Events().FindFiltered(ctx, byCity, req)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, show.ID, page.Items[0].ID)
	assert.True(t, decimal.RequireFromString("25.5").Equal(page.Items[0].TicketPrice))

	require.NoError(t, s.WithTx(ctx, func(ctx context.Context, tx domain.Storage) error {
		return tx.Venues().DeleteByID(ctx, madrid.ID)
	}))
	ok, err := s.Events().ExistsByID(ctx, show.ID)
	require.NoError(t, err)
	assert.False(t, ok, "events are removed with their venue")
}
