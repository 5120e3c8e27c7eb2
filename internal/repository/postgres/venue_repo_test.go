package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

var venueCols = []string{
	"id", "name", "address", "city", "country", "capacity", "type", "description",
	"phone", "email", "status", "created_at", "updated_at",
}

func TestVenueRepository_Save(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newVenue := func(id int64) *domain.Venue {
		return &domain.Venue{
			ID: id, Name: "Teatro X", City: "Madrid", Country: "Spain", Capacity: 100,
			Status: domain.VenueActive, CreatedAt: now, UpdatedAt: now,
		}
	}

	tests := []struct {
		name    string
		venue   *domain.Venue
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr error
	}{
		{
			name:  "insert assigns id",
			venue: newVenue(0),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO venues`).
					WithArgs("Teatro X", "", "Madrid", "Spain", 100, "", "", "", "", "ACTIVE", now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			},
			wantID: 1,
		},
		{
			name:  "insert duplicate name",
			venue: newVenue(0),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO venues`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "venues_name_key"})
			},
			wantErr: domain.ErrDuplicate,
		},
		{
			name:  "update existing",
			venue: newVenue(5),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE venues`).
					WithArgs(int64(5), "Teatro X", "", "Madrid", "Spain", 100, "", "", "", "", "ACTIVE", now).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantID: 5,
		},
		{
			name:  "update missing",
			venue: newVenue(9),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE venues`).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewVenueRepository(db)
			got, err := repo.Save(ctx, tt.venue)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, "Teatro X", got.Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVenueRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM venues v WHERE v.id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(venueCols).
				AddRow(1, "Teatro X", "Calle 1", "Madrid", "Spain", 100, "theatre", "", "", "", "MAINTENANCE", now, now))

		v, err := NewVenueRepository(db).FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.ID)
		assert.Equal(t, domain.VenueMaintenance, v.Status)
		assert.Equal(t, "theatre", v.Type)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM venues v WHERE v.id = \$1`).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

		_, err = NewVenueRepository(db).FindByID(ctx, 2)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, int64(2), nf.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVenueRepository_FindFiltered(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pred := domain.Predicate{}.
		And(domain.Condition{Field: domain.FieldCity, Op: domain.OpEqualFold, Value: "madrid"}).
		And(domain.Condition{Field: domain.FieldCapacity, Op: domain.OpGreaterOrEqual, Value: 50})
	req := domain.PageRequest{Page: 1, Size: 2, Sort: domain.Sort{Field: domain.FieldName, Desc: true}}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM venues v WHERE LOWER(v.city) = LOWER($1) AND v.capacity >= $2`)).
		WithArgs("madrid", 50).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(v.city) = LOWER($1) AND v.capacity >= $2 ORDER BY v.name COLLATE "C" DESC NULLS LAST, v.id ASC LIMIT $3 OFFSET $4`)).
		WithArgs("madrid", 50, 2, 2).
		WillReturnRows(sqlmock.NewRows(venueCols).
			AddRow(3, "A", "", "Madrid", "", 60, "", "", "", "", "ACTIVE", now, now))

	page, err := NewVenueRepository(db).FindFiltered(ctx, pred, req)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "A", page.Items[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_ExistsByName_excludes_self(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM venues WHERE name = $1 AND id <> $2)`)).
		WithArgs("Teatro X", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := NewVenueRepository(db).ExistsByName(context.Background(), "Teatro X", 4)
	require.NoError(t, err)
	assert.False(t, taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVenueRepository_DeleteByID(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`DELETE FROM venues WHERE id = \$1`).
				WithArgs(int64(7)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err = NewVenueRepository(db).DeleteByID(context.Background(), 7)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
