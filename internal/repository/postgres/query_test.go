package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

func TestWhereClause(t *testing.T) {
	where, args, err := whereClause(domain.Predicate{}, venueColumns)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)

	pred := domain.Predicate{}.
		And(domain.Condition{Field: domain.FieldCountry, Op: domain.OpEqualFold, Value: "Spain"}).
		And(domain.Condition{Field: domain.FieldID, Op: domain.OpEqual, Value: int64(3)}).
		And(domain.Condition{Field: domain.FieldCapacity, Op: domain.OpLessOrEqual, Value: 10})
	where, args, err = whereClause(pred, venueColumns)
	require.NoError(t, err)
	assert.Equal(t, " WHERE LOWER(v.country) = LOWER($1) AND v.id = $2 AND v.capacity <= $3", where)
	assert.Equal(t, []any{"Spain", int64(3), 10}, args)

	_, _, err = whereClause(domain.Predicate{}.And(domain.Condition{Field: "password", Op: domain.OpEqual, Value: "x"}), venueColumns)
	assert.Error(t, err)
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		sort domain.Sort
		cols map[string]column
		want string
	}{
		{"id asc", domain.Sort{Field: "id"}, venueColumns, " ORDER BY v.id ASC NULLS FIRST"},
		{"text desc", domain.Sort{Field: "city", Desc: true}, venueColumns, ` ORDER BY v.city COLLATE "C" DESC NULLS LAST, v.id ASC`},
		{"nullable end date", domain.Sort{Field: "endDate"}, eventColumns, " ORDER BY e.end_date ASC NULLS FIRST, e.id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := orderClause(tt.sort, tt.cols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := orderClause(domain.Sort{Field: "venue.city"}, venueColumns)
	assert.Error(t, err)
}

func TestLimitClause(t *testing.T) {
	clause, args := limitClause([]any{"a"}, domain.PageRequest{Page: 3, Size: 20})
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"a", 20, 60}, args)
}
