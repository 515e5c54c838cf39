package sqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	d, err = ParseDialect("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)
	assert.Equal(t, "sqlite", d.DriverName())

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestBuilder_Placeholders(t *testing.T) {
	pg := New(Postgres)
	query, args, err := pg.ForUpdate(pg.Select("id").From("bookings").Where(squirrel.Eq{"market_id": "m1"})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE market_id = $1 FOR UPDATE", query)
	assert.Equal(t, []interface{}{"m1"}, args)

	lite := New(SQLite)
	query, _, err = lite.ForUpdate(lite.Select("id").From("bookings").Where(squirrel.Eq{"market_id": "m1"})).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM bookings WHERE market_id = ?", query)
}
