package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgErrorCodes(t *testing.T) {
	invalid := fmt.Errorf("get order: %w", &pgconn.PgError{Code: "22P02"})
	assert.True(t, isInvalidTextRepresentation(invalid))
	assert.False(t, isUniqueViolation(invalid))
	assert.False(t, isForeignKeyViolation(invalid))

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isInvalidTextRepresentation(errors.New("boom")))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("00000000-0000-0000-0000-000000000042"))
	assert.False(t, isUUID("x"))
	assert.False(t, isUUID(""))
}

func TestWhereBuilder_NumeraPlaceholders(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.sql())
	w.add("status = ?", "new")
	w.add("(lower(name) LIKE ? OR phone LIKE ?)", "%a%", "%a%")
	assert.Equal(t, " WHERE status = $1 AND (lower(name) LIKE $2 OR phone LIKE $3)", w.sql())
	assert.Len(t, w.args, 3)
}
