package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	assert.True(t, IsDuplicateConstraintError(err, "users_email_key"))
	assert.False(t, IsDuplicateConstraintError(err, "enrollments_user_course_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "users_email_key"))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyError(nil))
}
