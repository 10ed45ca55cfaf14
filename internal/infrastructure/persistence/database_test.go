package persistence

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("translated gorm error", func(t *testing.T) {
		assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	})

	t.Run("raw pgx error code 23505", func(t *testing.T) {
		assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	})

	t.Run("wrapped pgx error", func(t *testing.T) {
		err := fmt.Errorf("save order: %w", &pgconn.PgError{Code: "23505"})
		assert.True(t, isUniqueViolation(err))
	})

	t.Run("other pgx error code", func(t *testing.T) {
		assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	})

	t.Run("unrelated error", func(t *testing.T) {
		assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
	})
}
