package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sdkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "vendor_id", "regular_price", "status"}).
			AddRow(productID, "Dental Mirror", "dental-mirror", vendorID, decimal.NewFromInt(250), "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)
		require.NoError(t, err)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "Dental Mirror", product.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		product, err := repo.FindByID(context.Background(), productID)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_AdjustStock(t *testing.T) {
	t.Run("decrements stock when enough is available", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2 AND stock IS NOT NULL AND stock \+ \$3 >= 0`).
			WithArgs(-2, productID, -2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.AdjustStock(context.Background(), productID, -2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInsufficientStock when the guard rejects the delta", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		vendorID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2 AND stock IS NOT NULL AND stock \+ \$3 >= 0`).
			WithArgs(-5, productID, -5).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "vendor_id", "regular_price", "stock", "status"}).
			AddRow(productID, "Dental Mirror", "dental-mirror", vendorID, decimal.NewFromInt(250), 3, "active")
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		err := repo.AdjustStock(context.Background(), productID, -5)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("is a no-op for untracked products", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		vendorID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2 AND stock IS NOT NULL AND stock \+ \$3 >= 0`).
			WithArgs(-1, productID, -1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "vendor_id", "regular_price", "stock", "status"}).
			AddRow(productID, "Dental Mirror", "dental-mirror", vendorID, decimal.NewFromInt(250), nil, "active")
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		err := repo.AdjustStock(context.Background(), productID, -1)
		assert.NoError(t, err)
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1 WHERE id = \$2 AND stock IS NOT NULL AND stock \+ \$3 >= 0`).
			WithArgs(1, productID, 1).
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.AdjustStock(context.Background(), productID, 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_SearchCandidates(t *testing.T) {
	t.Run("returns empty slice without querying for no patterns", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.SearchCandidates(context.Background(), nil, 50)
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matches name or description against each pattern", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		vendorID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "slug", "vendor_id", "regular_price", "status"}).
			AddRow(productID, "Curved Scissors", "curved-scissors", vendorID, decimal.NewFromInt(400), "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE status = \$1 AND \(name ILIKE \$2 OR description ILIKE \$3\) ORDER BY name ASC LIMIT .*`).
			WithArgs("active", "%c%u%r%", "%c%u%r%", 50).
			WillReturnRows(rows)

		products, err := repo.SearchCandidates(context.Background(), []string{"%c%u%r%"}, 50)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Curved Scissors", products[0].Name)
	})
}
