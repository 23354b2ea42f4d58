package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/yomanino/EcoRed-EcoTrama/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock, to assert the SQL
// the repository emits against the production dialect.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestProductGetByBarcode(t *testing.T) {
	repo := NewProductRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Product{
		Barcode: "7501234567890", Name: "Botella PET", Type: "Plástico", Points: 30,
	}))

	got, err := repo.GetByBarcode(ctx, "7501234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Botella PET", got.Name)

	miss, err := repo.GetByBarcode(ctx, "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestProductCreate_DuplicateBarcode(t *testing.T) {
	repo := NewProductRepository(testDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Product{
		Barcode: "7501234567890", Name: "Botella PET", Type: "Plástico",
	}))

	err := repo.Create(ctx, &models.Product{
		Barcode: "7501234567890", Name: "Otra botella", Type: "Plástico",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestProductGetByBarcode_PostgresQuery(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewProductRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "barcode", "name", "brand", "type", "points", "description", "created_at"}).
		AddRow("a2c5e0f1-0000-0000-0000-000000000001", "7501234567890", "Botella PET", "EcoBrand", "Plástico", 30, "", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products" WHERE barcode = $1`)).
		WithArgs("7501234567890", 1).
		WillReturnRows(rows)

	got, err := repo.GetByBarcode(context.Background(), "7501234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Points)
	assert.NoError(t, mock.ExpectationsWereMet())
}
