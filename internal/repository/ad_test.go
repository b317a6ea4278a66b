package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"vyaparify/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func f64(v float64) *float64 {
	return &v
}

func TestAdRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAdRepository(db)
	ctx := context.Background()

	ad := &models.Ad{
		Title:       "Mountain bike",
		Description: "Barely used trail bike",
		Price:       120,
		Category:    "sports",
		Condition:   models.ConditionGood,
		Location:    "Pune",
		Images:      pq.StringArray{"/media/ads/abc.webp"},
		UserID:      1,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "ads"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, ad)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAdRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ads" WHERE "ads"."id" = $1 AND "ads"."deleted_at" IS NULL ORDER BY "ads"."id" LIMIT $2`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "user_id"}).
				AddRow(1, "Mountain bike", 120.0, 10))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(10, "Seller"))

		ad, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Mountain bike", ad.Title)
		require.NotNil(t, ad.User)
		assert.Equal(t, "Seller", ad.User.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ads" WHERE "ads"."id" = $1 AND "ads"."deleted_at" IS NULL ORDER BY "ads"."id" LIMIT $2`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(ctx, 99)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAdRepository(db)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    AdFilter
		wantQuery string
		wantArgs  []driver.Value
	}{
		{
			name:      "No Filters Defaults To Newest",
			filter:    AdFilter{},
			wantQuery: `SELECT * FROM "ads" WHERE "ads"."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT $1`,
			wantArgs:  []driver.Value{20},
		},
		{
			name:      "Category With Price Low Sort",
			filter:    AdFilter{Category: "sports", Sort: models.SortPriceLow},
			wantQuery: `SELECT * FROM "ads" WHERE category = $1 AND "ads"."deleted_at" IS NULL ORDER BY price ASC, created_at DESC LIMIT $2`,
			wantArgs:  []driver.Value{"sports", 20},
		},
		{
			name:      "Search With Price Bounds",
			filter:    AdFilter{Search: "bike", MinPrice: f64(50), MaxPrice: f64(200), Sort: models.SortPriceHigh},
			wantQuery: `SELECT * FROM "ads" WHERE (title ILIKE $1 OR description ILIKE $2) AND price >= $3 AND price <= $4 AND "ads"."deleted_at" IS NULL ORDER BY price DESC, created_at DESC LIMIT $5`,
			wantArgs:  []driver.Value{"%bike%", "%bike%", 50.0, 200.0, 20},
		},
		{
			name:      "Unknown Sort Falls Back To Newest",
			filter:    AdFilter{Sort: "oldest"},
			wantQuery: `SELECT * FROM "ads" WHERE "ads"."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT $1`,
			wantArgs:  []driver.Value{20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(regexp.QuoteMeta(tt.wantQuery)).
				WithArgs(tt.wantArgs...).
				WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).AddRow(1, "Mountain bike", 10))

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 AND "users"."deleted_at" IS NULL`)).
				WithArgs(10).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(10, "Seller"))

			ads, err := repo.List(ctx, tt.filter, 20, 0)
			require.NoError(t, err)
			require.Len(t, ads, 1)
			assert.Equal(t, "Mountain bike", ads[0].Title)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("Empty Result Is Non-Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ads" WHERE "ads"."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT $1`)).
			WithArgs(20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}))

		ads, err := repo.List(ctx, AdFilter{}, 20, 0)
		require.NoError(t, err)
		require.NotNil(t, ads)
		assert.Len(t, ads, 0)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAdRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "ads" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewAdRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "ads" WHERE id = $1 AND "ads"."deleted_at" IS NULL`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.Exists(ctx, 7)
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
