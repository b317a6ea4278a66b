package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"vyaparify/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := &models.Message{SenderID: 5, ReceiverID: 2, AdID: 9, Content: "Is this still available?"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, msg)
	require.NoError(t, err)

	// The create hook normalizes the participant pair.
	assert.Equal(t, uint(2), msg.PairLowID)
	assert.Equal(t, uint(5), msg.PairHighID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Inbox(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE receiver_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs(2, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "ad_id", "content"}).
			AddRow(11, 5, 2, 9, "Is this still available?").
			AddRow(10, 7, 2, 9, "Would you take 100?"))

	// Preloads run alphabetically: Ad before Sender.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ads" WHERE "ads"."id" = $1 AND "ads"."deleted_at" IS NULL`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(9, "Mountain bike"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2) AND "users"."deleted_at" IS NULL`)).
		WithArgs(5, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "Buyer A").AddRow(7, "Buyer B"))

	msgs, err := repo.Inbox(ctx, 2, 20, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, uint(11), msgs[0].ID)
	require.NotNil(t, msgs[0].Sender)
	assert.Equal(t, "Buyer A", msgs[0].Sender.Name)
	require.NotNil(t, msgs[0].Ad)
	assert.Equal(t, "Mountain bike", msgs[0].Ad.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Inbox_EmptyIsNonNil(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE receiver_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs(2, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "ad_id", "content"}))

	msgs, err := repo.Inbox(context.Background(), 2, 20, 0)
	require.NoError(t, err)
	require.NotNil(t, msgs)
	assert.Len(t, msgs, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_Thread(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// Participants are passed in either order; the query always uses the
	// normalized (low, high) pair.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE pair_low_id = $1 AND pair_high_id = $2 AND ad_id = $3 ORDER BY created_at ASC, id ASC`)).
		WithArgs(2, 5, 9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "ad_id", "content"}).
			AddRow(10, 5, 2, 9, "Is this still available?").
			AddRow(11, 2, 5, 9, "Yes, it is."))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ads" WHERE "ads"."id" = $1 AND "ads"."deleted_at" IS NULL`)).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(9, "Mountain bike"))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" IN ($1,$2) AND "users"."deleted_at" IS NULL`)).
		WithArgs(5, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "Buyer").AddRow(2, "Seller"))

	msgs, err := repo.Thread(ctx, 5, 2, 9)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, uint(10), msgs[0].ID)
	assert.Equal(t, uint(11), msgs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkRead(ctx, 11, time.Now())
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.MarkRead(ctx, 999, time.Now())
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "NOT_FOUND", appErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
