package liststore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-backoffice/internal/liststore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) (*liststore.GormStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return liststore.NewGormStore(gormDB), mock
}

func TestGormStore_Select(t *testing.T) {
	store, mock := setupGormStore(t)
	deadline := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "offre_title", "deadline" FROM "BackOfficeV1" ORDER BY "id"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "offre_title", "deadline"}).
			AddRow(int64(1), "Engineer", deadline))

	items, err := store.Select(context.Background(), "BackOfficeV1", "offre_title", "deadline")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Engineer", items[0]["offre_title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_SelectMissingList(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "BackOfficeV9"`)).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "BackOfficeV9" does not exist`})

	_, err := store.Select(context.Background(), "BackOfficeV9", "city")

	assert.True(t, errors.Is(err, liststore.ErrListNotFound))
}

func TestGormStore_Add(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "BackOfficeV1" ("city","offre_title") VALUES ($1,$2) RETURNING "id"`)).
		WithArgs("rabat", "Engineer").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := store.Add(context.Background(), "BackOfficeV1", liststore.Item{"offre_title": "Engineer", "city": "rabat"})

	assert.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store, mock := setupGormStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "BackOfficeV1" SET "city" = $1, "offre_title" = $2 WHERE "id" = $3`)).
			WithArgs("fes", "Engineer", 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Update(context.Background(), "BackOfficeV1", 3, liststore.Item{"offre_title": "Engineer", "city": "fes"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row matched", func(t *testing.T) {
		store, mock := setupGormStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "BackOfficeV1"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Update(context.Background(), "BackOfficeV1", 3, liststore.Item{"city": "fes"})

		assert.True(t, errors.Is(err, liststore.ErrItemNotFound))
	})
}

func TestGormStore_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store, mock := setupGormStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "BackOfficeV1" WHERE "id" = $1`)).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Delete(context.Background(), "BackOfficeV1", 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		store, mock := setupGormStore(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "BackOfficeV1"`)).
			WillReturnError(errors.New("connection reset"))

		err := store.Delete(context.Background(), "BackOfficeV1", 1)
		assert.EqualError(t, err, "connection reset")
	})
}

func TestGormStore_EnsureList(t *testing.T) {
	store, mock := setupGormStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "BackOfficeV1" ("id" SERIAL PRIMARY KEY)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`ALTER TABLE "BackOfficeV1" ADD COLUMN IF NOT EXISTS "offre_title" TEXT NOT NULL DEFAULT ''`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`ALTER TABLE "BackOfficeV1" ADD COLUMN IF NOT EXISTS "deadline" DATE`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.EnsureList(context.Background(), "BackOfficeV1", []liststore.Column{
		{Name: "offre_title", Type: "text"},
		{Name: "deadline", Type: "date"},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_EnsureListRejectsUnknownType(t *testing.T) {
	store, mock := setupGormStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS`)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.EnsureList(context.Background(), "BackOfficeV1", []liststore.Column{{Name: "blob", Type: "bytea"}})
	assert.Error(t, err)
}
