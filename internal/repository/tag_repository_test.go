package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTagRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	tag, err := repo.Create(context.Background(), "urgent")
	require.NoError(t, err)
	assert.Equal(t, uint(7), tag.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTag_EmptyName(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTagRepository(gormDB)

	_, err := repo.Create(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDeleteTag_NotFound(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	repo := NewTagRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tags" SET "deleted_at"=`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SoftDelete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
