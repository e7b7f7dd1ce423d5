package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTodo(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "todos"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	mock.ExpectQuery(`SELECT \* FROM "todos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed", "user_id"}).
			AddRow(3, "Buy milk", false, 7))
	mock.ExpectQuery(`SELECT \* FROM "todo_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "todo_id", "tag_id"}))

	r := testRouter(7)
	r.POST("/todos", CreateTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"Buy milk"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body TodoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(3), body.ID)
	assert.Equal(t, "Buy milk", body.Title)
	assert.False(t, body.Completed)
	assert.Nil(t, body.DeletedAt)
	assert.Empty(t, body.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTodo_MissingTitle(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	r := testRouter(7)
	r.POST("/todos", CreateTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":""}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request"}`, rec.Body.String())
}

func TestCreateTodo_Unauthenticated(t *testing.T) {
	r := testRouter(0)
	r.POST("/todos", CreateTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"Buy milk"}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"User not authenticated"}`, rec.Body.String())
}

func TestCreateTodo_UnknownCategory(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	r := testRouter(7)
	r.POST("/todos", CreateTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"title":"Buy milk","category_id":99}`))
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Category or tag not found"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTodos(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "todos"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "completed", "user_id"}).
			AddRow(1, "Buy milk", false, 7).
			AddRow(2, "Walk dog", true, 7))
	mock.ExpectQuery(`SELECT \* FROM "todo_tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "todo_id", "tag_id"}))

	r := testRouter(7)
	r.GET("/todos", ListTodos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body []TodoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "Buy milk", body[0].Title)
	assert.True(t, body[1].Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTodos_InvalidCategoryFilter(t *testing.T) {
	r := testRouter(7)
	r.GET("/todos", ListTodos)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/todos?category_id=abc", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid category id"}`, rec.Body.String())
}

func TestDeleteTodo(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "todos" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testRouter(7)
	r.DELETE("/todos/:id", DeleteTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/todos/5", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Todo deleted successfully"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "todos" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := testRouter(7)
	r.DELETE("/todos/:id", DeleteTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/todos/5", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Todo not found"}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTodo_InvalidID(t *testing.T) {
	r := testRouter(7)
	r.DELETE("/todos/:id", DeleteTodo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/todos/abc", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid todo id"}`, rec.Body.String())
}
