package handlers

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/middleware"
	"github.com/donelist-dev/donelist/internal/session"
	"github.com/donelist-dev/donelist/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	previous := db.DB
	db.DB = gormDB

	return mock, func() {
		db.DB = previous
		sqlDB.Close()
	}
}

// testRouter builds an engine that pretends userID already passed the
// session middleware. A zero userID leaves the request unauthenticated.
func testRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if userID != 0 {
		r.Use(func(ctx *gin.Context) {
			ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
				ID:    userID,
				Name:  "Test User",
				Email: "test@example.com",
			})
		})
	}

	return r
}

type fakeSessionStore struct {
	sessions  map[string]uint
	destroyed []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uint)}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	id := "test-session"
	f.sessions[id] = userID
	return id, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, id string) (uint, error) {
	userID, ok := f.sessions[id]
	if !ok {
		return 0, session.ErrNoSession
	}
	return userID, nil
}

func (f *fakeSessionStore) Refresh(ctx context.Context, id string) error {
	return nil
}

func (f *fakeSessionStore) Destroy(ctx context.Context, id string) error {
	f.destroyed = append(f.destroyed, id)
	delete(f.sessions, id)
	return nil
}
