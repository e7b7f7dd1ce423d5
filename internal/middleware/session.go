package middleware

import (
	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/models"
	"github.com/donelist-dev/donelist/internal/session"
	"github.com/donelist-dev/donelist/internal/types"
	"github.com/gin-gonic/gin"
)

type AuthenticatedUser struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// SessionMiddleware resolves the session cookie to a live user and attaches
// it to the request context. Any miss (no cookie, expired session, deleted
// user) leaves the request unauthenticated instead of failing it.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		cookie, err := ctx.Cookie(session.CookieName)

		if err != nil || cookie == "" {
			ctx.Next()
			return
		}

		userID, err := store.Get(ctx.Request.Context(), cookie)

		if err != nil {
			ctx.Next()
			return
		}

		var user models.User

		if err := db.DB.First(&user, userID).Error; err != nil {
			ctx.Next()
			return
		}

		// Each request restarts the inactivity window. Best effort; an
		// expired refresh only shortens the session.
		_ = store.Refresh(ctx.Request.Context(), cookie)

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Avatar: user.Avatar,
		})
		ctx.Next()
	}
}
