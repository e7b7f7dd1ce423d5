package middleware

import (
	"net/http"

	"github.com/donelist-dev/donelist/internal/types"
	"github.com/gin-gonic/gin"
)

// UnauthenticatedPath is where gated routes send callers without a session.
const UnauthenticatedPath = "/api"

// RequireAuth guards routes that need an authenticated user. It is a pure
// gate: no body, no side effects, just a redirect for anonymous callers.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, exists := ctx.Get(types.ContextUserKey); !exists {
			ctx.Redirect(http.StatusFound, UnauthenticatedPath)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
