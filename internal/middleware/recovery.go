package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/donelist-dev/donelist/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns any unhandled panic into a structured JSON
// response. Error detail reaches the client only outside production;
// production failures additionally fan out to the alert notifier.
func RecoveryMiddleware(logger *zap.Logger, production bool, notifier *services.Notifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Error("panic recovered",
					zap.Any("error", recovered),
					zap.String("path", ctx.Request.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)

				if production && notifier != nil {
					go notifier.NotifyError(fmt.Sprintf("panic on %s: %v", ctx.Request.URL.Path, recovered))
				}

				var detail interface{}
				if !production {
					detail = fmt.Sprint(recovered)
				}

				ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
					"error":   detail,
				})
			}
		}()

		ctx.Next()
	}
}
