package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger: human-readable in development,
// JSON with sampling in production.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
