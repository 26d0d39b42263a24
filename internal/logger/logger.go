// Package logger builds the zap logger shared by the whole service.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a logger for the given mode. "development" produces
// human-readable console output, "production" structured JSON.
func New(mode string) (*zap.Logger, error) {
	switch mode {
	case "", "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return nil, fmt.Errorf("unknown log mode: %q", mode)
	}
}
