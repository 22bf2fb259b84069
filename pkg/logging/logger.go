// Package logging builds the service logger and provides redaction helpers
// for values that must never reach the logs verbatim.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the service logger. Local environments get the human-readable
// development config; everything else logs structured JSON at info level.
func New(env string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if env == "local" || env == "test" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
