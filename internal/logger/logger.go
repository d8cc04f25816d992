// Package logger wires the global zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds a logger for the environment and installs it as zap's global.
func Init(environment string) error {
	var (
		logger *zap.Logger
		err    error
	)

	switch environment {
	case "production":
		logger, err = zap.NewProduction()
	default:
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("zap.New -> %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
