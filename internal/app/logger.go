package app

import "github.com/akshay-h-dev/milestack/pkg/logger"

// ConfigureLogging initialises the global zap logger at the configured level.
func ConfigureLogging(level string) error {
	return logger.Init(level)
}
