package logger

import (
	"go.uber.org/zap"
)

// New builds the process logger. Production uses JSON output at info level,
// every other environment gets the colored development encoder.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// Must is New for main packages that cannot continue without a logger
func Must(environment string) *zap.Logger {
	l, err := New(environment)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
