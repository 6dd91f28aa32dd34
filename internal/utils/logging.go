package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a production logger unless env asks for development output.
func NewLogger(env string) (*zap.Logger, error) {
	if env == "development" || env == "dev" || env == "local" {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}
	return zap.NewProduction()
}
